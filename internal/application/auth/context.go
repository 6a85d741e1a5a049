package auth

import "context"

type contextKey struct{}

// WithUserID returns a context carrying the authenticated user's id.
// Set by the HTTP auth middleware after token validation.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, contextKey{}, userID)
}

// UserIDFromContext extracts the authenticated user's id, if any.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(contextKey{}).(string)
	return id, ok && id != ""
}

// ContextIdentity resolves the acting user from the request context. It is
// the production implementation of the actions.Identity collaborator.
type ContextIdentity struct{}

// CurrentUserID implements actions.Identity.
func (ContextIdentity) CurrentUserID(ctx context.Context) (string, bool) {
	return UserIDFromContext(ctx)
}
