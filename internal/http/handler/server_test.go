package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ketchupdev/ketchup/internal/application/actions"
	"github.com/ketchupdev/ketchup/internal/application/auth"
	"github.com/ketchupdev/ketchup/internal/application/pomodoro"
	"github.com/ketchupdev/ketchup/internal/application/task"
	"github.com/ketchupdev/ketchup/internal/application/view"
	"github.com/ketchupdev/ketchup/internal/http/handler"
	"github.com/ketchupdev/ketchup/internal/infrastructure/persistence/sqlite"
)

// staticValidator maps bearer tokens to user ids.
type staticValidator map[string]string

func (v staticValidator) ValidateToken(_ context.Context, token string) (string, error) {
	userID, ok := v[token]
	if !ok {
		return "", errors.New("unknown token")
	}
	return userID, nil
}

const (
	aliceToken = "token-alice"
	aliceID    = "0195e7a0-aaaa-7def-8000-0123456789ab"
	bobToken   = "token-bob"
	bobID      = "0195e7a0-bbbb-7def-8000-0123456789ab"
)

// newTestServer wires the real router, actions, and services over an
// in-memory store.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	store, err := sqlite.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	views := view.NewTracker()
	acts := actions.New(
		task.NewService(store.Tasks()),
		pomodoro.NewService(store.Sessions()),
		auth.ContextIdentity{},
		views,
	)
	srv := handler.NewServer(acts, views)
	router := handler.NewRouter(srv, staticValidator{aliceToken: aliceID, bobToken: bobID})

	ts := httptest.NewServer(router)
	t.Cleanup(ts.Close)
	return ts
}

// do issues a request with the given bearer token and form body, returning
// the status and decoded JSON body (nil for empty bodies).
func do(t *testing.T, ts *httptest.Server, method, path, token string, form url.Values) (int, map[string]any) {
	t.Helper()

	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req, err := http.NewRequest(method, ts.URL+path, body)
	require.NoError(t, err)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) == 0 {
		return resp.StatusCode, nil
	}

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded), "body: %s", raw)
	return resp.StatusCode, decoded
}

func createTask(t *testing.T, ts *httptest.Server, token, title string) string {
	t.Helper()
	status, body := do(t, ts, http.MethodPost, "/api/tasks", token, url.Values{"title": {title}})
	require.Equal(t, http.StatusCreated, status)
	id, _ := body["id"].(string)
	require.NotEmpty(t, id)
	return id
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)

	resp, err := ts.Client().Get(ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestUnauthenticatedRequestsGet401(t *testing.T) {
	ts := newTestServer(t)

	for _, tc := range []struct {
		name  string
		token string
	}{
		{"no token", ""},
		{"unknown token", "token-nobody"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			status, body := do(t, ts, http.MethodGet, "/api/tasks", tc.token, nil)
			assert.Equal(t, http.StatusUnauthorized, status)
			require.NotNil(t, body["errors"])
		})
	}
}

func TestTaskLifecycleOverHTTP(t *testing.T) {
	ts := newTestServer(t)

	status, body := do(t, ts, http.MethodPost, "/api/tasks", aliceToken, url.Values{
		"title":             {"write the report"},
		"note":              {"due before the offsite"},
		"estimated_minutes": {"50"},
		"due_at":            {"2026-09-01"},
	})
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "write the report", body["title"])
	assert.Equal(t, false, body["completed"])
	taskID := body["id"].(string)

	status, body = do(t, ts, http.MethodPut, "/api/tasks/"+taskID, aliceToken, url.Values{
		"title": {"renamed"},
	})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "renamed", body["title"])
	assert.Nil(t, body["note"], "update is full replace")

	status, _ = do(t, ts, http.MethodPost, "/api/tasks/"+taskID+"/complete", aliceToken, nil)
	assert.Equal(t, http.StatusNoContent, status)

	status, body = do(t, ts, http.MethodGet, "/api/tasks?status=done", aliceToken, nil)
	require.Equal(t, http.StatusOK, status)
	tasks := body["tasks"].([]any)
	require.Len(t, tasks, 1)

	status, body = do(t, ts, http.MethodDelete, "/api/tasks/"+taskID, aliceToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, taskID, body["id"], "delete echoes the removed task")
}

func TestValidationFailureEchoesValues(t *testing.T) {
	ts := newTestServer(t)

	status, body := do(t, ts, http.MethodPost, "/api/tasks", aliceToken, url.Values{
		"title":             {""},
		"estimated_minutes": {"zero"},
	})
	require.Equal(t, http.StatusBadRequest, status)

	errs := body["errors"].(map[string]any)
	fields := errs["fields"].(map[string]any)
	assert.Contains(t, fields, "title")
	assert.Contains(t, fields, "estimated_minutes")

	values := body["values"].(map[string]any)
	assert.Equal(t, "zero", values["estimated_minutes"])
}

func TestOwnerScopingOverHTTP(t *testing.T) {
	ts := newTestServer(t)

	taskID := createTask(t, ts, aliceToken, "alice's task")

	// Another owner's task is indistinguishable from a missing one, so the
	// failure is the generic retry envelope rather than a validation error.
	status, _ := do(t, ts, http.MethodPut, "/api/tasks/"+taskID, bobToken, url.Values{
		"title": {"bob was here"},
	})
	assert.Equal(t, http.StatusInternalServerError, status)

	status, _ = do(t, ts, http.MethodDelete, "/api/tasks/"+taskID, bobToken, nil)
	assert.Equal(t, http.StatusInternalServerError, status)

	status, body := do(t, ts, http.MethodGet, "/api/tasks", bobToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, body["tasks"], "bob sees none of alice's tasks")
}

func TestSessionFlowOverHTTP(t *testing.T) {
	ts := newTestServer(t)

	taskID := createTask(t, ts, aliceToken, "deep work")

	status, body := do(t, ts, http.MethodGet, "/api/tasks/"+taskID+"/sessions/active", aliceToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Nil(t, body["session"])

	status, body = do(t, ts, http.MethodPost, "/api/tasks/"+taskID+"/sessions", aliceToken, nil)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, true, body["active"])
	sessionID := body["id"].(string)

	status, body = do(t, ts, http.MethodGet, "/api/tasks/"+taskID+"/sessions/active", aliceToken, nil)
	require.Equal(t, http.StatusOK, status)
	session := body["session"].(map[string]any)
	assert.Equal(t, sessionID, session["id"])

	status, body = do(t, ts, http.MethodPost, "/api/sessions/"+sessionID+"/stop", aliceToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, false, body["active"])
	assert.Contains(t, body, "minutes")

	status, _ = do(t, ts, http.MethodPost, "/api/sessions/"+sessionID+"/stop", aliceToken, nil)
	assert.Equal(t, http.StatusInternalServerError, status, "stopping twice fails")

	status, body = do(t, ts, http.MethodGet, "/api/tasks/"+taskID+"/minutes", aliceToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "minutes")

	status, body = do(t, ts, http.MethodGet, "/api/minutes", aliceToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "minutes")
}

func TestListTasksETag(t *testing.T) {
	ts := newTestServer(t)

	createTask(t, ts, aliceToken, "first")

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/api/tasks", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+aliceToken)

	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	etag := resp.Header.Get("ETag")
	require.NotEmpty(t, etag)

	// Unchanged view revalidates to 304.
	req.Header.Set("If-None-Match", etag)
	resp, err = ts.Client().Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotModified, resp.StatusCode)

	// A mutation rotates the ETag.
	createTask(t, ts, aliceToken, "second")
	resp, err = ts.Client().Do(req)
	require.NoError(t, err)
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEqual(t, etag, resp.Header.Get("ETag"))
}

func TestOversizedBodyRejected(t *testing.T) {
	ts := newTestServer(t)

	huge := url.Values{"title": {"x"}, "note": {strings.Repeat("a", 80*1024)}}
	status, body := do(t, ts, http.MethodPost, "/api/tasks", aliceToken, huge)
	assert.Equal(t, http.StatusBadRequest, status)
	errs := body["errors"].(map[string]any)
	form := errs["form"].([]any)
	require.NotEmpty(t, form)
	assert.Contains(t, form[0], "too large")
}
