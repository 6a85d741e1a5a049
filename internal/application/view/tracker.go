// Package view tracks dashboard staleness. Every mutation that affects a
// user's task view (create, update, delete, complete, session stop) bumps
// that user's version; the list endpoint exposes the version as an ETag so
// clients know when a cached view is stale.
package view

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// Tracker keeps a monotonically increasing version per owner.
// The zero-value-ready sync.Map keeps owners independent without a global
// lock on the hot read path.
type Tracker struct {
	versions sync.Map // ownerID -> *atomic.Uint64
}

// NewTracker creates a tracker.
func NewTracker() *Tracker {
	return &Tracker{}
}

func (t *Tracker) counter(ownerID string) *atomic.Uint64 {
	if c, ok := t.versions.Load(ownerID); ok {
		return c.(*atomic.Uint64)
	}
	c, _ := t.versions.LoadOrStore(ownerID, new(atomic.Uint64))
	return c.(*atomic.Uint64)
}

// InvalidateTasks marks the owner's task view stale.
func (t *Tracker) InvalidateTasks(ownerID string) {
	t.counter(ownerID).Add(1)
}

// Version returns the owner's current view version.
func (t *Tracker) Version(ownerID string) uint64 {
	return t.counter(ownerID).Load()
}

// Etag renders the owner's version as a weak entity tag.
func (t *Tracker) Etag(ownerID string) string {
	return fmt.Sprintf(`W/"tasks-%d"`, t.Version(ownerID))
}
