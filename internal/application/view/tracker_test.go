package view

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrackerVersionsPerOwner(t *testing.T) {
	tr := NewTracker()

	assert.Equal(t, uint64(0), tr.Version("a"))
	assert.Equal(t, `W/"tasks-0"`, tr.Etag("a"))

	tr.InvalidateTasks("a")
	tr.InvalidateTasks("a")
	tr.InvalidateTasks("b")

	assert.Equal(t, uint64(2), tr.Version("a"))
	assert.Equal(t, uint64(1), tr.Version("b"))
	assert.Equal(t, uint64(0), tr.Version("c"), "unknown owners stay at zero")
	assert.Equal(t, `W/"tasks-2"`, tr.Etag("a"))
}

func TestTrackerConcurrentInvalidation(t *testing.T) {
	tr := NewTracker()

	const goroutines = 8
	const bumps = 100

	var wg sync.WaitGroup
	for range goroutines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range bumps {
				tr.InvalidateTasks("owner")
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, uint64(goroutines*bumps), tr.Version("owner"))
}
