package graph

import (
	"sync/atomic"

	"braindex/internal/parser"
)

// Handle is the shared pointer consumers read the current snapshot
// through. A full rebuild constructs a complete Index and publishes it with
// one atomic swap, so readers observe either the old or the new snapshot,
// never a partial one.
type Handle struct {
	cur atomic.Pointer[Index]
}

// NewHandle returns a Handle with no published snapshot yet.
func NewHandle() *Handle {
	return &Handle{}
}

// Publish atomically replaces the current snapshot.
func (h *Handle) Publish(ix *Index) {
	h.cur.Store(ix)
}

// Current returns the published snapshot, or nil before the first publish.
func (h *Handle) Current() *Index {
	return h.cur.Load()
}

// Patch hot-patches one re-scanned note into the published snapshot after
// a single-file edit: upsert plus cache invalidation run inside the
// index's critical section, no full rescan. Returns false when nothing has
// been published yet.
func (h *Handle) Patch(n *parser.Note) bool {
	ix := h.cur.Load()
	if ix == nil {
		return false
	}
	ix.AddNote(n)
	return true
}
