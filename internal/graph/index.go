// Package graph owns the in-memory note graph: the set of parsed notes,
// the global views derived from them, the unlinked-mention pass, the
// case-normalization pass, and the snapshot handle consumers read from.
//
// An Index is built wholesale by a full rebuild and published atomically;
// a single note may also be hot-patched into the published Index after an
// edit. All derived views are lazy caches dropped on any mutation.
package graph

import (
	"sort"
	"sync"

	"braindex/internal/link"
	"braindex/internal/parser"
	"braindex/internal/score"
	"braindex/internal/tasks"
)

// Index is one aggregate over the scanned corpus.
//
// The mutex guards both the note map and the caches: a hot-patch mutates
// the published Index in place, so mutation and cache invalidation must sit
// in one critical section.
type Index struct {
	mu    sync.RWMutex
	notes map[string]*parser.Note // raw note name -> note

	// Lazy caches; nil/zero until first use, dropped by invalidate.
	flat       []parser.LinkLocation
	rawNames   []string
	resolved   []link.Link
	occCounts  map[string]int
	baseline   float64
	baselineOK bool
	candidates []string
}

// New creates an empty Index.
func New() *Index {
	return &Index{notes: make(map[string]*parser.Note)}
}

// AddNote upserts a note by its raw name and drops every cache.
func (ix *Index) AddNote(n *parser.Note) {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.notes[n.Link.RawName] = n
	ix.invalidate()
}

// RemoveNote drops a note by raw name, if present.
func (ix *Index) RemoveNote(name string) {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	if _, ok := ix.notes[name]; ok {
		delete(ix.notes, name)
		ix.invalidate()
	}
}

// invalidate drops all caches. Callers hold the write lock.
func (ix *Index) invalidate() {
	ix.flat = nil
	ix.rawNames = nil
	ix.resolved = nil
	ix.occCounts = nil
	ix.baseline = 0
	ix.baselineOK = false
	ix.candidates = nil
}

// Note returns the note with the given raw name.
func (ix *Index) Note(name string) (*parser.Note, bool) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	n, ok := ix.notes[name]
	return n, ok
}

// AllNotes returns every note, ordered by raw name for determinism.
func (ix *Index) AllNotes() []*parser.Note {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return ix.sortedNotesLocked()
}

func (ix *Index) sortedNotesLocked() []*parser.Note {
	out := make([]*parser.Note, 0, len(ix.notes))
	for _, n := range ix.notes {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Link.RawName < out[j].Link.RawName })
	return out
}

// AllLinkLocations returns every occurrence in the corpus, flattened across
// notes. Cached until the next mutation.
func (ix *Index) AllLinkLocations() []parser.LinkLocation {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	return ix.flatLocked()
}

func (ix *Index) flatLocked() []parser.LinkLocation {
	if ix.flat == nil {
		for _, n := range ix.sortedNotesLocked() {
			ix.flat = append(ix.flat, n.Locations...)
		}
		if ix.flat == nil {
			ix.flat = []parser.LinkLocation{}
		}
	}
	return ix.flat
}

// AllRawLinkNames returns the union of note file names and every referenced
// name, except HEADING-typed targets. Sorted, cached.
func (ix *Index) AllRawLinkNames() []string {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	return ix.rawNamesLocked()
}

func (ix *Index) rawNamesLocked() []string {
	if ix.rawNames == nil {
		seen := make(map[string]struct{})
		for name := range ix.notes {
			seen[name] = struct{}{}
		}
		for _, loc := range ix.flatLocked() {
			if loc.Kind == parser.KindHeading {
				continue
			}
			seen[loc.Target.RawName] = struct{}{}
		}
		names := make([]string, 0, len(seen))
		for name := range seen {
			names = append(names, name)
		}
		sort.Strings(names)
		ix.rawNames = names
	}
	return ix.rawNames
}

// ResolvedLinks maps every raw link name through Link construction. Cached.
func (ix *Index) ResolvedLinks() []link.Link {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	if ix.resolved == nil {
		names := ix.rawNamesLocked()
		ix.resolved = make([]link.Link, len(names))
		for i, name := range names {
			ix.resolved[i] = link.FromRawName(name)
		}
	}
	return ix.resolved
}

// OccurrenceCount returns how many occurrences reference the given raw
// name. Backed by a cached histogram over all LinkLocations.
func (ix *Index) OccurrenceCount(name string) int {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	return ix.occCountsLocked()[name]
}

func (ix *Index) occCountsLocked() map[string]int {
	if ix.occCounts == nil {
		ix.occCounts = make(map[string]int)
		for _, loc := range ix.flatLocked() {
			ix.occCounts[loc.Target.RawName]++
		}
	}
	return ix.occCounts
}

// FrequencyBaseline returns the corpus normalization constant for
// frequency scoring: the mean occurrence count of the top decile of
// targets. Cached.
func (ix *Index) FrequencyBaseline() float64 {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	if !ix.baselineOK {
		counts := ix.occCountsLocked()
		all := make([]int, 0, len(counts))
		for _, c := range counts {
			all = append(all, c)
		}
		ix.baseline = score.Baseline(all)
		ix.baselineOK = true
	}
	return ix.baseline
}

// BacklinksTo returns every occurrence whose target is the given raw name.
func (ix *Index) BacklinksTo(name string) []parser.LinkLocation {
	var out []parser.LinkLocation
	for _, loc := range ix.AllLinkLocations() {
		if loc.Target.RawName == name {
			out = append(out, loc)
		}
	}
	return out
}

// AliasesOf returns the closure of names co-declared with name via alias
// pairs, the name itself included. Names are sorted.
func (ix *Index) AliasesOf(name string) []string {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	// Union alias pairs into groups.
	parent := make(map[string]string)
	var find func(string) string
	find = func(x string) string {
		if p, ok := parent[x]; ok && p != x {
			root := find(p)
			parent[x] = root
			return root
		}
		if _, ok := parent[x]; !ok {
			parent[x] = x
		}
		return parent[x]
	}
	union := func(a, b string) {
		ra, rb := find(a), find(b)
		if ra != rb {
			parent[ra] = rb
		}
	}

	for _, n := range ix.notes {
		for _, a := range n.Aliases {
			union(a.From, a.To)
		}
	}

	root := find(name)
	out := []string{}
	for member := range parent {
		if find(member) == root {
			out = append(out, member)
		}
	}
	sort.Strings(out)
	return out
}

// AllTasks returns every task in the corpus, in note order.
func (ix *Index) AllTasks() []tasks.Task {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	var out []tasks.Task
	for _, n := range ix.sortedNotesLocked() {
		out = append(out, n.Tasks...)
	}
	return out
}

// AllTags returns the distinct note-level tags (tags:: headers) across the
// corpus, sorted.
func (ix *Index) AllTags() []string {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	seen := make(map[string]struct{})
	for _, n := range ix.notes {
		for _, tag := range n.Tags {
			seen[tag] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for tag := range seen {
		out = append(out, tag)
	}
	sort.Strings(out)
	return out
}

// AutocompleteCandidates returns the candidate name list for completion
// consumers. Built lazily; RebuildAutocompleteCandidates forces a rebuild.
func (ix *Index) AutocompleteCandidates() []string {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	if ix.candidates == nil {
		ix.candidates = append([]string(nil), ix.rawNamesLocked()...)
	}
	return ix.candidates
}

// RebuildAutocompleteCandidates drops and rebuilds the candidate list.
func (ix *Index) RebuildAutocompleteCandidates() {
	ix.mu.Lock()
	ix.candidates = nil
	ix.mu.Unlock()
	ix.AutocompleteCandidates()
}

// Len returns the number of notes in the index.
func (ix *Index) Len() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.notes)
}
