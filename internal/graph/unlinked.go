package graph

import (
	"strings"
	"unicode"

	"braindex/internal/link"
	"braindex/internal/parser"
)

// RefreshUnlinkedMentions recomputes every UNLINKED edge: for each note
// name, every literal occurrence of that name in another note's body that
// is not already wrapped in link syntax becomes an implicit backlink.
//
// The pass first drops all existing UNLINKED edges and re-derives them from
// content, so running it twice on an unchanged corpus yields the same edge
// set. It is quadratic in (files x names) by construction; corpora are
// small enough that the simple scan beats the bookkeeping of a multi-
// pattern automaton, and the scan per file is trivially swappable for one
// if that stops being true.
func (ix *Index) RefreshUnlinkedMentions() {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	names := make([]string, 0, len(ix.notes))
	for name := range ix.notes {
		names = append(names, name)
	}

	for _, n := range ix.notes {
		kept := n.Locations[:0]
		for _, loc := range n.Locations {
			if loc.Kind != parser.KindUnlinked {
				kept = append(kept, loc)
			}
		}
		n.Locations = kept

		for _, name := range names {
			if name == n.Link.RawName {
				continue
			}
			for _, offset := range findUnlinked(n.Content, name) {
				row, col := rowCol(n.Content, offset)
				n.Locations = append(n.Locations, parser.LinkLocation{
					Target:  link.FromRawName(name),
					Source:  n.Link,
					Row:     row,
					Col:     col,
					Kind:    parser.KindUnlinked,
					Context: parser.BuildContext(n.Content, row, n.Link, name),
				})
			}
		}
	}

	ix.invalidate()
}

// findUnlinked returns the offsets of literal occurrences of name in
// content that are not wrapped in [[...]] and sit on word boundaries.
//
// The original formulation is a negative lookaround around the name; Go's
// regexp has none, so the wrapping and boundary checks are explicit.
func findUnlinked(content, name string) []int {
	if name == "" {
		return nil
	}
	var out []int
	from := 0
	for {
		i := strings.Index(content[from:], name)
		if i < 0 {
			return out
		}
		start := from + i
		end := start + len(name)
		from = start + 1

		// Already wrapped in link syntax.
		if start >= 2 && content[start-2:start] == "[[" {
			continue
		}
		// Inside bracket syntax: a closing ] after the match means the
		// name ends a wiki link or an href title.
		if end < len(content) && content[end] == ']' {
			continue
		}
		// Hashtag or href-target position.
		if start >= 1 && (content[start-1] == '#' || content[start-1] == '[' || content[start-1] == '(') {
			continue
		}
		// Word boundaries: the match must not extend a larger word.
		if start > 0 && isWordByte(content[start-1]) {
			continue
		}
		if end < len(content) && isWordByte(content[end]) {
			continue
		}

		out = append(out, start)
	}
}

func isWordByte(b byte) bool {
	return b == '_' || unicode.IsLetter(rune(b)) || unicode.IsDigit(rune(b))
}

// rowCol converts a byte offset into 0-based row and column.
func rowCol(content string, offset int) (row, col int) {
	row = strings.Count(content[:offset], "\n")
	if nl := strings.LastIndexByte(content[:offset], '\n'); nl >= 0 {
		col = offset - nl - 1
	} else {
		col = offset
	}
	return row, col
}
