// Package parser turns raw note text into the typed occurrences the graph
// is built from: wiki links, hrefs, hashtags, level-2 headings, alias
// declarations, note-level tags, and task lines.
//
// This is deliberately not a CommonMark parser; only the fixed dialect
// below is recognized:
//
//	[[name]]              wiki link
//	[title](target)       href (target may be a URL or a shortened code)
//	#word                 hashtag (slashes/hyphens allowed, word-bounded)
//	## text               level-2 heading
//	[[a]] = [[b]]         alias declaration
//	- TODO|DOING|DONE[/group] text   task line
//	tags:: tag1, tag2     note-level tags
package parser

import (
	"braindex/internal/link"
	"braindex/internal/tasks"
)

// Kind tags a LinkLocation by the syntax that produced it.
type Kind string

// Occurrence kinds.
const (
	KindLink     Kind = "LINK"
	KindHref     Kind = "HREF"
	KindHashtag  Kind = "HASHTAG"
	KindHeading  Kind = "HEADING"
	KindUnlinked Kind = "UNLINKED"
)

// LinkLocation is one directed edge of the note graph: a reference to a
// target note at a position in a source note.
//
// Row and Col are 0-based offsets into the source's raw text at scan time.
// They become stale the moment the file is edited; a re-scan replaces the
// owning Note wholesale rather than patching positions.
type LinkLocation struct {
	Target link.Link
	Source link.Link
	Row    int
	Col    int
	Kind   Kind
	URL    string // HREF only; the verbatim target, absolute URL or short code
	Context *Context
}

// Alias is one declared equivalence between two note names.
type Alias struct {
	From string
	To   string
}

// Note is one parsed file. It is created when the file is scanned and
// replaced wholesale on re-scan; there is no partial mutation.
type Note struct {
	Link      link.Link
	Content   string
	Locations []LinkLocation
	Aliases   []Alias
	Tags      []string
	Tasks     []tasks.Task
}
