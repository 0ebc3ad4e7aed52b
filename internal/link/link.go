// Package link defines the identity of a note and the mapping between note
// names and on-disk file names.
//
// Two Links are the same identity iff their raw names are byte-equal; case
// variants are distinct identities until the graph's normalization pass
// resolves them.
package link

import (
	"path/filepath"
	"strings"
	"time"

	"braindex/internal/dates"
)

// SepMarker encodes a path separator inside a note name when the note is
// stored as a single file: the note "Projects/Roadmap" lives on disk as
// "Projects%2FRoadmap.md".
const SepMarker = "%2F"

// Link is the identity of a note: its raw, case-sensitive name.
type Link struct {
	RawName string
}

// FromRawName builds a Link from a raw note name as written inside [[...]].
func FromRawName(name string) Link {
	return Link{RawName: name}
}

// FromFileName builds a Link from an on-disk file name, undoing the
// separator escaping. The ".md" extension is optional.
func FromFileName(fileName string) Link {
	name := strings.TrimSuffix(fileName, ".md")
	name = strings.ReplaceAll(name, SepMarker, "/")
	return Link{RawName: name}
}

// FromFilePath builds a Link from any path to a markdown file; only the
// base name is significant.
func FromFilePath(path string) Link {
	return FromFileName(filepath.Base(path))
}

// FileName returns the canonical on-disk file name for this link.
// Path separators are escaped with SepMarker and apostrophes are stripped
// from the file name only (the raw name keeps them).
func (l Link) FileName() string {
	name := strings.ReplaceAll(l.RawName, "/", SepMarker)
	name = strings.ReplaceAll(name, "'", "")
	return name + ".md"
}

// FilePath resolves the link's file location against a notes root.
func (l Link) FilePath(root string) string {
	return filepath.Join(root, l.FileName())
}

// IsDay reports whether the link names a journal day note (YYYY-MM-DD, or
// YYYY_MM_DD in old corpora).
func (l Link) IsDay() bool {
	return dates.IsDayName(l.RawName)
}

// Day returns the implicit date of a journal day note.
// ok is false when the link is not date-like.
func (l Link) Day() (t time.Time, ok bool) {
	t, err := dates.ParseDayName(l.RawName)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Equal reports identity: byte-equality of raw names.
func (l Link) Equal(other Link) bool {
	return l.RawName == other.RawName
}
