package parser

import (
	"regexp"
	"strings"

	"braindex/internal/link"
	"braindex/internal/tasks"
)

var (
	wikiRegex    = regexp.MustCompile(`\[\[([^\[\]|]+)\]\]`)
	hrefRegex    = regexp.MustCompile(`\[([^\[\]]+)\]\(([^()\s]+)\)`)
	hashtagRegex = regexp.MustCompile(`(?m)(^|[^\w#])#([\w][\w/-]*)`)
	headingRegex = regexp.MustCompile(`(?m)^## +(.+)$`)
	aliasRegex   = regexp.MustCompile(`\[\[([^\[\]|]+)\]\] *= *\[\[([^\[\]|]+)\]\]`)
	tagsRegex    = regexp.MustCompile(`(?m)^tags:: *(.+)$`)
)

// Extract parses one file's text into a Note. Extraction is pure: the input
// is never mutated, and an empty or non-matching file yields a Note with
// empty lists, not an error.
//
// Each pattern runs as its own pass over the text; every match records its
// 0-based row and column by counting newlines before the match offset.
func Extract(l link.Link, content string) *Note {
	note := &Note{Link: l, Content: content}

	for _, m := range wikiRegex.FindAllStringSubmatchIndex(content, -1) {
		name := strings.TrimSpace(content[m[2]:m[3]])
		if name == "" {
			continue
		}
		row, col := rowCol(content, m[0])
		note.Locations = append(note.Locations, LinkLocation{
			Target:  link.FromRawName(name),
			Source:  l,
			Row:     row,
			Col:     col,
			Kind:    KindLink,
			Context: BuildContext(content, row, l, name),
		})
	}

	for _, m := range hrefRegex.FindAllStringSubmatchIndex(content, -1) {
		title := content[m[2]:m[3]]
		target := content[m[4]:m[5]]
		row, col := rowCol(content, m[0])
		loc := LinkLocation{
			Target: link.FromRawName(title),
			Source: l,
			Row:    row,
			Col:    col,
			Kind:   KindHref,
			URL:    target,
		}
		// Targets that are not absolute URLs are shortened-link codes;
		// they pass through verbatim with no context attached.
		if IsAbsoluteURL(target) {
			loc.Context = BuildContext(content, row, l, title)
		}
		note.Locations = append(note.Locations, loc)
	}

	for _, m := range hashtagRegex.FindAllStringSubmatchIndex(content, -1) {
		tag := content[m[4]:m[5]]
		name := strings.ReplaceAll(tag, "_", " ")
		hashOffset := m[4] - 1
		row, col := rowCol(content, hashOffset)
		note.Locations = append(note.Locations, LinkLocation{
			Target:  link.FromRawName(name),
			Source:  l,
			Row:     row,
			Col:     col,
			Kind:    KindHashtag,
			Context: BuildContext(content, row, l, name),
		})
	}

	for _, m := range headingRegex.FindAllStringSubmatchIndex(content, -1) {
		text := strings.TrimSpace(content[m[2]:m[3]])
		if text == "" {
			continue
		}
		row, col := rowCol(content, m[0])
		note.Locations = append(note.Locations, LinkLocation{
			Target: link.FromRawName(text),
			Source: l,
			Row:    row,
			Col:    col,
			Kind:   KindHeading,
		})
	}

	for _, m := range aliasRegex.FindAllStringSubmatch(content, -1) {
		note.Aliases = append(note.Aliases, Alias{
			From: strings.TrimSpace(m[1]),
			To:   strings.TrimSpace(m[2]),
		})
	}

	for _, m := range tagsRegex.FindAllStringSubmatch(content, -1) {
		for _, tag := range strings.Split(m[1], ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				note.Tags = append(note.Tags, tag)
			}
		}
	}

	note.Tasks = tasks.Extract(l, content)

	return note
}

// IsAbsoluteURL reports whether an href target is a real URL rather than a
// shortened-link code.
func IsAbsoluteURL(target string) bool {
	return strings.Contains(target, "://") || strings.HasPrefix(target, "mailto:")
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
