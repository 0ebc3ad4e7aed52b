package parser

import (
	"regexp"
	"strings"
	"time"

	"braindex/internal/dates"
	"braindex/internal/link"
)

// Context is the structural surrounding of one occurrence, derived entirely
// from the file text. Identical input always yields an identical Context.
type Context struct {
	// Headings is the stack of enclosing heading texts, outermost first.
	Headings []string

	// Date is the implicit date of the source note, set when the source is
	// a journal day note.
	Date *time.Time

	// Specificity scores how date-like the target name is (0-4,
	// exact day > month > quarter > year > none).
	Specificity int

	// LineText is the raw text of the occurrence's line.
	LineText string

	// Block is the enclosing bullet region: the contiguous run of
	// list-item lines around the occurrence, or nil when the line is not
	// inside one.
	Block []string
}

var (
	atxHeadingRegex = regexp.MustCompile(`^(#{1,6}) +(.*)$`)
	bulletLineRegex = regexp.MustCompile(`^[ \t]*[-*+] `)
)

// BuildContext computes the Context for an occurrence of targetName at the
// given 0-based row of content, owned by source.
func BuildContext(content string, row int, source link.Link, targetName string) *Context {
	lines := strings.Split(content, "\n")
	ctx := &Context{
		Headings:    headingStack(lines, row),
		Specificity: dates.Specificity(targetName),
	}

	if row >= 0 && row < len(lines) {
		ctx.LineText = lines[row]
	}

	if d, ok := source.Day(); ok {
		ctx.Date = &d
	}

	for _, region := range BulletRegions(lines) {
		if row >= region[0] && row < region[1] {
			ctx.Block = lines[region[0]:region[1]]
			break
		}
	}

	return ctx
}

// headingStack scans rows 0..row and maintains the stack of headings active
// at row. For each heading of level L, every stacked heading of level >= L
// is popped before L is pushed, so the result reads outermost to innermost.
//
// Headings that look like noise (contain a degree symbol, or are nothing
// but a clock timestamp) are skipped entirely.
func headingStack(lines []string, row int) []string {
	type heading struct {
		level int
		text  string
	}
	var stack []heading

	if row > len(lines) {
		row = len(lines)
	}
	for i := 0; i < row; i++ {
		m := atxHeadingRegex.FindStringSubmatch(lines[i])
		if m == nil {
			continue
		}
		level := len(m[1])
		text := strings.TrimSpace(m[2])
		if text == "" || isNoiseHeading(text) {
			continue
		}
		for len(stack) > 0 && stack[len(stack)-1].level >= level {
			stack = stack[:len(stack)-1]
		}
		stack = append(stack, heading{level: level, text: text})
	}

	out := make([]string, len(stack))
	for i, h := range stack {
		out[i] = h.text
	}
	return out
}

func isNoiseHeading(text string) bool {
	return strings.ContainsRune(text, '°') || dates.IsBareTimestamp(text)
}

// BulletRegions finds the boundaries of bullet regions in a file with one
// linear scan: each region is a maximal contiguous run of list-item lines.
// Returned pairs are [start, end) row ranges.
//
// The region boundaries are part of the read API; consumers use them for
// outline rendering as well as context extraction.
func BulletRegions(lines []string) [][2]int {
	var regions [][2]int
	start := -1
	for i, line := range lines {
		if bulletLineRegex.MatchString(line) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			regions = append(regions, [2]int{start, i})
			start = -1
		}
	}
	if start >= 0 {
		regions = append(regions, [2]int{start, len(lines)})
	}
	return regions
}
