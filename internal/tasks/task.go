// Package tasks models task lines found in notes and their persisted
// metadata.
//
// A task line has the form:
//
//	- TODO buy milk
//	- DOING/work draft the report
//	- DONE/home water plants
//
// The engine never drives state transitions itself; it re-derives state
// from the line text on every scan. The persisted companion record
// (Data) survives across scans, keyed by the task's derived id.
package tasks

import (
	"regexp"
	"strings"
	"time"

	"braindex/internal/link"
)

// State is a task's lifecycle state as written in its status token.
type State string

// Task states.
const (
	StateTodo  State = "TODO"
	StateDoing State = "DOING"
	StateDone  State = "DONE"
)

// GroupSnoozed is the synthetic group reported for currently snoozed tasks.
const GroupSnoozed = "Snoozed"

// doingBonus is the flat priority bump for in-progress tasks.
const doingBonus = 3.0

// agingRatePerHour is the linear priority creep for aging tasks
// (0.33 per day, expressed per hour).
const agingRatePerHour = 0.33 / 24

var taskLineRegex = regexp.MustCompile(`(?m)^[ \t]*- (TODO|DOING|DONE)(?:/([\w-]+))? +(.+)$`)

// Task is one task line, re-created fresh on every scan of its file.
type Task struct {
	State  State
	Group  string // explicit group from the line, "" if none
	Text   string
	Source link.Link
	Row    int // 0-based row of the line in the source file

	// Data is the persisted companion record, attached by a Store.
	Data *Data
}

// Extract parses all task lines in content. Rows are 0-based.
func Extract(source link.Link, content string) []Task {
	var out []Task
	matches := taskLineRegex.FindAllStringSubmatchIndex(content, -1)
	for _, m := range matches {
		row := strings.Count(content[:m[0]], "\n")
		t := Task{
			State:  State(content[m[2]:m[3]]),
			Text:   strings.TrimSpace(content[m[6]:m[7]]),
			Source: source,
			Row:    row,
		}
		if m[4] >= 0 {
			t.Group = content[m[4]:m[5]]
		}
		out = append(out, t)
	}
	return out
}

// ID returns the task's persistence key: the task text with every
// non-alphanumeric rune stripped, case preserved.
//
// Two distinct tasks that reduce to the same alphanumeric skeleton collide
// and share persisted metadata. This is a known property of the key scheme,
// kept for compatibility with existing metadata stores.
func (t *Task) ID() string {
	return StripID(t.Text)
}

// StripID reduces text to its alphanumeric skeleton.
func StripID(text string) string {
	var b strings.Builder
	for _, r := range text {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// EffectiveGroup returns the group the task is displayed under: the
// synthetic Snoozed group while a snooze is active, otherwise the explicit
// group from the line, otherwise "".
func (t *Task) EffectiveGroup(now time.Time) string {
	if t.Data != nil && t.Data.SnoozedAt(now) {
		return GroupSnoozed
	}
	return t.Group
}

// Prio computes the task's display priority: the persisted manual offset,
// plus a linear age ramp, plus a flat bonus for DOING tasks.
func (t *Task) Prio(now time.Time) float64 {
	prio := 0.0
	if t.Data != nil {
		prio = t.Data.Priority
		if !t.Data.CreatedAt.IsZero() {
			age := now.Sub(t.Data.CreatedAt).Hours()
			if age > 0 {
				prio += age * agingRatePerHour
			}
		}
	}
	if t.State == StateDoing {
		prio += doingBonus
	}
	return prio
}

// Data is the persisted per-task record. It survives rescans; the Task it
// belongs to is rebuilt from text every scan.
type Data struct {
	SnoozeUntil time.Time // zero when not snoozed
	CreatedAt   time.Time
	DoneAt      time.Time
	Priority    float64 // manual offset
}

// SnoozedAt reports whether the task is snoozed at the given instant.
func (d *Data) SnoozedAt(now time.Time) bool {
	return !d.SnoozeUntil.IsZero() && now.Before(d.SnoozeUntil)
}
