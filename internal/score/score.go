// Package score implements the relevance functions shared by search,
// autocomplete, and alias resolution: a two-pointer fuzzy matcher, recency
// decays, and a corpus-normalized frequency curve.
//
// The constants here define ranking behavior and are load-bearing; changing
// any of them reorders results for every consumer.
package score

import (
	"math"
	"sort"
	"strings"
	"time"
)

// Floor bounds every composite signal below so that low-information inputs
// degrade results instead of zeroing them.
const Floor = 0.2

// autocompleteFloor is the higher floor applied to the recency and
// frequency factors of the autocomplete blend, which favors very recent
// activity over corpus statistics.
const autocompleteFloor = 0.75

// Half-lives for the exponential decays, in days.
const (
	dateHalfLifeDays    = 90.0
	recencyHalfLifeDays = 31.0
)

// substringBonus is the flat reward when the raw text contains the raw
// search as a literal substring, case-insensitively.
const substringBonus = 10.0

// Match is the single-pass two-pointer fuzzy matcher.
//
// Both strings are reduced to their lowercase alphanumeric skeletons. The
// text cursor advances on every step; the search cursor advances only on a
// hit. Consecutive hits build a streak (starting at 2, growing by 2 per
// hit, reset on a miss) whose square is added per hit, so contiguous
// matches dominate scattered ones. Leftover search characters and unmatched
// trailing text shrink the score smoothly via the final multiplier rather
// than rejecting outright.
//
// An empty search scores 0 by convention (pinned by test), as does text
// with no alphanumeric content.
func Match(search, text string) float64 {
	s := stripAlnum(search)
	t := stripAlnum(text)
	if len(s) == 0 || len(t) == 0 {
		return 0
	}

	raw := 0.0
	streak := 2.0
	si, ti := 0, 0
	for si < len(s) && ti < len(t) {
		if s[si] == t[ti] {
			raw += streak * streak
			streak += 2
			si++
		} else {
			streak = 2
		}
		ti++
	}

	if strings.Contains(strings.ToLower(text), strings.ToLower(search)) {
		raw += substringBonus
	}

	textPenalty := float64(len(t)-ti) / float64(len(t))
	searchPenalty := float64(len(s)-si) / float64(len(s))
	return raw * (2 - (textPenalty + searchPenalty))
}

func stripAlnum(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Date is the slow exponential decay (90-day half-life) over the distance
// between now and a note's last edit. Used by href ranking, which favors
// old-but-established bookmarks.
func Date(now, lastEdited time.Time) float64 {
	return halfLife(now, lastEdited, dateHalfLifeDays)
}

// Recency is the fast exponential decay (31-day half-life) over the
// distance between now and a note's last edit.
func Recency(now, lastEdited time.Time) float64 {
	return halfLife(now, lastEdited, recencyHalfLifeDays)
}

func halfLife(now, lastEdited time.Time, halfLifeDays float64) float64 {
	if lastEdited.IsZero() {
		return Floor
	}
	ageDays := math.Abs(now.Sub(lastEdited).Hours()) / 24
	return math.Max(Floor, math.Pow(0.5, ageDays/halfLifeDays))
}

// Baseline computes the frequency normalization constant: the mean
// occurrence count of the top decile of targets (at least one).
func Baseline(counts []int) float64 {
	if len(counts) == 0 {
		return 0
	}
	sorted := make([]int, len(counts))
	copy(sorted, counts)
	sort.Sort(sort.Reverse(sort.IntSlice(sorted)))

	n := (len(sorted) + 9) / 10
	sum := 0
	for _, c := range sorted[:n] {
		sum += c
	}
	return float64(sum) / float64(n)
}

// Frequency maps a raw occurrence count through a log curve normalized
// against the corpus baseline, clamped to [Floor, 1].
func Frequency(count int, baseline float64) float64 {
	if count <= 0 {
		return Floor
	}
	if baseline <= 0 {
		return 1
	}
	v := math.Log1p(float64(count)) / math.Log1p(baseline)
	return math.Min(1, math.Max(Floor, v))
}

// HrefRank blends scores for href ranking: match x date x recency^2 x
// frequency. Hrefs favor old but frequently referenced bookmarks.
func HrefRank(match, date, recency, frequency float64) float64 {
	return match * date * recency * recency * frequency
}

// LinkRank blends scores for link search: match x recency x frequency.
func LinkRank(match, recency, frequency float64) float64 {
	return match * recency * frequency
}

// AutocompleteRank blends scores for autocomplete: match x recency x
// frequency, with recency and frequency floored at 0.75 so that very
// recent activity dominates without starving the long tail.
func AutocompleteRank(match, recency, frequency float64) float64 {
	return match * math.Max(autocompleteFloor, recency) * math.Max(autocompleteFloor, frequency)
}
