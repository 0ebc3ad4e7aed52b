package graph

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"braindex/internal/link"
	"braindex/internal/parser"
	"braindex/internal/vault"
)

// Rename is an intended file move produced by normalization planning.
type Rename struct {
	From link.Link
	To   link.Link
}

// Intent is the planned resolution of one case-conflicting name group: the
// chosen canonical spelling, the variants to rewrite, and the file renames
// that follow from notes named by a non-canonical variant.
type Intent struct {
	Canonical string
	Variants  []string
	Renames   []Rename
}

// PlanNormalization groups all distinct raw names by lowercase form and,
// for every group with more than one casing, picks the canonical spelling:
// the variant with the most literal occurrences across the corpus (wiki-
// link and markdown-link forms only), ties broken by the variant with more
// uppercase characters.
//
// Planning is pure: it returns intents and touches nothing. Intents are
// ordered by group for determinism.
func (ix *Index) PlanNormalization() []Intent {
	ix.mu.Lock()
	names := ix.rawNamesLocked()
	groups := make(map[string][]string)
	for _, name := range names {
		key := strings.ToLower(name)
		groups[key] = append(groups[key], name)
	}
	contents := make([]string, 0, len(ix.notes))
	for _, n := range ix.notes {
		contents = append(contents, n.Content)
	}
	noteNames := make(map[string]struct{}, len(ix.notes))
	for name := range ix.notes {
		noteNames[name] = struct{}{}
	}
	ix.mu.Unlock()

	keys := make([]string, 0, len(groups))
	for key, variants := range groups {
		if len(variants) > 1 {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	var intents []Intent
	for _, key := range keys {
		variants := groups[key]
		sort.Strings(variants)

		canonical := pickCanonical(variants, contents)

		intent := Intent{Canonical: canonical}
		for _, v := range variants {
			if v == canonical {
				continue
			}
			intent.Variants = append(intent.Variants, v)
			if _, isNote := noteNames[v]; isNote {
				intent.Renames = append(intent.Renames, Rename{
					From: link.FromRawName(v),
					To:   link.FromRawName(canonical),
				})
			}
		}
		intents = append(intents, intent)
	}
	return intents
}

func pickCanonical(variants []string, contents []string) string {
	best := variants[0]
	bestCount := -1
	for _, v := range variants {
		count := 0
		for _, content := range contents {
			count += strings.Count(content, "[["+v+"]]")
			count += strings.Count(content, "]("+v+")")
		}
		switch {
		case count > bestCount:
			best, bestCount = v, count
		case count == bestCount && uppercaseCount(v) > uppercaseCount(best):
			best = v
		}
	}
	return best
}

func uppercaseCount(s string) int {
	n := 0
	for _, r := range s {
		if unicode.IsUpper(r) {
			n++
		}
	}
	return n
}

// ApplyNormalization applies intents to the filesystem and the in-memory
// graph. Disk failures are collected and skipped per intent; the in-memory
// canonical choice applies regardless, which can leave disk and index
// briefly inconsistent until the next successful rebuild.
func (ix *Index) ApplyNormalization(v *vault.Vault, intents []Intent) []error {
	var errs []error

	for _, intent := range intents {
		// Rewrite pass: replace every linked occurrence of a variant.
		for _, n := range ix.AllNotes() {
			rewritten := n.Content
			for _, variant := range intent.Variants {
				rewritten = strings.ReplaceAll(rewritten, "[["+variant+"]]", "[["+intent.Canonical+"]]")
				rewritten = strings.ReplaceAll(rewritten, "]("+variant+")", "]("+intent.Canonical+")")
			}
			if rewritten == n.Content {
				continue
			}
			if v != nil {
				if err := v.Write(v.PathFor(n.Link), rewritten); err != nil {
					errs = append(errs, fmt.Errorf("case fix in %q: %w", n.Link.RawName, err))
				}
			}
			ix.AddNote(parser.Extract(n.Link, rewritten))
		}

		// Rename pass: move or textually merge notes named by a variant.
		for _, r := range intent.Renames {
			if err := ix.applyRename(v, r); err != nil {
				errs = append(errs, fmt.Errorf("rename %q to %q: %w", r.From.RawName, r.To.RawName, err))
			}
		}
	}

	return errs
}

func (ix *Index) applyRename(v *vault.Vault, r Rename) error {
	variantNote, ok := ix.Note(r.From.RawName)
	if !ok {
		return nil
	}
	canonNote, hasCanon := ix.Note(r.To.RawName)

	var diskErr error
	if hasCanon {
		// Both spellings exist as files: merge the variant's text into the
		// canonical note and drop the variant file.
		merged := strings.TrimRight(canonNote.Content, "\n") + "\n\n" + variantNote.Content
		if v != nil {
			if diskErr = v.Write(v.PathFor(r.To), merged); diskErr == nil {
				diskErr = v.Remove(v.PathFor(r.From))
			}
		}
		ix.RemoveNote(r.From.RawName)
		ix.AddNote(parser.Extract(r.To, merged))
	} else {
		if v != nil {
			diskErr = v.Rename(v.PathFor(r.From), v.PathFor(r.To))
		}
		ix.RemoveNote(r.From.RawName)
		ix.AddNote(parser.Extract(r.To, variantNote.Content))
	}
	return diskErr
}
