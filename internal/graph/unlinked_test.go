package graph

import (
	"testing"

	"braindex/internal/parser"
)

func unlinkedOf(ix *Index, target string) []parser.LinkLocation {
	var out []parser.LinkLocation
	for _, loc := range ix.AllLinkLocations() {
		if loc.Kind == parser.KindUnlinked && loc.Target.RawName == target {
			out = append(out, loc)
		}
	}
	return out
}

func TestUnlinkedMentionSynthesis(t *testing.T) {
	ix := New()
	ix.AddNote(note("Roadmap", "the plan"))
	ix.AddNote(note("A", "we discussed Roadmap today and [[Roadmap]] too"))

	ix.RefreshUnlinkedMentions()

	mentions := unlinkedOf(ix, "Roadmap")
	if len(mentions) != 1 {
		t.Fatalf("got %d unlinked mentions, want 1 (wrapped occurrence excluded)", len(mentions))
	}
	m := mentions[0]
	if m.Source.RawName != "A" || m.Row != 0 || m.Col != 13 {
		t.Errorf("mention = source %q at (%d,%d), want A at (0,13)", m.Source.RawName, m.Row, m.Col)
	}
	if m.Context == nil {
		t.Error("unlinked mention should carry a context")
	}
}

func TestUnlinkedMentionBoundaries(t *testing.T) {
	ix := New()
	ix.AddNote(note("Road", "x"))
	ix.AddNote(note("A", "Roadmap is not Road mention, but Road is; #Road isn't"))

	ix.RefreshUnlinkedMentions()

	mentions := unlinkedOf(ix, "Road")
	if len(mentions) != 2 {
		t.Fatalf("got %d mentions, want 2 (word-bounded, hashtag excluded)", len(mentions))
	}
}

func TestUnlinkedMentionExcludesHrefTitles(t *testing.T) {
	ix := New()
	ix.AddNote(note("Roadmap", "x"))
	ix.AddNote(note("A", "see [My Roadmap](https://example.com) and [Roadmap](https://example.com), then Roadmap proper"))

	ix.RefreshUnlinkedMentions()

	mentions := unlinkedOf(ix, "Roadmap")
	if len(mentions) != 1 {
		t.Fatalf("got %d mentions, want 1 (occurrences inside href titles excluded)", len(mentions))
	}
	if m := mentions[0]; m.Row != 0 || m.Col != 79 {
		t.Errorf("mention at (%d,%d), want the bare trailing occurrence at (0,79)", m.Row, m.Col)
	}
}

func TestUnlinkedMentionSkipsSelf(t *testing.T) {
	ix := New()
	ix.AddNote(note("Roadmap", "Roadmap references itself here"))

	ix.RefreshUnlinkedMentions()

	if got := unlinkedOf(ix, "Roadmap"); len(got) != 0 {
		t.Errorf("self-mentions must not synthesize edges, got %d", len(got))
	}
}

func TestUnlinkedMentionIdempotent(t *testing.T) {
	ix := New()
	ix.AddNote(note("Roadmap", "x"))
	ix.AddNote(note("A", "Roadmap twice: Roadmap"))

	ix.RefreshUnlinkedMentions()
	first := len(unlinkedOf(ix, "Roadmap"))

	ix.RefreshUnlinkedMentions()
	second := len(unlinkedOf(ix, "Roadmap"))

	if first != 2 || second != first {
		t.Errorf("mention counts = %d then %d, want 2 both times", first, second)
	}
}

func TestNoMentionWithoutLiteralText(t *testing.T) {
	// Scenario: A links to B, B has no back-reference text at all.
	ix := New()
	ix.AddNote(note("A", "[[B]]"))
	ix.AddNote(note("B", "nothing relevant"))

	ix.RefreshUnlinkedMentions()

	if got := unlinkedOf(ix, "A"); len(got) != 0 {
		t.Errorf("no literal text, no unlinked edges; got %d", len(got))
	}
}
