package parser

import (
	"strings"
	"testing"

	"braindex/internal/link"
)

func TestHeadingStackOrdering(t *testing.T) {
	content := strings.Join([]string{
		"## Projects",
		"### Infra",
		"line with [[target]]",
	}, "\n")

	ctx := BuildContext(content, 2, link.FromRawName("Src"), "target")

	// Outer heading always precedes the inner one.
	want := []string{"Projects", "Infra"}
	if len(ctx.Headings) != len(want) {
		t.Fatalf("headings = %v, want %v", ctx.Headings, want)
	}
	for i := range want {
		if ctx.Headings[i] != want[i] {
			t.Fatalf("headings = %v, want %v", ctx.Headings, want)
		}
	}
}

func TestHeadingStackPopsSiblings(t *testing.T) {
	content := strings.Join([]string{
		"## First",
		"### Sub of first",
		"## Second",
		"occurrence row",
	}, "\n")

	ctx := BuildContext(content, 3, link.FromRawName("Src"), "x")
	if len(ctx.Headings) != 1 || ctx.Headings[0] != "Second" {
		t.Errorf("headings = %v, want [Second]", ctx.Headings)
	}
}

func TestHeadingStackFiltersNoise(t *testing.T) {
	content := strings.Join([]string{
		"## Weather 21° outside",
		"## 14:05",
		"## Real Heading",
		"row",
	}, "\n")

	ctx := BuildContext(content, 3, link.FromRawName("Src"), "x")
	if len(ctx.Headings) != 1 || ctx.Headings[0] != "Real Heading" {
		t.Errorf("headings = %v, want [Real Heading]", ctx.Headings)
	}
}

func TestBulletRegions(t *testing.T) {
	lines := []string{
		"intro",
		"- a",
		"  - a1",
		"- b",
		"",
		"prose",
		"- second region",
	}

	regions := BulletRegions(lines)
	want := [][2]int{{1, 4}, {6, 7}}
	if len(regions) != len(want) {
		t.Fatalf("regions = %v, want %v", regions, want)
	}
	for i := range want {
		if regions[i] != want[i] {
			t.Errorf("region[%d] = %v, want %v", i, regions[i], want[i])
		}
	}
}

func TestContextBlockAndLine(t *testing.T) {
	content := strings.Join([]string{
		"## Heading",
		"- item one",
		"  - item [[two]]",
		"- item three",
		"after",
	}, "\n")

	ctx := BuildContext(content, 2, link.FromRawName("Src"), "two")

	if ctx.LineText != "  - item [[two]]" {
		t.Errorf("LineText = %q", ctx.LineText)
	}
	if len(ctx.Block) != 3 || ctx.Block[0] != "- item one" || ctx.Block[2] != "- item three" {
		t.Errorf("Block = %v", ctx.Block)
	}

	outside := BuildContext(content, 4, link.FromRawName("Src"), "two")
	if outside.Block != nil {
		t.Errorf("Block outside a region = %v, want nil", outside.Block)
	}
}

func TestContextDateAndSpecificity(t *testing.T) {
	ctx := BuildContext("x", 0, link.FromRawName("2025-04-01"), "2025-04")
	if ctx.Date == nil || ctx.Date.Month() != 4 {
		t.Errorf("Date = %v, want April day note date", ctx.Date)
	}
	if ctx.Specificity != 3 {
		t.Errorf("Specificity = %d, want 3", ctx.Specificity)
	}

	plain := BuildContext("x", 0, link.FromRawName("NotADate"), "NotADate")
	if plain.Date != nil || plain.Specificity != 0 {
		t.Errorf("plain context = %+v", plain)
	}
}

func TestContextDeterminism(t *testing.T) {
	content := "## H\n- a [[b]]\n"
	a := BuildContext(content, 1, link.FromRawName("S"), "b")
	b := BuildContext(content, 1, link.FromRawName("S"), "b")

	if a.LineText != b.LineText || len(a.Headings) != len(b.Headings) || len(a.Block) != len(b.Block) {
		t.Errorf("contexts differ: %+v vs %+v", a, b)
	}
}
