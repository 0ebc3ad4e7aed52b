package parser

import (
	"testing"

	"braindex/internal/link"
)

func kindsOf(n *Note, kind Kind) []LinkLocation {
	var out []LinkLocation
	for _, loc := range n.Locations {
		if loc.Kind == kind {
			out = append(out, loc)
		}
	}
	return out
}

func TestExtractWikiLinks(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{
			name:    "basic links",
			content: "See [[Roadmap]] and [[Projects/Infra]]",
			want:    []string{"Roadmap", "Projects/Infra"},
		},
		{
			name:    "links on multiple lines",
			content: "First [[a]]\nSecond [[b]]",
			want:    []string{"a", "b"},
		},
		{
			name:    "empty file",
			content: "",
			want:    nil,
		},
		{
			name:    "no matches",
			content: "plain text with [single] brackets",
			want:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			note := Extract(link.FromRawName("Src"), tt.content)
			links := kindsOf(note, KindLink)
			if len(links) != len(tt.want) {
				t.Fatalf("got %d links, want %d", len(links), len(tt.want))
			}
			for i, want := range tt.want {
				if links[i].Target.RawName != want {
					t.Errorf("link[%d] = %q, want %q", i, links[i].Target.RawName, want)
				}
			}
		})
	}
}

func TestExtractPositions(t *testing.T) {
	content := "first line\nsee [[Roadmap]] here"
	note := Extract(link.FromRawName("Src"), content)

	links := kindsOf(note, KindLink)
	if len(links) != 1 {
		t.Fatalf("got %d links, want 1", len(links))
	}
	if links[0].Row != 1 || links[0].Col != 4 {
		t.Errorf("position = (%d,%d), want (1,4)", links[0].Row, links[0].Col)
	}
	if links[0].Source.RawName != "Src" {
		t.Errorf("source = %q, want Src", links[0].Source.RawName)
	}
}

func TestExtractHrefs(t *testing.T) {
	content := "bookmark [My Site](https://example.com) and short [Doc](dx1)"
	note := Extract(link.FromRawName("Src"), content)

	hrefs := kindsOf(note, KindHref)
	if len(hrefs) != 2 {
		t.Fatalf("got %d hrefs, want 2", len(hrefs))
	}

	if hrefs[0].Target.RawName != "My Site" || hrefs[0].URL != "https://example.com" {
		t.Errorf("href[0] = %q %q", hrefs[0].Target.RawName, hrefs[0].URL)
	}
	if hrefs[0].Context == nil {
		t.Error("absolute URL href should carry a context")
	}

	// A non-URL target is a shortened-link code: passed through verbatim,
	// no context attached.
	if hrefs[1].URL != "dx1" {
		t.Errorf("href[1].URL = %q, want dx1", hrefs[1].URL)
	}
	if hrefs[1].Context != nil {
		t.Error("short-code href should not carry a context")
	}
}

func TestExtractHashtags(t *testing.T) {
	content := "#project_alpha stuff\nmid-line #deep/dive and x#not-a-tag"
	note := Extract(link.FromRawName("Src"), content)

	tags := kindsOf(note, KindHashtag)
	if len(tags) != 2 {
		t.Fatalf("got %d hashtags, want 2", len(tags))
	}
	// Underscores fold to spaces in the referenced name.
	if tags[0].Target.RawName != "project alpha" {
		t.Errorf("tag[0] = %q, want %q", tags[0].Target.RawName, "project alpha")
	}
	if tags[0].Row != 0 || tags[0].Col != 0 {
		t.Errorf("tag[0] position = (%d,%d), want (0,0)", tags[0].Row, tags[0].Col)
	}
	if tags[1].Target.RawName != "deep/dive" {
		t.Errorf("tag[1] = %q, want deep/dive", tags[1].Target.RawName)
	}
}

func TestExtractHeadings(t *testing.T) {
	content := "# top\n## Weekly Review\n### deeper\n## Ideas"
	note := Extract(link.FromRawName("Src"), content)

	headings := kindsOf(note, KindHeading)
	if len(headings) != 2 {
		t.Fatalf("got %d headings, want 2 (level-2 only)", len(headings))
	}
	if headings[0].Target.RawName != "Weekly Review" || headings[1].Target.RawName != "Ideas" {
		t.Errorf("headings = %q, %q", headings[0].Target.RawName, headings[1].Target.RawName)
	}
}

func TestExtractAliases(t *testing.T) {
	content := "[[JS]] = [[JavaScript]]\nplain [[Other]]"
	note := Extract(link.FromRawName("Src"), content)

	if len(note.Aliases) != 1 {
		t.Fatalf("got %d aliases, want 1", len(note.Aliases))
	}
	if note.Aliases[0].From != "JS" || note.Aliases[0].To != "JavaScript" {
		t.Errorf("alias = %+v", note.Aliases[0])
	}
}

func TestExtractTags(t *testing.T) {
	content := "tags:: go, indexing , graphs\nbody"
	note := Extract(link.FromRawName("Src"), content)

	want := []string{"go", "indexing", "graphs"}
	if len(note.Tags) != len(want) {
		t.Fatalf("got %v, want %v", note.Tags, want)
	}
	for i := range want {
		if note.Tags[i] != want[i] {
			t.Errorf("tag[%d] = %q, want %q", i, note.Tags[i], want[i])
		}
	}
}

func TestExtractTasks(t *testing.T) {
	content := "- TODO/work Buy milk\n- DONE ship release"
	note := Extract(link.FromRawName("Src"), content)

	if len(note.Tasks) != 2 {
		t.Fatalf("got %d tasks, want 2", len(note.Tasks))
	}
	if note.Tasks[0].Group != "work" || note.Tasks[0].Text != "Buy milk" {
		t.Errorf("task[0] = %+v", note.Tasks[0])
	}
	if note.Tasks[0].ID() != "BuyMilk" {
		t.Errorf("task id = %q, want BuyMilk", note.Tasks[0].ID())
	}
}

func TestIsAbsoluteURL(t *testing.T) {
	for _, u := range []string{"https://example.com", "http://x", "ftp://host/file", "mailto:a@b.c"} {
		if !IsAbsoluteURL(u) {
			t.Errorf("expected %q to be absolute", u)
		}
	}
	for _, u := range []string{"dx1", "short-code", "relative/path"} {
		if IsAbsoluteURL(u) {
			t.Errorf("expected %q to be a short code", u)
		}
	}
}
