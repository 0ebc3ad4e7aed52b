package watcher

import (
	"testing"
	"time"

	"braindex/internal/graph"
	"braindex/internal/lastedit"
	"braindex/internal/link"
	"braindex/internal/tasks"
	"braindex/internal/testutil"
)

func TestReindexFilePatchesSnapshot(t *testing.T) {
	c := testutil.NewCorpus(t)
	c.Write("A", "plain text")

	h := graph.NewHandle()
	h.Publish(graph.New())

	w, err := New(Config{Vault: c.Vault(), Handle: h})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	c.Write("A", "now links [[B]]")
	if err := w.ReindexFile(c.Vault().PathFor(link.FromRawName("A"))); err != nil {
		t.Fatalf("ReindexFile: %v", err)
	}

	n, ok := h.Current().Note("A")
	if !ok {
		t.Fatal("note A not in snapshot after reindex")
	}
	if len(n.Locations) != 1 || n.Locations[0].Target.RawName != "B" {
		t.Errorf("locations = %+v, want one link to B", n.Locations)
	}
}

func TestReindexFileBeforePublishFails(t *testing.T) {
	c := testutil.NewCorpus(t)
	c.Write("A", "x")

	w, err := New(Config{Vault: c.Vault(), Handle: graph.NewHandle()})
	if err != nil {
		t.Fatal(err)
	}
	if err := w.ReindexFile(c.Vault().PathFor(link.FromRawName("A"))); err == nil {
		t.Error("expected error when no snapshot is published")
	}
}

func TestReindexFileSkipsNonMarkdownAndHidden(t *testing.T) {
	c := testutil.NewCorpus(t)

	h := graph.NewHandle()
	h.Publish(graph.New())

	w, err := New(Config{Vault: c.Vault(), Handle: h})
	if err != nil {
		t.Fatal(err)
	}

	if err := w.ReindexFile("notes.txt"); err != nil {
		t.Errorf("non-markdown file: %v", err)
	}
	if err := w.ReindexFile(".trash/Old.md"); err != nil {
		t.Errorf("hidden path: %v", err)
	}
	if h.Current().Len() != 0 {
		t.Errorf("snapshot has %d notes, want 0", h.Current().Len())
	}
}

func TestReindexFileAttachesTasksAndStamps(t *testing.T) {
	c := testutil.NewCorpus(t)
	c.Write("A", "- TODO Buy milk")

	ts, err := tasks.OpenStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer ts.Close()

	es, err := lastedit.OpenStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer es.Close()

	h := graph.NewHandle()
	h.Publish(graph.New())

	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	w, err := New(Config{
		Vault:  c.Vault(),
		Handle: h,
		Tasks:  ts,
		Edits:  es,
		Now:    func() time.Time { return now },
	})
	if err != nil {
		t.Fatal(err)
	}

	if err := w.ReindexFile(c.Vault().PathFor(link.FromRawName("A"))); err != nil {
		t.Fatalf("ReindexFile: %v", err)
	}

	d, err := ts.Get("BuyMilk")
	if err != nil {
		t.Fatalf("task metadata not attached: %v", err)
	}
	if !d.CreatedAt.Equal(now) {
		t.Errorf("CreatedAt = %v, want %v", d.CreatedAt, now)
	}

	if got, ok := es.LastEdited("A"); !ok || !got.Equal(now) {
		t.Errorf("LastEdited = %v, %v; want %v", got, ok, now)
	}
}

func TestRemoveFromIndex(t *testing.T) {
	c := testutil.NewCorpus(t)
	c.Write("A", "x")

	h := graph.NewHandle()
	h.Publish(graph.New())

	w, err := New(Config{Vault: c.Vault(), Handle: h})
	if err != nil {
		t.Fatal(err)
	}

	path := c.Vault().PathFor(link.FromRawName("A"))
	if err := w.ReindexFile(path); err != nil {
		t.Fatal(err)
	}
	if err := w.RemoveFromIndex(path); err != nil {
		t.Fatalf("RemoveFromIndex: %v", err)
	}
	if _, ok := h.Current().Note("A"); ok {
		t.Error("note A still in snapshot after removal")
	}
}
