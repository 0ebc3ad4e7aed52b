package shortlink

import (
	"path/filepath"
	"testing"

	"braindex/internal/testutil"
)

func TestLoadMissingInventory(t *testing.T) {
	inv, err := Load(filepath.Join(t.TempDir(), "hrefs.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(inv.Codes) != 0 {
		t.Errorf("codes = %v, want empty", inv.Codes)
	}
}

func TestShortenAndSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hrefs.yaml")
	inv, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	code := inv.Shorten("https://example.com/post", "My Great Post")
	if code != "my-great-post" {
		t.Errorf("code = %q, want my-great-post", code)
	}

	// Same URL keeps its code.
	if again := inv.Shorten("https://example.com/post", "Other Title"); again != code {
		t.Errorf("re-shorten = %q, want %q", again, code)
	}

	// Colliding titles get suffixed.
	other := inv.Shorten("https://example.com/other", "My Great Post")
	if other != "my-great-post-2" {
		t.Errorf("collision code = %q, want my-great-post-2", other)
	}

	if err := inv.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Codes[code] != "https://example.com/post" {
		t.Errorf("loaded codes = %v", loaded.Codes)
	}
}

func TestRestore(t *testing.T) {
	c := testutil.NewCorpus(t)
	c.Write("A", "see [My Post](my-great-post) twice [x](my-great-post)")
	c.Write("B", "unrelated [link](https://already.example.com)")

	inv := &Inventory{Codes: map[string]string{
		"my-great-post": "https://example.com/post",
	}}

	changed, errs := inv.Restore(c.Vault())
	if len(errs) != 0 {
		t.Fatalf("errors: %v", errs)
	}
	if changed != 1 {
		t.Errorf("changed = %d, want 1", changed)
	}

	c.AssertContains("A", "[My Post](https://example.com/post)")
	c.AssertContains("A", "[x](https://example.com/post)")
	c.AssertNotContains("A", "my-great-post")
	c.AssertContains("B", "https://already.example.com")
}
