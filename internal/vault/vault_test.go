package vault

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"braindex/internal/link"
)

func newTestVault(t *testing.T) *Vault {
	t.Helper()
	v, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return v
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestResolve(t *testing.T) {
	dir := t.TempDir()

	if _, err := Resolve(nil); !errors.Is(err, ErrNoRoot) {
		t.Errorf("Resolve(nil) = %v, want ErrNoRoot", err)
	}
	if _, err := Resolve([]string{dir, dir}); !errors.Is(err, ErrMultipleRoots) {
		t.Errorf("Resolve(two roots) = %v, want ErrMultipleRoots", err)
	}
	if v, err := Resolve([]string{dir}); err != nil || v.Root == "" {
		t.Errorf("Resolve(one root) = %v, %v", v, err)
	}
}

func TestListMarkdown(t *testing.T) {
	v := newTestVault(t)
	writeFile(t, filepath.Join(v.Root, "a.md"), "a")
	writeFile(t, filepath.Join(v.Root, "sub", "b.md"), "b")
	writeFile(t, filepath.Join(v.Root, "notes.txt"), "skip")
	writeFile(t, filepath.Join(v.Root, ".hidden", "c.md"), "skip")

	paths, err := v.ListMarkdown()
	if err != nil {
		t.Fatalf("ListMarkdown: %v", err)
	}
	if len(paths) != 2 {
		t.Fatalf("got %d paths, want 2: %v", len(paths), paths)
	}
}

func TestLinkRoundTripThroughVault(t *testing.T) {
	v := newTestVault(t)
	l := link.FromRawName("Projects/Roadmap")
	writeFile(t, v.PathFor(l), "content")

	if !v.Exists(l) {
		t.Error("expected link to exist")
	}
	content, ok, err := v.ReadLink(l)
	if err != nil || !ok || content != "content" {
		t.Errorf("ReadLink = %q, %v, %v", content, ok, err)
	}

	absent := link.FromRawName("Nope")
	if v.Exists(absent) {
		t.Error("absent link must not exist")
	}
	if _, ok, err := v.ReadLink(absent); ok || err != nil {
		t.Errorf("ReadLink(absent) = %v, %v; want false, nil", ok, err)
	}
}

func TestWriteAndRename(t *testing.T) {
	v := newTestVault(t)
	path := filepath.Join(v.Root, "a.md")
	writeFile(t, path, "old")

	if err := v.Write(path, "new"); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, err := v.Read(path)
	if err != nil || got != "new" {
		t.Fatalf("Read = %q, %v", got, err)
	}

	dst := filepath.Join(v.Root, "b.md")
	if err := v.Rename(path, dst); err != nil {
		t.Fatalf("Rename: %v", err)
	}

	writeFile(t, path, "again")
	if err := v.Rename(path, dst); err == nil {
		t.Error("Rename onto an existing file must fail")
	}
}
