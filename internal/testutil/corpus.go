// Package testutil provides a temp-directory note corpus for tests.
package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"braindex/internal/link"
	"braindex/internal/vault"
)

// Corpus is a temporary notes root populated by a test.
type Corpus struct {
	t    *testing.T
	Root string
}

// NewCorpus creates an empty corpus under t.TempDir().
func NewCorpus(t *testing.T) *Corpus {
	t.Helper()
	return &Corpus{t: t, Root: t.TempDir()}
}

// Write creates or replaces the note with the given raw name.
func (c *Corpus) Write(name, content string) {
	c.t.Helper()
	path := link.FromRawName(name).FilePath(c.Root)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		c.t.Fatalf("mkdir for %s: %v", name, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		c.t.Fatalf("write %s: %v", name, err)
	}
}

// Read returns the note's current content.
func (c *Corpus) Read(name string) string {
	c.t.Helper()
	data, err := os.ReadFile(link.FromRawName(name).FilePath(c.Root))
	if err != nil {
		c.t.Fatalf("read %s: %v", name, err)
	}
	return string(data)
}

// Exists reports whether the note's backing file exists.
func (c *Corpus) Exists(name string) bool {
	_, err := os.Stat(link.FromRawName(name).FilePath(c.Root))
	return err == nil
}

// Vault opens the corpus as a vault.
func (c *Corpus) Vault() *vault.Vault {
	c.t.Helper()
	v, err := vault.New(c.Root)
	if err != nil {
		c.t.Fatalf("vault: %v", err)
	}
	return v
}

// AssertContains fails unless the note's content contains substr.
func (c *Corpus) AssertContains(name, substr string) {
	c.t.Helper()
	if content := c.Read(name); !strings.Contains(content, substr) {
		c.t.Errorf("expected %s to contain %q, got:\n%s", name, substr, content)
	}
}

// AssertNotContains fails if the note's content contains substr.
func (c *Corpus) AssertNotContains(name, substr string) {
	c.t.Helper()
	if content := c.Read(name); strings.Contains(content, substr) {
		c.t.Errorf("expected %s to not contain %q, got:\n%s", name, substr, content)
	}
}
