// Package vault is the filesystem collaborator the engine reads notes
// from: recursive markdown listing, UTF-8 reads, atomic writes, renames,
// and single-root resolution.
package vault

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"braindex/internal/atomicfile"
	"braindex/internal/link"
)

var (
	// ErrNoRoot indicates no notes root is configured.
	ErrNoRoot = errors.New("no notes root configured")
	// ErrMultipleRoots indicates more than one notes root is configured,
	// which is a fatal configuration error, not a merge request.
	ErrMultipleRoots = errors.New("more than one notes root configured")
)

// Vault is a single notes root on the local filesystem.
type Vault struct {
	Root string
}

// Resolve validates the configured roots and returns the single active
// vault. Zero roots or more than one root is fatal.
func Resolve(roots []string) (*Vault, error) {
	switch len(roots) {
	case 0:
		return nil, ErrNoRoot
	case 1:
		return New(roots[0])
	default:
		return nil, fmt.Errorf("%w: %s", ErrMultipleRoots, strings.Join(roots, ", "))
	}
}

// New creates a Vault for an existing directory.
func New(root string) (*Vault, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve notes root %q: %w", root, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("notes root %q: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("notes root %q is not a directory", root)
	}
	return &Vault{Root: abs}, nil
}

// ListMarkdown returns the absolute paths of all markdown files under the
// root, recursively, skipping hidden directories.
func (v *Vault) ListMarkdown() ([]string, error) {
	var paths []string
	err := filepath.WalkDir(v.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != v.Root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(path, ".md") {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list notes under %s: %w", v.Root, err)
	}
	return paths, nil
}

// Read reads a file as UTF-8 text.
func (v *Vault) Read(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}

// Write replaces a file's content atomically.
func (v *Vault) Write(path string, content string) error {
	if err := atomicfile.WriteFile(path, []byte(content), 0); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// Rename moves a file. It refuses to clobber an existing destination.
func (v *Vault) Rename(oldPath, newPath string) error {
	if _, err := os.Stat(newPath); err == nil {
		return fmt.Errorf("rename target already exists: %s", newPath)
	}
	if err := os.Rename(oldPath, newPath); err != nil {
		return fmt.Errorf("failed to rename %s: %w", oldPath, err)
	}
	return nil
}

// Remove deletes a file.
func (v *Vault) Remove(path string) error {
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("failed to remove %s: %w", path, err)
	}
	return nil
}

// PathFor resolves a link to its absolute file path in this vault.
func (v *Vault) PathFor(l link.Link) string {
	return l.FilePath(v.Root)
}

// Exists reports whether a link's backing file exists. Absent files are
// not an error.
func (v *Vault) Exists(l link.Link) bool {
	_, err := os.Stat(v.PathFor(l))
	return err == nil
}

// ReadLink reads a link's backing file. ok is false when the file is
// absent.
func (v *Vault) ReadLink(l link.Link) (content string, ok bool, err error) {
	data, err := os.ReadFile(v.PathFor(l))
	if errors.Is(err, os.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read note %s: %w", l.RawName, err)
	}
	return string(data), true, nil
}
