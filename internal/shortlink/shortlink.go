// Package shortlink manages the shortened-href inventory: a YAML file
// mapping short codes to full URLs. Notes carry `[title](code)` while the
// inventory remembers the real URL; the restore pass expands every code
// back into its URL across the corpus.
package shortlink

import (
	"fmt"
	"os"
	"regexp"
	"sort"

	"github.com/gosimple/slug"
	"gopkg.in/yaml.v3"

	"braindex/internal/atomicfile"
	"braindex/internal/vault"
)

// Inventory is the code-to-URL map plus its backing file.
type Inventory struct {
	path string

	// Codes maps a short code to the full URL it stands for.
	Codes map[string]string `yaml:"codes"`
}

// Load reads the inventory at path. A missing file yields an empty
// inventory, not an error.
func Load(path string) (*Inventory, error) {
	inv := &Inventory{path: path, Codes: make(map[string]string)}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return inv, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read shortlink inventory: %w", err)
	}
	if err := yaml.Unmarshal(data, inv); err != nil {
		return nil, fmt.Errorf("failed to parse shortlink inventory: %w", err)
	}
	if inv.Codes == nil {
		inv.Codes = make(map[string]string)
	}
	return inv, nil
}

// Save writes the inventory back to its file atomically.
func (inv *Inventory) Save() error {
	data, err := yaml.Marshal(inv)
	if err != nil {
		return fmt.Errorf("failed to encode shortlink inventory: %w", err)
	}
	if err := atomicfile.WriteFile(inv.path, data, 0); err != nil {
		return fmt.Errorf("failed to write shortlink inventory: %w", err)
	}
	return nil
}

// Shorten registers a URL and returns its short code. An already known URL
// keeps its existing code. Fresh codes are slugged from the title (or the
// URL when no title is given) and suffixed on collision.
func (inv *Inventory) Shorten(url, title string) string {
	for code, known := range inv.Codes {
		if known == url {
			return code
		}
	}

	base := title
	if base == "" {
		base = url
	}
	code := slug.Make(base)
	if code == "" {
		code = "link"
	}

	candidate := code
	for n := 2; ; n++ {
		if _, taken := inv.Codes[candidate]; !taken {
			break
		}
		candidate = fmt.Sprintf("%s-%d", code, n)
	}
	inv.Codes[candidate] = url
	return candidate
}

// Restore rewrites every `[title](code)` occurrence across the vault back
// to `[title](url)`. Per-file failures are collected; the pass continues
// with the remaining files. Returns the number of rewritten files.
func (inv *Inventory) Restore(v *vault.Vault) (int, []error) {
	var errs []error

	paths, err := v.ListMarkdown()
	if err != nil {
		return 0, []error{err}
	}

	// Stable order so repeated runs touch files identically.
	codes := make([]string, 0, len(inv.Codes))
	for code := range inv.Codes {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	changed := 0
	for _, path := range paths {
		content, err := v.Read(path)
		if err != nil {
			errs = append(errs, err)
			continue
		}

		rewritten := content
		for _, code := range codes {
			pattern := regexp.MustCompile(`(\[[^\[\]]*\])\(` + regexp.QuoteMeta(code) + `\)`)
			rewritten = pattern.ReplaceAllString(rewritten, "${1}("+inv.Codes[code]+")")
		}
		if rewritten == content {
			continue
		}
		if err := v.Write(path, rewritten); err != nil {
			errs = append(errs, err)
			continue
		}
		changed++
	}
	return changed, errs
}
