package cli

import (
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Flag names are part of the scripting surface; keep them kebab-case and
// free of shorthand collisions across the whole command tree.
func TestFlagNamesAreKebabCase(t *testing.T) {
	var walk func(c *cobra.Command)
	walk = func(c *cobra.Command) {
		check := func(f *pflag.Flag) {
			if f.Name != strings.ToLower(f.Name) || strings.Contains(f.Name, "_") {
				t.Errorf("%s: flag --%s is not kebab-case", c.CommandPath(), f.Name)
			}
		}
		c.LocalFlags().VisitAll(check)
		c.PersistentFlags().VisitAll(check)
		for _, sub := range c.Commands() {
			walk(sub)
		}
	}
	walk(rootCmd)
}

func TestNoDuplicateShorthands(t *testing.T) {
	var walk func(c *cobra.Command, inherited map[string]string)
	walk = func(c *cobra.Command, inherited map[string]string) {
		seen := make(map[string]string, len(inherited))
		for k, v := range inherited {
			seen[k] = v
		}
		collect := func(f *pflag.Flag) {
			if f.Shorthand == "" {
				return
			}
			if prev, ok := seen[f.Shorthand]; ok && prev != f.Name {
				t.Errorf("%s: shorthand -%s used by both --%s and --%s",
					c.CommandPath(), f.Shorthand, prev, f.Name)
				return
			}
			seen[f.Shorthand] = f.Name
		}
		c.PersistentFlags().VisitAll(collect)
		c.LocalFlags().VisitAll(collect)
		for _, sub := range c.Commands() {
			walk(sub, seen)
		}
	}
	walk(rootCmd, nil)
}
