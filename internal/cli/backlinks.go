package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"braindex/internal/ui"
)

// backlinkJSON is the JSON representation of one backlink.
type backlinkJSON struct {
	Source   string   `json:"source"`
	Row      int      `json:"row"`
	Col      int      `json:"col"`
	Kind     string   `json:"kind"`
	Line     string   `json:"line,omitempty"`
	Headings []string `json:"headings,omitempty"`
}

var backlinksCmd = &cobra.Command{
	Use:   "backlinks <name>",
	Short: "Show all references to a note",
	Long: `Shows every occurrence pointing at the named note: wiki links, hashtags,
and unlinked mentions, with the enclosing heading trail.

Examples:
  bdx backlinks "Distributed Systems"
  bdx backlinks 2025-02-01 --json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]

		s, err := openSession()
		if err != nil {
			return handleError(ErrRootNotFound, err, "Set roots in config.toml or pass --root")
		}
		defer s.Close()

		start := time.Now()
		res, err := s.rebuild(cmd.Context(), false)
		if err != nil {
			return handleError(ErrScanFailed, err, "")
		}

		links := res.Index.BacklinksTo(name)

		if isJSONOutput() {
			items := make([]backlinkJSON, 0, len(links))
			for _, l := range links {
				item := backlinkJSON{
					Source: l.Source.RawName,
					Row:    l.Row,
					Col:    l.Col,
					Kind:   string(l.Kind),
				}
				if l.Context != nil {
					item.Line = l.Context.LineText
					item.Headings = l.Context.Headings
				}
				items = append(items, item)
			}
			outputSuccess(map[string]interface{}{
				"target": name,
				"items":  items,
			}, &Meta{Count: len(items), ScanTimeMs: elapsedMs(start)})
			return nil
		}

		if len(links) == 0 {
			fmt.Printf("No backlinks found for '%s'\n", name)
			return nil
		}

		fmt.Printf("Backlinks to %s %s:\n\n", ui.NoteName(name), ui.Count(len(links), "reference", "references"))
		for _, l := range links {
			fmt.Printf("  %s %s %s\n", ui.NoteName(l.Source.RawName), ui.LineNum(l.Row, l.Col), ui.Hint(string(l.Kind)))
			if l.Context != nil {
				if len(l.Context.Headings) > 0 {
					fmt.Printf("    %s\n", ui.Hint(strings.Join(l.Context.Headings, " > ")))
				}
				if line := strings.TrimSpace(l.Context.LineText); line != "" {
					fmt.Printf("    %s\n", line)
				}
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(backlinksCmd)
}
