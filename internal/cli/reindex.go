package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"braindex/internal/ui"
)

var applyCaseFixes bool

var reindexCmd = &cobra.Command{
	Use:   "reindex",
	Short: "Rebuild the note graph from disk",
	Long: `Scans every markdown file under the notes root, extracts links, hashtags,
headings, aliases, and tasks, runs the unlinked-mention pass, and plans
case normalization for conflicting name casings.

With --apply-case-fixes the normalization plan is applied to disk: files
are rewritten to the canonical casing and renamed (or textually merged)
as needed.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return handleError(ErrRootNotFound, err, "Set roots in config.toml or pass --root")
		}
		defer s.Close()

		start := time.Now()
		var spinner *ui.Spinner
		if !isJSONOutput() {
			spinner = ui.NewSpinner("Scanning notes")
			spinner.Start()
		}

		res, err := s.rebuild(cmd.Context(), applyCaseFixes)
		if spinner != nil {
			spinner.Stop()
		}
		if err != nil {
			return handleError(ErrScanFailed, err, "")
		}

		if isJSONOutput() {
			warnings := scanWarnings(res.FileErrors)
			for _, e := range res.NormalizeErrors {
				warnings = append(warnings, e.Error())
			}
			outputSuccessWithWarnings(map[string]interface{}{
				"notes":          res.Index.Len(),
				"locations":      len(res.Index.AllLinkLocations()),
				"case_conflicts": len(res.Intents),
				"fixes_applied":  applyCaseFixes,
			}, warnings, &Meta{Count: res.Index.Len(), ScanTimeMs: elapsedMs(start)})
			return nil
		}

		fmt.Println(ui.Successf("Indexed %d notes, %d occurrences in %s",
			res.Index.Len(), len(res.Index.AllLinkLocations()), time.Since(start).Round(time.Millisecond)))

		for _, in := range res.Intents {
			if applyCaseFixes {
				fmt.Println(ui.Successf("normalized casing: %v -> %s", in.Variants, ui.NoteName(in.Canonical)))
			} else {
				fmt.Println(ui.Warningf("case conflict: %v (canonical %s, rerun with --apply-case-fixes)",
					in.Variants, ui.NoteName(in.Canonical)))
			}
		}
		for _, e := range res.NormalizeErrors {
			fmt.Println(ui.Warningf("normalization skipped: %v", e))
		}
		for _, fe := range res.FileErrors {
			fmt.Println(ui.Warningf("skipped %s: %v", fe.Path, fe.Err))
		}
		return nil
	},
}

func init() {
	reindexCmd.Flags().BoolVar(&applyCaseFixes, "apply-case-fixes", false, "Rewrite files to the canonical name casing")
	rootCmd.AddCommand(reindexCmd)
}
