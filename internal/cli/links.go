package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"braindex/internal/ui"
)

var linksCmd = &cobra.Command{
	Use:   "links",
	Short: "Manage shortened hrefs",
	Long: `Notes may carry shortened hrefs: [title](code) where the code stands in
for a long URL kept in the hrefs.yaml inventory. 'shorten' registers a
URL and prints its code; 'restore' expands every code in the corpus back
to its full URL.`,
}

var linksShortenCmd = &cobra.Command{
	Use:   "shorten <url> [title]",
	Short: "Register a URL and print its short code",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		url := args[0]
		title := ""
		if len(args) == 2 {
			title = args[1]
		}

		s, err := openSession()
		if err != nil {
			return handleError(ErrRootNotFound, err, "Set roots in config.toml or pass --root")
		}
		defer s.Close()

		inv, err := s.shortlinks()
		if err != nil {
			return handleError(ErrStoreError, err, "")
		}
		code := inv.Shorten(url, title)
		if err := inv.Save(); err != nil {
			return handleError(ErrStoreError, err, "")
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{"code": code, "url": url}, nil)
			return nil
		}
		fmt.Println(code)
		return nil
	},
}

var linksRestoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "Expand all short codes back to full URLs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return handleError(ErrRootNotFound, err, "Set roots in config.toml or pass --root")
		}
		defer s.Close()

		inv, err := s.shortlinks()
		if err != nil {
			return handleError(ErrStoreError, err, "")
		}

		changed, errs := inv.Restore(s.vault)

		if isJSONOutput() {
			warnings := make([]string, 0, len(errs))
			for _, e := range errs {
				warnings = append(warnings, e.Error())
			}
			outputSuccessWithWarnings(map[string]interface{}{
				"files_changed": changed,
			}, warnings, &Meta{Count: changed})
			return nil
		}

		fmt.Println(ui.Successf("restored hrefs in %d %s", changed, plural(changed, "file", "files")))
		for _, e := range errs {
			fmt.Println(ui.Warningf("%v", e))
		}
		return nil
	},
}

func plural(n int, singular, pluralForm string) string {
	if n == 1 {
		return singular
	}
	return pluralForm
}

func init() {
	linksCmd.AddCommand(linksShortenCmd)
	linksCmd.AddCommand(linksRestoreCmd)
	rootCmd.AddCommand(linksCmd)
}
