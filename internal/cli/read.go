package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"braindex/internal/link"
	"braindex/internal/ui"
)

var readRaw bool

var readCmd = &cobra.Command{
	Use:   "read <name>",
	Short: "Render a note in the terminal",
	Long: `Reads the named note and renders it as styled markdown. Outside a TTY
(or with --raw) the raw file content is printed unchanged.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]

		v, err := resolveVault()
		if err != nil {
			return handleError(ErrRootNotFound, err, "Set roots in config.toml or pass --root")
		}

		content, ok, err := v.ReadLink(link.FromRawName(name))
		if err != nil {
			return handleError(ErrInternal, err, "")
		}
		if !ok {
			return handleError(ErrNoteNotFound, fmt.Errorf("note not found: %s", name),
				"Run 'bdx search' to find the exact name")
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{
				"name":    name,
				"content": content,
			}, nil)
			return nil
		}

		if readRaw || !ui.IsTTY() {
			fmt.Print(content)
			return nil
		}

		rendered, err := ui.RenderMarkdown(content, ui.TermWidth())
		if err != nil {
			return handleError(ErrInternal, err, "")
		}
		fmt.Print(rendered)
		return nil
	},
}

func init() {
	readCmd.Flags().BoolVar(&readRaw, "raw", false, "Print raw markdown without rendering")
	rootCmd.AddCommand(readCmd)
}
