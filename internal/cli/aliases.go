package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"braindex/internal/ui"
)

var aliasesCmd = &cobra.Command{
	Use:   "aliases <name>",
	Short: "Show the alias closure of a name",
	Long: `Shows every name reachable from the given one through alias declarations
([[a]] = [[b]] lines), the name itself included. Alias pairs chain:
declaring a=b and b=c puts a, b, and c in one closure.`,
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

		closure := res.Index.AliasesOf(name)

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{
				"name":    name,
				"aliases": closure,
			}, &Meta{Count: len(closure), ScanTimeMs: elapsedMs(start)})
			return nil
		}

		for _, a := range closure {
			if a == name {
				fmt.Println(ui.NoteName(a))
			} else {
				fmt.Println(a)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(aliasesCmd)
}
