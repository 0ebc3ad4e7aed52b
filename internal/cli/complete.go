package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"braindex/internal/score"
)

var completeLimit int

var completeCmd = &cobra.Command{
	Use:   "complete <prefix>",
	Short: "Rank autocomplete candidates for a typed prefix",
	Long: `Ranks the built autocomplete candidate list against the typed prefix.
Recency and frequency are floored higher than in search so that very
recent activity dominates without starving the long tail. Output is one
name per line, ready for editor integration.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		prefix := args[0]

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

		ranked := rankNames(prefix, res.Index.AutocompleteCandidates(), res.Index, s.lastEdits(), score.AutocompleteRank)
		if len(ranked) > completeLimit {
			ranked = ranked[:completeLimit]
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{
				"prefix": prefix,
				"items":  ranked,
			}, &Meta{Count: len(ranked), ScanTimeMs: elapsedMs(start)})
			return nil
		}

		for _, r := range ranked {
			fmt.Println(r.Name)
		}
		return nil
	},
}

func init() {
	completeCmd.Flags().IntVar(&completeLimit, "limit", 10, "Maximum number of candidates")
	rootCmd.AddCommand(completeCmd)
}
