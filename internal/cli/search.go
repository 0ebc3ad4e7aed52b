package cli

import (
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"braindex/internal/graph"
	"braindex/internal/lastedit"
	"braindex/internal/score"
	"braindex/internal/ui"
)

var searchLimit int

// rankedName is one scored search result.
type rankedName struct {
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Fuzzy-search note names",
	Long: `Searches every known note name (files and referenced names alike) with the
fuzzy matcher and ranks hits by match quality, recency, and reference
frequency.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := args[0]

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

		ranked := rankNames(query, res.Index.AllRawLinkNames(), res.Index, s.lastEdits(), score.LinkRank)
		if len(ranked) > searchLimit {
			ranked = ranked[:searchLimit]
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{
				"query": query,
				"items": ranked,
			}, &Meta{Count: len(ranked), ScanTimeMs: elapsedMs(start)})
			return nil
		}

		if len(ranked) == 0 {
			fmt.Printf("No notes match '%s'\n", query)
			return nil
		}
		for _, r := range ranked {
			fmt.Printf("%s  %s\n", ui.NoteName(r.Name), ui.Hint(fmt.Sprintf("%.3f", r.Score)))
		}
		return nil
	},
}

// rankNames scores candidates against a query with the given blend and
// returns them best-first. Zero-match candidates are dropped.
func rankNames(query string, candidates []string, ix *graph.Index, edits lastedit.Provider,
	blend func(match, recency, frequency float64) float64) []rankedName {

	now := time.Now()
	baseline := ix.FrequencyBaseline()

	var ranked []rankedName
	for _, name := range candidates {
		match := score.Match(query, name)
		if match <= 0 {
			continue
		}

		var edited time.Time
		if t, ok := edits.LastEdited(name); ok {
			edited = t
		}
		recency := score.Recency(now, edited)
		freq := score.Frequency(ix.OccurrenceCount(name), baseline)

		ranked = append(ranked, rankedName{Name: name, Score: blend(match, recency, freq)})
	}

	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Score > ranked[j].Score })
	return ranked
}

func init() {
	searchCmd.Flags().IntVar(&searchLimit, "limit", 20, "Maximum number of results")
	rootCmd.AddCommand(searchCmd)
}
