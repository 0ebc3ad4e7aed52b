package cli

import (
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"braindex/internal/parser"
	"braindex/internal/score"
	"braindex/internal/ui"
)

var hrefsLimit int

// rankedHref is one scored bookmark.
type rankedHref struct {
	Title string  `json:"title"`
	URL   string  `json:"url"`
	Score float64 `json:"score"`
}

var hrefsCmd = &cobra.Command{
	Use:   "hrefs <query>",
	Short: "Rank saved hrefs against a query",
	Long: `Ranks every absolute-URL href in the corpus against the query. The blend
deliberately differs from note search: the date decay is slower and
recency is squared, so old but frequently referenced bookmarks stay
findable.`,
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

		edits := s.lastEdits()
		now := time.Now()

		// Occurrence counts by URL, for the frequency factor.
		urlCounts := make(map[string]int)
		for _, l := range res.Index.AllLinkLocations() {
			if l.Kind == parser.KindHref && parser.IsAbsoluteURL(l.URL) {
				urlCounts[l.URL]++
			}
		}
		counts := make([]int, 0, len(urlCounts))
		for _, c := range urlCounts {
			counts = append(counts, c)
		}
		baseline := score.Baseline(counts)

		// Best-scoring occurrence wins per URL.
		best := make(map[string]rankedHref)
		for _, l := range res.Index.AllLinkLocations() {
			if l.Kind != parser.KindHref || !parser.IsAbsoluteURL(l.URL) {
				continue
			}
			match := score.Match(query, l.Target.RawName)
			if m := score.Match(query, l.URL); m > match {
				match = m
			}
			if match <= 0 {
				continue
			}

			var edited time.Time
			if t, ok := edits.LastEdited(l.Source.RawName); ok {
				edited = t
			}
			date := edited
			if l.Context != nil && l.Context.Date != nil {
				date = *l.Context.Date
			}

			rank := score.HrefRank(match,
				score.Date(now, date),
				score.Recency(now, edited),
				score.Frequency(urlCounts[l.URL], baseline))

			if cur, ok := best[l.URL]; !ok || rank > cur.Score {
				best[l.URL] = rankedHref{Title: l.Target.RawName, URL: l.URL, Score: rank}
			}
		}

		ranked := make([]rankedHref, 0, len(best))
		for _, r := range best {
			ranked = append(ranked, r)
		}
		sort.SliceStable(ranked, func(i, j int) bool {
			if ranked[i].Score != ranked[j].Score {
				return ranked[i].Score > ranked[j].Score
			}
			return ranked[i].URL < ranked[j].URL
		})
		if len(ranked) > hrefsLimit {
			ranked = ranked[:hrefsLimit]
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{
				"query": query,
				"items": ranked,
			}, &Meta{Count: len(ranked), ScanTimeMs: elapsedMs(start)})
			return nil
		}

		if len(ranked) == 0 {
			fmt.Printf("No hrefs match '%s'\n", query)
			return nil
		}
		for _, r := range ranked {
			fmt.Printf("%s\n  %s %s\n", ui.Header(r.Title), ui.NoteName(r.URL), ui.Hint(fmt.Sprintf("%.3f", r.Score)))
		}
		return nil
	},
}

func init() {
	hrefsCmd.Flags().IntVar(&hrefsLimit, "limit", 10, "Maximum number of results")
	rootCmd.AddCommand(hrefsCmd)
}
