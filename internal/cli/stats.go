package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"braindex/internal/parser"
	"braindex/internal/tasks"
	"braindex/internal/ui"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show corpus statistics",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
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

		byKind := make(map[parser.Kind]int)
		for _, l := range res.Index.AllLinkLocations() {
			byKind[l.Kind]++
		}
		byState := make(map[tasks.State]int)
		for _, t := range res.Index.AllTasks() {
			byState[t.State]++
		}
		tags := res.Index.AllTags()

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{
				"notes":              res.Index.Len(),
				"names":              len(res.Index.AllRawLinkNames()),
				"links":              byKind[parser.KindLink],
				"hrefs":              byKind[parser.KindHref],
				"hashtags":           byKind[parser.KindHashtag],
				"headings":           byKind[parser.KindHeading],
				"unlinked_mentions":  byKind[parser.KindUnlinked],
				"note_tags":          tags,
				"tasks_todo":         byState[tasks.StateTodo],
				"tasks_doing":        byState[tasks.StateDoing],
				"tasks_done":         byState[tasks.StateDone],
				"frequency_baseline": res.Index.FrequencyBaseline(),
			}, &Meta{Count: res.Index.Len(), ScanTimeMs: elapsedMs(start)})
			return nil
		}

		tb := ui.NewTable(2)
		tb.AddRow("notes", fmt.Sprintf("%d", res.Index.Len()))
		tb.AddRow("known names", fmt.Sprintf("%d", len(res.Index.AllRawLinkNames())))
		tb.AddRow("wiki links", fmt.Sprintf("%d", byKind[parser.KindLink]))
		tb.AddRow("hrefs", fmt.Sprintf("%d", byKind[parser.KindHref]))
		tb.AddRow("hashtags", fmt.Sprintf("%d", byKind[parser.KindHashtag]))
		tb.AddRow("headings", fmt.Sprintf("%d", byKind[parser.KindHeading]))
		tb.AddRow("unlinked mentions", fmt.Sprintf("%d", byKind[parser.KindUnlinked]))
		tb.AddRow("note tags", fmt.Sprintf("%d distinct", len(tags)))
		tb.AddRow("tasks", fmt.Sprintf("%d todo / %d doing / %d done",
			byState[tasks.StateTodo], byState[tasks.StateDoing], byState[tasks.StateDone]))
		fmt.Print(tb.String())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
