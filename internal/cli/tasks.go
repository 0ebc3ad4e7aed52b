package cli

import (
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"braindex/internal/tasks"
	"braindex/internal/ui"
)

var (
	tasksAll   bool
	tasksGroup string
)

// taskJSON is the JSON representation of one task.
type taskJSON struct {
	ID     string  `json:"id"`
	State  string  `json:"state"`
	Group  string  `json:"group,omitempty"`
	Text   string  `json:"text"`
	Source string  `json:"source"`
	Prio   float64 `json:"prio"`
}

var tasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "Show the task board",
	Long: `Shows all open tasks grouped by their group, ordered by priority. Snoozed
tasks collect under a synthetic "Snoozed" group until their snooze
expires. DONE tasks are hidden unless --all is given.`,
	Args: cobra.NoArgs,
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

		now := time.Now()
		board := make(map[string][]tasks.Task)
		count := 0
		for _, t := range res.Index.AllTasks() {
			if t.State == tasks.StateDone && !tasksAll {
				continue
			}
			group := t.EffectiveGroup(now)
			if tasksGroup != "" && group != tasksGroup {
				continue
			}
			board[group] = append(board[group], t)
			count++
		}

		groups := make([]string, 0, len(board))
		for g := range board {
			groups = append(groups, g)
		}
		sort.Strings(groups)
		for _, g := range groups {
			ts := board[g]
			sort.SliceStable(ts, func(i, j int) bool { return ts[i].Prio(now) > ts[j].Prio(now) })
		}

		if isJSONOutput() {
			out := make(map[string][]taskJSON, len(board))
			for g, ts := range board {
				items := make([]taskJSON, 0, len(ts))
				for _, t := range ts {
					items = append(items, taskJSON{
						ID:     t.ID(),
						State:  string(t.State),
						Group:  g,
						Text:   t.Text,
						Source: t.Source.RawName,
						Prio:   t.Prio(now),
					})
				}
				out[g] = items
			}
			outputSuccess(out, &Meta{Count: count, ScanTimeMs: elapsedMs(start)})
			return nil
		}

		if count == 0 {
			fmt.Println("No open tasks")
			return nil
		}

		for _, g := range groups {
			header := g
			if header == "" {
				header = "Ungrouped"
			}
			fmt.Println(ui.AccentBold.Render(header))

			tb := ui.NewTable(4)
			for _, t := range board[g] {
				tb.AddRow(
					stateSymbol(t.State),
					t.Text,
					ui.Muted.Render(fmt.Sprintf("%.1f", t.Prio(now))),
					ui.Muted.Render(t.Source.RawName),
				)
			}
			fmt.Print(tb.String())
			fmt.Println()
		}
		return nil
	},
}

func stateSymbol(s tasks.State) string {
	switch s {
	case tasks.StateDoing:
		return ui.Bold.Render("»")
	case tasks.StateDone:
		return ui.SymbolSuccess
	default:
		return "·"
	}
}

func init() {
	tasksCmd.Flags().BoolVar(&tasksAll, "all", false, "Include DONE tasks")
	tasksCmd.Flags().StringVar(&tasksGroup, "group", "", "Show only this group")
	rootCmd.AddCommand(tasksCmd)
}
