package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"braindex/internal/dates"
	"braindex/internal/ui"
)

var snoozeCmd = &cobra.Command{
	Use:   "snooze <task-id> [until]",
	Short: "Hide a task until a date",
	Long: `Snoozes a task: it moves to the synthetic "Snoozed" group until the given
date. The date accepts the usual forms: "tomorrow", "3d", "2w", or an
exact YYYY-MM-DD. Without a date the configured default span applies
(snooze_default in config.toml, falling back to one day).

Task ids come from 'bdx tasks --json'.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]

		arg := getConfig().Tasks.SnoozeDefault
		if len(args) == 2 {
			arg = args[1]
		}
		if arg == "" {
			arg = "1d"
		}

		until, err := dates.ParseDateArg(arg, time.Now())
		if err != nil {
			return handleError(ErrInvalidInput, err, "Use forms like tomorrow, 3d, 2w, or 2025-03-01")
		}

		s, err := openSession()
		if err != nil {
			return handleError(ErrRootNotFound, err, "Set roots in config.toml or pass --root")
		}
		defer s.Close()

		if err := s.tasks.Snooze(id, until); err != nil {
			return handleError(ErrTaskNotFound, err, "Run 'bdx tasks --json' to list task ids")
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{
				"id":    id,
				"until": until.Format("2006-01-02"),
			}, nil)
			return nil
		}
		fmt.Println(ui.Successf("snoozed %s until %s", id, until.Format("2006-01-02")))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(snoozeCmd)
}
