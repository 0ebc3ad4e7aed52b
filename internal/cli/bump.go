package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"braindex/internal/ui"
)

var bumpCmd = &cobra.Command{
	Use:   "bump <task-id> <delta>",
	Short: "Adjust a task's manual priority",
	Long: `Adds delta to a task's persisted priority offset. Positive deltas raise
the task on the board, negative ones sink it. The offset stacks with the
age ramp and the DOING bonus.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]
		delta, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return handleError(ErrInvalidInput, fmt.Errorf("invalid delta %q: %w", args[1], err), "")
		}

		s, err := openSession()
		if err != nil {
			return handleError(ErrRootNotFound, err, "Set roots in config.toml or pass --root")
		}
		defer s.Close()

		if err := s.tasks.Bump(id, delta); err != nil {
			return handleError(ErrTaskNotFound, err, "Run 'bdx tasks --json' to list task ids")
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{"id": id, "delta": delta}, nil)
			return nil
		}
		fmt.Println(ui.Successf("bumped %s by %+g", id, delta))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(bumpCmd)
}
