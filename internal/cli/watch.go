package cli

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"braindex/internal/graph"
	"braindex/internal/ui"
	"braindex/internal/watcher"
)

var watchDebug bool

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the notes root and keep the graph warm",
	Long: `Builds the graph once, then watches the notes root for changes. An edited
file is re-scanned and hot-patched into the live snapshot; deleted files
drop out. Runs until interrupted.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return handleError(ErrRootNotFound, err, "Set roots in config.toml or pass --root")
		}
		defer s.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		res, err := s.rebuild(ctx, false)
		if err != nil {
			return handleError(ErrScanFailed, err, "")
		}

		handle := graph.NewHandle()
		handle.Publish(res.Index)
		fmt.Println(ui.Successf("indexed %d notes, watching %s", res.Index.Len(), ui.NoteName(s.vault.Root)))

		w, err := watcher.New(watcher.Config{
			Vault:  s.vault,
			Handle: handle,
			Tasks:  s.tasks,
			Edits:  s.edits,
			Debug:  watchDebug,
			OnReindex: func(path string, err error) {
				if err != nil {
					fmt.Println(ui.Warningf("%s: %v", path, err))
					return
				}
				fmt.Println(ui.Successf("rescanned %s", path))
			},
		})
		if err != nil {
			return handleError(ErrInternal, err, "")
		}

		if err := w.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return handleError(ErrInternal, err, "")
		}
		return nil
	},
}

func init() {
	watchCmd.Flags().BoolVar(&watchDebug, "debug", false, "Log watcher events to stderr")
	rootCmd.AddCommand(watchCmd)
}
