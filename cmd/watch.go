package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/cmmoran/flugen/pkg/action/generate"
	"github.com/cmmoran/flugen/pkg/action/watch"
)

func init() {
	rootCmd.AddCommand(NewWatchCommand())
}

func NewWatchCommand() *cobra.Command {
	// watchCmd represents the flugen watch command
	var watchCmd = &cobra.Command{
		Use:   "watch",
		Short: "regenerate on change",
		Long:  "Generate every unit, then regenerate units as they change until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			opts, err := loadOptions(c)
			if err != nil {
				return err
			}
			parent := c.Context()
			if parent == nil {
				parent = context.Background()
			}
			ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
			defer stop()

			out := c.OutOrStdout()
			return watch.Watch(ctx, opts, func(r *generate.Report) {
				_, _ = fmt.Fprintln(out, summarize(r))
				if err := r.Err(); err != nil {
					slog.Default().With("error", err).Warn("some units failed")
				}
			})
		},
	}
	addOptionFlags(watchCmd)

	return watchCmd
}
