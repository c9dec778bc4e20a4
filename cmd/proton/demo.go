package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/vango-dev/proton/internal/workload"
	"github.com/vango-dev/proton/pkg/instrument"
	"github.com/vango-dev/proton/pkg/reactive"
)

func demoCmd(a *app) *cobra.Command {
	var trace bool

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Walk through the reactive primitives",
		Long: `Run a short narrated program using signals, memos, tracked maps
and scopes.

With --trace every runtime notification is also logged at info level.

Examples:
  proton demo
  proton demo --trace --log-format=json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := []reactive.Option{reactive.WithName("demo"), reactive.WithLogger(a.logger)}
			if trace {
				opts = append(opts, reactive.WithObserver(instrument.Logging(a.logger, slog.LevelInfo)))
			}
			workload.Demo(cmd.OutOrStdout(), reactive.New(opts...))
			return nil
		},
	}

	cmd.Flags().BoolVar(&trace, "trace", false, "Log every runtime notification")

	return cmd
}
