package main

import (
	"fmt"
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/vango-dev/proton/internal/config"
	"github.com/vango-dev/proton/internal/workload"
	"github.com/vango-dev/proton/pkg/instrument"
	"github.com/vango-dev/proton/pkg/reactive"
)

func benchCmd(a *app) *cobra.Command {
	var (
		signals int
		memos   int
		effects int
		updates int
	)

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Benchmark a synthetic reactive graph",
		Long: `Build a graph of signals, memos and effects, write the signals
round-robin and report throughput and runtime counters.

Sizes default to the workload section of the config file.

Examples:
  proton bench
  proton bench --signals=100 --memos=400 --effects=1000 --updates=50000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := a.cfg.Workload
			if cmd.Flags().Changed("signals") {
				w.Signals = signals
			}
			if cmd.Flags().Changed("memos") {
				w.Memos = memos
			}
			if cmd.Flags().Changed("effects") {
				w.Effects = effects
			}
			if cmd.Flags().Changed("updates") {
				w.Updates = updates
			}
			return a.runBench(cmd, w)
		},
	}

	cmd.Flags().IntVar(&signals, "signals", 0, "Number of source signals")
	cmd.Flags().IntVar(&memos, "memos", 0, "Number of memos")
	cmd.Flags().IntVar(&effects, "effects", 0, "Number of effects")
	cmd.Flags().IntVar(&updates, "updates", 0, "Number of signal writes")

	return cmd
}

func (a *app) runBench(cmd *cobra.Command, w config.WorkloadConfig) error {
	out := cmd.OutOrStdout()

	reg := prometheus.NewRegistry()
	metrics := instrument.Prometheus(
		instrument.WithRegistry(reg),
		instrument.WithNamespace(a.cfg.Metrics.Namespace),
		instrument.WithSubsystem(a.cfg.Metrics.Subsystem),
	)
	rt := reactive.New(
		reactive.WithName("bench"),
		reactive.WithLogger(a.logger),
		reactive.WithObserver(metrics),
	)

	start := time.Now()
	g, err := workload.Build(rt, workload.Shape{
		Signals: w.Signals,
		Memos:   w.Memos,
		Effects: w.Effects,
	}, workload.WithLogger(a.logger))
	if err != nil {
		return err
	}
	defer g.Dispose()
	built := time.Since(start)

	res, err := g.Run(cmd.Context(), w.Updates)
	if err != nil {
		return err
	}

	success(out, "Ran %d updates in %s", res.Updates, res.Elapsed.Round(time.Microsecond))
	info(out, "Graph:        %d signals, %d memos, %d effects (%d targets)", w.Signals, w.Memos, w.Effects, rt.GraphSize())
	info(out, "Build:        %s", built.Round(time.Microsecond))
	info(out, "Per update:   %s", res.PerUpdate())
	info(out, "Effect runs:  %d", res.EffectRuns)
	if res.Elapsed > 0 {
		info(out, "Throughput:   %.0f updates/s", float64(res.Updates)/res.Elapsed.Seconds())
	}

	return printCounters(out, reg)
}

// printCounters writes every counter and gauge in reg, one per line.
func printCounters(out io.Writer, reg prometheus.Gatherer) error {
	families, err := reg.Gather()
	if err != nil {
		return err
	}

	fmt.Fprintln(out)
	for _, f := range families {
		for _, m := range f.GetMetric() {
			name := f.GetName()
			for _, l := range m.GetLabel() {
				name += fmt.Sprintf("{%s=%q}", l.GetName(), l.GetValue())
			}
			switch {
			case m.GetCounter() != nil:
				info(out, "%-60s %.0f", name, m.GetCounter().GetValue())
			case m.GetGauge() != nil:
				info(out, "%-60s %.0f", name, m.GetGauge().GetValue())
			case m.GetHistogram() != nil:
				h := m.GetHistogram()
				info(out, "%-60s count=%d sum=%.6fs", name, h.GetSampleCount(), h.GetSampleSum())
			}
		}
	}
	return nil
}
