package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/vango-dev/proton/internal/workload"
	"github.com/vango-dev/proton/pkg/inspect"
	"github.com/vango-dev/proton/pkg/instrument"
	"github.com/vango-dev/proton/pkg/reactive"
)

func inspectCmd(a *app) *cobra.Command {
	var (
		addr     string
		interval time.Duration
		duration time.Duration
	)

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Serve live runtime events",
		Long: `Drive a synthetic graph at a steady pace and serve its activity.

Endpoints:
  GET /events   WebSocket stream of runtime events (JSON)
  GET /stats    aggregate counters
  GET /metrics  Prometheus metrics
  GET /healthz  liveness probe

Examples:
  proton inspect
  proton inspect --addr=:7070 --interval=100ms
  proton inspect --duration=30s`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr != "" {
				a.cfg.Inspector.Addr = addr
			}
			if interval == 0 {
				interval, _ = a.cfg.IntervalDuration()
			}
			return a.runInspect(cmd, interval, duration)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "Listen address (default from config)")
	cmd.Flags().DurationVarP(&interval, "interval", "i", 0, "Delay between updates (default from config)")
	cmd.Flags().DurationVar(&duration, "duration", 0, "Stop after this long (default: run until interrupted)")

	return cmd
}

// inspectStats is served on /stats.
type inspectStats struct {
	inspect.Stats
	Targets int   `json:"targets"`
	Steps   int64 `json:"steps"`
}

func (a *app) runInspect(cmd *cobra.Command, interval, duration time.Duration) error {
	out := cmd.OutOrStdout()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, duration)
		defer cancel()
	}

	reg := prometheus.NewRegistry()
	hub := inspect.NewHub(
		inspect.WithBuffer(a.cfg.Inspector.Buffer),
		inspect.WithLogger(a.logger),
	)
	rt := reactive.New(
		reactive.WithName("inspect"),
		reactive.WithLogger(a.logger),
		reactive.WithObserver(instrument.Chain(
			hub,
			instrument.Prometheus(
				instrument.WithRegistry(reg),
				instrument.WithNamespace(a.cfg.Metrics.Namespace),
				instrument.WithSubsystem(a.cfg.Metrics.Subsystem),
			),
		)),
	)

	var steps atomic.Int64
	server := &http.Server{
		Addr: a.cfg.Inspector.Addr,
		Handler: inspect.NewRouter(hub,
			inspect.WithGatherer(reg),
			inspect.WithRouterLogger(a.logger),
			inspect.WithStatsFunc(func() any {
				return inspectStats{
					Stats:   hub.Stats(),
					Targets: rt.GraphSize(),
					Steps:   steps.Load(),
				}
			}),
		),
		ReadHeaderTimeout: 5 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	printBanner(out)
	success(out, "Inspector listening on http://%s", a.cfg.Inspector.Addr)
	info(out, "Events:  ws://%s/events", a.cfg.Inspector.Addr)
	info(out, "Metrics: http://%s/metrics", a.cfg.Inspector.Addr)

	w := a.cfg.Workload
	g, err := workload.Build(rt, workload.Shape{
		Signals: w.Signals,
		Memos:   w.Memos,
		Effects: w.Effects,
	}, workload.WithLogger(a.logger))
	if err != nil {
		_ = server.Close()
		return err
	}

	driveCtx, cancelDrive := context.WithCancel(ctx)
	defer cancelDrive()
	go func() {
		if err, ok := <-serveErr; ok && err != nil {
			a.logger.Error("inspector server failed", "error", err)
			cancelDrive()
		}
	}()

	_ = g.Drive(driveCtx, interval, func(step int) {
		steps.Store(int64(step))
	})
	g.Dispose()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}

	info(out, "Stopped after %d steps", steps.Load())
	return nil
}
