// Package workload builds and drives synthetic reactive graphs.
//
// A graph has three layers: source signals, memos derived from them (some
// chained through earlier memos), and leaf effects reading the memos.
// The CLI uses it to benchmark the runtime and to feed the inspector.
package workload

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/vango-dev/proton/internal/errors"
	"github.com/vango-dev/proton/pkg/reactive"
)

// Shape sizes a graph.
type Shape struct {
	Signals int
	Memos   int
	Effects int
}

// Validate checks that the shape describes a buildable graph.
func (s Shape) Validate() error {
	if s.Signals < 1 {
		return errors.New("C002").WithDetail("workload needs at least one signal")
	}
	if s.Memos < 0 || s.Effects < 0 {
		return errors.New("C002").WithDetail("workload memos and effects must not be negative")
	}
	return nil
}

// Graph is a built workload.
type Graph struct {
	rt      *reactive.Runtime
	scope   *reactive.Scope
	signals []*reactive.Signal[int]
	memos   []*reactive.Memo[int]
	effects []*reactive.Effect

	step   int
	runs   int64
	sink   int64
	logger *slog.Logger
}

// Option configures Build.
type Option func(*Graph)

// WithLogger sets the logger for driver records.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Graph) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// Build creates the graph inside a fresh scope of rt.
//
// Memo i reads signal i mod Signals; every memo not at a multiple of four
// also reads memo i-1, forming short chains. Effect j reads memo j mod
// Memos, or a signal directly when there are no memos.
func Build(rt *reactive.Runtime, shape Shape, opts ...Option) (*Graph, error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}

	g := &Graph{
		rt:     rt,
		scope:  rt.NewScope(true),
		logger: slog.Default().With("component", "workload"),
	}
	for _, opt := range opts {
		opt(g)
	}

	err := g.scope.Run(func() {
		for i := 0; i < shape.Signals; i++ {
			g.signals = append(g.signals, reactive.NewSignal(rt, 0,
				reactive.SignalLabel(labelf("signal", i))))
		}

		for i := 0; i < shape.Memos; i++ {
			src := g.signals[i%len(g.signals)]
			var prev *reactive.Memo[int]
			if i%4 != 0 {
				prev = g.memos[i-1]
			}
			g.memos = append(g.memos, reactive.NewMemo(rt, func() int {
				v := src.Get()
				if prev != nil {
					v += prev.Get()
				}
				return v
			}))
		}

		for j := 0; j < shape.Effects; j++ {
			read := g.reader(j)
			g.effects = append(g.effects, rt.NewEffect(func() {
				g.runs++
				g.sink += int64(read())
			}, reactive.EffectName(labelf("effect", j))))
		}
	})
	if err != nil {
		return nil, err
	}

	g.logger.Debug("workload built",
		"signals", shape.Signals,
		"memos", shape.Memos,
		"effects", shape.Effects,
		"graph", rt.GraphSize())
	return g, nil
}

func (g *Graph) reader(j int) func() int {
	if len(g.memos) > 0 {
		return g.memos[j%len(g.memos)].Get
	}
	return g.signals[j%len(g.signals)].Get
}

// Step writes the next signal in round-robin order.
func (g *Graph) Step() {
	s := g.signals[g.step%len(g.signals)]
	g.step++
	s.Update(func(v int) int { return v + 1 })
}

// EffectRuns returns the number of effect executions so far, including
// the initial runs.
func (g *Graph) EffectRuns() int64 {
	return g.runs
}

// Steps returns the number of Step calls so far.
func (g *Graph) Steps() int {
	return g.step
}

// Signal returns source signal i.
func (g *Graph) Signal(i int) *reactive.Signal[int] {
	return g.signals[i]
}

// Sum returns the sum of every source signal without tracking.
func (g *Graph) Sum() int {
	total := 0
	for _, s := range g.signals {
		total += s.Peek()
	}
	return total
}

// Dispose stops every effect and memo in the graph.
func (g *Graph) Dispose() {
	for _, m := range g.memos {
		m.Stop()
	}
	g.scope.Dispose()
}

// Result summarizes a Run.
type Result struct {
	Updates    int
	EffectRuns int64
	Elapsed    time.Duration
}

// PerUpdate returns the mean time per update.
func (r Result) PerUpdate() time.Duration {
	if r.Updates == 0 {
		return 0
	}
	return r.Elapsed / time.Duration(r.Updates)
}

// Run performs updates steps as fast as possible. It stops early, returning
// the partial result and ctx.Err(), when ctx is cancelled.
func (g *Graph) Run(ctx context.Context, updates int) (Result, error) {
	before := g.runs
	start := time.Now()

	var err error
	done := 0
	for ; done < updates; done++ {
		if done%1024 == 0 {
			if err = ctx.Err(); err != nil {
				break
			}
		}
		g.Step()
	}

	return Result{
		Updates:    done,
		EffectRuns: g.runs - before,
		Elapsed:    time.Since(start),
	}, err
}

// Drive steps once per interval until ctx is done. after, if non-nil, is
// called after each step on the driving goroutine.
func (g *Graph) Drive(ctx context.Context, interval time.Duration, after func(step int)) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	g.logger.Info("workload driving", "interval", interval)
	for {
		select {
		case <-ctx.Done():
			g.logger.Info("workload stopped", "steps", g.step, "effect_runs", g.runs)
			return nil
		case <-ticker.C:
			if ctx.Err() != nil {
				continue
			}
			g.Step()
			if after != nil {
				after(g.step)
			}
		}
	}
}

func labelf(prefix string, i int) string {
	return prefix + "-" + strconv.Itoa(i)
}
