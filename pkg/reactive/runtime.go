package reactive

import (
	"context"
	"log/slog"
	"sync"
)

// Runtime owns all reactive state: the dependency graph, the active-effect
// stack, the active-scope stack and the tracking switch.
//
// Runtimes are independent of each other. A Runtime is not safe for
// concurrent use; drive it from one goroutine at a time.
type Runtime struct {
	name string

	graph *graph

	// effects is the active-effect stack. The top is attributed by Track.
	effects []*Effect

	// scopes is the active-scope stack. New effects and scopes attach to
	// the top.
	scopes []*Scope

	// untracked counts nested Untracked calls. Track is a no-op while > 0.
	untracked int

	logger   *slog.Logger
	observer Observer
}

// Option configures a Runtime.
type Option func(*Runtime)

// WithLogger sets the logger used for debug records.
func WithLogger(logger *slog.Logger) Option {
	return func(rt *Runtime) {
		if logger != nil {
			rt.logger = logger
		}
	}
}

// WithObserver installs an observer for lifecycle notifications.
func WithObserver(o Observer) Option {
	return func(rt *Runtime) {
		if o != nil {
			rt.observer = o
		}
	}
}

// WithName names the runtime in log records.
func WithName(name string) Option {
	return func(rt *Runtime) {
		rt.name = name
	}
}

// New creates a Runtime.
func New(opts ...Option) *Runtime {
	rt := &Runtime{
		graph:    newGraph(),
		logger:   slog.Default().With("component", "reactive"),
		observer: NopObserver{},
	}
	for _, opt := range opts {
		opt(rt)
	}
	if rt.name != "" {
		rt.logger = rt.logger.With("runtime", rt.name)
	}
	return rt
}

var (
	defaultRuntime     *Runtime
	defaultRuntimeOnce sync.Once
)

// Default returns a process-wide Runtime, created on first use.
// Libraries should accept a *Runtime instead of relying on it.
func Default() *Runtime {
	defaultRuntimeOnce.Do(func() {
		defaultRuntime = New(WithName("default"))
	})
	return defaultRuntime
}

// Name returns the runtime name given with WithName.
func (rt *Runtime) Name() string {
	return rt.name
}

// ActiveEffect returns the effect currently executing, or nil.
func (rt *Runtime) ActiveEffect() *Effect {
	if len(rt.effects) == 0 {
		return nil
	}
	return rt.effects[len(rt.effects)-1]
}

// ActiveScope returns the scope currently running, or nil.
func (rt *Runtime) ActiveScope() *Scope {
	if len(rt.scopes) == 0 {
		return nil
	}
	return rt.scopes[len(rt.scopes)-1]
}

// Tracking reports whether a Track call right now would subscribe anything.
func (rt *Runtime) Tracking() bool {
	return rt.untracked == 0 && rt.ActiveEffect() != nil
}

// GraphSize returns the number of targets with a live bucket.
func (rt *Runtime) GraphSize() int {
	return rt.graph.len()
}

// Untracked runs fn without recording reads as dependencies of the active
// effect.
//
// Example:
//
//	rt.NewEffect(func() {
//	    label := title.Get()           // tracked
//	    rt.Untracked(func() {
//	        log.Println(counter.Get()) // not tracked
//	    })
//	})
func (rt *Runtime) Untracked(fn func()) {
	rt.untracked++
	defer func() { rt.untracked-- }()
	fn()
}

// Track records that the active effect depends on t.
// It is a no-op when no effect is running or tracking is suppressed.
// Repeated calls within one run subscribe once.
func (rt *Runtime) Track(t *Target) {
	if t == nil || rt.untracked > 0 {
		return
	}
	e := rt.ActiveEffect()
	if e == nil {
		return
	}

	b := rt.graph.bucketFor(t, true)
	if b.has(e) {
		return
	}
	b.add(e)
	e.deps = append(e.deps, b)

	if e.onTrack != nil {
		e.onTrack(e, t)
	}
}

// Trigger schedules every effect subscribed to t, except the active effect.
//
// The subscriber set is snapshotted and cleared before any scheduler runs,
// so effects re-subscribe from scratch when they re-run. op is forwarded to
// OnTrigger hooks and the observer.
func (rt *Runtime) Trigger(t *Target, op Op) {
	if t == nil {
		return
	}
	b := rt.graph.bucketFor(t, false)
	if b == nil || b.len() == 0 {
		return
	}

	run := b.drain(rt.ActiveEffect())
	if len(run) == 0 {
		return
	}

	rt.observer.Triggered(t, op, len(run))
	if rt.logger.Enabled(context.Background(), slog.LevelDebug) {
		rt.logger.Debug("trigger",
			"target", t.String(),
			"op", op.String(),
			"scheduled", len(run))
	}

	for _, e := range run {
		if e.onTrigger != nil {
			e.onTrigger(e, t, op)
		}
		e.Schedule()
	}
}

func (rt *Runtime) pushEffect(e *Effect) {
	rt.effects = append(rt.effects, e)
}

func (rt *Runtime) popEffect() {
	rt.effects[len(rt.effects)-1] = nil
	rt.effects = rt.effects[:len(rt.effects)-1]
}

func (rt *Runtime) pushScope(s *Scope) {
	rt.scopes = append(rt.scopes, s)
}

func (rt *Runtime) popScope() {
	rt.scopes[len(rt.scopes)-1] = nil
	rt.scopes = rt.scopes[:len(rt.scopes)-1]
}
