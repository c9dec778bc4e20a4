package reactive

import (
	"context"
	"log/slog"
	"time"
)

// Scheduler decides how a triggered effect re-runs. It is handed the effect
// synchronously at trigger time and may run it immediately, queue it, or
// drop it. A queued effect that is stopped before it runs stays inert.
type Scheduler func(e *Effect)

// runScheduler re-runs the effect synchronously.
func runScheduler(e *Effect) {
	e.Run()
}

// Effect is a re-runnable computation whose dependencies are tracked
// automatically.
//
// Every run starts by dropping the subscriptions of the previous run, so
// the subscriptions always mirror the most recent execution's reads.
type Effect struct {
	rt *Runtime
	id uint64

	// name is an optional label for logs and observers.
	name string

	// fn is the effect body.
	fn func()

	// scheduler is called when a dependency triggers.
	scheduler Scheduler

	// lazy effects are not run on creation.
	lazy bool

	// deps are the buckets this effect is subscribed to.
	deps []*bucket

	// owners are the scopes holding this effect.
	owners []*Scope

	stopped bool

	onTrack   func(*Effect, *Target)
	onTrigger func(*Effect, *Target, Op)
	onCleanup func(*Effect)
	onStop    func(*Effect)
}

// NewEffect creates an effect owned by the active scope and, unless Lazy
// is given, schedules it immediately.
//
// Options:
//   - Lazy() - do not run on creation
//   - WithScheduler(s) - custom re-run policy
//   - OnTrack, OnTrigger, OnCleanup, OnStop - lifecycle hooks
//   - EffectName(name) - label for logs and observers
//
// Example:
//
//	count := reactive.NewSignal(rt, 0)
//	rt.NewEffect(func() {
//	    fmt.Println("count is", count.Get())
//	})
//	count.Set(1) // prints "count is 1"
func (rt *Runtime) NewEffect(fn func(), opts ...EffectOption) *Effect {
	e := &Effect{
		rt: rt,
		id: nextID(),
		fn: fn,
	}
	for _, opt := range opts {
		opt.applyEffect(e)
	}
	if e.scheduler == nil {
		e.scheduler = runScheduler
	}

	if s := rt.ActiveScope(); s != nil {
		s.adopt(e)
	}
	rt.observer.EffectCreated(e)

	if !e.lazy {
		e.Schedule()
	}
	return e
}

// ID returns the unique identifier for this effect.
func (e *Effect) ID() uint64 {
	return e.id
}

// Name returns the name given with EffectName.
func (e *Effect) Name() string {
	return e.name
}

// Stopped reports whether Stop has been called.
func (e *Effect) Stopped() bool {
	return e.stopped
}

// Deps returns the number of targets the effect is subscribed to.
func (e *Effect) Deps() int {
	return len(e.deps)
}

// Runtime returns the runtime the effect belongs to.
func (e *Effect) Runtime() *Runtime {
	return e.rt
}

// Schedule hands the effect to its scheduler.
func (e *Effect) Schedule() {
	e.scheduler(e)
}

// Run executes the effect body with dependency tracking.
// It is a no-op once the effect is stopped. A panic in the body propagates
// to the caller after the active-effect stack is restored.
func (e *Effect) Run() {
	if e.stopped {
		return
	}
	rt := e.rt

	e.cleanup()
	if s := rt.ActiveScope(); s != nil {
		s.adopt(e)
	}

	rt.pushEffect(e)
	rt.observer.EffectStarted(e)
	start := time.Now()
	panicked := true
	defer func() {
		rt.popEffect()
		rt.observer.EffectFinished(e, time.Since(start), panicked)
	}()

	e.fn()
	panicked = false
}

// Stop permanently deactivates the effect: it unsubscribes from every
// target, fires OnStop and leaves its scopes. Stop is idempotent.
func (e *Effect) Stop() {
	if e.stopped {
		return
	}
	e.stopped = true
	e.cleanup()

	if e.onStop != nil {
		e.onStop(e)
	}

	owners := e.owners
	e.owners = nil
	for _, s := range owners {
		s.release(e)
	}

	e.rt.observer.EffectStopped(e)
	if e.rt.logger.Enabled(context.Background(), slog.LevelDebug) {
		e.rt.logger.Debug("effect stopped", "effect", e.id, "name", e.name)
	}
}

// cleanup detaches the effect from every bucket it is subscribed to.
func (e *Effect) cleanup() {
	if len(e.deps) == 0 {
		return
	}
	if e.onCleanup != nil {
		e.onCleanup(e)
	}
	for _, b := range e.deps {
		b.remove(e)
	}
	clear(e.deps)
	e.deps = e.deps[:0]
}

// addOwner records s as an owner. Called by Scope.adopt.
func (e *Effect) addOwner(s *Scope) {
	for _, o := range e.owners {
		if o == s {
			return
		}
	}
	e.owners = append(e.owners, s)
}
