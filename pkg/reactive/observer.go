package reactive

import "time"

// Observer receives runtime lifecycle notifications.
//
// Observers are called synchronously on the goroutine driving the runtime,
// in the middle of tracking and triggering. They must not read or write
// signals, or they become part of the dependency graph they are observing.
type Observer interface {
	// EffectCreated is called once per effect, before its first run.
	EffectCreated(e *Effect)

	// EffectStarted is called when an effect body begins executing.
	EffectStarted(e *Effect)

	// EffectFinished is called when an effect body returns or panics.
	EffectFinished(e *Effect, elapsed time.Duration, panicked bool)

	// EffectStopped is called once when an effect is stopped.
	EffectStopped(e *Effect)

	// Triggered is called for every trigger that found subscribers.
	// scheduled is the number of effects handed to their schedulers.
	Triggered(t *Target, op Op, scheduled int)

	// ScopeDisposed is called after a scope and its subtree are disposed.
	ScopeDisposed(s *Scope)
}

// NopObserver implements Observer with no-ops. Embed it to implement only
// the callbacks you need.
type NopObserver struct{}

func (NopObserver) EffectCreated(*Effect) {}
func (NopObserver) EffectStarted(*Effect) {}
func (NopObserver) EffectFinished(*Effect, time.Duration, bool) {}
func (NopObserver) EffectStopped(*Effect) {}
func (NopObserver) Triggered(*Target, Op, int) {}
func (NopObserver) ScopeDisposed(*Scope) {}

var _ Observer = NopObserver{}
