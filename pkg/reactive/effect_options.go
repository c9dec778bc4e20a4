package reactive

// EffectOption is an option for configuring an Effect.
type EffectOption interface {
	applyEffect(e *Effect)
}

type effectOptionFunc func(*Effect)

func (f effectOptionFunc) applyEffect(e *Effect) { f(e) }

// Lazy creates the effect without running it. The caller runs it with
// Effect.Run, usually on first demand.
func Lazy() EffectOption {
	return effectOptionFunc(func(e *Effect) {
		e.lazy = true
	})
}

// WithScheduler replaces the default re-run policy, which runs the effect
// synchronously inside Trigger.
//
// Example (collect triggered effects and flush them later):
//
//	var queue []*reactive.Effect
//	rt.NewEffect(render, reactive.WithScheduler(func(e *reactive.Effect) {
//	    queue = append(queue, e)
//	}))
func WithScheduler(s Scheduler) EffectOption {
	return effectOptionFunc(func(e *Effect) {
		e.scheduler = s
	})
}

// OnTrack is called when the effect subscribes to a new target.
func OnTrack(fn func(e *Effect, t *Target)) EffectOption {
	return effectOptionFunc(func(e *Effect) {
		e.onTrack = fn
	})
}

// OnTrigger is called when a target the effect depends on triggers, just
// before the effect is handed to its scheduler.
func OnTrigger(fn func(e *Effect, t *Target, op Op)) EffectOption {
	return effectOptionFunc(func(e *Effect) {
		e.onTrigger = fn
	})
}

// OnCleanup is called before the effect drops its subscriptions, on re-run
// and on stop. It is not called when there is nothing to drop.
func OnCleanup(fn func(e *Effect)) EffectOption {
	return effectOptionFunc(func(e *Effect) {
		e.onCleanup = fn
	})
}

// OnStop is called once when the effect is stopped.
func OnStop(fn func(e *Effect)) EffectOption {
	return effectOptionFunc(func(e *Effect) {
		e.onStop = fn
	})
}

// EffectName labels the effect in logs, metrics and inspector events.
func EffectName(name string) EffectOption {
	return effectOptionFunc(func(e *Effect) {
		e.name = name
	})
}
