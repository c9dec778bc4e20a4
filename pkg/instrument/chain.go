package instrument

import (
	"time"

	"github.com/vango-dev/proton/pkg/reactive"
)

type chain []reactive.Observer

// Chain returns an Observer that forwards every notification to each
// observer in order. Nil observers are skipped.
func Chain(observers ...reactive.Observer) reactive.Observer {
	c := make(chain, 0, len(observers))
	for _, o := range observers {
		if o == nil {
			continue
		}
		if nested, ok := o.(chain); ok {
			c = append(c, nested...)
			continue
		}
		c = append(c, o)
	}
	if len(c) == 1 {
		return c[0]
	}
	return c
}

func (c chain) EffectCreated(e *reactive.Effect) {
	for _, o := range c {
		o.EffectCreated(e)
	}
}

func (c chain) EffectStarted(e *reactive.Effect) {
	for _, o := range c {
		o.EffectStarted(e)
	}
}

func (c chain) EffectFinished(e *reactive.Effect, elapsed time.Duration, panicked bool) {
	for _, o := range c {
		o.EffectFinished(e, elapsed, panicked)
	}
}

func (c chain) EffectStopped(e *reactive.Effect) {
	for _, o := range c {
		o.EffectStopped(e)
	}
}

func (c chain) Triggered(t *reactive.Target, op reactive.Op, scheduled int) {
	for _, o := range c {
		o.Triggered(t, op, scheduled)
	}
}

func (c chain) ScopeDisposed(s *reactive.Scope) {
	for _, o := range c {
		o.ScopeDisposed(s)
	}
}
