package reactive

import (
	"fmt"
	"reflect"

	"github.com/vango-dev/proton/internal/errors"
)

// Accessor reads a reactive value, tracking it in the active effect.
type Accessor[T any] func() T

// Setter writes a reactive value.
type Setter[T any] func(Change[T])

// Change is an explicit write: either a replacement value or an updater
// applied to the current value. Build one with Value or Updater.
type Change[T any] struct {
	value    T
	update   func(T) T
	isUpdate bool
}

// Value returns a Change that replaces the current value with v.
func Value[T any](v T) Change[T] {
	return Change[T]{value: v}
}

// Updater returns a Change that replaces the current value with fn(current).
// A nil fn makes the change a no-op.
func Updater[T any](fn func(T) T) Change[T] {
	return Change[T]{update: fn, isUpdate: true}
}

// Signal is a reactive value cell. Get subscribes the active effect; Set
// triggers subscribed effects when the value changes.
type Signal[T any] struct {
	rt     *Runtime
	target *Target
	value  T

	// equals gates writes. nil means every write triggers.
	equals func(a, b T) bool
}

// NewSignal creates a signal holding initial.
func NewSignal[T any](rt *Runtime, initial T, opts ...SignalOption) *Signal[T] {
	o := applySignalOptions(opts)

	s := &Signal[T]{
		rt:     rt,
		target: NewTarget(o.label),
		value:  initial,
		equals: defaultEquals[T],
	}

	switch {
	case o.alwaysNotify:
		s.equals = nil
	case o.equals != nil:
		eq, ok := o.equals.(func(T, T) bool)
		if !ok {
			panic(errors.New("R003").WithDetail(fmt.Sprintf(
				"WithEquals got %T for a signal of %s", o.equals, reflect.TypeFor[T]())))
		}
		s.equals = eq
	}

	return s
}

// UseSignal creates a signal and returns its accessor/setter pair.
//
// Example:
//
//	count, setCount := reactive.UseSignal(rt, 1)
//	setCount(reactive.Value(2))
//	setCount(reactive.Updater(func(n int) int { return n + 1 }))
//	fmt.Println(count()) // 3
func UseSignal[T any](rt *Runtime, initial T, opts ...SignalOption) (Accessor[T], Setter[T]) {
	s := NewSignal(rt, initial, opts...)
	return s.Get, s.Apply
}

// Get returns the current value and subscribes the active effect.
func (s *Signal[T]) Get() T {
	s.rt.Track(s.target)
	return s.value
}

// Peek returns the current value without subscribing.
func (s *Signal[T]) Peek() T {
	return s.value
}

// Set replaces the value. Dependents are triggered unless the new value
// equals the old one.
func (s *Signal[T]) Set(value T) {
	if s.equals != nil && s.equals(s.value, value) {
		return
	}
	s.value = value
	s.rt.Trigger(s.target, OpSet)
}

// Update replaces the value with fn(current).
func (s *Signal[T]) Update(fn func(T) T) {
	s.Set(fn(s.value))
}

// Apply performs an explicit Change.
func (s *Signal[T]) Apply(c Change[T]) {
	if !c.isUpdate {
		s.Set(c.value)
		return
	}
	if c.update != nil {
		s.Update(c.update)
	}
}

// Accessor returns the signal's read function.
func (s *Signal[T]) Accessor() Accessor[T] {
	return s.Get
}

// Setter returns the signal's write function.
func (s *Signal[T]) Setter() Setter[T] {
	return s.Apply
}

// Target returns the identity used to track this signal.
func (s *Signal[T]) Target() *Target {
	return s.target
}
