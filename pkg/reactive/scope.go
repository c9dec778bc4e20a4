package reactive

import (
	"context"
	"log/slog"
)

// Dispose tears down whatever returned it.
type Dispose func()

// disposer wraps a disposal callback so it can be unregistered by identity.
type disposer struct {
	fn func()
}

// Scope owns effects, child scopes and disposal callbacks.
// Disposing a scope stops its effects, runs its callbacks and disposes its
// children, recursively. Disposal is terminal.
//
// Scopes form a tree: a scope created while another is running becomes its
// child unless it is created detached.
type Scope struct {
	rt *Runtime
	id uint64

	// parent is nil for root and detached scopes.
	parent *Scope

	effects   []*Effect
	owned     map[*Effect]struct{}
	children  []*Scope
	disposers []*disposer

	disposed bool
}

// NewScope creates a scope. Unless detached, it becomes a child of the
// active scope, if any.
func (rt *Runtime) NewScope(detached bool) *Scope {
	s := &Scope{
		rt:    rt,
		id:    nextID(),
		owned: make(map[*Effect]struct{}),
	}
	if !detached {
		if parent := rt.ActiveScope(); parent != nil {
			s.parent = parent
			parent.children = append(parent.children, s)
		}
	}
	return s
}

// UseScope creates an attached scope, runs fns in it and returns its
// disposer.
//
// Example:
//
//	dispose := rt.UseScope(func() {
//	    rt.NewEffect(func() { fmt.Println(name.Get()) })
//	})
//	defer dispose()
func (rt *Runtime) UseScope(fns ...func()) Dispose {
	s := rt.NewScope(false)
	_ = s.Run(fns...)
	return s.Dispose
}

// UseDetachedScope is UseScope for a scope that does not join the active
// scope's tree. It is only disposed through the returned function.
func (rt *Runtime) UseDetachedScope(fns ...func()) Dispose {
	s := rt.NewScope(true)
	_ = s.Run(fns...)
	return s.Dispose
}

// OnScopeDispose registers fns on the active scope and returns a function
// that unregisters them. It fails with ErrNoActiveScope when no scope is
// running.
func (rt *Runtime) OnScopeDispose(fns ...func()) (func(), error) {
	s := rt.ActiveScope()
	if s == nil {
		return nil, ErrNoActiveScope
	}
	return s.OnDispose(fns...), nil
}

// ID returns the unique identifier for this scope.
func (s *Scope) ID() uint64 {
	return s.id
}

// Parent returns the parent scope, or nil for root and detached scopes.
func (s *Scope) Parent() *Scope {
	return s.parent
}

// Size returns the number of effects owned by the scope.
func (s *Scope) Size() int {
	return len(s.effects)
}

// Children returns the number of live child scopes.
func (s *Scope) Children() int {
	return len(s.children)
}

// Disposed reports whether Dispose has been called.
func (s *Scope) Disposed() bool {
	return s.disposed
}

// Run makes s the active scope while each fn executes. Effects and scopes
// created meanwhile attach to s. The previous active scope is restored even
// if fn panics.
func (s *Scope) Run(fns ...func()) error {
	for _, fn := range fns {
		if s.disposed {
			return ErrScopeDisposed
		}
		s.run(fn)
	}
	return nil
}

func (s *Scope) run(fn func()) {
	s.rt.pushScope(s)
	defer s.rt.popScope()
	fn()
}

// OnDispose registers callbacks to run when the scope is disposed and
// returns a function that unregisters them. On a disposed scope the
// callbacks run immediately.
func (s *Scope) OnDispose(fns ...func()) func() {
	if s.disposed {
		for _, fn := range fns {
			fn()
		}
		return func() {}
	}

	entries := make([]*disposer, 0, len(fns))
	for _, fn := range fns {
		d := &disposer{fn: fn}
		entries = append(entries, d)
		s.disposers = append(s.disposers, d)
	}

	return func() {
		for _, d := range entries {
			s.removeDisposer(d)
		}
	}
}

// Dispose stops every owned effect, runs and clears the disposal callbacks,
// then disposes the children in creation order. Calling it again is a no-op.
func (s *Scope) Dispose() {
	if s.disposed {
		return
	}
	s.disposed = true

	effects := s.effects
	s.effects = nil
	clear(s.owned)
	for _, e := range effects {
		e.Stop()
	}

	disposers := s.disposers
	s.disposers = nil
	for _, d := range disposers {
		d.fn()
	}

	children := s.children
	s.children = nil
	for _, child := range children {
		child.Dispose()
	}

	if s.parent != nil {
		s.parent.removeChild(s)
	}

	s.rt.observer.ScopeDisposed(s)
	if s.rt.logger.Enabled(context.Background(), slog.LevelDebug) {
		s.rt.logger.Debug("scope disposed",
			"scope", s.id,
			"effects", len(effects),
			"children", len(children))
	}
}

// adopt adds e to the scope's effects.
func (s *Scope) adopt(e *Effect) {
	if s.disposed {
		return
	}
	if _, ok := s.owned[e]; ok {
		return
	}
	s.owned[e] = struct{}{}
	s.effects = append(s.effects, e)
	e.addOwner(s)
}

// release removes e from the scope's effects.
func (s *Scope) release(e *Effect) {
	if _, ok := s.owned[e]; !ok {
		return
	}
	delete(s.owned, e)
	for i, existing := range s.effects {
		if existing == e {
			s.effects = append(s.effects[:i], s.effects[i+1:]...)
			return
		}
	}
}

func (s *Scope) removeChild(child *Scope) {
	for i, c := range s.children {
		if c == child {
			s.children = append(s.children[:i], s.children[i+1:]...)
			return
		}
	}
}

func (s *Scope) removeDisposer(d *disposer) {
	for i, existing := range s.disposers {
		if existing == d {
			s.disposers = append(s.disposers[:i], s.disposers[i+1:]...)
			return
		}
	}
}
