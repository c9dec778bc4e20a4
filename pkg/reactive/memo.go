package reactive

// Memo is a cached derived value.
//
// The computation runs inside a lazy effect that tracks the memo's inputs.
// When an input triggers, the memo only marks itself dirty and notifies its
// own dependents through a private marker target; the computation re-runs
// on the next read. However many inputs change between two reads, compute
// runs at most once and dependents are notified once.
type Memo[T any] struct {
	rt      *Runtime
	marker  *Target
	effect  *Effect
	compute func() T
	value   T

	dirty bool

	// computing prevents infinite recursion when compute reads the memo.
	computing bool
}

// NewMemo creates a memo. compute does not run until the first read.
//
// Example:
//
//	doubled := reactive.NewMemo(rt, func() int { return count.Get() * 2 })
//	doubled.Get() // computes
//	doubled.Get() // cached
func NewMemo[T any](rt *Runtime, compute func() T) *Memo[T] {
	m := &Memo[T]{
		rt:      rt,
		marker:  NewTarget("memo"),
		compute: compute,
		dirty:   true,
	}
	m.effect = rt.NewEffect(m.recompute,
		Lazy(),
		WithScheduler(m.invalidate),
		EffectName(m.marker.String()),
	)
	return m
}

// UseMemo creates a memo and returns its accessor.
func UseMemo[T any](rt *Runtime, compute func() T) Accessor[T] {
	return NewMemo(rt, compute).Get
}

// Get returns the memo's value, recomputing it if an input changed, and
// subscribes the active effect to future invalidations.
func (m *Memo[T]) Get() T {
	m.refresh()
	m.rt.Track(m.marker)
	return m.value
}

// Peek returns the memo's value without subscribing.
// It still recomputes if the value is stale.
func (m *Memo[T]) Peek() T {
	m.refresh()
	return m.value
}

// Dirty reports whether the next read will recompute.
func (m *Memo[T]) Dirty() bool {
	return m.dirty
}

// Target returns the marker dependents subscribe to.
func (m *Memo[T]) Target() *Target {
	return m.marker
}

// Stop detaches the memo from its inputs. The cached value is kept and is
// never recomputed again.
func (m *Memo[T]) Stop() {
	m.effect.Stop()
}

func (m *Memo[T]) refresh() {
	if !m.dirty || m.computing {
		return
	}

	// Reads never hand the memo to the reader's scope; it stays owned by
	// the scope it was created in.
	m.rt.pushScope(nil)
	defer m.rt.popScope()

	m.effect.Run()
	m.dirty = false
}

func (m *Memo[T]) recompute() {
	m.computing = true
	defer func() { m.computing = false }()
	m.value = m.compute()
}

// invalidate is the inner effect's scheduler. Only the clean-to-dirty
// transition notifies dependents.
func (m *Memo[T]) invalidate(*Effect) {
	if m.dirty {
		return
	}
	m.dirty = true
	m.rt.Trigger(m.marker, OpSet)
}
