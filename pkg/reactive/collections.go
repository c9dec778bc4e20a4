package reactive

// TrackedMap is a map whose reads and writes are tracked per key.
//
// An effect reading one key re-runs only when that key is added, changed
// or deleted. Len and Keys track the key set; Range and Values also track
// value changes.
type TrackedMap[K comparable, V any] struct {
	rt   *Runtime
	data map[K]V

	// keys holds one target per key ever read or written. Targets of
	// deleted keys are kept so readers waiting for a re-add are notified.
	keys map[K]*Target

	// structure triggers when keys are added or removed.
	structure *Target

	// values triggers on any mutation.
	values *Target
}

// NewTrackedMap creates an empty tracked map.
func NewTrackedMap[K comparable, V any](rt *Runtime) *TrackedMap[K, V] {
	return &TrackedMap[K, V]{
		rt:        rt,
		data:      make(map[K]V),
		keys:      make(map[K]*Target),
		structure: NewTarget("map.keys"),
		values:    NewTarget("map.values"),
	}
}

func (m *TrackedMap[K, V]) keyTarget(k K) *Target {
	t, ok := m.keys[k]
	if !ok {
		t = NewTarget("map.key")
		m.keys[k] = t
	}
	return t
}

// Get returns the value for k and tracks k.
func (m *TrackedMap[K, V]) Get(k K) (V, bool) {
	m.rt.Track(m.keyTarget(k))
	v, ok := m.data[k]
	return v, ok
}

// Has reports whether k is present and tracks k.
func (m *TrackedMap[K, V]) Has(k K) bool {
	_, ok := m.Get(k)
	return ok
}

// Len returns the number of entries and tracks the key set.
func (m *TrackedMap[K, V]) Len() int {
	m.rt.Track(m.structure)
	return len(m.data)
}

// Keys returns the keys in unspecified order and tracks the key set.
func (m *TrackedMap[K, V]) Keys() []K {
	m.rt.Track(m.structure)
	keys := make([]K, 0, len(m.data))
	for k := range m.data {
		keys = append(keys, k)
	}
	return keys
}

// Range calls fn for each entry until fn returns false. It tracks every
// mutation of the map.
func (m *TrackedMap[K, V]) Range(fn func(k K, v V) bool) {
	m.rt.Track(m.values)
	for k, v := range m.data {
		if !fn(k, v) {
			return
		}
	}
}

// Set stores v under k. Adding a key triggers OpAdd; replacing a value with
// a different one triggers OpSet.
func (m *TrackedMap[K, V]) Set(k K, v V) {
	old, existed := m.data[k]
	if existed && defaultEquals(old, v) {
		return
	}
	m.data[k] = v

	if existed {
		m.rt.Trigger(m.keyTarget(k), OpSet)
		m.rt.Trigger(m.values, OpSet)
		return
	}
	m.rt.Trigger(m.keyTarget(k), OpAdd)
	m.rt.Trigger(m.structure, OpAdd)
	m.rt.Trigger(m.values, OpAdd)
}

// Delete removes k, triggering OpDelete if it was present.
func (m *TrackedMap[K, V]) Delete(k K) {
	if _, ok := m.data[k]; !ok {
		return
	}
	delete(m.data, k)

	m.rt.Trigger(m.keyTarget(k), OpDelete)
	m.rt.Trigger(m.structure, OpDelete)
	m.rt.Trigger(m.values, OpDelete)
}

// Clear removes every entry, triggering OpClear on every key.
func (m *TrackedMap[K, V]) Clear() {
	if len(m.data) == 0 {
		return
	}
	cleared := make([]K, 0, len(m.data))
	for k := range m.data {
		cleared = append(cleared, k)
	}
	clear(m.data)

	for _, k := range cleared {
		m.rt.Trigger(m.keyTarget(k), OpClear)
	}
	m.rt.Trigger(m.structure, OpClear)
	m.rt.Trigger(m.values, OpClear)
}

// TrackedSlice is a list tracked as a whole: any read subscribes to every
// mutation.
type TrackedSlice[T any] struct {
	rt     *Runtime
	target *Target
	items  []T
}

// NewTrackedSlice creates a tracked slice holding a copy of initial.
func NewTrackedSlice[T any](rt *Runtime, initial ...T) *TrackedSlice[T] {
	return &TrackedSlice[T]{
		rt:     rt,
		target: NewTarget("slice"),
		items:  append([]T(nil), initial...),
	}
}

// At returns the element at i. It panics if i is out of range.
func (s *TrackedSlice[T]) At(i int) T {
	s.rt.Track(s.target)
	return s.items[i]
}

// Len returns the number of elements.
func (s *TrackedSlice[T]) Len() int {
	s.rt.Track(s.target)
	return len(s.items)
}

// Values returns a copy of the elements.
func (s *TrackedSlice[T]) Values() []T {
	s.rt.Track(s.target)
	return append([]T(nil), s.items...)
}

// Append adds elements to the end, triggering OpAdd.
func (s *TrackedSlice[T]) Append(items ...T) {
	if len(items) == 0 {
		return
	}
	s.items = append(s.items, items...)
	s.rt.Trigger(s.target, OpAdd)
}

// SetAt replaces the element at i, triggering OpSet when it changes.
// It panics if i is out of range.
func (s *TrackedSlice[T]) SetAt(i int, v T) {
	if defaultEquals(s.items[i], v) {
		return
	}
	s.items[i] = v
	s.rt.Trigger(s.target, OpSet)
}

// RemoveAt deletes the element at i, triggering OpDelete.
// It panics if i is out of range.
func (s *TrackedSlice[T]) RemoveAt(i int) {
	s.items = append(s.items[:i], s.items[i+1:]...)
	s.rt.Trigger(s.target, OpDelete)
}

// Clear removes every element, triggering OpClear.
func (s *TrackedSlice[T]) Clear() {
	if len(s.items) == 0 {
		return
	}
	s.items = nil
	s.rt.Trigger(s.target, OpClear)
}

// Target returns the identity used to track the slice.
func (s *TrackedSlice[T]) Target() *Target {
	return s.target
}
