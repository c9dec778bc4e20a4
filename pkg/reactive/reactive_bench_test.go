package reactive

import "testing"

func BenchmarkSignalSet(b *testing.B) {
	rt := New()
	s := NewSignal(rt, 0)
	rt.NewEffect(func() { _ = s.Get() })

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.Set(i + 1)
	}
}

func BenchmarkSignalGetUntracked(b *testing.B) {
	rt := New()
	s := NewSignal(rt, 42)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = s.Get()
	}
}

func BenchmarkFanOut(b *testing.B) {
	rt := New()
	s := NewSignal(rt, 0)
	for i := 0; i < 100; i++ {
		rt.NewEffect(func() { _ = s.Get() })
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.Set(i + 1)
	}
}

func BenchmarkMemoChain(b *testing.B) {
	rt := New()
	s := NewSignal(rt, 0)
	m := NewMemo(rt, func() int { return s.Get() * 2 })
	for i := 0; i < 10; i++ {
		prev := m
		m = NewMemo(rt, func() int { return prev.Get() + 1 })
	}
	rt.NewEffect(func() { _ = m.Get() })

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.Set(i + 1)
	}
}

func BenchmarkScopeDispose(b *testing.B) {
	rt := New()
	s := NewSignal(rt, 0)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		dispose := rt.UseScope(func() {
			for j := 0; j < 10; j++ {
				rt.NewEffect(func() { _ = s.Get() })
			}
		})
		dispose()
	}
}
