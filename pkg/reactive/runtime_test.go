package reactive

import (
	"runtime"
	"testing"
	"time"
)

func TestRuntimesAreIsolated(t *testing.T) {
	rt1 := New(WithName("one"))
	rt2 := New(WithName("two"))
	s := NewSignal(rt1, 0)

	runs := 0
	rt2.NewEffect(func() {
		_ = s.Get()
		runs++
	})

	s.Set(1)
	if runs != 1 {
		t.Errorf("an effect in another runtime should not track, got %d runs", runs)
	}
	if rt2.GraphSize() != 0 {
		t.Errorf("rt2 graph should be empty, has %d", rt2.GraphSize())
	}
	if rt1.Name() != "one" {
		t.Errorf("Name() = %q", rt1.Name())
	}
}

func TestDefaultRuntimeIsShared(t *testing.T) {
	if Default() != Default() {
		t.Error("Default() should return the same runtime")
	}
}

func TestUntracked(t *testing.T) {
	rt := New()
	tracked := NewSignal(rt, 0)
	ignored := NewSignal(rt, 0)

	runs := 0
	rt.NewEffect(func() {
		_ = tracked.Get()
		rt.Untracked(func() {
			if rt.Tracking() {
				t.Error("Tracking() should be false inside Untracked")
			}
			_ = ignored.Get()
		})
		runs++
	})

	ignored.Set(1)
	if runs != 1 {
		t.Errorf("untracked read subscribed the effect: %d runs", runs)
	}
	tracked.Set(1)
	if runs != 2 {
		t.Errorf("tracked read should still subscribe: %d runs", runs)
	}
}

func TestTrackDeduplicates(t *testing.T) {
	rt := New()
	target := NewTarget("custom")

	e := rt.NewEffect(func() {
		rt.Track(target)
		rt.Track(target)
		rt.Track(target)
	})

	if e.Deps() != 1 {
		t.Errorf("Deps() = %d, want 1", e.Deps())
	}
}

func TestCustomTargetTrigger(t *testing.T) {
	rt := New()
	target := NewTarget("custom")

	var ops []Op
	rt.NewEffect(func() {
		rt.Track(target)
	}, OnTrigger(func(_ *Effect, _ *Target, op Op) {
		ops = append(ops, op)
	}))

	rt.Trigger(target, OpAdd)
	rt.Trigger(target, Op(42))

	if len(ops) != 2 || ops[0] != OpAdd || ops[1] != Op(42) {
		t.Errorf("ops = %v", ops)
	}
}

func TestOpString(t *testing.T) {
	tests := map[Op]string{
		OpSet:    "set",
		OpAdd:    "add",
		OpDelete: "delete",
		OpClear:  "clear",
		Op(9):    "op(9)",
	}
	for op, want := range tests {
		if got := op.String(); got != want {
			t.Errorf("Op(%d).String() = %q, want %q", op, got, want)
		}
	}
}

func TestTargetString(t *testing.T) {
	labeled := NewTarget("count")
	if labeled.String() == "" || labeled.Label() != "count" {
		t.Errorf("labeled target = %q", labeled.String())
	}
	if NewTarget("").String()[:7] != "target#" {
		t.Error("unlabeled target should render as target#id")
	}
}

// subscribeAndStop subscribes an effect to a fresh target, then stops it,
// leaving nothing that references the target.
func subscribeAndStop(rt *Runtime) {
	target := NewTarget("temp")
	e := rt.NewEffect(func() { rt.Track(target) })
	e.Stop()
}

func TestGraphEvictsCollectedTargets(t *testing.T) {
	rt := New()
	subscribeAndStop(rt)

	if rt.GraphSize() != 1 {
		t.Fatalf("GraphSize() = %d, want 1", rt.GraphSize())
	}

	deadline := time.Now().Add(5 * time.Second)
	for rt.GraphSize() != 0 && time.Now().Before(deadline) {
		runtime.GC()
		time.Sleep(10 * time.Millisecond)
	}

	if rt.GraphSize() != 0 {
		t.Errorf("bucket for a collected target was not evicted, GraphSize() = %d", rt.GraphSize())
	}
}

func TestGraphKeepsLiveTargets(t *testing.T) {
	rt := New()
	s := NewSignal(rt, 0)
	rt.NewEffect(func() { _ = s.Get() })

	runtime.GC()
	runtime.GC()

	if rt.GraphSize() != 1 {
		t.Errorf("live target was evicted, GraphSize() = %d", rt.GraphSize())
	}
	runtime.KeepAlive(s)
}
