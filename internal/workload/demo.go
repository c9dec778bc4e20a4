package workload

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/vango-dev/proton/pkg/reactive"
)

// Demo walks through the runtime's primitives on rt, narrating to w.
// It leaves no live effects behind.
func Demo(w io.Writer, rt *reactive.Runtime) {
	dispose := rt.UseScope(
		func() { demoSignal(w, rt) },
		func() { demoMemo(w, rt) },
		func() { demoCollections(w, rt) },
	)
	fmt.Fprintln(w, "== scope")
	dispose()
	fmt.Fprintln(w, "all effects stopped")
}

func demoSignal(w io.Writer, rt *reactive.Runtime) {
	fmt.Fprintln(w, "== signal")

	get, set := reactive.UseSignal(rt, 1, reactive.SignalLabel("count"))
	rt.NewEffect(func() {
		fmt.Fprintf(w, "effect saw count=%d\n", get())
	}, reactive.EffectName("printer"))

	set(reactive.Value(2))
	set(reactive.Value(2)) // equal value, no re-run
	set(reactive.Updater(func(v int) int { return v * 10 }))
}

func demoMemo(w io.Writer, rt *reactive.Runtime) {
	fmt.Fprintln(w, "== memo")

	price := reactive.NewSignal(rt, 3, reactive.SignalLabel("price"))
	qty := reactive.NewSignal(rt, 4, reactive.SignalLabel("qty"))

	computes := 0
	total := reactive.NewMemo(rt, func() int {
		computes++
		return price.Get() * qty.Get()
	})

	fmt.Fprintf(w, "total=%d computes=%d\n", total.Get(), computes)
	fmt.Fprintf(w, "total=%d computes=%d\n", total.Get(), computes)

	price.Set(5)
	qty.Set(2)
	fmt.Fprintf(w, "after two writes total=%d computes=%d\n", total.Get(), computes)
}

func demoCollections(w io.Writer, rt *reactive.Runtime) {
	fmt.Fprintln(w, "== tracked map")

	users := reactive.NewTrackedMap[string, string](rt)
	rt.NewEffect(func() {
		name, ok := users.Get("alice")
		if !ok {
			name = "<absent>"
		}
		fmt.Fprintf(w, "alice=%s\n", name)
	})
	rt.NewEffect(func() {
		keys := users.Keys()
		sort.Strings(keys)
		fmt.Fprintf(w, "keys=[%s]\n", strings.Join(keys, " "))
	})

	users.Set("bob", "Bob")
	users.Set("alice", "Alice")
	users.Set("bob", "Robert")
	users.Delete("alice")
}
