// Package reactive provides a fine-grained reactive runtime.
//
// Effects re-run automatically when the data they read changes. Reads are
// recorded while an effect runs; writes look up the recorded subscribers and
// hand them to their schedulers. No explicit subscriptions are wired.
//
// # Core Types
//
// Runtime owns the dependency graph and the active effect and scope stacks:
//
//	rt := reactive.New()
//
// Signal[T] is a reactive value cell:
//
//	count := reactive.NewSignal(rt, 0)
//	count.Get()     // read (subscribes the active effect)
//	count.Set(5)    // write (triggers subscribers if changed)
//	count.Update(func(n int) int { return n + 1 })
//
// Effect re-runs when anything it read changes:
//
//	rt.NewEffect(func() {
//	    fmt.Println("count is", count.Get())
//	})
//
// Memo[T] caches a derived value and recomputes it lazily:
//
//	doubled := reactive.NewMemo(rt, func() int { return count.Get() * 2 })
//
// Scope owns effects and child scopes so they can be torn down together:
//
//	dispose := rt.UseScope(func() {
//	    rt.NewEffect(render)
//	})
//	dispose() // stops every effect created above
//
// # Custom Targets
//
// Any structure can become reactive by allocating a Target and calling
// Track on reads and Trigger on writes. TrackedMap and TrackedSlice are
// built this way.
//
// # Thread Safety
//
// A Runtime is single-threaded. Effects, signals, memos and scopes must be
// used from the goroutine driving their runtime. Use separate runtimes for
// independent goroutines.
package reactive
