package reactive

import (
	"runtime"
	"sync"
	"weak"
)

// bucket is the insertion-ordered set of effects subscribed to one target.
type bucket struct {
	order []*Effect
	index map[*Effect]struct{}
}

func newBucket() *bucket {
	return &bucket{index: make(map[*Effect]struct{})}
}

func (b *bucket) has(e *Effect) bool {
	_, ok := b.index[e]
	return ok
}

func (b *bucket) add(e *Effect) {
	if b.has(e) {
		return
	}
	b.index[e] = struct{}{}
	b.order = append(b.order, e)
}

func (b *bucket) remove(e *Effect) {
	if !b.has(e) {
		return
	}
	delete(b.index, e)
	for i, existing := range b.order {
		if existing == e {
			b.order = append(b.order[:i], b.order[i+1:]...)
			return
		}
	}
}

func (b *bucket) len() int {
	return len(b.order)
}

// drain snapshots every member except keep, then empties the bucket.
// keep stays subscribed so an effect that writes what it reads does not
// lose its own subscription.
func (b *bucket) drain(keep *Effect) []*Effect {
	run := make([]*Effect, 0, len(b.order))
	kept := false
	for _, e := range b.order {
		if e == keep {
			kept = true
			continue
		}
		run = append(run, e)
	}

	clear(b.index)
	b.order = nil

	if kept {
		b.add(keep)
	}
	return run
}

// graph maps targets to buckets without keeping the targets alive.
//
// Entries are evicted by a runtime cleanup once their target is collected.
// A target stays reachable while an effect subscribed to it is alive and
// references it, so buckets are reclaimed after their subscribers stop.
type graph struct {
	// mu guards buckets against evictions, which run on the cleanup goroutine.
	mu      sync.Mutex
	buckets map[weak.Pointer[Target]]*bucket
}

func newGraph() *graph {
	return &graph{buckets: make(map[weak.Pointer[Target]]*bucket)}
}

// evictKey is the cleanup argument. It must not reference the target or the
// graph strongly, or the target could never be collected.
type evictKey struct {
	graph  weak.Pointer[graph]
	target weak.Pointer[Target]
}

func evict(k evictKey) {
	if g := k.graph.Value(); g != nil {
		g.mu.Lock()
		delete(g.buckets, k.target)
		g.mu.Unlock()
	}
}

// bucketFor returns the bucket for t, creating it when create is set.
func (g *graph) bucketFor(t *Target, create bool) *bucket {
	key := weak.Make(t)

	g.mu.Lock()
	defer g.mu.Unlock()

	b := g.buckets[key]
	if b == nil && create {
		b = newBucket()
		g.buckets[key] = b
		runtime.AddCleanup(t, evict, evictKey{graph: weak.Make(g), target: key})
	}
	return b
}

// len reports the number of live entries.
func (g *graph) len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.buckets)
}
