package inspect

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/vango-dev/proton/pkg/reactive"
)

// DefaultBuffer is the per-subscriber channel capacity.
const DefaultBuffer = 256

// Stats are aggregate counters kept by a Hub.
type Stats struct {
	EffectsCreated int64  `json:"effects_created"`
	EffectsActive  int64  `json:"effects_active"`
	EffectRuns     int64  `json:"effect_runs"`
	EffectPanics   int64  `json:"effect_panics"`
	Triggers       int64  `json:"triggers"`
	Scheduled      int64  `json:"scheduled"`
	ScopesDisposed int64  `json:"scopes_disposed"`
	Subscribers    int    `json:"subscribers"`
	Dropped        int64  `json:"dropped"`
	LastSeq        uint64 `json:"last_seq"`
}

// HubOption configures a Hub.
type HubOption func(*Hub)

// WithBuffer sets the per-subscriber channel capacity.
func WithBuffer(n int) HubOption {
	return func(h *Hub) {
		if n > 0 {
			h.buffer = n
		}
	}
}

// WithLogger sets the logger for subscriber lifecycle records.
func WithLogger(logger *slog.Logger) HubOption {
	return func(h *Hub) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// Hub is a reactive.Observer that broadcasts events to subscribers.
//
// The runtime calls the Hub on its own goroutine; subscribers may consume
// from any goroutine. Publishing never blocks: an event that does not fit
// in a subscriber's buffer is dropped for that subscriber.
type Hub struct {
	mu     sync.Mutex
	subs   map[*Subscription]struct{}
	stats  Stats
	buffer int
	logger *slog.Logger
	now    func() time.Time
}

// NewHub creates a Hub.
func NewHub(opts ...HubOption) *Hub {
	h := &Hub{
		subs:   make(map[*Subscription]struct{}),
		buffer: DefaultBuffer,
		logger: slog.Default().With("component", "inspect"),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Subscription is one consumer of a Hub's events.
type Subscription struct {
	// ID uniquely identifies the subscriber.
	ID string

	ch      chan Event
	hub     *Hub
	dropped atomic.Int64
	once    sync.Once
}

// C returns the event channel. It is closed by Close.
func (s *Subscription) C() <-chan Event {
	return s.ch
}

// Dropped returns the number of events this subscriber missed because its
// buffer was full.
func (s *Subscription) Dropped() int64 {
	return s.dropped.Load()
}

// Close unsubscribes and closes the channel. It is safe to call more than
// once.
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.hub.unsubscribe(s)
	})
}

// Subscribe registers a new subscriber.
func (h *Hub) Subscribe() *Subscription {
	s := &Subscription{
		ID:  uuid.NewString(),
		ch:  make(chan Event, h.buffer),
		hub: h,
	}

	h.mu.Lock()
	h.subs[s] = struct{}{}
	count := len(h.subs)
	h.mu.Unlock()

	h.logger.Info("subscriber attached", "subscriber", s.ID, "subscribers", count)
	return s
}

func (h *Hub) unsubscribe(s *Subscription) {
	h.mu.Lock()
	delete(h.subs, s)
	close(s.ch)
	count := len(h.subs)
	h.mu.Unlock()

	h.logger.Info("subscriber detached",
		"subscriber", s.ID,
		"subscribers", count,
		"dropped", s.Dropped())
}

// Stats returns a snapshot of the Hub's counters.
func (h *Hub) Stats() Stats {
	h.mu.Lock()
	defer h.mu.Unlock()
	st := h.stats
	st.Subscribers = len(h.subs)
	return st
}

// publish stamps ev, updates the counters via account and delivers it.
// The channel sends happen under mu so Close cannot race with them.
func (h *Hub) publish(ev Event, account func(*Stats)) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.stats.LastSeq++
	ev.Seq = h.stats.LastSeq
	ev.Time = h.now()
	if account != nil {
		account(&h.stats)
	}

	for s := range h.subs {
		select {
		case s.ch <- ev:
		default:
			s.dropped.Add(1)
			h.stats.Dropped++
		}
	}
}

func (h *Hub) EffectCreated(e *reactive.Effect) {
	h.publish(Event{Kind: KindEffectCreated, Effect: e.ID(), Name: e.Name()}, func(st *Stats) {
		st.EffectsCreated++
		st.EffectsActive++
	})
}

func (h *Hub) EffectStarted(e *reactive.Effect) {
	h.publish(Event{Kind: KindEffectStarted, Effect: e.ID(), Name: e.Name()}, nil)
}

func (h *Hub) EffectFinished(e *reactive.Effect, elapsed time.Duration, panicked bool) {
	h.publish(Event{
		Kind:       KindEffectFinished,
		Effect:     e.ID(),
		Name:       e.Name(),
		DurationNS: elapsed.Nanoseconds(),
		Panicked:   panicked,
	}, func(st *Stats) {
		st.EffectRuns++
		if panicked {
			st.EffectPanics++
		}
	})
}

func (h *Hub) EffectStopped(e *reactive.Effect) {
	h.publish(Event{Kind: KindEffectStopped, Effect: e.ID(), Name: e.Name()}, func(st *Stats) {
		st.EffectsActive--
	})
}

func (h *Hub) Triggered(t *reactive.Target, op reactive.Op, scheduled int) {
	h.publish(Event{
		Kind:      KindTriggered,
		Target:    t.String(),
		Op:        op.String(),
		Scheduled: scheduled,
	}, func(st *Stats) {
		st.Triggers++
		st.Scheduled += int64(scheduled)
	})
}

func (h *Hub) ScopeDisposed(s *reactive.Scope) {
	h.publish(Event{Kind: KindScopeDisposed, Scope: s.ID()}, func(st *Stats) {
		st.ScopesDisposed++
	})
}

var _ reactive.Observer = (*Hub)(nil)
