package inspect

import (
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vango-dev/proton/pkg/reactive"
)

func quietHub(opts ...HubOption) *Hub {
	opts = append([]HubOption{WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))}, opts...)
	return NewHub(opts...)
}

func drain(sub *Subscription) []Event {
	var events []Event
	for {
		select {
		case ev := <-sub.C():
			events = append(events, ev)
		default:
			return events
		}
	}
}

func kinds(events []Event) []Kind {
	out := make([]Kind, len(events))
	for i, ev := range events {
		out[i] = ev.Kind
	}
	return out
}

func TestHubPublishesLifecycle(t *testing.T) {
	hub := quietHub()
	sub := hub.Subscribe()
	defer sub.Close()

	rt := reactive.New(reactive.WithObserver(hub))
	s := reactive.NewSignal(rt, 0, reactive.SignalLabel("count"))
	dispose := rt.UseScope(func() {
		rt.NewEffect(func() { _ = s.Get() }, reactive.EffectName("view"))
	})
	s.Set(1)
	dispose()

	events := drain(sub)
	assert.Equal(t, []Kind{
		KindEffectCreated,
		KindEffectStarted,
		KindEffectFinished,
		KindTriggered,
		KindEffectStarted,
		KindEffectFinished,
		KindEffectStopped,
		KindScopeDisposed,
	}, kinds(events))

	for i, ev := range events {
		assert.Equal(t, uint64(i+1), ev.Seq)
		assert.False(t, ev.Time.IsZero())
	}

	assert.Equal(t, "view", events[0].Name)
	assert.Equal(t, "set", events[3].Op)
	assert.Equal(t, 1, events[3].Scheduled)
	assert.Contains(t, events[3].Target, "count#")
}

func TestHubStats(t *testing.T) {
	hub := quietHub()
	rt := reactive.New(reactive.WithObserver(hub))

	s := reactive.NewSignal(rt, 0)
	e := rt.NewEffect(func() { _ = s.Get() })
	s.Set(1)

	bad := rt.NewEffect(func() { panic("boom") }, reactive.Lazy())
	require.Panics(t, bad.Run)
	e.Stop()

	st := hub.Stats()
	assert.Equal(t, int64(2), st.EffectsCreated)
	assert.Equal(t, int64(1), st.EffectsActive)
	assert.Equal(t, int64(3), st.EffectRuns)
	assert.Equal(t, int64(1), st.EffectPanics)
	assert.Equal(t, int64(1), st.Triggers)
	assert.Equal(t, int64(1), st.Scheduled)
	assert.Equal(t, 0, st.Subscribers)
}

func TestHubDropsWhenSubscriberIsFull(t *testing.T) {
	hub := quietHub(WithBuffer(2))
	sub := hub.Subscribe()
	defer sub.Close()

	rt := reactive.New(reactive.WithObserver(hub))
	rt.NewEffect(func() {})
	rt.NewEffect(func() {})

	assert.Len(t, drain(sub), 2)
	assert.Equal(t, int64(4), sub.Dropped())
	assert.Equal(t, int64(4), hub.Stats().Dropped)
}

func TestSubscriptionClose(t *testing.T) {
	hub := quietHub()
	sub := hub.Subscribe()

	_, err := uuid.Parse(sub.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, hub.Stats().Subscribers)

	sub.Close()
	sub.Close()

	_, open := <-sub.C()
	assert.False(t, open)
	assert.Equal(t, 0, hub.Stats().Subscribers)

	rt := reactive.New(reactive.WithObserver(hub))
	assert.NotPanics(t, func() { rt.NewEffect(func() {}) })
}

func TestSubscribersGetDistinctIDs(t *testing.T) {
	hub := quietHub()
	a, b := hub.Subscribe(), hub.Subscribe()
	defer a.Close()
	defer b.Close()

	assert.NotEqual(t, a.ID, b.ID)
}
