package instrument

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/vango-dev/proton/pkg/reactive"
)

type ctxKey struct{}

func TestTracingFollowsEffectStack(t *testing.T) {
	tracing := OpenTelemetry(WithTracerProvider(noop.NewTracerProvider()))
	rt := reactive.New(reactive.WithObserver(tracing))

	var outer, inner int
	rt.NewEffect(func() {
		outer = tracing.Depth()
		rt.NewEffect(func() {
			inner = tracing.Depth()
		})
	}, reactive.EffectName("outer"))

	assert.Equal(t, 1, outer)
	assert.Equal(t, 2, inner)
	assert.Equal(t, 0, tracing.Depth())
}

func TestTracingUnwindsOnPanic(t *testing.T) {
	tracing := OpenTelemetry(WithTracerProvider(noop.NewTracerProvider()))
	rt := reactive.New(reactive.WithObserver(tracing))

	e := rt.NewEffect(func() { panic("boom") }, reactive.Lazy())
	require.Panics(t, e.Run)

	assert.Equal(t, 0, tracing.Depth())
}

func TestTracingFilter(t *testing.T) {
	base := context.WithValue(context.Background(), ctxKey{}, "base")
	tracing := OpenTelemetry(
		WithTracerProvider(noop.NewTracerProvider()),
		WithBaseContext(base),
		WithEffectFilter(func(e *reactive.Effect) bool {
			return e.Name() == "traced"
		}),
	)
	rt := reactive.New(reactive.WithObserver(tracing))

	var filteredDepth int
	var filteredCtx context.Context
	rt.NewEffect(func() {
		filteredDepth = tracing.Depth()
		filteredCtx = tracing.Context()
	})

	assert.Equal(t, 1, filteredDepth, "filtered runs still occupy a stack slot")
	assert.Equal(t, "base", filteredCtx.Value(ctxKey{}))
	assert.False(t, trace.SpanFromContext(filteredCtx).SpanContext().IsValid())

	var tracedCtx context.Context
	rt.NewEffect(func() {
		tracedCtx = tracing.Context()
	}, reactive.EffectName("traced"))

	require.NotNil(t, tracedCtx)
	assert.Equal(t, "base", tracedCtx.Value(ctxKey{}), "span contexts derive from the base context")
}

func TestTracingContextWithoutRuns(t *testing.T) {
	tracing := OpenTelemetry()
	assert.Equal(t, context.Background(), tracing.Context())
}

func TestTracingTriggerOutsideEffect(t *testing.T) {
	tracing := OpenTelemetry(WithTracerProvider(noop.NewTracerProvider()))
	rt := reactive.New(reactive.WithObserver(tracing))

	s := reactive.NewSignal(rt, 0)
	rt.NewEffect(func() { _ = s.Get() })

	assert.NotPanics(t, func() { s.Set(1) })
	assert.Equal(t, 0, tracing.Depth())
}

func TestSpanName(t *testing.T) {
	rt := reactive.New()
	named := rt.NewEffect(func() {}, reactive.Lazy(), reactive.EffectName("render"))
	unnamed := rt.NewEffect(func() {}, reactive.Lazy())

	assert.Equal(t, "reactive.effect render", spanName(named))
	assert.Equal(t, "reactive.effect", spanName(unnamed))
}
