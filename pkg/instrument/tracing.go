package instrument

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/proton/pkg/reactive"
)

// Default tracer name for proton runtimes.
const defaultTracerName = "proton"

// OTelConfig configures the OpenTelemetry observer.
type OTelConfig struct {
	// TracerName is the name of the tracer (default: "proton").
	TracerName string

	// TracerProvider supplies the tracer.
	// Default: the global provider from otel.GetTracerProvider.
	TracerProvider trace.TracerProvider

	// BaseContext is the parent context of top-level effect spans.
	// Default: context.Background()
	BaseContext context.Context

	// Filter determines which effects are traced.
	// Return true to trace the effect. If nil, all effects are traced.
	Filter func(e *reactive.Effect) bool

	tracer trace.Tracer
}

// OTelOption configures the OpenTelemetry observer.
type OTelOption func(*OTelConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) OTelOption {
	return func(c *OTelConfig) {
		c.TracerName = name
	}
}

// WithTracerProvider sets the tracer provider.
func WithTracerProvider(tp trace.TracerProvider) OTelOption {
	return func(c *OTelConfig) {
		c.TracerProvider = tp
	}
}

// WithBaseContext sets the parent context of top-level spans.
func WithBaseContext(ctx context.Context) OTelOption {
	return func(c *OTelConfig) {
		c.BaseContext = ctx
	}
}

// WithEffectFilter sets a filter function for effects.
func WithEffectFilter(filter func(e *reactive.Effect) bool) OTelOption {
	return func(c *OTelConfig) {
		c.Filter = filter
	}
}

func defaultOTelConfig() OTelConfig {
	return OTelConfig{
		TracerName:  defaultTracerName,
		BaseContext: context.Background(),
	}
}

// runSpan is one entry of the span stack. span is nil for filtered runs so
// the stack stays aligned with the runtime's effect stack.
type runSpan struct {
	ctx  context.Context
	span trace.Span
}

// Tracing is an Observer that records one span per effect run.
//
// It keeps a stack mirroring the runtime's active-effect stack, so nested
// runs become child spans. Like the runtime it observes, it must be driven
// from one goroutine.
type Tracing struct {
	config OTelConfig
	stack  []runSpan
}

// OpenTelemetry creates an Observer that traces every effect run.
//
// Each span is named "reactive.effect <name>" and carries the effect id,
// name and dependency count. A run that panics ends with an error status.
// Triggers fired while an effect runs are added as "trigger" span events.
//
// The tracer comes from the global OpenTelemetry tracer provider unless
// WithTracerProvider is given. Configure it in main() before creating the
// runtime:
//
//	tp := sdktrace.NewTracerProvider(sdktrace.WithBatcher(exporter))
//	otel.SetTracerProvider(tp)
func OpenTelemetry(opts ...OTelOption) *Tracing {
	config := defaultOTelConfig()
	for _, opt := range opts {
		opt(&config)
	}

	provider := config.TracerProvider
	if provider == nil {
		provider = otel.GetTracerProvider()
	}
	if config.BaseContext == nil {
		config.BaseContext = context.Background()
	}
	config.tracer = provider.Tracer(config.TracerName)

	return &Tracing{config: config}
}

// Depth returns the number of effect runs currently open.
func (t *Tracing) Depth() int {
	return len(t.stack)
}

// Context returns the context of the innermost traced run, or the base
// context when none is open. Effects can use it to propagate the trace to
// downstream calls.
func (t *Tracing) Context() context.Context {
	for i := len(t.stack) - 1; i >= 0; i-- {
		if t.stack[i].span != nil {
			return t.stack[i].ctx
		}
	}
	return t.config.BaseContext
}

func (t *Tracing) EffectCreated(*reactive.Effect) {}

func (t *Tracing) EffectStarted(e *reactive.Effect) {
	if t.config.Filter != nil && !t.config.Filter(e) {
		t.stack = append(t.stack, runSpan{})
		return
	}

	ctx, span := t.config.tracer.Start(
		t.Context(),
		spanName(e),
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.Int64("proton.effect_id", int64(e.ID())),
			attribute.String("proton.effect_name", e.Name()),
		),
		trace.WithTimestamp(time.Now()),
	)
	t.stack = append(t.stack, runSpan{ctx: ctx, span: span})
}

func (t *Tracing) EffectFinished(e *reactive.Effect, elapsed time.Duration, panicked bool) {
	if len(t.stack) == 0 {
		return
	}
	top := t.stack[len(t.stack)-1]
	t.stack[len(t.stack)-1] = runSpan{}
	t.stack = t.stack[:len(t.stack)-1]

	if top.span == nil {
		return
	}
	top.span.SetAttributes(
		attribute.Int("proton.deps", e.Deps()),
		attribute.Int64("proton.duration_ns", elapsed.Nanoseconds()),
	)
	if panicked {
		top.span.SetStatus(codes.Error, "effect panicked")
	} else {
		top.span.SetStatus(codes.Ok, "")
	}
	top.span.End()
}

func (t *Tracing) EffectStopped(*reactive.Effect) {}

func (t *Tracing) Triggered(target *reactive.Target, op reactive.Op, scheduled int) {
	span := trace.SpanFromContext(t.Context())
	if !span.IsRecording() {
		return
	}
	span.AddEvent("trigger", trace.WithAttributes(
		attribute.String("proton.target", target.String()),
		attribute.String("proton.op", op.String()),
		attribute.Int("proton.scheduled", scheduled),
	))
}

func (t *Tracing) ScopeDisposed(*reactive.Scope) {}

func spanName(e *reactive.Effect) string {
	if e.Name() != "" {
		return fmt.Sprintf("reactive.effect %s", e.Name())
	}
	return "reactive.effect"
}

var _ reactive.Observer = (*Tracing)(nil)
