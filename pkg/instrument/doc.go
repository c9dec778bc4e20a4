// Package instrument provides reactive.Observer implementations that export
// runtime activity.
//
// This package includes:
//   - Prometheus metrics for effect runs, triggers and disposal
//   - OpenTelemetry spans, one per effect run
//   - Structured logging through log/slog
//   - Chain, which fans notifications out to several observers
//
// # Prometheus Metrics
//
//	reg := prometheus.NewRegistry()
//	rt := reactive.New(reactive.WithObserver(
//	    instrument.Prometheus(instrument.WithRegistry(reg)),
//	))
//
//	http.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
//
// # OpenTelemetry
//
// Each effect run becomes a span. Effects that run inside another effect
// produce child spans, and triggers are recorded as span events on the
// effect that caused them.
//
//	tracing := instrument.OpenTelemetry(
//	    instrument.WithTracerName("my-app"),
//	    instrument.WithEffectFilter(func(e *reactive.Effect) bool {
//	        return e.Name() != ""
//	    }),
//	)
//
// # Combining Observers
//
//	rt := reactive.New(reactive.WithObserver(instrument.Chain(
//	    instrument.Prometheus(),
//	    instrument.OpenTelemetry(),
//	    instrument.Logging(logger, slog.LevelDebug),
//	)))
package instrument
