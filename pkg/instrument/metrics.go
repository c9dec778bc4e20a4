package instrument

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/vango-dev/proton/pkg/reactive"
)

// MetricsConfig configures the Prometheus observer.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "proton").
	Namespace string

	// Subsystem is the metrics subsystem (default: "reactive").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for effect run duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus observer.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "proton",
		Subsystem: "reactive",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics is an Observer that records runtime activity as Prometheus
// metrics.
type Metrics struct {
	effectsCreated prometheus.Counter
	effectRuns     prometheus.Counter
	effectPanics   prometheus.Counter
	effectDuration prometheus.Histogram
	effectsStopped prometheus.Counter
	activeEffects  prometheus.Gauge
	triggers       *prometheus.CounterVec
	effectsQueued  prometheus.Counter
	scopesDisposed prometheus.Counter
}

// Prometheus creates an Observer that collects Prometheus metrics.
//
// Metrics collected:
//   - proton_reactive_effects_created_total: Counter of effects created
//   - proton_reactive_effect_runs_total: Counter of effect body executions
//   - proton_reactive_effect_panics_total: Counter of effect runs that panicked
//   - proton_reactive_effect_run_duration_seconds: Histogram of effect run time
//   - proton_reactive_effects_stopped_total: Counter of effects stopped
//   - proton_reactive_active_effects: Gauge of created but not stopped effects
//   - proton_reactive_triggers_total: Counter of triggers with subscribers, by op
//   - proton_reactive_effects_scheduled_total: Counter of effects handed to schedulers
//   - proton_reactive_scopes_disposed_total: Counter of disposed scopes
//
// Registering twice on the same registry panics; give each Metrics its own
// registry or reuse the returned value.
func Prometheus(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &Metrics{
		effectsCreated: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "effects_created_total",
			Help:        "Total number of effects created",
			ConstLabels: config.ConstLabels,
		}),

		effectRuns: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "effect_runs_total",
			Help:        "Total number of effect body executions",
			ConstLabels: config.ConstLabels,
		}),

		effectPanics: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "effect_panics_total",
			Help:        "Total number of effect runs that panicked",
			ConstLabels: config.ConstLabels,
		}),

		effectDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "effect_run_duration_seconds",
			Help:        "Effect run duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}),

		effectsStopped: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "effects_stopped_total",
			Help:        "Total number of effects stopped",
			ConstLabels: config.ConstLabels,
		}),

		activeEffects: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "active_effects",
			Help:        "Number of effects created and not yet stopped",
			ConstLabels: config.ConstLabels,
		}),

		triggers: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "triggers_total",
			Help:        "Total number of triggers that found subscribers, by op",
			ConstLabels: config.ConstLabels,
		}, []string{"op"}),

		effectsQueued: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "effects_scheduled_total",
			Help:        "Total number of effects handed to their schedulers",
			ConstLabels: config.ConstLabels,
		}),

		scopesDisposed: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "scopes_disposed_total",
			Help:        "Total number of scopes disposed",
			ConstLabels: config.ConstLabels,
		}),
	}
}

func (m *Metrics) EffectCreated(*reactive.Effect) {
	m.effectsCreated.Inc()
	m.activeEffects.Inc()
}

func (m *Metrics) EffectStarted(*reactive.Effect) {}

func (m *Metrics) EffectFinished(_ *reactive.Effect, elapsed time.Duration, panicked bool) {
	m.effectRuns.Inc()
	m.effectDuration.Observe(elapsed.Seconds())
	if panicked {
		m.effectPanics.Inc()
	}
}

func (m *Metrics) EffectStopped(*reactive.Effect) {
	m.effectsStopped.Inc()
	m.activeEffects.Dec()
}

func (m *Metrics) Triggered(_ *reactive.Target, op reactive.Op, scheduled int) {
	m.triggers.WithLabelValues(op.String()).Inc()
	m.effectsQueued.Add(float64(scheduled))
}

func (m *Metrics) ScopeDisposed(*reactive.Scope) {
	m.scopesDisposed.Inc()
}

var _ reactive.Observer = (*Metrics)(nil)
