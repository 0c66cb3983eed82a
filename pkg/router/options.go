package router

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/trace"
)

const defaultNamespace = "nestroute"

// Option configures a Router.
type Option func(*config)

type config struct {
	logger      *slog.Logger
	registerer  prometheus.Registerer
	namespace   string
	constLabels prometheus.Labels
	tracer      trace.Tracer
	notFound    any
}

func defaultConfig() config {
	return config{
		logger:     slog.Default(),
		registerer: prometheus.DefaultRegisterer,
		namespace:  defaultNamespace,
	}
}

// WithLogger sets the logger. Matches are logged at Debug, misses at Info
// and rejected paths at Warn.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithRegisterer sets the Prometheus registerer for the router's metrics.
// A nil registerer disables metrics.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(c *config) {
		c.registerer = reg
	}
}

// WithNamespace sets the metrics namespace (default: "nestroute").
func WithNamespace(namespace string) Option {
	return func(c *config) {
		c.namespace = namespace
	}
}

// WithConstLabels adds constant labels to every metric.
func WithConstLabels(labels prometheus.Labels) Option {
	return func(c *config) {
		c.constLabels = labels
	}
}

// WithTracer sets the tracer used for match spans. Defaults to the global
// tracer provider's "nestroute" tracer.
func WithTracer(tracer trace.Tracer) Option {
	return func(c *config) {
		c.tracer = tracer
	}
}

// WithNotFound sets the view returned by NotFound. The value must have the
// router's view type; anything else is ignored with a warning.
func WithNotFound(view any) Option {
	return func(c *config) {
		c.notFound = view
	}
}
