package router

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Match outcomes, used as the "outcome" label.
const (
	outcomeMatched  = "matched"
	outcomeNotFound = "not_found"
	outcomeRejected = "rejected"
)

type metrics struct {
	matches  *prometheus.CounterVec
	duration *prometheus.HistogramVec
	depth    prometheus.Histogram
}

// newMetrics registers the router's collectors. Collectors already
// registered under the same name, by another Router on the same registerer,
// are shared.
func newMetrics(cfg config) *metrics {
	if cfg.registerer == nil {
		return nil
	}

	matches := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace:   cfg.namespace,
		Name:        "matches_total",
		Help:        "Route lookups by outcome and matched pattern",
		ConstLabels: cfg.constLabels,
	}, []string{"outcome", "pattern"})

	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   cfg.namespace,
		Name:        "match_duration_seconds",
		Help:        "Route lookup duration in seconds",
		ConstLabels: cfg.constLabels,
		Buckets:     []float64{.00001, .00005, .0001, .0005, .001, .005, .01},
	}, []string{"outcome"})

	depth := prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace:   cfg.namespace,
		Name:        "match_depth",
		Help:        "Number of nested levels in successful matches",
		ConstLabels: cfg.constLabels,
		Buckets:     prometheus.LinearBuckets(1, 1, 8),
	})

	return &metrics{
		matches:  register(cfg.registerer, matches),
		duration: register(cfg.registerer, duration),
		depth:    register(cfg.registerer, depth),
	}
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) C {
	if err := reg.Register(c); err != nil {
		var already prometheus.AlreadyRegisteredError
		if errors.As(err, &already) {
			if existing, ok := already.ExistingCollector.(C); ok {
				return existing
			}
		}
		panic(err)
	}
	return c
}

func (m *metrics) observe(outcome, pattern string, depth int, start time.Time) {
	if m == nil {
		return
	}
	m.matches.WithLabelValues(outcome, pattern).Inc()
	m.duration.WithLabelValues(outcome).Observe(time.Since(start).Seconds())
	if outcome == outcomeMatched {
		m.depth.Observe(float64(depth))
	}
}
