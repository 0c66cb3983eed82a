package router

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/nestroute/pkg/routepath"
	"github.com/vango-dev/nestroute/pkg/routing"
)

const tracerName = "nestroute"

var (
	// ErrNotFound is returned by Match when no route matches the path.
	ErrNotFound = errors.New("no route matches path")

	// ErrInvalidPath is returned by Match when the path cannot be
	// normalized or one of its parameters cannot be decoded. The underlying
	// routepath error is wrapped alongside it.
	ErrInvalidPath = errors.New("invalid path")
)

// Router matches request paths against a nested route tree.
type Router[D, V any] struct {
	routes   routing.MatchNestedRoutes[D, V]
	patterns []string
	byString map[string][]routing.PathSegment

	notFound    V
	hasNotFound bool

	cfg     config
	tracer  trace.Tracer
	metrics *metrics
}

// New creates a Router over routes. The route tree must not be modified
// afterwards.
func New[D, V any](routes routing.MatchNestedRoutes[D, V], opts ...Option) *Router[D, V] {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	r := &Router[D, V]{
		routes:   routes,
		byString: make(map[string][]routing.PathSegment),
		cfg:      cfg,
		tracer:   cfg.tracer,
		metrics:  newMetrics(cfg),
	}
	if r.tracer == nil {
		r.tracer = otel.Tracer(tracerName)
	}

	for segs := range routes.GenerateRoutes() {
		pattern := routing.JoinPath(segs)
		if _, dup := r.byString[pattern]; dup {
			cfg.logger.Warn("duplicate route pattern; later declaration is unreachable", "pattern", pattern)
			continue
		}
		r.patterns = append(r.patterns, pattern)
		r.byString[pattern] = segs
	}

	if cfg.notFound != nil {
		if v, ok := cfg.notFound.(V); ok {
			r.notFound, r.hasNotFound = v, true
		} else {
			cfg.logger.Warn("not-found view has the wrong type", "type", fmt.Sprintf("%T", cfg.notFound))
		}
	}

	cfg.logger.Debug("router ready", "routes", len(r.patterns))
	return r
}

// Match normalizes rawPath, strips its query and fragment, and matches the
// result against the route tree.
//
// It returns ErrNotFound when nothing matches and an error wrapping
// ErrInvalidPath when the path is malformed.
func (r *Router[D, V]) Match(ctx context.Context, rawPath string) (*Result[D, V], error) {
	start := time.Now()
	ctx, span := r.tracer.Start(ctx, "nestroute.match",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attribute.String("nestroute.path.raw", rawPath)),
	)
	defer span.End()

	norm, err := routepath.Normalize(rawPath)
	if err != nil {
		return nil, r.reject(ctx, span, rawPath, err, start)
	}
	span.SetAttributes(attribute.String("nestroute.path", norm.Path))

	m, _, ok := r.routes.MatchNested(norm.Path)
	if !ok || m == nil {
		r.metrics.observe(outcomeNotFound, "", 0, start)
		span.SetStatus(codes.Unset, "not found")
		r.cfg.logger.InfoContext(ctx, "no route matched", "path", norm.Path)
		return nil, ErrNotFound
	}

	res, err := newResult(m, norm)
	if err != nil {
		return nil, r.reject(ctx, span, rawPath, err, start)
	}

	r.metrics.observe(outcomeMatched, res.Pattern, res.Depth(), start)
	span.SetAttributes(
		attribute.String("nestroute.route.pattern", res.Pattern),
		attribute.Int64("nestroute.route.id", int64(res.ID)),
		attribute.Int("nestroute.route.depth", res.Depth()),
	)
	span.SetStatus(codes.Ok, "")
	r.cfg.logger.DebugContext(ctx, "route matched",
		"path", norm.Path,
		"pattern", res.Pattern,
		"id", uint64(res.ID),
		"params", len(res.Params),
	)
	return res, nil
}

func (r *Router[D, V]) reject(ctx context.Context, span trace.Span, rawPath string, cause error, start time.Time) error {
	r.metrics.observe(outcomeRejected, "", 0, start)
	span.RecordError(cause)
	span.SetStatus(codes.Error, cause.Error())
	r.cfg.logger.WarnContext(ctx, "rejected path", "path", rawPath, "error", cause)
	return fmt.Errorf("%w: %w", ErrInvalidPath, cause)
}

// Routes returns every route pattern in declaration order. Patterns that
// repeat an earlier one are left out.
func (r *Router[D, V]) Routes() []string {
	out := make([]string, len(r.patterns))
	copy(out, r.patterns)
	return out
}

// Tree returns the route tree the router was built from.
func (r *Router[D, V]) Tree() routing.MatchNestedRoutes[D, V] {
	return r.routes
}

// NotFound returns the view configured with WithNotFound.
func (r *Router[D, V]) NotFound() (V, bool) {
	return r.notFound, r.hasNotFound
}
