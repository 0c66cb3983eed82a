package router

import (
	"github.com/vango-dev/nestroute/pkg/routepath"
	"github.com/vango-dev/nestroute/pkg/routing"
)

// Result is a successful Match, flattened for callers that do not want to
// walk the nested match themselves.
type Result[D, V any] struct {
	// ID identifies the innermost matched route.
	ID routing.RouteMatchID

	// Path is the normalized path that was matched.
	Path string

	// Query is the raw query string, without "?".
	Query string

	// Pattern is the matched route rendered in pattern syntax.
	Pattern string

	// Params holds the decoded parameter values, outermost level first.
	// Keys may repeat when nested levels reuse a name.
	Params []routing.KeyValue

	// Views and Data hold one entry per matched level, outermost first.
	Views []V
	Data  []D

	match *routing.NestedMatch[D, V]
}

func newResult[D, V any](m *routing.NestedMatch[D, V], norm routepath.Normalized) (*Result[D, V], error) {
	var (
		segs      []routing.PathSegment
		wildcards = make(map[string]bool)
		res       = &Result[D, V]{
			ID:    m.ID(),
			Path:  norm.Path,
			Query: norm.Query,
			match: m,
		}
	)

	for level := range m.Levels() {
		segs = level.Route().Segments().GeneratePath(segs)
		res.Views = append(res.Views, level.View())
		res.Data = append(res.Data, level.Data())
	}
	for _, seg := range segs {
		if seg.Kind == routing.SegmentSplat {
			wildcards[seg.Value] = true
		}
	}
	res.Pattern = routing.JoinPath(segs)

	for key, raw := range m.Params().All() {
		value, err := routepath.DecodeParam(raw, wildcards[key])
		if err != nil {
			return nil, err
		}
		res.Params = append(res.Params, routing.KeyValue{Key: key, Value: value})
	}
	return res, nil
}

// Match returns the underlying nested match.
func (r *Result[D, V]) Match() *routing.NestedMatch[D, V] {
	return r.match
}

// Param returns the value for key. When several levels captured the same
// key the innermost value wins.
func (r *Result[D, V]) Param(key string) (string, bool) {
	for i := len(r.Params) - 1; i >= 0; i-- {
		if r.Params[i].Key == key {
			return r.Params[i].Value, true
		}
	}
	return "", false
}

// Map returns the params as a map, inner values overriding outer ones.
func (r *Result[D, V]) Map() map[string]string {
	out := make(map[string]string, len(r.Params))
	for _, p := range r.Params {
		out[p.Key] = p.Value
	}
	return out
}

// View returns the innermost view.
func (r *Result[D, V]) View() V {
	return r.Views[len(r.Views)-1]
}

// Leaf returns the innermost data.
func (r *Result[D, V]) Leaf() D {
	return r.Data[len(r.Data)-1]
}

// Depth returns the number of matched levels.
func (r *Result[D, V]) Depth() int {
	return len(r.Views)
}

// SameRoute reports whether r and other matched the same innermost route,
// regardless of parameter values. A nil result matches nothing.
func (r *Result[D, V]) SameRoute(other *Result[D, V]) bool {
	if r == nil || other == nil {
		return false
	}
	return r.ID == other.ID
}

// Decode populates target, a pointer to a struct with `param` tags, from
// the result's params.
func (r *Result[D, V]) Decode(target any) error {
	return defaultDecoder.Decode(r.Params, target)
}
