package routing

import "iter"

// MatchNestedRoutes is implemented by anything that can stand in as the
// children of a NestedRoute: a single route, or a set of alternatives.
type MatchNestedRoutes[D, V any] interface {
	// MatchNested matches path. On success it returns the match (nil when
	// the implementer is an empty leaf set) and what is left of path. On
	// failure it returns path unchanged and ok == false.
	MatchNested(path string) (m *NestedMatch[D, V], remaining string, ok bool)

	// GenerateRoutes yields every route pattern below this point.
	GenerateRoutes() iter.Seq[[]PathSegment]
}

// Routes is an ordered set of alternative routes. Alternatives are tried in
// declaration order and the first full match wins.
//
// An empty Routes marks a leaf: it matches only a fully consumed path ("" or
// "/") and generates a single empty route.
type Routes[D, V any] []*NestedRoute[D, V]

// MatchNested implements MatchNestedRoutes.
func (r Routes[D, V]) MatchNested(path string) (*NestedMatch[D, V], string, bool) {
	if len(r) == 0 {
		return nil, path, isFullyConsumed(path)
	}
	for _, route := range r {
		if m, remaining, ok := route.MatchNested(path); ok {
			return m, remaining, true
		}
	}
	return nil, path, false
}

// GenerateRoutes implements MatchNestedRoutes. Alternatives contribute their
// routes one after another.
func (r Routes[D, V]) GenerateRoutes() iter.Seq[[]PathSegment] {
	return func(yield func([]PathSegment) bool) {
		if len(r) == 0 {
			yield(nil)
			return
		}
		for _, route := range r {
			for segs := range route.GenerateRoutes() {
				if !yield(segs) {
					return
				}
			}
		}
	}
}

// Match matches a full path against the set. It is MatchNested without the
// remainder, for callers that only care whether the path matched.
func (r Routes[D, V]) Match(path string) (*NestedMatch[D, V], bool) {
	m, _, ok := r.MatchNested(path)
	if !ok || m == nil {
		return nil, false
	}
	return m, true
}

// Patterns returns every route generated by routes, joined into pattern
// strings, in generation order.
func Patterns[D, V any](routes MatchNestedRoutes[D, V]) []string {
	var out []string
	for segs := range routes.GenerateRoutes() {
		out = append(out, JoinPath(segs))
	}
	return out
}
