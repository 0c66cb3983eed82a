package routing

import (
	"iter"
	"sync/atomic"
)

// RouteMatchID identifies a route node. It is assigned once when the node is
// created, so every match that ends at the same node reports the same id.
// Consumers compare ids to tell "same route, new params" from "new route".
type RouteMatchID uint64

var lastRouteID atomic.Uint64

func nextRouteID() RouteMatchID {
	return RouteMatchID(lastRouteID.Add(1))
}

// NestedRoute is a node of a route tree.
type NestedRoute[D, V any] struct {
	id       RouteMatchID
	segments PossibleRouteMatch
	children MatchNestedRoutes[D, V]
	data     D
	view     V
}

// NewNestedRoute creates a route node. A nil segments matches the empty
// prefix; nil children makes the node a leaf.
func NewNestedRoute[D, V any](segments PossibleRouteMatch, children MatchNestedRoutes[D, V], data D, view V) *NestedRoute[D, V] {
	if segments == nil {
		segments = Unit
	}
	if children == nil {
		children = Routes[D, V](nil)
	}
	return &NestedRoute[D, V]{
		id:       nextRouteID(),
		segments: segments,
		children: children,
		data:     data,
		view:     view,
	}
}

// NewRoute creates a route node whose children are tried in the given order.
func NewRoute[D, V any](segments PossibleRouteMatch, data D, view V, children ...*NestedRoute[D, V]) *NestedRoute[D, V] {
	return NewNestedRoute[D, V](segments, Routes[D, V](children), data, view)
}

// ID returns the node's id.
func (n *NestedRoute[D, V]) ID() RouteMatchID {
	return n.id
}

// Segments returns the node's segment pattern.
func (n *NestedRoute[D, V]) Segments() PossibleRouteMatch {
	return n.segments
}

// Children returns the node's children.
func (n *NestedRoute[D, V]) Children() MatchNestedRoutes[D, V] {
	return n.children
}

// Data returns the node's data payload.
func (n *NestedRoute[D, V]) Data() D {
	return n.data
}

// View returns the node's view payload.
func (n *NestedRoute[D, V]) View() V {
	return n.view
}

// MatchNested implements MatchNestedRoutes.
//
// The node's own segment must match a prefix of path and its children must
// match the rest. Whatever the children leave over must be "" or "/";
// otherwise the whole node fails and path is handed back unchanged so the
// caller can try the next alternative.
func (n *NestedRoute[D, V]) MatchNested(path string) (*NestedMatch[D, V], string, bool) {
	partial, ok := n.segments.Test(path)
	if !ok {
		return nil, path, false
	}

	inner, remaining, ok := n.children.MatchNested(partial.Remaining)
	if !ok || !isFullyConsumed(remaining) {
		return nil, path, false
	}

	m := &NestedMatch[D, V]{
		id:      n.id,
		matched: partial.Matched,
		params:  partial.Params,
		route:   n,
	}
	if inner != nil {
		m.id = inner.id
		m.params = m.params.Chain(inner.params)
		m.child = inner
	}
	return m, remaining, true
}

// GenerateRoutes implements MatchNestedRoutes. Each route yielded by the
// children is prefixed with this node's own fragments; unit fragments are
// dropped. Every iteration walks the tree again.
func (n *NestedRoute[D, V]) GenerateRoutes() iter.Seq[[]PathSegment] {
	return func(yield func([]PathSegment) bool) {
		own := n.segments.GeneratePath(nil)
		for child := range n.children.GenerateRoutes() {
			route := make([]PathSegment, 0, len(own)+len(child))
			route = withoutUnits(route, own)
			route = withoutUnits(route, child)
			if !yield(route) {
				return
			}
		}
	}
}
