package routing

import (
	"iter"
	"strings"
)

// NestedMatch is the result of a successful match: one value per level of
// the route tree that was walked, each wrapping the next.
//
// Matched substrings point into the path that was matched.
type NestedMatch[D, V any] struct {
	id      RouteMatchID
	matched string
	params  Params
	child   *NestedMatch[D, V]
	route   *NestedRoute[D, V]
}

// ID returns the id of the innermost matched route. It is the same at every
// level of the match.
func (m *NestedMatch[D, V]) ID() RouteMatchID {
	return m.id
}

// Matched returns the part of the path matched by this level alone.
func (m *NestedMatch[D, V]) Matched() string {
	return m.matched
}

// Params returns this level's parameters followed by those of every matched
// descendant.
func (m *NestedMatch[D, V]) Params() Params {
	return m.params
}

// Child returns the matched child, or nil at the leaf.
func (m *NestedMatch[D, V]) Child() *NestedMatch[D, V] {
	return m.child
}

// Route returns the route node this level matched.
func (m *NestedMatch[D, V]) Route() *NestedRoute[D, V] {
	return m.route
}

// View returns the matched node's view.
func (m *NestedMatch[D, V]) View() V {
	return m.route.view
}

// Data returns the matched node's data.
func (m *NestedMatch[D, V]) Data() D {
	return m.route.data
}

// Levels yields this match and each descendant, outermost first.
func (m *NestedMatch[D, V]) Levels() iter.Seq[*NestedMatch[D, V]] {
	return func(yield func(*NestedMatch[D, V]) bool) {
		for cur := m; cur != nil; cur = cur.child {
			if !yield(cur) {
				return
			}
		}
	}
}

// Leaf returns the innermost level.
func (m *NestedMatch[D, V]) Leaf() *NestedMatch[D, V] {
	cur := m
	for cur.child != nil {
		cur = cur.child
	}
	return cur
}

// Depth returns the number of levels, including this one.
func (m *NestedMatch[D, V]) Depth() int {
	n := 0
	for range m.Levels() {
		n++
	}
	return n
}

// Views returns the view of every level, outermost first.
func (m *NestedMatch[D, V]) Views() []V {
	var views []V
	for level := range m.Levels() {
		views = append(views, level.View())
	}
	return views
}

// MatchedPath returns the concatenation of every level's matched text.
func (m *NestedMatch[D, V]) MatchedPath() string {
	var b strings.Builder
	for level := range m.Levels() {
		b.WriteString(level.matched)
	}
	return b.String()
}
