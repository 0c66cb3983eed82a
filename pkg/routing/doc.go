// Package routing implements nested route matching for view trees.
//
// A route tree is built from NestedRoute nodes. Each node owns a segment
// pattern, a set of child routes, an opaque data payload and an opaque view:
//
//	routes := routing.Routes[string, View]{
//	    routing.NewRoute(routing.Static("users"), "users", UsersLayout,
//	        routing.NewRoute(routing.Unit, "list", UserList),
//	        routing.NewRoute(routing.Param("id"), "show", UserShow),
//	    ),
//	}
//
//	m, _, ok := routes.MatchNested("/users/42")
//	// ok == true
//	// m.View() == UsersLayout, m.Child().View() == UserShow
//	id, _ := m.Params().Get("id") // "42"
//
// # Matching
//
// Siblings are tried in declaration order and the first one that matches
// wins; there is no longest-match or specificity ranking. A node matches
// only if its own segment matches a prefix of the path and its children
// match the rest. A node without children matches only when nothing but an
// optional trailing "/" is left, and every ancestor re-checks that on the
// way up, so a successful top-level match always consumes the entire path.
//
// Parameters are exposed as Params, a lazy sequence that yields the outer
// node's parameters before its matched child's. Duplicate names are kept.
//
// # Generation
//
// GenerateRoutes enumerates every concrete route pattern in a tree, one
// []PathSegment per leaf. JoinPath turns those back into "/users/:id"
// strings for static registration.
//
// Route trees are immutable after construction and may be matched from
// multiple goroutines.
package routing
