package routing

import (
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// view is a test view payload.
type view string

func leaf(seg PossibleRouteMatch, name string) *NestedRoute[string, view] {
	return NewRoute(seg, name, view(name))
}

func usersTree() Routes[string, view] {
	return Routes[string, view]{
		NewRoute(Static("users"), "users", view("UsersLayout"),
			leaf(Param("id"), "show"),
		),
	}
}

func TestMatchNestedParamLeaf(t *testing.T) {
	routes := usersTree()

	m, remaining, ok := routes.MatchNested("/users/42")
	if !ok {
		t.Fatal("expected /users/42 to match")
	}
	if remaining != "" {
		t.Errorf("remaining = %q, want empty", remaining)
	}
	want := []KeyValue{{"id", "42"}}
	if diff := cmp.Diff(want, m.Params().Collect()); diff != "" {
		t.Errorf("params mismatch (-want +got):\n%s", diff)
	}
	if m.Matched() != "/users" {
		t.Errorf("Matched() = %q, want /users", m.Matched())
	}
	child := m.Child()
	if child == nil {
		t.Fatal("expected a child match")
	}
	if child.Matched() != "/42" {
		t.Errorf("child.Matched() = %q, want /42", child.Matched())
	}
	if child.Child() != nil {
		t.Error("leaf match should have no child")
	}
	if diff := cmp.Diff([]view{"UsersLayout", "show"}, m.Views()); diff != "" {
		t.Errorf("Views() mismatch (-want +got):\n%s", diff)
	}
}

func TestMatchNestedRejectsExtraSuffix(t *testing.T) {
	routes := usersTree()

	m, remaining, ok := routes.MatchNested("/users/42/extra")
	if ok {
		t.Fatalf("expected no match, got %q", m.MatchedPath())
	}
	if m != nil {
		t.Error("failed match should return nil")
	}
	if remaining != "/users/42/extra" {
		t.Errorf("remaining = %q, want the input unchanged", remaining)
	}
}

func alternativesTree() Routes[string, view] {
	return Routes[string, view]{
		leaf(Static("a"), "a"),
		leaf(MustParsePath("/a/:x"), "a-x"),
	}
}

func TestMatchNestedFirstAlternativeWins(t *testing.T) {
	m, remaining, ok := alternativesTree().MatchNested("/a")
	if !ok {
		t.Fatal("expected /a to match")
	}
	if m.Data() != "a" {
		t.Errorf("Data() = %q, want first alternative", m.Data())
	}
	if m.Params().Len() != 0 {
		t.Errorf("params = %v, want none", m.Params().Collect())
	}
	if remaining != "" {
		t.Errorf("remaining = %q, want empty", remaining)
	}
}

func TestMatchNestedFallsThroughToSecond(t *testing.T) {
	m, _, ok := alternativesTree().MatchNested("/a/5")
	if !ok {
		t.Fatal("expected /a/5 to match")
	}
	if m.Data() != "a-x" {
		t.Errorf("Data() = %q, want second alternative", m.Data())
	}
	want := []KeyValue{{"x", "5"}}
	if diff := cmp.Diff(want, m.Params().Collect()); diff != "" {
		t.Errorf("params mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerateRoutesElidesUnit(t *testing.T) {
	routes := Routes[string, view]{
		leaf(Static("A"), "a"),
		leaf(Segments(Unit, Param("param")), "b"),
	}

	got := slices.Collect(routes.GenerateRoutes())
	want := [][]PathSegment{
		{StaticPath("A")},
		{ParamPath("param")},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("GenerateRoutes() mismatch (-want +got):\n%s", diff)
	}
}

func TestMatchNestedTrailingSlash(t *testing.T) {
	m, remaining, ok := usersTree().MatchNested("/users/42/")
	if !ok {
		t.Fatal("expected /users/42/ to match")
	}
	if remaining != "/" {
		t.Errorf("remaining = %q, want /", remaining)
	}
	if v, _ := m.Params().Get("id"); v != "42" {
		t.Errorf("id = %q, want 42", v)
	}
}

func TestMatchNestedNoMatch(t *testing.T) {
	paths := []string{"", "/", "/users", "/posts/1", "/users//", "/usersx/1"}
	for _, path := range paths {
		if m, remaining, ok := usersTree().MatchNested(path); ok {
			t.Errorf("MatchNested(%q) matched %q", path, m.MatchedPath())
		} else if remaining != path {
			t.Errorf("MatchNested(%q) remaining = %q, want input unchanged", path, remaining)
		}
	}
}

func TestMatchNestedIndexRoute(t *testing.T) {
	routes := Routes[string, view]{
		NewRoute(Static("users"), "users", view("UsersLayout"),
			leaf(Unit, "index"),
			leaf(Param("id"), "show"),
		),
	}

	tests := []struct {
		path     string
		wantLeaf string
	}{
		{"/users", "index"},
		{"/users/", "index"},
		{"/users/7", "show"},
	}

	for _, tt := range tests {
		m, ok := routes.Match(tt.path)
		if !ok {
			t.Errorf("Match(%q) failed", tt.path)
			continue
		}
		if got := m.Leaf().Data(); got != tt.wantLeaf {
			t.Errorf("Match(%q) leaf = %q, want %q", tt.path, got, tt.wantLeaf)
		}
	}
}

func TestMatchNestedRootIndex(t *testing.T) {
	routes := Routes[string, view]{
		leaf(Unit, "home"),
		leaf(Static("about"), "about"),
	}

	for _, path := range []string{"", "/"} {
		m, ok := routes.Match(path)
		if !ok {
			t.Errorf("Match(%q) failed", path)
			continue
		}
		if m.Data() != "home" {
			t.Errorf("Match(%q) = %q, want home", path, m.Data())
		}
	}

	// The unit route is tried first but leaves "/about" unconsumed.
	m, ok := routes.Match("/about")
	if !ok || m.Data() != "about" {
		t.Errorf("Match(/about) = %v, %v", m, ok)
	}
}

func TestMatchNestedDeepPartialConsumptionRejected(t *testing.T) {
	// The middle node's segment matches, but its only child leaves "/x".
	routes := Routes[string, view]{
		NewRoute(Static("a"), "a", view("A"),
			NewRoute(Static("b"), "b", view("B"),
				leaf(Param("c"), "c"),
			),
		),
		leaf(Wildcard("rest"), "fallback"),
	}

	m, ok := routes.Match("/a/b/1/x")
	if !ok {
		t.Fatal("expected fallback to match")
	}
	if m.Data() != "fallback" {
		t.Errorf("Data() = %q, want fallback", m.Data())
	}
	if v, _ := m.Params().Get("rest"); v != "a/b/1/x" {
		t.Errorf("rest = %q, want a/b/1/x", v)
	}
}

func TestMatchNestedAlternationOrder(t *testing.T) {
	routes := Routes[string, view]{
		leaf(Param("slug"), "param"),
		leaf(Static("new"), "static"),
	}

	m, ok := routes.Match("/new")
	if !ok {
		t.Fatal("expected match")
	}
	if m.Data() != "param" {
		t.Errorf("Data() = %q, want the first declared alternative", m.Data())
	}
}

func TestMatchNestedParamOrderAndDuplicates(t *testing.T) {
	routes := Routes[string, view]{
		NewRoute(Param("id"), "outer", view("Outer"),
			NewRoute(Static("sub"), "sub", view("Sub"),
				leaf(Param("id"), "inner"),
			),
		),
	}

	m, ok := routes.Match("/1/sub/2")
	if !ok {
		t.Fatal("expected match")
	}
	want := []KeyValue{{"id", "1"}, {"id", "2"}}
	if diff := cmp.Diff(want, m.Params().Collect()); diff != "" {
		t.Errorf("params mismatch (-want +got):\n%s", diff)
	}

	// Each level only sees its own params and its descendants'.
	sub := m.Child()
	if diff := cmp.Diff([]KeyValue{{"id", "2"}}, sub.Params().Collect()); diff != "" {
		t.Errorf("child params mismatch (-want +got):\n%s", diff)
	}
}

func TestMatchNestedIDIsLeafID(t *testing.T) {
	show := leaf(Param("id"), "show")
	users := NewRoute(Static("users"), "users", view("UsersLayout"), show)
	routes := Routes[string, view]{users}

	m, ok := routes.Match("/users/1")
	if !ok {
		t.Fatal("expected match")
	}
	for level := range m.Levels() {
		if level.ID() != show.ID() {
			t.Errorf("level %q ID = %d, want leaf ID %d", level.Matched(), level.ID(), show.ID())
		}
	}
	if users.ID() == show.ID() {
		t.Error("distinct nodes should have distinct IDs")
	}
	if m.Leaf().Route() != show {
		t.Error("Leaf().Route() should be the leaf node")
	}
}

func TestMatchNestedIdempotent(t *testing.T) {
	routes := usersTree()

	first, ok1 := routes.Match("/users/42")
	second, ok2 := routes.Match("/users/42")
	if !ok1 || !ok2 {
		t.Fatal("expected both matches to succeed")
	}
	if first.ID() != second.ID() {
		t.Errorf("IDs differ: %d vs %d", first.ID(), second.ID())
	}
	if first.MatchedPath() != second.MatchedPath() {
		t.Errorf("matched differs: %q vs %q", first.MatchedPath(), second.MatchedPath())
	}
	if diff := cmp.Diff(first.Params().Collect(), second.Params().Collect()); diff != "" {
		t.Errorf("params differ (-first +second):\n%s", diff)
	}

	// Same route, different params: same ID.
	other, ok := routes.Match("/users/43")
	if !ok {
		t.Fatal("expected /users/43 to match")
	}
	if other.ID() != first.ID() {
		t.Errorf("ID for /users/43 = %d, want %d", other.ID(), first.ID())
	}
}

func TestMatchNestedFullConsumptionLaw(t *testing.T) {
	routes := Routes[string, view]{
		NewRoute(Static("users"), "users", view("Users"),
			leaf(Unit, "index"),
			NewRoute(TypedParam("id", "int"), "user", view("User"),
				leaf(Unit, "profile"),
				leaf(Static("edit"), "edit"),
			),
		),
		NewRoute(Static("files"), "files", view("Files"),
			leaf(Wildcard("path"), "file"),
		),
		leaf(Static("about"), "about"),
	}

	paths := []string{
		"/users", "/users/", "/users/1", "/users/1/", "/users/1/edit",
		"/users/1/edit/", "/users/x", "/users/1/delete", "/files", "/files/a/b",
		"/about", "/about/us", "/", "",
	}

	for _, path := range paths {
		m, remaining, ok := routes.MatchNested(path)
		if !ok {
			continue
		}
		if !isFullyConsumed(remaining) {
			t.Errorf("MatchNested(%q) remaining = %q", path, remaining)
		}
		if got := m.MatchedPath() + remaining; got != path {
			t.Errorf("MatchNested(%q) matched+remaining = %q", path, got)
		}
	}
}

func TestMatchNestedSingleRouteAsChildren(t *testing.T) {
	child := leaf(Param("x"), "x")
	parent := NewNestedRoute[string, view](Static("a"), child, "a", view("A"))

	m, _, ok := parent.MatchNested("/a/1")
	if !ok {
		t.Fatal("expected match")
	}
	if v, _ := m.Params().Get("x"); v != "1" {
		t.Errorf("x = %q, want 1", v)
	}
	if m.Depth() != 2 {
		t.Errorf("Depth() = %d, want 2", m.Depth())
	}
}

func TestNewNestedRouteDefaults(t *testing.T) {
	r := NewNestedRoute[string, view](nil, nil, "d", view("v"))

	m, remaining, ok := r.MatchNested("/")
	if !ok {
		t.Fatal("nil segments and nil children should match a consumed path")
	}
	if remaining != "/" || m.Matched() != "" {
		t.Errorf("got (%q, %q)", m.Matched(), remaining)
	}
	if _, _, ok := r.MatchNested("/x"); ok {
		t.Error("leaf should not match unconsumed path")
	}
	if r.Data() != "d" || r.View() != "v" {
		t.Errorf("Data/View = %q/%q", r.Data(), r.View())
	}
}

func TestEmptyRoutes(t *testing.T) {
	var routes Routes[string, view]

	for _, path := range []string{"", "/"} {
		m, remaining, ok := routes.MatchNested(path)
		if !ok || m != nil || remaining != path {
			t.Errorf("MatchNested(%q) = (%v, %q, %v), want (nil, %q, true)", path, m, remaining, ok, path)
		}
	}
	if _, _, ok := routes.MatchNested("/x"); ok {
		t.Error("empty Routes should not match /x")
	}
	if _, ok := routes.Match(""); ok {
		t.Error("Match on empty Routes has no route to report")
	}

	got := slices.Collect(routes.GenerateRoutes())
	if len(got) != 1 || len(got[0]) != 0 {
		t.Errorf("GenerateRoutes() = %v, want one empty route", got)
	}
}

func TestGenerateRoutesCardinality(t *testing.T) {
	tests := []struct {
		name   string
		routes Routes[string, view]
		want   int
	}{
		{
			name: "two alternatives with one leaf child each",
			routes: Routes[string, view]{
				NewRoute(Static("a"), "a", view("A"), leaf(Unit, "a-index")),
				NewRoute(Static("b"), "b", view("B"), leaf(Unit, "b-index")),
			},
			want: 2,
		},
		{
			name: "nested alternatives multiply along each branch",
			routes: Routes[string, view]{
				NewRoute(Static("a"), "a", view("A"),
					leaf(Static("b"), "b"),
					NewRoute(Static("c"), "c", view("C"),
						leaf(Static("d"), "d"),
						leaf(Static("e"), "e"),
					),
				),
				leaf(Static("f"), "f"),
			},
			want: 4,
		},
		{
			name:   "single leaf",
			routes: Routes[string, view]{leaf(Unit, "home")},
			want:   1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := slices.Collect(tt.routes.GenerateRoutes())
			if len(got) != tt.want {
				t.Errorf("GenerateRoutes() produced %d routes, want %d: %v", len(got), tt.want, got)
			}
		})
	}
}

func TestGenerateRoutesPatterns(t *testing.T) {
	routes := Routes[string, view]{
		NewRoute(Unit, "root", view("Root"),
			leaf(Unit, "home"),
			NewRoute(Static("users"), "users", view("Users"),
				leaf(Unit, "index"),
				NewRoute(TypedParam("id", "int"), "user", view("User"),
					leaf(Unit, "profile"),
					leaf(Static("edit"), "edit"),
				),
			),
			NewRoute(Static("files"), "files", view("Files"),
				leaf(Wildcard("path"), "file"),
			),
		),
	}

	want := []string{
		"/",
		"/users",
		"/users/:id",
		"/users/:id/edit",
		"/files/*path",
	}
	if diff := cmp.Diff(want, Patterns[string, view](routes)); diff != "" {
		t.Errorf("Patterns() mismatch (-want +got):\n%s", diff)
	}

	got := slices.Collect(routes.GenerateRoutes())
	wantSegs := [][]PathSegment{
		{},
		{StaticPath("users")},
		{StaticPath("users"), ParamPath("id")},
		{StaticPath("users"), ParamPath("id"), StaticPath("edit")},
		{StaticPath("files"), SplatPath("path")},
	}
	if diff := cmp.Diff(wantSegs, got, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("GenerateRoutes() mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerateRoutesRestartable(t *testing.T) {
	routes := usersTree()
	seq := routes.GenerateRoutes()

	first := slices.Collect(seq)
	second := slices.Collect(seq)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("second walk differs (-first +second):\n%s", diff)
	}
}

func TestGenerateRoutesEarlyStop(t *testing.T) {
	routes := Routes[string, view]{
		leaf(Static("a"), "a"),
		leaf(Static("b"), "b"),
		leaf(Static("c"), "c"),
	}

	var seen []string
	for segs := range routes.GenerateRoutes() {
		seen = append(seen, JoinPath(segs))
		if len(seen) == 2 {
			break
		}
	}
	if diff := cmp.Diff([]string{"/a", "/b"}, seen); diff != "" {
		t.Errorf("seen mismatch (-want +got):\n%s", diff)
	}
}
