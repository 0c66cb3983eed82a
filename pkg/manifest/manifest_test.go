package manifest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vango-dev/nestroute/internal/errors"
	"github.com/vango-dev/nestroute/pkg/routing"
)

const shopYAML = `routes:
  - path: /
    name: root
    view: RootLayout
    children:
      - path: ""
        name: home
        view: Home
        title: Welcome
      - path: /users
        view: UsersLayout
        children:
          - path: ""
            name: users
            view: UsersIndex
          - path: /:id:int
            name: user
            view: UserProfile
            data:
              auth: required
      - path: /docs/*page
        name: docs
        view: Docs
`

func TestParseYAML(t *testing.T) {
	m, err := Parse([]byte(shopYAML), FormatYAML)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}

	if len(m.Routes) != 1 {
		t.Fatalf("len(Routes) = %d, want 1", len(m.Routes))
	}
	root := m.Routes[0]
	if root.Line() != 2 {
		t.Errorf("root.Line() = %d, want 2", root.Line())
	}
	if len(root.Children) != 3 {
		t.Fatalf("len(root.Children) = %d, want 3", len(root.Children))
	}

	home := root.Children[0]
	if !home.IsIndex() || home.Title != "Welcome" || home.Line() != 6 {
		t.Errorf("home = %+v (line %d)", home, home.Line())
	}

	user, ok := m.Lookup("user")
	if !ok {
		t.Fatal("Lookup(user) not found")
	}
	if user.Data["auth"] != "required" {
		t.Errorf("user.Data = %v", user.Data)
	}
}

func TestParseJSON(t *testing.T) {
	data := `{"routes": [
		{"path": "/blog", "view": "Blog", "children": [
			{"path": "", "name": "blog", "view": "BlogIndex"},
			{"path": "/:slug", "name": "post", "view": "Post"}
		]}
	]}`

	m, err := Parse([]byte(data), FormatJSON)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	routes, err := m.Build()
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}

	want := []string{"/blog", "/blog/:slug"}
	if diff := cmp.Diff(want, routing.Patterns[*Entry, string](routes)); diff != "" {
		t.Errorf("patterns mismatch (-want +got):\n%s", diff)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		format Format
		code   string
	}{
		{"yaml syntax", "routes: [", FormatYAML, "E300"},
		{"yaml unknown field", "routes:\n  - path: /a\n    component: X\n", FormatYAML, "E300"},
		{"json syntax", `{"routes": [`, FormatJSON, "E300"},
		{"json unknown field", `{"routes": [{"path": "/a", "component": "X"}]}`, FormatJSON, "E300"},
		{"unknown format", "", Format("toml"), "E303"},
	}

	for _, tt := range tests {
		_, err := Parse([]byte(tt.data), tt.format)
		if errors.Code(err) != tt.code {
			t.Errorf("%s: code = %q, want %q (err: %v)", tt.name, errors.Code(err), tt.code, err)
		}
	}
}

func TestParseEmpty(t *testing.T) {
	m, err := Parse(nil, FormatYAML)
	if err != nil {
		t.Fatalf("Parse(empty) error: %v", err)
	}
	routes, err := m.Build()
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}
	if len(routes) != 0 {
		t.Errorf("len(routes) = %d, want 0", len(routes))
	}
}

func TestBuild(t *testing.T) {
	m, err := Parse([]byte(shopYAML), FormatYAML)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	routes, err := m.Build()
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}

	wantPatterns := []string{"/", "/users", "/users/:id", "/docs/*page"}
	if diff := cmp.Diff(wantPatterns, routing.Patterns[*Entry, string](routes)); diff != "" {
		t.Errorf("patterns mismatch (-want +got):\n%s", diff)
	}

	tests := []struct {
		path     string
		wantLeaf string
		views    []string
	}{
		{"/", "home", []string{"RootLayout", "Home"}},
		{"/users", "users", []string{"RootLayout", "UsersLayout", "UsersIndex"}},
		{"/users/7", "user", []string{"RootLayout", "UsersLayout", "UserProfile"}},
		{"/docs/guide/intro", "docs", []string{"RootLayout", "Docs"}},
	}
	for _, tt := range tests {
		match, ok := routes.Match(tt.path)
		if !ok {
			t.Errorf("Match(%q) failed", tt.path)
			continue
		}
		if got := match.Leaf().Data().Name; got != tt.wantLeaf {
			t.Errorf("Match(%q) leaf = %q, want %q", tt.path, got, tt.wantLeaf)
		}
		if diff := cmp.Diff(tt.views, match.Views()); diff != "" {
			t.Errorf("Match(%q) views mismatch (-want +got):\n%s", tt.path, diff)
		}
	}

	if _, ok := routes.Match("/users/abc"); ok {
		t.Error("/users/abc should not match an int param")
	}

	wantNames := map[string]string{
		"root":  "/",
		"home":  "/",
		"users": "/users",
		"user":  "/users/:id",
		"docs":  "/docs/*page",
	}
	if diff := cmp.Diff(wantNames, m.Names()); diff != "" {
		t.Errorf("Names() mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		yaml     string
		line     int
		contains string
	}{
		{
			name: "bad pattern",
			yaml: "routes:\n  - path: /a\n    children:\n      - path: /:id:float\n",
			line: 4,
			contains: `"/:id:float"`,
		},
		{
			name:     "wildcard with children",
			yaml:     "routes:\n  - path: /files/*rest\n    children:\n      - path: /x\n",
			line:     2,
			contains: "wildcard",
		},
		{
			name:     "duplicate name",
			yaml:     "routes:\n  - path: /a\n    name: x\n  - path: /b\n    name: x\n",
			line:     4,
			contains: "line 2",
		},
		{
			name:     "null entry",
			yaml:     "routes:\n  - path: /a\n  -\n",
			contains: "entry 2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Parse([]byte(tt.yaml), FormatYAML)
			if err != nil {
				t.Fatalf("Parse error: %v", err)
			}
			err = m.Validate()
			if errors.Code(err) != "E301" {
				t.Fatalf("Validate code = %q, want E301 (err: %v)", errors.Code(err), err)
			}
			re := err.(*errors.RouteError)
			if tt.line > 0 && (re.Location == nil || re.Location.Line != tt.line) {
				t.Errorf("Location = %v, want line %d", re.Location, tt.line)
			}
			if !strings.Contains(err.Error(), tt.contains) {
				t.Errorf("error %q does not mention %q", err.Error(), tt.contains)
			}
		})
	}
}

func TestValidatePatternErrorIsWrapped(t *testing.T) {
	m, _ := Parse([]byte("routes:\n  - path: /a/*x/b\n"), FormatYAML)
	re, ok := m.Validate().(*errors.RouteError)
	if !ok {
		t.Fatal("Validate should return a RouteError")
	}
	if errors.Code(re.Wrapped) != "E202" {
		t.Errorf("wrapped code = %q, want E202", errors.Code(re.Wrapped))
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "routes.yaml")
	if err := os.WriteFile(yamlPath, []byte(shopYAML), 0644); err != nil {
		t.Fatal(err)
	}
	m, err := Load(yamlPath)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if m.File() != yamlPath {
		t.Errorf("File() = %q, want %q", m.File(), yamlPath)
	}

	if _, err := Load(filepath.Join(dir, "missing.yml")); errors.Code(err) != "E302" {
		t.Errorf("Load(missing) code = %q, want E302", errors.Code(err))
	}
	if _, err := Load(filepath.Join(dir, "routes.toml")); errors.Code(err) != "E303" {
		t.Errorf("Load(toml) code = %q, want E303", errors.Code(err))
	}
}

func TestLoadValidateReadsContext(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "routes.yml")
	content := "routes:\n  - path: /a\n    children:\n      - path: \"/:\"\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	m, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	err = m.Validate()
	re, ok := err.(*errors.RouteError)
	if !ok {
		t.Fatalf("Validate error = %v, want a RouteError", err)
	}
	if re.Location == nil || re.Location.File != path || re.Location.Line != 4 {
		t.Fatalf("Location = %v, want %s:4", re.Location, path)
	}
	if len(re.Context) == 0 {
		t.Error("expected context lines from the manifest file")
	}
}

func TestWalk(t *testing.T) {
	m, _ := Parse([]byte(shopYAML), FormatYAML)

	var visited []string
	m.Walk(func(e *Entry, depth int) bool {
		visited = append(visited, strings.Repeat(">", depth)+e.View)
		return e.View != "UsersLayout"
	})

	want := []string{"RootLayout", ">Home", ">UsersLayout", ">Docs"}
	if diff := cmp.Diff(want, visited); diff != "" {
		t.Errorf("Walk order mismatch (-want +got):\n%s", diff)
	}
}

func TestFormatOf(t *testing.T) {
	tests := []struct {
		path string
		want Format
		ok   bool
	}{
		{"routes.yaml", FormatYAML, true},
		{"ROUTES.YML", FormatYAML, true},
		{"routes.json", FormatJSON, true},
		{"routes.toml", "", false},
	}
	for _, tt := range tests {
		got, ok := FormatOf(tt.path)
		if got != tt.want || ok != tt.ok {
			t.Errorf("FormatOf(%q) = (%q, %v), want (%q, %v)", tt.path, got, ok, tt.want, tt.ok)
		}
	}
}
