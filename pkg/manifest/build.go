package manifest

import (
	"strconv"

	"github.com/vango-dev/nestroute/internal/errors"
	"github.com/vango-dev/nestroute/pkg/routing"
)

// Validate checks every entry: patterns must parse, names must be unique
// and wildcard entries cannot have children. It returns the first problem
// found, in document order.
func (m *Manifest) Validate() error {
	_, err := m.build(false)
	return err
}

// Build validates the manifest and converts it to a route tree. Entries
// keep their declaration order, so earlier siblings win ties.
func (m *Manifest) Build() (routing.Routes[*Entry, string], error) {
	return m.build(true)
}

// Names maps every named entry to its full pattern. Patterns are filled in
// by Build; before that they are empty.
func (m *Manifest) Names() map[string]string {
	names := make(map[string]string)
	m.Walk(func(e *Entry, _ int) bool {
		if e.Name != "" {
			names[e.Name] = e.pattern
		}
		return true
	})
	return names
}

type builder struct {
	m      *Manifest
	names  map[string]*Entry
	commit bool
}

func (m *Manifest) build(commit bool) (routing.Routes[*Entry, string], error) {
	b := &builder{m: m, names: make(map[string]*Entry), commit: commit}
	return b.entries(m.Routes, nil)
}

func (b *builder) entries(entries []*Entry, prefix []routing.PathSegment) (routing.Routes[*Entry, string], error) {
	routes := make(routing.Routes[*Entry, string], 0, len(entries))
	for i, e := range entries {
		if e == nil {
			return nil, errors.New("E301").
				WithDetail("entry " + strconv.Itoa(i+1) + " is empty")
		}
		r, err := b.entry(e, prefix)
		if err != nil {
			return nil, err
		}
		routes = append(routes, r)
	}
	return routes, nil
}

func (b *builder) entry(e *Entry, prefix []routing.PathSegment) (*routing.NestedRoute[*Entry, string], error) {
	var seg routing.PossibleRouteMatch = routing.Unit
	if !e.IsIndex() {
		seq, err := routing.ParsePath(e.Path)
		if err != nil {
			return nil, b.fail(e, "route "+strconv.Quote(e.Path)+" has an invalid path").Wrap(err)
		}
		seg = seq
	}

	own := seg.GeneratePath(nil)
	for _, s := range own {
		if s.Kind == routing.SegmentSplat && len(e.Children) > 0 {
			return nil, b.fail(e, "route "+strconv.Quote(e.Path)+" ends in a wildcard and cannot have children").
				WithSuggestion("Move the children to a sibling route without the wildcard")
		}
	}

	if e.Name != "" {
		if prev, dup := b.names[e.Name]; dup {
			detail := "name " + strconv.Quote(e.Name) + " is already used"
			if prev.line > 0 {
				detail += " on line " + strconv.Itoa(prev.line)
			}
			return nil, b.fail(e, detail)
		}
		b.names[e.Name] = e
	}

	full := append(append([]routing.PathSegment(nil), prefix...), own...)
	children, err := b.entries(e.Children, full)
	if err != nil {
		return nil, err
	}

	if b.commit {
		e.pattern = routing.JoinPath(full)
	}
	return routing.NewRoute(seg, e, e.View, children...), nil
}

func (b *builder) fail(e *Entry, detail string) *errors.RouteError {
	err := errors.New("E301").WithDetail(detail)
	if e.line > 0 {
		err.WithLocation(b.m.file, e.line, 0)
	}
	return err
}
