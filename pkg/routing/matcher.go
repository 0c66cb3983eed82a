package routing

import "strings"

// PartialPathMatch is the result of testing one segment pattern against the
// front of a path. Matched + Remaining is the path that was tested.
type PartialPathMatch struct {
	Matched   string
	Remaining string
	Params    Params
}

// PossibleRouteMatch is a segment pattern.
type PossibleRouteMatch interface {
	// Test matches a prefix of path. It returns false when the prefix
	// cannot satisfy the pattern.
	Test(path string) (PartialPathMatch, bool)

	// GeneratePath appends the fragments this pattern contributes to
	// every generated route and returns the extended slice.
	GeneratePath(dst []PathSegment) []PathSegment
}

// UnitSegment matches the empty prefix. Index routes use it to match
// whatever their parent left over.
type UnitSegment struct{}

// Unit is the UnitSegment value.
var Unit = UnitSegment{}

// Test implements PossibleRouteMatch.
func (UnitSegment) Test(path string) (PartialPathMatch, bool) {
	return PartialPathMatch{Remaining: path}, true
}

// GeneratePath implements PossibleRouteMatch.
func (UnitSegment) GeneratePath(dst []PathSegment) []PathSegment {
	return append(dst, UnitPath())
}

// StaticSegment matches literal text that ends on a component boundary.
type StaticSegment struct {
	text string
}

// Static returns a StaticSegment for text. Leading and trailing slashes are
// ignored, so "users", "/users" and "/users/" are the same segment. Text may
// contain inner slashes ("api/v1"). Empty text matches the empty prefix.
func Static(text string) StaticSegment {
	return StaticSegment{text: strings.Trim(text, "/")}
}

// Text returns the literal text.
func (s StaticSegment) Text() string {
	return s.text
}

// Test implements PossibleRouteMatch.
func (s StaticSegment) Test(path string) (PartialPathMatch, bool) {
	if s.text == "" {
		return PartialPathMatch{Remaining: path}, true
	}

	start := leadingSlash(path)
	if !strings.HasPrefix(path[start:], s.text) {
		return PartialPathMatch{}, false
	}

	// "/users" must not match "/usersettings".
	end := start + len(s.text)
	if end < len(path) && path[end] != '/' {
		return PartialPathMatch{}, false
	}

	return PartialPathMatch{Matched: path[:end], Remaining: path[end:]}, true
}

// GeneratePath implements PossibleRouteMatch.
func (s StaticSegment) GeneratePath(dst []PathSegment) []PathSegment {
	if s.text == "" {
		return append(dst, UnitPath())
	}
	return append(dst, StaticPath(s.text))
}

// ParamSegment captures one non-empty path component.
type ParamSegment struct {
	name string
	typ  string
}

// Param returns a ParamSegment capturing any value.
func Param(name string) ParamSegment {
	return ParamSegment{name: name}
}

// TypedParam returns a ParamSegment whose value must validate as typ
// ("int", "uint", "uuid", "string"). A value that does not validate makes
// the segment fail, so the next sibling gets a chance.
func TypedParam(name, typ string) ParamSegment {
	return ParamSegment{name: name, typ: typ}
}

// Name returns the parameter name.
func (s ParamSegment) Name() string {
	return s.name
}

// Type returns the type constraint, or "" for none.
func (s ParamSegment) Type() string {
	return s.typ
}

// Test implements PossibleRouteMatch.
func (s ParamSegment) Test(path string) (PartialPathMatch, bool) {
	start := leadingSlash(path)
	end := strings.IndexByte(path[start:], '/')
	if end < 0 {
		end = len(path)
	} else {
		end += start
	}

	value := path[start:end]
	if value == "" {
		return PartialPathMatch{}, false
	}
	if s.typ != "" && ValidateParam(value, s.typ) != nil {
		return PartialPathMatch{}, false
	}

	return PartialPathMatch{
		Matched:   path[:end],
		Remaining: path[end:],
		Params:    singleParam(s.name, value),
	}, true
}

// GeneratePath implements PossibleRouteMatch.
func (s ParamSegment) GeneratePath(dst []PathSegment) []PathSegment {
	return append(dst, ParamPath(s.name))
}

// WildcardSegment captures the rest of the path, which may be empty.
type WildcardSegment struct {
	name string
}

// Wildcard returns a WildcardSegment.
func Wildcard(name string) WildcardSegment {
	return WildcardSegment{name: name}
}

// Name returns the parameter name.
func (s WildcardSegment) Name() string {
	return s.name
}

// Test implements PossibleRouteMatch. It always succeeds.
func (s WildcardSegment) Test(path string) (PartialPathMatch, bool) {
	value := path[leadingSlash(path):]
	return PartialPathMatch{
		Matched: path,
		Params:  singleParam(s.name, value),
	}, true
}

// GeneratePath implements PossibleRouteMatch.
func (s WildcardSegment) GeneratePath(dst []PathSegment) []PathSegment {
	return append(dst, SplatPath(s.name))
}

// Sequence matches its segments one after another.
type Sequence []PossibleRouteMatch

// Segments returns a Sequence of segs.
func Segments(segs ...PossibleRouteMatch) Sequence {
	return Sequence(segs)
}

// Test implements PossibleRouteMatch.
func (s Sequence) Test(path string) (PartialPathMatch, bool) {
	var params Params
	rest := path
	for _, seg := range s {
		m, ok := seg.Test(rest)
		if !ok {
			return PartialPathMatch{}, false
		}
		params = params.Chain(m.Params)
		rest = m.Remaining
	}
	return PartialPathMatch{
		Matched:   path[:len(path)-len(rest)],
		Remaining: rest,
		Params:    params,
	}, true
}

// GeneratePath implements PossibleRouteMatch.
func (s Sequence) GeneratePath(dst []PathSegment) []PathSegment {
	for _, seg := range s {
		dst = seg.GeneratePath(dst)
	}
	return dst
}

// leadingSlash returns 1 if path starts with "/", else 0.
func leadingSlash(path string) int {
	if strings.HasPrefix(path, "/") {
		return 1
	}
	return 0
}

// isFullyConsumed reports whether nothing but a trailing separator is left.
func isFullyConsumed(path string) bool {
	return path == "" || path == "/"
}
