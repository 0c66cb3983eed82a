package routing

import "strings"

// SegmentKind identifies the variant of a PathSegment.
type SegmentKind uint8

const (
	// SegmentUnit is the empty marker contributed by index routes.
	// It never appears in a generated route.
	SegmentUnit SegmentKind = iota

	// SegmentStatic is literal text.
	SegmentStatic

	// SegmentParam is a named parameter matching one path component.
	SegmentParam

	// SegmentSplat is a named wildcard matching the rest of the path.
	SegmentSplat
)

// String returns the kind name.
func (k SegmentKind) String() string {
	switch k {
	case SegmentStatic:
		return "static"
	case SegmentParam:
		return "param"
	case SegmentSplat:
		return "splat"
	default:
		return "unit"
	}
}

// PathSegment is one fragment of a generated route.
type PathSegment struct {
	Kind SegmentKind

	// Value is the literal text for static segments and the parameter name
	// for params and splats. Empty for unit.
	Value string
}

// StaticPath returns a static path segment.
func StaticPath(text string) PathSegment {
	return PathSegment{Kind: SegmentStatic, Value: text}
}

// ParamPath returns a parameter path segment.
func ParamPath(name string) PathSegment {
	return PathSegment{Kind: SegmentParam, Value: name}
}

// SplatPath returns a wildcard path segment.
func SplatPath(name string) PathSegment {
	return PathSegment{Kind: SegmentSplat, Value: name}
}

// UnitPath returns the unit path segment.
func UnitPath() PathSegment {
	return PathSegment{}
}

// String renders the segment in pattern syntax: "users", ":id", "*path".
func (s PathSegment) String() string {
	switch s.Kind {
	case SegmentStatic:
		return s.Value
	case SegmentParam:
		return ":" + s.Value
	case SegmentSplat:
		return "*" + s.Value
	default:
		return ""
	}
}

// JoinPath renders a generated route as a pattern string.
// Unit and empty static segments are skipped; an empty route is "/".
func JoinPath(segments []PathSegment) string {
	var b strings.Builder
	for _, seg := range segments {
		s := seg.String()
		if s == "" {
			continue
		}
		b.WriteByte('/')
		b.WriteString(s)
	}
	if b.Len() == 0 {
		return "/"
	}
	return b.String()
}

// withoutUnits appends segs to dst, dropping unit segments.
func withoutUnits(dst []PathSegment, segs []PathSegment) []PathSegment {
	for _, seg := range segs {
		if seg.Kind == SegmentUnit {
			continue
		}
		dst = append(dst, seg)
	}
	return dst
}
