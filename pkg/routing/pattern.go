package routing

import (
	"strings"

	"github.com/vango-dev/nestroute/internal/errors"
)

// ParsePath parses a route pattern into a Sequence.
//
//	/users          static segment
//	/users/:id      parameter
//	/users/:id:int  typed parameter (int, uint, uuid, string and sized ints)
//	/files/*path    wildcard, only as the last segment
//
// "" and "/" parse to an empty Sequence, which matches the empty prefix.
// A single trailing slash is ignored.
func ParsePath(pattern string) (Sequence, error) {
	body := strings.TrimPrefix(pattern, "/")
	body = strings.TrimSuffix(body, "/")
	if body == "" {
		return Sequence{}, nil
	}

	offset := len(pattern) - len(strings.TrimPrefix(pattern, "/"))
	parts := strings.Split(body, "/")
	seq := make(Sequence, 0, len(parts))

	for i, part := range parts {
		seg, err := parseSegment(pattern, part, offset, i == len(parts)-1)
		if err != nil {
			return nil, err
		}
		seq = append(seq, seg)
		offset += len(part) + 1
	}

	return seq, nil
}

// MustParsePath is like ParsePath but panics on error. It is meant for
// route trees declared as package-level variables.
func MustParsePath(pattern string) Sequence {
	seq, err := ParsePath(pattern)
	if err != nil {
		panic(err)
	}
	return seq
}

func parseSegment(pattern, part string, offset int, last bool) (PossibleRouteMatch, error) {
	switch {
	case part == "":
		return nil, errors.New("E204").
			WithPattern(pattern, offset).
			WithDetail("pattern " + pattern + " has an empty segment")

	case strings.HasPrefix(part, "*"):
		name := part[1:]
		if name == "" {
			return nil, errors.New("E201").
				WithPattern(pattern, offset).
				WithDetail("wildcard in " + pattern + " has no name")
		}
		if !last {
			return nil, errors.New("E202").
				WithPattern(pattern, offset).
				WithDetail("pattern " + pattern + " continues after *" + name)
		}
		return Wildcard(name), nil

	case strings.HasPrefix(part, ":"):
		name, typ, _ := strings.Cut(part[1:], ":")
		if name == "" {
			return nil, errors.New("E201").
				WithPattern(pattern, offset).
				WithDetail("parameter in " + pattern + " has no name")
		}
		if !IsParamType(typ) {
			return nil, errors.New("E203").
				WithPattern(pattern, offset).
				WithDetail("parameter :" + name + " has type " + typ)
		}
		return TypedParam(name, typ), nil

	default:
		return Static(part), nil
	}
}
