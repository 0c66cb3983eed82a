package router

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/vango-dev/nestroute/pkg/routing"
)

var (
	// ErrUnknownPattern is returned by Href for a pattern the router does
	// not generate.
	ErrUnknownPattern = errors.New("unknown route pattern")

	// ErrMissingParam is returned by Href when a parameter has no value.
	ErrMissingParam = errors.New("missing route parameter")
)

// Href builds a concrete path from one of the router's patterns (as listed
// by Routes) and parameter values. Values are path-escaped; wildcard values
// keep their "/" separators.
//
//	r.Href("/users/:id/posts", map[string]string{"id": "42"}) // "/users/42/posts"
func (r *Router[D, V]) Href(pattern string, params map[string]string) (string, error) {
	segs, ok := r.byString[pattern]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownPattern, pattern)
	}

	var b strings.Builder
	for _, seg := range segs {
		switch seg.Kind {
		case routing.SegmentStatic:
			if seg.Value == "" {
				continue
			}
			b.WriteByte('/')
			b.WriteString(seg.Value)

		case routing.SegmentParam:
			value, ok := params[seg.Value]
			if !ok || value == "" {
				return "", fmt.Errorf("%w: %s", ErrMissingParam, seg.Value)
			}
			b.WriteByte('/')
			b.WriteString(url.PathEscape(value))

		case routing.SegmentSplat:
			value, ok := params[seg.Value]
			if !ok {
				return "", fmt.Errorf("%w: %s", ErrMissingParam, seg.Value)
			}
			value = strings.Trim(value, "/")
			if value == "" {
				continue
			}
			b.WriteByte('/')
			for i, part := range strings.Split(value, "/") {
				if i > 0 {
					b.WriteByte('/')
				}
				b.WriteString(url.PathEscape(part))
			}
		}
	}

	if b.Len() == 0 {
		return "/", nil
	}
	return b.String(), nil
}
