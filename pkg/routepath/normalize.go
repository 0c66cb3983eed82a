package routepath

import (
	"errors"
	"net/url"
	"strings"
)

// Normalized is a path ready for matching plus the parts split off it.
type Normalized struct {
	// Path is the normalized path, always starting with "/".
	Path string

	// Query is the query string without the leading "?".
	Query string

	// Fragment is the fragment without the leading "#".
	Fragment string

	// Changed reports whether Path differs from the input path.
	Changed bool
}

// Normalization errors.
var (
	ErrBackslashInPath       = errors.New("path contains backslash")
	ErrNullByteInPath        = errors.New("path contains null byte")
	ErrInvalidPercentEscape  = errors.New("invalid percent escape sequence")
	ErrPathEscapesRoot       = errors.New("path escapes root via ..")
	ErrEncodedSlashInSegment = errors.New("encoded slash (%2F) in parameter value")
)

// Normalize turns a raw path into the form route matching expects:
//   - a leading "/" is added if missing
//   - repeated slashes collapse (/blog//post → /blog/post)
//   - "." segments are dropped and ".." segments resolved
//   - a trailing slash is removed, except for the root "/"
//
// Anything after "?" is returned as Query and anything after "#" as
// Fragment; neither is normalized.
func Normalize(input string) (Normalized, error) {
	rest, fragment, _ := strings.Cut(input, "#")
	path, query, _ := strings.Cut(rest, "?")

	if strings.Contains(path, `\`) {
		return Normalized{}, ErrBackslashInPath
	}
	if strings.Contains(path, "\x00") || strings.Contains(strings.ToUpper(path), "%00") {
		return Normalized{}, ErrNullByteInPath
	}
	if strings.Contains(path, "%") {
		if err := validatePercentEscapes(path); err != nil {
			return Normalized{}, err
		}
	}

	segments := make([]string, 0, strings.Count(path, "/")+1)
	for _, seg := range strings.Split(path, "/") {
		switch seg {
		case "", ".":
		case "..":
			if len(segments) == 0 {
				return Normalized{}, ErrPathEscapesRoot
			}
			segments = segments[:len(segments)-1]
		default:
			segments = append(segments, seg)
		}
	}

	normalized := "/" + strings.Join(segments, "/")
	return Normalized{
		Path:     normalized,
		Query:    query,
		Fragment: fragment,
		Changed:  normalized != path,
	}, nil
}

// SplitQuery splits input into path and query. The query is returned without
// the leading "?"; a fragment stays attached to it.
func SplitQuery(input string) (path, query string) {
	path, query, _ = strings.Cut(input, "?")
	return path, query
}

// DecodeParam percent-decodes a captured parameter value. Wildcard values may
// contain "/" after decoding; for single-segment params an encoded slash is
// rejected because it would let one value span two path components.
func DecodeParam(value string, wildcard bool) (string, error) {
	decoded, err := url.PathUnescape(value)
	if err != nil {
		return "", ErrInvalidPercentEscape
	}
	if !wildcard && strings.Contains(decoded, "/") {
		return "", ErrEncodedSlashInSegment
	}
	return decoded, nil
}

// validatePercentEscapes checks that every "%" starts a %XX hex escape.
func validatePercentEscapes(path string) error {
	for i := 0; i < len(path); i++ {
		if path[i] != '%' {
			continue
		}
		if i+2 >= len(path) || !isHexDigit(path[i+1]) || !isHexDigit(path[i+2]) {
			return ErrInvalidPercentEscape
		}
		i += 2
	}
	return nil
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
