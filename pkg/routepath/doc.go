// Package routepath prepares raw request paths for route matching.
//
// Route matching works on separator-normalized paths with the query string
// and fragment removed. Normalize produces that form and rejects paths that
// could smuggle segments past the matcher (backslashes, NUL bytes, malformed
// percent escapes, ".." above the root).
package routepath
