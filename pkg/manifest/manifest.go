package manifest

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vango-dev/nestroute/internal/errors"
)

// Format is a manifest encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatOf returns the format implied by a file extension.
func FormatOf(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, true
	case ".json":
		return FormatJSON, true
	}
	return "", false
}

// Manifest is a parsed route manifest.
type Manifest struct {
	Routes []*Entry `yaml:"routes" json:"routes"`

	file string
}

// Entry is one route in the manifest.
type Entry struct {
	// Path is the entry's own pattern, relative to its parent. Empty marks
	// an index route.
	Path string `yaml:"path" json:"path"`

	// Name identifies the route for reverse routing. Names are unique
	// across the manifest.
	Name string `yaml:"name,omitempty" json:"name,omitempty"`

	// View names the view rendered for this level.
	View string `yaml:"view,omitempty" json:"view,omitempty"`

	// Title is a human-readable title.
	Title string `yaml:"title,omitempty" json:"title,omitempty"`

	// Data is arbitrary per-route metadata.
	Data map[string]any `yaml:"data,omitempty" json:"data,omitempty"`

	Children []*Entry `yaml:"children,omitempty" json:"children,omitempty"`

	// line is the entry's position in a YAML manifest, 0 if unknown.
	line    int
	pattern string
}

// Line returns the entry's line in its YAML source, or 0.
func (e *Entry) Line() int {
	return e.line
}

// Pattern returns the entry's full pattern, including every ancestor's
// path. It is set by Build.
func (e *Entry) Pattern() string {
	return e.pattern
}

// IsIndex reports whether the entry's own path is empty, so that it
// matches exactly where its parent ends.
func (e *Entry) IsIndex() bool {
	return strings.Trim(e.Path, "/") == ""
}

// Load reads and parses the manifest at path. The format follows the file
// extension.
func Load(path string) (*Manifest, error) {
	format, ok := FormatOf(path)
	if !ok {
		return nil, errors.New("E303").
			WithDetail(filepath.Base(path) + " has extension " + strings.TrimPrefix(filepath.Ext(path), "."))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E302").WithDetail(path)
		}
		return nil, errors.New("E300").Wrap(err)
	}

	m, err := Parse(data, format)
	if err != nil {
		return nil, err
	}
	m.file = path
	return m, nil
}

// Parse parses manifest data. Unknown fields are rejected.
func Parse(data []byte, format Format) (*Manifest, error) {
	m := &Manifest{}
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(m); err != nil && err != io.EOF {
			return nil, errors.New("E300").WithDetail(err.Error()).Wrap(err)
		}
		var doc yaml.Node
		if err := yaml.Unmarshal(data, &doc); err == nil && len(doc.Content) > 0 {
			recordLines(m.Routes, mappingValue(doc.Content[0], "routes"))
		}

	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(m); err != nil {
			return nil, errors.New("E300").WithDetail(err.Error()).Wrap(err)
		}

	default:
		return nil, errors.New("E303").WithDetail("format " + string(format))
	}
	return m, nil
}

// File returns the path the manifest was loaded from, or "".
func (m *Manifest) File() string {
	return m.file
}

// Walk calls fn for every entry, parents before children, with the entry's
// depth (0 for top-level entries). Returning false skips the entry's
// children.
func (m *Manifest) Walk(fn func(e *Entry, depth int) bool) {
	var walk func(entries []*Entry, depth int)
	walk = func(entries []*Entry, depth int) {
		for _, e := range entries {
			if e != nil && fn(e, depth) {
				walk(e.Children, depth+1)
			}
		}
	}
	walk(m.Routes, 0)
}

// Lookup returns the entry with the given name.
func (m *Manifest) Lookup(name string) (*Entry, bool) {
	var found *Entry
	m.Walk(func(e *Entry, _ int) bool {
		if found == nil && e.Name == name {
			found = e
		}
		return found == nil
	})
	return found, found != nil
}

// recordLines copies source lines from a YAML sequence node onto the
// entries decoded from it.
func recordLines(entries []*Entry, seq *yaml.Node) {
	if seq == nil || seq.Kind != yaml.SequenceNode {
		return
	}
	for i, item := range seq.Content {
		if i >= len(entries) || entries[i] == nil {
			continue
		}
		entries[i].line = item.Line
		recordLines(entries[i].Children, mappingValue(item, "children"))
	}
}

func mappingValue(node *yaml.Node, key string) *yaml.Node {
	if node == nil || node.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return node.Content[i+1]
		}
	}
	return nil
}
