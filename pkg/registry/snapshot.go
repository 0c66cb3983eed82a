package registry

import (
	"encoding/json"
	"io"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/vango-dev/nestroute/internal/errors"
	"github.com/vango-dev/nestroute/pkg/routing"
)

// Snapshot is the exported route table.
type Snapshot struct {
	// ID is unique per snapshot.
	ID string `json:"id"`

	// Name is the project name.
	Name string `json:"name,omitempty"`

	// GeneratedAt is when the snapshot was taken, in UTC.
	GeneratedAt time.Time `json:"generatedAt"`

	// Routes lists every route in generation order.
	Routes []Route `json:"routes"`
}

// Route is one generated route.
type Route struct {
	Pattern  string    `json:"pattern"`
	Segments []Segment `json:"segments"`

	// Params lists parameter names in path order, excluding the wildcard.
	Params []string `json:"params,omitempty"`

	// Wildcard is the name of the trailing wildcard, if any.
	Wildcard string `json:"wildcard,omitempty"`
}

// Segment is one path segment of a route.
type Segment struct {
	Kind  string `json:"kind"`
	Value string `json:"value"`
}

// FromRoutes takes a snapshot of every route routes generates.
func FromRoutes[D, V any](name string, routes routing.MatchNestedRoutes[D, V]) *Snapshot {
	snap := &Snapshot{
		ID:          uuid.NewString(),
		Name:        name,
		GeneratedAt: time.Now().UTC(),
		Routes:      []Route{},
	}

	for segs := range routes.GenerateRoutes() {
		r := Route{
			Pattern:  routing.JoinPath(segs),
			Segments: make([]Segment, 0, len(segs)),
		}
		for _, seg := range segs {
			switch seg.Kind {
			case routing.SegmentStatic:
				if seg.Value == "" {
					continue
				}
			case routing.SegmentParam:
				r.Params = append(r.Params, seg.Value)
			case routing.SegmentSplat:
				r.Wildcard = seg.Value
			}
			r.Segments = append(r.Segments, Segment{Kind: seg.Kind.String(), Value: seg.Value})
		}
		snap.Routes = append(snap.Routes, r)
	}
	return snap
}

// Patterns returns the pattern of every route in the snapshot.
func (s *Snapshot) Patterns() []string {
	out := make([]string, len(s.Routes))
	for i, r := range s.Routes {
		out[i] = r.Pattern
	}
	return out
}

// Marshal encodes the snapshot as indented JSON with a trailing newline.
func (s *Snapshot) Marshal() ([]byte, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// Read decodes a snapshot written by Marshal.
func Read(r io.Reader) (*Snapshot, error) {
	var snap Snapshot
	if err := json.NewDecoder(r).Decode(&snap); err != nil {
		return nil, errors.New("E400").WithDetail("decoding snapshot").Wrap(err)
	}
	return &snap, nil
}

// ReadFile decodes the snapshot stored at path.
func ReadFile(path string) (*Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.New("E400").Wrap(err)
	}
	defer f.Close()
	return Read(f)
}
