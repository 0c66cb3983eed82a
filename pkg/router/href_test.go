package router

import (
	"context"
	"errors"
	"testing"
)

func TestHref(t *testing.T) {
	r := newTestRouter(t)

	tests := []struct {
		pattern string
		params  map[string]string
		want    string
		wantErr error
	}{
		{pattern: "/", want: "/"},
		{pattern: "/users", want: "/users"},
		{pattern: "/users/:id", params: map[string]string{"id": "42"}, want: "/users/42"},
		{pattern: "/users/:id/posts", params: map[string]string{"id": "7"}, want: "/users/7/posts"},
		{pattern: "/users/:id", params: map[string]string{"id": "a b/c"}, want: "/users/a%20b%2Fc"},
		{pattern: "/files/*path", params: map[string]string{"path": "docs/a b.txt"}, want: "/files/docs/a%20b.txt"},
		{pattern: "/files/*path", params: map[string]string{"path": ""}, want: "/files"},
		{pattern: "/users/:id", wantErr: ErrMissingParam},
		{pattern: "/users/:id", params: map[string]string{"id": ""}, wantErr: ErrMissingParam},
		{pattern: "/files/*path", wantErr: ErrMissingParam},
		{pattern: "/nope", wantErr: ErrUnknownPattern},
	}

	for _, tt := range tests {
		got, err := r.Href(tt.pattern, tt.params)
		if tt.wantErr != nil {
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Href(%q, %v) error = %v, want %v", tt.pattern, tt.params, err, tt.wantErr)
			}
			continue
		}
		if err != nil {
			t.Errorf("Href(%q, %v) unexpected error: %v", tt.pattern, tt.params, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Href(%q, %v) = %q, want %q", tt.pattern, tt.params, got, tt.want)
		}
	}
}

func TestHrefRoundTrip(t *testing.T) {
	r := newTestRouter(t)
	ctx := context.Background()

	params := map[string]string{"id": "99", "path": "a/b c/d"}
	for _, pattern := range r.Routes() {
		href, err := r.Href(pattern, params)
		if err != nil {
			t.Fatalf("Href(%q) error: %v", pattern, err)
		}
		res, err := r.Match(ctx, href)
		if err != nil {
			t.Fatalf("Match(Href(%q) = %q) error: %v", pattern, href, err)
		}
		if res.Pattern != pattern {
			t.Errorf("Match(%q).Pattern = %q, want %q", href, res.Pattern, pattern)
		}
	}
}
