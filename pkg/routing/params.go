package routing

import "iter"

// KeyValue is a captured route parameter.
type KeyValue struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Params is a restartable sequence of captured (name, value) pairs.
// A nil Params is empty. Names are not deduplicated: when a child captures a
// name its ancestor already captured, both pairs are yielded, outer first.
type Params iter.Seq2[string, string]

// ParamsOf returns a Params yielding pairs in order.
func ParamsOf(pairs ...KeyValue) Params {
	if len(pairs) == 0 {
		return nil
	}
	return func(yield func(string, string) bool) {
		for _, p := range pairs {
			if !yield(p.Key, p.Value) {
				return
			}
		}
	}
}

// singleParam returns a Params yielding exactly one pair.
func singleParam(key, value string) Params {
	return func(yield func(string, string) bool) {
		yield(key, value)
	}
}

// Chain returns a Params yielding p's pairs followed by next's.
// Nothing is copied; both sequences are walked on each iteration.
func (p Params) Chain(next Params) Params {
	if p == nil {
		return next
	}
	if next == nil {
		return p
	}
	return func(yield func(string, string) bool) {
		for k, v := range p {
			if !yield(k, v) {
				return
			}
		}
		for k, v := range next {
			if !yield(k, v) {
				return
			}
		}
	}
}

// All returns p as an iter.Seq2. It is safe to call on a nil Params.
func (p Params) All() iter.Seq2[string, string] {
	if p == nil {
		return func(func(string, string) bool) {}
	}
	return iter.Seq2[string, string](p)
}

// Collect materializes the pairs in order.
func (p Params) Collect() []KeyValue {
	var out []KeyValue
	for k, v := range p.All() {
		out = append(out, KeyValue{Key: k, Value: v})
	}
	return out
}

// Len returns the number of pairs, duplicates included.
func (p Params) Len() int {
	n := 0
	for range p.All() {
		n++
	}
	return n
}

// Get returns the value of the last pair named key, which is the innermost
// capture when names repeat across levels.
func (p Params) Get(key string) (string, bool) {
	var (
		value string
		found bool
	)
	for k, v := range p.All() {
		if k == key {
			value, found = v, true
		}
	}
	return value, found
}

// Map materializes the pairs into a map; inner captures override outer ones.
func (p Params) Map() map[string]string {
	m := make(map[string]string)
	for k, v := range p.All() {
		m[k] = v
	}
	return m
}
