package configuration

import (
	"maps"
	"slices"
)

// Tree is an untyped nested configuration mapping as produced by a YAML
// document: leaves are strings, numbers, booleans or nil, branches are
// nested Trees or sequences.
type Tree map[string]any

// Clone returns a deep copy of t. Nested maps of any supported shape are
// copied into Trees so that later merges never share storage with the input.
func (t Tree) Clone() Tree {
	if t == nil {
		return Tree{}
	}

	out := make(Tree, len(t))
	for k, v := range t {
		out[k] = cloneValue(v)
	}

	return out
}

// Get walks a dotted path ("core.port") and reports the value found there.
func (t Tree) Get(path ...string) (any, bool) {
	var cur any = t
	for _, key := range path {
		m, ok := asTree(cur)
		if !ok {
			return nil, false
		}
		if cur, ok = m[key]; !ok {
			return nil, false
		}
	}

	return cur, true
}

// WithoutNulls returns a deep copy of t without the keys whose value is nil,
// at every nesting level.
func (t Tree) WithoutNulls() Tree {
	out := make(Tree, len(t))
	for k, v := range t {
		if v == nil {
			continue
		}
		out[k] = pruneNulls(v)
	}

	return out
}

func pruneNulls(v any) any {
	if m, ok := asTree(v); ok {
		return m.WithoutNulls()
	}

	if s, ok := v.([]any); ok {
		out := make([]any, len(s))
		for i, item := range s {
			out[i] = pruneNulls(item)
		}
		return out
	}

	return v
}

// Keys returns the sorted top-level keys of t.
func (t Tree) Keys() []string {
	return slices.Sorted(maps.Keys(t))
}

func cloneValue(v any) any {
	if m, ok := asTree(v); ok {
		return m.Clone()
	}

	if s, ok := v.([]any); ok {
		out := make([]any, len(s))
		for i, item := range s {
			out[i] = cloneValue(item)
		}
		return out
	}

	return v
}

// asTree normalises the mapping shapes a decoder can hand back.
func asTree(v any) (Tree, bool) {
	switch m := v.(type) {
	case Tree:
		return m, true
	case map[string]any:
		return Tree(m), true
	case map[any]any:
		out := make(Tree, len(m))
		for k, val := range m {
			key, ok := k.(string)
			if !ok {
				return nil, false
			}
			out[key] = val
		}
		return out, true
	default:
		return nil, false
	}
}
