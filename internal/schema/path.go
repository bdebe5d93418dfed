package schema

import "strings"

// Step is one hop of a Path. Exactly one of the step kinds is active:
// a map key, a slice index, or an ordered list of alternate qualifier keys.
type Step struct {
	key   string
	index int
	alts  []string
	kind  stepKind
}

type stepKind int

const (
	stepKey stepKind = iota
	stepIndex
	stepFirstOf
)

// Key addresses a named entry of a group.
func Key(name string) Step {
	return Step{kind: stepKey, key: name}
}

// At addresses an element of a slice (loop instance or segment element).
func At(i int) Step {
	return Step{kind: stepIndex, index: i}
}

// FirstOf selects, from a list of segments, the first one whose qualifier
// (first element) equals one of the given keys, trying keys in order. It
// expresses vendor-specific tag variants at one schema position.
func FirstOf(keys ...string) Step {
	return Step{kind: stepFirstOf, alts: keys}
}

// Path is an ordered list of steps into a parsed segment tree.
type Path []Step

// P builds a Path from steps.
func P(steps ...Step) Path {
	return Path(steps)
}

// ValueAtPath walks the parsed tree along the path. Any missing intermediate
// yields nil; traversal never panics on shape mismatches, pushing absence
// handling to the caller.
func ValueAtPath(tree any, path Path) any {
	current := tree

	for _, step := range path {
		if current == nil {
			return nil
		}

		switch step.kind {
		case stepKey:
			m, ok := current.(map[string]any)
			if !ok {
				return nil
			}
			current = m[step.key]

		case stepIndex:
			current = elementAt(current, step.index)

		case stepFirstOf:
			current = firstByQualifier(current, step.alts)
		}
	}

	return current
}

// StringAtPath is ValueAtPath with the result coerced to a trimmed string.
// Non-string results (including nil) coerce to "".
func StringAtPath(tree any, path Path) string {
	v := ValueAtPath(tree, path)

	s, ok := v.(string)
	if !ok {
		return ""
	}

	return strings.TrimSpace(s)
}

func elementAt(v any, i int) any {
	switch list := v.(type) {
	case []any:
		if i < 0 || i >= len(list) {
			return nil
		}
		return list[i]
	case []string:
		if i < 0 || i >= len(list) {
			return nil
		}
		return list[i]
	default:
		return nil
	}
}

// firstByQualifier scans candidate segments for one whose first element is
// one of keys, honoring key order: all segments are checked for the first
// key before the second key is considered.
func firstByQualifier(v any, keys []string) any {
	segments := segmentList(v)
	if segments == nil {
		return nil
	}

	for _, key := range keys {
		for _, seg := range segments {
			if len(seg) > 0 && seg[0] == key {
				return seg
			}
		}
	}

	return nil
}

func segmentList(v any) [][]string {
	switch list := v.(type) {
	case []string:
		return [][]string{list}
	case []any:
		var out [][]string
		for _, item := range list {
			seg, ok := item.([]string)
			if !ok {
				return nil
			}
			out = append(out, seg)
		}
		return out
	default:
		return nil
	}
}

// FindTag reports whether the given segment tag appears anywhere in the
// parsed tree with a non-empty value. It is the presence check behind
// required-segment validation.
func FindTag(tree any, tag string) bool {
	switch node := tree.(type) {
	case map[string]any:
		if v, ok := node[tag]; ok && !isEmptyValue(v) {
			return true
		}
		for _, v := range node {
			if FindTag(v, tag) {
				return true
			}
		}
	case []any:
		for _, v := range node {
			if FindTag(v, tag) {
				return true
			}
		}
	}

	return false
}

func isEmptyValue(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case []any:
		return len(val) == 0
	case []string:
		return len(val) == 0
	case map[string]any:
		return len(val) == 0
	case string:
		return val == ""
	default:
		return false
	}
}
