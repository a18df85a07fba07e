package i18n

import (
	"fmt"
	"maps"
	"slices"
)

// ParityIssue describes a key path whose shape differs between two languages.
// A side where the key does not exist reports KindMissing.
type ParityIssue struct {
	Key   string
	Left  Kind
	Right Kind
}

func (p ParityIssue) String() string {
	return fmt.Sprintf("%s: %s vs %s", p.Key, p.Left, p.Right)
}

// Parity compares the leaf shapes of two languages and returns every divergence
// sorted by key. Record sequences are compared as a whole, not item by item,
// since the number of entries may legitimately differ.
func (t *Translator) Parity(a, b Language) []ParityIssue {
	left := flatten(t.doc[a])
	right := flatten(t.doc[b])

	keys := make(map[string]struct{}, len(left)+len(right))
	for k := range left {
		keys[k] = struct{}{}
	}
	for k := range right {
		keys[k] = struct{}{}
	}

	var issues []ParityIssue
	for _, k := range slices.Sorted(maps.Keys(keys)) {
		l, r := left[k], right[k]
		if l != r {
			issues = append(issues, ParityIssue{Key: k, Left: l, Right: r})
		}
	}
	return issues
}

func flatten(root map[string]any) map[string]Kind {
	out := make(map[string]Kind)
	var walk func(prefix string, m map[string]any)
	walk = func(prefix string, m map[string]any) {
		for k, v := range m {
			path := k
			if prefix != "" {
				path = prefix + "." + k
			}
			if sub, ok := asMap(v); ok {
				walk(path, sub)
				continue
			}
			// null leaves count as absent
			if kind := kindOf(v); kind != KindMissing {
				out[path] = kind
			}
		}
	}
	walk("", root)
	return out
}
