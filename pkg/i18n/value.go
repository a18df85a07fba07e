package i18n

import (
	"fmt"
	"slices"
)

// Kind is the content shape found at a key path.
type Kind uint8

const (
	KindMissing Kind = iota
	KindText
	KindList
	KindRecords
	KindSection // a nested mapping, not a leaf
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindList:
		return "list"
	case KindRecords:
		return "records"
	case KindSection:
		return "section"
	default:
		return "missing"
	}
}

// Record is one structured entry of a record sequence, e.g. an FAQ item
// with "question" and "answer" fields.
type Record map[string]string

// Get returns the field value or an empty string.
func (r Record) Get(field string) string {
	return r[field]
}

// Value is the result of resolving a key path. Exactly one of the accessors
// is meaningful, as reported by Kind.
type Value struct {
	kind    Kind
	text    string
	list    []string
	records []Record
}

// Kind reports the shape of the resolved value.
func (v Value) Kind() Kind { return v.kind }

// Text returns the text content. For list and record values it is empty.
func (v Value) Text() string { return v.text }

// List returns a copy of the list content.
func (v Value) List() []string { return slices.Clone(v.list) }

// Records returns the record content.
func (v Value) Records() []Record { return v.records }

// textValue builds a text Value, used for both hits and key echoes.
func textValue(s string) Value {
	return Value{kind: KindText, text: s}
}

// kindOf classifies a raw document node without converting it.
func kindOf(node any) Kind {
	switch n := node.(type) {
	case nil:
		return KindMissing
	case map[string]any, map[any]any:
		return KindSection
	case []string:
		return KindList
	case []map[string]any:
		return KindRecords
	case []any:
		if len(n) == 0 {
			return KindList
		}
		switch n[0].(type) {
		case map[string]any, map[any]any:
			return KindRecords
		default:
			return KindList
		}
	default:
		return KindText
	}
}

// toValue converts a raw document node into a typed Value.
func toValue(node any) (Value, bool) {
	switch kindOf(node) {
	case KindText:
		if s, ok := node.(string); ok {
			return textValue(s), true
		}
		if s, ok := node.(fmt.Stringer); ok {
			return textValue(s.String()), true
		}
		return textValue(fmt.Sprint(node)), true
	case KindList:
		return Value{kind: KindList, list: toStrings(node)}, true
	case KindRecords:
		records, ok := toRecords(node)
		if !ok {
			return Value{}, false
		}
		return Value{kind: KindRecords, records: records}, true
	default:
		return Value{}, false
	}
}

func toStrings(node any) []string {
	switch n := node.(type) {
	case []string:
		return slices.Clone(n)
	case []any:
		out := make([]string, 0, len(n))
		for _, item := range n {
			if s, ok := item.(string); ok {
				out = append(out, s)
				continue
			}
			out = append(out, fmt.Sprint(item))
		}
		return out
	}
	return nil
}

func toRecords(node any) ([]Record, bool) {
	var items []any
	switch n := node.(type) {
	case []map[string]any:
		items = make([]any, len(n))
		for i := range n {
			items[i] = n[i]
		}
	case []any:
		items = n
	default:
		return nil, false
	}

	out := make([]Record, 0, len(items))
	for _, item := range items {
		m, ok := asMap(item)
		if !ok {
			return nil, false
		}
		rec := make(Record, len(m))
		for field, v := range m {
			if s, ok := v.(string); ok {
				rec[field] = s
				continue
			}
			rec[field] = fmt.Sprint(v)
		}
		out = append(out, rec)
	}
	return out, true
}

// asMap accepts both map shapes produced by the YAML and JSON decoders.
func asMap(node any) (map[string]any, bool) {
	switch m := node.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, v := range m {
			if ks, ok := k.(string); ok {
				out[ks] = v
			}
		}
		return out, true
	}
	return nil, false
}
