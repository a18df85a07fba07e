package i18n

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
)

// Document maps each language to its nested content tree.
type Document map[Language]map[string]any

// Translator resolves dot-delimited key paths against a translation Document.
// It is immutable after construction and safe for concurrent use.
type Translator struct {
	doc            Document
	defaultLang    Language
	logger         *slog.Logger
	missingLogMode bool
	onMissing      []MissingKeyFunc
}

// NewTranslator loads the document through the adapter and applies options.
func NewTranslator(ctx context.Context, adapter TranslationAdapter, opts ...Option) (*Translator, error) {
	if adapter == nil {
		return nil, ErrNilAdapter
	}

	doc, err := adapter.Load(ctx)
	if err != nil {
		return nil, err
	}
	if len(doc) == 0 {
		return nil, ErrNoTranslations
	}

	t := &Translator{
		doc:         doc,
		defaultLang: DefaultLanguage,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(t)
	}

	return t, nil
}

// DefaultLanguage returns the language used when a request names none.
func (t *Translator) DefaultLanguage() Language {
	return t.defaultLang
}

// Languages returns the supported languages that have content, default first.
func (t *Translator) Languages() []Language {
	out := make([]Language, 0, len(supportedLanguages))
	for _, l := range supportedLanguages {
		if _, ok := t.doc[l]; ok {
			out = append(out, l)
		}
	}
	return out
}

// Resolve walks the key path and returns whatever leaf it finds.
// On any miss the returned Value is text equal to the key itself.
func (t *Translator) Resolve(lang Language, key string) Value {
	v, err := t.lookup(lang, key)
	if err != nil {
		t.report(lang, key, err)
		return textValue(key)
	}
	return v
}

// Text resolves a text leaf and substitutes "%{name}" placeholders from
// args given as name/value pairs:
//
//	t.Text(i18n.English, "footer.copyright", "year", 2026)
//
// Returns the key on a miss or when the leaf is not text.
func (t *Translator) Text(lang Language, key string, args ...any) string {
	v, err := t.lookup(lang, key)
	if err == nil && v.kind != KindText {
		err = shapeError(KindText, v.kind)
	}
	if err != nil {
		t.report(lang, key, err)
		return key
	}
	if len(args) == 0 {
		return v.text
	}
	return namedSprintf(v.text, args)
}

// List resolves a string sequence. Returns a single-element slice holding
// the key on a miss, so templates still render something visible.
func (t *Translator) List(lang Language, key string) []string {
	v, err := t.lookup(lang, key)
	if err == nil && v.kind != KindList {
		err = shapeError(KindList, v.kind)
	}
	if err != nil {
		t.report(lang, key, err)
		return []string{key}
	}
	return v.list
}

// Records resolves a sequence of structured records. Returns nil on a miss.
func (t *Translator) Records(lang Language, key string) []Record {
	v, err := t.lookup(lang, key)
	if err == nil && v.kind != KindRecords {
		err = shapeError(KindRecords, v.kind)
	}
	if err != nil {
		t.report(lang, key, err)
		return nil
	}
	return v.records
}

// Has reports whether the key path ends on a leaf. It never reports a miss.
func (t *Translator) Has(lang Language, key string) bool {
	_, err := t.lookup(lang, key)
	return err == nil
}

func (t *Translator) lookup(lang Language, key string) (Value, error) {
	if !lang.Valid() {
		lang = t.defaultLang
	}
	root, ok := t.doc[lang]
	if !ok || key == "" {
		return Value{}, ErrKeyNotFound
	}

	var node any = root
	for seg := range strings.SplitSeq(key, ".") {
		next, ok := descend(node, seg)
		if !ok {
			return Value{}, ErrKeyNotFound
		}
		node = next
	}

	v, ok := toValue(node)
	if !ok {
		if kindOf(node) == KindRecords {
			return Value{}, fmt.Errorf("%w: sequence mixes records and scalars", ErrShapeMismatch)
		}
		return Value{}, ErrKeyNotFound
	}
	return v, nil
}

// descend takes one step into a mapping by key or into a sequence by index.
func descend(node any, seg string) (any, bool) {
	if m, ok := asMap(node); ok {
		v, ok := m[seg]
		return v, ok
	}

	// only canonical indexes: "01" and "+1" are keys, not positions
	idx, err := strconv.Atoi(seg)
	if err != nil || idx < 0 || strconv.Itoa(idx) != seg {
		return nil, false
	}
	switch n := node.(type) {
	case []any:
		if idx < len(n) {
			return n[idx], true
		}
	case []string:
		if idx < len(n) {
			return n[idx], true
		}
	case []map[string]any:
		if idx < len(n) {
			return n[idx], true
		}
	}
	return nil, false
}

func (t *Translator) report(lang Language, key string, err error) {
	if t.missingLogMode {
		t.logger.Warn("translation fallback",
			slog.String("lang", lang.String()),
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
	}
	for _, fn := range t.onMissing {
		fn(lang, key, err)
	}
}

func shapeError(want, got Kind) error {
	return fmt.Errorf("%w: want %s, got %s", ErrShapeMismatch, want, got)
}

var paramRegex = regexp.MustCompile(`%\{([^}]+)\}`)

// namedSprintf replaces "%{name}" placeholders. Unknown names are kept as is.
func namedSprintf(tmpl string, args []any) string {
	params := make(map[string]string, len(args)/2)
	for i := 0; i+1 < len(args); i += 2 {
		name, ok := args[i].(string)
		if !ok {
			continue
		}
		params[name] = fmt.Sprint(args[i+1])
	}

	return paramRegex.ReplaceAllStringFunc(tmpl, func(match string) string {
		if val, ok := params[match[2:len(match)-1]]; ok {
			return val
		}
		return match
	})
}

// IsMiss reports whether err is one of the resolution diagnostics.
func IsMiss(err error) bool {
	return errors.Is(err, ErrKeyNotFound) || errors.Is(err, ErrShapeMismatch)
}
