package i18n

import (
	"context"
	"strings"
)

// Parser turns the content of one translation file into a Document.
// A file's root mapping is keyed by language code:
//
//	lt:
//	  nav:
//	    home: Pradžia
type Parser interface {
	Parse(ctx context.Context, content string) (Document, error)

	// SupportsFileExtension checks if the parser supports a given file extension
	// The extension may or may not include a leading dot (e.g. both "json" and ".json" are valid)
	SupportsFileExtension(ext string) bool
}

// NewParserForFile returns a parser based on the file extension
func NewParserForFile(filename string) Parser {
	ext := getFileExtension(filename)

	switch strings.ToLower(ext) {
	case "json":
		return NewJSONParser()
	case "yaml", "yml":
		return NewYAMLParser()
	default:
		return nil
	}
}

// getFileExtension extracts the extension from a filename
func getFileExtension(filename string) string {
	if idx := strings.LastIndex(filename, "."); idx != -1 {
		return filename[idx+1:]
	}
	return ""
}

// toDocument validates the decoded root and keys it by Language.
func toDocument(data map[string]any) (Document, error) {
	if len(data) == 0 {
		return nil, ErrNoTranslations
	}

	doc := make(Document, len(data))
	for code, section := range data {
		lang, ok := ParseLanguage(code)
		if !ok {
			return nil, &ErrLanguageNotSupported{Lang: code}
		}
		m, ok := asMap(section)
		if !ok {
			return nil, ErrInvalidDocumentRoot
		}
		doc[lang] = m
	}
	return doc, nil
}
