package i18n

import (
	"errors"
	"fmt"
)

var (
	// Resolution diagnostics passed to MissingKeyFunc.
	ErrKeyNotFound   = errors.New("translation key not found")
	ErrShapeMismatch = errors.New("translation has a different shape")

	ErrNilAdapter          = errors.New("translation adapter is nil")
	ErrNoTranslations      = errors.New("no translations loaded")
	ErrFailedToParseJSON   = errors.New("failed to parse JSON content")
	ErrFailedToParseYAML   = errors.New("failed to parse YAML content")
	ErrParsingCancelled    = errors.New("translation parsing cancelled")
	ErrLoadingCancelled    = errors.New("loading translations cancelled")
	ErrFailedToReadFile    = errors.New("failed to read translation file")
	ErrFailedToParseFile   = errors.New("failed to parse translation file")
	ErrFailedToReadDir     = errors.New("failed to read translation directory")
	ErrNoTranslationFiles  = errors.New("no translation files found")
	ErrInvalidDocumentRoot = errors.New("translation document root must map language codes to sections")
)

// ErrLanguageNotSupported indicates a document or request names a language
// the site does not publish.
type ErrLanguageNotSupported struct {
	Lang string
}

func (e *ErrLanguageNotSupported) Error() string {
	return fmt.Sprintf("language not supported: %s", e.Lang)
}
