package i18n

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path"
)

// TranslationAdapter interface defines how translations are loaded
type TranslationAdapter interface {
	Load(ctx context.Context) (Document, error)
}

// MapAdapter is a simple adapter that uses an in-memory document as the translation source
type MapAdapter struct {
	Data Document
}

// Load implements the TranslationAdapter interface
func (a *MapAdapter) Load(_ context.Context) (Document, error) {
	if a.Data == nil {
		return make(Document), nil
	}
	return a.Data, nil
}

// DirectoryAdapter loads every YAML and JSON file from a directory on disk.
// The parser is picked per file from its extension, so both formats may be mixed.
type DirectoryAdapter struct {
	path string
}

// NewDirectoryAdapter creates a new DirectoryAdapter instance.
// Returns nil if path is empty.
func NewDirectoryAdapter(path string) *DirectoryAdapter {
	if path == "" {
		return nil
	}
	return &DirectoryAdapter{path: path}
}

// Load implements the TranslationAdapter interface
func (a *DirectoryAdapter) Load(ctx context.Context) (Document, error) {
	info, err := os.Stat(a.path)
	if err != nil {
		return nil, errors.Join(ErrFailedToReadDir, err)
	}
	if !info.IsDir() {
		return nil, errors.Join(ErrFailedToReadDir, fmt.Errorf("%s is not a directory", a.path))
	}
	return loadFS(ctx, os.DirFS(a.path), ".", NewParserForFile)
}

// EmbeddedFsAdapter reads translations from a file system compiled into the binary.
type EmbeddedFsAdapter struct {
	parser Parser
	fs     fs.FS
	dir    string
}

// NewEmbeddedFsAdapter creates a new EmbeddedFsAdapter instance.
// Returns nil if parser is nil, fsys is nil, or dir is empty.
func NewEmbeddedFsAdapter(parser Parser, fsys fs.FS, dir string) *EmbeddedFsAdapter {
	if parser == nil || fsys == nil || dir == "" {
		return nil
	}
	return &EmbeddedFsAdapter{parser: parser, fs: fsys, dir: dir}
}

// Load implements the TranslationAdapter interface
func (a *EmbeddedFsAdapter) Load(ctx context.Context) (Document, error) {
	return loadFS(ctx, a.fs, a.dir, func(name string) Parser {
		if a.parser.SupportsFileExtension(getFileExtension(name)) {
			return a.parser
		}
		return nil
	})
}

// loadFS parses every supported file in dir and merges the per-language sections.
// Files are processed in lexical order; later files override top-level keys of earlier ones.
func loadFS(ctx context.Context, fsys fs.FS, dir string, parserFor func(name string) Parser) (Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrLoadingCancelled, err)
	}

	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, errors.Join(ErrFailedToReadDir, err)
	}

	doc := make(Document)
	parsed := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		parser := parserFor(entry.Name())
		if parser == nil {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, errors.Join(ErrLoadingCancelled, err)
		}

		name := path.Join(dir, entry.Name())
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, errors.Join(ErrFailedToReadFile, fmt.Errorf("%s: %w", name, err))
		}

		fileDoc, err := parser.Parse(ctx, string(content))
		if err != nil {
			return nil, errors.Join(ErrFailedToParseFile, fmt.Errorf("%s: %w", name, err))
		}

		for lang, section := range fileDoc {
			if doc[lang] == nil {
				doc[lang] = make(map[string]any, len(section))
			}
			maps.Copy(doc[lang], section)
		}
		parsed++
	}

	if parsed == 0 {
		return nil, errors.Join(ErrNoTranslationFiles, fmt.Errorf("directory %q", dir))
	}
	return doc, nil
}
