package i18n_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/karkencompany/website/pkg/i18n"
)

const ltYAML = `
lt:
  nav:
    home: Pradžia
  faq:
    items:
      - question: Kas?
        answer: Mes.
  legal:
    lastUpdatedDate: "2026-01-22"
`

const enJSON = `{"en": {"nav": {"home": "Home"}, "products": {"items": ["Rice", "Tea"]}}}`

func TestEmbeddedFsAdapter(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"translations/lt.yaml":   {Data: []byte(ltYAML)},
		"translations/readme.md": {Data: []byte("# not content")},
	}

	tr, err := i18n.NewTranslator(context.Background(), i18n.NewEmbeddedFsAdapter(i18n.NewYAMLParser(), fsys, "translations"))
	require.NoError(t, err)

	assert.Equal(t, "Pradžia", tr.Text(i18n.Lithuanian, "nav.home"))
	assert.Equal(t, "Mes.", tr.Records(i18n.Lithuanian, "faq.items")[0].Get("answer"))
	assert.Equal(t, "2026-01-22", tr.Text(i18n.Lithuanian, "legal.lastUpdatedDate"))
	assert.Equal(t, []i18n.Language{i18n.Lithuanian}, tr.Languages())

	assert.Nil(t, i18n.NewEmbeddedFsAdapter(nil, fsys, "translations"))
	assert.Nil(t, i18n.NewEmbeddedFsAdapter(i18n.NewYAMLParser(), fsys, ""))
}

func TestEmbeddedFsAdapter_Errors(t *testing.T) {
	t.Parallel()

	t.Run("no supported files", func(t *testing.T) {
		t.Parallel()
		fsys := fstest.MapFS{"t/a.txt": {Data: []byte("x")}}
		_, err := i18n.NewEmbeddedFsAdapter(i18n.NewYAMLParser(), fsys, "t").Load(context.Background())
		assert.ErrorIs(t, err, i18n.ErrNoTranslationFiles)
	})

	t.Run("unsupported language", func(t *testing.T) {
		t.Parallel()
		fsys := fstest.MapFS{"t/de.yaml": {Data: []byte("de:\n  nav:\n    home: Start\n")}}
		_, err := i18n.NewEmbeddedFsAdapter(i18n.NewYAMLParser(), fsys, "t").Load(context.Background())
		require.ErrorIs(t, err, i18n.ErrFailedToParseFile)
		var langErr *i18n.ErrLanguageNotSupported
		require.ErrorAs(t, err, &langErr)
		assert.Equal(t, "de", langErr.Lang)
	})

	t.Run("root is not a mapping per language", func(t *testing.T) {
		t.Parallel()
		fsys := fstest.MapFS{"t/lt.yaml": {Data: []byte("lt: just text\n")}}
		_, err := i18n.NewEmbeddedFsAdapter(i18n.NewYAMLParser(), fsys, "t").Load(context.Background())
		assert.ErrorIs(t, err, i18n.ErrInvalidDocumentRoot)
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		fsys := fstest.MapFS{"t/lt.yaml": {Data: []byte(ltYAML)}}
		_, err := i18n.NewEmbeddedFsAdapter(i18n.NewYAMLParser(), fsys, "t").Load(ctx)
		assert.ErrorIs(t, err, i18n.ErrLoadingCancelled)
	})
}

func TestDirectoryAdapter(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "lt.yaml"), []byte(ltYAML), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "en.json"), []byte(enJSON), 0o600))

	tr, err := i18n.NewTranslator(context.Background(), i18n.NewDirectoryAdapter(dir))
	require.NoError(t, err)

	assert.Equal(t, "Pradžia", tr.Text(i18n.Lithuanian, "nav.home"))
	assert.Equal(t, "Home", tr.Text(i18n.English, "nav.home"))
	assert.Equal(t, []string{"Rice", "Tea"}, tr.List(i18n.English, "products.items"))

	assert.Nil(t, i18n.NewDirectoryAdapter(""))
	_, err = i18n.NewDirectoryAdapter(filepath.Join(dir, "missing")).Load(context.Background())
	assert.ErrorIs(t, err, i18n.ErrFailedToReadDir)
}

func TestParsers(t *testing.T) {
	t.Parallel()

	assert.IsType(t, &i18n.YAMLParser{}, i18n.NewParserForFile("lt.yml"))
	assert.IsType(t, &i18n.JSONParser{}, i18n.NewParserForFile("en.JSON"))
	assert.Nil(t, i18n.NewParserForFile("notes.txt"))

	_, err := i18n.NewJSONParser().Parse(context.Background(), "{")
	assert.ErrorIs(t, err, i18n.ErrFailedToParseJSON)

	_, err = i18n.NewYAMLParser().Parse(context.Background(), "lt: [unclosed")
	assert.ErrorIs(t, err, i18n.ErrFailedToParseYAML)

	_, err = i18n.NewYAMLParser().Parse(context.Background(), "")
	assert.ErrorIs(t, err, i18n.ErrNoTranslations)
}
