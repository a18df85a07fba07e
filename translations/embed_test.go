package translations_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/karkencompany/website/pkg/i18n"
	"github.com/karkencompany/website/translations"
)

func load(t *testing.T) *i18n.Translator {
	t.Helper()
	tr, err := i18n.NewTranslator(context.Background(),
		i18n.NewEmbeddedFsAdapter(i18n.NewYAMLParser(), translations.FS, "."))
	require.NoError(t, err)
	return tr
}

func TestShapeParity(t *testing.T) {
	t.Parallel()
	tr := load(t)

	require.Equal(t, []i18n.Language{i18n.Lithuanian, i18n.English}, tr.Languages())
	for _, issue := range tr.Parity(i18n.Lithuanian, i18n.English) {
		t.Errorf("content shape differs: %s", issue)
	}
}

func TestContentShapes(t *testing.T) {
	t.Parallel()
	tr := load(t)

	for _, lang := range tr.Languages() {
		t.Run(lang.String(), func(t *testing.T) {
			t.Parallel()
			assert.NotEmpty(t, tr.Records(lang, "faq.items"))
			assert.Len(t, tr.Records(lang, "about.businessModel.channels"), 3)
			assert.Len(t, tr.List(lang, "contact.form.interestOptions"), 4)
			assert.Len(t, tr.List(lang, "products.categories.spices.items"), 4)
			assert.NotEmpty(t, tr.Records(lang, "legal.privacy.sections"))
			assert.Equal(t, "2026-01-22", tr.Text(lang, "legal.lastUpdatedDate"))
			assert.Equal(t, "+370 604 87253", tr.Text(lang, "contact.info.phone"))
			assert.Contains(t, tr.Text(lang, "footer.copyright", "year", 2026), "© 2026 Karken Company")
			assert.NotEqual(t, "faq.items.0.question", tr.Text(lang, "faq.items.0.question"))

			for _, code := range []string{"catalog", "consultation", "partnership", "other"} {
				assert.True(t, tr.Has(lang, "contact.form.interestLabels."+code), code)
			}
		})
	}
}
