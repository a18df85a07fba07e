// Package i18n resolves localized site content for the two published languages,
// Lithuanian (default) and English.
//
// Content lives in a Document: per language, a nested mapping whose leaves are
// text, a list of strings, or a list of records such as FAQ entries. Keys are
// dot-delimited paths; numeric segments index into sequences.
//
//	tr, err := i18n.NewTranslator(ctx, i18n.NewEmbeddedFsAdapter(i18n.NewYAMLParser(), files, "."))
//	title := tr.Text(i18n.English, "services.sourcing.title")
//	faq := tr.Records(i18n.Lithuanian, "faq.items")
//
// Lookups never fail. A miss echoes the key (Text), wraps it in a one-element
// slice (List) or yields nil (Records), and reports the miss to every registered
// MissingKeyFunc so gaps surface during content review.
//
// # HTTP
//
// Middleware negotiates the request language (cookie, query, Language header,
// Accept-Language) and stores a per-request Localizer in the context:
//
//	r.Use(i18n.Middleware(tr, i18n.DefaultLangExtractor()))
//
//	func page(w http.ResponseWriter, r *http.Request) {
//		loc := i18n.LocalizerFromContext(r.Context())
//		fmt.Fprintln(w, loc.Text("hero.title"))
//	}
package i18n
