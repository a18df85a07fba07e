// Package translations ships the site content for every published language.
package translations

import "embed"

// FS holds lt.yaml and en.yaml at its root.
//
//go:embed *.yaml
var FS embed.FS
