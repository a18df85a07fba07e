// Package site serves the static content pages and the language switch.
package site
