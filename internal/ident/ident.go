// Package ident builds the element identifiers rendered into HTML id
// attributes. Identifiers are pure functions of their inputs, so serial
// and parallel compilations render the same ids.
package ident

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var lower = cases.Lower(language.Und)

// Slug lowercases s, strips diacritics and joins alphanumeric runs with "-".
//
// Examples:
//   - "T" -> "t"
//   - "Élan Vital!" -> "elan-vital"
//   - "  a  b " -> "a-b"
func Slug(s string) string {
	folded, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), s)
	if err != nil {
		folded = s
	}
	folded = lower.String(folded)

	var b strings.Builder
	b.Grow(len(folded))
	pendingDash := false
	for _, r := range folded {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
			continue
		}
		pendingDash = true
	}
	return b.String()
}

// Join slugs each non-empty part and joins them with "-".
func Join(parts ...string) string {
	slugs := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := Slug(p); s != "" {
			slugs = append(slugs, s)
		}
	}
	return strings.Join(slugs, "-")
}

// Heading returns the id of a heading titled title.
func Heading(title string) string {
	return Slug(title)
}

// Image returns the id of an image in document captioned caption.
// Empty when the caption yields no slug.
func Image(document, caption string) string {
	if Slug(caption) == "" {
		return ""
	}
	return Join(document, caption)
}

// BibliographyEntry returns the anchor of a bibliography record.
func BibliographyEntry(key string) string {
	return Join("bibliography", key)
}
