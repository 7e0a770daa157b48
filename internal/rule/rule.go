// Package rule implements the transformations bound to modifiers.
//
// Every rule answers two questions: does it match some content, and what
// does the content become. Most modifiers share the generic Replacement
// rule with a different template; lists, tables, images, extended quotes,
// code blocks, references and citations need their own logic.
//
// Rules never rescan their own output. They return an outcome.Outcome whose
// Fixed parts are final HTML and whose Mutable parts the parser keeps
// scanning with the remaining text rules.
package rule

import (
	"fmt"
	"regexp"

	"golang.org/x/net/html"

	"github.com/alnah/go-nmd/internal/outcome"
	"github.com/alnah/go-nmd/internal/parsing"
)

// Rule is the contract shared by every rule implementation.
type Rule interface {
	// IsMatch reports whether Parse would transform content.
	IsMatch(content string) bool
	// Parse transforms content. Errors wrap a parsing sentinel.
	Parse(content string, pc *parsing.Context) (*outcome.Outcome, error)
}

// Spanner is a Rule that reports its matches and renders them one at a
// time, so a caller can match across fragments it keeps opaque.
type Spanner interface {
	Rule
	// FindAll returns submatch locations as FindAllStringSubmatchIndex.
	FindAll(content string) [][]int
	// Expand renders the match at loc. Mutable parts come back nested.
	Expand(content string, loc []int, pc *parsing.Context) (*outcome.Outcome, error)
}

// compile compiles pattern or panics with ErrInvalidPattern: a broken
// pattern is a build-time bug, never a per-call failure.
func compile(pattern string) *regexp.Regexp {
	re, err := regexp.Compile(pattern)
	if err != nil {
		panic(fmt.Errorf("%w: %q: %v", parsing.ErrInvalidPattern, pattern, err))
	}
	return re
}

// Anchored wraps pattern so it must match the whole content.
func Anchored(pattern string) string {
	return `\A(?:` + pattern + `)\z`
}

// attr escapes a value for use inside a double-quoted HTML attribute.
func attr(s string) string {
	return html.EscapeString(s)
}

// idAttr renders ` id="..."`, or nothing for an empty id.
func idAttr(id string) string {
	if id == "" {
		return ""
	}
	return ` id="` + attr(id) + `"`
}

// styleAttr renders ` style="..."`, or nothing for an empty style.
func styleAttr(style string) string {
	if style == "" {
		return ""
	}
	return ` style="` + attr(style) + `"`
}
