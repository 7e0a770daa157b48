package parser

import (
	"strings"
	"unicode/utf8"

	"github.com/alnah/go-nmd/internal/outcome"
)

// Frozen items are joined into a run as single code points of the
// supplementary private use area B, one per item, in order.
const (
	placeholderBase  = 0x100000
	placeholderLimit = 0x10FFFD
)

// item is one element of a run: text the remaining rules may still match,
// or a rendered fragment they treat as a whole.
type item struct {
	text   string
	frozen *outcome.Outcome
}

func isPlaceholder(r rune) bool {
	return r >= placeholderBase && r <= placeholderLimit
}

func hasText(run []item) bool {
	for _, it := range run {
		if it.frozen == nil && it.text != "" {
			return true
		}
	}
	return false
}

// join concatenates run, writing one placeholder per frozen item. It
// reports false when text already holds a placeholder code point or the
// run has more frozen items than placeholders.
func join(run []item) (string, []*outcome.Outcome, bool) {
	var b strings.Builder
	var frozen []*outcome.Outcome
	for _, it := range run {
		if it.frozen == nil {
			if strings.ContainsFunc(it.text, isPlaceholder) {
				return "", nil, false
			}
			b.WriteString(it.text)
			continue
		}
		r := placeholderBase + rune(len(frozen))
		if r > placeholderLimit {
			return "", nil, false
		}
		b.WriteRune(r)
		frozen = append(frozen, it.frozen)
	}
	return b.String(), frozen, true
}

// split is the inverse of join over a substring of the joined text.
func split(s string, frozen []*outcome.Outcome) []item {
	var out []item
	start := 0
	for i, r := range s {
		k := int(r - placeholderBase)
		if !isPlaceholder(r) || k >= len(frozen) {
			continue
		}
		if start < i {
			out = append(out, item{text: s[start:i]})
		}
		out = append(out, item{frozen: frozen[k]})
		start = i + utf8.RuneLen(r)
	}
	if start < len(s) {
		out = append(out, item{text: s[start:]})
	}
	return out
}

// carriesPlaceholder reports whether a fixed part of o embeds a frozen
// item.
func carriesPlaceholder(o *outcome.Outcome) bool {
	for _, part := range o.Parts() {
		if part.Fixed && strings.ContainsFunc(part.Text, isPlaceholder) {
			return true
		}
	}
	return false
}

// flatten renders run as an outcome, text as fixed when final is set.
func flatten(run []item, final bool) *outcome.Outcome {
	out := outcome.New()
	for _, it := range run {
		switch {
		case it.frozen != nil:
			out.Append(it.frozen)
		case final:
			out.AddFixed(it.text)
		default:
			out.AddMutable(it.text)
		}
	}
	return out
}
