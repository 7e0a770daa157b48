package rule

import (
	"regexp"

	"github.com/alnah/go-nmd/internal/outcome"
	"github.com/alnah/go-nmd/internal/parsing"
)

// lineBreak is the explicit marker blank lines collapse into when a rule's
// output must stay a single HTML block.
const lineBreak = "<br>"

var blankLines = regexp.MustCompile(`\n(?:[ \t]*\n)+`)

// Match exposes the capture groups of one pattern match to computed parts.
type Match struct {
	groups []string
}

// Group returns capture group i, or "" when it did not participate.
func (m Match) Group(i int) string {
	if i < 0 || i >= len(m.groups) {
		return ""
	}
	return m.groups[i]
}

// BuildFunc computes a part's text from a match.
type BuildFunc func(m Match, pc *parsing.Context) (string, error)

// Part is one element of a replacement template. Text comes either from
// Template, where $1 or ${name} expand to capture groups, or from Build.
type Part struct {
	Template string
	Build    BuildFunc
	Fixed    bool
}

// Fixed returns a final template part.
func Fixed(template string) Part {
	return Part{Template: template, Fixed: true}
}

// Mutable returns a template part later text rules keep scanning.
func Mutable(template string) Part {
	return Part{Template: template}
}

// FixedFunc returns a final computed part.
func FixedFunc(fn BuildFunc) Part {
	return Part{Build: fn, Fixed: true}
}

// MutableFunc returns a computed part later text rules keep scanning.
func MutableFunc(fn BuildFunc) Part {
	return Part{Build: fn}
}

// Replacement substitutes every match of a pattern with a template of
// fixed and mutable parts in a single pass over the buffer. Text between
// matches stays mutable.
type Replacement struct {
	re         *regexp.Regexp
	parts      []Part
	newlineFix bool
}

// NewReplacement compiles pattern once. It panics with ErrInvalidPattern
// when the pattern is malformed.
func NewReplacement(pattern string, parts ...Part) *Replacement {
	return &Replacement{re: compile(pattern), parts: parts}
}

// WithNewlineFix makes the rule rewrite blank-line runs inside its
// mutable output into explicit line breaks.
func (r *Replacement) WithNewlineFix() *Replacement {
	r.newlineFix = true
	return r
}

// Pattern returns the compiled pattern source.
func (r *Replacement) Pattern() string {
	return r.re.String()
}

// IsMatch reports whether the pattern occurs in content.
func (r *Replacement) IsMatch(content string) bool {
	return r.re.MatchString(content)
}

// Parse replaces every match of the pattern in content.
func (r *Replacement) Parse(content string, pc *parsing.Context) (*outcome.Outcome, error) {
	out := outcome.New()
	last := 0
	for _, loc := range r.FindAll(content) {
		out.AddMutable(content[last:loc[0]])
		match, err := r.Expand(content, loc, pc)
		if err != nil {
			return nil, err
		}
		out.Append(match)
		last = loc[1]
	}
	out.AddMutable(content[last:])
	return out, nil
}

// FindAll returns the submatch locations of every match in content.
func (r *Replacement) FindAll(content string) [][]int {
	return r.re.FindAllStringSubmatchIndex(content, -1)
}

// Expand renders the single match at loc: the template's fixed parts and
// the mutable text the match claims, marked nested.
func (r *Replacement) Expand(content string, loc []int, pc *parsing.Context) (*outcome.Outcome, error) {
	out := outcome.New()
	m := newMatch(content, loc)
	for _, p := range r.parts {
		text, err := r.render(p, content, loc, m, pc)
		if err != nil {
			return nil, err
		}
		if p.Fixed {
			out.AddFixed(text)
			continue
		}
		if r.newlineFix {
			text = FixNewlines(text)
		}
		out.AddNested(text)
	}
	return out, nil
}

func (r *Replacement) render(p Part, content string, loc []int, m Match, pc *parsing.Context) (string, error) {
	if p.Build != nil {
		return p.Build(m, pc)
	}
	return string(r.re.ExpandString(nil, p.Template, content, loc)), nil
}

func newMatch(content string, loc []int) Match {
	groups := make([]string, len(loc)/2)
	for i := range groups {
		start, end := loc[2*i], loc[2*i+1]
		if start >= 0 && end >= 0 {
			groups[i] = content[start:end]
		}
	}
	return Match{groups: groups}
}

// FixNewlines rewrites each run of blank lines into a line break marker.
func FixNewlines(s string) string {
	return blankLines.ReplaceAllString(s, "\n"+lineBreak+"\n")
}

// Compile-time interface check.
var _ Spanner = (*Replacement)(nil)
