// Package toc builds the table of contents pseudo-document of a dossier
// from its parsed headings.
package toc

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/alnah/go-nmd/internal/document"
	"github.com/alnah/go-nmd/internal/modifier"
	"github.com/alnah/go-nmd/internal/outcome"
)

// DocumentName names the generated document.
const DocumentName = "table-of-contents"

// Defaults applied to zero Options fields.
const (
	DefaultTitle    = "Table of Contents"
	DefaultMinDepth = 1
	DefaultMaxDepth = 3
)

// Options controls which headings are listed and how.
type Options struct {
	Title    string
	MinDepth int
	MaxDepth int
	// Numbered prefixes entries with hierarchical numbers ("1.2.").
	Numbered bool
}

func (o Options) withDefaults() Options {
	if o.Title == "" {
		o.Title = DefaultTitle
	}
	if o.MinDepth < 1 {
		o.MinDepth = DefaultMinDepth
	}
	if o.MaxDepth < 1 || o.MaxDepth > modifier.MaxHeadingLevel {
		o.MaxDepth = DefaultMaxDepth
	}
	return o
}

type entry struct {
	level int
	id    string
	text  string
}

// htmlTag matches tags stripped from rendered heading titles.
var htmlTag = regexp.MustCompile(`<[^>]*>`)

// headingText returns the plain text of a heading, from its rendered form
// when parsed so markup in titles does not leak into the entry.
func headingText(h *document.Heading) string {
	if h.Outcome == nil {
		return h.Title
	}
	s := htmlTag.ReplaceAllString(h.HTML(), "")
	return strings.TrimSpace(html.UnescapeString(s))
}

func collect(docs []*document.Document, opts Options) []entry {
	var entries []entry
	for _, doc := range docs {
		for _, h := range doc.Headings() {
			if h.Level < opts.MinDepth || h.Level > opts.MaxDepth {
				continue
			}
			entries = append(entries, entry{level: h.Level, id: h.ID(), text: headingText(h)})
		}
	}
	return entries
}

// Build returns the table of contents of docs as a parsed document with a
// single fixed paragraph. Without matching headings the document is empty.
func Build(docs []*document.Document, opts Options) *document.Document {
	opts = opts.withDefaults()
	doc := &document.Document{Name: DocumentName}

	entries := collect(docs, opts)
	if len(entries) == 0 {
		return doc
	}

	par := document.NewParagraph("", "")
	par.Outcome = outcome.NewFixed(render(entries, opts))
	doc.Preamble = []*document.Paragraph{par}
	return doc
}

func render(entries []entry, opts Options) string {
	var b strings.Builder
	b.WriteString(`<nav class="toc">`)
	b.WriteString(`<h2 class="toc-title">` + html.EscapeString(opts.Title) + `</h2>`)
	b.WriteString(`<div class="toc-list">`)

	numbering := &numberingState{}
	for _, e := range entries {
		num, depth := numbering.next(e.level)

		b.WriteString(`<div class="toc-item toc-item-level-` + strconv.Itoa(depth) + `"`)
		if indent := float64(depth-1) * 1.5; indent > 0 {
			fmt.Fprintf(&b, ` style="padding-left:%.1fem"`, indent)
		}
		b.WriteString(`><a href="#` + html.EscapeString(e.id) + `">`)
		if opts.Numbered {
			b.WriteString(`<span class="toc-item-number">` + num + `</span> `)
		}
		b.WriteString(html.EscapeString(e.text))
		b.WriteString(`</a></div>`)
	}

	b.WriteString(`</div></nav>`)
	return b.String()
}

// numberingState tracks hierarchical numbering. The shallowest first
// heading becomes depth 1, and skipped levels nest as direct children.
type numberingState struct {
	counters     [modifier.MaxHeadingLevel]int
	minLevelSeen int
	lastDepth    int
}

// next returns the number and effective depth of a heading at level.
func (n *numberingState) next(level int) (string, int) {
	if n.minLevelSeen == 0 {
		n.minLevelSeen = level
	}

	depth := max(level-n.minLevelSeen+1, 1)
	if n.lastDepth > 0 && depth > n.lastDepth+1 {
		depth = n.lastDepth + 1
	}

	for i := depth; i < len(n.counters); i++ {
		n.counters[i] = 0
	}
	n.counters[depth-1]++
	n.lastDepth = depth

	parts := make([]string, depth)
	for i := range depth {
		parts[i] = strconv.Itoa(n.counters[i])
	}
	return strings.Join(parts, ".") + ".", depth
}
