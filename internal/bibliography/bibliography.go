// Package bibliography renders the supplied bibliography records as a
// pseudo-document whose entry anchors match the citation links.
package bibliography

import (
	"html"
	"strconv"
	"strings"

	"github.com/alnah/go-nmd/internal/document"
	"github.com/alnah/go-nmd/internal/ident"
	"github.com/alnah/go-nmd/internal/outcome"
	"github.com/alnah/go-nmd/internal/parsing"
)

// DocumentName names the generated document.
const DocumentName = "bibliography"

// DefaultTitle is used when Build receives an empty title.
const DefaultTitle = "Bibliography"

// Build renders records in order; the position of a record is its
// citation number. Without records the document is empty.
func Build(records parsing.Bibliography, title string) *document.Document {
	doc := &document.Document{Name: DocumentName}
	if len(records) == 0 {
		return doc
	}
	if title == "" {
		title = DefaultTitle
	}

	var b strings.Builder
	b.WriteString(`<div class="bibliography">`)
	b.WriteString(`<h2 class="bibliography-title">` + html.EscapeString(title) + `</h2>`)
	b.WriteString(`<ol class="bibliography-list">`)
	for i, r := range records {
		writeEntry(&b, i+1, r)
	}
	b.WriteString(`</ol></div>`)

	par := document.NewParagraph("", "")
	par.Outcome = outcome.NewFixed(b.String())
	doc.Preamble = []*document.Paragraph{par}
	return doc
}

func writeEntry(b *strings.Builder, n int, r parsing.BibliographyRecord) {
	b.WriteString(`<li class="bibliography-entry" id="` + html.EscapeString(ident.BibliographyEntry(r.Key)) + `">`)
	b.WriteString(`<span class="bibliography-entry-number">[` + strconv.Itoa(n) + `]</span>`)

	if len(r.Authors) > 0 {
		b.WriteString(` <span class="bibliography-entry-authors">` + html.EscapeString(strings.Join(r.Authors, ", ")) + `</span>`)
	}
	if r.Year != 0 {
		b.WriteString(` <span class="bibliography-entry-year">(` + strconv.Itoa(r.Year) + `)</span>`)
	}

	title := r.Title
	if title == "" {
		title = r.Key
	}
	title = html.EscapeString(title)
	if r.URL != "" {
		b.WriteString(` <a class="bibliography-entry-title" href="` + html.EscapeString(r.URL) + `">` + title + `</a>`)
	} else {
		b.WriteString(` <span class="bibliography-entry-title">` + title + `</span>`)
	}

	if r.Description != "" {
		b.WriteString(` <span class="bibliography-entry-description">` + html.EscapeString(r.Description) + `</span>`)
	}
	b.WriteString(`</li>`)
}
