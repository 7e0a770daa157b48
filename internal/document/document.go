// Package document defines the parsed tree: a dossier of documents, each a
// preamble plus chapters, each chapter a heading plus paragraphs. Every
// node keeps its source and, once parsed, its outcome.
package document

import (
	"strings"

	"github.com/alnah/go-nmd/internal/ident"
	"github.com/alnah/go-nmd/internal/modifier"
	"github.com/alnah/go-nmd/internal/outcome"
)

// Paragraph is one block of a document.
type Paragraph struct {
	Content    string
	ModifierID modifier.ID
	// Outcome is nil until the paragraph is parsed.
	Outcome *outcome.Outcome
}

// NewParagraph returns an unparsed paragraph.
func NewParagraph(content string, id modifier.ID) *Paragraph {
	return &Paragraph{Content: content, ModifierID: id}
}

// IsParsed reports whether the paragraph has an outcome.
func (p *Paragraph) IsParsed() bool {
	return p.Outcome != nil
}

// HTML returns the rendered paragraph, or "" before parsing.
func (p *Paragraph) HTML() string {
	return p.Outcome.String()
}

// Tag is an "@key value" annotation under a heading.
type Tag struct {
	Key   string
	Value string
}

// Heading opens a chapter.
type Heading struct {
	Level      int
	Title      string
	Tags       []Tag
	ModifierID modifier.ID
	Outcome    *outcome.Outcome
}

// ID returns the anchor rendered on the heading element.
func (h *Heading) ID() string {
	return ident.Heading(h.Title)
}

// Tag returns the value of the first tag named key.
func (h *Heading) Tag(key string) (string, bool) {
	for _, t := range h.Tags {
		if t.Key == key {
			return t.Value, true
		}
	}
	return "", false
}

// HTML returns the rendered heading, or "" before parsing.
func (h *Heading) HTML() string {
	return h.Outcome.String()
}

// Chapter is a heading and the paragraphs up to the next heading.
type Chapter struct {
	Heading    *Heading
	Paragraphs []*Paragraph
}

// HTML returns the heading followed by every paragraph.
func (c *Chapter) HTML() string {
	var b strings.Builder
	if c.Heading != nil {
		b.WriteString(c.Heading.HTML())
		b.WriteByte('\n')
	}
	writeParagraphs(&b, c.Paragraphs)
	return b.String()
}

// Document is one source file.
type Document struct {
	Name string
	// Preamble holds the paragraphs before the first heading.
	Preamble []*Paragraph
	Chapters []*Chapter
}

// Headings returns every chapter heading in document order.
func (d *Document) Headings() []*Heading {
	out := make([]*Heading, 0, len(d.Chapters))
	for _, c := range d.Chapters {
		if c.Heading != nil {
			out = append(out, c.Heading)
		}
	}
	return out
}

// Paragraphs returns the preamble then every chapter's paragraphs.
func (d *Document) Paragraphs() []*Paragraph {
	out := append([]*Paragraph(nil), d.Preamble...)
	for _, c := range d.Chapters {
		out = append(out, c.Paragraphs...)
	}
	return out
}

// HTML returns the rendered document wrapped in a section.
func (d *Document) HTML() string {
	var b strings.Builder
	b.WriteString(`<section class="document" id="` + ident.Slug(d.Name) + `">` + "\n")
	writeParagraphs(&b, d.Preamble)
	for _, c := range d.Chapters {
		b.WriteString(c.HTML())
	}
	b.WriteString("</section>\n")
	return b.String()
}

// Dossier is an ordered collection of documents compiled together, with
// optional table of contents and bibliography.
type Dossier struct {
	Name         string
	Documents    []*Document
	TOC          *Document
	Bibliography *Document
}

// Document returns the document named name.
func (d *Dossier) Document(name string) (*Document, bool) {
	for _, doc := range d.Documents {
		if doc.Name == name {
			return doc, true
		}
	}
	return nil, false
}

// HTML returns the table of contents, the documents and the bibliography.
func (d *Dossier) HTML() string {
	var b strings.Builder
	if d.TOC != nil {
		b.WriteString(d.TOC.HTML())
	}
	for _, doc := range d.Documents {
		b.WriteString(doc.HTML())
	}
	if d.Bibliography != nil {
		b.WriteString(d.Bibliography.HTML())
	}
	return b.String()
}

func writeParagraphs(b *strings.Builder, paragraphs []*Paragraph) {
	for _, p := range paragraphs {
		if html := p.HTML(); html != "" {
			b.WriteString(html)
			b.WriteByte('\n')
		}
	}
}
