package parser

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/alnah/go-nmd/internal/document"
	"github.com/alnah/go-nmd/internal/parsing"
	"github.com/alnah/go-nmd/internal/splitter"
)

// Source is the raw text of one document.
type Source struct {
	Name string
	Text string
}

// Build splits text into an unparsed document.
func (p *Parser) Build(name, text string) *document.Document {
	split := splitter.Chapters(text, p.codex.ParagraphModifiers())

	doc := &document.Document{
		Name:     name,
		Preamble: paragraphs(split.Preamble),
		Chapters: make([]*document.Chapter, 0, len(split.Chapters)),
	}
	for _, c := range split.Chapters {
		tags := make([]document.Tag, len(c.Heading.Tags))
		for i, t := range c.Heading.Tags {
			tags[i] = document.Tag{Key: t.Key, Value: t.Value}
		}
		doc.Chapters = append(doc.Chapters, &document.Chapter{
			Heading: &document.Heading{
				Level:      c.Heading.Level,
				Title:      c.Heading.Title,
				Tags:       tags,
				ModifierID: c.Heading.ModifierID,
			},
			Paragraphs: paragraphs(c.Blocks),
		})
	}
	return doc
}

func paragraphs(blocks []splitter.Block) []*document.Paragraph {
	out := make([]*document.Paragraph, len(blocks))
	for i, b := range blocks {
		out[i] = document.NewParagraph(b.Content, b.ModifierID)
	}
	return out
}

// ParseDocument splits and parses text as the document name.
func (p *Parser) ParseDocument(ctx context.Context, name, text string, pc *parsing.Context) (*document.Document, error) {
	start := time.Now()
	doc := p.Build(name, text)
	if err := p.Parse(ctx, doc, pc); err != nil {
		return nil, err
	}
	pc.Logger.DocumentParsed(name, len(doc.Chapters), time.Since(start))
	return doc, nil
}

// Parse fills every outcome of doc. The preamble and each chapter are
// independent units.
func (p *Parser) Parse(ctx context.Context, doc *document.Document, pc *parsing.Context) error {
	pc = pc.InDocument(doc.Name)

	// Unit 0 is the preamble, unit i the chapter i-1.
	err := fanOut(ctx, len(doc.Chapters)+1, pc.Config, func(ctx context.Context, i int) error {
		if i == 0 {
			return p.parseParagraphs(ctx, doc.Preamble, pc)
		}
		return p.ParseChapter(ctx, doc.Chapters[i-1], pc)
	})
	if err != nil {
		return fmt.Errorf("document %q: %w", doc.Name, err)
	}
	return nil
}

// ParseChapter fills the heading and paragraph outcomes of c.
func (p *Parser) ParseChapter(ctx context.Context, c *document.Chapter, pc *parsing.Context) error {
	if c.Heading != nil {
		pc = pc.InChapter(c.Heading.Title)
		if err := p.ParseHeading(c.Heading, pc); err != nil {
			return err
		}
	}
	return p.parseParagraphs(ctx, c.Paragraphs, pc)
}

func (p *Parser) parseParagraphs(ctx context.Context, pars []*document.Paragraph, pc *parsing.Context) error {
	return fanOut(ctx, len(pars), pc.Config, func(_ context.Context, i int) error {
		return p.parseParagraph(pars[i], pc)
	})
}

// ParseDocuments parses sources into documents, in source order.
func (p *Parser) ParseDocuments(ctx context.Context, sources []Source, pc *parsing.Context) ([]*document.Document, error) {
	docs := make([]*document.Document, len(sources))
	err := fanOut(ctx, len(sources), pc.Config, func(ctx context.Context, i int) error {
		doc, err := p.ParseDocument(ctx, sources[i].Name, sources[i].Text, pc)
		if err != nil {
			return err
		}
		docs[i] = doc
		return nil
	})
	if err != nil {
		return nil, err
	}
	return docs, nil
}

// ParseDossier parses every source into a dossier named name.
func (p *Parser) ParseDossier(ctx context.Context, name string, sources []Source, pc *parsing.Context) (*document.Dossier, error) {
	docs, err := p.ParseDocuments(ctx, sources, pc)
	if err != nil {
		return nil, err
	}
	return &document.Dossier{Name: name, Documents: docs}, nil
}

// fanOut runs fn for units 0..n-1. With parallelization on, units run
// concurrently, bounded by the configured worker count; otherwise in order.
// Each unit must write only its own result slot. The first error is
// returned; running units are not interrupted, but units that have not
// started yet are skipped once ctx is done.
func fanOut(ctx context.Context, n int, cfg *parsing.Configuration, fn func(context.Context, int) error) error {
	if !cfg.Parallelization || n <= 1 {
		for i := range n {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := fn(ctx, i); err != nil {
				return err
			}
		}
		return nil
	}

	var g errgroup.Group
	g.SetLimit(workers(cfg))
	for i := range n {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return fn(ctx, i)
		})
	}
	return g.Wait()
}

// workers returns the per fan-out concurrency bound.
func workers(cfg *parsing.Configuration) int {
	if cfg.Workers > 0 {
		return cfg.Workers
	}
	return runtime.GOMAXPROCS(0)
}
