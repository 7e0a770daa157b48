// Package nmd compiles NMD documents into trees of HTML fragments.
//
// # Quick Start
//
// Compile a single document:
//
//	c := nmd.NewCompiler()
//	doc, err := c.CompileDocument(ctx, "intro", "# Hello\n\nSome **bold** text.")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Print(doc.HTML())
//
// Compile a dossier, a directory holding an nmd.yaml file and the documents
// it lists:
//
//	dossier, err := c.CompileDossier(ctx, "path/to/book")
//
// # Compilation
//
// Each document is split into a preamble and chapters at its headings, and
// each chapter into paragraphs. Every paragraph is parsed by the rule of the
// paragraph modifier that claimed it, then its text by the ordered text
// rules. The result keeps the tree shape:
//
//	Dossier -> Document -> Chapter (Heading, Paragraphs) -> Paragraph
//
// so callers can render the whole dossier, one document, or one paragraph.
//
// # Configuration
//
// Use functional options to customize the compiler:
//
//	c := nmd.NewCompiler(
//	    nmd.WithWorkers(4),
//	    nmd.WithConfiguration(cfg),
//	    nmd.WithLogger(log.Default()),
//	)
//
// Strict checks (image sources, list items, quote lines, references) turn
// malformed input into errors; when disabled, the input is rendered as best
// as possible and a warning is logged.
//
// # Parallel Processing
//
// With Configuration.Parallelization on, documents, chapters and paragraphs
// are parsed concurrently. Each fan-out is bounded by ResolvePoolSize.
package nmd
