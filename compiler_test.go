package nmd

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/charmbracelet/log"
)

func writeDossierFile(t *testing.T, dir, name, content string) {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func writePNG(t *testing.T, path string) {
	t.Helper()

	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 2, 2))); err != nil {
		t.Fatal(err)
	}
	writeDossierFile(t, filepath.Dir(path), filepath.Base(path), buf.String())
}

// newDossier writes a two-document dossier with a TOC and a bibliography.
func newDossier(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	writeDossierFile(t, dir, "nmd.yaml", `
name: Field Guide
documents:
  - intro.nmd
  - birds.nmd
compilation:
  parallelization: true
bibliography:
  records:
    - key: knuth
      title: The Art of Computer Programming
      authors: [Donald Knuth]
      year: 1968
toc:
  enabled: true
`)
	writeDossierFile(t, dir, "intro.nmd", "# Chapter One\n\nSee ^[knuth].\n\n![Cat](cat.png)")
	writeDossierFile(t, dir, "birds.nmd", "# Chapter Two\n\n- wren\n- robin")
	writePNG(t, filepath.Join(dir, "assets", "images", "cat.png"))
	return dir
}

// ---------------------------------------------------------------------------
// TestCompileDocument
// ---------------------------------------------------------------------------

func TestCompileDocument(t *testing.T) {
	t.Parallel()

	doc, err := NewCompiler().CompileDocument(context.Background(), "note", "# Hi\n\nSome **bold** text.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	html := doc.HTML()
	for _, want := range []string{
		`<section class="document" id="note">`,
		`<h1 class="heading-1" id="hi">Hi</h1>`,
		`<strong class="bold">bold</strong>`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("missing %q in\n%s", want, html)
		}
	}
}

func TestCompileDocument_Strictness(t *testing.T) {
	t.Parallel()

	text := "- ok\nnot an item"

	_, err := NewCompiler().CompileDocument(context.Background(), "doc", text)
	if !errors.Is(err, ErrListItem) {
		t.Errorf("strict error = %v, want ErrListItem", err)
	}

	lenient := DefaultConfiguration()
	lenient.StrictListCheck = false
	var logs bytes.Buffer
	c := NewCompiler(WithConfiguration(lenient), WithLogger(log.New(&logs)))
	doc, err := c.CompileDocument(context.Background(), "doc", text)
	if err != nil {
		t.Fatalf("lenient compile failed: %v", err)
	}
	if !strings.Contains(doc.HTML(), "ok") {
		t.Error("accepted item missing from output")
	}
	if !strings.Contains(logs.String(), "not an item") {
		t.Errorf("dropped line not logged: %q", logs.String())
	}
}

func TestCompileDocument_Concurrent(t *testing.T) {
	t.Parallel()

	c := NewCompiler(WithParallelization(true), WithWorkers(2))
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			doc, err := c.CompileDocument(context.Background(), "doc", "# A\n\n*x*\n\n# B\n\n_y_")
			if err != nil {
				t.Error(err)
				return
			}
			if len(doc.Chapters) != 2 {
				t.Errorf("got %d chapters, want 2", len(doc.Chapters))
			}
		}()
	}
	wg.Wait()
}

func TestWithConfiguration_Copies(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfiguration()
	c := NewCompiler(WithConfiguration(cfg))
	cfg.StrictListCheck = false

	if _, err := c.CompileDocument(context.Background(), "doc", "- ok\nbad"); !errors.Is(err, ErrListItem) {
		t.Errorf("later changes to cfg leaked into the compiler: %v", err)
	}
}

func TestOptions_Panic(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		fn   func()
	}{
		{name: "nil logger", fn: func() { WithLogger(nil) }},
		{name: "nil configuration", fn: func() { WithConfiguration(nil) }},
		{name: "negative workers", fn: func() { WithWorkers(-1) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			defer func() {
				if recover() == nil {
					t.Error("expected panic")
				}
			}()
			tt.fn()
		})
	}
}

// ---------------------------------------------------------------------------
// TestCompileDossier
// ---------------------------------------------------------------------------

func TestCompileDossier(t *testing.T) {
	t.Parallel()

	dossier, err := NewCompiler().CompileDossier(context.Background(), newDossier(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if dossier.Name != "Field Guide" {
		t.Errorf("Name = %q", dossier.Name)
	}
	if len(dossier.Documents) != 2 || dossier.Documents[0].Name != "intro" || dossier.Documents[1].Name != "birds" {
		t.Fatalf("documents out of order: %+v", dossier.Documents)
	}
	if dossier.TOC == nil || !strings.Contains(dossier.TOC.HTML(), `href="#chapter-two"`) {
		t.Error("TOC missing or incomplete")
	}
	if dossier.Bibliography == nil || !strings.Contains(dossier.Bibliography.HTML(), "Donald Knuth") {
		t.Error("bibliography missing or incomplete")
	}

	intro := dossier.Documents[0].HTML()
	if !strings.Contains(intro, `href="#bibliography-knuth">[1]</a>`) {
		t.Errorf("citation not linked:\n%s", intro)
	}
	if !strings.Contains(intro, `src="data:image/png;base64,`) {
		t.Errorf("image under assets/images not embedded:\n%s", intro)
	}
}

func TestCompileDossier_DiscoversDocuments(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeDossierFile(t, dir, "nmd.yaml", "toc:\n  enabled: false\n")
	writeDossierFile(t, dir, "b.nmd", "second")
	writeDossierFile(t, dir, "a.md", "first")
	writeDossierFile(t, dir, "notes.txt", "ignored")
	writeDossierFile(t, dir, ".hidden.nmd", "ignored")

	dossier, err := NewCompiler().CompileDossier(context.Background(), dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dossier.Name != filepath.Base(dir) {
		t.Errorf("Name = %q, want directory name", dossier.Name)
	}
	if len(dossier.Documents) != 2 || dossier.Documents[0].Name != "a" || dossier.Documents[1].Name != "b" {
		t.Errorf("discovered %+v, want a then b", dossier.Documents)
	}
	if dossier.TOC != nil || dossier.Bibliography != nil {
		t.Error("pseudo-documents built without being configured")
	}
}

func TestCompileDossier_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		files   map[string]string
		wantErr error
	}{
		{
			name:    "no documents",
			files:   map[string]string{"nmd.yaml": "name: empty\n"},
			wantErr: ErrNoDocuments,
		},
		{
			name:    "missing document",
			files:   map[string]string{"nmd.yaml": "documents: [gone.nmd]\n"},
			wantErr: ErrReadDocument,
		},
		{
			name:    "duplicate names",
			files:   map[string]string{"nmd.yaml": "name: x\n", "a.md": "x", "a.nmd": "y"},
			wantErr: ErrDuplicateDocument,
		},
		{
			name:    "invalid config",
			files:   map[string]string{"nmd.yaml": "documents: [a.txt]\n"},
			wantErr: ErrInvalidValue,
		},
		{
			name:    "unresolved image",
			files:   map[string]string{"nmd.yaml": "name: x\n", "a.nmd": "![Cat](missing.png)"},
			wantErr: ErrInvalidSource,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			for name, content := range tt.files {
				writeDossierFile(t, dir, name, content)
			}
			_, err := NewCompiler().CompileDossier(context.Background(), dir)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestCompileDossierConfig_Overrides(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeDossierFile(t, dir, "nmd.yaml", "name: x\n")
	writeDossierFile(t, dir, "a.nmd", "![Cat](missing.png)")

	cfg, err := LoadDossierConfig(dir)
	if err != nil {
		t.Fatal(err)
	}
	no := false
	cfg.Compilation.StrictImageSrcCheck = &no

	dossier, err := NewCompiler().CompileDossierConfig(context.Background(), dir, cfg)
	if err != nil {
		t.Fatalf("lenient compile failed: %v", err)
	}
	if !strings.Contains(dossier.HTML(), `src="missing.png"`) {
		t.Errorf("unresolved source not kept literally:\n%s", dossier.HTML())
	}
}

// ---------------------------------------------------------------------------
// TestParseDocumentSubset
// ---------------------------------------------------------------------------

func TestParseDocumentSubset(t *testing.T) {
	t.Parallel()

	dir := newDossier(t)
	c := NewCompiler()

	dossier, err := c.ParseDocumentSubset(context.Background(), dir, []string{"birds"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(dossier.Documents) != 1 || dossier.Documents[0].Name != "birds" {
		t.Errorf("subset = %+v, want birds only", dossier.Documents)
	}
	if strings.Contains(dossier.TOC.HTML(), "chapter-one") {
		t.Error("TOC lists a document outside the subset")
	}

	if _, err := c.ParseDocumentSubset(context.Background(), dir, []string{"fish"}); !errors.Is(err, ErrUnknownDocument) {
		t.Errorf("error = %v, want ErrUnknownDocument", err)
	}
	if _, err := c.ParseDocumentSubset(context.Background(), dir, nil); !errors.Is(err, ErrNoDocuments) {
		t.Errorf("empty subset error = %v, want ErrNoDocuments", err)
	}
}

func TestCompileDossier_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewCompiler().CompileDossier(ctx, newDossier(t))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}
