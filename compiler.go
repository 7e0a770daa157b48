package nmd

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/alnah/go-nmd/internal/bibliography"
	"github.com/alnah/go-nmd/internal/codex"
	"github.com/alnah/go-nmd/internal/logging"
	"github.com/alnah/go-nmd/internal/parser"
	"github.com/alnah/go-nmd/internal/parsing"
	"github.com/alnah/go-nmd/internal/resource"
	"github.com/alnah/go-nmd/internal/toc"
)

// htmlCodex compiles every rule pattern once per process.
var htmlCodex = sync.OnceValue(codex.HTML)

// Compiler turns NMD sources into parsed document trees.
// Safe for concurrent use: each compilation gets its own image cache.
type Compiler struct {
	parser   *parser.Parser
	logger   *logging.Logger
	cfg      *parsing.Configuration
	workers  int
	parallel *bool
}

// Option configures a Compiler.
type Option func(*Compiler)

// WithLogger routes compiler warnings to l.
// Panics if l is nil (programmer error).
func WithLogger(l *log.Logger) Option {
	if l == nil {
		panic("nmd: WithLogger logger must not be nil")
	}
	return func(c *Compiler) {
		c.logger = &logging.Logger{Logger: l}
	}
}

// WithConfiguration sets the configuration used by CompileDocument.
// Dossiers use the settings of their own nmd.yaml.
// Panics if cfg is nil (programmer error).
func WithConfiguration(cfg *Configuration) Option {
	if cfg == nil {
		panic("nmd: WithConfiguration configuration must not be nil")
	}
	return func(c *Compiler) {
		c.cfg = cfg.Clone()
	}
}

// WithWorkers bounds every fan-out, overriding configured worker counts.
// Zero keeps the configured value. Panics if n < 0 (programmer error).
func WithWorkers(n int) Option {
	if n < 0 {
		panic("nmd: WithWorkers count must not be negative")
	}
	return func(c *Compiler) {
		c.workers = n
	}
}

// WithParallelization forces parallel parsing on or off, overriding
// configured values.
func WithParallelization(on bool) Option {
	return func(c *Compiler) {
		c.parallel = &on
	}
}

// NewCompiler creates a Compiler with default configuration.
func NewCompiler(opts ...Option) *Compiler {
	c := &Compiler{
		parser: parser.New(htmlCodex()),
		logger: logging.Discard(),
		cfg:    parsing.DefaultConfiguration(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// context derives the per-compilation parse context from cfg and the
// compiler overrides.
func (c *Compiler) context(cfg *parsing.Configuration) *parsing.Context {
	cfg = cfg.Clone()
	if c.workers > 0 {
		cfg.Workers = c.workers
	}
	if c.parallel != nil {
		cfg.Parallelization = *c.parallel
	}
	cfg.Workers = ResolvePoolSize(cfg.Workers)
	return parsing.NewContext(cfg, c.logger, resource.NewCache())
}

// CompileDocument parses text as the document name.
func (c *Compiler) CompileDocument(ctx context.Context, name, text string) (*Document, error) {
	return c.parser.ParseDocument(ctx, name, text, c.context(c.cfg))
}

// CompileDossier loads dir/nmd.yaml and compiles every document it lists.
func (c *Compiler) CompileDossier(ctx context.Context, dir string) (*Dossier, error) {
	cfg, err := LoadDossierConfig(dir)
	if err != nil {
		return nil, err
	}
	return c.compile(ctx, dir, cfg, nil)
}

// CompileDossierConfig compiles the dossier in dir described by cfg, for
// callers that adjust the loaded configuration first.
func (c *Compiler) CompileDossierConfig(ctx context.Context, dir string, cfg *DossierConfig) (*Dossier, error) {
	return c.compile(ctx, dir, cfg, nil)
}

// ParseDocumentSubset compiles only the named documents of the dossier in
// dir, keeping dossier order. Names are file names without extension.
func (c *Compiler) ParseDocumentSubset(ctx context.Context, dir string, names []string) (*Dossier, error) {
	cfg, err := LoadDossierConfig(dir)
	if err != nil {
		return nil, err
	}
	return c.CompileDossierSubset(ctx, dir, cfg, names)
}

// CompileDossierSubset is ParseDocumentSubset with a caller-supplied
// dossier configuration.
func (c *Compiler) CompileDossierSubset(ctx context.Context, dir string, cfg *DossierConfig, names []string) (*Dossier, error) {
	if names == nil {
		names = []string{}
	}
	return c.compile(ctx, dir, cfg, names)
}

// compile builds the dossier. A nil names compiles every document.
func (c *Compiler) compile(ctx context.Context, dir string, cfg *DossierConfig, names []string) (*Dossier, error) {
	start := time.Now()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving dossier directory: %w", err)
	}

	entries, err := c.documentEntries(root, cfg)
	if err != nil {
		return nil, err
	}
	if names != nil {
		if entries, err = selectEntries(entries, names); err != nil {
			return nil, err
		}
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoDocuments, root)
	}
	sources, err := readSources(entries)
	if err != nil {
		return nil, err
	}

	pc := c.context(cfg.ParsingConfiguration(root))
	dossier, err := c.parser.ParseDossier(ctx, dossierName(root, cfg), sources, pc)
	if err != nil {
		return nil, err
	}

	if cfg.TOC.Enabled {
		dossier.TOC = toc.Build(dossier.Documents, toc.Options{
			Title:    cfg.TOC.Title,
			MinDepth: cfg.TOC.MinDepth,
			MaxDepth: cfg.TOC.MaxDepth,
			Numbered: cfg.TOC.Numbered,
		})
	}
	if len(pc.Config.Bibliography) > 0 {
		dossier.Bibliography = bibliography.Build(pc.Config.Bibliography, cfg.Bibliography.Title)
	}

	c.logger.DossierCompiled(dossier.Name, len(dossier.Documents), time.Since(start))
	return dossier, nil
}

// dossierName is the configured name, else the directory name.
func dossierName(root string, cfg *DossierConfig) string {
	if cfg.Name != "" {
		return cfg.Name
	}
	return filepath.Base(root)
}
