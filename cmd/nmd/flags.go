package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// ErrInvalidFlags wraps flag parsing failures.
var ErrInvalidFlags = errors.New("invalid flags")

// parseError wraps a parse failure, leaving flag.ErrHelp recognizable.
func parseError(err error) error {
	if errors.Is(err, flag.ErrHelp) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrInvalidFlags, err)
}

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// compilationFlags override the compilation section of nmd.yaml.
type compilationFlags struct {
	workers     int
	parallel    bool
	noParallel  bool
	fastDraft   bool
	lenient     bool
	strictRefs  bool
	compress    bool
	noEmbed     bool
	embedRemote bool
	justify     string
	codeStyle   string
}

// tocFlags holds table of contents flags.
type tocFlags struct {
	enabled  bool
	title    string
	minDepth int
	maxDepth int
	numbered bool
	disabled bool
}

// outputFlags holds output destination flags.
type outputFlags struct {
	path    string // "-" writes to stdout
	codeCSS string // Write the code highlighting stylesheet here
}

// compileFlags holds all flags for the compile command.
type compileFlags struct {
	common      commonFlags
	compilation compilationFlags
	toc         tocFlags
	output      outputFlags
	only        []string
}

// initFlags holds flags for the init command.
type initFlags struct {
	common commonFlags
	name   string
	force  bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "dossier file path (default: <dir>/nmd.yaml)")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug logs and timing")
}

// addCompilationFlags adds compilation override flags to a FlagSet.
func addCompilationFlags(fs *flag.FlagSet, f *compilationFlags) {
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers per fan-out (0 = auto)")
	fs.BoolVarP(&f.parallel, "parallel", "p", false, "parse documents, chapters and paragraphs in parallel")
	fs.BoolVar(&f.noParallel, "no-parallel", false, "parse sequentially")
	fs.BoolVar(&f.fastDraft, "fast-draft", false, "skip highlighting and image loading")
	fs.BoolVar(&f.lenient, "lenient", false, "log malformed images, lists and quotes instead of failing")
	fs.BoolVar(&f.strictRefs, "strict-references", false, "fail on unknown references and citations")
	fs.BoolVar(&f.compress, "compress-images", false, "recompress embedded images losslessly")
	fs.BoolVar(&f.noEmbed, "no-embed", false, "link local images instead of embedding them")
	fs.BoolVar(&f.embedRemote, "embed-remote", false, "request embedding of remote images")
	fs.StringVar(&f.justify, "image-justify", "", "multi-image layout: flex-start, center, space-around, ...")
	fs.StringVar(&f.codeStyle, "code-style", "", "chroma style for code blocks")
}

// addTOCFlags adds TOC flags to a FlagSet.
func addTOCFlags(fs *flag.FlagSet, f *tocFlags) {
	fs.BoolVar(&f.enabled, "toc", false, "generate a table of contents")
	fs.StringVar(&f.title, "toc-title", "", "table of contents heading")
	fs.IntVar(&f.minDepth, "toc-min-depth", 0, "min heading depth for TOC (1-6, default: 1)")
	fs.IntVar(&f.maxDepth, "toc-max-depth", 0, "max heading depth for TOC (1-6, default: 3)")
	fs.BoolVar(&f.numbered, "toc-numbered", false, "number TOC entries")
	fs.BoolVar(&f.disabled, "no-toc", false, "disable table of contents")
}

// addOutputFlags adds output flags to a FlagSet.
func addOutputFlags(fs *flag.FlagSet, f *outputFlags) {
	fs.StringVarP(&f.path, "output", "o", "", "output HTML file, - for stdout")
	fs.StringVar(&f.codeCSS, "code-css", "", "also write the code highlighting stylesheet to this file")
}

// newCompileFlagSet builds the compile FlagSet bound to f.
func newCompileFlagSet(f *compileFlags, usage io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet("compile", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	addCommonFlags(fs, &f.common)
	addCompilationFlags(fs, &f.compilation)
	addTOCFlags(fs, &f.toc)
	addOutputFlags(fs, &f.output)
	fs.StringSliceVar(&f.only, "only", nil, "compile only these documents (names without extension)")

	fs.Usage = func() { printCompileUsage(usage) }
	return fs
}

// parseCompileFlags parses compile command flags and returns positional args.
func parseCompileFlags(args []string, usage io.Writer) (*compileFlags, []string, error) {
	f := &compileFlags{}
	fs := newCompileFlagSet(f, usage)
	if err := fs.Parse(args); err != nil {
		return nil, nil, parseError(err)
	}
	return f, fs.Args(), nil
}

// parseInitFlags parses init command flags and returns positional args.
func parseInitFlags(args []string, usage io.Writer) (*initFlags, []string, error) {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	f := &initFlags{}

	addCommonFlags(fs, &f.common)
	fs.StringVar(&f.name, "name", "", "dossier name (default: directory name)")
	fs.BoolVarP(&f.force, "force", "f", false, "overwrite an existing nmd.yaml")

	fs.Usage = func() { printInitUsage(usage) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, parseError(err)
	}
	return f, fs.Args(), nil
}
