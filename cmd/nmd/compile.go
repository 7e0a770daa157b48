package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	nmd "github.com/alnah/go-nmd"
	"github.com/alnah/go-nmd/internal/config"
	"github.com/alnah/go-nmd/internal/hints"
	"github.com/alnah/go-nmd/internal/ident"
	"github.com/alnah/go-nmd/internal/logging"
	"github.com/alnah/go-nmd/internal/rule"
)

// Sentinel errors for CLI operations.
var (
	ErrWriteOutput        = errors.New("failed to write output")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
	ErrTooManyArgs        = errors.New("too many arguments")
	ErrConflictingFlags   = errors.New("conflicting flags")
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// stdoutPath selects standard output as the HTML destination.
const stdoutPath = "-"

// runCompile compiles the dossier named by args (default: current
// directory) and writes its HTML.
func runCompile(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseCompileFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if err := validateCompileFlags(flags, positional); err != nil {
		return err
	}

	env.SetMaxProcs(flags.common.verbose, env.Stderr)
	warnUnknownEnvVars(env.Stderr)

	dir := "."
	if len(positional) == 1 {
		dir = positional[0]
	}

	envCfg := loadEnvConfig()
	cfg, err := loadDossierConfig(dir, flags.common.config, envCfg.ConfigPath)
	if err != nil {
		return fmt.Errorf("loading dossier: %w%s", err, hints.ForError(err, dir))
	}
	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)

	logger := newLogger(flags.common, env)
	if hint := hints.ForCodeStyle(cfg.Compilation.CodeStyle); hint != "" {
		logger.Warn("code style not found, using fallback" + hint)
	}

	start := env.Now()
	compiler := nmd.NewCompiler(nmd.WithLogger(logger.Logger))
	var dossier *nmd.Dossier
	if len(flags.only) > 0 {
		dossier, err = compiler.CompileDossierSubset(ctx, dir, cfg, flags.only)
	} else {
		dossier, err = compiler.CompileDossierConfig(ctx, dir, cfg)
	}
	if err != nil {
		return fmt.Errorf("compiling %s: %w%s", dir, err, hints.ForError(err, dir))
	}

	out := outputPath(dir, cfg, dossier.Name)
	if err := writeOutput(out, []byte(dossier.HTML()), env); err != nil {
		return err
	}
	if flags.output.codeCSS != "" {
		css, err := rule.CodeStyleCSS(cfg.ParsingConfiguration(dir).CodeStyle)
		if err != nil {
			return err
		}
		if err := writeOutput(flags.output.codeCSS, []byte(css), env); err != nil {
			return err
		}
	}

	if !flags.common.quiet && out != stdoutPath {
		fmt.Fprintf(env.Stdout, "compiled %s: %d document(s) -> %s (%s)\n",
			dossier.Name, len(dossier.Documents), out, env.Now().Sub(start).Round(time.Millisecond))
	}
	return nil
}

func validateCompileFlags(flags *compileFlags, positional []string) error {
	if len(positional) > 1 {
		return fmt.Errorf("%w: expected at most one dossier directory, got %d", ErrTooManyArgs, len(positional))
	}
	if flags.compilation.workers < 0 {
		return fmt.Errorf("%w: %d (must be >= 0)", ErrInvalidWorkerCount, flags.compilation.workers)
	}
	if flags.compilation.parallel && flags.compilation.noParallel {
		return fmt.Errorf("%w: --parallel and --no-parallel", ErrConflictingFlags)
	}
	if flags.toc.enabled && flags.toc.disabled {
		return fmt.Errorf("%w: --toc and --no-toc", ErrConflictingFlags)
	}
	return nil
}

// loadDossierConfig loads the explicit config path if given (flag, then
// environment), else searches dir.
func loadDossierConfig(dir, flagPath, envPath string) (*config.Config, error) {
	switch {
	case flagPath != "":
		return config.LoadConfig(flagPath)
	case envPath != "":
		return config.LoadConfig(envPath)
	}
	cfg, _, err := config.LoadDossier(dir)
	return cfg, err
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(flags *compileFlags, cfg *config.Config) {
	cf, cc := flags.compilation, &cfg.Compilation

	if cf.workers > 0 {
		cc.Workers = cf.workers
	}
	if cf.parallel {
		cc.Parallelization = true
	}
	if cf.noParallel {
		cc.Parallelization = false
	}
	if cf.fastDraft {
		cc.FastDraft = true
	}
	if cf.lenient {
		no := false
		cc.StrictImageSrcCheck = &no
		cc.StrictListCheck = &no
		cc.StrictFocusBlockCheck = &no
	}
	if cf.strictRefs {
		cc.StrictReferenceCheck = true
	}
	if cf.compress {
		cc.CompressEmbeddedImage = true
	}
	if cf.noEmbed {
		no := false
		cc.EmbedLocalImage = &no
	}
	if cf.embedRemote {
		cc.EmbedRemoteImage = true
	}
	if cf.justify != "" {
		cc.MultiImageJustify = cf.justify
	}
	if cf.codeStyle != "" {
		cc.CodeStyle = cf.codeStyle
	}

	tf := flags.toc
	if tf.enabled {
		cfg.TOC.Enabled = true
	}
	if tf.disabled {
		cfg.TOC.Enabled = false
	}
	if tf.title != "" {
		cfg.TOC.Title = tf.title
	}
	if tf.minDepth != 0 {
		cfg.TOC.MinDepth = tf.minDepth
	}
	if tf.maxDepth != 0 {
		cfg.TOC.MaxDepth = tf.maxDepth
	}
	if tf.numbered {
		cfg.TOC.Numbered = true
	}

	if flags.output.path != "" {
		cfg.Output.Path = flags.output.path
	}
}

// newLogger maps -q and -v onto log levels.
func newLogger(f commonFlags, env *Environment) *logging.Logger {
	switch {
	case f.verbose:
		return logging.NewWithLevel(env.Stderr, log.DebugLevel)
	case f.quiet:
		return logging.NewWithLevel(env.Stderr, log.ErrorLevel)
	}
	return logging.New(env.Stderr)
}

// outputPath resolves where the HTML goes: the configured path relative
// to the dossier, else <dossier>/<slug of name>.html.
func outputPath(dir string, cfg *config.Config, name string) string {
	p := cfg.Output.Path
	switch {
	case p == stdoutPath:
		return p
	case p == "":
		slug := ident.Slug(name)
		if slug == "" {
			slug = "dossier"
		}
		return filepath.Join(dir, slug+".html")
	case filepath.IsAbs(p):
		return p
	}
	return filepath.Join(dir, p)
}

// writeOutput writes data to path, creating parent directories, or to
// stdout for "-".
func writeOutput(path string, data []byte, env *Environment) error {
	if path == stdoutPath {
		if _, err := env.Stdout.Write(data); err != nil {
			return fmt.Errorf("%w: stdout: %w", ErrWriteOutput, err)
		}
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), dirPermissions); err != nil {
		return fmt.Errorf("%w: %w%s", ErrWriteOutput, err, hints.ForOutputDirectory())
	}
	if err := os.WriteFile(path, data, filePermissions); err != nil { // #nosec G306 -- output is meant to be shared
		return fmt.Errorf("%w: %s: %w", ErrWriteOutput, path, err)
	}
	return nil
}
