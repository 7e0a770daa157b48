package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-nmd/internal/config"
	"github.com/alnah/go-nmd/internal/fileutil"
	"github.com/alnah/go-nmd/internal/yamlutil"
)

// ErrConfigExists means init would overwrite a dossier file.
var ErrConfigExists = errors.New("dossier file already exists")

// runInit writes a starter nmd.yaml listing the sources of a directory.
func runInit(args []string, env *Environment) error {
	flags, positional, err := parseInitFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if len(positional) > 1 {
		return fmt.Errorf("%w: expected at most one directory, got %d", ErrTooManyArgs, len(positional))
	}

	dir := "."
	if len(positional) == 1 {
		dir = positional[0]
	}
	path := filepath.Join(dir, config.FileBaseName+".yaml")
	if flags.common.config != "" {
		path = flags.common.config
	}
	if fileutil.FileExists(path) && !flags.force {
		return fmt.Errorf("%w: %s (use --force to overwrite)", ErrConfigExists, path)
	}

	name := flags.name
	if name == "" {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return fmt.Errorf("resolving directory: %w", err)
		}
		name = filepath.Base(abs)
	}

	documents, err := listSources(dir)
	if err != nil {
		return err
	}
	data, err := yamlutil.Marshal(config.Template(name, documents))
	if err != nil {
		return err
	}
	if err := writeOutput(path, data, env); err != nil {
		return err
	}

	if !flags.common.quiet {
		fmt.Fprintf(env.Stdout, "created %s with %d document(s)\n", path, len(documents))
	}
	return nil
}

// listSources returns the NMD sources directly under dir, by file name.
func listSources(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", dir, err)
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") || !fileutil.HasSourceExtension(e.Name()) {
			continue
		}
		out = append(out, e.Name())
	}
	return out, nil
}
