package nmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-nmd/internal/fileutil"
	"github.com/alnah/go-nmd/internal/parser"
)

// documentEntry is one document of a dossier before it is read.
type documentEntry struct {
	name string
	path string
}

// documentEntries resolves the configured documents against root, or
// discovers the sources of root when none are listed.
func (c *Compiler) documentEntries(root string, cfg *DossierConfig) ([]documentEntry, error) {
	paths := cfg.Documents
	if len(paths) == 0 {
		var err error
		if paths, err = discoverSources(root); err != nil {
			return nil, err
		}
		c.logger.DocumentsDiscovered(root, paths)
	}

	seen := make(map[string]string, len(paths))
	entries := make([]documentEntry, 0, len(paths))
	for _, p := range paths {
		name := fileutil.DocumentName(p)
		if prev, ok := seen[name]; ok {
			return nil, fmt.Errorf("%w: %q from %s and %s", ErrDuplicateDocument, name, prev, p)
		}
		seen[name] = p

		full := p
		if !filepath.IsAbs(p) {
			full = filepath.Join(root, p)
		}
		entries = append(entries, documentEntry{name: name, path: full})
	}
	return entries, nil
}

// discoverSources lists the NMD sources directly under dir, sorted by
// file name.
func discoverSources(dir string) ([]string, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("discovering documents: %w", err)
	}
	var paths []string
	for _, f := range files {
		if f.IsDir() || strings.HasPrefix(f.Name(), ".") || !fileutil.HasSourceExtension(f.Name()) {
			continue
		}
		paths = append(paths, f.Name())
	}
	return paths, nil
}

// selectEntries keeps the entries named in names, in dossier order.
func selectEntries(entries []documentEntry, names []string) ([]documentEntry, error) {
	wanted := make(map[string]bool, len(names))
	for _, n := range names {
		wanted[n] = true
	}

	var out []documentEntry
	for _, e := range entries {
		if wanted[e.name] {
			out = append(out, e)
			delete(wanted, e.name)
		}
	}
	for _, n := range names {
		if wanted[n] {
			return nil, fmt.Errorf("%w: %q", ErrUnknownDocument, n)
		}
	}
	return out, nil
}

func readSources(entries []documentEntry) ([]parser.Source, error) {
	sources := make([]parser.Source, len(entries))
	for i, e := range entries {
		data, err := os.ReadFile(e.path) // #nosec G304 -- paths come from the dossier file
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrReadDocument, e.path, err)
		}
		sources[i] = parser.Source{Name: e.name, Text: string(data)}
	}
	return sources, nil
}
