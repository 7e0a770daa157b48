// Package resource resolves image sources referenced by documents and
// turns local files into embeddable data URIs.
//
// Resolution order for a source string:
//
//  1. http(s) URL or data URI: remote, passed through untouched
//  2. absolute path that exists
//  3. path relative to the input root
//  4. path under <root>/assets/images
//
// Embedded bytes are cached by content hash so an image referenced many
// times in a dossier is read and encoded once per compilation.
package resource

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/alnah/go-nmd/internal/fileutil"
)

// Sentinel errors for resource operations.
var (
	// ErrNotFound indicates no candidate path for a source exists.
	ErrNotFound = errors.New("image source not found")

	// ErrRead indicates a resolved image could not be read.
	ErrRead = errors.New("failed to read image")

	// ErrEmptySource indicates an empty source string.
	ErrEmptySource = errors.New("empty image source")
)

// ImagesDir is the conventional image directory under the input root.
var ImagesDir = filepath.Join("assets", "images")

// Kind distinguishes remote from local sources.
type Kind int

const (
	// Local sources are files on disk.
	Local Kind = iota
	// Remote sources are URLs or inline data URIs.
	Remote
)

// Source is a resolved image source.
type Source struct {
	Kind Kind
	// Raw is the source string as written in the document.
	Raw string
	// Path is the absolute file path of a local source.
	Path string
}

// Resolve finds the file or URL an image source designates.
// Returns ErrNotFound (listing the tried paths) when no candidate exists.
func Resolve(src, root string) (Source, error) {
	src = strings.TrimSpace(src)
	if src == "" {
		return Source{}, ErrEmptySource
	}

	if fileutil.IsURL(src) || fileutil.IsDataURI(src) {
		return Source{Kind: Remote, Raw: src}, nil
	}

	candidates := candidatePaths(src, root)
	for _, p := range candidates {
		if fileutil.FileExists(p) {
			abs, err := filepath.Abs(p)
			if err != nil {
				abs = p
			}
			return Source{Kind: Local, Raw: src, Path: abs}, nil
		}
	}

	return Source{}, fmt.Errorf("%w: %s (tried %s)", ErrNotFound, src, strings.Join(candidates, ", "))
}

// candidatePaths lists where a local source may live, in lookup order.
func candidatePaths(src, root string) []string {
	if filepath.IsAbs(src) {
		return []string{src}
	}
	return []string{
		filepath.Join(root, src),
		filepath.Join(root, ImagesDir, src),
	}
}
