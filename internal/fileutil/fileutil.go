// Package fileutil provides file and path utility functions.
package fileutil

import (
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// NMD source extensions, most common first.
var SourceExtensions = []string{".nmd", ".md"}

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// DirExists returns true if the path exists and is a directory.
func DirExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// IsURL returns true if s parses as an absolute http(s) URL with a host.
//
// Examples:
//   - "https://example.com/a.png" -> true
//   - "images/a.png" -> false
//   - "C:\images\a.png" -> false (scheme is not http)
//   - "//example.com/a.png" -> false (no scheme)
func IsURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// IsDataURI returns true for inline "data:" sources, which need no resolution.
func IsDataURI(s string) bool {
	return strings.HasPrefix(s, "data:")
}

// HasSourceExtension reports whether path names an NMD source file.
func HasSourceExtension(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, want := range SourceExtensions {
		if ext == want {
			return true
		}
	}
	return false
}

// DocumentName derives a document name from a file path: base name
// without extension.
func DocumentName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
