// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2/styles"

	"github.com/alnah/go-nmd/internal/config"
	"github.com/alnah/go-nmd/internal/fileutil"
	"github.com/alnah/go-nmd/internal/parsing"
	"github.com/alnah/go-nmd/internal/resource"
)

// ForError returns the hint matching the first recognized sentinel in err.
// root is the dossier directory, used to point at the images folder.
func ForError(err error, root string) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, parsing.ErrInvalidSource):
		return ForImageSource(root)
	case errors.Is(err, parsing.ErrListItem):
		return format("indent nested items by 4 spaces, or set compilation.strictListCheck: false")
	case errors.Is(err, parsing.ErrFocusBlock):
		return format("start every quote line with '>', or set compilation.strictFocusBlockCheck: false")
	case errors.Is(err, parsing.ErrReferenceNotFound):
		return format("add the key under references or bibliography.records in " + config.FileBaseName + ".yaml")
	case errors.Is(err, config.ErrConfigNotFound):
		return ForConfigNotFound(config.SearchPaths(root))
	}
	return ""
}

// ForImageSource returns hints for unresolved image sources.
// Suggests the images folder, creating it when missing.
func ForImageSource(root string) string {
	dir := filepath.Join(root, resource.ImagesDir)
	if root == "" || !fileutil.DirExists(dir) {
		return format("place images next to the dossier or in " + dir + ", or set compilation.strictImageSrcCheck: false")
	}
	return format("check the file name under " + dir + ", or set compilation.strictImageSrcCheck: false")
}

// ForConfigNotFound returns hints for dossier file not found errors.
// Suggests `nmd init` and, when available, the shared user config path.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "run 'nmd init' in the dossier directory or use --config /path/to/nmd.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(filepath.ToSlash(p), "/go-nmd/") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForCodeStyle returns a hint listing chroma styles when name is unknown,
// or nothing when the style exists.
func ForCodeStyle(name string) string {
	if _, ok := styles.Registry[name]; ok || name == "" {
		return ""
	}
	return format("unknown code style " + name + "; available: " + strings.Join(styles.Names(), ", "))
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}
