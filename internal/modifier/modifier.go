// Package modifier holds the static catalog of NMD markup constructs.
//
// A Modifier names a construct, carries the regular expression that
// recognizes it and declares which other modifiers may not fire inside the
// content it claims. The catalog is split by granularity:
//
//	Text       inline constructs (bold, links, inline code, ...)
//	Paragraph  block constructs (lists, tables, images, code blocks, ...)
//	Chapter    headings, one extended and one compact form per level
//
// Each slice is returned in compatibility order: constructs that could be
// mis-consumed by a looser pattern come first (e.g. "**" bold before "*"
// italic, a 6-marker heading before a 1-marker one).
package modifier

import (
	"fmt"
	"strconv"
	"strings"
)

// ID identifies a modifier across the catalog, the codex and the splitter.
type ID string

// Modifier describes one markup construct. Instances are immutable.
type Modifier struct {
	ID           ID
	Pattern      string
	Incompatible Set
}

// String returns the identifier.
func (m Modifier) String() string {
	return string(m.ID)
}

// Heading identifier prefixes. The level is appended: "heading-extended-3".
const (
	extendedHeadingPrefix = "heading-extended-"
	compactHeadingPrefix  = "heading-compact-"
)

// MaxHeadingLevel is the deepest heading NMD supports.
const MaxHeadingLevel = 6

// ExtendedHeading returns the "### Title" form for level.
func ExtendedHeading(level int) Modifier {
	return Modifier{
		ID:      ID(extendedHeadingPrefix + strconv.Itoa(level)),
		Pattern: fmt.Sprintf(`#{%d}[ \t]+([^\n]*)`, level) + headingTagsPattern,
	}
}

// CompactHeading returns the "#3 Title" form for level.
func CompactHeading(level int) Modifier {
	return Modifier{
		ID:      ID(compactHeadingPrefix + strconv.Itoa(level)),
		Pattern: fmt.Sprintf(`#%d[ \t]+([^\n]*)`, level) + headingTagsPattern,
	}
}

// headingTagsPattern captures "@key value" lines directly under a heading.
const headingTagsPattern = `((?:\n@[\w\-]+(?:[ \t]+[^\n]*)?)*)`

// HeadingKind tells how a heading's level is obtained.
type HeadingKind int

const (
	// HeadingAbsolute carries its own level.
	HeadingAbsolute HeadingKind = iota
	// HeadingDeeper is one level below the previous heading.
	HeadingDeeper
	// HeadingShallower is one level above the previous heading.
	HeadingShallower
	// HeadingSame repeats the previous heading level.
	HeadingSame
)

// HeadingLevel decodes a chapter modifier identifier. For absolute headings
// level is 1..6; relative headings return level 0 and the kind to apply.
func HeadingLevel(id ID) (level int, kind HeadingKind, ok bool) {
	s := string(id)
	switch id {
	case DeeperHeading:
		return 0, HeadingDeeper, true
	case ShallowerHeading:
		return 0, HeadingShallower, true
	case SameHeading:
		return 0, HeadingSame, true
	}
	for _, prefix := range []string{extendedHeadingPrefix, compactHeadingPrefix} {
		if rest, found := strings.CutPrefix(s, prefix); found {
			n, err := strconv.Atoi(rest)
			if err != nil || n < 1 || n > MaxHeadingLevel {
				return 0, HeadingAbsolute, false
			}
			return n, HeadingAbsolute, true
		}
	}
	return 0, HeadingAbsolute, false
}
