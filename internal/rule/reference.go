package rule

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/alnah/go-nmd/internal/ident"
	"github.com/alnah/go-nmd/internal/modifier"
	"github.com/alnah/go-nmd/internal/parsing"
)

// referenceKey matches a link target written as a reference, "&key&".
var referenceKey = regexp.MustCompile(`^&([\w\-.#]+)&$`)

// unresolved applies the reference strictness policy to a missing key.
// It returns the literal to render in lenient mode.
func unresolved(literal, key string, pc *parsing.Context) (string, error) {
	if pc.Config.StrictReferenceCheck {
		return "", fmt.Errorf("%w: %q", parsing.ErrReferenceNotFound, key)
	}
	pc.Logger.ReferenceUnresolved(pc.Location.Document, key)
	return attr(literal), nil
}

// NewReference returns the "&key&" rule, resolved through the configured
// reference map.
func NewReference() *Replacement {
	m, _ := modifier.Find(modifier.Reference)
	return NewReplacement(m.Pattern, FixedFunc(func(m Match, pc *parsing.Context) (string, error) {
		key := m.Group(1)
		href, ok := pc.Config.References[key]
		if !ok {
			return unresolved(m.Group(0), key, pc)
		}
		return `<a class="reference" href="` + attr(href) + `">` + attr(key) + `</a>`, nil
	}))
}

// NewCite returns the "^[key]" rule, numbered by bibliography order and
// linking to the bibliography entry.
func NewCite() *Replacement {
	m, _ := modifier.Find(modifier.Cite)
	return NewReplacement(m.Pattern, FixedFunc(func(m Match, pc *parsing.Context) (string, error) {
		key := m.Group(1)
		n, _, ok := pc.Config.Bibliography.Lookup(key)
		if !ok {
			return unresolved(m.Group(0), key, pc)
		}
		return `<a class="cite" href="#` + attr(ident.BibliographyEntry(key)) + `">[` +
			strconv.Itoa(n) + `]</a>`, nil
	}))
}

// LinkHref resolves a link target. "&key&" targets go through the
// reference map; anything else is used as written.
func LinkHref(target string, pc *parsing.Context) (string, error) {
	m := referenceKey.FindStringSubmatch(target)
	if m == nil {
		return attr(target), nil
	}
	href, ok := pc.Config.References[m[1]]
	if !ok {
		return unresolved(target, m[1], pc)
	}
	return attr(href), nil
}
