package parsing

import (
	"github.com/alnah/go-nmd/internal/logging"
	"github.com/alnah/go-nmd/internal/resource"
)

// Location names where in a dossier a parse call runs. It is passed by
// value, so concurrent branches never share it.
type Location struct {
	Document string
	Chapter  string
}

// Context is what a rule receives besides the content it parses.
type Context struct {
	Config   *Configuration
	Location Location
	Logger   *logging.Logger
	Images   *resource.Cache
}

// NewContext builds a context with non-nil defaults for every field.
func NewContext(cfg *Configuration, logger *logging.Logger, images *resource.Cache) *Context {
	if cfg == nil {
		cfg = DefaultConfiguration()
	}
	if logger == nil {
		logger = logging.Discard()
	}
	if images == nil {
		images = resource.NewCache()
	}
	return &Context{Config: cfg, Logger: logger, Images: images}
}

// At returns a copy of c located at loc.
func (c *Context) At(loc Location) *Context {
	out := *c
	out.Location = loc
	return &out
}

// InDocument returns a copy of c located at the start of document.
func (c *Context) InDocument(document string) *Context {
	return c.At(Location{Document: document})
}

// InChapter returns a copy of c located in chapter of the current document.
func (c *Context) InChapter(chapter string) *Context {
	return c.At(Location{Document: c.Location.Document, Chapter: chapter})
}
