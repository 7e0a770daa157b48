package rule

import (
	"strconv"

	"github.com/alnah/go-nmd/internal/ident"
	"github.com/alnah/go-nmd/internal/outcome"
)

// Heading renders chapter headings. Unlike other rules it receives the
// already resolved level instead of raw content.
type Heading struct{}

// NewHeading returns the heading rule.
func NewHeading() *Heading {
	return &Heading{}
}

// Render renders a heading of level titled title. The title stays mutable.
func (h *Heading) Render(level int, title string) *outcome.Outcome {
	n := strconv.Itoa(level)
	out := outcome.New()
	out.AddFixed(`<h` + n + ` class="heading-` + n + `"` + idAttr(ident.Heading(title)) + `>`)
	out.AddNested(title)
	out.AddFixed(`</h` + n + `>`)
	return out
}
