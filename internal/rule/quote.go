package rule

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/alnah/go-nmd/internal/outcome"
	"github.com/alnah/go-nmd/internal/parsing"
)

// DefaultQuoteType is the type of a quote without a "[!type]" line.
const DefaultQuoteType = "quote"

var quoteTypeLine = regexp.MustCompile(`^>\s*\[!([\w\-]+)\]\s*$`)

// ExtendedQuote renders "> ..." blocks, optionally typed by a first
// "> [!type]" line, as a focus block.
type ExtendedQuote struct {
	re *regexp.Regexp
}

// NewExtendedQuote returns the extended quote rule.
func NewExtendedQuote() *ExtendedQuote {
	return &ExtendedQuote{re: compile(`\A>`)}
}

// IsMatch reports whether content starts with a quote marker.
func (q *ExtendedQuote) IsMatch(content string) bool {
	return q.re.MatchString(content)
}

// Parse renders the quote. Lines without the marker fail the block in
// strict mode and are dropped with a warning otherwise.
func (q *ExtendedQuote) Parse(content string, pc *parsing.Context) (*outcome.Outcome, error) {
	lines := strings.Split(content, "\n")
	kind := DefaultQuoteType

	if m := quoteTypeLine.FindStringSubmatch(lines[0]); m != nil {
		kind = strings.ToLower(m[1])
		lines = lines[1:]
	}

	body := make([]string, 0, len(lines))
	for _, line := range lines {
		if !strings.HasPrefix(line, ">") {
			if strings.TrimSpace(line) == "" {
				continue
			}
			if pc.Config.StrictFocusBlockCheck {
				return nil, fmt.Errorf("%w: quote line without '>': %q", parsing.ErrFocusBlock, line)
			}
			pc.Logger.QuoteLineDropped(pc.Location.Document, line)
			continue
		}
		text := strings.TrimSpace(strings.TrimPrefix(line, ">"))
		if text == "" {
			text = lineBreak
		}
		body = append(body, text)
	}

	class := "focus-quote-block-" + attr(kind)
	out := outcome.New()
	out.AddFixed(`<div class="focus-quote-block ` + class + `">`)
	out.AddFixed(`<div class="focus-quote-block-title ` + class + `-title"></div>`)
	out.AddFixed(`<div class="focus-quote-block-description ` + class + `-description">`)
	out.AddNested(strings.Join(body, "\n"))
	out.AddFixed(`</div></div>`)
	return out, nil
}

// Compile-time interface check.
var _ Rule = (*ExtendedQuote)(nil)
