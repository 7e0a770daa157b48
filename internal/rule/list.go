package rule

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/alnah/go-nmd/internal/modifier"
	"github.com/alnah/go-nmd/internal/outcome"
	"github.com/alnah/go-nmd/internal/parsing"
)

// Indentation geometry of list items.
const (
	// TabWidth is the number of spaces a tab counts for.
	TabWidth = 4
	// IndentWidth is the number of spaces per indentation level.
	IndentWidth = 4
	// indentEm is the rendered padding per level, in em.
	indentEm = 1.5
)

// ordinalToken matches bullets rendered verbatim when no record maps them.
var ordinalToken = regexp.MustCompile(`^(?:\d+\.|[a-zA-Z]\))$`)

// List renders bullet blocks. Each line is one item; its indentation level
// and bullet token select the output glyph from the configured bullet
// table.
type List struct {
	block *regexp.Regexp
	item  *regexp.Regexp
}

// NewList returns the list rule.
func NewList() *List {
	return &List{
		block: compile(`\A` + modifier.ListBulletPattern),
		item:  compile(`\A` + modifier.ListBulletPattern + `\z`),
	}
}

// IsMatch reports whether content starts with a list item.
func (l *List) IsMatch(content string) bool {
	return l.block.MatchString(content)
}

type listItem struct {
	level   int
	bullet  string
	content string
}

// Parse renders content as a list. Lines that are not recognized items
// fail the block in strict mode and are dropped with a warning otherwise.
func (l *List) Parse(content string, pc *parsing.Context) (*outcome.Outcome, error) {
	var (
		items   []listItem
		dropped []string
		lines   int
	)

	for _, line := range strings.Split(content, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines++

		item, ok := l.parseItem(line, pc.Config.Bullets)
		if !ok {
			dropped = append(dropped, line)
			continue
		}
		items = append(items, item)
	}

	if len(items) != lines {
		if pc.Config.StrictListCheck {
			return nil, fmt.Errorf("%w: %d of %d lines are list items, first offending line %q",
				parsing.ErrListItem, len(items), lines, dropped[0])
		}
		pc.Logger.ListItemsDropped(pc.Location.Document, len(items), lines, dropped)
	}

	out := outcome.New().AddFixed(`<ul class="list">`)
	for _, it := range items {
		out.AddFixed(`<li class="list-item">`)
		out.AddFixed(`<span class="list-item-indentation" style="padding-left: ` +
			strconv.FormatFloat(float64(it.level)*indentEm, 'f', -1, 64) + `em"></span>`)
		out.AddFixed(`<span class="list-item-bullet">` + it.bullet + `</span>`)
		out.AddFixed(`<span class="list-item-content">`)
		out.AddNested(it.content)
		out.AddFixed(`</span></li>`)
	}
	out.AddFixed(`</ul>`)
	return out, nil
}

// parseItem splits one line into level, bullet and content.
func (l *List) parseItem(line string, bullets []parsing.BulletRecord) (listItem, bool) {
	m := l.item.FindStringSubmatch(line)
	if m == nil {
		return listItem{}, false
	}
	level := IndentationLevel(m[1])
	bullet, ok := Bullet(m[2], level, bullets)
	if !ok {
		return listItem{}, false
	}
	return listItem{level: level, bullet: bullet, content: m[3]}, true
}

// IndentationLevel counts whole indentation units in a leading-whitespace
// string, tabs counting as TabWidth spaces.
func IndentationLevel(indent string) int {
	spaces := strings.ReplaceAll(indent, "\t", strings.Repeat(" ", TabWidth))
	return len(spaces) / IndentWidth
}

// Bullet maps a source token at level to its output. The first matching
// record wins; ordinal tokens ("1.", "a)") without a record render as is.
func Bullet(token string, level int, bullets []parsing.BulletRecord) (string, bool) {
	for _, r := range bullets {
		if r.Matches(token, level) {
			return r.To, true
		}
	}
	if ordinalToken.MatchString(token) {
		return attr(token), true
	}
	return "", false
}

// Compile-time interface check.
var _ Rule = (*List)(nil)
