package rule

import (
	"regexp"
	"strings"

	"github.com/alnah/go-nmd/internal/outcome"
	"github.com/alnah/go-nmd/internal/parsing"
)

// Alignment of a table column or cell.
type Alignment int

const (
	AlignNone Alignment = iota
	AlignLeft
	AlignCenter
	AlignRight
)

// class returns the CSS classes of a cell with this alignment.
func (a Alignment) class() string {
	switch a {
	case AlignLeft:
		return "table-cell table-left-cell"
	case AlignCenter:
		return "table-cell table-center-cell"
	case AlignRight:
		return "table-cell table-right-cell"
	}
	return "table-cell"
}

var (
	alignmentCell = regexp.MustCompile(`^\s*(:?)-+(:?)\s*$`)
	dashOnly      = regexp.MustCompile(`^\s*-+\s*$`)
	tableMetadata = regexp.MustCompile(`^\[([^\]]*)\](?:#([\w\-]+))?(?:\{\{([^}]*)\}\})?\s*$`)
)

// Table renders pipe tables. Recognition is heuristic:
//
//   - a "[caption]#id{{style}}" line, first or last, supplies metadata
//   - every line starting with "|" is a row
//   - an all-alignment row right after the first row turns it into the header
//   - a single dash-only cell in the second-to-last row makes the last row the footer
type Table struct {
	re *regexp.Regexp
}

// NewTable returns the table rule.
func NewTable() *Table {
	return &Table{re: compile(`\A(?:\[[^\n]*\n)?\|`)}
}

// IsMatch reports whether content starts with a row, optionally after a
// metadata line.
func (t *Table) IsMatch(content string) bool {
	return t.re.MatchString(content)
}

type tableCell struct {
	content string
	align   Alignment
}

type tableShape struct {
	caption string
	id      string
	style   string
	header  []tableCell
	rows    [][]tableCell
	footer  []tableCell
	aligns  []Alignment
}

// Parse renders content as a table. Cells stay mutable.
func (t *Table) Parse(content string, pc *parsing.Context) (*outcome.Outcome, error) {
	shape := scanTable(content)

	out := outcome.New()
	out.AddFixed(`<table class="table"` + idAttr(shape.id) + styleAttr(shape.style) + `>`)

	if shape.caption != "" {
		out.AddFixed(`<caption class="table-caption">`)
		out.AddNested(shape.caption)
		out.AddFixed(`</caption>`)
	}

	if shape.header != nil {
		out.AddFixed(`<thead>`)
		renderRow(out, shape.header, shape.aligns, "th")
		out.AddFixed(`</thead>`)
	}

	out.AddFixed(`<tbody>`)
	for _, row := range shape.rows {
		renderRow(out, row, shape.aligns, "td")
	}
	out.AddFixed(`</tbody>`)

	if shape.footer != nil {
		out.AddFixed(`<tfoot>`)
		renderRow(out, shape.footer, shape.aligns, "td")
		out.AddFixed(`</tfoot>`)
	}

	out.AddFixed(`</table>`)
	return out, nil
}

// scanTable collects rows, header, footer and metadata from content.
func scanTable(content string) tableShape {
	var shape tableShape

	lines := nonBlankLines(content)
	for i, line := range lines {
		if !strings.HasPrefix(line, "|") {
			if i == 0 || i == len(lines)-1 {
				if m := tableMetadata.FindStringSubmatch(line); m != nil {
					shape.caption, shape.id, shape.style = m[1], m[2], m[3]
				}
			}
			continue
		}

		cells := splitRow(line)
		if aligns, ok := alignmentRow(cells); ok && shape.header == nil && len(shape.rows) <= 1 {
			shape.aligns = aligns
			if len(shape.rows) == 1 {
				shape.header = shape.rows[0]
				shape.rows = shape.rows[:0]
			}
			continue
		}
		shape.rows = append(shape.rows, cells)
	}

	if n := len(shape.rows); n >= 2 {
		sep := shape.rows[n-2]
		if len(sep) == 1 && dashOnly.MatchString(sep[0].content) {
			shape.footer = shape.rows[n-1]
			shape.rows = shape.rows[:n-2]
		}
	}

	return shape
}

func nonBlankLines(content string) []string {
	var lines []string
	for _, line := range strings.Split(content, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return lines
}

// splitRow splits "| a | b |" into cells, honoring "\|" escapes.
// Per-cell ":x", "x:" and ":x:" markers set the cell's own alignment.
func splitRow(line string) []tableCell {
	line = strings.TrimPrefix(line, "|")
	if strings.HasSuffix(line, "|") && !strings.HasSuffix(line, `\|`) {
		line = strings.TrimSuffix(line, "|")
	}

	var (
		cells []tableCell
		cur   strings.Builder
	)
	for i := 0; i < len(line); i++ {
		switch {
		case line[i] == '\\' && i+1 < len(line) && line[i+1] == '|':
			cur.WriteByte('|')
			i++
		case line[i] == '|':
			cells = append(cells, newCell(cur.String()))
			cur.Reset()
		default:
			cur.WriteByte(line[i])
		}
	}
	return append(cells, newCell(cur.String()))
}

func newCell(raw string) tableCell {
	text := strings.TrimSpace(raw)
	if len(text) < 2 || dashOnly.MatchString(text) {
		return tableCell{content: text}
	}
	left := strings.HasPrefix(text, ":")
	right := strings.HasSuffix(text, ":")
	switch {
	case left && right && len(text) > 2:
		return tableCell{content: strings.TrimSpace(text[1 : len(text)-1]), align: AlignCenter}
	case left && !right:
		return tableCell{content: strings.TrimSpace(text[1:]), align: AlignLeft}
	case right && !left:
		return tableCell{content: strings.TrimSpace(text[:len(text)-1]), align: AlignRight}
	}
	return tableCell{content: text}
}

// alignmentRow reports whether every cell is a dash-based marker and
// returns the column alignments.
func alignmentRow(cells []tableCell) ([]Alignment, bool) {
	aligns := make([]Alignment, len(cells))
	for i, c := range cells {
		raw := c.content
		switch c.align {
		case AlignLeft:
			raw = ":" + raw
		case AlignRight:
			raw += ":"
		case AlignCenter:
			raw = ":" + raw + ":"
		}
		m := alignmentCell.FindStringSubmatch(raw)
		if m == nil {
			return nil, false
		}
		switch {
		case m[1] != "" && m[2] != "":
			aligns[i] = AlignCenter
		case m[1] != "":
			aligns[i] = AlignLeft
		case m[2] != "":
			aligns[i] = AlignRight
		}
	}
	return aligns, len(cells) > 0
}

func renderRow(out *outcome.Outcome, row []tableCell, aligns []Alignment, tag string) {
	out.AddFixed(`<tr class="table-row">`)
	for i, c := range row {
		align := c.align
		if align == AlignNone && i < len(aligns) {
			align = aligns[i]
		}
		out.AddFixed(`<` + tag + ` class="` + align.class() + `">`)
		out.AddNested(c.content)
		out.AddFixed(`</` + tag + `>`)
	}
	out.AddFixed(`</tr>`)
}

// Compile-time interface check.
var _ Rule = (*Table)(nil)
