// Package splitter segments NMD text into chapters and paragraphs.
//
// Each modifier pattern is searched over a normalized buffer where every
// blank-line separator is one newline longer than written. A paragraph
// pattern is wrapped as
//
//	\n(BODY)\n\n
//
// so two consecutive blocks never compete for the same separator newline.
// A candidate is accepted only when its body starts a block (buffer start
// or right after a blank line) and does not overlap a span claimed by a
// modifier earlier in the catalog. Go's regexp has no lookaround, so both
// checks run on match offsets instead of inside the pattern.
package splitter

import (
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/alnah/go-nmd/internal/modifier"
)

// Block is one paragraph-granularity span.
type Block struct {
	Content    string
	ModifierID modifier.ID
}

// span is a candidate or accepted match in buffer offsets. body is the
// first capture group, groups holds the body's own captures.
type span struct {
	start, end int
	id         modifier.ID
	groups     []string
}

func (s span) overlaps(o span) bool {
	return s.start < o.end && o.start < s.end
}

// wrapped caches compiled wrapped patterns by wrapper and modifier.
var wrapped sync.Map // string -> *regexp.Regexp

func compileWrapped(prefix, pattern, suffix string) *regexp.Regexp {
	key := prefix + "\x00" + pattern + "\x00" + suffix
	if re, ok := wrapped.Load(key); ok {
		return re.(*regexp.Regexp)
	}
	re := regexp.MustCompile(prefix + `(` + pattern + `)` + suffix)
	wrapped.Store(key, re)
	return re
}

// leading is prepended to every buffer so a block at the very start
// looks like any block after a blank line.
const leading = "\n\n\n"

// normalize converts line endings, inflates blank-line separators and
// terminates the buffer with a blank line.
func normalize(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\n\n", "\n\n\n")
	return leading + text + "\n\n\n"
}

// denormalize reverses the separator inflation on an extracted span.
func denormalize(s string) string {
	return strings.ReplaceAll(s, "\n\n\n", "\n\n")
}

// blockStart reports whether offset begins a block in buf.
func blockStart(buf string, offset int) bool {
	return offset >= 2 && buf[offset-2:offset] == "\n\n"
}

// lineStart reports whether offset begins a line in buf.
func lineStart(buf string, offset int) bool {
	return offset >= 1 && buf[offset-1] == '\n'
}

// scan collects the accepted spans of mods over buf, in precedence order.
// claimed spans are taken before any modifier runs.
func scan(buf string, mods []modifier.Modifier, suffix string, atStart func(string, int) bool, claimed []span) []span {
	accepted := append([]span(nil), claimed...)

	for _, m := range mods {
		re := compileWrapped(`\n`, m.Pattern, suffix)
		pos := 0
		for pos < len(buf) {
			loc := re.FindStringSubmatchIndex(buf[pos:])
			if loc == nil {
				break
			}
			bodyStart, bodyEnd := pos+loc[2], pos+loc[3]
			candidate := span{start: bodyStart, end: bodyEnd, id: m.ID, groups: captures(buf, pos, loc)}

			if !atStart(buf, bodyStart) || overlapsAny(candidate, accepted) {
				pos = bodyStart
				continue
			}
			accepted = append(accepted, candidate)
			pos = pos + loc[1]
			// The terminating newline may open the next match.
			if pos > 0 && buf[pos-1] == '\n' {
				pos--
			}
		}
	}

	return accepted[len(claimed):]
}

// captures returns the groups nested in the wrapped body, group 0 being the
// body itself.
func captures(buf string, pos int, loc []int) []string {
	out := make([]string, 0, len(loc)/2-1)
	for i := 2; i+1 < len(loc); i += 2 {
		if loc[i] < 0 {
			out = append(out, "")
			continue
		}
		out = append(out, buf[pos+loc[i]:pos+loc[i+1]])
	}
	return out
}

func overlapsAny(s span, accepted []span) bool {
	for _, a := range accepted {
		if s.overlaps(a) {
			return true
		}
	}
	return false
}

func sortSpans(spans []span) {
	sort.Slice(spans, func(i, j int) bool { return spans[i].start < spans[j].start })
}

// Paragraphs splits text into blocks using mods in precedence order. Blocks
// that are only whitespace are dropped.
func Paragraphs(text string, mods []modifier.Modifier) []Block {
	buf := normalize(text)
	spans := scan(buf, mods, `\n\n`, blockStart, nil)
	sortSpans(spans)

	blocks := make([]Block, 0, len(spans))
	for _, s := range spans {
		content := strings.Trim(denormalize(buf[s.start:s.end]), "\n")
		if strings.TrimSpace(content) == "" {
			continue
		}
		blocks = append(blocks, Block{Content: content, ModifierID: s.id})
	}
	return blocks
}
