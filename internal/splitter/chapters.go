package splitter

import (
	"strings"

	"github.com/alnah/go-nmd/internal/modifier"
)

// Tag is one "@key value" line attached to a heading.
type Tag struct {
	Key   string
	Value string
}

// RawHeading is a heading found by the splitter, with its level resolved.
type RawHeading struct {
	ModifierID modifier.ID
	Level      int
	Title      string
	Tags       []Tag
}

// RawChapter is a heading and the blocks up to the next heading.
type RawChapter struct {
	Heading RawHeading
	Blocks  []Block
}

// Split is the chapter-granularity segmentation of a document.
type Split struct {
	// Preamble holds the blocks before the first heading.
	Preamble []Block
	Chapters []RawChapter
}

// Chapters splits text at headings, then splits every chapter body and the
// preamble into blocks with paragraphMods. Lines that look like headings
// inside verbatim blocks (code, math, comments) are not headings.
func Chapters(text string, paragraphMods []modifier.Modifier) Split {
	buf := normalize(text)
	verbatim := scan(buf, modifier.Verbatim(), `\n\n`, blockStart, nil)
	headings := scan(buf, modifier.Chapter(), `\n`, lineStart, verbatim)
	sortSpans(headings)

	var out Split
	if len(headings) == 0 {
		out.Preamble = Paragraphs(denormalize(buf), paragraphMods)
		return out
	}

	out.Preamble = Paragraphs(denormalize(buf[:headings[0].start]), paragraphMods)

	previous := 0
	out.Chapters = make([]RawChapter, 0, len(headings))
	for i, h := range headings {
		bodyEnd := len(buf)
		if i+1 < len(headings) {
			bodyEnd = headings[i+1].start
		}
		heading := rawHeading(h, previous)
		previous = heading.Level

		out.Chapters = append(out.Chapters, RawChapter{
			Heading: heading,
			Blocks:  Paragraphs(denormalize(buf[h.end:bodyEnd]), paragraphMods),
		})
	}
	return out
}

// rawHeading builds the heading of span h. previous is the level of the
// heading before it, 0 for the first one.
func rawHeading(h span, previous int) RawHeading {
	// groups[0] is the whole heading, [1] the title, [2] the tag lines.
	title, tagLines := "", ""
	if len(h.groups) > 1 {
		title = h.groups[1]
	}
	if len(h.groups) > 2 {
		tagLines = h.groups[2]
	}

	return RawHeading{
		ModifierID: h.id,
		Level:      ResolveLevel(h.id, previous),
		Title:      strings.TrimSpace(title),
		Tags:       parseTags(tagLines),
	}
}

// ResolveLevel returns the level of a heading of modifier id following a
// heading of level previous (0 when there is none). Relative levels are
// clamped to 1..MaxHeadingLevel.
func ResolveLevel(id modifier.ID, previous int) int {
	level, kind, ok := modifier.HeadingLevel(id)
	if !ok {
		return 1
	}
	switch kind {
	case modifier.HeadingDeeper:
		level = previous + 1
	case modifier.HeadingShallower:
		level = previous - 1
	case modifier.HeadingSame:
		level = previous
	}
	return min(max(level, 1), modifier.MaxHeadingLevel)
}

func parseTags(lines string) []Tag {
	var tags []Tag
	for _, line := range strings.Split(lines, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "@") {
			continue
		}
		key, value := line[1:], ""
		if i := strings.IndexAny(key, " \t"); i >= 0 {
			key, value = key[:i], strings.TrimSpace(key[i+1:])
		}
		tags = append(tags, Tag{Key: key, Value: value})
	}
	return tags
}
