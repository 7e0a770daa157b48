package splitter

import (
	"reflect"
	"testing"

	"github.com/alnah/go-nmd/internal/modifier"
)

// ---------------------------------------------------------------------------
// Paragraphs
// ---------------------------------------------------------------------------

func TestParagraphs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want []Block
	}{
		{
			name: "two paragraphs",
			text: "a\n\nb",
			want: []Block{
				{Content: "a", ModifierID: modifier.CommonParagraph},
				{Content: "b", ModifierID: modifier.CommonParagraph},
			},
		},
		{
			name: "multi-line paragraph",
			text: "first line\nsecond line",
			want: []Block{
				{Content: "first line\nsecond line", ModifierID: modifier.CommonParagraph},
			},
		},
		{
			name: "code block keeps its blank line",
			text: "```go\nx\n\ny\n```\n\nafter",
			want: []Block{
				{Content: "```go\nx\n\ny\n```", ModifierID: modifier.CodeBlock},
				{Content: "after", ModifierID: modifier.CommonParagraph},
			},
		},
		{
			name: "list then paragraph",
			text: "- a\n- b\n\ntext",
			want: []Block{
				{Content: "- a\n- b", ModifierID: modifier.List},
				{Content: "text", ModifierID: modifier.CommonParagraph},
			},
		},
		{
			name: "list marker mid paragraph is not a list",
			text: "text\n- a",
			want: []Block{
				{Content: "text\n- a", ModifierID: modifier.CommonParagraph},
			},
		},
		{
			name: "crlf line endings",
			text: "a\r\n\r\nb",
			want: []Block{
				{Content: "a", ModifierID: modifier.CommonParagraph},
				{Content: "b", ModifierID: modifier.CommonParagraph},
			},
		},
		{
			name: "extra blank lines",
			text: "\n\na\n\n\n\nb\n\n",
			want: []Block{
				{Content: "a", ModifierID: modifier.CommonParagraph},
				{Content: "b", ModifierID: modifier.CommonParagraph},
			},
		},
		{
			name: "table and line break",
			text: "| a | b |\n| 1 | 2 |\n\n---",
			want: []Block{
				{Content: "| a | b |\n| 1 | 2 |", ModifierID: modifier.Table},
				{Content: "---", ModifierID: modifier.LineBreakDash},
			},
		},
		{
			name: "empty input",
			text: "",
			want: []Block{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Paragraphs(tt.text, modifier.Paragraph())
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Paragraphs(%q) =\n  %+v\nwant\n  %+v", tt.text, got, tt.want)
			}
		})
	}
}

func TestScan_SpansDoNotOverlap(t *testing.T) {
	t.Parallel()

	text := "intro **bold**\n\n```\n- not a list\n\n| not a table |\n```\n\n- a\n- b\n\n" +
		"| x |\n|---|\n| 1 |\n\n> quote\n> more\n\n![img](a.png)\n\nend"
	buf := normalize(text)
	spans := scan(buf, modifier.Paragraph(), `\n\n`, blockStart, nil)
	sortSpans(spans)

	if len(spans) != 7 {
		t.Errorf("got %d spans, want 7", len(spans))
	}
	for i := 1; i < len(spans); i++ {
		if spans[i-1].end > spans[i].start {
			t.Errorf("span %d (%s) overlaps span %d (%s)", i-1, spans[i-1].id, i, spans[i].id)
		}
	}
}

// ---------------------------------------------------------------------------
// Chapters
// ---------------------------------------------------------------------------

func TestChapters(t *testing.T) {
	t.Parallel()

	text := "intro\n\n# Title\n@author Ada Lovelace\n@draft\n\nbody\n\n## Sub\ntext"
	got := Chapters(text, modifier.Paragraph())

	wantPreamble := []Block{{Content: "intro", ModifierID: modifier.CommonParagraph}}
	if !reflect.DeepEqual(got.Preamble, wantPreamble) {
		t.Errorf("Preamble = %+v, want %+v", got.Preamble, wantPreamble)
	}

	if len(got.Chapters) != 2 {
		t.Fatalf("got %d chapters, want 2", len(got.Chapters))
	}

	first := got.Chapters[0]
	if first.Heading.Level != 1 || first.Heading.Title != "Title" {
		t.Errorf("first heading = %+v", first.Heading)
	}
	wantTags := []Tag{{Key: "author", Value: "Ada Lovelace"}, {Key: "draft"}}
	if !reflect.DeepEqual(first.Heading.Tags, wantTags) {
		t.Errorf("tags = %+v, want %+v", first.Heading.Tags, wantTags)
	}
	if len(first.Blocks) != 1 || first.Blocks[0].Content != "body" {
		t.Errorf("first body = %+v", first.Blocks)
	}

	second := got.Chapters[1]
	if second.Heading.Level != 2 || second.Heading.Title != "Sub" {
		t.Errorf("second heading = %+v", second.Heading)
	}
	if len(second.Blocks) != 1 || second.Blocks[0].Content != "text" {
		t.Errorf("second body = %+v", second.Blocks)
	}
}

func TestChapters_HeadingForms(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		text   string
		levels []int
		titles []string
	}{
		{
			name:   "extended",
			text:   "### Three\n\n###### Six",
			levels: []int{3, 6},
			titles: []string{"Three", "Six"},
		},
		{
			name:   "compact",
			text:   "#3 Three\n\n#1 One",
			levels: []int{3, 1},
			titles: []string{"Three", "One"},
		},
		{
			name:   "relative",
			text:   "# A\n\n#+ B\n\n#= C\n\n#- D",
			levels: []int{1, 2, 2, 1},
			titles: []string{"A", "B", "C", "D"},
		},
		{
			name:   "consecutive lines",
			text:   "# A\n## B",
			levels: []int{1, 2},
			titles: []string{"A", "B"},
		},
		{
			name:   "seven markers is not a heading",
			text:   "####### seven",
			levels: []int{},
			titles: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Chapters(tt.text, modifier.Paragraph())
			levels := make([]int, 0, len(got.Chapters))
			titles := make([]string, 0, len(got.Chapters))
			for _, c := range got.Chapters {
				levels = append(levels, c.Heading.Level)
				titles = append(titles, c.Heading.Title)
			}
			if !reflect.DeepEqual(levels, tt.levels) {
				t.Errorf("levels = %v, want %v", levels, tt.levels)
			}
			if !reflect.DeepEqual(titles, tt.titles) {
				t.Errorf("titles = %v, want %v", titles, tt.titles)
			}
		})
	}
}

func TestChapters_HeadingInsideCodeBlock(t *testing.T) {
	t.Parallel()

	got := Chapters("```sh\n# not a heading\n```\n\n# Real\n\ntext", modifier.Paragraph())

	if len(got.Chapters) != 1 || got.Chapters[0].Heading.Title != "Real" {
		t.Fatalf("chapters = %+v, want only Real", got.Chapters)
	}
	if len(got.Preamble) != 1 || got.Preamble[0].ModifierID != modifier.CodeBlock {
		t.Errorf("preamble = %+v, want the code block", got.Preamble)
	}
}

func TestChapters_NoHeading(t *testing.T) {
	t.Parallel()

	got := Chapters("just\n\ntext", modifier.Paragraph())

	if len(got.Chapters) != 0 {
		t.Errorf("got %d chapters, want 0", len(got.Chapters))
	}
	if len(got.Preamble) != 2 {
		t.Errorf("got %d preamble blocks, want 2", len(got.Preamble))
	}
}

func TestResolveLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		id       modifier.ID
		previous int
		want     int
	}{
		{name: "absolute", id: modifier.ExtendedHeading(4).ID, previous: 1, want: 4},
		{name: "deeper", id: modifier.DeeperHeading, previous: 2, want: 3},
		{name: "deeper clamps", id: modifier.DeeperHeading, previous: modifier.MaxHeadingLevel, want: modifier.MaxHeadingLevel},
		{name: "shallower clamps", id: modifier.ShallowerHeading, previous: 1, want: 1},
		{name: "same as first heading", id: modifier.SameHeading, previous: 0, want: 1},
		{name: "unknown", id: modifier.CommonParagraph, previous: 3, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := ResolveLevel(tt.id, tt.previous); got != tt.want {
				t.Errorf("ResolveLevel(%s, %d) = %d, want %d", tt.id, tt.previous, got, tt.want)
			}
		})
	}
}
