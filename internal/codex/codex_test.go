package codex

import (
	"strings"
	"testing"

	"github.com/alnah/go-nmd/internal/modifier"
	"github.com/alnah/go-nmd/internal/parsing"
)

func testContext() *parsing.Context {
	return parsing.NewContext(nil, nil, nil).InDocument("doc")
}

func TestHTML_BindsWholeCatalogInOrder(t *testing.T) {
	t.Parallel()

	c := HTML()

	check := func(name string, catalog []modifier.Modifier, entries []Entry) {
		if len(entries) != len(catalog) {
			t.Fatalf("%s: %d rules for %d modifiers", name, len(entries), len(catalog))
		}
		for i, m := range catalog {
			if entries[i].Modifier.ID != m.ID {
				t.Errorf("%s[%d] = %s, want %s", name, i, entries[i].Modifier.ID, m.ID)
			}
			if entries[i].Rule == nil {
				t.Errorf("%s[%d] (%s) has no rule", name, i, m.ID)
			}
		}
	}

	check("text", modifier.Text(), c.TextRules())
	check("paragraph", modifier.Paragraph(), c.ParagraphRules())

	if c.Heading() == nil {
		t.Error("Heading() = nil")
	}
	if got := len(c.ParagraphModifiers()); got != len(modifier.Paragraph()) {
		t.Errorf("ParagraphModifiers() has %d entries", got)
	}
}

func TestHTML_Lookup(t *testing.T) {
	t.Parallel()

	c := HTML()

	if _, ok := c.TextRule(modifier.BoldStar); !ok {
		t.Error("TextRule(bold-star) not found")
	}
	if _, ok := c.ParagraphRule(modifier.Table); !ok {
		t.Error("ParagraphRule(table) not found")
	}
	if _, ok := c.TextRule(modifier.Table); ok {
		t.Error("TextRule(table) found in the text table")
	}
}

func TestHTML_TextRules(t *testing.T) {
	t.Parallel()

	c := HTML()

	tests := []struct {
		id   modifier.ID
		in   string
		want string
	}{
		{id: modifier.BoldStar, in: "**a**", want: `<strong class="bold">a</strong>`},
		{id: modifier.ItalicUnderscore, in: "_a_", want: `<em class="italic">a</em>`},
		{id: modifier.InlineCode, in: "`a<b`", want: `<code class="language-markup inline-code">a&lt;b</code>`},
		{id: modifier.InlineMath, in: "$x^2$", want: `<span class="inline-math">$x^2$</span>`},
		{id: modifier.Escape, in: `\*`, want: `*`},
		{id: modifier.InlineComment, in: "a<!-- hidden -->b", want: "ab"},
		{id: modifier.Link, in: "[site](https://a.b)", want: `<a href="https://a.b" class="link">site</a>`},
		{id: modifier.EmbeddedStyleWithID, in: "[t]#x{{color: red}}", want: `<span class="embedded-style" id="x" style="color: red">t</span>`},
		{id: modifier.AbridgedEmbeddedStyle, in: "[t]{red;blue}", want: `<span class="abridged-embedded-style" style="color: red; background-color: blue;">t</span>`},
		{id: modifier.Identifier, in: "[t]#x", want: `<span class="identifier" id="x">t</span>`},
		{id: modifier.Checkbox, in: "[ ]", want: parsing.BulletCheckbox},
		{id: modifier.GreekLetter, in: "%pi%", want: "&pi;"},
		{id: modifier.Superscript, in: "^2^", want: `<sup class="superscript">2</sup>`},
	}

	for _, tt := range tests {
		t.Run(string(tt.id), func(t *testing.T) {
			t.Parallel()

			e, ok := c.TextRule(tt.id)
			if !ok {
				t.Fatalf("no rule for %s", tt.id)
			}
			out, err := e.Rule.Parse(tt.in, testContext())
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := out.String(); got != tt.want {
				t.Errorf("Parse(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestHTML_ParagraphRules(t *testing.T) {
	t.Parallel()

	c := HTML()

	tests := []struct {
		id   modifier.ID
		in   string
		want string
	}{
		{id: modifier.CommonParagraph, in: "hello\nworld", want: "<p class=\"paragraph\">hello\nworld</p>"},
		{id: modifier.MathBlock, in: "$$x<y$$", want: `<p class="math-block">$$x&lt;y$$</p>`},
		{id: modifier.CommentBlock, in: "<!-- note -->", want: ""},
		{id: modifier.PageBreak, in: "###pagebreak###", want: `<div class="page-break"></div>`},
		{id: modifier.LineBreakDash, in: "---", want: `<hr class="line-break line-break-dash">`},
	}

	for _, tt := range tests {
		t.Run(string(tt.id), func(t *testing.T) {
			t.Parallel()

			e, ok := c.ParagraphRule(tt.id)
			if !ok {
				t.Fatalf("no rule for %s", tt.id)
			}
			if !e.Rule.IsMatch(tt.in) {
				t.Fatalf("IsMatch(%q) = false", tt.in)
			}
			out, err := e.Rule.Parse(tt.in, testContext())
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := out.String(); got != tt.want {
				t.Errorf("Parse(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestHTML_FocusBlock(t *testing.T) {
	t.Parallel()

	e, _ := HTML().ParagraphRule(modifier.FocusBlock)
	out, err := e.Rule.Parse(":::warning\na\n\nb\n:::", testContext())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	html := out.String()

	if !strings.HasPrefix(html, `<div class="focus-block focus-block-warning">`) {
		t.Errorf("unexpected wrapper: %q", html)
	}
	if !strings.Contains(html, "a\n<br>\nb") {
		t.Errorf("blank line not turned into a break: %q", html)
	}
}

func TestHTML_ParagraphReplacementsAreAnchored(t *testing.T) {
	t.Parallel()

	e, _ := HTML().ParagraphRule(modifier.LineBreakDash)
	if e.Rule.IsMatch("text --- more") {
		t.Error("line break matched inside a sentence")
	}
}
