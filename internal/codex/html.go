package codex

import (
	"golang.org/x/net/html"

	"github.com/alnah/go-nmd/internal/modifier"
	"github.com/alnah/go-nmd/internal/parsing"
	"github.com/alnah/go-nmd/internal/rule"
)

// HTML returns the codex rendering NMD as HTML fragments.
func HTML() *Codex {
	b := newBuilder()
	text := modifier.Text()
	para := modifier.Paragraph()

	// wrap binds the common "open, mutable group 1, close" shape.
	wrap := func(id modifier.ID, open, close string) {
		m := find(text, id)
		bind(b.text, text, id, rule.NewReplacement(m.Pattern,
			rule.Fixed(open), rule.Mutable("${1}"), rule.Fixed(close)))
	}
	textRule := func(id modifier.ID, parts ...rule.Part) {
		bind(b.text, text, id, rule.NewReplacement(find(text, id).Pattern, parts...))
	}

	textRule(modifier.Escape, rule.FixedFunc(rule.Escaped(1)))
	textRule(modifier.InlineComment, rule.Fixed(""))
	textRule(modifier.InlineCode,
		rule.Fixed(`<code class="language-markup inline-code">`),
		rule.FixedFunc(rule.CodeText(1)),
		rule.Fixed(`</code>`))
	textRule(modifier.InlineMath,
		rule.Fixed(`<span class="inline-math">$$`),
		rule.FixedFunc(rule.Escaped(1)),
		rule.Fixed(`$$</span>`))
	textRule(modifier.Todo,
		rule.Fixed(`<div class="todo"><div class="todo-title"></div><div class="todo-description">`),
		rule.Mutable("${1}"),
		rule.Fixed(`</div></div>`))
	textRule(modifier.Bookmark,
		rule.Fixed(`<div class="bookmark"><div class="bookmark-title">`),
		rule.Mutable("${1}"),
		rule.Fixed(`</div><div class="bookmark-description">`),
		rule.Mutable("${2}"),
		rule.Fixed(`</div></div>`))
	wrap(modifier.AbridgedBookmark,
		`<div class="abridged-bookmark"><div class="abridged-bookmark-title">`, `</div></div>`)
	textRule(modifier.EmbeddedStyleWithID,
		rule.FixedFunc(openTag("span", "embedded-style", 2, 3, false)),
		rule.Mutable("${1}"),
		rule.Fixed(`</span>`))
	textRule(modifier.EmbeddedStyle,
		rule.FixedFunc(openTag("span", "embedded-style", 0, 2, false)),
		rule.Mutable("${1}"),
		rule.Fixed(`</span>`))
	textRule(modifier.AbridgedEmbeddedStyle,
		rule.FixedFunc(openTag("span", "abridged-embedded-style", 0, 2, true)),
		rule.Mutable("${1}"),
		rule.Fixed(`</span>`))
	textRule(modifier.Identifier,
		rule.FixedFunc(openTag("span", "identifier", 2, 0, false)),
		rule.Mutable("${1}"),
		rule.Fixed(`</span>`))
	textRule(modifier.Link,
		rule.Fixed(`<a href="`),
		rule.FixedFunc(rule.Href(2)),
		rule.Fixed(`" class="link">`),
		rule.Mutable("${1}"),
		rule.Fixed(`</a>`))
	textRule(modifier.Checkbox, rule.Fixed(parsing.BulletCheckbox))
	textRule(modifier.CheckboxChecked, rule.Fixed(parsing.BulletCheckedBox))
	wrap(modifier.Highlight, `<mark class="highlight">`, `</mark>`)
	wrap(modifier.BoldStar, `<strong class="bold">`, `</strong>`)
	wrap(modifier.BoldUnderscore, `<strong class="bold">`, `</strong>`)
	wrap(modifier.ItalicStar, `<em class="italic">`, `</em>`)
	wrap(modifier.ItalicUnderscore, `<em class="italic">`, `</em>`)
	wrap(modifier.Strikethrough, `<del class="strikethrough">`, `</del>`)
	wrap(modifier.Underlined, `<u class="underlined">`, `</u>`)
	bind(b.text, text, modifier.Reference, rule.NewReference())
	bind(b.text, text, modifier.Cite, rule.NewCite())
	textRule(modifier.Emoji, rule.FixedFunc(rule.Emoji))
	textRule(modifier.GreekLetter, rule.FixedFunc(rule.GreekLetter))
	wrap(modifier.Superscript, `<sup class="superscript">`, `</sup>`)
	wrap(modifier.Subscript, `<sub class="subscript">`, `</sub>`)

	// Paragraph replacements must claim the whole paragraph.
	paraRule := func(id modifier.ID, parts ...rule.Part) *rule.Replacement {
		r := rule.NewReplacement(rule.Anchored(find(para, id).Pattern), parts...)
		bind(b.paragraph, para, id, r)
		return r
	}

	bind(b.paragraph, para, modifier.CodeBlock, rule.NewCodeBlock())
	paraRule(modifier.MathBlock,
		rule.Fixed(`<p class="math-block">$$$$`),
		rule.FixedFunc(rule.Escaped(1)),
		rule.Fixed(`$$$$</p>`))
	paraRule(modifier.CommentBlock, rule.Fixed(""))
	bind(b.paragraph, para, modifier.MultiImage, rule.NewMultiImage())
	bind(b.paragraph, para, modifier.AbridgedImage, rule.NewAbridgedImage())
	bind(b.paragraph, para, modifier.Image, rule.NewImage())
	paraRule(modifier.EmbeddedParagraphStyle,
		rule.FixedFunc(openTag("div", "embedded-paragraph-style", 2, 3, false)),
		rule.Mutable("${1}"),
		rule.Fixed(`</div>`)).WithNewlineFix()
	paraRule(modifier.AbridgedEmbeddedParagraphStyle,
		rule.FixedFunc(openTag("div", "abridged-embedded-paragraph-style", 2, 3, true)),
		rule.Mutable("${1}"),
		rule.Fixed(`</div>`)).WithNewlineFix()
	paraRule(modifier.FocusBlock,
		rule.Fixed(`<div class="focus-block focus-block-${1}">`+
			`<div class="focus-block-title focus-block-${1}-title"></div>`+
			`<div class="focus-block-description focus-block-${1}-description">`),
		rule.Mutable("${2}"),
		rule.Fixed(`</div></div>`)).WithNewlineFix()
	bind(b.paragraph, para, modifier.ExtendedBlockQuote, rule.NewExtendedQuote())
	bind(b.paragraph, para, modifier.Table, rule.NewTable())
	bind(b.paragraph, para, modifier.List, rule.NewList())
	paraRule(modifier.TodoBlock,
		rule.Fixed(`<div class="todo"><div class="todo-title"></div><div class="todo-description">`),
		rule.Mutable("${1}"),
		rule.Fixed(`</div></div>`)).WithNewlineFix()
	paraRule(modifier.PageBreak, rule.Fixed(`<div class="page-break"></div>`))
	paraRule(modifier.LineBreakDash, rule.Fixed(`<hr class="line-break line-break-dash">`))
	paraRule(modifier.LineBreakStar, rule.Fixed(`<hr class="line-break line-break-star">`))
	paraRule(modifier.LineBreakPlus, rule.Fixed(`<hr class="line-break line-break-plus">`))
	paraRule(modifier.CommonParagraph,
		rule.Fixed(`<p class="paragraph">`),
		rule.Mutable("${1}"),
		rule.Fixed(`</p>`))

	return b.build(rule.NewHeading())
}

// find returns the catalog entry for id.
func find(catalog []modifier.Modifier, id modifier.ID) modifier.Modifier {
	for _, m := range catalog {
		if m.ID == id {
			return m
		}
	}
	return modifier.Modifier{ID: id}
}

// openTag builds an opening tag with an optional id (capture idGroup) and
// style (capture styleGroup). Group 0 means absent. Abridged styles are
// expanded into CSS declarations first.
func openTag(tag, class string, idGroup, styleGroup int, abridged bool) rule.BuildFunc {
	return func(m rule.Match, _ *parsing.Context) (string, error) {
		s := `<` + tag + ` class="` + class + `"`
		if idGroup > 0 {
			if id := m.Group(idGroup); id != "" {
				s += ` id="` + html.EscapeString(id) + `"`
			}
		}
		if styleGroup > 0 {
			style := m.Group(styleGroup)
			if abridged {
				style = rule.AbridgedStyle(style)
			}
			if style != "" {
				s += ` style="` + html.EscapeString(style) + `"`
			}
		}
		return s + `>`, nil
	}
}
