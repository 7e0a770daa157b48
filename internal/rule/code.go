package rule

import (
	"bytes"
	"fmt"
	"regexp"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/yuin/goldmark/util"

	"github.com/alnah/go-nmd/internal/modifier"
	"github.com/alnah/go-nmd/internal/outcome"
	"github.com/alnah/go-nmd/internal/parsing"
)

// CodeBlock renders fenced code. With a language and outside fast-draft,
// the code is highlighted by chroma using CSS classes.
type CodeBlock struct {
	re        *regexp.Regexp
	formatter *chromahtml.Formatter
}

// NewCodeBlock returns the code block rule.
func NewCodeBlock() *CodeBlock {
	m, _ := modifier.Find(modifier.CodeBlock)
	return &CodeBlock{
		re:        compile(Anchored(m.Pattern)),
		formatter: chromahtml.New(chromahtml.WithClasses(true)),
	}
}

// IsMatch reports whether content is exactly one fenced block.
func (c *CodeBlock) IsMatch(content string) bool {
	return c.re.MatchString(content)
}

// Parse renders the block. The whole output is final.
func (c *CodeBlock) Parse(content string, pc *parsing.Context) (*outcome.Outcome, error) {
	m := c.re.FindStringSubmatch(content)
	if m == nil {
		return outcome.NewMutable(content), nil
	}
	lang, code := m[1], m[2]

	if lang != "" && !pc.Config.FastDraft {
		if highlighted, ok := c.highlight(lang, code, pc.Config.CodeStyle); ok {
			return outcome.NewFixed(`<div class="code-block language-` + attr(lang) + `">` +
				highlighted + `</div>`), nil
		}
	}

	return outcome.NewFixed(plainCode(lang, code)), nil
}

// highlight returns false when chroma cannot tokenise or format code, in
// which case the block falls back to plain escaped output.
func (c *CodeBlock) highlight(lang, code, styleName string) (string, bool) {
	lexer := lexers.Get(lang)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	it, err := lexer.Tokenise(nil, code)
	if err != nil {
		return "", false
	}
	var buf bytes.Buffer
	if err := c.formatter.Format(&buf, codeStyle(styleName), it); err != nil {
		return "", false
	}
	return buf.String(), true
}

func plainCode(lang, code string) string {
	class := ""
	if lang != "" {
		class = ` class="language-` + attr(lang) + `"`
	}
	return `<pre class="code-block"><code` + class + `>` +
		string(util.EscapeHTML([]byte(code))) + `</code></pre>`
}

// Compile-time interface check.
var _ Rule = (*CodeBlock)(nil)

// CodeText builds the escaped text of capture group i, for inline code.
func CodeText(i int) BuildFunc {
	return func(m Match, _ *parsing.Context) (string, error) {
		return string(util.EscapeHTML([]byte(m.Group(i)))), nil
	}
}

func codeStyle(name string) *chroma.Style {
	if style := styles.Get(name); style != nil {
		return style
	}
	return styles.Fallback
}

// CodeStyleCSS returns the stylesheet matching the classes emitted for
// highlighted code blocks in style name.
func CodeStyleCSS(name string) (string, error) {
	var buf bytes.Buffer
	if err := chromahtml.New(chromahtml.WithClasses(true)).WriteCSS(&buf, codeStyle(name)); err != nil {
		return "", fmt.Errorf("writing %s code style: %w", name, err)
	}
	return buf.String(), nil
}
