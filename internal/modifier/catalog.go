package modifier

// Text modifier identifiers.
const (
	Escape                ID = "escape"
	InlineComment         ID = "inline-comment"
	InlineCode            ID = "inline-code"
	InlineMath            ID = "inline-math"
	Todo                  ID = "todo"
	Bookmark              ID = "bookmark"
	AbridgedBookmark      ID = "abridged-bookmark"
	EmbeddedStyleWithID   ID = "embedded-style-with-id"
	EmbeddedStyle         ID = "embedded-style"
	AbridgedEmbeddedStyle ID = "abridged-embedded-style"
	Identifier            ID = "identifier"
	Link                  ID = "link"
	Checkbox              ID = "checkbox"
	CheckboxChecked       ID = "checkbox-checked"
	Highlight             ID = "highlight"
	BoldStar              ID = "bold-star"
	BoldUnderscore        ID = "bold-underscore"
	ItalicStar            ID = "italic-star"
	ItalicUnderscore      ID = "italic-underscore"
	Strikethrough         ID = "strikethrough"
	Underlined            ID = "underlined"
	Reference             ID = "reference"
	Cite                  ID = "cite"
	Emoji                 ID = "emoji"
	GreekLetter           ID = "greek-letter"
	Superscript           ID = "superscript"
	Subscript             ID = "subscript"
)

// Paragraph modifier identifiers.
const (
	CodeBlock                      ID = "code-block"
	MathBlock                      ID = "math-block"
	CommentBlock                   ID = "comment-block"
	MultiImage                     ID = "multi-image"
	AbridgedImage                  ID = "abridged-image"
	Image                          ID = "image"
	EmbeddedParagraphStyle         ID = "embedded-paragraph-style"
	AbridgedEmbeddedParagraphStyle ID = "abridged-embedded-paragraph-style"
	FocusBlock                     ID = "focus-block"
	ExtendedBlockQuote             ID = "extended-block-quote"
	Table                          ID = "table"
	List                           ID = "list"
	TodoBlock                      ID = "todo-block"
	PageBreak                      ID = "page-break"
	LineBreakDash                  ID = "line-break-dash"
	LineBreakStar                  ID = "line-break-star"
	LineBreakPlus                  ID = "line-break-plus"
	CommonParagraph                ID = "common-paragraph"
)

// Relative chapter modifier identifiers.
const (
	DeeperHeading    ID = "heading-deeper"
	ShallowerHeading ID = "heading-shallower"
	SameHeading      ID = "heading-same"
)

// ListBulletPattern matches one list item line: indentation, bullet token,
// content. Shared by the list paragraph pattern and the list rule.
const ListBulletPattern = `([ \t]*)(-\[[ xX]?\]|- \[[ xX]\]|->|--|-|\*|\+|\||\d+\.|[a-zA-Z]\))[ \t]+([^\n]*)`

// Text returns the inline modifiers in compatibility order.
func Text() []Modifier {
	return []Modifier{
		{ID: Escape, Pattern: `\\([*+\\~%^$@=\[\]!<>{}()#_\-|:&])`, Incompatible: All()},
		{ID: InlineComment, Pattern: `<!--(?s:.*?)-->`, Incompatible: All()},
		{ID: InlineCode, Pattern: "`([^`\n]+)`", Incompatible: All()},
		{ID: InlineMath, Pattern: `\$([^$\n]+)\$`, Incompatible: All()},
		{ID: Todo, Pattern: `@\[(?i:todo)\]\(([^)\n]*)\)`},
		{ID: Bookmark, Pattern: `@\[([^\]\n]+)\]\(([^)\n]*)\)`},
		{ID: AbridgedBookmark, Pattern: `@\[([^\]\n]+)\]`},
		{ID: EmbeddedStyleWithID, Pattern: `\[([^\]\n]*)\]#([\w\-]+)\{\{([^}\n]*)\}\}`},
		{ID: EmbeddedStyle, Pattern: `\[([^\]\n]*)\]\{\{([^}\n]*)\}\}`},
		{ID: AbridgedEmbeddedStyle, Pattern: `\[([^\]\n]*)\]\{([^{}\n]*)\}`},
		{ID: Identifier, Pattern: `\[([^\]\n]*)\]#([\w\-]+)`},
		{ID: Link, Pattern: `\[([^\]\n]+)\]\(([^)\n]+)\)`},
		{ID: Checkbox, Pattern: `\[ \]`, Incompatible: All()},
		{ID: CheckboxChecked, Pattern: `\[[xX]\]`, Incompatible: All()},
		{ID: Highlight, Pattern: `==([^=\n]+)==`},
		{ID: BoldStar, Pattern: `\*\*(.+?)\*\*`},
		{ID: BoldUnderscore, Pattern: `__(.+?)__`},
		{ID: ItalicStar, Pattern: `\*([^*\n]+)\*`},
		{ID: ItalicUnderscore, Pattern: `\b_([^_\n]+)_\b`},
		{ID: Strikethrough, Pattern: `~~([^~\n]+)~~`},
		{ID: Underlined, Pattern: `\+\+([^+\n]+)\+\+`},
		{ID: Reference, Pattern: `&([\w\-.#]+)&`, Incompatible: All()},
		{ID: Cite, Pattern: `\^\[([\w\-:.]+)\]`, Incompatible: All()},
		{ID: Emoji, Pattern: `:([a-z][a-z0-9_+\-]*):`, Incompatible: All()},
		{ID: GreekLetter, Pattern: `%([a-zA-Z]+)%`, Incompatible: All()},
		{ID: Superscript, Pattern: `\^([^\^\n]+)\^`},
		{ID: Subscript, Pattern: `~([^~\n]+)~`},
	}
}

// Paragraph returns the block modifiers in compatibility order. The
// common paragraph is last: it claims whatever block nothing else did.
func Paragraph() []Modifier {
	return []Modifier{
		{ID: CodeBlock, Pattern: "```([\\w+\\-]*)[ \\t]*\\n((?s:.*?))\\n```", Incompatible: All()},
		{ID: MathBlock, Pattern: `\$\$((?s:.*?))\$\$`, Incompatible: All()},
		{ID: CommentBlock, Pattern: `<!--(?s:.*?)-->`, Incompatible: All()},
		{ID: MultiImage, Pattern: `!!(?:\[([\w\-]*)\])?\[\[((?s:.*?))\]\]`, Incompatible: All()},
		{ID: AbridgedImage, Pattern: `!\[\(([^)\n]+)\)\](?:#([\w\-]+))?(?:\{\{([^}\n]*)\}\})?`, Incompatible: All()},
		{ID: Image, Pattern: `!\[([^\]\n]*)\]\(([^)\n]+)\)(?:#([\w\-]+))?(?:\{\{([^}\n]*)\}\})?`, Incompatible: All()},
		{ID: EmbeddedParagraphStyle, Pattern: `\[\[((?s:.*?))\]\](?:#([\w\-]+))?\{\{((?s:.*?))\}\}`},
		{ID: AbridgedEmbeddedParagraphStyle, Pattern: `\[\[((?s:.*?))\]\](?:#([\w\-]+))?\{([^{}\n]*)\}`},
		{ID: FocusBlock, Pattern: `:::[ \t]*(\w+)\n((?s:.*?))\n:::`},
		{ID: ExtendedBlockQuote, Pattern: `>[^\n]*(?:\n[^\n]+)*`},
		{ID: Table, Pattern: `(?:\[[^\n]*\n)?\|[^\n]*(?:\n[^\n]+)*`},
		{ID: List, Pattern: ListBulletPattern + `(?:\n[^\n]+)*`},
		{ID: TodoBlock, Pattern: `(?:TODO|todo):[ \t]+((?s:.*))`},
		{ID: PageBreak, Pattern: `#{3,}pagebreak#{3,}`, Incompatible: All()},
		{ID: LineBreakDash, Pattern: `-{3,}`, Incompatible: All()},
		{ID: LineBreakStar, Pattern: `\*{3,}`, Incompatible: All()},
		{ID: LineBreakPlus, Pattern: `\+{3,}`, Incompatible: All()},
		{ID: CommonParagraph, Pattern: `([^\n](?s:.*?))`},
	}
}

// Chapter returns heading modifiers, deepest level first, each level as
// extended then compact form, followed by the relative forms.
func Chapter() []Modifier {
	mods := make([]Modifier, 0, MaxHeadingLevel*2+3)
	for level := MaxHeadingLevel; level >= 1; level-- {
		mods = append(mods, ExtendedHeading(level), CompactHeading(level))
	}
	return append(mods,
		Modifier{ID: DeeperHeading, Pattern: `#\+[ \t]+([^\n]*)` + headingTagsPattern},
		Modifier{ID: ShallowerHeading, Pattern: `#-[ \t]+([^\n]*)` + headingTagsPattern},
		Modifier{ID: SameHeading, Pattern: `#=[ \t]+([^\n]*)` + headingTagsPattern},
	)
}

// Verbatim returns the paragraph modifiers whose spans must never be
// reinterpreted at chapter granularity (a "# comment" inside a fence is not
// a heading).
func Verbatim() []Modifier {
	var mods []Modifier
	for _, m := range Paragraph() {
		if m.ID == CodeBlock || m.ID == MathBlock || m.ID == CommentBlock {
			mods = append(mods, m)
		}
	}
	return mods
}

// Find returns the modifier with id from any granularity.
func Find(id ID) (Modifier, bool) {
	for _, group := range [][]Modifier{Text(), Paragraph(), Chapter()} {
		for _, m := range group {
			if m.ID == id {
				return m, true
			}
		}
	}
	return Modifier{}, false
}
