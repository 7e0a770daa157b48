package modifier

import (
	"regexp"
	"testing"
)

// ---------------------------------------------------------------------------
// Set
// ---------------------------------------------------------------------------

func TestSet_Contains(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		set  Set
		id   ID
		want bool
	}{
		{name: "none excludes nothing", set: None(), id: BoldStar, want: false},
		{name: "zero value excludes nothing", set: Set{}, id: BoldStar, want: false},
		{name: "all excludes everything", set: All(), id: BoldStar, want: true},
		{name: "explicit member", set: Of(BoldStar, Link), id: Link, want: true},
		{name: "explicit non member", set: Of(BoldStar), id: Link, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.set.Contains(tt.id); got != tt.want {
				t.Errorf("%v.Contains(%q) = %v, want %v", tt.set, tt.id, got, tt.want)
			}
		})
	}
}

func TestSet_Union(t *testing.T) {
	t.Parallel()

	t.Run("explicit sets merge", func(t *testing.T) {
		t.Parallel()
		got := Of(BoldStar).Union(Of(Link))
		if !got.Contains(BoldStar) || !got.Contains(Link) {
			t.Errorf("union = %v, want bold-star and link", got)
		}
		if got.IsAll() {
			t.Error("union of explicit sets must not be All")
		}
	})

	t.Run("all absorbs", func(t *testing.T) {
		t.Parallel()
		if !Of(BoldStar).Union(All()).IsAll() {
			t.Error("explicit ∪ All must be All")
		}
		if !All().Union(None()).IsAll() {
			t.Error("All ∪ none must be All")
		}
	})

	t.Run("operands are not mutated", func(t *testing.T) {
		t.Parallel()
		left := Of(BoldStar)
		_ = left.Union(Of(Link))
		if left.Contains(Link) {
			t.Error("Union mutated its receiver")
		}
	})

	t.Run("none is identity", func(t *testing.T) {
		t.Parallel()
		if !None().Union(None()).IsNone() {
			t.Error("none ∪ none must be none")
		}
	})
}

// ---------------------------------------------------------------------------
// Catalog
// ---------------------------------------------------------------------------

func TestCatalog_PatternsCompile(t *testing.T) {
	t.Parallel()

	for _, group := range [][]Modifier{Text(), Paragraph(), Chapter()} {
		for _, m := range group {
			if _, err := regexp.Compile(m.Pattern); err != nil {
				t.Errorf("modifier %s: pattern %q does not compile: %v", m.ID, m.Pattern, err)
			}
		}
	}
}

func TestCatalog_UniqueIDs(t *testing.T) {
	t.Parallel()

	seen := map[ID]bool{}
	for _, group := range [][]Modifier{Text(), Paragraph(), Chapter()} {
		for _, m := range group {
			if seen[m.ID] {
				t.Errorf("duplicate modifier id %q", m.ID)
			}
			seen[m.ID] = true
		}
	}
}

func TestCatalog_Ordering(t *testing.T) {
	t.Parallel()

	indexOf := func(mods []Modifier, id ID) int {
		for i, m := range mods {
			if m.ID == id {
				return i
			}
		}
		return -1
	}

	text := Text()
	if indexOf(text, BoldStar) > indexOf(text, ItalicStar) {
		t.Error("bold (**) must precede italic (*)")
	}
	if indexOf(text, EmbeddedStyleWithID) > indexOf(text, Identifier) {
		t.Error("embedded style with id must precede identifier")
	}
	if indexOf(text, Cite) > indexOf(text, Superscript) {
		t.Error("cite (^[key]) must precede superscript")
	}

	para := Paragraph()
	if indexOf(para, CodeBlock) != 0 {
		t.Error("code block must be tried first")
	}
	if indexOf(para, CommonParagraph) != len(para)-1 {
		t.Error("common paragraph must be the fallback")
	}

	chapter := Chapter()
	if chapter[0].ID != ExtendedHeading(6).ID || chapter[1].ID != CompactHeading(6).ID {
		t.Errorf("chapter order starts with %s, %s; want level 6 first", chapter[0].ID, chapter[1].ID)
	}
}

func TestCatalog_AllIncompatibility(t *testing.T) {
	t.Parallel()

	wantAll := []ID{Image, AbridgedImage, MultiImage, CodeBlock, MathBlock, InlineCode, InlineMath, Emoji, GreekLetter}
	for _, id := range wantAll {
		m, ok := Find(id)
		if !ok {
			t.Fatalf("modifier %q not in catalog", id)
		}
		if !m.Incompatible.IsAll() {
			t.Errorf("modifier %q incompatibility = %v, want All", id, m.Incompatible)
		}
	}
}

func TestHeadingLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		id       ID
		level    int
		kind     HeadingKind
		wantBool bool
	}{
		{id: ExtendedHeading(1).ID, level: 1, kind: HeadingAbsolute, wantBool: true},
		{id: CompactHeading(6).ID, level: 6, kind: HeadingAbsolute, wantBool: true},
		{id: DeeperHeading, kind: HeadingDeeper, wantBool: true},
		{id: ShallowerHeading, kind: HeadingShallower, wantBool: true},
		{id: SameHeading, kind: HeadingSame, wantBool: true},
		{id: "heading-extended-9", wantBool: false},
		{id: BoldStar, wantBool: false},
	}

	for _, tt := range tests {
		t.Run(string(tt.id), func(t *testing.T) {
			t.Parallel()
			level, kind, ok := HeadingLevel(tt.id)
			if ok != tt.wantBool {
				t.Fatalf("ok = %v, want %v", ok, tt.wantBool)
			}
			if !ok {
				return
			}
			if level != tt.level || kind != tt.kind {
				t.Errorf("HeadingLevel(%q) = (%d, %d), want (%d, %d)", tt.id, level, kind, tt.level, tt.kind)
			}
		})
	}
}
