package parser

import (
	"strings"
	"testing"

	"github.com/alnah/go-nmd/internal/modifier"
	"github.com/alnah/go-nmd/internal/outcome"
)

// ---------------------------------------------------------------------------
// Runs
// ---------------------------------------------------------------------------

func TestJoinSplit_RoundTrip(t *testing.T) {
	t.Parallel()

	code := outcome.NewFixed("<code>b</code>")
	link := outcome.NewFixed("<a>x</a>")
	run := []item{{text: "a "}, {frozen: code}, {text: " c "}, {frozen: link}}

	joined, frozen, ok := join(run)
	if !ok {
		t.Fatal("join refused a plain run")
	}
	if len(frozen) != 2 || frozen[0] != code || frozen[1] != link {
		t.Fatalf("frozen = %v", frozen)
	}
	if n := len([]rune(joined)); n != len("a ")+1+len(" c ")+1 {
		t.Errorf("joined has %d runes, want one per frozen item", n)
	}

	back := split(joined, frozen)
	if got, want := flatten(back, false).String(), "a <code>b</code> c <a>x</a>"; got != want {
		t.Errorf("split(join()) = %q, want %q", got, want)
	}
}

func TestJoin_RefusesPlaceholderText(t *testing.T) {
	t.Parallel()

	run := []item{{text: "a \U00100000 b"}, {frozen: outcome.NewFixed("x")}}
	if _, _, ok := join(run); ok {
		t.Error("join accepted text holding a placeholder code point")
	}
}

func TestParseText_PlaceholderCodePointInInput(t *testing.T) {
	t.Parallel()

	in := "**a \U00100000 `b`**"
	out, err := newTestParser().ParseText(in, modifier.None(), testContext(nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	html := out.String()
	if !strings.Contains(html, "\U00100000") {
		t.Errorf("input code point lost: %q", html)
	}
	if !strings.Contains(html, `<code class="language-markup inline-code">b</code>`) {
		t.Errorf("inline code not rendered: %q", html)
	}
}

func TestCarriesPlaceholder(t *testing.T) {
	t.Parallel()

	nested := outcome.New().AddFixed("<b>").AddNested("\U00100000").AddFixed("</b>")
	if carriesPlaceholder(nested) {
		t.Error("nested placeholder reported as fixed")
	}
	attr := outcome.New().AddFixed(`<a href="` + "\U00100000" + `">`)
	if !carriesPlaceholder(attr) {
		t.Error("fixed placeholder not reported")
	}
}
