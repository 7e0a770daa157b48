package outcome

import (
	"errors"
	"strings"
	"testing"
)

func TestOutcome_AddFixedMerges(t *testing.T) {
	t.Parallel()

	o := New().AddFixed("<a>").AddFixed("</a>").AddMutable("x").AddFixed("<b>")

	parts := o.Parts()
	if len(parts) != 3 {
		t.Fatalf("got %d parts, want 3", len(parts))
	}
	if parts[0].Text != "<a></a>" || !parts[0].Fixed {
		t.Errorf("parts[0] = %+v, want merged fixed", parts[0])
	}
	if got := o.String(); got != "<a></a>x<b>" {
		t.Errorf("String() = %q", got)
	}
}

func TestOutcome_EmptyPartsIgnored(t *testing.T) {
	t.Parallel()

	o := New().AddFixed("").AddMutable("").AddNested("")
	if o.Len() != 0 {
		t.Errorf("Len() = %d, want 0", o.Len())
	}
}

func TestOutcome_NilSafe(t *testing.T) {
	t.Parallel()

	var o *Outcome
	if o.String() != "" || o.Len() != 0 || o.Parts() != nil {
		t.Error("nil outcome should behave as empty")
	}
}

func TestOutcome_PartsIsACopy(t *testing.T) {
	t.Parallel()

	o := NewMutable("x")
	parts := o.Parts()
	parts[0].Text = "changed"

	if o.String() != "x" {
		t.Error("mutating Parts() changed the outcome")
	}
}

func TestOutcome_MapMutable(t *testing.T) {
	t.Parallel()

	o := New().AddMutable("a").AddFixed("|").AddNested("b")

	got, err := o.MapMutable(func(p Part) (*Outcome, error) {
		if p.Nested {
			return NewFixed(strings.ToUpper(p.Text)), nil
		}
		return NewMutable(p.Text + p.Text), nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.String() != "aa|B" {
		t.Errorf("String() = %q, want %q", got.String(), "aa|B")
	}
	parts := got.Parts()
	if len(parts) != 2 || !parts[1].Fixed || parts[1].Text != "|B" {
		t.Errorf("Parts() = %+v, want fixed parts merged", parts)
	}
	if o.String() != "a|b" {
		t.Error("MapMutable modified the receiver")
	}
}

func TestOutcome_MapMutableError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	_, err := NewMutable("x").MapMutable(func(Part) (*Outcome, error) { return nil, boom })
	if !errors.Is(err, boom) {
		t.Errorf("error = %v, want boom", err)
	}
}

func TestOutcome_AppendKeepsNested(t *testing.T) {
	t.Parallel()

	o := NewFixed("<p>").Append(New().AddFixed("<b>").AddNested("x"))
	parts := o.Parts()
	if len(parts) != 2 || parts[0].Text != "<p><b>" || !parts[1].Nested {
		t.Errorf("Parts() = %+v", parts)
	}
	if o.Append(nil) != o {
		t.Error("Append(nil) should return the receiver")
	}
}
