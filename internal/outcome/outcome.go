// Package outcome models the result of applying a rule: an ordered list of
// parts, each either Fixed (final markup, never scanned again) or Mutable
// (text later passes may still transform).
package outcome

import "strings"

// Part is one contiguous piece of an Outcome.
type Part struct {
	Text string
	// Fixed parts are final and are skipped by every later pass.
	Fixed bool
	// Nested marks Mutable text that sits inside a match, so later passes
	// scan it under the claiming rule's incompatibilities.
	Nested bool
}

// Outcome is an ordered sequence of parts. Concatenating the parts in
// order yields the rendered content.
type Outcome struct {
	parts []Part
}

// New returns an empty outcome.
func New() *Outcome {
	return &Outcome{}
}

// NewFixed returns an outcome holding a single fixed part.
func NewFixed(text string) *Outcome {
	o := New()
	o.AddFixed(text)
	return o
}

// NewMutable returns an outcome holding a single mutable part.
func NewMutable(text string) *Outcome {
	o := New()
	o.AddMutable(text)
	return o
}

// AddFixed appends final markup. Empty text is ignored.
func (o *Outcome) AddFixed(text string) *Outcome {
	if text == "" {
		return o
	}
	if n := len(o.parts); n > 0 && o.parts[n-1].Fixed {
		o.parts[n-1].Text += text
		return o
	}
	o.parts = append(o.parts, Part{Text: text, Fixed: true})
	return o
}

// AddMutable appends text that later passes may transform.
func (o *Outcome) AddMutable(text string) *Outcome {
	return o.add(Part{Text: text})
}

// AddNested appends mutable text claimed by a match.
func (o *Outcome) AddNested(text string) *Outcome {
	return o.add(Part{Text: text, Nested: true})
}

func (o *Outcome) add(p Part) *Outcome {
	if p.Text == "" {
		return o
	}
	o.parts = append(o.parts, p)
	return o
}

// Append copies every part of other onto o, merging adjacent fixed parts.
func (o *Outcome) Append(other *Outcome) *Outcome {
	if other == nil {
		return o
	}
	for _, p := range other.parts {
		if p.Fixed {
			o.AddFixed(p.Text)
			continue
		}
		o.add(p)
	}
	return o
}

// Parts returns a copy of the parts in order.
func (o *Outcome) Parts() []Part {
	if o == nil {
		return nil
	}
	out := make([]Part, len(o.parts))
	copy(out, o.parts)
	return out
}

// Len returns the number of parts.
func (o *Outcome) Len() int {
	if o == nil {
		return 0
	}
	return len(o.parts)
}

// String flattens the outcome into its rendered text.
func (o *Outcome) String() string {
	if o == nil {
		return ""
	}
	var b strings.Builder
	for _, p := range o.parts {
		b.WriteString(p.Text)
	}
	return b.String()
}

// MapMutable rebuilds the outcome, replacing each mutable part with the
// result of fn. Fixed parts are carried over untouched.
func (o *Outcome) MapMutable(fn func(Part) (*Outcome, error)) (*Outcome, error) {
	out := New()
	for _, p := range o.parts {
		if p.Fixed {
			out.AddFixed(p.Text)
			continue
		}
		sub, err := fn(p)
		if err != nil {
			return nil, err
		}
		out.Append(sub)
	}
	return out, nil
}
