// Package codex binds the modifier catalog to the rules of one output
// format. A Codex is built once and shared read-only by every parse call
// of a compilation.
package codex

import (
	"fmt"

	"github.com/emirpasic/gods/maps/linkedhashmap"

	"github.com/alnah/go-nmd/internal/modifier"
	"github.com/alnah/go-nmd/internal/rule"
)

// Entry pairs a modifier with the rule that renders it.
type Entry struct {
	Modifier modifier.Modifier
	Rule     rule.Rule
}

// Codex holds ordered text and paragraph rule tables plus the heading rule.
type Codex struct {
	text      *linkedhashmap.Map
	paragraph *linkedhashmap.Map
	heading   *rule.Heading

	// Snapshots of the tables in insertion order, taken at build time.
	textEntries      []Entry
	paragraphEntries []Entry
}

// builder accumulates bindings before freezing them into a Codex.
type builder struct {
	text      *linkedhashmap.Map
	paragraph *linkedhashmap.Map
}

func newBuilder() *builder {
	return &builder{text: linkedhashmap.New(), paragraph: linkedhashmap.New()}
}

// bind attaches r to the catalog modifier id in table. Binding an id
// absent from the catalog is a programming error.
func bind(table *linkedhashmap.Map, catalog []modifier.Modifier, id modifier.ID, r rule.Rule) {
	for _, m := range catalog {
		if m.ID == id {
			table.Put(id, Entry{Modifier: m, Rule: r})
			return
		}
	}
	panic(fmt.Sprintf("codex: modifier %q is not in the catalog", id))
}

func (b *builder) build(heading *rule.Heading) *Codex {
	return &Codex{
		text:             b.text,
		paragraph:        b.paragraph,
		heading:          heading,
		textEntries:      entries(b.text),
		paragraphEntries: entries(b.paragraph),
	}
}

func entries(table *linkedhashmap.Map) []Entry {
	values := table.Values()
	out := make([]Entry, 0, len(values))
	for _, v := range values {
		out = append(out, v.(Entry))
	}
	return out
}

// TextRules returns the text rules in compatibility order.
func (c *Codex) TextRules() []Entry {
	return c.textEntries
}

// ParagraphRules returns the paragraph rules in compatibility order.
func (c *Codex) ParagraphRules() []Entry {
	return c.paragraphEntries
}

// TextRule returns the text rule bound to id.
func (c *Codex) TextRule(id modifier.ID) (Entry, bool) {
	return lookup(c.text, id)
}

// ParagraphRule returns the paragraph rule bound to id.
func (c *Codex) ParagraphRule(id modifier.ID) (Entry, bool) {
	return lookup(c.paragraph, id)
}

// ParagraphModifiers returns the modifiers of the paragraph table, in
// order, for the splitter.
func (c *Codex) ParagraphModifiers() []modifier.Modifier {
	mods := make([]modifier.Modifier, len(c.paragraphEntries))
	for i, e := range c.paragraphEntries {
		mods[i] = e.Modifier
	}
	return mods
}

// Heading returns the heading rule.
func (c *Codex) Heading() *rule.Heading {
	return c.heading
}

func lookup(table *linkedhashmap.Map, id modifier.ID) (Entry, bool) {
	v, ok := table.Get(id)
	if !ok {
		return Entry{}, false
	}
	return v.(Entry), true
}
