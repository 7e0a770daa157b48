// Package parser drives a codex over NMD text: paragraph and text rule
// dispatch with incompatibility propagation, and the fan-out over
// documents, chapters and paragraphs.
package parser

import (
	"fmt"

	"github.com/alnah/go-nmd/internal/codex"
	"github.com/alnah/go-nmd/internal/document"
	"github.com/alnah/go-nmd/internal/modifier"
	"github.com/alnah/go-nmd/internal/outcome"
	"github.com/alnah/go-nmd/internal/parsing"
	"github.com/alnah/go-nmd/internal/rule"
)

// Parser applies one codex. It holds no per-call state and is safe for
// concurrent use.
type Parser struct {
	codex *codex.Codex
}

// New returns a parser over c.
func New(c *codex.Codex) *Parser {
	return &Parser{codex: c}
}

// Codex returns the codex the parser applies.
func (p *Parser) Codex() *codex.Codex {
	return p.codex
}

// ParseText runs the text rules over content, skipping excluded modifiers.
func (p *Parser) ParseText(content string, excluded modifier.Set, pc *parsing.Context) (*outcome.Outcome, error) {
	return p.scanText(content, 0, excluded, pc)
}

// Rescan runs the text rules over the mutable parts of o only.
func (p *Parser) Rescan(o *outcome.Outcome, excluded modifier.Set, pc *parsing.Context) (*outcome.Outcome, error) {
	return o.MapMutable(func(part outcome.Part) (*outcome.Outcome, error) {
		return p.scanText(part.Text, 0, excluded, pc)
	})
}

// scanText tries the text rules from index from on over content.
// Exclusion is span-scoped: a rule's incompatibilities bind only the text
// inside its matches, text between matches keeps the caller's set.
func (p *Parser) scanText(content string, from int, excluded modifier.Set, pc *parsing.Context) (*outcome.Outcome, error) {
	return p.scanRun([]item{{text: content}}, from, excluded, pc)
}

// scanRun applies each rule in turn to a run of items. A match renders
// into one frozen item, so later rules may wrap it whole but never cut
// into it. The claimed text is scanned by the rules after the match's own
// under its incompatibilities as well.
func (p *Parser) scanRun(run []item, from int, excluded modifier.Set, pc *parsing.Context) (*outcome.Outcome, error) {
	if excluded.IsAll() {
		return flatten(run, true), nil
	}

	rules := p.codex.TextRules()
	for i := from; i < len(rules) && hasText(run); i++ {
		e := rules[i]
		if excluded.Contains(e.Modifier.ID) {
			continue
		}
		inner := excluded.Union(e.Modifier.Incompatible)

		var err error
		if s, ok := e.Rule.(rule.Spanner); ok {
			run, err = p.applyJoined(s, run, i, inner, pc)
		} else {
			run, err = p.applyEach(e.Rule, run, i, inner, pc)
		}
		if err != nil {
			return nil, err
		}
	}
	return flatten(run, false), nil
}

// applyJoined matches s against the run with every frozen item standing
// in as a placeholder, so a delimiter pair may enclose earlier matches.
// A match that would carry a frozen item into fixed output (an attribute,
// escaped code) is left unmatched.
func (p *Parser) applyJoined(s rule.Spanner, run []item, i int, inner modifier.Set, pc *parsing.Context) ([]item, error) {
	joined, frozen, ok := join(run)
	if !ok {
		return p.applyEach(s, run, i, inner, pc)
	}
	if !s.IsMatch(joined) {
		return run, nil
	}

	var out []item
	last := 0
	for _, loc := range s.FindAll(joined) {
		match, err := s.Expand(joined, loc, pc)
		if err != nil {
			return nil, err
		}
		if carriesPlaceholder(match) {
			continue
		}
		out = append(out, split(joined[last:loc[0]], frozen)...)

		rendered := outcome.New()
		for _, part := range match.Parts() {
			if part.Fixed {
				rendered.AddFixed(part.Text)
				continue
			}
			sub, err := p.scanRun(split(part.Text, frozen), i+1, inner, pc)
			if err != nil {
				return nil, err
			}
			rendered.Append(sub)
		}
		out = append(out, item{frozen: rendered})
		last = loc[1]
	}
	return append(out, split(joined[last:], frozen)...), nil
}

// applyEach runs r over each text item on its own.
func (p *Parser) applyEach(r rule.Rule, run []item, i int, inner modifier.Set, pc *parsing.Context) ([]item, error) {
	out := make([]item, 0, len(run))
	for _, it := range run {
		if it.frozen != nil || !r.IsMatch(it.text) {
			out = append(out, it)
			continue
		}
		parsed, err := r.Parse(it.text, pc)
		if err != nil {
			return nil, err
		}
		for _, part := range parsed.Parts() {
			switch {
			case part.Fixed:
				out = append(out, item{frozen: outcome.NewFixed(part.Text)})
			case part.Nested:
				sub, err := p.scanRun([]item{{text: part.Text}}, i+1, inner, pc)
				if err != nil {
					return nil, err
				}
				out = append(out, item{frozen: sub})
			default:
				out = append(out, item{text: part.Text})
			}
		}
	}
	return out, nil
}

// ParseParagraph renders content with the paragraph rule bound to id, or
// with the first paragraph rule matching content when id is empty or does
// not match. The rule's incompatibilities seed the text scan of its
// mutable output.
func (p *Parser) ParseParagraph(content string, id modifier.ID, pc *parsing.Context) (*outcome.Outcome, error) {
	e, ok := p.paragraphRule(content, id)
	if !ok {
		return nil, fmt.Errorf("%w: no paragraph rule matches %q", parsing.ErrElaboration, truncate(content))
	}

	out, err := e.Rule.Parse(content, pc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", e.Modifier.ID, err)
	}
	return p.Rescan(out, e.Modifier.Incompatible, pc)
}

func (p *Parser) paragraphRule(content string, id modifier.ID) (codex.Entry, bool) {
	if id != "" {
		if e, ok := p.codex.ParagraphRule(id); ok && e.Rule.IsMatch(content) {
			return e, true
		}
	}
	for _, e := range p.codex.ParagraphRules() {
		if e.Rule.IsMatch(content) {
			return e, true
		}
	}
	return codex.Entry{}, false
}

// parseParagraph fills par's outcome. Blank paragraphs render as nothing.
func (p *Parser) parseParagraph(par *document.Paragraph, pc *parsing.Context) error {
	if par.Content == "" {
		par.Outcome = outcome.New()
		return nil
	}
	out, err := p.ParseParagraph(par.Content, par.ModifierID, pc)
	if err != nil {
		return err
	}
	par.Outcome = out
	return nil
}

// ParseHeading fills h's outcome from its level and title.
func (p *Parser) ParseHeading(h *document.Heading, pc *parsing.Context) error {
	out, err := p.Rescan(p.codex.Heading().Render(h.Level, h.Title), modifier.None(), pc)
	if err != nil {
		return fmt.Errorf("heading %q: %w", h.Title, err)
	}
	h.Outcome = out
	return nil
}

func truncate(s string) string {
	const limit = 40
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "..."
}
