// Package parsing holds the settings every rule reads while parsing and
// the per-call context threaded through the parser.
package parsing

import "maps"

// Bullet outputs shared by the default table.
const (
	BulletDisc       = "&bull;"
	BulletCircle     = "&#9702;"
	BulletArrow      = "&#8594;"
	BulletMinus      = "&minus;"
	BulletInvisible  = "&#8205;"
	BulletCheckbox   = `<input type="checkbox" class="checkbox" disabled />`
	BulletCheckedBox = `<input type="checkbox" class="checkbox checkbox-checked" checked disabled />`
)

// Default multi-image layout.
const DefaultImageJustify = "space-around"

// DefaultCodeStyle is the chroma style used when none is configured.
const DefaultCodeStyle = "github"

// BulletRecord maps a source bullet token to its output at some
// indentation level. Strict records apply only at exactly Level; others
// apply at Level or deeper.
type BulletRecord struct {
	From   string `yaml:"from"`
	To     string `yaml:"to"`
	Level  int    `yaml:"level"`
	Strict bool   `yaml:"strict"`
}

// Matches reports whether the record applies to token at level.
func (r BulletRecord) Matches(token string, level int) bool {
	if r.From != token {
		return false
	}
	if r.Strict {
		return level == r.Level
	}
	return level >= r.Level
}

// DefaultBullets returns the default bullet table, most specific first.
func DefaultBullets() []BulletRecord {
	return []BulletRecord{
		{From: "-", To: BulletDisc, Level: 0, Strict: true},
		{From: "-", To: BulletCircle, Level: 1},
		{From: "*", To: BulletDisc},
		{From: "+", To: BulletCircle},
		{From: "->", To: BulletArrow},
		{From: "--", To: BulletMinus},
		{From: "|", To: BulletInvisible},
		{From: "-[]", To: BulletCheckbox},
		{From: "-[ ]", To: BulletCheckbox},
		{From: "- [ ]", To: BulletCheckbox},
		{From: "-[x]", To: BulletCheckedBox},
		{From: "-[X]", To: BulletCheckedBox},
		{From: "- [x]", To: BulletCheckedBox},
		{From: "- [X]", To: BulletCheckedBox},
	}
}

// BibliographyRecord is one entry of the supplied bibliography.
type BibliographyRecord struct {
	Key         string   `yaml:"key"`
	Title       string   `yaml:"title"`
	Authors     []string `yaml:"authors"`
	Year        int      `yaml:"year"`
	URL         string   `yaml:"url"`
	Description string   `yaml:"description"`
}

// Bibliography is the ordered list of records; order gives citation numbers.
type Bibliography []BibliographyRecord

// Lookup returns the 1-based citation number and record for key.
func (b Bibliography) Lookup(key string) (int, BibliographyRecord, bool) {
	for i, r := range b {
		if r.Key == key {
			return i + 1, r, true
		}
	}
	return 0, BibliographyRecord{}, false
}

// Configuration is shared read-only by every parse call of a compilation.
type Configuration struct {
	// InputLocation is the root against which relative image paths resolve.
	InputLocation string

	EmbedLocalImage       bool
	EmbedRemoteImage      bool
	CompressEmbeddedImage bool

	StrictImageSrcCheck   bool
	StrictListCheck       bool
	StrictFocusBlockCheck bool
	StrictReferenceCheck  bool

	Bullets []BulletRecord

	// Parallelization gates every fan-out point; Workers bounds each one
	// (0 means automatic).
	Parallelization bool
	Workers         int

	// FastDraft replaces expensive rule work with placeholders.
	FastDraft bool

	MultiImageJustify string
	CodeStyle         string

	References   map[string]string
	Bibliography Bibliography
}

// DefaultConfiguration returns the settings used when nothing is configured.
func DefaultConfiguration() *Configuration {
	return &Configuration{
		EmbedLocalImage:       true,
		CompressEmbeddedImage: false,
		StrictImageSrcCheck:   true,
		StrictListCheck:       true,
		StrictFocusBlockCheck: true,
		Bullets:               DefaultBullets(),
		MultiImageJustify:     DefaultImageJustify,
		CodeStyle:             DefaultCodeStyle,
		References:            map[string]string{},
	}
}

// Clone returns a deep copy, for callers deriving a variant configuration.
func (c *Configuration) Clone() *Configuration {
	out := *c
	out.Bullets = append([]BulletRecord(nil), c.Bullets...)
	out.References = maps.Clone(c.References)
	out.Bibliography = append(Bibliography(nil), c.Bibliography...)
	return &out
}
