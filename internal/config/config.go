// Package config loads the dossier file (nmd.yaml) that lists a dossier's
// documents and the settings used to compile them.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-nmd/internal/fileutil"
	"github.com/alnah/go-nmd/internal/modifier"
	"github.com/alnah/go-nmd/internal/parsing"
	"github.com/alnah/go-nmd/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound = errors.New("config file not found")
	ErrEmptyConfigDir = errors.New("config directory cannot be empty")
	ErrConfigParse    = errors.New("failed to parse config")
	ErrFieldTooLong   = errors.New("field exceeds maximum length")
	ErrInvalidValue   = errors.New("invalid config value")
	ErrDuplicateKey   = errors.New("duplicate key")
)

// FileBaseName is the dossier file name without extension.
const FileBaseName = "nmd"

// userDirName is the directory under os.UserConfigDir holding the
// fallback dossier file.
const userDirName = "go-nmd"

// Field length limits.
const (
	MaxNameLength      = 200
	MaxPathLength      = 4096
	MaxURLLength       = 2048
	MaxKeyLength       = 100
	MaxTitleLength     = 300
	MaxTextLength      = 2000
	MaxStyleNameLength = 50
	MaxBulletLength    = 200
	MaxWorkers         = 64
)

// justifyValues are the flex layouts accepted for multi-image blocks.
var justifyValues = map[string]bool{
	"flex-start":    true,
	"flex-end":      true,
	"center":        true,
	"space-between": true,
	"space-around":  true,
	"space-evenly":  true,
}

// Config is the decoded dossier file.
type Config struct {
	Name         string             `yaml:"name"`
	Documents    []string           `yaml:"documents"`
	Output       OutputConfig       `yaml:"output"`
	Compilation  CompilationConfig  `yaml:"compilation"`
	Bullets      []BulletConfig     `yaml:"bullets"`
	References   map[string]string  `yaml:"references"`
	Bibliography BibliographyConfig `yaml:"bibliography"`
	TOC          TOCConfig          `yaml:"toc"`
}

// OutputConfig defines where compiled HTML goes.
type OutputConfig struct {
	Path string `yaml:"path"` // Empty = <dossier name>.html next to the dossier file
}

// CompilationConfig mirrors parsing.Configuration. Pointer fields default
// to true when absent.
type CompilationConfig struct {
	EmbedLocalImage       *bool  `yaml:"embedLocalImage"`
	EmbedRemoteImage      bool   `yaml:"embedRemoteImage"`
	CompressEmbeddedImage bool   `yaml:"compressEmbeddedImage"`
	StrictImageSrcCheck   *bool  `yaml:"strictImageSrcCheck"`
	StrictListCheck       *bool  `yaml:"strictListCheck"`
	StrictFocusBlockCheck *bool  `yaml:"strictFocusBlockCheck"`
	StrictReferenceCheck  bool   `yaml:"strictReferenceCheck"`
	Parallelization       bool   `yaml:"parallelization"`
	Workers               int    `yaml:"workers"` // 0 = auto
	FastDraft             bool   `yaml:"fastDraft"`
	MultiImageJustify     string `yaml:"multiImageJustify"`
	CodeStyle             string `yaml:"codeStyle"`
}

// BulletConfig is one bullet table record.
type BulletConfig struct {
	From   string `yaml:"from"`
	To     string `yaml:"to"`
	Level  int    `yaml:"level"`
	Strict bool   `yaml:"strict"`
}

// BibliographyConfig holds the bibliography records, in citation order.
type BibliographyConfig struct {
	Title   string         `yaml:"title"`
	Records []RecordConfig `yaml:"records"`
}

// RecordConfig is one bibliography record.
type RecordConfig struct {
	Key         string   `yaml:"key"`
	Title       string   `yaml:"title"`
	Authors     []string `yaml:"authors"`
	Year        int      `yaml:"year"`
	URL         string   `yaml:"url"`
	Description string   `yaml:"description"`
}

// TOCConfig defines table of contents options.
type TOCConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Title    string `yaml:"title"`
	MinDepth int    `yaml:"minDepth"` // 1-6, default 1
	MaxDepth int    `yaml:"maxDepth"` // 1-6, default 3
	Numbered bool   `yaml:"numbered"`
}

// Validate checks field lengths and values. Called by LoadConfig, but
// available to callers who build a Config in code.
func (c *Config) Validate() error {
	if err := validateFieldLength("name", c.Name, MaxNameLength); err != nil {
		return err
	}
	if err := validateFieldLength("output.path", c.Output.Path, MaxPathLength); err != nil {
		return err
	}
	if err := c.validateDocuments(); err != nil {
		return err
	}
	if err := c.Compilation.validate(); err != nil {
		return err
	}
	for i, b := range c.Bullets {
		field := fmt.Sprintf("bullets[%d]", i)
		if b.From == "" {
			return fmt.Errorf("%w: %s.from is required", ErrInvalidValue, field)
		}
		if err := validateFieldLength(field+".from", b.From, MaxBulletLength); err != nil {
			return err
		}
		if err := validateFieldLength(field+".to", b.To, MaxBulletLength); err != nil {
			return err
		}
		if b.Level < 0 {
			return fmt.Errorf("%w: %s.level must not be negative, got %d", ErrInvalidValue, field, b.Level)
		}
	}
	for key, url := range c.References {
		if key == "" {
			return fmt.Errorf("%w: references: empty key", ErrInvalidValue)
		}
		if err := validateFieldLength("references key "+key, key, MaxKeyLength); err != nil {
			return err
		}
		if err := validateFieldLength("references."+key, url, MaxURLLength); err != nil {
			return err
		}
	}
	if err := c.Bibliography.validate(); err != nil {
		return err
	}
	return c.TOC.validate()
}

func (c *Config) validateDocuments() error {
	seen := make(map[string]bool, len(c.Documents))
	for i, doc := range c.Documents {
		field := fmt.Sprintf("documents[%d]", i)
		if strings.TrimSpace(doc) == "" {
			return fmt.Errorf("%w: %s is empty", ErrInvalidValue, field)
		}
		if err := validateFieldLength(field, doc, MaxPathLength); err != nil {
			return err
		}
		if !fileutil.HasSourceExtension(doc) {
			return fmt.Errorf("%w: %s: %q must end in %s", ErrInvalidValue, field, doc,
				strings.Join(fileutil.SourceExtensions, " or "))
		}
		clean := filepath.Clean(doc)
		if seen[clean] {
			return fmt.Errorf("%w: %s: %q listed twice", ErrDuplicateKey, field, doc)
		}
		seen[clean] = true
	}
	return nil
}

func (cc *CompilationConfig) validate() error {
	if cc.Workers < 0 || cc.Workers > MaxWorkers {
		return fmt.Errorf("%w: compilation.workers: must be between 0 and %d, got %d", ErrInvalidValue, MaxWorkers, cc.Workers)
	}
	if cc.MultiImageJustify != "" && !justifyValues[cc.MultiImageJustify] {
		return fmt.Errorf("%w: compilation.multiImageJustify: %q is not a flex justify-content value", ErrInvalidValue, cc.MultiImageJustify)
	}
	return validateFieldLength("compilation.codeStyle", cc.CodeStyle, MaxStyleNameLength)
}

func (b *BibliographyConfig) validate() error {
	if err := validateFieldLength("bibliography.title", b.Title, MaxTitleLength); err != nil {
		return err
	}
	seen := make(map[string]bool, len(b.Records))
	for i, r := range b.Records {
		field := fmt.Sprintf("bibliography.records[%d]", i)
		if r.Key == "" {
			return fmt.Errorf("%w: %s.key is required", ErrInvalidValue, field)
		}
		if seen[r.Key] {
			return fmt.Errorf("%w: %s.key %q", ErrDuplicateKey, field, r.Key)
		}
		seen[r.Key] = true
		if err := validateFieldLength(field+".key", r.Key, MaxKeyLength); err != nil {
			return err
		}
		if err := validateFieldLength(field+".title", r.Title, MaxTitleLength); err != nil {
			return err
		}
		if err := validateFieldLength(field+".url", r.URL, MaxURLLength); err != nil {
			return err
		}
		if err := validateFieldLength(field+".description", r.Description, MaxTextLength); err != nil {
			return err
		}
	}
	return nil
}

func (t *TOCConfig) validate() error {
	if err := validateFieldLength("toc.title", t.Title, MaxTitleLength); err != nil {
		return err
	}
	for _, d := range []struct {
		field string
		value int
	}{{"toc.minDepth", t.MinDepth}, {"toc.maxDepth", t.MaxDepth}} {
		if d.value != 0 && (d.value < 1 || d.value > modifier.MaxHeadingLevel) {
			return fmt.Errorf("%w: %s: must be between 1 and %d, got %d", ErrInvalidValue, d.field, modifier.MaxHeadingLevel, d.value)
		}
	}
	if t.MinDepth != 0 && t.MaxDepth != 0 && t.MinDepth > t.MaxDepth {
		return fmt.Errorf("%w: toc.minDepth (%d) is greater than toc.maxDepth (%d)", ErrInvalidValue, t.MinDepth, t.MaxDepth)
	}
	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns an empty dossier: documents are discovered, every
// compilation setting takes its default.
func DefaultConfig() *Config {
	return &Config{References: map[string]string{}}
}

// ParsingConfiguration converts the compilation settings into the
// read-only configuration shared by every parse call. inputRoot anchors
// relative image sources.
func (c *Config) ParsingConfiguration(inputRoot string) *parsing.Configuration {
	pc := parsing.DefaultConfiguration()
	pc.InputLocation = inputRoot

	cc := c.Compilation
	pc.EmbedLocalImage = boolOr(cc.EmbedLocalImage, pc.EmbedLocalImage)
	pc.EmbedRemoteImage = cc.EmbedRemoteImage
	pc.CompressEmbeddedImage = cc.CompressEmbeddedImage
	pc.StrictImageSrcCheck = boolOr(cc.StrictImageSrcCheck, pc.StrictImageSrcCheck)
	pc.StrictListCheck = boolOr(cc.StrictListCheck, pc.StrictListCheck)
	pc.StrictFocusBlockCheck = boolOr(cc.StrictFocusBlockCheck, pc.StrictFocusBlockCheck)
	pc.StrictReferenceCheck = cc.StrictReferenceCheck
	pc.Parallelization = cc.Parallelization
	pc.Workers = cc.Workers
	pc.FastDraft = cc.FastDraft
	if cc.MultiImageJustify != "" {
		pc.MultiImageJustify = cc.MultiImageJustify
	}
	if cc.CodeStyle != "" {
		pc.CodeStyle = cc.CodeStyle
	}

	if len(c.Bullets) > 0 {
		pc.Bullets = make([]parsing.BulletRecord, len(c.Bullets))
		for i, b := range c.Bullets {
			pc.Bullets[i] = parsing.BulletRecord(b)
		}
	}
	for k, v := range c.References {
		pc.References[k] = v
	}
	for _, r := range c.Bibliography.Records {
		pc.Bibliography = append(pc.Bibliography, parsing.BibliographyRecord(r))
	}
	return pc
}

func boolOr(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}

// Template returns the starter dossier written by `nmd init`.
func Template(name string, documents []string) *Config {
	yes := true
	return &Config{
		Name:      name,
		Documents: documents,
		Compilation: CompilationConfig{
			EmbedLocalImage:       &yes,
			StrictImageSrcCheck:   &yes,
			StrictListCheck:       &yes,
			StrictFocusBlockCheck: &yes,
			Parallelization:       true,
			MultiImageJustify:     parsing.DefaultImageJustify,
			CodeStyle:             parsing.DefaultCodeStyle,
		},
		TOC: TOCConfig{Enabled: true, MaxDepth: 3},
	}
}

// LoadConfig loads the dossier file at path. Returns an error if the file
// does not exist (no silent fallback).
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrConfigParse, path, err)
	}
	if cfg.References == nil {
		cfg.References = map[string]string{}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDossier finds and loads the dossier file for dir.
func LoadDossier(dir string) (*Config, string, error) {
	path, err := Find(dir)
	if err != nil {
		return nil, "", err
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

// SearchPaths lists, in order, where Find looks for the dossier file of
// dir: the directory itself, then the user config directory.
func SearchPaths(dir string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)
	for _, ext := range extensions {
		paths = append(paths, filepath.Join(dir, FileBaseName+ext))
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, userDirName, FileBaseName+ext))
		}
	}
	return paths
}

// Find returns the first existing path of SearchPaths(dir).
func Find(dir string) (string, error) {
	if dir == "" {
		return "", ErrEmptyConfigDir
	}
	tried := SearchPaths(dir)
	for _, p := range tried {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}
