package nmd

import (
	"github.com/alnah/go-nmd/internal/config"
	"github.com/alnah/go-nmd/internal/document"
	"github.com/alnah/go-nmd/internal/parsing"
)

// Compilation output.
type (
	Dossier   = document.Dossier
	Document  = document.Document
	Chapter   = document.Chapter
	Heading   = document.Heading
	Paragraph = document.Paragraph
)

// Compilation settings.
type (
	Configuration      = parsing.Configuration
	BulletRecord       = parsing.BulletRecord
	BibliographyRecord = parsing.BibliographyRecord
	Bibliography       = parsing.Bibliography
)

// DossierConfig is the decoded nmd.yaml of a dossier.
type DossierConfig = config.Config

// DefaultConfiguration returns the settings used when nothing is configured.
func DefaultConfiguration() *Configuration {
	return parsing.DefaultConfiguration()
}

// LoadDossierConfig finds and decodes the dossier file of dir.
func LoadDossierConfig(dir string) (*DossierConfig, error) {
	cfg, _, err := config.LoadDossier(dir)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}
