package nmd

import (
	"errors"

	"github.com/alnah/go-nmd/internal/config"
	"github.com/alnah/go-nmd/internal/parsing"
)

// Parsing errors, raised by rules and wrapped with the document and
// modifier they occurred in.
var (
	ErrInvalidPattern    = parsing.ErrInvalidPattern
	ErrInvalidSource     = parsing.ErrInvalidSource
	ErrElaboration       = parsing.ErrElaboration
	ErrListItem          = parsing.ErrListItem
	ErrFocusBlock        = parsing.ErrFocusBlock
	ErrReferenceNotFound = parsing.ErrReferenceNotFound
	ErrResource          = parsing.ErrResource
)

// Dossier file errors.
var (
	ErrConfigNotFound = config.ErrConfigNotFound
	ErrConfigParse    = config.ErrConfigParse
	ErrFieldTooLong   = config.ErrFieldTooLong
	ErrInvalidValue   = config.ErrInvalidValue
	ErrDuplicateKey   = config.ErrDuplicateKey
)

// Sentinel errors for compiler operations.
var (
	ErrNoDocuments       = errors.New("dossier has no documents")
	ErrReadDocument      = errors.New("failed to read document")
	ErrDuplicateDocument = errors.New("duplicate document name")
	ErrUnknownDocument   = errors.New("unknown document")
)
