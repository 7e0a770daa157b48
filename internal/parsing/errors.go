package parsing

import "errors"

// Sentinel errors for parsing operations.
var (
	// ErrInvalidPattern means a rule's own pattern failed to compile. It is
	// an authoring bug, raised when the codex is built.
	ErrInvalidPattern = errors.New("invalid rule pattern")

	// ErrInvalidSource means an image source could not be resolved.
	ErrInvalidSource = errors.New("invalid source")

	// ErrElaboration is a generic internal parsing failure.
	ErrElaboration = errors.New("elaboration error")

	// ErrListItem means a list block holds lines that are not list items.
	ErrListItem = errors.New("unrecognized list item")

	// ErrFocusBlock means a quote block holds a line without the quote marker.
	ErrFocusBlock = errors.New("invalid quote line")

	// ErrReferenceNotFound means a reference or citation key is unknown.
	ErrReferenceNotFound = errors.New("reference not found")

	// ErrResource wraps I/O failures on resources a document points to.
	ErrResource = errors.New("resource error")
)
