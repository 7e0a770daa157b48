package main

import (
	"errors"
	"os"

	nmd "github.com/alnah/go-nmd"
)

// Exit codes for the nmd CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful compilation
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied
	ExitSource  = 4 // Malformed NMD source under strict checks
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Source errors (exit 4), checked first: some wrap I/O failures
	if errors.Is(err, nmd.ErrInvalidSource) ||
		errors.Is(err, nmd.ErrListItem) ||
		errors.Is(err, nmd.ErrFocusBlock) ||
		errors.Is(err, nmd.ErrReferenceNotFound) ||
		errors.Is(err, nmd.ErrElaboration) ||
		errors.Is(err, nmd.ErrResource) {
		return ExitSource
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, nmd.ErrReadDocument) ||
		errors.Is(err, ErrWriteOutput) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, nmd.ErrConfigNotFound) ||
		errors.Is(err, nmd.ErrConfigParse) ||
		errors.Is(err, nmd.ErrFieldTooLong) ||
		errors.Is(err, nmd.ErrInvalidValue) ||
		errors.Is(err, nmd.ErrDuplicateKey) ||
		errors.Is(err, nmd.ErrNoDocuments) ||
		errors.Is(err, nmd.ErrDuplicateDocument) ||
		errors.Is(err, nmd.ErrUnknownDocument) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrTooManyArgs) ||
		errors.Is(err, ErrConflictingFlags) ||
		errors.Is(err, ErrConfigExists) ||
		errors.Is(err, ErrUnknownCommand) ||
		errors.Is(err, ErrInvalidFlags) {
		return ExitUsage
	}

	return ExitGeneral
}
