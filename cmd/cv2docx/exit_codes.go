package main

import (
	"errors"
	"os"

	cv2docx "github.com/nruiz/go-cv2docx"
	"github.com/nruiz/go-cv2docx/internal/config"
)

// Exit codes for the cv2docx CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess   = 0 // at least one record succeeded
	ExitGeneral   = 1 // general/unexpected error
	ExitUsage     = 2 // invalid flags, config, or validation
	ExitIO        = 3 // input file missing or unreadable
	ExitAllFailed = 4 // batch ran but every record failed
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use
// fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Total batch failure (exit 4)
	if errors.Is(err, cv2docx.ErrAllRecordsFailed) {
		return ExitAllFailed
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, cv2docx.ErrNoProfiles) ||
		errors.Is(err, cv2docx.ErrProfileSourceParse) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrInvalidConfig) ||
		errors.Is(err, cv2docx.ErrInvalidPhotoSettings) ||
		errors.Is(err, cv2docx.ErrInvalidPhotoPosition) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrUnsupportedInput) {
		return ExitUsage
	}

	return ExitGeneral
}
