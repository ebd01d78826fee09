package cv2docx

import "errors"

// Sentinel errors for library operations.
var (
	// Photo pipeline errors.
	ErrUnreadableImage    = errors.New("unreadable image")
	ErrResolutionTooLow   = errors.New("image resolution below minimum")
	ErrSizeBudgetExceeded = errors.New("compressed image exceeds size budget")

	// Photo resolution errors.
	ErrUnresolvedPhoto = errors.New("photo reference could not be resolved")
	ErrPhotoRequired   = errors.New("photo required but not available")

	// Record validation errors.
	ErrMissingRequiredField = errors.New("missing required field")

	// Rendering errors.
	ErrDocxRender = errors.New("docx rendering failed")

	// Photo settings validation errors.
	ErrInvalidPhotoSettings = errors.New("invalid photo settings")
	ErrInvalidPhotoPosition = errors.New("invalid photo position")

	// Profile source errors.
	ErrProfileSourceParse = errors.New("failed to parse profile source")
	ErrNoProfiles         = errors.New("no profiles found in source")

	// Batch errors.
	ErrAllRecordsFailed = errors.New("all records failed")
)
