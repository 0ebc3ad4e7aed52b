package cli

// Error codes for structured error responses.
// These codes are stable and can be relied upon by scripts and agents.
const (
	// Configuration errors
	ErrConfigInvalid   = "CONFIG_INVALID"
	ErrRootNotFound    = "ROOT_NOT_FOUND"
	ErrRootUnspecified = "ROOT_NOT_SPECIFIED"

	// Note errors
	ErrNoteNotFound = "NOTE_NOT_FOUND"

	// Task errors
	ErrTaskNotFound = "TASK_NOT_FOUND"

	// Store errors
	ErrStoreError = "STORE_ERROR"

	// Input errors
	ErrInvalidInput = "INVALID_INPUT"

	// General errors
	ErrScanFailed = "SCAN_FAILED"
	ErrInternal   = "INTERNAL_ERROR"
)
