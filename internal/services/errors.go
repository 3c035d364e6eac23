package services

import "errors"

// Import service errors
var (
	// ErrImportCapacity is returned when every import slot is taken
	ErrImportCapacity = errors.New("import capacity exhausted")

	// ErrNoEngine is returned when the service was built without an engine
	ErrNoEngine = errors.New("validation engine not configured")
)
