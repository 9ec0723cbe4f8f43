package nbpress

import "errors"

// Sentinel errors for rendering operations.
var (
	ErrEmptyPostName = errors.New("nbpress: post name cannot be empty")
	ErrNoExecutor    = errors.New("nbpress: post requests code execution but no executor is configured")
	ErrReadPost      = errors.New("nbpress: failed to read post source")
)
