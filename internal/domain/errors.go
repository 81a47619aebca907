package domain

import "errors"

// Sentinel errors for domain operations
var (
	// ErrUnknownSource indicates the requested ranking source is not built in
	ErrUnknownSource = errors.New("unknown ranking source")

	// ErrStoreClosed indicates the preference store has already been closed
	ErrStoreClosed = errors.New("preference store is closed")
)
