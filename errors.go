package bricks

import "errors"

var (
	// ErrInvalidID is returned when an identifier does not follow the ID format.
	ErrInvalidID = errors.New("invalid set id")
	// ErrDuplicateID is returned when an identifier is already in the collection.
	ErrDuplicateID = errors.New("set id already exists")
	// ErrNotFound is returned when no set has the requested identifier.
	ErrNotFound = errors.New("set not found")
	// ErrImportFormat is returned when an imported file cannot be read at all.
	ErrImportFormat = errors.New("failed to import file, please check the format")
)
