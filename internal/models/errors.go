package models

import "errors"

var (
	// ErrNotFound is returned when a requested row does not exist
	ErrNotFound = errors.New("not found")

	// ErrDuplicateTitle is returned when a title collides with an existing row
	ErrDuplicateTitle = errors.New("duplicate title")
)
