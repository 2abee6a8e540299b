package repository

import "errors"

var (
	// ErrNotFound is returned when a document does not exist.
	ErrNotFound = errors.New("document not found")
	// ErrConflict is returned when a conditional update matched nothing,
	// meaning another session changed the document first.
	ErrConflict = errors.New("conditional update conflict")
)
