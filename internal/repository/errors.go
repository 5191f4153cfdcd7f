package repository

import "errors"

var (
	// ErrNotFound is returned when a requested record or the collection
	// document does not exist.
	ErrNotFound = errors.New("record not found")
)
