package store

import "errors"

var (
	// ErrUnavailable is returned when a location cannot be opened or its
	// container cannot be created.
	ErrUnavailable = errors.New("store unavailable")

	// ErrKeyNotFound is returned by Get and Delete for an absent key.
	ErrKeyNotFound = errors.New("key not found")

	// ErrInvalidKey is returned for the empty key.
	ErrInvalidKey = errors.New("invalid key")

	// ErrClosed is returned by operations on a closed DB.
	ErrClosed = errors.New("store closed")
)
