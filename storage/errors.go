package storage

import "errors"

// Common storage errors.
var (
	// ErrNotFound is returned when a shapes graph is not found.
	ErrNotFound = errors.New("shapes graph not found")
	// ErrBadName is returned for names a KV key cannot hold.
	ErrBadName = errors.New("invalid shapes graph name")
)
