package collection

import "errors"

// ErrNotFound indicates a requested record does not exist.
var ErrNotFound = errors.New("collection: not found")

// ErrProfileNotFound indicates the named profile has no collection on disk.
var ErrProfileNotFound = errors.New("collection: profile not found")

// ErrClosed indicates an operation on a closed collection handle.
var ErrClosed = errors.New("collection: handle is closed")
