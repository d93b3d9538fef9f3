package interfaces

import "errors"

// ErrGraphNotFound is wrapped by every repository implementation when a
// requested graph does not exist, so callers can match it regardless of
// the backing store.
var ErrGraphNotFound = errors.New("graph not found")
