package datadir

import (
	"fmt"
)

// Reason explains why a candidate root was rejected.
type Reason string

const (
	ReasonNotCreatable           Reason = "not-creatable"
	ReasonNotExistingAfterCreate Reason = "not-existing-after-create"
	ReasonNotWritable            Reason = "not-writable"
	ReasonNotAbsolute            Reason = "not-absolute"
)

// RootInvalidError is returned by the validator for an unusable candidate root.
// It never aborts resolution: the builder falls back to the default root.
type RootInvalidError struct {
	Path   string
	Reason Reason
	Err    error
}

func (e *RootInvalidError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("data directory %q rejected (%s): %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("data directory %q rejected (%s)", e.Path, e.Reason)
}

func (e *RootInvalidError) Unwrap() error {
	return e.Err
}

// SubdirCreateError aborts resolution: a resolved subdirectory could not be created.
type SubdirCreateError struct {
	Role Role
	Path string
	Err  error
}

func (e *SubdirCreateError) Error() string {
	return fmt.Sprintf("cannot create %s directory %q: %v", e.Role, e.Path, e.Err)
}

func (e *SubdirCreateError) Unwrap() error {
	return e.Err
}
