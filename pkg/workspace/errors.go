package workspace

import "errors"

var (
	// ErrNotFound is returned when an operation references an id absent
	// from the collections.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateName is returned when a folder create or rename would
	// collide with a sibling's name.
	ErrDuplicateName = errors.New("duplicate sibling name")

	// ErrInvalidName is returned when a trimmed name comes out empty.
	ErrInvalidName = errors.New("invalid name")

	// ErrExists is returned when restoring an entity whose id is already
	// present.
	ErrExists = errors.New("already exists")

	// ErrSessionClosed is returned when writing through a closed edit
	// session.
	ErrSessionClosed = errors.New("edit session closed")
)
