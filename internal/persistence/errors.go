package persistence

import "errors"

var (
	// ErrNotFound is returned when the requested record does not exist.
	ErrNotFound = errors.New("persistence: not found")
	// ErrDuplicate is returned when a uniqueness constraint is violated.
	ErrDuplicate = errors.New("persistence: duplicate record")
	// ErrConflict is returned when a reservation write loses the overlap
	// guard inside its transaction.
	ErrConflict = errors.New("persistence: reservation slot conflict")
	// ErrConstraintViolation is returned when a check constraint rejects a
	// field value.
	ErrConstraintViolation = errors.New("persistence: constraint violation")
	// ErrForeignKeyViolation is returned when a write references or is
	// referenced by a missing or protected record.
	ErrForeignKeyViolation = errors.New("persistence: foreign key violation")
)
