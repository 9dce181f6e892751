package application

import "errors"

var (
	// ErrCourseNotFound is returned when a referenced course does not exist.
	ErrCourseNotFound = errors.New("application: course not found")
	// ErrBlockNotFound is returned when a referenced block does not exist.
	ErrBlockNotFound = errors.New("application: block not found")
	// ErrRoomNotFound is returned when a referenced room does not exist.
	ErrRoomNotFound = errors.New("application: room not found")
	// ErrCoordinatorNotFound is returned when a referenced coordinator does
	// not exist. During the exclusivity check this is an authorization
	// failure: the check cannot proceed, so the request is never allowed
	// through silently.
	ErrCoordinatorNotFound = errors.New("application: coordinator not found")
	// ErrReservationNotFound is returned when the requested reservation does
	// not exist.
	ErrReservationNotFound = errors.New("application: reservation not found")
	// ErrForbidden is returned when a coordinator from another course tries
	// to reserve an exclusive room.
	ErrForbidden = errors.New("application: forbidden")
	// ErrConflict is returned when the requested slot overlaps an existing
	// reservation for the same room and date.
	ErrConflict = errors.New("application: reservation conflict")
	// ErrDuplicateEmail is returned when a coordinator email is already
	// registered.
	ErrDuplicateEmail = errors.New("application: email already registered")
	// ErrReferenced is returned when a delete is rejected because other
	// records still reference the entity.
	ErrReferenced = errors.New("application: entity still referenced")
)

// ValidationError captures field level validation issues that callers can
// surface to users.
type ValidationError struct {
	FieldErrors map[string]string
}

// Error implements the error interface.
func (v *ValidationError) Error() string {
	if v == nil {
		return ""
	}
	return "validation failed"
}

// HasErrors reports whether any field level issues were recorded.
func (v *ValidationError) HasErrors() bool {
	return v != nil && len(v.FieldErrors) > 0
}

// add records a field level validation error.
func (v *ValidationError) add(field, message string) {
	if v.FieldErrors == nil {
		v.FieldErrors = make(map[string]string)
	}
	v.FieldErrors[field] = message
}
