package domain

import "errors"

// Sentinel errors shared across services and repositories.
var (
	// ErrNotFound means the referenced entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrForbidden means the acting user is not allowed to perform the operation.
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidDate means a year/month/day triple does not denote a real
	// calendar date.
	ErrInvalidDate = errors.New("invalid date")

	// ErrInvalidInput means a field-level validation failure (blank name,
	// slot outside the catalog, ...).
	ErrInvalidInput = errors.New("invalid input")
)

// NeedsInputError is a recoverable validation failure. It carries the slot
// catalog the caller should re-present, anchored to AnchorDate when the
// failed operation targeted an existing event (updates), unanchored when
// there is no prior date (creates).
type NeedsInputError struct {
	Reason     error
	Slots      []TimeOfDay
	AnchorDate *CalendarDate
}

func (e *NeedsInputError) Error() string {
	return e.Reason.Error()
}

// Unwrap lets errors.Is match the underlying reason (ErrInvalidDate or
// ErrInvalidInput).
func (e *NeedsInputError) Unwrap() error {
	return e.Reason
}
