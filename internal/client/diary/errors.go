package diary

import (
	"errors"
	"fmt"
)

var (
	ErrUserCancelled      = errors.New("cancelled by user")
	ErrAuthentication     = errors.New("wrong password")
	ErrMalformedData      = errors.New("diary data is malformed")
	ErrStorageUnavailable = errors.New("storage unavailable")
	ErrPartialFailure     = errors.New("change kept in memory but not saved")
	ErrBusy               = errors.New("a file dialog is already open")
	ErrLocked             = errors.New("diary is locked")
	ErrInvalidState       = errors.New("operation not allowed in the current state")
	ErrEntryNotFound      = errors.New("diary entry not found")
	ErrEmptyContent       = errors.New("diary content is empty")
	ErrInvalidDate        = errors.New("date must be YYYY-MM-DD")
	ErrEmptyPassword      = errors.New("password is empty")
	ErrPasswordMismatch   = errors.New("passwords do not match")
)

// PartialFailureError reports a mutation that was applied in memory but
// could not be written out.
type PartialFailureError struct {
	Op  string
	Err error
}

func (e *PartialFailureError) Error() string {
	return fmt.Sprintf("%s: %v: %v", e.Op, ErrPartialFailure, e.Err)
}

func (e *PartialFailureError) Unwrap() []error {
	return []error{ErrPartialFailure, e.Err}
}
