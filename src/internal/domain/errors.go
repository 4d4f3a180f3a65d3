package domain

import "errors"

var ErrBusy = errors.New("another request is already in progress")
var ErrMalformedAccount = errors.New("malformed account response")

// OperationError is the single failure kind surfaced to users. Error returns
// Message verbatim; Operation and StatusCode are for logs only.
type OperationError struct {
	Operation  string
	StatusCode int
	Message    string
	Err        error
}

func (e *OperationError) Error() string {
	return e.Message
}

func (e *OperationError) Unwrap() error {
	return e.Err
}
