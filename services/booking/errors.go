package booking

import "errors"

// ErrBookingNotFound signals that the backend returned no matching record.
var ErrBookingNotFound = errors.New("booking not found")

// OperationError surfaces the backend-supplied message verbatim while
// keeping the underlying error chain intact.
type OperationError struct {
	Message string
	Err     error
}

func (e *OperationError) Error() string {
	return e.Message
}

func (e *OperationError) Unwrap() error {
	return e.Err
}
