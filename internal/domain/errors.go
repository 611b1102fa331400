package domain

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrInternalProcessing = errors.New("internal processing failure")
)

// ProcessingError carries the detail of an unexpected failure while
// processing otherwise valid input. It matches ErrInternalProcessing.
type ProcessingError struct {
	Detail string
}

func (e *ProcessingError) Error() string {
	return ErrInternalProcessing.Error() + ": " + e.Detail
}

func (e *ProcessingError) Unwrap() error {
	return ErrInternalProcessing
}
