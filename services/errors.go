package services

import "fmt"

// ValidationError is a missing or blank required parameter. No store call
// was made.
type ValidationError struct {
	Param   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NotFoundError means the filter ran and matched nothing.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

// StoreError wraps a failure of the document store. Message is the text the
// client sees; Err is only ever logged.
type StoreError struct {
	Op      string
	Message string
	Err     error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}
