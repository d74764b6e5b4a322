package main

import "fmt"

// newUserErrorf is a user-facing error.
// this function is mostly to avoid linters complain about errors starting with a capitalized letter.
func newUserErrorf(format string, a ...any) error {
	return fmt.Errorf(format, a...)
}

// ligasError is a wrapper around an error that adds additional context.
type ligasError struct {
	err    error
	reason string
}

func (m ligasError) Error() string {
	return m.err.Error()
}

func (m ligasError) Reason() string {
	return m.reason
}

func (m ligasError) Unwrap() error {
	return m.err
}
