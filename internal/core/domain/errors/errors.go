package errors

import "fmt"

// InvalidStateError reports a domain object that breaks its own invariants.
type InvalidStateError struct {
	msg string
}

func NewInvalidStateErrorf(format string, args ...interface{}) *InvalidStateError {
	return &InvalidStateError{msg: fmt.Sprintf(format, args...)}
}

func (e *InvalidStateError) Error() string {
	return "invalid state: " + e.msg
}

// NilArgumentError is panicked by constructors given a nil dependency.
type NilArgumentError struct {
	Argument string
}

func NewNilArgumentError(argument string) *NilArgumentError {
	return &NilArgumentError{Argument: argument}
}

func (e *NilArgumentError) Error() string {
	return fmt.Sprintf("argument %q must not be nil", e.Argument)
}
