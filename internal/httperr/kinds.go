package httperr

import "fmt"

// LookupError means backing data could not be read (store unreachable, query failed).
type LookupError struct {
	Op  string
	Err error
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("lookup %s: %v", e.Op, e.Err)
}

func (e *LookupError) Unwrap() error {
	return e.Err
}

func Lookup(op string, err error) error {
	return &LookupError{Op: op, Err: err}
}

// ValidationError reports malformed domain data, e.g. a template window with start >= end.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func Validation(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// InputError reports caller input that cannot be represented, e.g. a date out of range.
type InputError struct {
	Field  string
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("bad input %s: %s", e.Field, e.Reason)
}

func Input(field, reason string) error {
	return &InputError{Field: field, Reason: reason}
}
