package domain

import "fmt"

// NotFoundError indicates a referenced entity id or code does not resolve.
type NotFoundError struct {
	Entity string
	Ref    string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Entity, e.Ref)
}

// NotFound builds a NotFoundError for the given entity and reference.
func NotFound(entity, ref string) error {
	return &NotFoundError{Entity: entity, Ref: ref}
}

// InvalidOperationError indicates a well-formed request violates a domain
// rule: wrong gate function, site mismatch, ineligible carrier, wrong
// lifecycle status, slot not available, missing field, role mismatch.
type InvalidOperationError struct {
	Reason string
}

func (e *InvalidOperationError) Error() string {
	return e.Reason
}

// Invalidf builds an InvalidOperationError with a formatted reason.
func Invalidf(format string, args ...interface{}) error {
	return &InvalidOperationError{Reason: fmt.Sprintf(format, args...)}
}
