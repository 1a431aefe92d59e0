package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrValidation is the kind of a ValidationError raised for event input.
var ErrValidation = errors.New("validation failed")

// ErrInvalidAttendee is the kind of a ValidationError raised for
// registration input.
var ErrInvalidAttendee = errors.New("invalid attendee")

// ErrInvalidDateTime is returned when an event date or time does not parse.
var ErrInvalidDateTime = errors.New("invalid date or time format")

// ValidationError carries one message per offending field, keyed by the
// field's JSON name.
type ValidationError struct {
	Kind   error
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return fmt.Sprintf("%v: %s", e.Kind, strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error {
	return e.Kind
}
