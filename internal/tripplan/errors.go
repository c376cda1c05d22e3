package tripplan

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedResponse means the text could not be parsed even after repair.
	ErrMalformedResponse = errors.New("malformed model response")
	// ErrInvalidStructure means the text parsed but was not a JSON object.
	ErrInvalidStructure = errors.New("model response is not a json object")
	// ErrMissingField means a required top-level key is absent or null.
	ErrMissingField = errors.New("required field missing")
)

// MalformedResponseError keeps the raw model text for diagnostics.
type MalformedResponseError struct {
	Raw string
	Err error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("%s: %v", ErrMalformedResponse, e.Err)
}

func (e *MalformedResponseError) Is(target error) bool { return target == ErrMalformedResponse }

func (e *MalformedResponseError) Unwrap() error { return e.Err }

// MissingFieldError names the first required key that was not present.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMissingField, e.Field)
}

func (e *MissingFieldError) Is(target error) bool { return target == ErrMissingField }
