package weekday

import (
	"errors"
	"fmt"
)

// ErrorKind classifies an ExpressionError.
type ErrorKind string

const (
	ErrorKindDigit        ErrorKind = "digit"
	ErrorKindToken        ErrorKind = "token"
	ErrorKindRange        ErrorKind = "range"
	ErrorKindUnrecognized ErrorKind = "unrecognized"
)

var (
	// ErrInvalidRange is matched by range expressions with an unknown endpoint.
	ErrInvalidRange = errors.New("invalid weekday range")
	// ErrInvalidDay is matched by lists and digit strings naming a day
	// that does not exist.
	ErrInvalidDay = errors.New("invalid weekday")
	// ErrUnrecognized is matched by expressions in none of the known forms.
	ErrUnrecognized = errors.New("unrecognized day expression")
)

// ExpressionError describes a day field that could not be normalized.
type ExpressionError struct {
	Kind    ErrorKind
	Input   string
	Message string
}

// Error implements the error interface.
func (e *ExpressionError) Error() string {
	return fmt.Sprintf("%s: %q", e.Message, e.Input)
}

// Unwrap maps the kind onto its sentinel.
func (e *ExpressionError) Unwrap() error {
	switch e.Kind {
	case ErrorKindRange:
		return ErrInvalidRange
	case ErrorKindDigit, ErrorKindToken:
		return ErrInvalidDay
	}
	return ErrUnrecognized
}

func digitError(input string, digit rune) *ExpressionError {
	return &ExpressionError{
		Kind:    ErrorKindDigit,
		Input:   input,
		Message: fmt.Sprintf("day number %q out of range 1-7", digit),
	}
}

func tokenError(input, token string) *ExpressionError {
	return &ExpressionError{
		Kind:    ErrorKindToken,
		Input:   input,
		Message: fmt.Sprintf("unknown weekday %q in list", token),
	}
}

func rangeError(input, endpoint string) *ExpressionError {
	return &ExpressionError{
		Kind:    ErrorKindRange,
		Input:   input,
		Message: fmt.Sprintf("unknown weekday %q in range", endpoint),
	}
}

func unrecognizedError(input string) *ExpressionError {
	return &ExpressionError{
		Kind:    ErrorKindUnrecognized,
		Input:   input,
		Message: "unrecognized day expression",
	}
}
