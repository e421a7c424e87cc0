package errors

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidRequest        = errors.New("invalid request")
	ErrInvalidNumericElement = errors.New("invalid numeric element")
	ErrIntegerOverflow       = errors.New("integer sum overflows int64")
	ErrInvalidPayload        = errors.New("invalid payload")
	ErrInvalidJobID          = errors.New("invalid job id")
	ErrInvalidQueue          = errors.New("invalid queue")
	ErrJobNotFound           = errors.New("job not found")
	ErrJobAlreadyExists      = errors.New("job already exists")

	ErrInvalidRecipeName = errors.New("invalid recipe name")
	ErrInvalidEntry      = errors.New("invalid cookbook entry")
	ErrEntryExists       = errors.New("cookbook entry already exists")
	ErrEntryNotFound     = errors.New("cookbook entry not found")
	ErrNotRecipe         = errors.New("cookbook entry is not a recipe")
	ErrCyclicRecipe      = errors.New("recipe references itself")
	ErrQuantityOverflow  = errors.New("recipe quantity overflows")
)

// ElementError reports which element of an input array could not be used.
type ElementError struct {
	Index int
	Value string
	Cause error
}

func (e *ElementError) Error() string {
	return fmt.Sprintf("element %d (%s): %v", e.Index, e.Value, e.Cause)
}

func (e *ElementError) Unwrap() error {
	return e.Cause
}

func NewElementError(index int, value string, cause error) *ElementError {
	return &ElementError{
		Index: index,
		Value: value,
		Cause: cause,
	}
}

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidEntry
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// AsElementError returns the first ElementError in err's chain.
func AsElementError(err error) (*ElementError, bool) {
	var elemErr *ElementError
	if errors.As(err, &elemErr) {
		return elemErr, true
	}
	return nil, false
}

func AsValidationError(err error) (*ValidationError, bool) {
	var valErr *ValidationError
	if errors.As(err, &valErr) {
		return valErr, true
	}
	return nil, false
}
