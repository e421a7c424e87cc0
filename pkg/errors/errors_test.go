package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestElementErrorUnwrap(t *testing.T) {
	cause := fmt.Errorf("%w: fractional", ErrInvalidNumericElement)
	err := fmt.Errorf("aggregate: %w", NewElementError(3, "1.5", cause))

	if !errors.Is(err, ErrInvalidNumericElement) {
		t.Fatal("expected ErrInvalidNumericElement in chain")
	}
	elemErr, ok := AsElementError(err)
	if !ok {
		t.Fatal("expected ElementError in chain")
	}
	if elemErr.Index != 3 || elemErr.Value != "1.5" {
		t.Fatalf("unexpected element error: %+v", elemErr)
	}
}

func TestValidationErrorIsInvalidEntry(t *testing.T) {
	err := NewValidationError("cookTime", "must be a non-negative integer")
	if !errors.Is(err, ErrInvalidEntry) {
		t.Fatal("expected ErrInvalidEntry")
	}
	valErr, ok := AsValidationError(fmt.Errorf("create: %w", err))
	if !ok || valErr.Field != "cookTime" {
		t.Fatalf("expected cookTime validation error, got %v", valErr)
	}
	if _, ok := AsElementError(err); ok {
		t.Fatal("did not expect ElementError")
	}
}
