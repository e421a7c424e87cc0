package dto

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/Aixtrade/Tally/internal/domain/cookbook"
	apperrors "github.com/Aixtrade/Tally/pkg/errors"
)

func TestCreateEntryRequestToEntry(t *testing.T) {
	var req CreateEntryRequest
	body := `{"type":"recipe","name":"Toast","requiredItems":[{"name":"Bread","quantity":2}]}`
	if err := json.Unmarshal([]byte(body), &req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entry, err := req.ToEntry()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entry.Type != cookbook.TypeRecipe || entry.RequiredItems[0].Quantity != 2 {
		t.Fatalf("unexpected entry: %+v", entry)
	}
}

func TestCreateEntryRequestRejects(t *testing.T) {
	bodies := []string{
		`{"type":"ingredient","name":"Egg"}`,
		`{"type":"ingredient","name":"Egg","cookTime":1.5}`,
		`{"type":"ingredient","name":"Egg","cookTime":"5"}`,
		`{"type":"ingredient","name":"Egg","cookTime":-1}`,
		`{"type":"recipe","name":"Toast"}`,
		`{"type":"recipe","name":"Toast","requiredItems":[{"name":"Bread"}]}`,
		`{"type":"meal","name":"Toast"}`,
	}
	for _, body := range bodies {
		var req CreateEntryRequest
		if err := json.Unmarshal([]byte(body), &req); err != nil {
			t.Fatalf("%s: unexpected decode error: %v", body, err)
		}
		if _, err := req.ToEntry(); !errors.Is(err, apperrors.ErrInvalidEntry) {
			t.Fatalf("%s: expected ErrInvalidEntry, got %v", body, err)
		}
	}
}
