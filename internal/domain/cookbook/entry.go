package cookbook

import (
	apperrors "github.com/Aixtrade/Tally/pkg/errors"
)

type EntryType string

const (
	TypeRecipe     EntryType = "recipe"
	TypeIngredient EntryType = "ingredient"
)

func (t EntryType) String() string {
	return string(t)
}

func (t EntryType) IsValid() bool {
	return t == TypeRecipe || t == TypeIngredient
}

type RequiredItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// Entry is either an ingredient (CookTime set) or a recipe (RequiredItems set).
type Entry struct {
	Type          EntryType      `json:"type"`
	Name          string         `json:"name"`
	CookTime      int            `json:"cookTime,omitempty"`
	RequiredItems []RequiredItem `json:"requiredItems,omitempty"`
}

func NewIngredient(name string, cookTime int) *Entry {
	return &Entry{
		Type:     TypeIngredient,
		Name:     name,
		CookTime: cookTime,
	}
}

func NewRecipe(name string, items []RequiredItem) *Entry {
	return &Entry{
		Type:          TypeRecipe,
		Name:          name,
		RequiredItems: items,
	}
}

func (e *Entry) IsRecipe() bool {
	return e.Type == TypeRecipe
}

func (e *Entry) Validate() error {
	if !e.Type.IsValid() {
		return apperrors.NewValidationError("type", "must be recipe or ingredient")
	}
	if e.Name == "" {
		return apperrors.NewValidationError("name", "is required")
	}

	if e.Type == TypeIngredient {
		if e.CookTime < 0 {
			return apperrors.NewValidationError("cookTime", "must be greater than or equal to 0")
		}
		return nil
	}

	seen := make(map[string]struct{}, len(e.RequiredItems))
	for _, item := range e.RequiredItems {
		if item.Name == "" {
			return apperrors.NewValidationError("requiredItems.name", "is required")
		}
		if item.Quantity < 0 {
			return apperrors.NewValidationError("requiredItems.quantity", "must be greater than or equal to 0")
		}
		if _, dup := seen[item.Name]; dup {
			return apperrors.NewValidationError("requiredItems", "duplicate item "+item.Name)
		}
		seen[item.Name] = struct{}{}
	}
	return nil
}
