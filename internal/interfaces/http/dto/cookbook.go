package dto

import (
	"github.com/Aixtrade/Tally/internal/domain/cookbook"
	apperrors "github.com/Aixtrade/Tally/pkg/errors"
	"github.com/Aixtrade/Tally/pkg/jsonvalue"
)

type ParseRequest struct {
	Input string `json:"input"`
}

type ParseResponse struct {
	Msg string `json:"msg"`
}

type RequiredItemRequest struct {
	Name     string           `json:"name"`
	Quantity *jsonvalue.Value `json:"quantity"`
}

// CreateEntryRequest keeps numeric fields loosely typed so that non-integer
// values are reported as validation errors instead of bind errors.
type CreateEntryRequest struct {
	Type          string                `json:"type"`
	Name          string                `json:"name"`
	CookTime      *jsonvalue.Value      `json:"cookTime"`
	RequiredItems []RequiredItemRequest `json:"requiredItems"`
}

func (r *CreateEntryRequest) ToEntry() (*cookbook.Entry, error) {
	switch cookbook.EntryType(r.Type) {
	case cookbook.TypeIngredient:
		cookTime, err := nonNegativeInt(r.CookTime)
		if err != nil {
			return nil, apperrors.NewValidationError("cookTime", err.Error())
		}
		return cookbook.NewIngredient(r.Name, cookTime), nil

	case cookbook.TypeRecipe:
		if r.RequiredItems == nil {
			return nil, apperrors.NewValidationError("requiredItems", "is required")
		}
		items := make([]cookbook.RequiredItem, 0, len(r.RequiredItems))
		for _, item := range r.RequiredItems {
			quantity, err := nonNegativeInt(item.Quantity)
			if err != nil {
				return nil, apperrors.NewValidationError("requiredItems.quantity", err.Error())
			}
			items = append(items, cookbook.RequiredItem{Name: item.Name, Quantity: quantity})
		}
		return cookbook.NewRecipe(r.Name, items), nil

	default:
		return nil, apperrors.NewValidationError("type", "must be recipe or ingredient")
	}
}

type validationMessage string

func (m validationMessage) Error() string { return string(m) }

const (
	errMissing  validationMessage = "is required"
	errNotCount validationMessage = "must be a non-negative integer"
)

func nonNegativeInt(v *jsonvalue.Value) (int, error) {
	if v == nil || v.Kind() == jsonvalue.KindNull {
		return 0, errMissing
	}
	n, err := v.Int64()
	if err != nil || n < 0 || n > int64(^uint(0)>>1) {
		return 0, errNotCount
	}
	return int(n), nil
}

type SummaryResponse struct {
	Name        string                  `json:"name"`
	CookTime    int                     `json:"cookTime"`
	Ingredients []cookbook.RequiredItem `json:"ingredients"`
}
