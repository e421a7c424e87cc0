package cookbook

import (
	"context"
	"fmt"
	"math"
	"math/bits"

	apperrors "github.com/Aixtrade/Tally/pkg/errors"
)

type Summary struct {
	Name        string         `json:"name"`
	CookTime    int            `json:"cookTime"`
	Ingredients []RequiredItem `json:"ingredients"`
}

// Summarize flattens a recipe into its base ingredients. Quantities multiply
// along each path and duplicates merge in first-seen order. Each entry is
// fetched and expanded at most once per call.
func Summarize(ctx context.Context, repo Repository, name string) (*Summary, error) {
	root, err := repo.Get(ctx, name)
	if err != nil {
		return nil, err
	}
	if !root.IsRecipe() {
		return nil, apperrors.ErrNotRecipe
	}

	f := &flattener{
		repo:      repo,
		visiting:  map[string]bool{root.Name: true},
		expanded:  make(map[string][]RequiredItem),
		cookTimes: make(map[string]int),
	}
	items, err := f.expandItems(ctx, root.RequiredItems)
	if err != nil {
		return nil, err
	}

	total := 0
	for _, item := range items {
		t, err := mulQuantity(f.cookTimes[item.Name], item.Quantity)
		if err != nil {
			return nil, fmt.Errorf("cook time of %q: %w", item.Name, err)
		}
		if total, err = addQuantity(total, t); err != nil {
			return nil, fmt.Errorf("cook time of %q: %w", root.Name, err)
		}
	}

	return &Summary{
		Name:        root.Name,
		CookTime:    total,
		Ingredients: items,
	}, nil
}

type flattener struct {
	repo     Repository
	visiting map[string]bool
	// expanded holds the base ingredients of one unit of each entry.
	expanded  map[string][]RequiredItem
	cookTimes map[string]int
}

// expandItems merges the base ingredients of items, scaled by their
// quantities, in first-seen order.
func (f *flattener) expandItems(ctx context.Context, items []RequiredItem) ([]RequiredItem, error) {
	out := make([]RequiredItem, 0)
	index := make(map[string]int)

	for _, item := range items {
		unit, err := f.expand(ctx, item.Name)
		if err != nil {
			return nil, err
		}
		for _, base := range unit {
			q, err := mulQuantity(base.Quantity, item.Quantity)
			if err != nil {
				return nil, fmt.Errorf("quantity of %q: %w", base.Name, err)
			}
			if i, ok := index[base.Name]; ok {
				if out[i].Quantity, err = addQuantity(out[i].Quantity, q); err != nil {
					return nil, fmt.Errorf("quantity of %q: %w", base.Name, err)
				}
				continue
			}
			index[base.Name] = len(out)
			out = append(out, RequiredItem{Name: base.Name, Quantity: q})
		}
	}
	return out, nil
}

func (f *flattener) expand(ctx context.Context, name string) ([]RequiredItem, error) {
	if unit, ok := f.expanded[name]; ok {
		return unit, nil
	}
	if f.visiting[name] {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrCyclicRecipe, name)
	}

	entry, err := f.repo.Get(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("required item %q: %w", name, err)
	}

	var unit []RequiredItem
	if entry.IsRecipe() {
		f.visiting[name] = true
		unit, err = f.expandItems(ctx, entry.RequiredItems)
		delete(f.visiting, name)
		if err != nil {
			return nil, err
		}
	} else {
		f.cookTimes[name] = entry.CookTime
		unit = []RequiredItem{{Name: name, Quantity: 1}}
	}

	f.expanded[name] = unit
	return unit, nil
}

func mulQuantity(a, b int) (int, error) {
	hi, lo := bits.Mul64(uint64(a), uint64(b))
	if hi != 0 || lo > math.MaxInt {
		return 0, apperrors.ErrQuantityOverflow
	}
	return int(lo), nil
}

func addQuantity(a, b int) (int, error) {
	sum, carry := bits.Add64(uint64(a), uint64(b), 0)
	if carry != 0 || sum > math.MaxInt {
		return 0, apperrors.ErrQuantityOverflow
	}
	return int(sum), nil
}
