package cookbook

import (
	"context"
	"errors"
	"fmt"
	"testing"

	apperrors "github.com/Aixtrade/Tally/pkg/errors"
)

type mapRepo map[string]*Entry

func (m mapRepo) Create(ctx context.Context, entry *Entry) error {
	if _, ok := m[entry.Name]; ok {
		return apperrors.ErrEntryExists
	}
	m[entry.Name] = entry
	return nil
}

func (m mapRepo) Get(ctx context.Context, name string) (*Entry, error) {
	e, ok := m[name]
	if !ok {
		return nil, apperrors.ErrEntryNotFound
	}
	return e, nil
}

func TestParseHandwriting(t *testing.T) {
	cases := map[string]string{
		"Riz@z RISO00tto!":        "Rizz Risotto",
		"meatball":                "Meatball",
		"Skibidi spaghetti":       "Skibidi Spaghetti",
		"alpHa-alFRedo":           "Alpha Alfredo",
		"  hot__dog   -- special": "Hot Dog Special",
	}
	for input, want := range cases {
		got, err := ParseHandwriting(input)
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", input, err)
		}
		if got != want {
			t.Fatalf("%q: expected %q, got %q", input, want, got)
		}
	}
}

func TestParseHandwritingEmpty(t *testing.T) {
	for _, input := range []string{"", "123 !!", " - _ "} {
		if _, err := ParseHandwriting(input); !errors.Is(err, apperrors.ErrInvalidRecipeName) {
			t.Fatalf("%q: expected ErrInvalidRecipeName, got %v", input, err)
		}
	}
}

func TestEntryValidate(t *testing.T) {
	cases := []struct {
		name  string
		entry *Entry
		ok    bool
	}{
		{"ingredient", NewIngredient("Egg", 6), true},
		{"negative cook time", NewIngredient("Egg", -1), false},
		{"bad type", &Entry{Type: "meal", Name: "x"}, false},
		{"missing name", NewIngredient("", 1), false},
		{"recipe", NewRecipe("Toast", []RequiredItem{{Name: "Bread", Quantity: 2}}), true},
		{"duplicate items", NewRecipe("Toast", []RequiredItem{{Name: "Bread", Quantity: 1}, {Name: "Bread", Quantity: 1}}), false},
		{"negative quantity", NewRecipe("Toast", []RequiredItem{{Name: "Bread", Quantity: -1}}), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.entry.Validate()
			if tc.ok && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tc.ok && !errors.Is(err, apperrors.ErrInvalidEntry) {
				t.Fatalf("expected ErrInvalidEntry, got %v", err)
			}
		})
	}
}

func TestSummarizeFlattensAndMerges(t *testing.T) {
	repo := mapRepo{}
	ctx := context.Background()
	for _, e := range []*Entry{
		NewIngredient("Beef", 5),
		NewIngredient("Egg", 3),
		NewRecipe("Meatball", []RequiredItem{{Name: "Beef", Quantity: 2}, {Name: "Egg", Quantity: 1}}),
		NewRecipe("Skibidi Spaghetti", []RequiredItem{{Name: "Meatball", Quantity: 3}, {Name: "Egg", Quantity: 2}}),
	} {
		if err := repo.Create(ctx, e); err != nil {
			t.Fatalf("create %s: %v", e.Name, err)
		}
	}

	s, err := Summarize(ctx, repo, "Skibidi Spaghetti")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []RequiredItem{{Name: "Beef", Quantity: 6}, {Name: "Egg", Quantity: 5}}
	if len(s.Ingredients) != len(want) {
		t.Fatalf("expected %v, got %v", want, s.Ingredients)
	}
	for i := range want {
		if s.Ingredients[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, s.Ingredients)
		}
	}
	if s.CookTime != 6*5+5*3 {
		t.Fatalf("expected cook time 45, got %d", s.CookTime)
	}
}

func TestSummarizeErrors(t *testing.T) {
	repo := mapRepo{
		"Egg":   NewIngredient("Egg", 1),
		"Bad":   NewRecipe("Bad", []RequiredItem{{Name: "Ghost", Quantity: 1}}),
		"Loop":  NewRecipe("Loop", []RequiredItem{{Name: "Loop2", Quantity: 1}}),
		"Loop2": NewRecipe("Loop2", []RequiredItem{{Name: "Loop", Quantity: 1}}),
	}
	ctx := context.Background()

	if _, err := Summarize(ctx, repo, "Egg"); !errors.Is(err, apperrors.ErrNotRecipe) {
		t.Fatalf("expected ErrNotRecipe, got %v", err)
	}
	if _, err := Summarize(ctx, repo, "Nope"); !errors.Is(err, apperrors.ErrEntryNotFound) {
		t.Fatalf("expected ErrEntryNotFound, got %v", err)
	}
	if _, err := Summarize(ctx, repo, "Bad"); !errors.Is(err, apperrors.ErrEntryNotFound) {
		t.Fatalf("expected ErrEntryNotFound, got %v", err)
	}
	if _, err := Summarize(ctx, repo, "Loop"); !errors.Is(err, apperrors.ErrCyclicRecipe) {
		t.Fatalf("expected ErrCyclicRecipe, got %v", err)
	}
}

func TestSummarizeQuantityOverflow(t *testing.T) {
	repo := mapRepo{
		"Egg":  NewIngredient("Egg", 1),
		"Mid":  NewRecipe("Mid", []RequiredItem{{Name: "Egg", Quantity: 1 << 40}}),
		"Root": NewRecipe("Root", []RequiredItem{{Name: "Mid", Quantity: 1 << 40}}),
	}

	s, err := Summarize(context.Background(), repo, "Root")
	if !errors.Is(err, apperrors.ErrQuantityOverflow) {
		t.Fatalf("expected ErrQuantityOverflow, got %+v, %v", s, err)
	}
}

func TestSummarizeCookTimeOverflow(t *testing.T) {
	repo := mapRepo{
		"Egg":  NewIngredient("Egg", 1<<40),
		"Root": NewRecipe("Root", []RequiredItem{{Name: "Egg", Quantity: 1 << 40}}),
	}

	if _, err := Summarize(context.Background(), repo, "Root"); !errors.Is(err, apperrors.ErrQuantityOverflow) {
		t.Fatalf("expected ErrQuantityOverflow, got %v", err)
	}
}

type countingRepo struct {
	mapRepo
	gets map[string]int
}

func (c *countingRepo) Get(ctx context.Context, name string) (*Entry, error) {
	c.gets[name]++
	return c.mapRepo.Get(ctx, name)
}

func TestSummarizeExpandsSharedRecipesOnce(t *testing.T) {
	// Layer i uses layer i+1 through two different recipes.
	const depth = 20
	repo := &countingRepo{mapRepo: mapRepo{"Egg": NewIngredient("Egg", 1)}, gets: map[string]int{}}
	next := "Egg"
	for i := 0; i < depth; i++ {
		a, b := fmt.Sprintf("A%d", i), fmt.Sprintf("B%d", i)
		repo.mapRepo[a] = NewRecipe(a, []RequiredItem{{Name: next, Quantity: 1}})
		repo.mapRepo[b] = NewRecipe(b, []RequiredItem{{Name: next, Quantity: 1}})
		top := fmt.Sprintf("L%d", i)
		repo.mapRepo[top] = NewRecipe(top, []RequiredItem{{Name: a, Quantity: 1}, {Name: b, Quantity: 1}})
		next = top
	}

	s, err := Summarize(context.Background(), repo, next)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(s.Ingredients) != 1 || s.Ingredients[0].Quantity != 1<<depth {
		t.Fatalf("unexpected ingredients: %+v", s.Ingredients)
	}
	if s.CookTime != 1<<depth {
		t.Fatalf("expected cook time %d, got %d", 1<<depth, s.CookTime)
	}
	for name, n := range repo.gets {
		if n > 1 {
			t.Fatalf("%s fetched %d times", name, n)
		}
	}
}
