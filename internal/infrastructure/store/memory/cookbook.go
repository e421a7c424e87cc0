package memory

import (
	"context"
	"sync"

	"github.com/Aixtrade/Tally/internal/domain/cookbook"
	apperrors "github.com/Aixtrade/Tally/pkg/errors"
)

type CookbookRepository struct {
	mu      sync.RWMutex
	entries map[string]*cookbook.Entry
}

func NewCookbookRepository() *CookbookRepository {
	return &CookbookRepository{
		entries: make(map[string]*cookbook.Entry),
	}
}

func (r *CookbookRepository) Create(ctx context.Context, entry *cookbook.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.entries[entry.Name]; ok {
		return apperrors.ErrEntryExists
	}
	r.entries[entry.Name] = cloneEntry(entry)
	return nil
}

func (r *CookbookRepository) Get(ctx context.Context, name string) (*cookbook.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[name]
	if !ok {
		return nil, apperrors.ErrEntryNotFound
	}
	return cloneEntry(e), nil
}

func (r *CookbookRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

func cloneEntry(e *cookbook.Entry) *cookbook.Entry {
	c := *e
	if e.RequiredItems != nil {
		c.RequiredItems = append([]cookbook.RequiredItem(nil), e.RequiredItems...)
	}
	return &c
}
