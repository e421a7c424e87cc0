package cookbook

import "context"

// Repository stores entries by name. Create fails with ErrEntryExists when
// the name is taken; Get fails with ErrEntryNotFound.
type Repository interface {
	Create(ctx context.Context, entry *Entry) error
	Get(ctx context.Context, name string) (*Entry, error)
}
