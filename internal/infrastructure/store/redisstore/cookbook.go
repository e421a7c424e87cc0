package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/Aixtrade/Tally/internal/domain/cookbook"
	apperrors "github.com/Aixtrade/Tally/pkg/errors"
)

// CookbookRepository keeps every entry as a JSON field of one Redis hash,
// so HSETNX gives the unique-name guarantee atomically.
type CookbookRepository struct {
	redis *redis.Client
	key   string
}

func NewCookbookRepository(client *redis.Client, keyPrefix string) *CookbookRepository {
	return &CookbookRepository{
		redis: client,
		key:   keyPrefix + ":entries",
	}
}

func (r *CookbookRepository) Create(ctx context.Context, entry *cookbook.Entry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to encode entry: %w", err)
	}

	ok, err := r.redis.HSetNX(ctx, r.key, entry.Name, data).Result()
	if err != nil {
		return fmt.Errorf("failed to store entry: %w", err)
	}
	if !ok {
		return apperrors.ErrEntryExists
	}
	return nil
}

func (r *CookbookRepository) Get(ctx context.Context, name string) (*cookbook.Entry, error) {
	data, err := r.redis.HGet(ctx, r.key, name).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, apperrors.ErrEntryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load entry: %w", err)
	}

	var entry cookbook.Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, fmt.Errorf("failed to decode entry %q: %w", name, err)
	}
	return &entry, nil
}

// Clear removes every stored entry.
func (r *CookbookRepository) Clear(ctx context.Context) error {
	return r.redis.Del(ctx, r.key).Err()
}
