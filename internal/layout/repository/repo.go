package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fablecraft/fablecraft-backend/internal/layout/domain"
	"github.com/redis/go-redis/v9"
)

const layoutKeyPrefix = "layout:" // Key layout: layout:{group}:{user_id}

// LayoutRepository persists per-user orderings of dashboard regions. Unlike
// drafts, layouts are standing preferences: no TTL, no debounce.
type LayoutRepository struct {
	client *redis.Client
}

func NewLayoutRepository(client *redis.Client) *LayoutRepository {
	return &LayoutRepository{client: client}
}

// Load returns the stored ordering and whether one existed. Corrupt records
// are deleted and reported as absent so the caller falls back to defaults.
func (r *LayoutRepository) Load(ctx context.Context, userID, group string) ([]domain.Item, bool, error) {
	key := r.layoutKey(userID, group)

	data, err := r.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get layout: %w", err)
	}

	var items []domain.Item
	if err := json.Unmarshal([]byte(data), &items); err != nil {
		r.client.Del(ctx, key)
		return nil, false, nil
	}

	return items, true, nil
}

// Save writes the full ordering for (userID, group) immediately.
func (r *LayoutRepository) Save(ctx context.Context, userID, group string, items []domain.Item) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to marshal layout: %w", err)
	}

	if err := r.client.Set(ctx, r.layoutKey(userID, group), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save layout: %w", err)
	}

	return nil
}

func (r *LayoutRepository) layoutKey(userID, group string) string {
	return fmt.Sprintf("%s%s:%s", layoutKeyPrefix, group, userID)
}
