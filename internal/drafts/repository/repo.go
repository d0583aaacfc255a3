package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/fablecraft/fablecraft-backend/internal/drafts/domain"
	"github.com/redis/go-redis/v9"
)

const draftKeyPrefix = "draft:" // Key layout: draft:{flow}:{user_id}:{project_id}

// DraftRepository handles Redis operations for wizard drafts. Records are
// stored as JSON under per-user, per-project keys with a TTL so abandoned
// drafts age out on their own.
type DraftRepository struct {
	client *redis.Client
	flow   string
	ttl    time.Duration
}

// NewDraftRepository creates a repository for one wizard flow group.
func NewDraftRepository(client *redis.Client, flow string, ttl time.Duration) *DraftRepository {
	return &DraftRepository{
		client: client,
		flow:   flow,
		ttl:    ttl,
	}
}

// Save writes the draft for (userID, projectID), replacing any previous one.
func (r *DraftRepository) Save(ctx context.Context, userID, projectID string, d *domain.Draft) error {
	data, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("failed to marshal draft: %w", err)
	}

	if err := r.client.Set(ctx, r.draftKey(userID, projectID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save draft: %w", err)
	}

	return nil
}

// rawDraft mirrors the stored shape before validation. lastSaved is kept raw
// because old clients wrote it as either an ISO string or epoch milliseconds.
type rawDraft struct {
	Method    string                 `json:"method"`
	Data      map[string]interface{} `json:"data"`
	Progress  float64                `json:"progress"`
	LastSaved json.RawMessage        `json:"lastSaved"`
}

// Load reads the stored draft. A record that fails to parse, is missing its
// method or data, or carries an unreadable lastSaved timestamp is deleted and
// reported as absent: corruption must never break the creation flow.
func (r *DraftRepository) Load(ctx context.Context, userID, projectID string) (*domain.Draft, error) {
	key := r.draftKey(userID, projectID)

	data, err := r.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, domain.ErrDraftNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get draft: %w", err)
	}

	var raw rawDraft
	if err := json.Unmarshal([]byte(data), &raw); err != nil {
		r.client.Del(ctx, key)
		return nil, domain.ErrDraftNotFound
	}

	if raw.Method == "" || raw.Data == nil {
		r.client.Del(ctx, key)
		return nil, domain.ErrDraftNotFound
	}

	savedAt, ok := parseLastSaved(raw.LastSaved)
	if !ok {
		r.client.Del(ctx, key)
		return nil, domain.ErrDraftNotFound
	}

	return &domain.Draft{
		Method:    raw.Method,
		Data:      raw.Data,
		Progress:  raw.Progress,
		LastSaved: savedAt,
	}, nil
}

// Discard deletes the stored draft. Discarding a non-existent draft is fine.
func (r *DraftRepository) Discard(ctx context.Context, userID, projectID string) error {
	if err := r.client.Del(ctx, r.draftKey(userID, projectID)).Err(); err != nil {
		return fmt.Errorf("failed to discard draft: %w", err)
	}
	return nil
}

func (r *DraftRepository) draftKey(userID, projectID string) string {
	return fmt.Sprintf("%s%s:%s:%s", draftKeyPrefix, r.flow, userID, projectID)
}

func parseLastSaved(raw json.RawMessage) (time.Time, bool) {
	if len(raw) == 0 {
		return time.Time{}, false
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
			if ts, err := time.Parse(layout, s); err == nil {
				return ts, true
			}
		}
		return time.Time{}, false
	}

	// Epoch milliseconds, as written by older clients.
	var ms int64
	if err := json.Unmarshal(raw, &ms); err == nil {
		return time.UnixMilli(ms), true
	}

	return time.Time{}, false
}
