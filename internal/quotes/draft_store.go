package quotes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrNoDraft indicates an empty draft slot.
var ErrNoDraft = errors.New("quotes: no draft saved")

// draftKey is the single draft slot. The builder autosaves into it and the
// last write wins; there is no per-user namespacing.
const draftKey = "orcamenta:quote:draft"

// DraftStore holds the volatile in-progress quote.
type DraftStore interface {
	Put(ctx context.Context, draft Draft) error
	Get(ctx context.Context) (*Draft, error)
	Delete(ctx context.Context) error
}

// RedisDraftStore keeps the draft in Redis with a TTL so abandoned drafts
// age out on their own.
type RedisDraftStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisDraftStore(client *redis.Client, ttl time.Duration) *RedisDraftStore {
	return &RedisDraftStore{client: client, ttl: ttl}
}

func (s *RedisDraftStore) Put(ctx context.Context, draft Draft) error {
	payload, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("marshal draft: %w", err)
	}
	if err := s.client.Set(ctx, draftKey, payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("store draft: %w", err)
	}
	return nil
}

func (s *RedisDraftStore) Get(ctx context.Context) (*Draft, error) {
	payload, err := s.client.Get(ctx, draftKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNoDraft
	}
	if err != nil {
		return nil, fmt.Errorf("load draft: %w", err)
	}
	var draft Draft
	if err := json.Unmarshal(payload, &draft); err != nil {
		return nil, fmt.Errorf("decode draft: %w", err)
	}
	return &draft, nil
}

func (s *RedisDraftStore) Delete(ctx context.Context) error {
	if err := s.client.Del(ctx, draftKey).Err(); err != nil {
		return fmt.Errorf("delete draft: %w", err)
	}
	return nil
}
