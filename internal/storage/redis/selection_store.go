package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const defaultKeyPrefix = "ctf:event-selection:"

// SelectionStore keeps each user's last event selection in Redis.
type SelectionStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

type Option func(*SelectionStore)

// WithKeyPrefix overrides the key namespace.
func WithKeyPrefix(prefix string) Option {
	return func(s *SelectionStore) {
		if prefix != "" {
			s.prefix = prefix
		}
	}
}

// WithTTL expires stored selections after d. Zero keeps them forever.
func WithTTL(d time.Duration) Option {
	return func(s *SelectionStore) {
		if d > 0 {
			s.ttl = d
		}
	}
}

func NewSelectionStore(client *redis.Client, opts ...Option) *SelectionStore {
	s := &SelectionStore{client: client, prefix: defaultKeyPrefix}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *SelectionStore) key(userKey string) string {
	return s.prefix + userKey
}

// GetSelection returns the stored value and whether one exists.
func (s *SelectionStore) GetSelection(ctx context.Context, userKey string) (string, bool, error) {
	value, err := s.client.Get(ctx, s.key(userKey)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get selection: %w", err)
	}
	return value, true, nil
}

func (s *SelectionStore) SetSelection(ctx context.Context, userKey, value string) error {
	if err := s.client.Set(ctx, s.key(userKey), value, s.ttl).Err(); err != nil {
		return fmt.Errorf("set selection: %w", err)
	}
	return nil
}

func (s *SelectionStore) ClearSelection(ctx context.Context, userKey string) error {
	if err := s.client.Del(ctx, s.key(userKey)).Err(); err != nil {
		return fmt.Errorf("clear selection: %w", err)
	}
	return nil
}

// Ping checks the Redis connection.
func (s *SelectionStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
