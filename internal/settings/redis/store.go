package redis

import (
	"context"
	"errors"
	"fmt"

	backend "github.com/redis/go-redis/v9"

	"github.com/tamzrod/jackdaw/internal/settings"
)

// Store implements settings.Store using Redis strings, one per key.
type Store struct {
	client *backend.Client
	prefix string
}

var _ settings.Store = (*Store)(nil)

type Option func(*Store)

// WithPrefix sets the key prefix. Nodes sharing a server need distinct prefixes.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// New creates a Redis store with options.
func New(address, password string, db int, opts ...Option) *Store {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a Redis store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: "jackdaw:settings:",
	}

	for _, opt := range opts {
		opt(store)
	}

	return store
}

func (s *Store) key(k settings.Key) string {
	return fmt.Sprintf("%s%04x", s.prefix, uint16(k))
}

func (s *Store) Get(ctx context.Context, key settings.Key) ([]byte, error) {
	val, err := s.client.Get(ctx, s.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return nil, settings.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get setting %s from redis: %w", key, err)
	}
	return val, nil
}

func (s *Store) Set(ctx context.Context, key settings.Key, value []byte) error {
	if err := s.client.Set(ctx, s.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("failed to save setting %s to redis: %w", key, err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, key settings.Key) error {
	if err := s.client.Del(ctx, s.key(key)).Err(); err != nil {
		return fmt.Errorf("failed to delete setting %s from redis: %w", key, err)
	}
	return nil
}

// Close closes the redis client.
func (s *Store) Close() error {
	return s.client.Close()
}
