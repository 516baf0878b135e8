// Package redis provides a PageStore backed by Redis, so restoration
// state survives restarts and is shared across replicas.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/pagelift/pagelift/pkg/ports"
	backend "github.com/redis/go-redis/v9"
)

// Store implements ports.PageStore using Redis.
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

type Option func(*Store)

// WithTTL sets the expiration for saved pages.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix for saved pages.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// New creates a new Redis store with options.
func New(address, password string, db int, opts ...Option) *Store {
	client := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(client, opts...)
}

// NewFromClient creates a new Redis store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: "pagelift:page:",
		ttl:    0, // No expiration by default
	}

	for _, opt := range opts {
		opt(store)
	}

	return store
}

func (s *Store) key(location string) string {
	return s.prefix + location
}

func (s *Store) indexKey() string {
	return s.prefix + "index"
}

// Save persists the page state to Redis and tracks the location in the
// index set.
func (s *Store) Save(ctx context.Context, location string, page *ports.PageState) error {
	payload, err := json.Marshal(page)
	if err != nil {
		return fmt.Errorf("failed to marshal page state: %w", err)
	}

	if err := s.client.Set(ctx, s.key(location), payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis error saving page: %w", err)
	}

	if err := s.client.SAdd(ctx, s.indexKey(), location).Err(); err != nil {
		return fmt.Errorf("redis error indexing page: %w", err)
	}
	return nil
}

// Load retrieves the page state from Redis.
func (s *Store) Load(ctx context.Context, location string) (*ports.PageState, error) {
	payload, err := s.client.Get(ctx, s.key(location)).Bytes()
	if errors.Is(err, backend.Nil) {
		return nil, ports.ErrPageNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis error loading page: %w", err)
	}

	var page ports.PageState
	if err := json.Unmarshal(payload, &page); err != nil {
		return nil, fmt.Errorf("failed to unmarshal page state: %w", err)
	}
	return &page, nil
}

// Delete removes the page state and its index entry.
func (s *Store) Delete(ctx context.Context, location string) error {
	if err := s.client.Del(ctx, s.key(location)).Err(); err != nil {
		return fmt.Errorf("redis error deleting page: %w", err)
	}
	if err := s.client.SRem(ctx, s.indexKey(), location).Err(); err != nil {
		return fmt.Errorf("redis error unindexing page: %w", err)
	}
	return nil
}

// List returns the locations recorded in the index set.
func (s *Store) List(ctx context.Context) ([]string, error) {
	locations, err := s.client.SMembers(ctx, s.indexKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("redis error listing pages: %w", err)
	}
	return locations, nil
}
