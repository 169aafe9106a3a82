// Package session keeps authenticated-session state in Redis: one
// opaque token per sign-in, mapped to the account id, expiring after a
// TTL. Holding it in an external store instead of process globals gives
// the session an explicit lifecycle with defined creation and teardown.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrNoSession reports a token that resolves to nothing: missing,
// expired, or already ended. Callers treat it as a normal state.
var ErrNoSession = errors.New("no active session")

const DefaultTTL = 24 * time.Hour

const keyPrefix = "session:"

type Store struct {
	client *redis.Client
	ttl    time.Duration
}

func NewStore(client *redis.Client, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{client: client, ttl: ttl}
}

// NewStoreFromURL connects to Redis at the given URL.
func NewStoreFromURL(ctx context.Context, url string, ttl time.Duration) (*Store, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return NewStore(client, ttl), nil
}

// Create issues a fresh token for the account.
func (s *Store) Create(ctx context.Context, accountID uuid.UUID) (string, error) {
	token := uuid.NewString()

	if err := s.client.Set(ctx, keyPrefix+token, accountID.String(), s.ttl).Err(); err != nil {
		return "", fmt.Errorf("failed to store session: %w", err)
	}

	return token, nil
}

// Account resolves a token to its account id.
func (s *Store) Account(ctx context.Context, token string) (uuid.UUID, error) {
	if token == "" {
		return uuid.Nil, ErrNoSession
	}

	val, err := s.client.Get(ctx, keyPrefix+token).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return uuid.Nil, ErrNoSession
		}
		return uuid.Nil, fmt.Errorf("failed to load session: %w", err)
	}

	accountID, err := uuid.Parse(val)
	if err != nil {
		return uuid.Nil, fmt.Errorf("corrupt session value: %w", err)
	}

	return accountID, nil
}

// Delete ends a session. Deleting an unknown token is not an error.
func (s *Store) Delete(ctx context.Context, token string) error {
	if token == "" {
		return ErrNoSession
	}

	if err := s.client.Del(ctx, keyPrefix+token).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	return nil
}

func (s *Store) Close() error {
	return s.client.Close()
}

// Healthy implements the server health check contract.
func (s *Store) Healthy(ctx context.Context) bool {
	return s.client.Ping(ctx).Err() == nil
}
