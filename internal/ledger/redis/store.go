// Package redis is the alternate ledger backend for deployments that
// already run Redis with persistence enabled. Insert idempotence comes
// from SET NX: the first writer for an ID wins, later writers are
// silent no-ops.
package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/seojun-dev/danwatch/internal/ledger"
)

// Store is a Redis-backed ledger.
type Store struct {
	client *redis.Client
}

// NewStore creates a ledger on top of an already connected client.
func NewStore(client *redis.Client) *Store {
	return &Store{client: client}
}

// Exists reports whether id has already been recorded.
func (s *Store) Exists(ctx context.Context, id string) (bool, error) {
	n, err := s.client.Exists(ctx, entryKey(id)).Result()
	if err != nil {
		return false, fmt.Errorf("ledger exists check: %w", err)
	}
	return n > 0, nil
}

// Insert records the entry with no TTL (the ledger is append-mostly and
// retention is out of scope). Duplicate IDs are ignored.
func (s *Store) Insert(ctx context.Context, e ledger.Entry) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal ledger entry: %w", err)
	}

	if err := s.client.SetNX(ctx, entryKey(e.ID), data, 0).Err(); err != nil {
		return fmt.Errorf("ledger insert: %w", err)
	}
	if err := s.client.SAdd(ctx, keyAllEntries, e.ID).Err(); err != nil {
		return fmt.Errorf("ledger insert index: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.client.Close()
}
