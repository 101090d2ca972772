package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// KV is a durable key-value store. Entries are grouped by namespace (one per
// browser session) and values are stored JSON-encoded. Writes are
// last-write-wins.
type KV interface {
	// Get decodes the value stored under (namespace, key) into dst and
	// reports whether the entry existed.
	Get(ctx context.Context, namespace, key string, dst any) (bool, error)
	Set(ctx context.Context, namespace, key string, value any) error
	Remove(ctx context.Context, namespace, key string) error
}

const (
	getEntry = `SELECT value FROM kv_entries WHERE namespace = ? AND key = ?`

	upsertEntry = `INSERT INTO kv_entries (namespace, key, value, updated_at)
VALUES (?, ?, ?, CURRENT_TIMESTAMP)
ON CONFLICT (namespace, key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`

	deleteEntry = `DELETE FROM kv_entries WHERE namespace = ? AND key = ?`

	countEntries = `SELECT COUNT(*) FROM kv_entries`

	purgeEntries = `DELETE FROM kv_entries WHERE updated_at < datetime('now', ?)`
)

func (s *Storage) Get(ctx context.Context, namespace, key string, dst any) (bool, error) {
	var raw string
	err := s.db.QueryRowContext(ctx, getEntry, namespace, key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("get %s/%s: %w", namespace, key, err)
	}

	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return false, fmt.Errorf("decode %s/%s: %w", namespace, key, err)
	}
	return true, nil
}

func (s *Storage) Set(ctx context.Context, namespace, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s/%s: %w", namespace, key, err)
	}

	if _, err := s.db.ExecContext(ctx, upsertEntry, namespace, key, string(raw)); err != nil {
		return fmt.Errorf("set %s/%s: %w", namespace, key, err)
	}
	return nil
}

func (s *Storage) Remove(ctx context.Context, namespace, key string) error {
	if _, err := s.db.ExecContext(ctx, deleteEntry, namespace, key); err != nil {
		return fmt.Errorf("remove %s/%s: %w", namespace, key, err)
	}
	return nil
}

// Count returns the number of stored entries across all namespaces.
func (s *Storage) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.QueryRowContext(ctx, countEntries).Scan(&n); err != nil {
		return 0, fmt.Errorf("count entries: %w", err)
	}
	return n, nil
}

// PurgeStale deletes entries not written within maxAge and returns how many
// were removed.
func (s *Storage) PurgeStale(ctx context.Context, maxAge time.Duration) (int64, error) {
	modifier := fmt.Sprintf("-%d seconds", int64(maxAge.Seconds()))
	res, err := s.db.ExecContext(ctx, purgeEntries, modifier)
	if err != nil {
		return 0, fmt.Errorf("purge entries: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("purge entries: %w", err)
	}
	return n, nil
}
