package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rpggio/costtrack/internal/repository"
)

// KVRepository stores whole collections as blobs keyed by namespace and key.
// It implements repository.Persister.
type KVRepository struct {
	db *DB
}

var _ repository.Persister = (*KVRepository)(nil)

// NewKVRepository creates a new KVRepository
func NewKVRepository(db *DB) *KVRepository {
	return &KVRepository{db: db}
}

// Load returns the blob stored under namespace/key.
func (r *KVRepository) Load(ctx context.Context, namespace, key string) ([]byte, error) {
	var value []byte
	err := r.db.QueryRowContext(ctx,
		`SELECT value FROM kv_collections WHERE namespace = ? AND key = ?`,
		namespace, key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load %s/%s: %w", namespace, key, err)
	}
	return value, nil
}

// Save overwrites the blob stored under namespace/key.
func (r *KVRepository) Save(ctx context.Context, namespace, key string, data []byte) error {
	if data == nil {
		data = []byte{}
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO kv_collections (namespace, key, value, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(namespace, key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at
	`, namespace, key, data, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to save %s/%s: %w", namespace, key, err)
	}
	return nil
}

// Keys lists the keys stored in a namespace.
func (r *KVRepository) Keys(ctx context.Context, namespace string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT key FROM kv_collections WHERE namespace = ? ORDER BY key`, namespace)
	if err != nil {
		return nil, fmt.Errorf("failed to list keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("failed to scan key: %w", err)
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}
