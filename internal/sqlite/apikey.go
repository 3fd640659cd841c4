package sqlite

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/rpggio/costtrack/internal/repository"
)

// APIKeyRepository issues and resolves API keys. Only SHA-256 hashes of the
// tokens are stored.
type APIKeyRepository struct {
	db *DB
}

// NewAPIKeyRepository creates a new APIKeyRepository
func NewAPIKeyRepository(db *DB) *APIKeyRepository {
	return &APIKeyRepository{db: db}
}

// Create issues a new token for label and returns it. The plain token is not
// recoverable afterwards.
func (r *APIKeyRepository) Create(ctx context.Context, label string) (string, error) {
	if label == "" {
		return "", fmt.Errorf("label is required")
	}
	buf := make([]byte, 24)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	token := "ct_" + hex.EncodeToString(buf)
	if err := r.Add(ctx, token, label); err != nil {
		return "", err
	}
	return token, nil
}

// Add registers an existing token under label.
func (r *APIKeyRepository) Add(ctx context.Context, token, label string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO api_keys (key_hash, label, created_at) VALUES (?, ?, ?)`,
		HashToken(token), label, time.Now().UTC(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicateID
		}
		return fmt.Errorf("failed to store api key: %w", err)
	}
	return nil
}

// Resolve returns the label of the key matching token and stamps its last use.
func (r *APIKeyRepository) Resolve(ctx context.Context, token string) (string, error) {
	hash := HashToken(token)
	var label string
	err := r.db.QueryRowContext(ctx, `SELECT label FROM api_keys WHERE key_hash = ?`, hash).Scan(&label)
	if errors.Is(err, sql.ErrNoRows) {
		return "", repository.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to resolve api key: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, `UPDATE api_keys SET last_used = ? WHERE key_hash = ?`, time.Now().UTC(), hash); err != nil {
		return "", fmt.Errorf("failed to touch api key: %w", err)
	}
	return label, nil
}

// HashToken is the stored form of a token.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
