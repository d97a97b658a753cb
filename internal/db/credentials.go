package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// StoredCredential is a provider API key owned by a user. Uniqueness is
// by (user, service); storing a key for an existing service replaces it.
type StoredCredential struct {
	UserID  uuid.UUID `json:"user_id"`
	Service string    `json:"service"`
	APIKey  string    `json:"-"`
	AddedAt time.Time `json:"added_at"`
}

// UpsertCredential stores a provider key for a user. Last write wins
// per service.
func (db *DB) UpsertCredential(ctx context.Context, userID uuid.UUID, service, apiKey string) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO credentials (user_id, service, api_key, added_at)
		 VALUES ($1, $2, $3, NOW())
		 ON CONFLICT (user_id, service) DO UPDATE SET api_key = $3, added_at = NOW()`,
		userID, service, apiKey,
	)
	if err != nil {
		return fmt.Errorf("failed to store credential for %s: %w", service, err)
	}
	return nil
}

// ListCredentials returns a user's credentials oldest first, the order
// the client resolution chain consumes them in.
func (db *DB) ListCredentials(ctx context.Context, userID uuid.UUID) ([]StoredCredential, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT user_id, service, api_key, added_at
		 FROM credentials WHERE user_id = $1
		 ORDER BY added_at`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list credentials: %w", err)
	}
	defer rows.Close()

	var creds []StoredCredential
	for rows.Next() {
		var c StoredCredential
		if err := rows.Scan(&c.UserID, &c.Service, &c.APIKey, &c.AddedAt); err != nil {
			return nil, fmt.Errorf("failed to scan credential: %w", err)
		}
		creds = append(creds, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read credentials: %w", err)
	}
	return creds, nil
}

// DeleteCredential removes a user's key for one service.
func (db *DB) DeleteCredential(ctx context.Context, userID uuid.UUID, service string) error {
	tag, err := db.pool.Exec(ctx,
		`DELETE FROM credentials WHERE user_id = $1 AND service = $2`,
		userID, service,
	)
	if err != nil {
		return fmt.Errorf("failed to delete credential for %s: %w", service, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("no credential stored for %s", service)
	}
	return nil
}
