package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// InvocationRecord is one logged generation call, kept for usage
// accounting and support diagnosis.
type InvocationRecord struct {
	ID               uuid.UUID     `json:"id"`
	UserID           uuid.UUID     `json:"user_id"`
	Model            string        `json:"model"`
	Family           string        `json:"family"`
	Contract         string        `json:"contract"`
	PromptTokens     int64         `json:"prompt_tokens"`
	CompletionTokens int64         `json:"completion_tokens"`
	TotalTokens      int64         `json:"total_tokens"`
	FinishReason     string        `json:"finish_reason"`
	Duration         time.Duration `json:"duration_ms"`
	CreatedAt        time.Time     `json:"created_at"`
}

// LogInvocation appends one invocation record.
func (db *DB) LogInvocation(ctx context.Context, rec *InvocationRecord) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO invocations
		   (user_id, model, family, contract, prompt_tokens, completion_tokens,
		    total_tokens, finish_reason, duration_ms)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		rec.UserID, rec.Model, rec.Family, rec.Contract,
		rec.PromptTokens, rec.CompletionTokens, rec.TotalTokens,
		rec.FinishReason, rec.Duration.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("failed to log invocation: %w", err)
	}
	return nil
}

// ListInvocations returns a user's most recent invocations, newest
// first.
func (db *DB) ListInvocations(ctx context.Context, userID uuid.UUID, limit int) ([]InvocationRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := db.pool.Query(ctx,
		`SELECT id, user_id, model, family, contract, prompt_tokens,
		        completion_tokens, total_tokens, finish_reason, duration_ms, created_at
		 FROM invocations WHERE user_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list invocations: %w", err)
	}
	defer rows.Close()

	var records []InvocationRecord
	for rows.Next() {
		var rec InvocationRecord
		var durationMS int64
		if err := rows.Scan(
			&rec.ID, &rec.UserID, &rec.Model, &rec.Family, &rec.Contract,
			&rec.PromptTokens, &rec.CompletionTokens, &rec.TotalTokens,
			&rec.FinishReason, &durationMS, &rec.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan invocation: %w", err)
		}
		rec.Duration = time.Duration(durationMS) * time.Millisecond
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read invocations: %w", err)
	}
	return records, nil
}
