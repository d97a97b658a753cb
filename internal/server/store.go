package server

import (
	"context"

	"github.com/google/uuid"
	"github.com/lucas/resume-studio/internal/db"
)

// DBClient is the storage surface the server depends on. *db.DB
// satisfies it; tests substitute an in-memory implementation.
type DBClient interface {
	CreateUser(ctx context.Context, name, email, passwordHash string) (uuid.UUID, error)
	GetUser(ctx context.Context, id uuid.UUID) (*db.User, error)
	GetUserByEmail(ctx context.Context, email string) (*db.User, error)
	CheckEmailExists(ctx context.Context, email string) (bool, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error

	UpsertCredential(ctx context.Context, userID uuid.UUID, service, apiKey string) error
	ListCredentials(ctx context.Context, userID uuid.UUID) ([]db.StoredCredential, error)
	DeleteCredential(ctx context.Context, userID uuid.UUID, service string) error

	LogInvocation(ctx context.Context, rec *db.InvocationRecord) error
	ListInvocations(ctx context.Context, userID uuid.UUID, limit int) ([]db.InvocationRecord, error)
}
