package server

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lucas/resume-studio/internal/db"
)

// fakeStore is an in-memory DBClient for handler and service tests.
type fakeStore struct {
	mu          sync.Mutex
	users       map[uuid.UUID]*db.User
	credentials map[uuid.UUID][]db.StoredCredential
	invocations map[uuid.UUID][]db.InvocationRecord
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:       make(map[uuid.UUID]*db.User),
		credentials: make(map[uuid.UUID][]db.StoredCredential),
		invocations: make(map[uuid.UUID][]db.InvocationRecord),
	}
}

func (f *fakeStore) CreateUser(_ context.Context, name, email, passwordHash string) (uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := uuid.New()
	now := time.Now()
	f.users[id] = &db.User{
		ID:           id,
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		Plan:         "free",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	return id, nil
}

func (f *fakeStore) GetUser(_ context.Context, id uuid.UUID) (*db.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	copied := *u
	return &copied, nil
}

func (f *fakeStore) GetUserByEmail(_ context.Context, email string) (*db.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) CheckEmailExists(_ context.Context, email string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) UpdatePassword(_ context.Context, id uuid.UUID, passwordHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return fmt.Errorf("user not found: %s", id)
	}
	u.PasswordHash = passwordHash
	u.UpdatedAt = time.Now()
	return nil
}

func (f *fakeStore) UpsertCredential(_ context.Context, userID uuid.UUID, service, apiKey string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	creds := f.credentials[userID]
	for i, c := range creds {
		if c.Service == service {
			creds[i].APIKey = apiKey
			creds[i].AddedAt = time.Now()
			return nil
		}
	}
	f.credentials[userID] = append(creds, db.StoredCredential{
		UserID:  userID,
		Service: service,
		APIKey:  apiKey,
		AddedAt: time.Now(),
	})
	return nil
}

func (f *fakeStore) ListCredentials(_ context.Context, userID uuid.UUID) ([]db.StoredCredential, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]db.StoredCredential(nil), f.credentials[userID]...), nil
}

func (f *fakeStore) DeleteCredential(_ context.Context, userID uuid.UUID, service string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	creds := f.credentials[userID]
	for i, c := range creds {
		if c.Service == service {
			f.credentials[userID] = append(creds[:i], creds[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("no credential stored for %s", service)
}

func (f *fakeStore) LogInvocation(_ context.Context, rec *db.InvocationRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored := *rec
	stored.ID = uuid.New()
	stored.CreatedAt = time.Now()
	f.invocations[rec.UserID] = append(f.invocations[rec.UserID], stored)
	return nil
}

func (f *fakeStore) ListInvocations(_ context.Context, userID uuid.UUID, limit int) ([]db.InvocationRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	records := append([]db.InvocationRecord(nil), f.invocations[userID]...)
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

func (f *fakeStore) setPlan(userID uuid.UUID, plan string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[userID]; ok {
		u.Plan = plan
	}
}
