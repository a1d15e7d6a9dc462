package kv

import (
	"context"

	"github.com/driveway/rental-system/internal/core/domain"
	"github.com/driveway/rental-system/internal/core/ports"
)

var _ ports.SessionRepository = (*SessionRepository)(nil)

// SessionRepository keeps the current session under KeyAuthUser and its token
// under KeyAuthToken. Saving overwrites whatever session was there.
type SessionRepository struct {
	adapter *Adapter
}

func NewSessionRepository(a *Adapter) *SessionRepository {
	return &SessionRepository{adapter: a}
}

func (r *SessionRepository) Save(ctx context.Context, session *domain.AuthSession) error {
	if err := r.adapter.Set(ctx, KeyAuthUser, session); err != nil {
		return err
	}
	return r.adapter.Set(ctx, KeyAuthToken, session.Token)
}

func (r *SessionRepository) Current(ctx context.Context) (*domain.AuthSession, error) {
	var session domain.AuthSession
	found, err := r.adapter.Get(ctx, KeyAuthUser, &session)
	if err != nil || !found {
		return nil, err
	}
	return &session, nil
}

// Token returns the stored bearer token, or "" when logged out.
func (r *SessionRepository) Token(ctx context.Context) (string, error) {
	var token string
	if _, err := r.adapter.Get(ctx, KeyAuthToken, &token); err != nil {
		return "", err
	}
	return token, nil
}

// Clear is idempotent.
func (r *SessionRepository) Clear(ctx context.Context) error {
	if err := r.adapter.Remove(ctx, KeyAuthUser); err != nil {
		return err
	}
	return r.adapter.Remove(ctx, KeyAuthToken)
}
