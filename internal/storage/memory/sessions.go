package memory

import (
	"context"
	"time"

	"hrdesk/internal/domain/auth"
)

type Sessions struct {
	db *DB
}

func (r *Sessions) CreateSession(ctx context.Context, session *auth.Session) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	session.ID = r.db.nextID()
	r.db.sessions[session.TokenHash] = *session
	return nil
}

func (r *Sessions) FindSession(ctx context.Context, tokenHash string) (auth.Session, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	session, ok := r.db.sessions[tokenHash]
	if !ok {
		return auth.Session{}, auth.ErrSessionNotFound
	}
	return session, nil
}

func (r *Sessions) RevokeSession(ctx context.Context, tokenHash string, at time.Time) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	session, ok := r.db.sessions[tokenHash]
	if !ok || session.RevokedAt != nil {
		return nil
	}
	revoked := at
	session.RevokedAt = &revoked
	r.db.sessions[tokenHash] = session
	return nil
}
