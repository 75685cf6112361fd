package auth

import (
	"context"
	"errors"
	"fmt"
	"time"
)

type Session struct {
	ID         int64
	EmployeeID int64
	TokenHash  string
	ExpiresAt  time.Time
	RevokedAt  *time.Time
	CreatedAt  time.Time
}

func (s Session) Active(now time.Time) bool {
	return s.RevokedAt == nil && now.Before(s.ExpiresAt)
}

type SessionStore interface {
	CreateSession(ctx context.Context, session *Session) error
	FindSession(ctx context.Context, tokenHash string) (Session, error)
	RevokeSession(ctx context.Context, tokenHash string, at time.Time) error
}

// Sessions issues and resolves session cookies. The cookie value is a signed
// JWT naming the employee and an opaque session id, and the session id must
// also match an active server-side row.
type Sessions struct {
	Store  SessionStore
	Secret []byte
	TTL    time.Duration
	Now    func() time.Time
}

func NewSessions(store SessionStore, secret []byte, ttl time.Duration) *Sessions {
	return &Sessions{Store: store, Secret: secret, TTL: ttl, Now: time.Now}
}

type Started struct {
	Token     string
	SessionID string
	ExpiresAt time.Time
}

func (s *Sessions) Start(ctx context.Context, employeeID int64) (Started, error) {
	now := s.now()
	sessionID, err := NewOpaqueToken()
	if err != nil {
		return Started{}, fmt.Errorf("generate session id: %w", err)
	}
	expires := now.Add(s.TTL)
	if err := s.Store.CreateSession(ctx, &Session{
		EmployeeID: employeeID,
		TokenHash:  HashToken(sessionID),
		ExpiresAt:  expires,
		CreatedAt:  now,
	}); err != nil {
		return Started{}, fmt.Errorf("create session: %w", err)
	}
	token, err := GenerateToken(s.Secret, Claims{EmployeeID: employeeID, SessionID: sessionID}, now, s.TTL)
	if err != nil {
		return Started{}, fmt.Errorf("sign session: %w", err)
	}
	return Started{Token: token, SessionID: sessionID, ExpiresAt: expires}, nil
}

// Resolve returns the employee id and session id behind a cookie value.
// Every failure is reported as ErrSessionInvalid.
func (s *Sessions) Resolve(ctx context.Context, token string) (int64, string, error) {
	if token == "" {
		return 0, "", ErrSessionInvalid
	}
	claims, err := ParseToken(s.Secret, token)
	if err != nil || claims.EmployeeID <= 0 || claims.SessionID == "" {
		return 0, "", ErrSessionInvalid
	}
	session, err := s.Store.FindSession(ctx, HashToken(claims.SessionID))
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return 0, "", ErrSessionInvalid
		}
		return 0, "", fmt.Errorf("find session: %w", err)
	}
	if session.EmployeeID != claims.EmployeeID || !session.Active(s.now()) {
		return 0, "", ErrSessionInvalid
	}
	return claims.EmployeeID, claims.SessionID, nil
}

func (s *Sessions) End(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	return s.Store.RevokeSession(ctx, HashToken(sessionID), s.now())
}

func (s *Sessions) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
