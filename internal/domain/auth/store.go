package auth

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) CreateSession(ctx context.Context, session *Session) error {
	return s.DB.QueryRow(ctx, `
    INSERT INTO sessions (employee_id, token_hash, expires_at, created_at)
    VALUES ($1,$2,$3,$4)
    RETURNING id
  `, session.EmployeeID, session.TokenHash, session.ExpiresAt, session.CreatedAt).Scan(&session.ID)
}

func (s *Store) FindSession(ctx context.Context, tokenHash string) (Session, error) {
	var out Session
	err := s.DB.QueryRow(ctx, `
    SELECT id, employee_id, token_hash, expires_at, revoked_at, created_at
    FROM sessions
    WHERE token_hash = $1
  `, tokenHash).Scan(&out.ID, &out.EmployeeID, &out.TokenHash, &out.ExpiresAt, &out.RevokedAt, &out.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Session{}, ErrSessionNotFound
	}
	return out, err
}

func (s *Store) RevokeSession(ctx context.Context, tokenHash string, at time.Time) error {
	_, err := s.DB.Exec(ctx, "UPDATE sessions SET revoked_at = $1 WHERE token_hash = $2 AND revoked_at IS NULL", at, tokenHash)
	return err
}
