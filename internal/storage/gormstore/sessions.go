package gormstore

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"hrdesk/internal/domain/auth"
)

type SessionRepository struct {
	db *gorm.DB
}

func (r *SessionRepository) CreateSession(ctx context.Context, session *auth.Session) error {
	row := sessionRow{
		EmployeeID: session.EmployeeID,
		TokenHash:  session.TokenHash,
		ExpiresAt:  session.ExpiresAt,
		CreatedAt:  session.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return err
	}
	session.ID = row.ID
	return nil
}

func (r *SessionRepository) FindSession(ctx context.Context, tokenHash string) (auth.Session, error) {
	var row sessionRow
	err := r.db.WithContext(ctx).Where("token_hash = ?", tokenHash).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return auth.Session{}, auth.ErrSessionNotFound
	}
	if err != nil {
		return auth.Session{}, err
	}
	return auth.Session{
		ID:         row.ID,
		EmployeeID: row.EmployeeID,
		TokenHash:  row.TokenHash,
		ExpiresAt:  row.ExpiresAt,
		RevokedAt:  row.RevokedAt,
		CreatedAt:  row.CreatedAt,
	}, nil
}

func (r *SessionRepository) RevokeSession(ctx context.Context, tokenHash string, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&sessionRow{}).
		Where("token_hash = ? AND revoked_at IS NULL", tokenHash).
		Update("revoked_at", at).Error
}
