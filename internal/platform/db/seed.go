package db

import (
	"context"
	"errors"
	"strings"
	"time"

	"hrdesk/internal/domain/auth"
	"hrdesk/internal/domain/employee"
)

// SeedAdmin creates the first administrator when no employee owns email.
// It reports whether a row was created.
func SeedAdmin(ctx context.Context, repo employee.Repository, email, password string, now time.Time) (bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return false, nil
	}
	_, err := repo.FindByEmail(ctx, email)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, employee.ErrNotFound) {
		return false, err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return false, err
	}
	admin := employee.Employee{
		FirstName:    "System",
		LastName:     "Admin",
		Email:        email,
		PasswordHash: hash,
		Role:         auth.RoleAdmin,
		JoinDate:     time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC),
	}
	if err := repo.Create(ctx, &admin); err != nil {
		return false, err
	}
	return true, nil
}
