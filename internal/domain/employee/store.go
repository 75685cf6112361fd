package employee

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"hrdesk/internal/domain/auth"
)

const uniqueViolation = "23505"

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

const selectEmployee = `
    SELECT id, first_name, last_name, email, password_hash, role,
           COALESCE(department, ''), join_date, COALESCE(profile_image, ''),
           mfa_enabled, mfa_secret_enc
    FROM employees`

func (s *Store) FindByID(ctx context.Context, id int64) (Employee, error) {
	return scanEmployee(s.DB.QueryRow(ctx, selectEmployee+" WHERE id = $1", id))
}

func (s *Store) FindByEmail(ctx context.Context, email string) (Employee, error) {
	return scanEmployee(s.DB.QueryRow(ctx, selectEmployee+" WHERE lower(email) = lower($1)", email))
}

func (s *Store) Create(ctx context.Context, emp *Employee) error {
	err := s.DB.QueryRow(ctx, `
    INSERT INTO employees (first_name, last_name, email, password_hash, role, department, join_date, profile_image)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
    RETURNING id
  `, emp.FirstName, emp.LastName, emp.Email, emp.PasswordHash, emp.Role.String(),
		nullIfEmpty(emp.Department), emp.JoinDate, nullIfEmpty(emp.ProfileImage)).Scan(&emp.ID)
	if isUniqueViolation(err) {
		return ErrEmailTaken
	}
	return err
}

func (s *Store) Save(ctx context.Context, emp Employee) error {
	cmd, err := s.DB.Exec(ctx, `
    UPDATE employees
    SET first_name = $1,
        last_name = $2,
        email = $3,
        password_hash = $4,
        role = $5,
        department = $6,
        profile_image = $7,
        mfa_enabled = $8,
        mfa_secret_enc = $9,
        updated_at = now()
    WHERE id = $10
  `, emp.FirstName, emp.LastName, emp.Email, emp.PasswordHash, emp.Role.String(),
		nullIfEmpty(emp.Department), nullIfEmpty(emp.ProfileImage), emp.MFAEnabled, emp.MFASecretEnc, emp.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrEmailTaken
		}
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) ListFiltered(ctx context.Context, filter Filter) ([]Employee, error) {
	var (
		where []string
		args  []any
	)
	if len(filter.ExcludeRoles) > 0 {
		names := make([]string, 0, len(filter.ExcludeRoles))
		for _, r := range filter.ExcludeRoles {
			names = append(names, r.String())
		}
		args = append(args, names)
		where = append(where, fmt.Sprintf("role <> ALL($%d)", len(args)))
	}
	if filter.Department != "" {
		args = append(args, filter.Department)
		where = append(where, fmt.Sprintf("department = $%d", len(args)))
	}
	query := selectEmployee
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY id"

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, emp)
	}
	return out, rows.Err()
}

func scanEmployee(row pgx.Row) (Employee, error) {
	var emp Employee
	var role string
	err := row.Scan(&emp.ID, &emp.FirstName, &emp.LastName, &emp.Email, &emp.PasswordHash, &role,
		&emp.Department, &emp.JoinDate, &emp.ProfileImage, &emp.MFAEnabled, &emp.MFASecretEnc)
	if errors.Is(err, pgx.ErrNoRows) {
		return Employee{}, ErrNotFound
	}
	if err != nil {
		return Employee{}, err
	}
	parsed, err := auth.ParseRole(role)
	if err != nil {
		return Employee{}, fmt.Errorf("employee %d: %w", emp.ID, err)
	}
	emp.Role = parsed
	return emp, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

func nullIfEmpty(value string) any {
	if value == "" {
		return nil
	}
	return value
}
