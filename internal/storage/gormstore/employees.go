package gormstore

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"hrdesk/internal/domain/auth"
	"hrdesk/internal/domain/employee"
)

type EmployeeRepository struct {
	db *gorm.DB
}

func toEmployeeRow(e employee.Employee) employeeRow {
	return employeeRow{
		ID:           e.ID,
		FirstName:    e.FirstName,
		LastName:     e.LastName,
		Email:        e.Email,
		PasswordHash: e.PasswordHash,
		Role:         e.Role.String(),
		Department:   strPtr(e.Department),
		JoinDate:     e.JoinDate,
		ProfileImage: strPtr(e.ProfileImage),
		MFAEnabled:   e.MFAEnabled,
		MFASecretEnc: e.MFASecretEnc,
	}
}

func (row employeeRow) toDomain() (employee.Employee, error) {
	role, err := auth.ParseRole(row.Role)
	if err != nil {
		return employee.Employee{}, fmt.Errorf("employee %d: %w", row.ID, err)
	}
	return employee.Employee{
		ID:           row.ID,
		FirstName:    row.FirstName,
		LastName:     row.LastName,
		Email:        row.Email,
		PasswordHash: row.PasswordHash,
		Role:         role,
		Department:   strVal(row.Department),
		JoinDate:     row.JoinDate,
		ProfileImage: strVal(row.ProfileImage),
		MFAEnabled:   row.MFAEnabled,
		MFASecretEnc: row.MFASecretEnc,
	}, nil
}

func (r *EmployeeRepository) FindByID(ctx context.Context, id int64) (employee.Employee, error) {
	var row employeeRow
	if err := r.db.WithContext(ctx).First(&row, id).Error; err != nil {
		return employee.Employee{}, mapEmployeeErr(err)
	}
	return row.toDomain()
}

func (r *EmployeeRepository) FindByEmail(ctx context.Context, email string) (employee.Employee, error) {
	var row employeeRow
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&row).Error; err != nil {
		return employee.Employee{}, mapEmployeeErr(err)
	}
	return row.toDomain()
}

func (r *EmployeeRepository) Create(ctx context.Context, emp *employee.Employee) error {
	row := toEmployeeRow(*emp)
	row.ID = 0
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return mapEmployeeErr(err)
	}
	emp.ID = row.ID
	return nil
}

func (r *EmployeeRepository) Save(ctx context.Context, emp employee.Employee) error {
	row := toEmployeeRow(emp)
	res := r.db.WithContext(ctx).
		Model(&employeeRow{}).
		Where("id = ?", emp.ID).
		Select("first_name", "last_name", "email", "password_hash", "role", "department",
			"profile_image", "mfa_enabled", "mfa_secret_enc", "updated_at").
		Updates(&row)
	if res.Error != nil {
		return mapEmployeeErr(res.Error)
	}
	if res.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&employeeRow{}).Where("id = ?", emp.ID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return employee.ErrNotFound
		}
	}
	return nil
}

func (r *EmployeeRepository) ListFiltered(ctx context.Context, filter employee.Filter) ([]employee.Employee, error) {
	query := r.db.WithContext(ctx).Model(&employeeRow{})
	if len(filter.ExcludeRoles) > 0 {
		names := make([]string, 0, len(filter.ExcludeRoles))
		for _, role := range filter.ExcludeRoles {
			names = append(names, role.String())
		}
		query = query.Where("role NOT IN ?", names)
	}
	if filter.Department != "" {
		query = query.Where("department = ?", filter.Department)
	}

	var rows []employeeRow
	if err := query.Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]employee.Employee, 0, len(rows))
	for _, row := range rows {
		emp, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, emp)
	}
	return out, nil
}

func mapEmployeeErr(err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return employee.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return employee.ErrEmailTaken
	default:
		return err
	}
}
