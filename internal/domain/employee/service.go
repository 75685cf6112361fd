package employee

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"hrdesk/internal/domain/auth"
)

const (
	msgAllFieldsRequired = "All fields are required"
	msgPasswordsMismatch = "Passwords do not match"
	msgEmailTaken        = "Email already registered"
	msgWrongPassword     = "Current password is incorrect."
	msgNewPassMismatch   = "New password and confirmation do not match."
	msgInvalidRole       = "Invalid role selected"
	msgAdminRoleLocked   = "Administrator roles cannot be changed"
)

type Service struct {
	Repo   Repository
	Images ImageStore
	Now    func() time.Time
}

func NewService(repo Repository, images ImageStore) *Service {
	return &Service{Repo: repo, Images: images, Now: time.Now}
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *Service) Get(ctx context.Context, id int64) (Employee, error) {
	return s.Repo.FindByID(ctx, id)
}

// Register creates a new account with the Employee role.
func (s *Service) Register(ctx context.Context, reg Registration) (Employee, error) {
	if strings.TrimSpace(reg.FirstName) == "" || strings.TrimSpace(reg.LastName) == "" ||
		strings.TrimSpace(reg.Email) == "" || reg.Password == "" || reg.ConfirmPassword == "" {
		return Employee{}, invalid(msgAllFieldsRequired)
	}
	if reg.Password != reg.ConfirmPassword {
		return Employee{}, invalid(msgPasswordsMismatch)
	}
	email := normalizeEmail(reg.Email)
	if _, err := s.Repo.FindByEmail(ctx, email); err == nil {
		return Employee{}, invalid(msgEmailTaken)
	} else if !errors.Is(err, ErrNotFound) {
		return Employee{}, fmt.Errorf("lookup email: %w", err)
	}

	hash, err := auth.HashPassword(reg.Password)
	if err != nil {
		return Employee{}, fmt.Errorf("hash password: %w", err)
	}
	now := s.now()
	emp := Employee{
		FirstName:    strings.TrimSpace(reg.FirstName),
		LastName:     strings.TrimSpace(reg.LastName),
		Email:        email,
		PasswordHash: hash,
		Role:         auth.RoleEmployee,
		Department:   strings.TrimSpace(reg.Department),
		JoinDate:     time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC),
	}
	if err := s.Repo.Create(ctx, &emp); err != nil {
		if errors.Is(err, ErrEmailTaken) {
			return Employee{}, invalid(msgEmailTaken)
		}
		return Employee{}, fmt.Errorf("create employee: %w", err)
	}
	return emp, nil
}

// Authenticate returns ErrNotFound for an unknown email and
// ErrInvalidCredentials for a wrong password.
func (s *Service) Authenticate(ctx context.Context, email, password string) (Employee, error) {
	emp, err := s.Repo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return Employee{}, err
	}
	if err := auth.CheckPassword(emp.PasswordHash, password); err != nil {
		return Employee{}, ErrInvalidCredentials
	}
	return emp, nil
}

func (s *Service) ChangePassword(ctx context.Context, id int64, change PasswordChange) error {
	emp, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := auth.CheckPassword(emp.PasswordHash, change.Current); err != nil {
		return invalid(msgWrongPassword)
	}
	if change.New != change.Confirm {
		return invalid(msgNewPassMismatch)
	}
	hash, err := auth.HashPassword(change.New)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	emp.PasswordHash = hash
	return s.Repo.Save(ctx, emp)
}

// UpdateProfile applies the settings form. Blank fields keep their stored
// value.
func (s *Service) UpdateProfile(ctx context.Context, id int64, update ProfileUpdate) (Employee, error) {
	emp, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return Employee{}, err
	}
	first := strings.TrimSpace(update.FirstName)
	if first == "" {
		first = emp.FirstName
	}
	last := strings.TrimSpace(update.LastName)
	if last == "" {
		last = emp.LastName
	}
	if err := validateNames(first, last); err != nil {
		return Employee{}, err
	}
	emp.FirstName = first
	emp.LastName = last
	if err := s.changeEmail(ctx, &emp, update.Email); err != nil {
		return Employee{}, err
	}
	if err := s.save(ctx, emp); err != nil {
		return Employee{}, err
	}
	return emp, nil
}

// UpdateDetails is the staff edit form: a full name split on the first
// space plus an email address.
func (s *Service) UpdateDetails(ctx context.Context, id int64, fullName, email string) (Employee, error) {
	emp, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return Employee{}, err
	}
	if strings.TrimSpace(fullName) != "" {
		first, last := SplitFullName(fullName)
		if err := validateNames(first, last); err != nil {
			return Employee{}, err
		}
		emp.FirstName = first
		emp.LastName = last
	}
	if err := s.changeEmail(ctx, &emp, email); err != nil {
		return Employee{}, err
	}
	if err := s.save(ctx, emp); err != nil {
		return Employee{}, err
	}
	return emp, nil
}

func (s *Service) changeEmail(ctx context.Context, emp *Employee, email string) error {
	email = normalizeEmail(email)
	if email == "" || email == emp.Email {
		return nil
	}
	other, err := s.Repo.FindByEmail(ctx, email)
	switch {
	case err == nil && other.ID != emp.ID:
		return invalid(msgEmailTaken)
	case err != nil && !errors.Is(err, ErrNotFound):
		return fmt.Errorf("lookup email: %w", err)
	}
	emp.Email = email
	return nil
}

func (s *Service) save(ctx context.Context, emp Employee) error {
	if err := s.Repo.Save(ctx, emp); err != nil {
		if errors.Is(err, ErrEmailTaken) {
			return invalid(msgEmailTaken)
		}
		return err
	}
	return nil
}

// UpdateRole grants one of the assignable roles. Administrators are never
// demoted through this path.
func (s *Service) UpdateRole(ctx context.Context, id int64, roleName string) (Employee, error) {
	emp, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return Employee{}, err
	}
	role, err := auth.ParseRole(strings.TrimSpace(roleName))
	if err != nil || !role.Assignable() {
		return Employee{}, invalid(msgInvalidRole)
	}
	if emp.Role == auth.RoleAdmin {
		return Employee{}, invalid(msgAdminRoleLocked)
	}
	emp.Role = role
	if err := s.Repo.Save(ctx, emp); err != nil {
		return Employee{}, err
	}
	return emp, nil
}

// List returns every employee ordered by id.
func (s *Service) List(ctx context.Context) ([]Employee, error) {
	return s.Repo.ListFiltered(ctx, Filter{})
}

// ListManageable excludes administrators.
func (s *Service) ListManageable(ctx context.Context) ([]Employee, error) {
	return s.Repo.ListFiltered(ctx, Filter{ExcludeRoles: []auth.Role{auth.RoleAdmin}})
}

// Departments returns the distinct non-empty departments, sorted.
func (s *Service) Departments(ctx context.Context) ([]string, error) {
	all, err := s.Repo.ListFiltered(ctx, Filter{})
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{})
	var out []string
	for _, e := range all {
		if e.Department == "" {
			continue
		}
		if _, ok := seen[e.Department]; ok {
			continue
		}
		seen[e.Department] = struct{}{}
		out = append(out, e.Department)
	}
	sort.Strings(out)
	return out, nil
}

// SetProfileImage decodes a data URL, writes it to the image store and
// removes the previously stored file.
func (s *Service) SetProfileImage(ctx context.Context, id int64, dataURL string) (Employee, error) {
	if s.Images == nil {
		return Employee{}, ErrImageStoreMissing
	}
	emp, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return Employee{}, err
	}
	img, err := ParseImageDataURL(dataURL)
	if err != nil {
		return Employee{}, err
	}
	name := fmt.Sprintf("profile_%d.%s", emp.ID, img.Ext)
	path, err := s.Images.Save(name, img.Data)
	if err != nil {
		return Employee{}, fmt.Errorf("store image: %w", err)
	}
	previous := emp.ProfileImage
	emp.ProfileImage = path
	if err := s.Repo.Save(ctx, emp); err != nil {
		return Employee{}, err
	}
	if previous != "" && previous != path {
		if err := s.Images.Remove(previous); err != nil {
			return emp, fmt.Errorf("remove previous image: %w", err)
		}
	}
	return emp, nil
}

// SetMFA stores or clears the sealed TOTP secret.
func (s *Service) SetMFA(ctx context.Context, id int64, enabled bool, sealed []byte) error {
	emp, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	emp.MFAEnabled = enabled
	emp.MFASecretEnc = sealed
	return s.Repo.Save(ctx, emp)
}
