package employee

import (
	"strings"
	"time"

	"hrdesk/internal/domain/auth"
)

type Employee struct {
	ID           int64     `json:"id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         auth.Role `json:"role"`
	Department   string    `json:"department"`
	JoinDate     time.Time `json:"join_date"`
	ProfileImage string    `json:"profile_image"`
	MFAEnabled   bool      `json:"mfa_enabled"`
	MFASecretEnc []byte    `json:"-"`
}

func (e Employee) FullName() string {
	return strings.TrimSpace(e.FirstName + " " + e.LastName)
}

// Identity projects the row onto the request-scoped actor.
func (e Employee) Identity(sessionID string) auth.Identity {
	return auth.Identity{
		EmployeeID: e.ID,
		FirstName:  e.FirstName,
		LastName:   e.LastName,
		Email:      e.Email,
		Department: e.Department,
		Role:       e.Role,
		SessionID:  sessionID,
	}
}

type Filter struct {
	ExcludeRoles []auth.Role
	Department   string
}

func (f Filter) Matches(e Employee) bool {
	for _, r := range f.ExcludeRoles {
		if e.Role == r {
			return false
		}
	}
	if f.Department != "" && e.Department != f.Department {
		return false
	}
	return true
}

type Registration struct {
	FirstName       string
	LastName        string
	Email           string
	Password        string
	ConfirmPassword string
	Department      string
}

type ProfileUpdate struct {
	FirstName string
	LastName  string
	Email     string
}

type PasswordChange struct {
	Current string
	New     string
	Confirm string
}
