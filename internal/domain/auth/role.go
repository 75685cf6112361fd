package auth

import "fmt"

// Role is the fixed set of employee roles. The zero value is RoleEmployee so
// new records default to the least privileged role.
type Role int

const (
	RoleEmployee Role = iota
	RoleManager
	RoleHR
	RoleAdmin
)

// AllRoles lists every role in display order.
var AllRoles = []Role{RoleAdmin, RoleHR, RoleManager, RoleEmployee}

// AssignableRoles are the roles an administrator may grant.
var AssignableRoles = []Role{RoleHR, RoleManager, RoleEmployee}

func (r Role) String() string {
	switch r {
	case RoleEmployee:
		return "Employee"
	case RoleManager:
		return "Manager"
	case RoleHR:
		return "HR"
	case RoleAdmin:
		return "Admin"
	default:
		return fmt.Sprintf("Role(%d)", int(r))
	}
}

func (r Role) Valid() bool {
	switch r {
	case RoleEmployee, RoleManager, RoleHR, RoleAdmin:
		return true
	default:
		return false
	}
}

// ParseRole matches the stored role names exactly.
func ParseRole(value string) (Role, error) {
	switch value {
	case "Employee":
		return RoleEmployee, nil
	case "Manager":
		return RoleManager, nil
	case "HR":
		return RoleHR, nil
	case "Admin":
		return RoleAdmin, nil
	default:
		return RoleEmployee, fmt.Errorf("%w: %q", ErrUnknownRole, value)
	}
}

func (r Role) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownRole, int(r))
	}
	return []byte(r.String()), nil
}

func (r *Role) UnmarshalText(text []byte) error {
	parsed, err := ParseRole(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// Assignable reports whether an administrator may grant the role.
func (r Role) Assignable() bool {
	switch r {
	case RoleHR, RoleManager, RoleEmployee:
		return true
	case RoleAdmin:
		return false
	default:
		return false
	}
}

// In reports whether r is one of roles.
func (r Role) In(roles ...Role) bool {
	for _, candidate := range roles {
		if r == candidate {
			return true
		}
	}
	return false
}
