package auth

import "strings"

// Identity is the authenticated actor for one request, rebuilt from the
// stored employee row every time the session gate runs.
type Identity struct {
	EmployeeID int64
	FirstName  string
	LastName   string
	Email      string
	Department string
	Role       Role
	SessionID  string
}

func (i Identity) FullName() string {
	return strings.TrimSpace(i.FirstName + " " + i.LastName)
}
