package leave

import (
	"fmt"
	"strings"
	"time"
)

type Status string

const (
	StatusPending  Status = "Pending"
	StatusApproved Status = "Approved"
	StatusRejected Status = "Rejected"
)

// Statuses lists every status in workflow order.
var Statuses = []Status{StatusPending, StatusApproved, StatusRejected}

func ParseStatus(value string) (Status, error) {
	for _, s := range Statuses {
		if strings.EqualFold(value, string(s)) {
			return s, nil
		}
	}
	return "", fmt.Errorf("unknown leave status %q", value)
}

func (s Status) Terminal() bool {
	switch s {
	case StatusApproved, StatusRejected:
		return true
	default:
		return false
	}
}

func (s Status) Lower() string {
	return strings.ToLower(string(s))
}

// Request is a leave request joined with the requester's name and
// department for display.
type Request struct {
	ID          int64      `json:"id"`
	EmployeeID  int64      `json:"employee_id"`
	LeaveType   string     `json:"leave_type"`
	StartDate   time.Time  `json:"start_date"`
	EndDate     time.Time  `json:"end_date"`
	Reason      string     `json:"reason"`
	Status      Status     `json:"status"`
	ManagerID   *int64     `json:"manager_id"`
	RequestedOn time.Time  `json:"requested_on"`
	ApprovedOn  *time.Time `json:"approved_on"`

	EmployeeFirstName string `json:"employee_first_name,omitempty"`
	EmployeeLastName  string `json:"employee_last_name,omitempty"`
	EmployeeEmail     string `json:"employee_email,omitempty"`
	Department        string `json:"department,omitempty"`
}

func (r Request) Days() int {
	return InclusiveDays(r.StartDate, r.EndDate)
}

func (r Request) EmployeeName() string {
	return strings.TrimSpace(r.EmployeeFirstName + " " + r.EmployeeLastName)
}

// Filter narrows a request listing. Zero values match everything. Results
// are ordered newest first.
type Filter struct {
	EmployeeID        int64
	ExcludeEmployeeID int64
	Department        string
	LeaveType         string
	Status            Status
	StartFrom         *time.Time
	EndTo             *time.Time
	Limit             int
}

func (f Filter) Matches(r Request) bool {
	if f.EmployeeID != 0 && r.EmployeeID != f.EmployeeID {
		return false
	}
	if f.ExcludeEmployeeID != 0 && r.EmployeeID == f.ExcludeEmployeeID {
		return false
	}
	if f.Department != "" && r.Department != f.Department {
		return false
	}
	if f.LeaveType != "" && r.LeaveType != f.LeaveType {
		return false
	}
	if f.Status != "" && r.Status != f.Status {
		return false
	}
	if f.StartFrom != nil && r.StartDate.Before(*f.StartFrom) {
		return false
	}
	if f.EndTo != nil && r.EndDate.After(*f.EndTo) {
		return false
	}
	return true
}

// NewRequest is the employee's submission form.
type NewRequest struct {
	LeaveType string
	StartDate string
	EndDate   string
	Reason    string
}

// Decision is persisted only while the request is still Pending.
type Decision struct {
	RequestID int64
	Status    Status
	ManagerID int64
	DecidedAt time.Time
}

// Stats summarises every request for the manager queue.
type Stats struct {
	PendingCount  int `json:"pending_count"`
	ApprovedCount int `json:"approved_count"`
	RejectedCount int `json:"rejected_count"`
	OnLeaveCount  int `json:"on_leave_count"`
}

// Activity is a dashboard announcement.
type Activity struct {
	Title       string    `json:"title"`
	Date        time.Time `json:"date"`
	Description string    `json:"description"`
}
