package gormstore

import "time"

type employeeRow struct {
	ID           int64     `gorm:"primaryKey;autoIncrement"`
	FirstName    string    `gorm:"size:50;not null"`
	LastName     string    `gorm:"size:50;not null;default:''"`
	Email        string    `gorm:"size:254;not null;uniqueIndex"`
	PasswordHash string    `gorm:"size:255;not null"`
	Role         string    `gorm:"size:20;not null;default:Employee"`
	Department   *string   `gorm:"size:50;index"`
	JoinDate     time.Time `gorm:"type:date;not null"`
	ProfileImage *string   `gorm:"size:255"`
	MFAEnabled   bool      `gorm:"not null;default:false"`
	MFASecretEnc []byte    `gorm:"type:blob"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (employeeRow) TableName() string { return "employees" }

type leaveRow struct {
	ID          int64     `gorm:"primaryKey;autoIncrement"`
	EmployeeID  int64     `gorm:"not null;index"`
	LeaveType   string    `gorm:"size:50;not null"`
	StartDate   time.Time `gorm:"type:date;not null"`
	EndDate     time.Time `gorm:"type:date;not null"`
	Reason      *string   `gorm:"type:text"`
	Status      string    `gorm:"size:20;not null;default:Pending;index"`
	ManagerID   *int64    `gorm:"index"`
	RequestedOn time.Time `gorm:"not null"`
	ApprovedOn  *time.Time
}

func (leaveRow) TableName() string { return "leave_requests" }

// leaveView is a leave row joined with its requester.
type leaveView struct {
	ID          int64
	EmployeeID  int64
	LeaveType   string
	StartDate   time.Time
	EndDate     time.Time
	Reason      *string
	Status      string
	ManagerID   *int64
	RequestedOn time.Time
	ApprovedOn  *time.Time
	FirstName   string
	LastName    string
	Email       string
	Department  *string
}

type salaryRow struct {
	ID          int64     `gorm:"primaryKey;autoIncrement"`
	EmployeeID  int64     `gorm:"not null;index"`
	BasicSalary float64   `gorm:"type:decimal(10,2);not null"`
	Tax         float64   `gorm:"type:decimal(10,2);not null;default:0"`
	NetPay      float64   `gorm:"type:decimal(10,2);not null"`
	GeneratedOn time.Time `gorm:"type:date;not null"`
}

func (salaryRow) TableName() string { return "salary" }

type sessionRow struct {
	ID         int64     `gorm:"primaryKey;autoIncrement"`
	EmployeeID int64     `gorm:"not null;index"`
	TokenHash  string    `gorm:"size:64;not null;uniqueIndex"`
	ExpiresAt  time.Time `gorm:"not null"`
	RevokedAt  *time.Time
	CreatedAt  time.Time
}

func (sessionRow) TableName() string { return "sessions" }

type auditRow struct {
	ID         int64     `gorm:"primaryKey;autoIncrement"`
	ActorID    int64     `gorm:"not null"`
	Action     string    `gorm:"size:64;not null;index"`
	EntityType string    `gorm:"size:64;not null"`
	EntityID   string    `gorm:"size:64;not null"`
	RequestID  string    `gorm:"size:64;not null;default:''"`
	IP         string    `gorm:"size:64;not null;default:''"`
	Payload    []byte    `gorm:"type:json"`
	CreatedAt  time.Time `gorm:"index"`
}

func (auditRow) TableName() string { return "audit_events" }

func strPtr(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}

func strVal(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
