// Package gormstore implements the repositories on MySQL through GORM. It is
// selected with DB_DRIVER=mysql.
package gormstore

import (
	"context"
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"hrdesk/internal/domain/audit"
	"hrdesk/internal/domain/auth"
	"hrdesk/internal/domain/employee"
	"hrdesk/internal/domain/leave"
	"hrdesk/internal/domain/payroll"
)

type DB struct {
	db *gorm.DB
}

// Open connects with a go-sql-driver DSN such as
// user:pass@tcp(127.0.0.1:3306)/hrdesk?charset=utf8mb4&parseTime=True&loc=UTC.
func Open(dsn string) (*DB, error) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open mysql: %w", err)
	}
	return New(db), nil
}

func New(db *gorm.DB) *DB {
	return &DB{db: db}
}

// AutoMigrate creates or updates every table.
func (d *DB) AutoMigrate(ctx context.Context) error {
	return d.db.WithContext(ctx).AutoMigrate(
		&employeeRow{},
		&leaveRow{},
		&salaryRow{},
		&sessionRow{},
		&auditRow{},
	)
}

func (d *DB) Ping(ctx context.Context) error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (d *DB) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (d *DB) Employees() *EmployeeRepository { return &EmployeeRepository{db: d.db} }
func (d *DB) Leaves() *LeaveRepository       { return &LeaveRepository{db: d.db} }
func (d *DB) Salaries() *SalaryRepository    { return &SalaryRepository{db: d.db} }
func (d *DB) Sessions() *SessionRepository   { return &SessionRepository{db: d.db} }
func (d *DB) Audit() *AuditRepository        { return &AuditRepository{db: d.db} }

var (
	_ employee.Repository = (*EmployeeRepository)(nil)
	_ leave.Repository    = (*LeaveRepository)(nil)
	_ payroll.Repository  = (*SalaryRepository)(nil)
	_ auth.SessionStore   = (*SessionRepository)(nil)
	_ audit.Repository    = (*AuditRepository)(nil)
)
