// Package memory keeps every repository in process memory behind one mutex.
// It backs DB_DRIVER=memory and the handler tests.
package memory

import (
	"context"
	"sync"

	"hrdesk/internal/domain/audit"
	"hrdesk/internal/domain/auth"
	"hrdesk/internal/domain/employee"
	"hrdesk/internal/domain/leave"
	"hrdesk/internal/domain/payroll"
)

type DB struct {
	mu        sync.RWMutex
	employees map[int64]employee.Employee
	leaves    map[int64]leave.Request
	salaries  map[int64]payroll.SalaryRecord
	sessions  map[string]auth.Session
	events    []audit.Event
	seq       int64
}

func New() *DB {
	return &DB{
		employees: make(map[int64]employee.Employee),
		leaves:    make(map[int64]leave.Request),
		salaries:  make(map[int64]payroll.SalaryRecord),
		sessions:  make(map[string]auth.Session),
	}
}

// nextID must be called with mu held.
func (db *DB) nextID() int64 {
	db.seq++
	return db.seq
}

func (db *DB) Employees() *Employees { return &Employees{db: db} }
func (db *DB) Leaves() *Leaves       { return &Leaves{db: db} }
func (db *DB) Salaries() *Salaries   { return &Salaries{db: db} }
func (db *DB) Sessions() *Sessions   { return &Sessions{db: db} }
func (db *DB) Audit() *Audit         { return &Audit{db: db} }

// Ping always succeeds.
func (db *DB) Ping(ctx context.Context) error {
	return ctx.Err()
}

var (
	_ employee.Repository = (*Employees)(nil)
	_ leave.Repository    = (*Leaves)(nil)
	_ payroll.Repository  = (*Salaries)(nil)
	_ auth.SessionStore   = (*Sessions)(nil)
	_ audit.Repository    = (*Audit)(nil)
)
