package memory

import (
	"context"
	"sort"
	"strings"

	"hrdesk/internal/domain/employee"
)

type Employees struct {
	db *DB
}

func (r *Employees) FindByID(ctx context.Context, id int64) (employee.Employee, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	emp, ok := r.db.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrNotFound
	}
	return emp, nil
}

func (r *Employees) FindByEmail(ctx context.Context, email string) (employee.Employee, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	for _, emp := range r.db.employees {
		if strings.EqualFold(emp.Email, email) {
			return emp, nil
		}
	}
	return employee.Employee{}, employee.ErrNotFound
}

func (r *Employees) Create(ctx context.Context, emp *employee.Employee) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if r.emailTaken(emp.Email, 0) {
		return employee.ErrEmailTaken
	}
	emp.ID = r.db.nextID()
	r.db.employees[emp.ID] = *emp
	return nil
}

func (r *Employees) Save(ctx context.Context, emp employee.Employee) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.employees[emp.ID]; !ok {
		return employee.ErrNotFound
	}
	if r.emailTaken(emp.Email, emp.ID) {
		return employee.ErrEmailTaken
	}
	r.db.employees[emp.ID] = emp
	return nil
}

func (r *Employees) ListFiltered(ctx context.Context, filter employee.Filter) ([]employee.Employee, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	var out []employee.Employee
	for _, emp := range r.db.employees {
		if filter.Matches(emp) {
			out = append(out, emp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *Employees) emailTaken(email string, exceptID int64) bool {
	for id, other := range r.db.employees {
		if id != exceptID && strings.EqualFold(other.Email, email) {
			return true
		}
	}
	return false
}
