package memory

import (
	"context"
	"sort"

	"hrdesk/internal/domain/payroll"
)

type Salaries struct {
	db *DB
}

func (r *Salaries) Create(ctx context.Context, rec *payroll.SalaryRecord) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	rec.ID = r.db.nextID()
	r.db.salaries[rec.ID] = *rec
	return nil
}

func (r *Salaries) FindForEmployee(ctx context.Context, id, employeeID int64) (payroll.SalaryRecord, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	rec, ok := r.db.salaries[id]
	if !ok || rec.EmployeeID != employeeID {
		return payroll.SalaryRecord{}, payroll.ErrNotFound
	}
	return rec, nil
}

func (r *Salaries) ListForEmployee(ctx context.Context, employeeID int64) ([]payroll.SalaryRecord, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	var out []payroll.SalaryRecord
	for _, rec := range r.db.salaries {
		if rec.EmployeeID == employeeID {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].GeneratedOn.Equal(out[j].GeneratedOn) {
			return out[i].GeneratedOn.After(out[j].GeneratedOn)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}
