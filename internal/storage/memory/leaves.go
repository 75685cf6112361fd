package memory

import (
	"context"
	"sort"

	"hrdesk/internal/domain/leave"
)

type Leaves struct {
	db *DB
}

// join fills the requester columns; mu must be held.
func (r *Leaves) join(req leave.Request) leave.Request {
	if emp, ok := r.db.employees[req.EmployeeID]; ok {
		req.EmployeeFirstName = emp.FirstName
		req.EmployeeLastName = emp.LastName
		req.EmployeeEmail = emp.Email
		req.Department = emp.Department
	}
	return req
}

func (r *Leaves) FindByID(ctx context.Context, id int64) (leave.Request, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	req, ok := r.db.leaves[id]
	if !ok {
		return leave.Request{}, leave.ErrNotFound
	}
	return r.join(req), nil
}

func (r *Leaves) Create(ctx context.Context, req *leave.Request) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	req.ID = r.db.nextID()
	stored := *req
	stored.EmployeeFirstName, stored.EmployeeLastName, stored.EmployeeEmail, stored.Department = "", "", "", ""
	r.db.leaves[req.ID] = stored
	return nil
}

func (r *Leaves) ListFiltered(ctx context.Context, filter leave.Filter) ([]leave.Request, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	var out []leave.Request
	for _, req := range r.db.leaves {
		joined := r.join(req)
		if filter.Matches(joined) {
			out = append(out, joined)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].RequestedOn.Equal(out[j].RequestedOn) {
			return out[i].RequestedOn.After(out[j].RequestedOn)
		}
		return out[i].ID > out[j].ID
	})
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (r *Leaves) Decide(ctx context.Context, d leave.Decision) (bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	req, ok := r.db.leaves[d.RequestID]
	if !ok || req.Status != leave.StatusPending {
		return false, nil
	}
	managerID := d.ManagerID
	decidedAt := d.DecidedAt
	req.Status = d.Status
	req.ManagerID = &managerID
	req.ApprovedOn = &decidedAt
	r.db.leaves[d.RequestID] = req
	return true, nil
}

func (r *Leaves) Delete(ctx context.Context, id, employeeID int64) (bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	req, ok := r.db.leaves[id]
	if !ok || req.EmployeeID != employeeID {
		return false, nil
	}
	delete(r.db.leaves, id)
	return true, nil
}

func (r *Leaves) LeaveTypes(ctx context.Context) ([]string, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	seen := make(map[string]struct{})
	var out []string
	for _, req := range r.db.leaves {
		if _, ok := seen[req.LeaveType]; ok {
			continue
		}
		seen[req.LeaveType] = struct{}{}
		out = append(out, req.LeaveType)
	}
	sort.Strings(out)
	return out, nil
}
