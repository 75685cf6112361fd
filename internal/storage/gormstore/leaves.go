package gormstore

import (
	"context"

	"gorm.io/gorm"

	"hrdesk/internal/domain/leave"
)

type LeaveRepository struct {
	db *gorm.DB
}

const leaveViewColumns = "lr.id, lr.employee_id, lr.leave_type, lr.start_date, lr.end_date, lr.reason, lr.status, " +
	"lr.manager_id, lr.requested_on, lr.approved_on, e.first_name, e.last_name, e.email, e.department"

func (r *LeaveRepository) joined(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("leave_requests AS lr").
		Select(leaveViewColumns).
		Joins("JOIN employees e ON e.id = lr.employee_id")
}

func (v leaveView) toDomain() leave.Request {
	return leave.Request{
		ID:                v.ID,
		EmployeeID:        v.EmployeeID,
		LeaveType:         v.LeaveType,
		StartDate:         v.StartDate,
		EndDate:           v.EndDate,
		Reason:            strVal(v.Reason),
		Status:            leave.Status(v.Status),
		ManagerID:         v.ManagerID,
		RequestedOn:       v.RequestedOn,
		ApprovedOn:        v.ApprovedOn,
		EmployeeFirstName: v.FirstName,
		EmployeeLastName:  v.LastName,
		EmployeeEmail:     v.Email,
		Department:        strVal(v.Department),
	}
}

func (r *LeaveRepository) FindByID(ctx context.Context, id int64) (leave.Request, error) {
	var views []leaveView
	if err := r.joined(ctx).Where("lr.id = ?", id).Limit(1).Scan(&views).Error; err != nil {
		return leave.Request{}, err
	}
	if len(views) == 0 {
		return leave.Request{}, leave.ErrNotFound
	}
	return views[0].toDomain(), nil
}

func (r *LeaveRepository) Create(ctx context.Context, req *leave.Request) error {
	row := leaveRow{
		EmployeeID:  req.EmployeeID,
		LeaveType:   req.LeaveType,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Reason:      strPtr(req.Reason),
		Status:      string(req.Status),
		RequestedOn: req.RequestedOn,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return err
	}
	req.ID = row.ID
	return nil
}

func (r *LeaveRepository) ListFiltered(ctx context.Context, filter leave.Filter) ([]leave.Request, error) {
	query := r.joined(ctx)
	if filter.EmployeeID != 0 {
		query = query.Where("lr.employee_id = ?", filter.EmployeeID)
	}
	if filter.ExcludeEmployeeID != 0 {
		query = query.Where("lr.employee_id <> ?", filter.ExcludeEmployeeID)
	}
	if filter.Department != "" {
		query = query.Where("e.department = ?", filter.Department)
	}
	if filter.LeaveType != "" {
		query = query.Where("lr.leave_type = ?", filter.LeaveType)
	}
	if filter.Status != "" {
		query = query.Where("lr.status = ?", string(filter.Status))
	}
	if filter.StartFrom != nil {
		query = query.Where("lr.start_date >= ?", *filter.StartFrom)
	}
	if filter.EndTo != nil {
		query = query.Where("lr.end_date <= ?", *filter.EndTo)
	}
	query = query.Order("lr.requested_on DESC").Order("lr.id DESC")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var views []leaveView
	if err := query.Scan(&views).Error; err != nil {
		return nil, err
	}
	out := make([]leave.Request, 0, len(views))
	for _, v := range views {
		out = append(out, v.toDomain())
	}
	return out, nil
}

func (r *LeaveRepository) Decide(ctx context.Context, d leave.Decision) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&leaveRow{}).
		Where("id = ? AND status = ?", d.RequestID, string(leave.StatusPending)).
		Updates(map[string]any{
			"status":      string(d.Status),
			"manager_id":  d.ManagerID,
			"approved_on": d.DecidedAt,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *LeaveRepository) Delete(ctx context.Context, id, employeeID int64) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ? AND employee_id = ?", id, employeeID).Delete(&leaveRow{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *LeaveRepository) LeaveTypes(ctx context.Context) ([]string, error) {
	var types []string
	err := r.db.WithContext(ctx).Model(&leaveRow{}).Distinct().Order("leave_type").Pluck("leave_type", &types).Error
	return types, err
}
