package leave

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

const selectRequest = `
    SELECT lr.id, lr.employee_id, lr.leave_type, lr.start_date, lr.end_date,
           COALESCE(lr.reason, ''), lr.status, lr.manager_id, lr.requested_on, lr.approved_on,
           e.first_name, e.last_name, e.email, COALESCE(e.department, '')
    FROM leave_requests lr
    JOIN employees e ON e.id = lr.employee_id`

func (s *Store) FindByID(ctx context.Context, id int64) (Request, error) {
	req, err := scanRequest(s.DB.QueryRow(ctx, selectRequest+" WHERE lr.id = $1", id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Request{}, ErrNotFound
	}
	return req, err
}

func (s *Store) Create(ctx context.Context, req *Request) error {
	return s.DB.QueryRow(ctx, `
    INSERT INTO leave_requests (employee_id, leave_type, start_date, end_date, reason, status, requested_on)
    VALUES ($1,$2,$3,$4,$5,$6,$7)
    RETURNING id
  `, req.EmployeeID, req.LeaveType, req.StartDate, req.EndDate, nullIfEmpty(req.Reason), string(req.Status), req.RequestedOn).Scan(&req.ID)
}

func (s *Store) ListFiltered(ctx context.Context, filter Filter) ([]Request, error) {
	var (
		where []string
		args  []any
	)
	add := func(clause string, value any) {
		args = append(args, value)
		where = append(where, fmt.Sprintf(clause, len(args)))
	}
	if filter.EmployeeID != 0 {
		add("lr.employee_id = $%d", filter.EmployeeID)
	}
	if filter.ExcludeEmployeeID != 0 {
		add("lr.employee_id <> $%d", filter.ExcludeEmployeeID)
	}
	if filter.Department != "" {
		add("e.department = $%d", filter.Department)
	}
	if filter.LeaveType != "" {
		add("lr.leave_type = $%d", filter.LeaveType)
	}
	if filter.Status != "" {
		add("lr.status = $%d", string(filter.Status))
	}
	if filter.StartFrom != nil {
		add("lr.start_date >= $%d", *filter.StartFrom)
	}
	if filter.EndTo != nil {
		add("lr.end_date <= $%d", *filter.EndTo)
	}

	query := selectRequest
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY lr.requested_on DESC, lr.id DESC"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Request
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, req)
	}
	return out, rows.Err()
}

func (s *Store) Decide(ctx context.Context, d Decision) (bool, error) {
	cmd, err := s.DB.Exec(ctx, `
    UPDATE leave_requests
    SET status = $1, manager_id = $2, approved_on = $3
    WHERE id = $4 AND status = $5
  `, string(d.Status), d.ManagerID, d.DecidedAt, d.RequestID, string(StatusPending))
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() == 1, nil
}

func (s *Store) Delete(ctx context.Context, id, employeeID int64) (bool, error) {
	cmd, err := s.DB.Exec(ctx, `DELETE FROM leave_requests WHERE id = $1 AND employee_id = $2`, id, employeeID)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

func (s *Store) LeaveTypes(ctx context.Context) ([]string, error) {
	rows, err := s.DB.Query(ctx, `SELECT DISTINCT leave_type FROM leave_requests ORDER BY leave_type`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func scanRequest(row pgx.Row) (Request, error) {
	var (
		req        Request
		status     string
		managerID  *int64
		approvedOn *time.Time
	)
	if err := row.Scan(&req.ID, &req.EmployeeID, &req.LeaveType, &req.StartDate, &req.EndDate,
		&req.Reason, &status, &managerID, &req.RequestedOn, &approvedOn,
		&req.EmployeeFirstName, &req.EmployeeLastName, &req.EmployeeEmail, &req.Department); err != nil {
		return Request{}, err
	}
	req.Status = Status(status)
	req.ManagerID = managerID
	req.ApprovedOn = approvedOn
	return req, nil
}

func nullIfEmpty(value string) any {
	if value == "" {
		return nil
	}
	return value
}
