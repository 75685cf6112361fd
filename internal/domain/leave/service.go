package leave

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"hrdesk/internal/domain/auth"
)

const (
	msgAllFieldsRequired = "All fields are required"
	msgInvalidDate       = "Invalid date format"
	msgEndBeforeStart    = "End date must be after start date"

	activityLimit = 5
)

type Service struct {
	Repo Repository
	Now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{Repo: repo, Now: time.Now}
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *Service) Get(ctx context.Context, id int64) (Request, error) {
	return s.Repo.FindByID(ctx, id)
}

// Submit files a Pending request for employeeID.
func (s *Service) Submit(ctx context.Context, employeeID int64, form NewRequest) (Request, error) {
	leaveType := strings.TrimSpace(form.LeaveType)
	reason := strings.TrimSpace(form.Reason)
	if leaveType == "" || form.StartDate == "" || form.EndDate == "" || reason == "" {
		return Request{}, invalid(msgAllFieldsRequired)
	}
	start, err := ParseDate(strings.TrimSpace(form.StartDate))
	if err != nil {
		return Request{}, invalid(msgInvalidDate)
	}
	end, err := ParseDate(strings.TrimSpace(form.EndDate))
	if err != nil {
		return Request{}, invalid(msgInvalidDate)
	}
	if InclusiveDays(start, end) < 1 {
		return Request{}, invalid(msgEndBeforeStart)
	}

	req := Request{
		EmployeeID:  employeeID,
		LeaveType:   leaveType,
		StartDate:   start,
		EndDate:     end,
		Reason:      reason,
		Status:      StatusPending,
		RequestedOn: s.now().UTC(),
	}
	if err := s.Repo.Create(ctx, &req); err != nil {
		return Request{}, fmt.Errorf("create leave request: %w", err)
	}
	return req, nil
}

// ListForEmployee returns the employee's own requests, newest first.
func (s *Service) ListForEmployee(ctx context.Context, employeeID int64) ([]Request, error) {
	return s.Repo.ListFiltered(ctx, Filter{EmployeeID: employeeID})
}

// ListAll returns every request. The report aggregator reads from it.
func (s *Service) ListAll(ctx context.Context) ([]Request, error) {
	return s.Repo.ListFiltered(ctx, Filter{})
}

// QueueFilter holds the raw query values of the manager queue. Blank values
// and dates that do not parse are ignored.
type QueueFilter struct {
	Department string `json:"department"`
	LeaveType  string `json:"leave_type"`
	DateFrom   string `json:"date_from"`
	DateTo     string `json:"date_to"`
	Status     string `json:"status"`
}

func (q QueueFilter) toFilter() Filter {
	f := Filter{
		Department: strings.TrimSpace(q.Department),
		LeaveType:  strings.TrimSpace(q.LeaveType),
	}
	if t, err := ParseDate(strings.TrimSpace(q.DateFrom)); err == nil {
		f.StartFrom = &t
	}
	if t, err := ParseDate(strings.TrimSpace(q.DateTo)); err == nil {
		f.EndTo = &t
	}
	if st, err := ParseStatus(strings.TrimSpace(q.Status)); err == nil {
		f.Status = st
	}
	return f
}

type Queue struct {
	Requests   []Request
	LeaveTypes []string
	Stats      Stats
}

// ManagerQueue lists requests of every status matching the filter, along
// with the distinct leave types and the overall counts.
func (s *Service) ManagerQueue(ctx context.Context, filter QueueFilter) (Queue, error) {
	requests, err := s.Repo.ListFiltered(ctx, filter.toFilter())
	if err != nil {
		return Queue{}, fmt.Errorf("list leave requests: %w", err)
	}
	types, err := s.Repo.LeaveTypes(ctx)
	if err != nil {
		return Queue{}, fmt.Errorf("list leave types: %w", err)
	}
	stats, err := s.Stats(ctx)
	if err != nil {
		return Queue{}, err
	}
	return Queue{Requests: requests, LeaveTypes: types, Stats: stats}, nil
}

// Stats counts every request by status. OnLeaveCount covers approved
// requests whose range includes today.
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	all, err := s.Repo.ListFiltered(ctx, Filter{})
	if err != nil {
		return Stats{}, fmt.Errorf("list leave requests: %w", err)
	}
	today := DateOnly(s.now())
	var stats Stats
	for _, r := range all {
		switch r.Status {
		case StatusPending:
			stats.PendingCount++
		case StatusApproved:
			stats.ApprovedCount++
			if !DateOnly(r.StartDate).After(today) && !DateOnly(r.EndDate).Before(today) {
				stats.OnLeaveCount++
			}
		case StatusRejected:
			stats.RejectedCount++
		}
	}
	return stats, nil
}

// Decide moves a Pending request to Approved or Rejected. Only managers may
// decide. The store update is conditional on the Pending state, so of two
// concurrent decisions exactly one succeeds and the other gets a
// ConflictError naming the winning status.
func (s *Service) Decide(ctx context.Context, actor auth.Identity, id int64, action string, now time.Time) (Request, error) {
	if actor.Role != auth.RoleManager {
		return Request{}, ErrForbidden
	}
	req, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return Request{}, err
	}
	target, err := Transition(req.Status, action)
	if err != nil {
		return Request{}, err
	}

	decidedAt := now.UTC()
	ok, err := s.Repo.Decide(ctx, Decision{
		RequestID: id,
		Status:    target,
		ManagerID: actor.EmployeeID,
		DecidedAt: decidedAt,
	})
	if err != nil {
		return Request{}, fmt.Errorf("decide leave request: %w", err)
	}
	if !ok {
		current, err := s.Repo.FindByID(ctx, id)
		if err != nil {
			return Request{}, err
		}
		return Request{}, &ConflictError{Status: current.Status}
	}

	managerID := actor.EmployeeID
	req.Status = target
	req.ManagerID = &managerID
	req.ApprovedOn = &decidedAt
	return req, nil
}

// Cancel deletes one of the employee's own requests whatever its status.
func (s *Service) Cancel(ctx context.Context, employeeID, id int64) error {
	ok, err := s.Repo.Delete(ctx, id, employeeID)
	if err != nil {
		return fmt.Errorf("delete leave request: %w", err)
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

// Activities builds the dashboard announcements for actor: the five newest
// of their own requests and, for managers, the five newest pending requests
// of other employees. The merged list is capped at five, newest first.
func (s *Service) Activities(ctx context.Context, actor auth.Identity) ([]Activity, error) {
	own, err := s.Repo.ListFiltered(ctx, Filter{EmployeeID: actor.EmployeeID, Limit: activityLimit})
	if err != nil {
		return nil, fmt.Errorf("list own requests: %w", err)
	}
	activities := make([]Activity, 0, activityLimit*2)
	for _, r := range own {
		activities = append(activities, Activity{
			Title: fmt.Sprintf("%s Leave Request %s", r.LeaveType, r.Status),
			Date:  r.RequestedOn,
			Description: fmt.Sprintf("Your %s leave request from %s to %s has been %s.",
				r.LeaveType, r.StartDate.Format(DateLayout), r.EndDate.Format(DateLayout), r.Status.Lower()),
		})
	}

	if actor.Role == auth.RoleManager {
		pending, err := s.Repo.ListFiltered(ctx, Filter{
			Status:            StatusPending,
			ExcludeEmployeeID: actor.EmployeeID,
			Limit:             activityLimit,
		})
		if err != nil {
			return nil, fmt.Errorf("list pending requests: %w", err)
		}
		for _, r := range pending {
			activities = append(activities, Activity{
				Title: "New Leave Request",
				Date:  r.RequestedOn,
				Description: fmt.Sprintf("%s %s requested %s leave from %s to %s.",
					r.EmployeeFirstName, r.EmployeeLastName, r.LeaveType,
					r.StartDate.Format(DateLayout), r.EndDate.Format(DateLayout)),
			})
		}
	}

	sort.SliceStable(activities, func(i, j int) bool {
		return activities[i].Date.After(activities[j].Date)
	})
	if len(activities) > activityLimit {
		activities = activities[:activityLimit]
	}
	return activities, nil
}

// UserMessage extracts the caller-facing text of a validation or conflict
// error.
func UserMessage(err error) (string, bool) {
	var v *ValidationError
	if errors.As(err, &v) {
		return v.Message, true
	}
	var c *ConflictError
	if errors.As(err, &c) {
		return c.Message(), true
	}
	return "", false
}
