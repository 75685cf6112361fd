package leave_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrdesk/internal/domain/auth"
	"hrdesk/internal/domain/employee"
	"hrdesk/internal/domain/leave"
	"hrdesk/internal/storage/memory"
)

var now = time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)

type fixture struct {
	db      *memory.DB
	svc     *leave.Service
	staff   employee.Employee
	manager employee.Employee
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	db := memory.New()
	staff := employee.Employee{FirstName: "Ana", LastName: "Lee", Email: "ana@example.com", Department: "IT", Role: auth.RoleEmployee}
	manager := employee.Employee{FirstName: "Max", LastName: "Boss", Email: "max@example.com", Department: "Ops", Role: auth.RoleManager}
	require.NoError(t, db.Employees().Create(ctx, &staff))
	require.NoError(t, db.Employees().Create(ctx, &manager))

	svc := leave.NewService(db.Leaves())
	svc.Now = func() time.Time { return now }
	return &fixture{db: db, svc: svc, staff: staff, manager: manager}
}

func (f *fixture) submit(t *testing.T, emp employee.Employee, leaveType, start, end string) leave.Request {
	t.Helper()
	req, err := f.svc.Submit(context.Background(), emp.ID, leave.NewRequest{
		LeaveType: leaveType, StartDate: start, EndDate: end, Reason: "family",
	})
	require.NoError(t, err)
	return req
}

func identity(e employee.Employee) auth.Identity {
	return e.Identity("sid")
}

func TestSubmitValidation(t *testing.T) {
	f := newFixture(t)
	cases := []struct {
		name string
		form leave.NewRequest
		want string
	}{
		{name: "missing reason", form: leave.NewRequest{LeaveType: "Sick", StartDate: "2025-06-01", EndDate: "2025-06-02"}, want: "All fields are required"},
		{name: "bad date", form: leave.NewRequest{LeaveType: "Sick", StartDate: "06/01/2025", EndDate: "2025-06-02", Reason: "x"}, want: "Invalid date format"},
		{name: "reversed", form: leave.NewRequest{LeaveType: "Sick", StartDate: "2025-06-05", EndDate: "2025-06-02", Reason: "x"}, want: "End date must be after start date"},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.svc.Submit(context.Background(), f.staff.ID, tc.form)
			msg, ok := leave.UserMessage(err)
			require.True(t, ok, "got %v", err)
			assert.Equal(t, tc.want, msg)
		})
	}
}

func TestSubmitCreatesPending(t *testing.T) {
	f := newFixture(t)
	req := f.submit(t, f.staff, "Annual", "2025-06-20", "2025-06-20")

	assert.Equal(t, leave.StatusPending, req.Status)
	assert.Equal(t, 1, req.Days())
	assert.Equal(t, now, req.RequestedOn)
	assert.Nil(t, req.ManagerID)

	own, err := f.svc.ListForEmployee(context.Background(), f.staff.ID)
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, "family", own[0].Reason)
}

func TestDecideApproves(t *testing.T) {
	f := newFixture(t)
	req := f.submit(t, f.staff, "Annual", "2025-06-20", "2025-06-22")
	decidedAt := now.Add(time.Hour)

	got, err := f.svc.Decide(context.Background(), identity(f.manager), req.ID, "approve", decidedAt)
	require.NoError(t, err)
	assert.Equal(t, leave.StatusApproved, got.Status)

	stored, err := f.svc.Get(context.Background(), req.ID)
	require.NoError(t, err)
	assert.Equal(t, leave.StatusApproved, stored.Status)
	require.NotNil(t, stored.ManagerID)
	assert.Equal(t, f.manager.ID, *stored.ManagerID)
	require.NotNil(t, stored.ApprovedOn)
	assert.Equal(t, decidedAt, *stored.ApprovedOn)

	_, err = f.svc.Decide(context.Background(), identity(f.manager), req.ID, "reject", decidedAt)
	var conflict *leave.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "This leave request has already been approved.", conflict.Message())

	again, err := f.svc.Get(context.Background(), req.ID)
	require.NoError(t, err)
	assert.Equal(t, leave.StatusApproved, again.Status)
}

func TestDecideGuardsInOrder(t *testing.T) {
	f := newFixture(t)
	req := f.submit(t, f.staff, "Sick", "2025-06-20", "2025-06-20")
	ctx := context.Background()

	hr := f.staff
	hr.Role = auth.RoleHR
	_, err := f.svc.Decide(ctx, identity(hr), 9999, "approve", now)
	assert.ErrorIs(t, err, leave.ErrForbidden, "role is checked before existence")

	_, err = f.svc.Decide(ctx, identity(f.manager), 9999, "approve", now)
	assert.ErrorIs(t, err, leave.ErrNotFound)

	_, err = f.svc.Decide(ctx, identity(f.manager), req.ID, "maybe", now)
	assert.ErrorIs(t, err, leave.ErrInvalidAction)
}

func TestDecideConcurrentFirstWriterWins(t *testing.T) {
	f := newFixture(t)
	req := f.submit(t, f.staff, "Sick", "2025-06-20", "2025-06-20")

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		ok        int
		conflicts int
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		action := "approve"
		if i%2 == 1 {
			action = "reject"
		}
		go func(action string) {
			defer wg.Done()
			_, err := f.svc.Decide(context.Background(), identity(f.manager), req.ID, action, now)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case errors.Is(err, leave.ErrNotPending):
				conflicts++
			}
		}(action)
	}
	wg.Wait()
	assert.Equal(t, 1, ok)
	assert.Equal(t, 7, conflicts)
}

func TestCancel(t *testing.T) {
	f := newFixture(t)
	req := f.submit(t, f.staff, "Sick", "2025-06-20", "2025-06-20")
	ctx := context.Background()

	assert.ErrorIs(t, f.svc.Cancel(ctx, f.manager.ID, req.ID), leave.ErrNotFound)
	require.NoError(t, f.svc.Cancel(ctx, f.staff.ID, req.ID))
	assert.ErrorIs(t, f.svc.Cancel(ctx, f.staff.ID, req.ID), leave.ErrNotFound)
}

func TestManagerQueueAndStats(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	onLeave := f.submit(t, f.staff, "Annual", "2025-06-09", "2025-06-11")
	rejected := f.submit(t, f.staff, "Sick", "2025-07-01", "2025-07-01")
	f.submit(t, f.manager, "Personal", "2025-08-01", "2025-08-03")

	_, err := f.svc.Decide(ctx, identity(f.manager), onLeave.ID, "approve", now)
	require.NoError(t, err)
	_, err = f.svc.Decide(ctx, identity(f.manager), rejected.ID, "reject", now)
	require.NoError(t, err)

	queue, err := f.svc.ManagerQueue(ctx, leave.QueueFilter{})
	require.NoError(t, err)
	assert.Len(t, queue.Requests, 3)
	assert.Equal(t, []string{"Annual", "Personal", "Sick"}, queue.LeaveTypes)
	assert.Equal(t, leave.Stats{PendingCount: 1, ApprovedCount: 1, RejectedCount: 1, OnLeaveCount: 1}, queue.Stats)

	filtered, err := f.svc.ManagerQueue(ctx, leave.QueueFilter{Department: "IT", DateFrom: "2025-06-15"})
	require.NoError(t, err)
	require.Len(t, filtered.Requests, 1)
	assert.Equal(t, rejected.ID, filtered.Requests[0].ID)

	byStatus, err := f.svc.ManagerQueue(ctx, leave.QueueFilter{Status: "pending", DateTo: "not-a-date"})
	require.NoError(t, err)
	require.Len(t, byStatus.Requests, 1)
	assert.Equal(t, "Max Boss", byStatus.Requests[0].EmployeeName())
}

func TestActivities(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		f.svc.Now = func() time.Time { return now.Add(time.Duration(i) * time.Minute) }
		f.submit(t, f.staff, "Sick", "2025-06-20", "2025-06-21")
	}
	f.svc.Now = func() time.Time { return now.Add(10 * time.Minute) }
	f.submit(t, f.manager, "Annual", "2025-07-01", "2025-07-02")

	staffFeed, err := f.svc.Activities(ctx, identity(f.staff))
	require.NoError(t, err)
	require.Len(t, staffFeed, 3)
	assert.Equal(t, "Sick Leave Request Pending", staffFeed[0].Title)
	assert.Equal(t, "Your Sick leave request from 2025-06-20 to 2025-06-21 has been pending.", staffFeed[0].Description)

	managerFeed, err := f.svc.Activities(ctx, identity(f.manager))
	require.NoError(t, err)
	require.Len(t, managerFeed, 4)
	assert.Equal(t, "Annual Leave Request Pending", managerFeed[0].Title, "own request is newest")
	assert.Equal(t, "New Leave Request", managerFeed[1].Title)
	assert.Equal(t, "Ana Lee requested Sick leave from 2025-06-20 to 2025-06-21.", managerFeed[1].Description)
}
