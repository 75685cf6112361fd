package notifications

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrdesk/internal/domain/leave"
)

type sentMail struct {
	from, to, subject, body string
}

type recordingMailer struct {
	sent []sentMail
	err  error
}

func (m *recordingMailer) Send(ctx context.Context, from, to, subject, body string) error {
	m.sent = append(m.sent, sentMail{from, to, subject, body})
	return m.err
}

func decided(status leave.Status, email string) leave.Request {
	return leave.Request{
		ID:                4,
		LeaveType:         "Annual",
		StartDate:         time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:           time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC),
		Status:            status,
		EmployeeFirstName: "Ana",
		EmployeeEmail:     email,
	}
}

func TestDecisionMessage(t *testing.T) {
	msg := DecisionMessage(decided(leave.StatusApproved, "ana@example.com"))
	assert.Equal(t, TypeLeaveApproved, msg.Type)
	assert.Equal(t, "Leave request approved", msg.Subject)
	assert.Contains(t, msg.Body, "Your Annual leave request from 2025-06-01 to 2025-06-03 has been approved.")

	assert.Equal(t, TypeLeaveRejected, DecisionMessage(decided(leave.StatusRejected, "x")).Type)
}

func TestLeaveDecidedSendsMail(t *testing.T) {
	mailer := &recordingMailer{}
	svc := New(mailer, "hr@false925.com")

	svc.LeaveDecided(context.Background(), decided(leave.StatusRejected, "ana@example.com"))
	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "hr@false925.com", mailer.sent[0].from)
	assert.Equal(t, "ana@example.com", mailer.sent[0].to)

	svc.LeaveDecided(context.Background(), decided(leave.StatusRejected, ""))
	assert.Len(t, mailer.sent, 1, "no recipient, no mail")
}

func TestLeaveDecidedSwallowsErrors(t *testing.T) {
	mailer := &recordingMailer{err: errors.New("smtp down")}
	svc := New(mailer, "")
	assert.Equal(t, "no-reply@example.com", svc.DefaultFrom)
	assert.NotPanics(t, func() {
		svc.LeaveDecided(context.Background(), decided(leave.StatusApproved, "ana@example.com"))
	})

	var nilSvc *Service
	assert.NotPanics(t, func() {
		nilSvc.LeaveDecided(context.Background(), decided(leave.StatusApproved, "ana@example.com"))
	})
}

type queueDispatcher struct {
	jobs []func(context.Context) error
	full bool
}

func (d *queueDispatcher) Enqueue(ctx context.Context, jobType string, run func(context.Context) error) bool {
	if d.full {
		return false
	}
	d.jobs = append(d.jobs, run)
	return true
}

func TestLeaveDecidedUsesDispatcher(t *testing.T) {
	mailer := &recordingMailer{}
	dispatcher := &queueDispatcher{}
	svc := New(mailer, "hr@false925.com")
	svc.Dispatcher = dispatcher

	svc.LeaveDecided(context.Background(), decided(leave.StatusApproved, "ana@example.com"))
	require.Len(t, dispatcher.jobs, 1)
	assert.Empty(t, mailer.sent, "queued, not sent yet")

	require.NoError(t, dispatcher.jobs[0](context.Background()))
	assert.Len(t, mailer.sent, 1)

	dispatcher.full = true
	svc.LeaveDecided(context.Background(), decided(leave.StatusApproved, "ana@example.com"))
	assert.Len(t, mailer.sent, 2, "full queue falls back to an inline send")
}
