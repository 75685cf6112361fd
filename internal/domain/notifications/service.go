package notifications

import (
	"context"
	"fmt"
	"strings"

	"hrdesk/internal/domain/leave"
	"hrdesk/internal/platform/logger"
)

type Mailer interface {
	Send(ctx context.Context, from, to, subject, body string) error
}

// Dispatcher runs a send off the request path. *jobs.Service implements it.
type Dispatcher interface {
	Enqueue(ctx context.Context, jobType string, run func(context.Context) error) bool
}

// Service emails employees about their leave requests. Delivery failures
// are logged and never surface to the caller. Without a Dispatcher mail is
// sent inline.
type Service struct {
	Mailer      Mailer
	DefaultFrom string
	Dispatcher  Dispatcher
}

func New(mailer Mailer, from string) *Service {
	if from == "" {
		from = "no-reply@example.com"
	}
	return &Service{Mailer: mailer, DefaultFrom: from}
}

type Message struct {
	Type    string
	To      string
	Subject string
	Body    string
}

// DecisionMessage describes a decided request to its owner.
func DecisionMessage(req leave.Request) Message {
	ntype := TypeLeaveRejected
	if req.Status == leave.StatusApproved {
		ntype = TypeLeaveApproved
	}
	return Message{
		Type:    ntype,
		To:      strings.TrimSpace(req.EmployeeEmail),
		Subject: fmt.Sprintf("Leave request %s", req.Status.Lower()),
		Body: fmt.Sprintf("Hello %s,\n\nYour %s leave request from %s to %s has been %s.\n",
			req.EmployeeFirstName, req.LeaveType,
			req.StartDate.Format(leave.DateLayout), req.EndDate.Format(leave.DateLayout), req.Status.Lower()),
	}
}

func (s *Service) LeaveDecided(ctx context.Context, req leave.Request) {
	if s == nil || s.Mailer == nil {
		return
	}
	msg := DecisionMessage(req)
	if msg.To == "" {
		return
	}
	send := func(ctx context.Context) error {
		return s.Mailer.Send(ctx, s.DefaultFrom, msg.To, msg.Subject, msg.Body)
	}
	if s.Dispatcher != nil && s.Dispatcher.Enqueue(ctx, msg.Type, send) {
		return
	}
	if err := send(ctx); err != nil {
		logger.FromContext(ctx).Warn().Err(err).Str("type", msg.Type).Int64("leave_id", req.ID).Msg("notification email send failed")
	}
}
