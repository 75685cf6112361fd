package reports

import (
	"context"
	"fmt"

	"hrdesk/internal/domain/leave"
)

// LeaveSource supplies every leave request with its owner's department.
type LeaveSource interface {
	ListAll(ctx context.Context) ([]leave.Request, error)
}

type Service struct {
	Leaves LeaveSource
}

func NewService(leaves LeaveSource) *Service {
	return &Service{Leaves: leaves}
}

func (s *Service) LeaveReport(ctx context.Context, filter Filter) (Report, error) {
	requests, err := s.Leaves.ListAll(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("load leave requests: %w", err)
	}
	return Aggregate(FromRequests(requests), filter), nil
}
