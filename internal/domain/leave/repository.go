package leave

import "context"

type Repository interface {
	FindByID(ctx context.Context, id int64) (Request, error)
	Create(ctx context.Context, req *Request) error
	ListFiltered(ctx context.Context, filter Filter) ([]Request, error)
	// Decide reports false when the request was no longer Pending.
	Decide(ctx context.Context, decision Decision) (bool, error)
	// Delete removes the request only when it belongs to employeeID.
	Delete(ctx context.Context, id, employeeID int64) (bool, error)
	LeaveTypes(ctx context.Context) ([]string, error)
}
