package employee

import "context"

// Repository is implemented by the PostgreSQL store in this package and by
// the MySQL and in-memory backends under internal/storage.
type Repository interface {
	FindByID(ctx context.Context, id int64) (Employee, error)
	FindByEmail(ctx context.Context, email string) (Employee, error)
	Create(ctx context.Context, emp *Employee) error
	Save(ctx context.Context, emp Employee) error
	ListFiltered(ctx context.Context, filter Filter) ([]Employee, error)
}
