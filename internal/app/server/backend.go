package server

import (
	"context"
	"fmt"
	"time"

	"hrdesk/internal/domain/audit"
	"hrdesk/internal/domain/auth"
	"hrdesk/internal/domain/employee"
	"hrdesk/internal/domain/leave"
	"hrdesk/internal/domain/payroll"
	"hrdesk/internal/platform/config"
	"hrdesk/internal/platform/db"
	"hrdesk/internal/storage/gormstore"
	"hrdesk/internal/storage/memory"
)

// backend is one storage engine exposed through the domain repositories.
type backend struct {
	Employees employee.Repository
	Leaves    leave.Repository
	Salaries  payroll.Repository
	Sessions  auth.SessionStore
	Audit     audit.Repository
	Ping      func(ctx context.Context) error
	Close     func()
}

func openBackend(ctx context.Context, cfg config.Config) (*backend, error) {
	switch cfg.DBDriver {
	case config.DriverPostgres:
		pool, err := db.Connect(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("db connect: %w", err)
		}
		if cfg.RunMigrations {
			if err := db.Migrate(ctx, pool, cfg.MigrationsDir); err != nil {
				pool.Close()
				return nil, fmt.Errorf("migrations: %w", err)
			}
		}
		return &backend{
			Employees: employee.NewStore(pool),
			Leaves:    leave.NewStore(pool),
			Salaries:  payroll.NewStore(pool),
			Sessions:  auth.NewStore(pool),
			Audit:     audit.NewStore(pool),
			Ping:      pool.Ping,
			Close:     pool.Close,
		}, nil

	case config.DriverMySQL:
		store, err := gormstore.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if cfg.RunMigrations {
			if err := store.AutoMigrate(ctx); err != nil {
				_ = store.Close()
				return nil, fmt.Errorf("auto migrate: %w", err)
			}
		}
		return &backend{
			Employees: store.Employees(),
			Leaves:    store.Leaves(),
			Salaries:  store.Salaries(),
			Sessions:  store.Sessions(),
			Audit:     store.Audit(),
			Ping:      store.Ping,
			Close:     func() { _ = store.Close() },
		}, nil

	case config.DriverMemory:
		mem := memory.New()
		return &backend{
			Employees: mem.Employees(),
			Leaves:    mem.Leaves(),
			Salaries:  mem.Salaries(),
			Sessions:  mem.Sessions(),
			Audit:     mem.Audit(),
			Ping:      mem.Ping,
			Close:     func() {},
		}, nil
	}
	return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
}

// Migrate brings the configured database schema up to date and exits.
func Migrate(ctx context.Context, cfg config.Config) error {
	cfg.RunMigrations = true
	store, err := openBackend(ctx, cfg)
	if err != nil {
		return err
	}
	store.Close()
	return nil
}

// SeedAdmin creates the administrator account if the email is unused.
func SeedAdmin(ctx context.Context, cfg config.Config, email, password string) (bool, error) {
	store, err := openBackend(ctx, cfg)
	if err != nil {
		return false, err
	}
	defer store.Close()
	return db.SeedAdmin(ctx, store.Employees, email, password, time.Now())
}
