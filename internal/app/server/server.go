package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"hrdesk/internal/domain/audit"
	"hrdesk/internal/domain/auth"
	"hrdesk/internal/domain/employee"
	"hrdesk/internal/domain/leave"
	"hrdesk/internal/domain/notifications"
	"hrdesk/internal/domain/payroll"
	"hrdesk/internal/domain/reports"
	"hrdesk/internal/platform/config"
	"hrdesk/internal/platform/crypto"
	"hrdesk/internal/platform/db"
	"hrdesk/internal/platform/email"
	"hrdesk/internal/platform/jobs"
	"hrdesk/internal/platform/logger"
	"hrdesk/internal/platform/media"
	"hrdesk/internal/platform/metrics"
	audithandler "hrdesk/internal/transport/http/handlers/audit"
	authhandler "hrdesk/internal/transport/http/handlers/auth"
	dashboardhandler "hrdesk/internal/transport/http/handlers/dashboard"
	employeehandler "hrdesk/internal/transport/http/handlers/employee"
	leavehandler "hrdesk/internal/transport/http/handlers/leave"
	payrollhandler "hrdesk/internal/transport/http/handlers/payroll"
	reportshandler "hrdesk/internal/transport/http/handlers/reports"
	"hrdesk/internal/transport/http/middleware"
	"hrdesk/internal/transport/http/view"
)

type App struct {
	Config    config.Config
	Router    http.Handler
	Employees *employee.Service
	Jobs      *jobs.Service

	backend *backend
}

// New opens the configured backend, applies migrations and the admin seed
// when enabled, and assembles the router.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	store, err := openBackend(ctx, cfg)
	if err != nil {
		return nil, err
	}

	sealer, err := crypto.New(cfg.DataEncryptionKey)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("encryption key: %w", err)
	}

	trusted, err := cfg.TrustedProxyPrefixes()
	if err != nil {
		store.Close()
		return nil, err
	}

	collector := metrics.New()
	worker := jobs.New(0)
	renderer := view.JSONRenderer{}

	employees := employee.NewService(store.Employees, media.NewFileStore(cfg.MediaRoot))
	leaves := leave.NewService(store.Leaves)
	reportsSvc := reports.NewService(leaves)
	payrollSvc := payroll.NewService(store.Salaries, payroll.Allowances{
		Housing:   cfg.HousingAllowance,
		Transport: cfg.TransportAllowance,
	})
	auditSvc := audit.New(store.Audit)
	sessions := auth.NewSessions(store.Sessions, []byte(cfg.SessionSecret), cfg.SessionTTL)
	mfa := auth.NewMFA(sealer)
	notifier := notifications.New(email.New(cfg), cfg.EmailFrom)
	notifier.Dispatcher = worker

	if cfg.RunSeed {
		created, err := db.SeedAdmin(ctx, store.Employees, cfg.SeedAdminEmail, cfg.SeedAdminPassword, time.Now())
		if err != nil {
			store.Close()
			return nil, fmt.Errorf("seed admin: %w", err)
		}
		if created {
			logger.FromContext(ctx).Info().Str("email", cfg.SeedAdminEmail).Msg("seeded administrator")
		}
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(middleware.RealIP(trusted))
	router.Use(middleware.SecureHeaders(cfg.IsProduction()))
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	router.Use(middleware.Session(sessions, employees))
	router.Use(middleware.Logger(collector))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := store.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	if cfg.MetricsEnabled {
		router.Method(http.MethodGet, "/metrics", collector.Handler())
	}

	router.Handle("/media/*", http.StripPrefix("/media/", http.FileServer(http.Dir(cfg.MediaRoot))))

	authHandler := authhandler.NewHandler(employees, sessions, mfa, collector, renderer, cfg.CookieSecure)
	authHandler.LoginLimit = middleware.LoginRateLimit(cfg.LoginRateLimitPerMinute, time.Minute)
	authHandler.RegisterRoutes(router)

	// One bucket per employee shared by every privileged mutation route.
	mutationLimit := middleware.RateLimit(cfg.MutationRateLimitPerMinute, time.Minute, middleware.WithKeyFunc(middleware.ActorOrIPKey))

	dashboardhandler.NewHandler(employees, leaves, renderer).RegisterRoutes(router)

	leaveHandler := leavehandler.NewHandler(leaves, reportsSvc, employees, auditSvc, notifier, collector, renderer)
	leaveHandler.MutationLimit = mutationLimit
	leaveHandler.RegisterRoutes(router)

	reportshandler.NewHandler(reportsSvc).RegisterRoutes(router)

	payrollHandler := payrollhandler.NewHandler(payrollSvc, employees, auditSvc, collector, renderer)
	payrollHandler.MutationLimit = mutationLimit
	payrollHandler.RegisterRoutes(router)

	employeeHandler := employeehandler.NewHandler(employees, auditSvc, mfa, renderer)
	employeeHandler.MutationLimit = mutationLimit
	employeeHandler.RegisterRoutes(router)
	audithandler.NewHandler(auditSvc).RegisterRoutes(router)

	return &App{
		Config:    cfg,
		Router:    router,
		Employees: employees,
		Jobs:      worker,
		backend:   store,
	}, nil
}

// Close releases the storage backend.
func (a *App) Close() {
	if a.backend != nil {
		a.backend.Close()
	}
}

// Run serves until ctx is cancelled, then drains in-flight requests and
// queued jobs.
func (a *App) Run(ctx context.Context) error {
	jobsCtx, stopJobs := context.WithCancel(context.Background())
	a.Jobs.Start(jobsCtx)
	defer func() {
		stopJobs()
		a.Jobs.Wait()
	}()

	srv := &http.Server{
		Addr:              a.Config.Addr,
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.FromContext(ctx).Info().Str("addr", a.Config.Addr).Str("driver", a.Config.DBDriver).Msg("hrdesk listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	logger.FromContext(ctx).Info().Msg("shutting down")
	return srv.Shutdown(shutdownCtx)
}
