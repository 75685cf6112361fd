package authhandler

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"hrdesk/internal/domain/auth"
	"hrdesk/internal/domain/employee"
	"hrdesk/internal/platform/metrics"
	"hrdesk/internal/transport/http/middleware"
	"hrdesk/internal/transport/http/shared"
	"hrdesk/internal/transport/http/view"
)

const (
	msgUserMissing        = "User does not exist"
	msgInvalidCredentials = "Invalid credentials"
	msgInvalidCode        = "Invalid verification code"
	msgMFAUnavailable     = "Two-factor authentication is not available."
	msgMFAEnabled         = "Two-factor authentication enabled."
	msgMFADisabled        = "Two-factor authentication disabled."
	msgMFANotStarted      = "Start two-factor setup first."
	msgMFAAlreadyOn       = "Two-factor authentication is already enabled. Disable it before setting it up again."
)

type SessionManager interface {
	Start(ctx context.Context, employeeID int64) (auth.Started, error)
	End(ctx context.Context, sessionID string) error
}

type Handler struct {
	Employees    *employee.Service
	Sessions     SessionManager
	MFA          *auth.MFA
	Metrics      *metrics.Collector
	View         view.Renderer
	CookieSecure bool
	LoginLimit   func(http.Handler) http.Handler
}

func NewHandler(employees *employee.Service, sessions SessionManager, mfa *auth.MFA, collector *metrics.Collector, renderer view.Renderer, cookieSecure bool) *Handler {
	return &Handler{
		Employees:    employees,
		Sessions:     sessions,
		MFA:          mfa,
		Metrics:      collector,
		View:         renderer,
		CookieSecure: cookieSecure,
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.handleLoginPage)
	r.Get("/signup", h.handleSignupPage)
	r.Post("/signup", h.handleSignup)
	r.Get("/login", h.handleLoginPage)
	login := r
	if h.LoginLimit != nil {
		login = r.With(h.LoginLimit)
	}
	login.Post("/login", h.handleLogin)
	r.Get("/logout", h.handleLogout)
	r.Post("/logout", h.handleLogout)

	r.Route("/settings/mfa", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Post("/setup", h.handleMFASetup)
		r.Post("/enable", h.handleMFAEnable)
		r.Post("/disable", h.handleMFADisable)
	})
}

func (h *Handler) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	shared.Render(w, r, h.View, http.StatusOK, "login", nil)
}

func (h *Handler) handleSignupPage(w http.ResponseWriter, r *http.Request) {
	shared.Render(w, r, h.View, http.StatusOK, "signup", nil)
}

func (h *Handler) handleSignup(w http.ResponseWriter, r *http.Request) {
	reg := employee.Registration{
		FirstName:       shared.FormValue(r, "first_name"),
		LastName:        shared.FormValue(r, "last_name"),
		Email:           shared.FormValue(r, "email"),
		Password:        r.FormValue("password"),
		ConfirmPassword: r.FormValue("confirm_password"),
		Department:      shared.FormValue(r, "department"),
	}
	if _, err := h.Employees.Register(r.Context(), reg); err != nil {
		if msg, ok := employee.Message(err); ok {
			shared.Render(w, r, h.View, http.StatusOK, "signup", view.Data{"error_message": msg})
			return
		}
		shared.ServerError(w, r, err, "signup failed")
		return
	}
	http.Redirect(w, r, "/login", http.StatusFound)
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	email := shared.FormValue(r, "email")
	emp, err := h.Employees.Authenticate(r.Context(), email, r.FormValue("password"))
	switch {
	case errors.Is(err, employee.ErrNotFound):
		h.Metrics.RecordLogin("unknown_user")
		h.renderLoginError(w, r, msgUserMissing)
		return
	case errors.Is(err, employee.ErrInvalidCredentials):
		h.Metrics.RecordLogin("invalid_credentials")
		h.renderLoginError(w, r, msgInvalidCredentials)
		return
	case err != nil:
		shared.ServerError(w, r, err, "login lookup failed")
		return
	}

	if emp.MFAEnabled {
		if err := h.MFA.Verify(shared.FormValue(r, "mfa_code"), emp.MFASecretEnc); err != nil {
			h.Metrics.RecordLogin("mfa_failed")
			h.renderLoginError(w, r, msgInvalidCode)
			return
		}
	}

	started, err := h.Sessions.Start(r.Context(), emp.ID)
	if err != nil {
		shared.ServerError(w, r, err, "start session failed")
		return
	}
	h.Metrics.RecordLogin("success")
	middleware.SetSessionCookie(w, started.Token, started.ExpiresAt, h.CookieSecure)
	http.Redirect(w, r, "/dashboard", http.StatusFound)
}

func (h *Handler) renderLoginError(w http.ResponseWriter, r *http.Request, msg string) {
	shared.Render(w, r, h.View, http.StatusOK, "login", view.Data{"error_message": msg})
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	if identity, ok := middleware.GetIdentity(r.Context()); ok {
		if err := h.Sessions.End(r.Context(), identity.SessionID); err != nil {
			shared.ServerError(w, r, err, "end session failed")
			return
		}
	}
	middleware.ClearSessionCookie(w, h.CookieSecure)
	http.Redirect(w, r, "/login", http.StatusFound)
}

// handleMFASetup generates a fresh secret and stores it sealed but not yet
// enabled. The settings page shows the secret and otpauth URL once.
func (h *Handler) handleMFASetup(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.GetIdentity(r.Context())
	if !h.MFA.Available() {
		shared.FlashRedirect(w, r, msgMFAUnavailable, "/settings")
		return
	}
	emp, err := h.Employees.Get(r.Context(), identity.EmployeeID)
	if err != nil {
		shared.ServerError(w, r, err, "load employee failed")
		return
	}
	// A new seed would replace the active one; disabling goes through a code.
	if emp.MFAEnabled {
		shared.FlashRedirect(w, r, msgMFAAlreadyOn, "/settings")
		return
	}
	enrolment, err := h.MFA.Enrol(identity.Email)
	if err != nil {
		shared.ServerError(w, r, err, "mfa enrol failed")
		return
	}
	if err := h.Employees.SetMFA(r.Context(), emp.ID, false, enrolment.SealedSeed); err != nil {
		shared.ServerError(w, r, err, "store mfa secret failed")
		return
	}
	emp.MFASecretEnc = enrolment.SealedSeed
	shared.Render(w, r, h.View, http.StatusOK, "settings", view.Data{
		"user":       emp,
		"mfa_secret": enrolment.Secret,
		"mfa_url":    enrolment.URL,
	})
}

func (h *Handler) handleMFAEnable(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.GetIdentity(r.Context())
	emp, ok := h.verifyCode(w, r, identity)
	if !ok {
		return
	}
	if err := h.Employees.SetMFA(r.Context(), emp.ID, true, emp.MFASecretEnc); err != nil {
		shared.ServerError(w, r, err, "enable mfa failed")
		return
	}
	shared.FlashRedirect(w, r, msgMFAEnabled, "/settings")
}

func (h *Handler) handleMFADisable(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.GetIdentity(r.Context())
	emp, ok := h.verifyCode(w, r, identity)
	if !ok {
		return
	}
	if err := h.Employees.SetMFA(r.Context(), emp.ID, false, nil); err != nil {
		shared.ServerError(w, r, err, "disable mfa failed")
		return
	}
	shared.FlashRedirect(w, r, msgMFADisabled, "/settings")
}

// verifyCode checks the submitted code against the stored secret. It
// writes the redirect itself when the check fails.
func (h *Handler) verifyCode(w http.ResponseWriter, r *http.Request, identity auth.Identity) (employee.Employee, bool) {
	if !h.MFA.Available() {
		shared.FlashRedirect(w, r, msgMFAUnavailable, "/settings")
		return employee.Employee{}, false
	}
	emp, err := h.Employees.Get(r.Context(), identity.EmployeeID)
	if err != nil {
		shared.ServerError(w, r, err, "load employee failed")
		return employee.Employee{}, false
	}
	switch err := h.MFA.Verify(shared.FormValue(r, "code"), emp.MFASecretEnc); {
	case errors.Is(err, auth.ErrMFANotEnrolled):
		shared.FlashRedirect(w, r, msgMFANotStarted, "/settings")
		return employee.Employee{}, false
	case err != nil:
		shared.FlashRedirect(w, r, msgInvalidCode, "/settings")
		return employee.Employee{}, false
	}
	return emp, true
}
