package middleware

import (
	"context"
	"errors"
	"net/http"
	"time"

	"hrdesk/internal/domain/auth"
	"hrdesk/internal/domain/employee"
	"hrdesk/internal/platform/logger"
	"hrdesk/internal/requestctx"
)

const SessionCookie = "hrdesk_session"

type SessionResolver interface {
	Resolve(ctx context.Context, token string) (int64, string, error)
}

type EmployeeLoader interface {
	Get(ctx context.Context, id int64) (employee.Employee, error)
}

// Session resolves the cookie to an identity rebuilt from the stored
// employee row. Failures leave the request anonymous.
func Session(sessions SessionResolver, employees EmployeeLoader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookie)
			if err != nil || cookie.Value == "" {
				next.ServeHTTP(w, r)
				return
			}
			ctx := r.Context()
			employeeID, sessionID, err := sessions.Resolve(ctx, cookie.Value)
			if err != nil {
				if !errors.Is(err, auth.ErrSessionInvalid) {
					logger.FromContext(ctx).Error().Err(err).Msg("resolve session")
				}
				next.ServeHTTP(w, r)
				return
			}
			emp, err := employees.Get(ctx, employeeID)
			if err != nil {
				if !errors.Is(err, employee.ErrNotFound) {
					logger.FromContext(ctx).Error().Err(err).Int64("employee_id", employeeID).Msg("load session employee")
				}
				next.ServeHTTP(w, r)
				return
			}
			ctx = requestctx.WithIdentity(ctx, emp.Identity(sessionID))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetIdentity(ctx context.Context) (auth.Identity, bool) {
	return requestctx.GetIdentity(ctx)
}

// RequireAuth redirects anonymous requests to the login page.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := GetIdentity(r.Context()); !ok {
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func SetSessionCookie(w http.ResponseWriter, token string, expires time.Time, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func ClearSessionCookie(w http.ResponseWriter, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}
