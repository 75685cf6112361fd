package middleware

import (
	"net/http"

	"hrdesk/internal/domain/auth"
	"hrdesk/internal/transport/http/shared"
)

const msgNoPermission = "You don't have permission to access this page"

// RequireRole admits only the listed roles. Others get a flash message and
// go back to the dashboard; anonymous requests go to the login page.
func RequireRole(roles ...auth.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := GetIdentity(r.Context())
			if !ok {
				http.Redirect(w, r, "/login", http.StatusFound)
				return
			}
			if !identity.Role.In(roles...) {
				shared.FlashRedirect(w, r, msgNoPermission, "/dashboard")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
