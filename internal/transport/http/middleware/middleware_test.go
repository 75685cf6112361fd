package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrdesk/internal/domain/auth"
	"hrdesk/internal/domain/employee"
	"hrdesk/internal/requestctx"
	"hrdesk/internal/storage/memory"
)

func TestRequestIDMiddleware(t *testing.T) {
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if GetRequestID(r.Context()) == "" {
			t.Fatal("expected request id in context")
		}
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get("X-Request-ID"))
}

func TestRecovererReturns500(t *testing.T) {
	handler := Recoverer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

type gateFixture struct {
	sessions *auth.Sessions
	repo     *memory.Employees
	emp      employee.Employee
}

func newGateFixture(t *testing.T) gateFixture {
	t.Helper()
	db := memory.New()
	repo := db.Employees()
	emp := employee.Employee{FirstName: "Mia", LastName: "Khan", Email: "mia@example.com", Role: auth.RoleEmployee, Department: "IT"}
	require.NoError(t, repo.Create(context.Background(), &emp))
	return gateFixture{
		sessions: auth.NewSessions(db.Sessions(), []byte("test-secret"), time.Hour),
		repo:     repo,
		emp:      emp,
	}
}

func (f gateFixture) serve(t *testing.T, cookie string) (auth.Identity, bool) {
	t.Helper()
	var (
		got auth.Identity
		ok  bool
	)
	handler := Session(f.sessions, employee.NewService(f.repo, nil))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, ok = GetIdentity(r.Context())
	}))
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: cookie})
	}
	handler.ServeHTTP(httptest.NewRecorder(), req)
	return got, ok
}

func TestSessionGateResolvesIdentity(t *testing.T) {
	f := newGateFixture(t)
	started, err := f.sessions.Start(context.Background(), f.emp.ID)
	require.NoError(t, err)

	identity, ok := f.serve(t, started.Token)
	require.True(t, ok)
	assert.Equal(t, f.emp.ID, identity.EmployeeID)
	assert.Equal(t, auth.RoleEmployee, identity.Role)
	assert.Equal(t, "IT", identity.Department)
	assert.Equal(t, started.SessionID, identity.SessionID)
}

func TestSessionGateRereadsRole(t *testing.T) {
	f := newGateFixture(t)
	started, err := f.sessions.Start(context.Background(), f.emp.ID)
	require.NoError(t, err)

	promoted := f.emp
	promoted.Role = auth.RoleManager
	require.NoError(t, f.repo.Save(context.Background(), promoted))

	identity, ok := f.serve(t, started.Token)
	require.True(t, ok)
	assert.Equal(t, auth.RoleManager, identity.Role)
}

func TestSessionGateAnonymous(t *testing.T) {
	f := newGateFixture(t)
	started, err := f.sessions.Start(context.Background(), f.emp.ID)
	require.NoError(t, err)
	require.NoError(t, f.sessions.End(context.Background(), started.SessionID))

	tests := []struct {
		name   string
		cookie string
	}{
		{name: "no cookie"},
		{name: "garbage", cookie: "not-a-jwt"},
		{name: "revoked", cookie: started.Token},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			_, ok := f.serve(t, tc.cookie)
			assert.False(t, ok)
		})
	}
}

func TestRequireAuthRedirects(t *testing.T) {
	handler := RequireAuth(okHandler())
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dashboard", nil))
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestRequireRole(t *testing.T) {
	guarded := RequireRole(auth.RoleManager)(okHandler())

	tests := []struct {
		name     string
		role     *auth.Role
		wantCode int
		wantLoc  string
	}{
		{name: "anonymous", wantCode: http.StatusFound, wantLoc: "/login"},
		{name: "employee", role: rolePtr(auth.RoleEmployee), wantCode: http.StatusFound, wantLoc: "/dashboard"},
		{name: "manager", role: rolePtr(auth.RoleManager), wantCode: http.StatusNoContent},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/manager/leaves", nil)
			if tc.role != nil {
				req = req.WithContext(requestctx.WithIdentity(req.Context(), auth.Identity{EmployeeID: 1, Role: *tc.role}))
			}
			rec := httptest.NewRecorder()
			guarded.ServeHTTP(rec, req)
			assert.Equal(t, tc.wantCode, rec.Code)
			assert.Equal(t, tc.wantLoc, rec.Header().Get("Location"))
			if tc.wantLoc == "/dashboard" {
				assert.NotEmpty(t, rec.Result().Cookies(), "expected flash cookie")
			}
		})
	}
}

func rolePtr(r auth.Role) *auth.Role { return &r }

func TestSecureHeaders(t *testing.T) {
	rec := httptest.NewRecorder()
	SecureHeaders(true)(okHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.NotEmpty(t, rec.Header().Get("Strict-Transport-Security"))
}
