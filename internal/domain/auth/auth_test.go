package auth

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cryptoutil "hrdesk/internal/platform/crypto"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("super-secret")
	require.NoError(t, err)
	require.NoError(t, CheckPassword(hash, "super-secret"))
	require.Error(t, CheckPassword(hash, "wrong"))
}

func TestParseRole(t *testing.T) {
	tests := []struct {
		in      string
		want    Role
		wantErr bool
	}{
		{in: "Admin", want: RoleAdmin},
		{in: "HR", want: RoleHR},
		{in: "Manager", want: RoleManager},
		{in: "Employee", want: RoleEmployee},
		{in: "manager", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseRole(tc.in)
			if tc.wantErr {
				require.ErrorIs(t, err, ErrUnknownRole)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.in, got.String())
		})
	}
}

func TestRoleJSON(t *testing.T) {
	payload, err := json.Marshal(map[string]Role{"role": RoleHR})
	require.NoError(t, err)
	assert.JSONEq(t, `{"role":"HR"}`, string(payload))

	var decoded struct {
		Role Role `json:"role"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"role":"Manager"}`), &decoded))
	assert.Equal(t, RoleManager, decoded.Role)
	require.Error(t, json.Unmarshal([]byte(`{"role":"Owner"}`), &decoded))
}

func TestRoleAssignable(t *testing.T) {
	assert.False(t, RoleAdmin.Assignable())
	for _, r := range AssignableRoles {
		assert.True(t, r.Assignable(), r.String())
	}
	assert.True(t, RoleHR.In(RoleAdmin, RoleHR))
	assert.False(t, RoleEmployee.In(RoleAdmin, RoleHR))
}

func TestGenerateAndParseToken(t *testing.T) {
	secret := []byte("test-secret")
	token, err := GenerateToken(secret, Claims{EmployeeID: 7, SessionID: "abc"}, time.Now(), time.Hour)
	require.NoError(t, err)

	parsed, err := ParseToken(secret, token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), parsed.EmployeeID)
	assert.Equal(t, "abc", parsed.SessionID)

	_, err = ParseToken([]byte("other"), token)
	require.Error(t, err)
}

type fakeSessionStore struct {
	mu       sync.Mutex
	sessions map[string]Session
}

func (f *fakeSessionStore) CreateSession(_ context.Context, s *Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sessions == nil {
		f.sessions = map[string]Session{}
	}
	s.ID = int64(len(f.sessions) + 1)
	f.sessions[s.TokenHash] = *s
	return nil
}

func (f *fakeSessionStore) FindSession(_ context.Context, hash string) (Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.sessions[hash]
	if !ok {
		return Session{}, ErrSessionNotFound
	}
	return s, nil
}

func (f *fakeSessionStore) RevokeSession(_ context.Context, hash string, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.sessions[hash]
	if ok {
		s.RevokedAt = &at
		f.sessions[hash] = s
	}
	return nil
}

func TestSessionsLifecycle(t *testing.T) {
	ctx := context.Background()
	store := &fakeSessionStore{}
	sessions := NewSessions(store, []byte("secret"), time.Hour)

	started, err := sessions.Start(ctx, 42)
	require.NoError(t, err)
	require.NotEmpty(t, started.Token)

	id, sid, err := sessions.Resolve(ctx, started.Token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
	assert.Equal(t, started.SessionID, sid)

	require.NoError(t, sessions.End(ctx, sid))
	_, _, err = sessions.Resolve(ctx, started.Token)
	assert.ErrorIs(t, err, ErrSessionInvalid)
}

func TestSessionsRejectInvalidTokens(t *testing.T) {
	ctx := context.Background()
	store := &fakeSessionStore{}
	sessions := NewSessions(store, []byte("secret"), time.Hour)

	_, _, err := sessions.Resolve(ctx, "")
	assert.ErrorIs(t, err, ErrSessionInvalid)
	_, _, err = sessions.Resolve(ctx, "garbage")
	assert.ErrorIs(t, err, ErrSessionInvalid)

	// Signed correctly but with no server-side row.
	token, err := GenerateToken([]byte("secret"), Claims{EmployeeID: 1, SessionID: "missing"}, time.Now(), time.Hour)
	require.NoError(t, err)
	_, _, err = sessions.Resolve(ctx, token)
	assert.ErrorIs(t, err, ErrSessionInvalid)
}

func TestSessionsExpireServerSide(t *testing.T) {
	ctx := context.Background()
	store := &fakeSessionStore{}
	sessions := NewSessions(store, []byte("secret"), time.Hour)
	started, err := sessions.Start(ctx, 5)
	require.NoError(t, err)

	// The server-side row is authoritative even when the JWT is still valid.
	hash := HashToken(started.SessionID)
	s := store.sessions[hash]
	s.ExpiresAt = time.Now().Add(-time.Minute)
	store.sessions[hash] = s

	_, _, err = sessions.Resolve(ctx, started.Token)
	assert.ErrorIs(t, err, ErrSessionInvalid)
}

func TestMFAEnrolAndVerify(t *testing.T) {
	svc, err := cryptoutil.New("000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f")
	require.NoError(t, err)
	mfa := NewMFA(svc)
	require.True(t, mfa.Available())

	enrolment, err := mfa.Enrol("jane@example.com")
	require.NoError(t, err)
	assert.Contains(t, enrolment.URL, "otpauth://")

	code, err := totp.GenerateCode(enrolment.Secret, time.Now())
	require.NoError(t, err)
	require.NoError(t, mfa.Verify(code, enrolment.SealedSeed))
	assert.ErrorIs(t, mfa.Verify("000000x", enrolment.SealedSeed), ErrMFACodeInvalid)
	assert.ErrorIs(t, mfa.Verify(code, nil), ErrMFANotEnrolled)
}

func TestMFAUnavailableWithoutKey(t *testing.T) {
	svc, err := cryptoutil.New("")
	require.NoError(t, err)
	mfa := NewMFA(svc)
	assert.False(t, mfa.Available())
	_, err = mfa.Enrol("x")
	assert.ErrorIs(t, err, ErrMFAUnavailable)
}
