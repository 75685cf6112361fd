package shared

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
)

func TestFlashRoundTrip(t *testing.T) {
	rec := httptest.NewRecorder()
	SetFlash(rec, "Leave request cancelled successfully.")

	req := httptest.NewRequest(http.MethodGet, "/leave", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	next := httptest.NewRecorder()
	assert.Equal(t, "Leave request cancelled successfully.", PopFlash(next, req))

	cleared := next.Result().Cookies()
	if assert.Len(t, cleared, 1) {
		assert.Equal(t, flashCookie, cleared[0].Name)
		assert.Less(t, cleared[0].MaxAge, 0)
	}
}

func TestPopFlashWithoutCookie(t *testing.T) {
	rec := httptest.NewRecorder()
	assert.Empty(t, PopFlash(rec, httptest.NewRequest(http.MethodGet, "/", nil)))
	assert.Empty(t, rec.Result().Cookies())
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name   string
		header string
		remote string
		want   string
	}{
		{name: "forwarded header ignored", header: "203.0.113.9, 10.0.0.1", remote: "10.0.0.1:1234", want: "10.0.0.1"},
		{name: "remote addr", remote: "192.0.2.4:5555", want: "192.0.2.4"},
		{name: "bare remote", remote: "192.0.2.5", want: "192.0.2.5"},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tc.remote
			if tc.header != "" {
				req.Header.Set("X-Forwarded-For", tc.header)
			}
			assert.Equal(t, tc.want, ClientIP(req))
		})
	}
}

func TestIDParam(t *testing.T) {
	tests := []struct {
		raw  string
		want int64
		ok   bool
	}{
		{raw: "42", want: 42, ok: true},
		{raw: "0"},
		{raw: "-3"},
		{raw: "abc"},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.raw, func(t *testing.T) {
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tc.raw)
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
			got, ok := IDParam(req, "id")
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseLimit(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?limit=900", nil)
	assert.Equal(t, 500, ParseLimit(req, 100, 500))
	req = httptest.NewRequest(http.MethodGet, "/?limit=bad", nil)
	assert.Equal(t, 100, ParseLimit(req, 100, 500))
}
