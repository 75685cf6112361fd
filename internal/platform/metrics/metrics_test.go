package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectorCounts(t *testing.T) {
	c := New()
	c.RecordRequest(http.MethodGet, "/dashboard", http.StatusOK, 10*time.Millisecond)
	c.RecordRequest(http.MethodPost, "/login", http.StatusTooManyRequests, time.Millisecond)
	c.RecordLeaveDecision("Approved")
	c.RecordLeaveDecision("Approved")
	c.RecordLogin("success")

	assert.Equal(t, float64(1), testutil.ToFloat64(c.requests.WithLabelValues(http.MethodGet, "/dashboard", "200")))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.rateLimited))
	assert.Equal(t, float64(2), testutil.ToFloat64(c.leaveDecisions.WithLabelValues("Approved")))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.logins.WithLabelValues("success")))
}

func TestNilCollectorIsSafe(t *testing.T) {
	var c *Collector
	c.RecordRequest(http.MethodGet, "/", http.StatusOK, time.Millisecond)
	c.RecordLogin("failure")
	c.RecordLeaveDecision("Rejected")
	c.RecordPayslip()
}

func TestHandlerExposesMetrics(t *testing.T) {
	c := New()
	c.RecordPayslip()

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "hrdesk_payslips_rendered_total 1")
}
