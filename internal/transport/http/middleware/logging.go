package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"hrdesk/internal/platform/logger"
	"hrdesk/internal/platform/metrics"
	"hrdesk/internal/requestctx"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func (s *statusRecorder) Unwrap() http.ResponseWriter {
	return s.ResponseWriter
}

// Logger writes one access line per request and feeds the request
// metrics. collector may be nil.
func Logger(collector *metrics.Collector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(recorder, r)
			elapsed := time.Since(start)

			route := ""
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				route = rctx.RoutePattern()
			}
			collector.RecordRequest(r.Method, route, recorder.status, elapsed)

			event := logger.FromContext(r.Context()).Info()
			if recorder.status >= http.StatusInternalServerError {
				event = logger.FromContext(r.Context()).Error()
			}
			if identity, ok := requestctx.GetIdentity(r.Context()); ok {
				event = event.Int64("employee_id", identity.EmployeeID)
			}
			event.
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Str("route", route).
				Int("status", recorder.status).
				Int64("duration_ms", elapsed.Milliseconds()).
				Str("request_id", GetRequestID(r.Context())).
				Msg("request")
		})
	}
}
