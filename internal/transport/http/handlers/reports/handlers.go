package reportshandler

import (
	"bytes"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"hrdesk/internal/domain/auth"
	"hrdesk/internal/domain/reports"
	"hrdesk/internal/transport/http/api"
	"hrdesk/internal/transport/http/middleware"
)

const (
	msgNotAuth      = "User not authenticated"
	msgNoPermission = "You don't have permission to view leave reports"
)

type Handler struct {
	Reports *reports.Service
}

func NewHandler(svc *reports.Service) *Handler {
	return &Handler{Reports: svc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/get-leave-report", h.handleLeaveReport)
}

func (h *Handler) handleLeaveReport(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		api.Fail(w, r, http.StatusUnauthorized, msgNotAuth)
		return
	}
	if !canReadReports(identity.Role) {
		api.Fail(w, r, http.StatusForbidden, msgNoPermission)
		return
	}

	q := r.URL.Query()
	filter := reports.Filter{Department: q.Get("department"), LeaveType: q.Get("leave_type")}
	rep, err := h.Reports.LeaveReport(r.Context(), filter)
	if err != nil {
		api.InternalError(w, r, err, "build leave report failed")
		return
	}

	format := strings.ToLower(strings.TrimSpace(q.Get("format")))
	switch format {
	case reports.FormatCSV, reports.FormatXLSX:
		var buf bytes.Buffer
		write := reports.WriteCSV
		if format == reports.FormatXLSX {
			write = reports.WriteXLSX
		}
		if err := write(&buf, rep); err != nil {
			api.InternalError(w, r, err, "export leave report failed")
			return
		}
		w.Header().Set("Content-Type", reports.ContentType(format))
		w.Header().Set("Content-Disposition", `attachment; filename="leave_report.`+format+`"`)
		_, _ = w.Write(buf.Bytes())
	default:
		api.WriteJSON(w, r, http.StatusOK, rep)
	}
}

func canReadReports(role auth.Role) bool {
	switch role {
	case auth.RoleHR, auth.RoleManager, auth.RoleAdmin:
		return true
	case auth.RoleEmployee:
		return false
	default:
		return false
	}
}
