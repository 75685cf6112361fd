package leavehandler

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"hrdesk/internal/domain/audit"
	"hrdesk/internal/domain/auth"
	"hrdesk/internal/domain/employee"
	"hrdesk/internal/domain/leave"
	"hrdesk/internal/domain/notifications"
	"hrdesk/internal/domain/reports"
	"hrdesk/internal/platform/metrics"
	"hrdesk/internal/transport/http/api"
	"hrdesk/internal/transport/http/middleware"
	"hrdesk/internal/transport/http/shared"
	"hrdesk/internal/transport/http/view"
)

const (
	msgCancelled       = "Leave request cancelled successfully."
	msgCancelNotFound  = "Leave request not found."
	msgMethodNotAllow  = "Invalid request method"
	msgNotAuth         = "User not authenticated"
	msgNoPermission    = "You don't have permission to perform this action"
	msgRequestNotFound = "Leave request not found"
	msgInvalidAction   = "Invalid action"
)

type Handler struct {
	Leaves    *leave.Service
	Reports   *reports.Service
	Employees *employee.Service
	Audit     *audit.Service
	Notifier  *notifications.Service
	Metrics   *metrics.Collector
	View      view.Renderer
	Now       func() time.Time

	MutationLimit func(http.Handler) http.Handler
}

func NewHandler(leaves *leave.Service, reportsSvc *reports.Service, employees *employee.Service, auditSvc *audit.Service, notifier *notifications.Service, collector *metrics.Collector, renderer view.Renderer) *Handler {
	return &Handler{
		Leaves:    leaves,
		Reports:   reportsSvc,
		Employees: employees,
		Audit:     auditSvc,
		Notifier:  notifier,
		Metrics:   collector,
		View:      renderer,
		Now:       time.Now,
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/leave", h.handleLeave)
		r.Get("/request-leave", h.handleRequestForm)
		r.Post("/request-leave", h.handleSubmit)
		r.Get("/request-leave/success", h.handleSubmitted)
		r.Get("/cancel-leave/{id}", h.handleCancel)
		r.Post("/cancel-leave/{id}", h.handleCancel)
		r.With(middleware.RequireRole(auth.RoleManager)).Get("/manager/leaves", h.handleManagerQueue)
		r.With(middleware.RequireRole(auth.RoleHR, auth.RoleManager, auth.RoleAdmin)).Get("/leave-summary", h.handleSummary)
	})
	// JSON endpoint: it answers 401/405 itself instead of redirecting.
	r.With(middleware.Optional(h.MutationLimit)).HandleFunc("/manager/leave/{id}/{action}", h.handleDecision)
}

func (h *Handler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

func (h *Handler) handleLeave(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.GetIdentity(r.Context())
	switch identity.Role {
	case auth.RoleManager:
		h.handleManagerQueue(w, r)
	case auth.RoleHR:
		h.handleSummary(w, r)
	case auth.RoleAdmin, auth.RoleEmployee:
		h.renderOwn(w, r, identity, http.StatusOK, nil)
	default:
		http.Redirect(w, r, "/login", http.StatusFound)
	}
}

func (h *Handler) handleRequestForm(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.GetIdentity(r.Context())
	h.renderOwn(w, r, identity, http.StatusOK, nil)
}

// renderOwn renders the employee leave page with the actor's requests.
func (h *Handler) renderOwn(w http.ResponseWriter, r *http.Request, identity auth.Identity, status int, extra view.Data) {
	emp, err := h.Employees.Get(r.Context(), identity.EmployeeID)
	if err != nil {
		shared.ServerError(w, r, err, "load employee failed")
		return
	}
	requests, err := h.Leaves.ListForEmployee(r.Context(), identity.EmployeeID)
	if err != nil {
		shared.ServerError(w, r, err, "list leave requests failed")
		return
	}
	data := view.Data{"employee": emp, "leave_requests": withDays(requests)}
	for k, v := range extra {
		data[k] = v
	}
	shared.Render(w, r, h.View, status, "leave", data)
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.GetIdentity(r.Context())
	form := leave.NewRequest{
		LeaveType: shared.FormValue(r, "leave_type"),
		StartDate: shared.FormValue(r, "start_date"),
		EndDate:   shared.FormValue(r, "end_date"),
		Reason:    shared.FormValue(r, "reason"),
	}
	if _, err := h.Leaves.Submit(r.Context(), identity.EmployeeID, form); err != nil {
		if msg, ok := leave.UserMessage(err); ok {
			h.renderOwn(w, r, identity, http.StatusOK, view.Data{
				"error_message": msg,
				"form_data": map[string]string{
					"leave_type": form.LeaveType,
					"start_date": form.StartDate,
					"end_date":   form.EndDate,
					"reason":     form.Reason,
				},
			})
			return
		}
		shared.ServerError(w, r, err, "submit leave failed")
		return
	}
	http.Redirect(w, r, "/request-leave/success", http.StatusFound)
}

func (h *Handler) handleSubmitted(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/leave", http.StatusFound)
}

func (h *Handler) handleCancel(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.GetIdentity(r.Context())
	id, ok := shared.IDParam(r, "id")
	if !ok {
		shared.FlashRedirect(w, r, msgCancelNotFound, "/leave")
		return
	}
	err := h.Leaves.Cancel(r.Context(), identity.EmployeeID, id)
	switch {
	case errors.Is(err, leave.ErrNotFound):
		shared.FlashRedirect(w, r, msgCancelNotFound, "/leave")
		return
	case err != nil:
		shared.ServerError(w, r, err, "cancel leave failed")
		return
	}
	shared.RecordAudit(r, h.Audit, identity.EmployeeID, audit.ActionLeaveCancel, "leave_request", id, nil)
	shared.FlashRedirect(w, r, msgCancelled, "/leave")
}

func (h *Handler) handleManagerQueue(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.GetIdentity(r.Context())
	q := r.URL.Query()
	filter := leave.QueueFilter{
		Department: q.Get("department"),
		LeaveType:  q.Get("leave_type"),
		DateFrom:   q.Get("date_from"),
		DateTo:     q.Get("date_to"),
		Status:     q.Get("status"),
	}
	queue, err := h.Leaves.ManagerQueue(r.Context(), filter)
	if err != nil {
		shared.ServerError(w, r, err, "load manager queue failed")
		return
	}
	departments, err := h.Employees.Departments(r.Context())
	if err != nil {
		shared.ServerError(w, r, err, "list departments failed")
		return
	}
	emp, err := h.Employees.Get(r.Context(), identity.EmployeeID)
	if err != nil {
		shared.ServerError(w, r, err, "load employee failed")
		return
	}
	shared.Render(w, r, h.View, http.StatusOK, "manager_leave", view.Data{
		"employee":         emp,
		"pending_requests": withDays(queue.Requests),
		"departments":      departments,
		"leave_types":      queue.LeaveTypes,
		"filters":          filter,
		"stats":            queue.Stats,
	})
}

func (h *Handler) handleSummary(w http.ResponseWriter, r *http.Request) {
	rep, err := h.Reports.LeaveReport(r.Context(), reports.Filter{})
	if err != nil {
		shared.ServerError(w, r, err, "build leave summary failed")
		return
	}
	shared.Render(w, r, h.View, http.StatusOK, "hr_leave", view.Data{
		"leave_summary": rep.Rows,
		"totals":        rep.Totals,
	})
}

func (h *Handler) handleDecision(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		api.Fail(w, r, http.StatusMethodNotAllowed, msgMethodNotAllow)
		return
	}
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		api.Fail(w, r, http.StatusUnauthorized, msgNotAuth)
		return
	}
	if identity.Role != auth.RoleManager {
		api.Fail(w, r, http.StatusForbidden, msgNoPermission)
		return
	}
	id, ok := shared.IDParam(r, "id")
	if !ok {
		api.Fail(w, r, http.StatusNotFound, msgRequestNotFound)
		return
	}

	req, err := h.Leaves.Decide(r.Context(), identity, id, chi.URLParam(r, "action"), h.now())
	if err != nil {
		var conflict *leave.ConflictError
		switch {
		case errors.Is(err, leave.ErrForbidden):
			api.Fail(w, r, http.StatusForbidden, msgNoPermission)
		case errors.Is(err, leave.ErrNotFound):
			api.Fail(w, r, http.StatusNotFound, msgRequestNotFound)
		case errors.As(err, &conflict):
			api.Message(w, r, http.StatusBadRequest, conflict.Message())
		case errors.Is(err, leave.ErrInvalidAction):
			api.Fail(w, r, http.StatusBadRequest, msgInvalidAction)
		default:
			api.InternalError(w, r, err, "decide leave failed")
		}
		return
	}

	shared.RecordAudit(r, h.Audit, identity.EmployeeID, audit.ActionLeaveDecide, "leave_request", req.ID,
		map[string]string{"status": string(req.Status)})
	h.Metrics.RecordLeaveDecision(req.Status.Lower())
	h.Notifier.LeaveDecided(r.Context(), req)
	api.Success(w, r, leave.SuccessMessage(req.Status))
}

type requestView struct {
	leave.Request
	Days int `json:"days"`
}

func withDays(requests []leave.Request) []requestView {
	out := make([]requestView, 0, len(requests))
	for _, req := range requests {
		out = append(out, requestView{Request: req, Days: req.Days()})
	}
	return out
}
