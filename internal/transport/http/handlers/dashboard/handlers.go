package dashboardhandler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"hrdesk/internal/domain/employee"
	"hrdesk/internal/domain/leave"
	"hrdesk/internal/transport/http/middleware"
	"hrdesk/internal/transport/http/shared"
	"hrdesk/internal/transport/http/view"
)

type Handler struct {
	Employees *employee.Service
	Leaves    *leave.Service
	View      view.Renderer
}

func NewHandler(employees *employee.Service, leaves *leave.Service, renderer view.Renderer) *Handler {
	return &Handler{Employees: employees, Leaves: leaves, View: renderer}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.With(middleware.RequireAuth).Get("/dashboard", h.handleDashboard)
}

func (h *Handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.GetIdentity(r.Context())
	emp, err := h.Employees.Get(r.Context(), identity.EmployeeID)
	if errors.Is(err, employee.ErrNotFound) {
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}
	if err != nil {
		shared.ServerError(w, r, err, "load employee failed")
		return
	}
	announcements, err := h.Leaves.Activities(r.Context(), identity)
	if err != nil {
		shared.ServerError(w, r, err, "load announcements failed")
		return
	}
	shared.Render(w, r, h.View, http.StatusOK, "index", view.Data{
		"employee":      emp,
		"announcements": announcements,
	})
}
