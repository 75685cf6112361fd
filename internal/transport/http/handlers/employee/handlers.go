package employeehandler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"hrdesk/internal/domain/audit"
	"hrdesk/internal/domain/auth"
	"hrdesk/internal/domain/employee"
	"hrdesk/internal/domain/leave"
	"hrdesk/internal/transport/http/api"
	"hrdesk/internal/transport/http/middleware"
	"hrdesk/internal/transport/http/shared"
	"hrdesk/internal/transport/http/view"
)

const (
	msgEmployeeNotFound = "Employee not found"
	msgPermissionDenied = "Permission denied"
	msgNotAuth          = "User not authenticated"
	msgProfileUpdated   = "Profile updated successfully."
	msgPasswordUpdated  = "Password updated successfully."
	msgImageUpdated     = "Profile image updated successfully!"
	msgNoImage          = "No image data received."
	msgImageError       = "Error processing image: "
)

type Handler struct {
	Employees *employee.Service
	Audit     *audit.Service
	MFA       *auth.MFA
	View      view.Renderer

	MutationLimit func(http.Handler) http.Handler
}

func NewHandler(employees *employee.Service, auditSvc *audit.Service, mfa *auth.MFA, renderer view.Renderer) *Handler {
	return &Handler{Employees: employees, Audit: auditSvc, MFA: mfa, View: renderer}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/employee", h.handleList)
		r.With(middleware.RequireRole(auth.RoleHR, auth.RoleAdmin), middleware.Optional(h.MutationLimit)).Post("/employee/update-employee", h.handleUpdateEmployee)
		r.With(middleware.RequireRole(auth.RoleAdmin)).Get("/employee/manage", h.handleManage)
		r.With(middleware.RequireRole(auth.RoleAdmin), middleware.Optional(h.MutationLimit)).Post("/employee/update-role/{id}", h.handleUpdateRole)

		r.Get("/settings", h.handleSettings)
		r.Post("/settings/update_profile", h.handleUpdateProfile)
		r.Post("/settings/update_profile_pass", h.handleUpdatePassword)
		r.Post("/update-profile-image", h.handleProfileImage)
	})
	r.Get("/employee/details/{id}", h.handleDetails)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.GetIdentity(r.Context())
	users, err := h.Employees.List(r.Context())
	if err != nil {
		shared.ServerError(w, r, err, "list employees failed")
		return
	}
	user, err := h.Employees.Get(r.Context(), identity.EmployeeID)
	if err != nil {
		shared.ServerError(w, r, err, "load employee failed")
		return
	}
	shared.Render(w, r, h.View, http.StatusOK, "employee", view.Data{"users": users, "user": user})
}

func (h *Handler) handleUpdateEmployee(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.GetIdentity(r.Context())
	id, err := strconv.ParseInt(shared.FormValue(r, "employee_id"), 10, 64)
	if err != nil || id <= 0 {
		shared.FlashRedirect(w, r, msgEmployeeNotFound, "/employee")
		return
	}
	updated, err := h.Employees.UpdateDetails(r.Context(), id, shared.FormValue(r, "name"), shared.FormValue(r, "email"))
	if err != nil {
		if errors.Is(err, employee.ErrNotFound) {
			shared.FlashRedirect(w, r, msgEmployeeNotFound, "/employee")
			return
		}
		if msg, ok := employee.Message(err); ok {
			shared.FlashRedirect(w, r, msg, "/employee")
			return
		}
		shared.ServerError(w, r, err, "update employee failed")
		return
	}
	shared.RecordAudit(r, h.Audit, identity.EmployeeID, audit.ActionEmployeeUpdate, "employee", updated.ID,
		map[string]string{"name": updated.FullName(), "email": updated.Email})
	http.Redirect(w, r, "/employee", http.StatusFound)
}

func (h *Handler) handleManage(w http.ResponseWriter, r *http.Request) {
	employees, err := h.Employees.ListManageable(r.Context())
	if err != nil {
		shared.ServerError(w, r, err, "list employees failed")
		return
	}
	shared.Render(w, r, h.View, http.StatusOK, "employee_manage", view.Data{"employees": employees})
}

func (h *Handler) handleUpdateRole(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.GetIdentity(r.Context())
	id, ok := shared.IDParam(r, "id")
	if !ok {
		shared.FlashRedirect(w, r, msgEmployeeNotFound, "/employee/manage")
		return
	}
	updated, err := h.Employees.UpdateRole(r.Context(), id, r.FormValue("role"))
	if err != nil {
		if errors.Is(err, employee.ErrNotFound) {
			shared.FlashRedirect(w, r, msgEmployeeNotFound, "/employee/manage")
			return
		}
		if msg, ok := employee.Message(err); ok {
			shared.FlashRedirect(w, r, msg, "/employee/manage")
			return
		}
		shared.ServerError(w, r, err, "update role failed")
		return
	}
	shared.RecordAudit(r, h.Audit, identity.EmployeeID, audit.ActionEmployeeRole, "employee", updated.ID,
		map[string]string{"role": updated.Role.String()})
	shared.FlashRedirect(w, r, "Role updated successfully for "+updated.FullName(), "/employee/manage")
}

type detailsResponse struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Department   string `json:"department"`
	Role         string `json:"role"`
	JoinDate     string `json:"join_date"`
	ProfileImage string `json:"profile_image"`
}

func (h *Handler) handleDetails(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		api.Fail(w, r, http.StatusUnauthorized, msgNotAuth)
		return
	}
	if identity.Role != auth.RoleAdmin {
		api.Fail(w, r, http.StatusForbidden, msgPermissionDenied)
		return
	}
	id, ok := shared.IDParam(r, "id")
	if !ok {
		api.Fail(w, r, http.StatusNotFound, msgEmployeeNotFound)
		return
	}
	emp, err := h.Employees.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, employee.ErrNotFound) {
			api.Fail(w, r, http.StatusNotFound, msgEmployeeNotFound)
			return
		}
		api.InternalError(w, r, err, "load employee details failed")
		return
	}
	joinDate := ""
	if !emp.JoinDate.IsZero() {
		joinDate = emp.JoinDate.Format(leave.DateLayout)
	}
	api.WriteJSON(w, r, http.StatusOK, detailsResponse{
		ID:           emp.ID,
		Name:         emp.FullName(),
		Email:        emp.Email,
		Department:   emp.Department,
		Role:         emp.Role.String(),
		JoinDate:     joinDate,
		ProfileImage: emp.ProfileImage,
	})
}

func (h *Handler) handleSettings(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.GetIdentity(r.Context())
	user, err := h.Employees.Get(r.Context(), identity.EmployeeID)
	if err != nil {
		shared.ServerError(w, r, err, "load employee failed")
		return
	}
	shared.Render(w, r, h.View, http.StatusOK, "settings", view.Data{
		"user":          user,
		"mfa_available": h.MFA.Available(),
	})
}

func (h *Handler) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.GetIdentity(r.Context())
	update := employee.ProfileUpdate{
		FirstName: shared.FormValue(r, "first_name"),
		LastName:  shared.FormValue(r, "last_name"),
		Email:     shared.FormValue(r, "email"),
	}
	if _, err := h.Employees.UpdateProfile(r.Context(), identity.EmployeeID, update); err != nil {
		if msg, ok := employee.Message(err); ok {
			shared.FlashRedirect(w, r, msg, "/settings")
			return
		}
		shared.ServerError(w, r, err, "update profile failed")
		return
	}
	shared.FlashRedirect(w, r, msgProfileUpdated, "/settings")
}

func (h *Handler) handleUpdatePassword(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.GetIdentity(r.Context())
	change := employee.PasswordChange{
		Current: r.FormValue("current_password"),
		New:     r.FormValue("new_password"),
		Confirm: r.FormValue("confirm_password"),
	}
	if err := h.Employees.ChangePassword(r.Context(), identity.EmployeeID, change); err != nil {
		if msg, ok := employee.Message(err); ok {
			shared.FlashRedirect(w, r, msg, "/settings")
			return
		}
		shared.ServerError(w, r, err, "change password failed")
		return
	}
	shared.FlashRedirect(w, r, msgPasswordUpdated, "/settings")
}

func (h *Handler) handleProfileImage(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.GetIdentity(r.Context())
	_, err := h.Employees.SetProfileImage(r.Context(), identity.EmployeeID, r.FormValue("image_data"))
	switch {
	case err == nil:
		shared.FlashRedirect(w, r, msgImageUpdated, "/dashboard")
	case errors.Is(err, employee.ErrNoImageData):
		shared.FlashRedirect(w, r, msgNoImage, "/dashboard")
	default:
		shared.FlashRedirect(w, r, msgImageError+err.Error(), "/dashboard")
	}
}
