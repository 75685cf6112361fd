package payrollhandler

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"hrdesk/internal/domain/audit"
	"hrdesk/internal/domain/auth"
	"hrdesk/internal/domain/employee"
	"hrdesk/internal/domain/payroll"
	"hrdesk/internal/platform/metrics"
	"hrdesk/internal/transport/http/middleware"
	"hrdesk/internal/transport/http/shared"
	"hrdesk/internal/transport/http/view"
)

type Handler struct {
	Payroll   *payroll.Service
	Employees *employee.Service
	Audit     *audit.Service
	Metrics   *metrics.Collector
	View      view.Renderer

	MutationLimit func(http.Handler) http.Handler
}

func NewHandler(payrollSvc *payroll.Service, employees *employee.Service, auditSvc *audit.Service, collector *metrics.Collector, renderer view.Renderer) *Handler {
	return &Handler{Payroll: payrollSvc, Employees: employees, Audit: auditSvc, Metrics: collector, View: renderer}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/payroll", h.handlePayroll)
		r.Get("/payroll/{id}", h.handlePayroll)
		r.Get("/payroll/download/{id}", h.handleDownload)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(auth.RoleHR, auth.RoleAdmin))
			r.Get("/salary", h.handleSalaryForm)
			r.With(middleware.Optional(h.MutationLimit)).Post("/submit_salary", h.handleSubmitSalary)
		})
	})
}

func (h *Handler) handlePayroll(w http.ResponseWriter, r *http.Request) {
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
	payslips, err := h.Payroll.ListPayslips(r.Context(), identity.EmployeeID)
	if err != nil {
		shared.ServerError(w, r, err, "list payslips failed")
		return
	}

	var selected *payroll.Payslip
	if id, ok := selectedID(r); ok {
		slip, err := h.Payroll.Payslip(r.Context(), identity.EmployeeID, id)
		switch {
		case err == nil:
			selected = &slip
		case !errors.Is(err, payroll.ErrNotFound):
			shared.ServerError(w, r, err, "load payslip failed")
			return
		}
	}

	shared.Render(w, r, h.View, http.StatusOK, "payroll", view.Data{
		"user": map[string]any{
			"full_name": emp.FullName(),
			"employee":  emp,
		},
		"payslips":         payslips,
		"selected_payslip": selected,
	})
}

// selectedID reads ?id= first, then the path parameter.
func selectedID(r *http.Request) (int64, bool) {
	if raw := r.URL.Query().Get("id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		return id, err == nil && id > 0
	}
	return shared.IDParam(r, "id")
}

func (h *Handler) handleDownload(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.GetIdentity(r.Context())
	id, ok := shared.IDParam(r, "id")
	if !ok {
		http.Redirect(w, r, "/payroll", http.StatusFound)
		return
	}
	emp, err := h.Employees.Get(r.Context(), identity.EmployeeID)
	if err != nil {
		if errors.Is(err, employee.ErrNotFound) {
			http.Redirect(w, r, "/payroll", http.StatusFound)
			return
		}
		shared.ServerError(w, r, err, "load employee failed")
		return
	}
	slip, err := h.Payroll.Payslip(r.Context(), identity.EmployeeID, id)
	if err != nil {
		if errors.Is(err, payroll.ErrNotFound) {
			http.Redirect(w, r, "/payroll", http.StatusFound)
			return
		}
		shared.ServerError(w, r, err, "load payslip failed")
		return
	}

	var buf bytes.Buffer
	pdfEmp := payroll.PayslipEmployee{ID: emp.ID, FirstName: emp.FirstName, LastName: emp.LastName}
	if err := payroll.RenderPayslipPDF(&buf, pdfEmp, slip); err != nil {
		shared.ServerError(w, r, err, "render payslip failed")
		return
	}
	h.Metrics.RecordPayslip()
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+slip.FileName()+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	_, _ = w.Write(buf.Bytes())
}

func (h *Handler) handleSalaryForm(w http.ResponseWriter, r *http.Request) {
	shared.Render(w, r, h.View, http.StatusOK, "salary", nil)
}

func (h *Handler) handleSubmitSalary(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.GetIdentity(r.Context())
	form := payroll.SalaryForm{
		EmployeeID: r.FormValue("employee_id"),
		Salary:     r.FormValue("salary"),
		TaxPercent: r.FormValue("tax"),
		Date:       r.FormValue("date"),
	}
	rec, err := h.Payroll.Submit(r.Context(), form)
	if err != nil {
		if msg, ok := payroll.Message(err); ok {
			shared.FlashRedirect(w, r, msg, "/salary")
			return
		}
		shared.ServerError(w, r, err, "submit salary failed")
		return
	}
	shared.RecordAudit(r, h.Audit, identity.EmployeeID, audit.ActionSalaryCreate, "salary", rec.ID,
		map[string]any{"employee_id": rec.EmployeeID, "basic_salary": rec.BasicSalary})
	shared.FlashRedirect(w, r, payroll.SubmittedMessage(form, rec), "/salary")
}
