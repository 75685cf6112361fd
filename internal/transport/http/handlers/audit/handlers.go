package audithandler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"hrdesk/internal/domain/audit"
	"hrdesk/internal/domain/auth"
	"hrdesk/internal/transport/http/api"
	"hrdesk/internal/transport/http/middleware"
	"hrdesk/internal/transport/http/shared"
)

type Handler struct {
	Service *audit.Service
}

func NewHandler(service *audit.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/audit/events", h.handleListEvents)
}

// handleListEvents returns the newest audit events as JSON. Admin only.
func (h *Handler) handleListEvents(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		api.Fail(w, r, http.StatusUnauthorized, "User not authenticated")
		return
	}
	if identity.Role != auth.RoleAdmin {
		api.Fail(w, r, http.StatusForbidden, "Permission denied")
		return
	}

	q := r.URL.Query()
	filter := audit.Filter{
		Action:     q.Get("action"),
		EntityType: q.Get("entity_type"),
		Limit:      shared.ParseLimit(r, 100, 500),
	}
	if raw := q.Get("actor_id"); raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
			filter.ActorID = id
		}
	}
	events, err := h.Service.List(r.Context(), filter)
	if err != nil {
		api.InternalError(w, r, err, "list audit events failed")
		return
	}
	if events == nil {
		events = []audit.Event{}
	}
	api.WriteJSON(w, r, http.StatusOK, map[string]any{"events": events})
}
