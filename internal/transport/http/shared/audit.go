package shared

import (
	"net/http"

	"hrdesk/internal/domain/audit"
	"hrdesk/internal/platform/logger"
	"hrdesk/internal/requestctx"
)

// RecordAudit appends an audit event. Failures are logged, never returned:
// the mutation it describes has already been committed.
func RecordAudit(r *http.Request, svc *audit.Service, actorID int64, action, entityType string, entityID int64, payload any) {
	if svc == nil {
		return
	}
	ctx := r.Context()
	if err := svc.Record(ctx, actorID, action, entityType, entityID, requestctx.GetRequestID(ctx), ClientIP(r), payload); err != nil {
		logger.FromContext(ctx).Error().Err(err).Str("action", action).Int64("entity_id", entityID).Msg("audit record failed")
	}
}
