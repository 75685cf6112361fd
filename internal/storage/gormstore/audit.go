package gormstore

import (
	"context"

	"gorm.io/gorm"

	"hrdesk/internal/domain/audit"
)

type AuditRepository struct {
	db *gorm.DB
}

func (r *AuditRepository) Append(ctx context.Context, e *audit.Event) error {
	row := auditRow{
		ActorID:    e.ActorID,
		Action:     e.Action,
		EntityType: e.EntityType,
		EntityID:   e.EntityID,
		RequestID:  e.RequestID,
		IP:         e.IP,
		Payload:    e.Payload,
		CreatedAt:  e.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return err
	}
	e.ID = row.ID
	return nil
}

func (r *AuditRepository) List(ctx context.Context, filter audit.Filter) ([]audit.Event, error) {
	query := r.db.WithContext(ctx).Model(&auditRow{})
	if filter.Action != "" {
		query = query.Where("action = ?", filter.Action)
	}
	if filter.EntityType != "" {
		query = query.Where("entity_type = ?", filter.EntityType)
	}
	if filter.ActorID != 0 {
		query = query.Where("actor_id = ?", filter.ActorID)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	var rows []auditRow
	if err := query.Order("created_at DESC").Order("id DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]audit.Event, 0, len(rows))
	for _, row := range rows {
		out = append(out, audit.Event{
			ID:         row.ID,
			ActorID:    row.ActorID,
			Action:     row.Action,
			EntityType: row.EntityType,
			EntityID:   row.EntityID,
			RequestID:  row.RequestID,
			IP:         row.IP,
			Payload:    row.Payload,
			CreatedAt:  row.CreatedAt,
		})
	}
	return out, nil
}
