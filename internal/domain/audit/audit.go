package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	ActionLeaveDecide    = "leave.decide"
	ActionLeaveCancel    = "leave.cancel"
	ActionEmployeeRole   = "employee.role"
	ActionEmployeeUpdate = "employee.update"
	ActionSalaryCreate   = "salary.create"
)

type Event struct {
	ID         int64           `json:"id"`
	ActorID    int64           `json:"actor_id"`
	Action     string          `json:"action"`
	EntityType string          `json:"entity_type"`
	EntityID   string          `json:"entity_id"`
	RequestID  string          `json:"request_id"`
	IP         string          `json:"ip"`
	Payload    json.RawMessage `json:"payload,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}

type Filter struct {
	Action     string
	EntityType string
	ActorID    int64
	Limit      int
}

func (f Filter) Matches(e Event) bool {
	if f.Action != "" && e.Action != f.Action {
		return false
	}
	if f.EntityType != "" && e.EntityType != f.EntityType {
		return false
	}
	if f.ActorID != 0 && e.ActorID != f.ActorID {
		return false
	}
	return true
}

type Repository interface {
	Append(ctx context.Context, event *Event) error
	// List returns the newest events first.
	List(ctx context.Context, filter Filter) ([]Event, error)
}

type Service struct {
	Repo Repository
	Now  func() time.Time
}

func New(repo Repository) *Service {
	return &Service{Repo: repo, Now: time.Now}
}

func (s *Service) Record(ctx context.Context, actorID int64, action, entityType string, entityID int64, requestID, ip string, payload any) error {
	var raw json.RawMessage
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		raw = encoded
	}
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	return s.Repo.Append(ctx, &Event{
		ActorID:    actorID,
		Action:     action,
		EntityType: entityType,
		EntityID:   strconv.FormatInt(entityID, 10),
		RequestID:  requestID,
		IP:         ip,
		Payload:    raw,
		CreatedAt:  now().UTC(),
	})
}

func (s *Service) List(ctx context.Context, filter Filter) ([]Event, error) {
	if filter.Limit <= 0 || filter.Limit > 500 {
		filter.Limit = 100
	}
	return s.Repo.List(ctx, filter)
}

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) Append(ctx context.Context, e *Event) error {
	return s.DB.QueryRow(ctx, `
    INSERT INTO audit_events (actor_id, action, entity_type, entity_id, request_id, ip, payload, created_at)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
    RETURNING id
  `, e.ActorID, e.Action, e.EntityType, e.EntityID, e.RequestID, e.IP, []byte(e.Payload), e.CreatedAt).Scan(&e.ID)
}

func (s *Store) List(ctx context.Context, filter Filter) ([]Event, error) {
	var (
		where []string
		args  []any
	)
	if filter.Action != "" {
		args = append(args, filter.Action)
		where = append(where, fmt.Sprintf("action = $%d", len(args)))
	}
	if filter.EntityType != "" {
		args = append(args, filter.EntityType)
		where = append(where, fmt.Sprintf("entity_type = $%d", len(args)))
	}
	if filter.ActorID != 0 {
		args = append(args, filter.ActorID)
		where = append(where, fmt.Sprintf("actor_id = $%d", len(args)))
	}
	query := "SELECT id, actor_id, action, entity_type, entity_id, request_id, ip, payload, created_at FROM audit_events"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC, id DESC"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Event
	for rows.Next() {
		var e Event
		var payload []byte
		if err := rows.Scan(&e.ID, &e.ActorID, &e.Action, &e.EntityType, &e.EntityID, &e.RequestID, &e.IP, &payload, &e.CreatedAt); err != nil {
			return nil, err
		}
		if len(payload) > 0 {
			e.Payload = payload
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
