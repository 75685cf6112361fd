package memory

import (
	"context"

	"hrdesk/internal/domain/audit"
)

type Audit struct {
	db *DB
}

func (r *Audit) Append(ctx context.Context, event *audit.Event) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	event.ID = r.db.nextID()
	r.db.events = append(r.db.events, *event)
	return nil
}

func (r *Audit) List(ctx context.Context, filter audit.Filter) ([]audit.Event, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	var out []audit.Event
	for i := len(r.db.events) - 1; i >= 0; i-- {
		e := r.db.events[i]
		if !filter.Matches(e) {
			continue
		}
		out = append(out, e)
		if filter.Limit > 0 && len(out) == filter.Limit {
			break
		}
	}
	return out, nil
}
