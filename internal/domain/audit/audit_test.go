package audit_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrdesk/internal/domain/audit"
	"hrdesk/internal/storage/memory"
)

func TestRecordAndList(t *testing.T) {
	ctx := context.Background()
	svc := audit.New(memory.New().Audit())
	svc.Now = func() time.Time { return time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC) }

	require.NoError(t, svc.Record(ctx, 2, audit.ActionLeaveDecide, "leave_request", 11, "req-1", "10.0.0.1", map[string]any{"status": "Approved"}))
	require.NoError(t, svc.Record(ctx, 3, audit.ActionEmployeeRole, "employee", 5, "req-2", "10.0.0.2", nil))

	all, err := svc.List(ctx, audit.Filter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, audit.ActionEmployeeRole, all[0].Action, "newest first")
	assert.Nil(t, all[0].Payload)

	decisions, err := svc.List(ctx, audit.Filter{Action: audit.ActionLeaveDecide})
	require.NoError(t, err)
	require.Len(t, decisions, 1)
	assert.Equal(t, "11", decisions[0].EntityID)
	assert.Equal(t, int64(2), decisions[0].ActorID)

	var payload map[string]string
	require.NoError(t, json.Unmarshal(decisions[0].Payload, &payload))
	assert.Equal(t, "Approved", payload["status"])
}
