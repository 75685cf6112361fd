package requestctx

import (
	"context"
	"testing"

	"hrdesk/internal/domain/auth"
)

func TestRequestID(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-9")
	if got := GetRequestID(ctx); got != "req-9" {
		t.Fatalf("expected req-9, got %q", got)
	}
	if got := GetRequestID(context.Background()); got != "" {
		t.Fatalf("expected empty request id, got %q", got)
	}
}

func TestIdentity(t *testing.T) {
	if _, ok := GetIdentity(context.Background()); ok {
		t.Fatal("expected no identity on empty context")
	}
	if _, ok := GetIdentity(WithIdentity(context.Background(), auth.Identity{})); ok {
		t.Fatal("expected zero identity to count as anonymous")
	}
	ctx := WithIdentity(context.Background(), auth.Identity{EmployeeID: 3, Role: auth.RoleManager})
	identity, ok := GetIdentity(ctx)
	if !ok || identity.EmployeeID != 3 || identity.Role != auth.RoleManager {
		t.Fatalf("unexpected identity %+v", identity)
	}
}
