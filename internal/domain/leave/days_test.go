package leave

import (
	"errors"
	"testing"
	"time"
)

func TestInclusiveDays(t *testing.T) {
	start := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	cases := []struct {
		name string
		end  time.Time
		want int
	}{
		{name: "same day", end: start, want: 1},
		{name: "three days", end: start.AddDate(0, 0, 2), want: 3},
		{name: "end before start", end: start.AddDate(0, 0, -1), want: 0},
		{name: "clock ignored", end: start.Add(23 * time.Hour), want: 1},
		{name: "across month", end: time.Date(2025, 2, 2, 0, 0, 0, 0, time.UTC), want: 24},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			if got := InclusiveDays(start, tc.end); got != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, got)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	if _, err := ParseDate("2025-02-30"); err != ErrInvalidDate {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
	got, err := ParseDate("2025-02-28")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Month() != time.February || got.Day() != 28 {
		t.Fatalf("unexpected date %v", got)
	}
}

func TestTransition(t *testing.T) {
	cases := []struct {
		name    string
		current Status
		action  string
		want    Status
		wantErr error
	}{
		{name: "approve", current: StatusPending, action: "approve", want: StatusApproved},
		{name: "reject", current: StatusPending, action: "reject", want: StatusRejected},
		{name: "unknown action", current: StatusPending, action: "escalate", wantErr: ErrInvalidAction},
		{name: "already approved", current: StatusApproved, action: "reject", wantErr: ErrNotPending},
		{name: "state checked before action", current: StatusRejected, action: "escalate", wantErr: ErrNotPending},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got, err := Transition(tc.current, tc.action)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("expected %v, got %v", tc.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

func TestConflictMessage(t *testing.T) {
	err := &ConflictError{Status: StatusApproved}
	if got := err.Message(); got != "This leave request has already been approved." {
		t.Fatalf("unexpected message %q", got)
	}
	if got := SuccessMessage(StatusRejected); got != "Leave request rejected successfully." {
		t.Fatalf("unexpected message %q", got)
	}
}
