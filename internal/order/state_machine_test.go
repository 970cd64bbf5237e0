package order

import "testing"

func TestCanTransitionAndApply(t *testing.T) {
	if !CanTransition(StatusPending, StatusConfirmed) {
		t.Fatalf("expected pending -> confirmed allowed")
	}
	if CanTransition(StatusConfirmed, StatusPending) {
		t.Fatalf("expected confirmed -> pending not allowed")
	}
	// 重复确认是冲突而不是幂等操作
	if CanTransition(StatusConfirmed, StatusConfirmed) {
		t.Fatalf("expected confirmed -> confirmed not allowed")
	}

	o := &Order{Status: StatusPending}
	if err := ApplyTransition(o, StatusConfirmed); err != nil {
		t.Fatalf("ApplyTransition: %v", err)
	}
	if o.Status != StatusConfirmed {
		t.Fatalf("expected status confirmed, got %s", o.Status)
	}

	if err := ApplyTransition(o, StatusConfirmed); err == nil {
		t.Fatalf("expected transition out of terminal state to fail")
	}
}
