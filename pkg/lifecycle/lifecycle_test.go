package lifecycle_test

import (
	"testing"

	"github.com/shashiranjanraj/freshko/pkg/lifecycle"
)

func TestTransitionTable(t *testing.T) {
	tests := []struct {
		from    lifecycle.Status
		to      lifecycle.Status
		allowed bool
	}{
		{lifecycle.Processing, lifecycle.Shipped, true},
		{lifecycle.Processing, lifecycle.Cancelled, true},
		{lifecycle.Shipped, lifecycle.Completed, true},

		{lifecycle.Processing, lifecycle.Completed, false},
		{lifecycle.Shipped, lifecycle.Processing, false},
		{lifecycle.Shipped, lifecycle.Cancelled, false},
		{lifecycle.Completed, lifecycle.Processing, false},
		{lifecycle.Completed, lifecycle.Shipped, false},
		{lifecycle.Completed, lifecycle.Cancelled, false},
		{lifecycle.Cancelled, lifecycle.Processing, false},
		{lifecycle.Cancelled, lifecycle.Shipped, false},
		{lifecycle.Cancelled, lifecycle.Completed, false},

		{lifecycle.Processing, lifecycle.Processing, false},
		{lifecycle.Shipped, lifecycle.Shipped, false},
	}

	for _, tc := range tests {
		if got := lifecycle.CanTransition(tc.from, tc.to); got != tc.allowed {
			t.Errorf("%s → %s: expected %v, got %v", tc.from, tc.to, tc.allowed, got)
		}
	}
}

func TestValid(t *testing.T) {
	for _, s := range []lifecycle.Status{
		lifecycle.Processing, lifecycle.Shipped, lifecycle.Completed, lifecycle.Cancelled,
	} {
		if !lifecycle.Valid(s) {
			t.Errorf("expected %s to be valid", s)
		}
	}
	if lifecycle.Valid("refunded") {
		t.Error("unknown status must not validate")
	}
}

func TestNextStatuses(t *testing.T) {
	if next := lifecycle.NextStatuses(lifecycle.Completed); len(next) != 0 {
		t.Errorf("completed is terminal, got %v", next)
	}
	if next := lifecycle.NextStatuses(lifecycle.Processing); len(next) != 2 {
		t.Errorf("expected two moves out of processing, got %v", next)
	}
}
