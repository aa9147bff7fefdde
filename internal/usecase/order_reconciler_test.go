package usecase

import (
	"testing"

	"github.com/courtside/hooprun/internal/domain/order"
	"github.com/courtside/hooprun/internal/domain/roster"
)

func TestOrderReconciler_TargetStatusMapping(t *testing.T) {
	reconciler := NewOrderReconciler()

	cases := []struct {
		invite     roster.InviteStatus
		wantStatus order.Status
		wantChange bool
	}{
		{roster.InviteAccepted, order.StatusCompleted, true},
		{roster.InviteAcceptedPending, order.StatusPending, true},
		{roster.InviteRefund, order.StatusRefund, true},
		{roster.InviteDeclined, "", false},
		{roster.InviteUndecided, "", false},
	}

	for _, tc := range cases {
		got, change := reconciler.TargetStatus(tc.invite)
		if change != tc.wantChange {
			t.Fatalf("status %s: change=%t want %t", tc.invite, change, tc.wantChange)
		}
		if change && got != tc.wantStatus {
			t.Fatalf("status %s: got order status %s want %s", tc.invite, got, tc.wantStatus)
		}
	}
}
