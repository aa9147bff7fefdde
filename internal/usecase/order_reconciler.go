package usecase

import (
	"github.com/courtside/hooprun/internal/domain/order"
	"github.com/courtside/hooprun/internal/domain/roster"
)

// OrderReconciler derives the order status implied by an invite transition.
// The mapping is fixed: accepting completes the order, accepting with payment
// outstanding leaves it pending, a refund request flips it to refund, and
// declining or reverting to undecided leaves the order untouched.
//
// The reconciler only computes the target; the roster repository applies it
// in the same transaction as the invite-status write so the two can never
// diverge.
type OrderReconciler struct{}

func NewOrderReconciler() OrderReconciler {
	return OrderReconciler{}
}

// TargetStatus returns the order status an invite transition demands, or
// false when the transition must not touch the order.
func (OrderReconciler) TargetStatus(status roster.InviteStatus) (order.Status, bool) {
	switch status {
	case roster.InviteAccepted:
		return order.StatusCompleted, true
	case roster.InviteAcceptedPending:
		return order.StatusPending, true
	case roster.InviteRefund:
		return order.StatusRefund, true
	default:
		return "", false
	}
}
