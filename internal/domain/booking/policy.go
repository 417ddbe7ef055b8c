package booking

import (
	"time"

	"salonbook/internal/pkg/errs"
)

// Cancellation policy constants. Windows compare with >= so a cancellation at
// exactly the boundary gets the more favourable outcome.
const (
	ClientFullRefundWindow    = 12 * time.Hour
	StylistApprovalFreeWindow = 3 * time.Hour
	StylistPenaltyPercent     = 20

	ClientNoShowRefundPercent = 60
)

var (
	ErrUnknownActorRole   = errs.New("unknown actor role for cancellation")
	ErrUnknownNoShowParty = errs.New("unknown no-show party")
	ErrNegativeAmount     = errs.New("booking amount cannot be negative")
)

// CancellationOutcome is the money movement computed for a cancellation.
type CancellationOutcome struct {
	RefundCents           int64
	PenaltyCents          int64
	RequiresAdminApproval bool
	HoursUntilBooking     float64
	// OverrideApplied is set when an admin override decided the refund.
	OverrideApplied bool
}

// EvaluateCancellation computes the refund and penalty for cancelling a
// booking worth amountCents scheduled at bookingAt, cancelled at cancelAt by
// actorRole. The caller supplies both instants; this function never reads a
// clock, which is what makes the 12h/3h boundaries testable.
func EvaluateCancellation(bookingAt, cancelAt time.Time, actorRole ActorRole, amountCents int64, override *AdminOverride) (CancellationOutcome, error) {
	if amountCents < 0 {
		return CancellationOutcome{}, ErrNegativeAmount
	}

	hoursUntil := bookingAt.Sub(cancelAt).Hours()
	out := CancellationOutcome{HoursUntilBooking: hoursUntil}

	switch actorRole {
	case RoleClient:
		if hoursUntil >= ClientFullRefundWindow.Hours() {
			out.RefundCents = amountCents
		} else if override != nil {
			out.RefundCents = override.RefundCents
			out.OverrideApplied = true
		}
		// Otherwise the payment is retained in full.

	case RoleStylist:
		// Full refund to the client regardless of notice, plus a flat
		// penalty assessed against the stylist.
		out.RefundCents = amountCents
		out.PenaltyCents = amountCents * StylistPenaltyPercent / 100
		if hoursUntil < StylistApprovalFreeWindow.Hours() {
			out.RequiresAdminApproval = true
		}

	case RoleAdmin:
		// Admin cancellations refund in full unless the override says
		// otherwise.
		out.RefundCents = amountCents
		if override != nil {
			out.RefundCents = override.RefundCents
			out.OverrideApplied = true
		}

	default:
		return CancellationOutcome{}, ErrUnknownActorRole
	}

	return out, nil
}

// NoShowOutcome splits the booking amount between a refund to the client and
// a payout to the stylist. The two always sum to the total.
type NoShowOutcome struct {
	RefundCents int64
	PayoutCents int64
}

// EvaluateNoShow computes the settlement split for a no-show. A client
// no-show refunds 60% and pays the stylist the remaining 40%; a stylist
// no-show refunds everything.
func EvaluateNoShow(party NoShowParty, amountCents int64) (NoShowOutcome, error) {
	if amountCents < 0 {
		return NoShowOutcome{}, ErrNegativeAmount
	}

	switch party {
	case NoShowClient:
		refund := amountCents * ClientNoShowRefundPercent / 100
		return NoShowOutcome{RefundCents: refund, PayoutCents: amountCents - refund}, nil
	case NoShowStylist:
		return NoShowOutcome{RefundCents: amountCents, PayoutCents: 0}, nil
	default:
		return NoShowOutcome{}, ErrUnknownNoShowParty
	}
}
