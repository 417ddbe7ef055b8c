package commands

import (
	"context"

	"salonbook/internal/domain/booking"
	"salonbook/internal/pkg/clock"
	"salonbook/internal/pkg/config"
	"salonbook/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrNoPendingCancellation = errs.New("no cancellation awaiting approval")

// AdminCommands resolves cancellations parked for admin approval.
type AdminCommands interface {
	ApproveCancellation(ctx context.Context, bookingID, adminID uuid.UUID, reason string) (*booking.State, error)
	RejectCancellation(ctx context.Context, bookingID, adminID uuid.UUID, reason string) (*booking.State, error)
}

func NewAdminUseCase(
	events EventStore,
	snapshots SnapshotStore,
	directory BookingDirectory,
	enqueuer Enqueuer,
	cfg config.BookingConfig,
	clock clock.Clock,
) AdminCommands {
	return &bookingUseCaseImpl{
		events:    events,
		snapshots: snapshots,
		directory: directory,
		enqueuer:  enqueuer,
		cfg:       cfg,
		clock:     clock,
	}
}

// ApproveCancellation finalizes a parked cancellation with the outcome that
// was computed when the request was made.
func (u *bookingUseCaseImpl) ApproveCancellation(ctx context.Context, bookingID, adminID uuid.UUID, reason string) (*booking.State, error) {
	actor := Actor{ID: adminID, Role: booking.RoleAdmin}
	return u.execute(ctx, bookingID, actor, func(state *booking.State) (booking.Payload, error) {
		if _, err := booking.Transition(state.Status, booking.CommandApproveCancel); err != nil {
			return nil, errs.Mark(err, errs.ErrInvalidTransition)
		}
		pending := state.PendingCancellation
		if pending == nil {
			return nil, errs.Mark(errs.New("approval state without request"), ErrNoPendingCancellation)
		}

		cancelReason := pending.Reason
		if reason != "" {
			cancelReason = reason
		}
		return booking.CancelledPayload{
			CancelledBy:       pending.RequestedBy,
			CancelledByRole:   pending.RequestedByRole,
			Reason:            cancelReason,
			CancelledAt:       u.clock.Now(),
			RefundCents:       pending.RefundCents,
			PenaltyCents:      pending.PenaltyCents,
			HoursUntilBooking: pending.HoursUntilBooking,
			Override: &booking.AdminOverride{
				AdminID:     adminID,
				Reason:      reason,
				RefundCents: pending.RefundCents,
			},
		}, nil
	})
}

// RejectCancellation returns the booking to the status it held before the
// request was parked.
func (u *bookingUseCaseImpl) RejectCancellation(ctx context.Context, bookingID, adminID uuid.UUID, reason string) (*booking.State, error) {
	actor := Actor{ID: adminID, Role: booking.RoleAdmin}
	return u.execute(ctx, bookingID, actor, func(state *booking.State) (booking.Payload, error) {
		if _, err := booking.Transition(state.Status, booking.CommandRejectCancel); err != nil {
			return nil, errs.Mark(err, errs.ErrInvalidTransition)
		}
		pending := state.PendingCancellation
		if pending == nil {
			return nil, errs.Mark(errs.New("approval state without request"), ErrNoPendingCancellation)
		}

		return booking.CancellationRejectedPayload{
			AdminID:        adminID,
			Reason:         reason,
			RejectedAt:     u.clock.Now(),
			RestoredStatus: pending.PriorStatus,
		}, nil
	})
}
