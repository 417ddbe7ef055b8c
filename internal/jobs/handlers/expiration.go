package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"salonbook/internal/infra/queue"
	"salonbook/internal/jobs"
	"salonbook/internal/pkg/clock"
	"salonbook/internal/pkg/errs"
	"salonbook/internal/usecase/commands"
	"salonbook/internal/usecase/queries"

	"github.com/google/uuid"
)

// ExpirationHandler expires bookings that sat too long in PENDING or
// VERIFY_ACCEPTANCE. A booking that progressed in the meantime produces an
// invalid transition, which just means there is nothing to do.
type ExpirationHandler struct {
	commands  commands.BookingCommands
	directory queries.DirectoryReader
	clock     clock.Clock
}

func NewExpirationHandler(cmds commands.BookingCommands, directory queries.DirectoryReader, clk clock.Clock) *ExpirationHandler {
	return &ExpirationHandler{commands: cmds, directory: directory, clock: clk}
}

// HandleExpire processes the per-booking delayed job armed at creation and
// acceptance time.
func (h *ExpirationHandler) HandleExpire(ctx context.Context, job queue.Job) error {
	var payload jobs.ExpireBookingPayload
	if err := json.Unmarshal(job.Payload, &payload); err != nil {
		return errs.Wrap(err, "invalid expiration job payload")
	}
	return h.expire(ctx, payload.BookingID, payload.Reason)
}

// HandleSweep scans the directory for anything the delayed jobs missed.
func (h *ExpirationHandler) HandleSweep(ctx context.Context, _ queue.Job) error {
	candidates, err := h.directory.FindExpirationCandidates(ctx, h.clock.Now())
	if err != nil {
		return err
	}
	for _, candidate := range candidates {
		if err := h.expire(ctx, candidate.BookingID, candidate.Reason); err != nil {
			return err
		}
	}
	return nil
}

func (h *ExpirationHandler) expire(ctx context.Context, bookingID uuid.UUID, reason string) error {
	_, err := h.commands.Expire(ctx, bookingID, reason)
	switch {
	case err == nil:
		slog.Info("booking expired", "booking_id", bookingID, "reason", reason)
		return nil
	case errors.Is(err, errs.ErrInvalidTransition), errors.Is(err, errs.ErrBookingNotFound):
		// Already confirmed, cancelled or gone; nothing left to expire.
		return nil
	default:
		return err
	}
}
