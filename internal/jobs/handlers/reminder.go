package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"salonbook/internal/domain/booking"
	"salonbook/internal/infra/queue"
	"salonbook/internal/jobs"
	"salonbook/internal/pkg/clock"
	"salonbook/internal/pkg/errs"
	"salonbook/internal/usecase/commands"
	"salonbook/internal/usecase/queries"
)

// ReminderHandler fires the 24h/2h/30m appointment reminders. A booking that
// was cancelled, expired or marked no-show after the reminder was scheduled
// is silently skipped.
type ReminderHandler struct {
	bookings  queries.BookingQueries
	commands  commands.BookingCommands
	mailer    Mailer
	directory queries.DirectoryReader
	enqueuer  commands.Enqueuer
	clock     clock.Clock
}

func NewReminderHandler(bookings queries.BookingQueries, cmds commands.BookingCommands, mailer Mailer, directory queries.DirectoryReader, enqueuer commands.Enqueuer, clk clock.Clock) *ReminderHandler {
	return &ReminderHandler{bookings: bookings, commands: cmds, mailer: mailer, directory: directory, enqueuer: enqueuer, clock: clk}
}

func (h *ReminderHandler) Handle(ctx context.Context, job queue.Job) error {
	var payload jobs.ReminderPayload
	if err := json.Unmarshal(job.Payload, &payload); err != nil {
		return errs.Wrap(err, "invalid reminder job payload")
	}

	view, err := h.bookings.GetByID(ctx, payload.BookingID)
	if err != nil {
		if errors.Is(err, errs.ErrBookingNotFound) {
			return nil
		}
		return err
	}
	switch booking.Status(view.Status) {
	case booking.StatusConfirmed, booking.StatusInProgress:
	default:
		return nil
	}

	if err := h.mailer.Send(ctx, jobs.JobBookingReminder+"-"+payload.Tier, payload.BookingID); err != nil {
		return err
	}
	_, err = h.commands.RecordReminderSent(ctx, payload.BookingID, payload.Tier)
	return err
}

// HandleSweep re-checks confirmed bookings inside the 24h window and arms
// any reminder tier the confirmation-time schedule missed, for example when
// a booking was confirmed while the queue was down. Pinned job IDs collapse
// duplicates onto the already-armed rows.
func (h *ReminderHandler) HandleSweep(ctx context.Context, _ queue.Job) error {
	now := h.clock.Now()
	upcoming, err := h.directory.FindUpcomingConfirmed(ctx, now, now.Add(24*time.Hour))
	if err != nil {
		return err
	}
	for _, summary := range upcoming {
		for _, tier := range jobs.ReminderTiers {
			sendAt := summary.BookingAt.Add(-tier.Lead)
			_, err := h.enqueuer.Enqueue(ctx, queue.QueueBookingReminders, jobs.JobBookingReminder,
				jobs.ReminderPayload{BookingID: summary.ID, Tier: tier.Name},
				queue.Options{NotBefore: sendAt, JobID: jobs.ReminderJobID(summary.ID, tier.Name)})
			if err != nil {
				return err
			}
		}
	}
	return nil
}
