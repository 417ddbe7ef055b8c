package commands

import (
	"context"
	"log/slog"
	"time"

	"salonbook/internal/domain/booking"
	"salonbook/internal/infra"
	"salonbook/internal/infra/queue"
	"salonbook/internal/jobs"
	"salonbook/internal/pkg/clock"
	"salonbook/internal/pkg/config"
	"salonbook/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrDomainValidation = errs.New("domain validation error")

type CreateBookingInput struct {
	// BookingID is optional; uuid.Nil lets the service assign one.
	BookingID       uuid.UUID
	ClientID        uuid.UUID
	StylistID       uuid.UUID
	ServiceID       uuid.UUID
	BookingDate     string
	BookingTime     string
	DurationMinutes int
	TotalPriceCents int64
	Note            string
}

type CancelBookingInput struct {
	BookingID uuid.UUID
	Actor     Actor
	Reason    string
	Override  *booking.AdminOverride
}

type MarkNoShowInput struct {
	BookingID uuid.UUID
	Actor     Actor
	Party     booking.NoShowParty
	Reason    string
}

type RescheduleInput struct {
	BookingID uuid.UUID
	Actor     Actor
	NewDate   string
	NewTime   string
}

type BookingCommands interface {
	Create(ctx context.Context, in CreateBookingInput) (*booking.State, error)
	Accept(ctx context.Context, bookingID uuid.UUID, actor Actor) (*booking.State, error)
	Confirm(ctx context.Context, bookingID uuid.UUID, actor Actor, paymentMethodRef string) (*booking.State, error)
	Start(ctx context.Context, bookingID uuid.UUID, actor Actor) (*booking.State, error)
	Complete(ctx context.Context, bookingID uuid.UUID, actor Actor) (*booking.State, error)
	Cancel(ctx context.Context, in CancelBookingInput) (*booking.State, error)
	MarkNoShow(ctx context.Context, in MarkNoShowInput) (*booking.State, error)
	Reschedule(ctx context.Context, in RescheduleInput) (*booking.State, error)
	Expire(ctx context.Context, bookingID uuid.UUID, reason string) (*booking.State, error)
	RecordPaymentCaptured(ctx context.Context, bookingID uuid.UUID, amountCents int64, transactionID, idempotencyKey string) (*booking.State, error)
	RecordPaymentRefunded(ctx context.Context, bookingID uuid.UUID, amountCents int64, transactionID, idempotencyKey string) (*booking.State, error)
	RecordReminderSent(ctx context.Context, bookingID uuid.UUID, tier string) (*booking.State, error)
}

type bookingUseCaseImpl struct {
	events    EventStore
	snapshots SnapshotStore
	directory BookingDirectory
	enqueuer  Enqueuer
	cfg       config.BookingConfig
	clock     clock.Clock
}

func NewBookingUseCase(
	events EventStore,
	snapshots SnapshotStore,
	directory BookingDirectory,
	enqueuer Enqueuer,
	cfg config.BookingConfig,
	clock clock.Clock,
) BookingCommands {
	return &bookingUseCaseImpl{
		events:    events,
		snapshots: snapshots,
		directory: directory,
		enqueuer:  enqueuer,
		cfg:       cfg,
		clock:     clock,
	}
}

func (u *bookingUseCaseImpl) Create(ctx context.Context, in CreateBookingInput) (*booking.State, error) {
	if err := validateCreateInput(in); err != nil {
		return nil, err
	}

	bookingID := in.BookingID
	if bookingID == uuid.Nil {
		bookingID = uuid.New()
	}

	ev := booking.Event{
		BookingID: bookingID,
		Type:      booking.EventCreated,
		Payload: booking.CreatedPayload{
			ClientID:        in.ClientID,
			StylistID:       in.StylistID,
			ServiceID:       in.ServiceID,
			BookingDate:     in.BookingDate,
			BookingTime:     in.BookingTime,
			DurationMinutes: in.DurationMinutes,
			TotalPriceCents: in.TotalPriceCents,
			Note:            in.Note,
		},
		ActorID:   in.ClientID,
		ActorRole: booking.RoleClient,
		Timestamp: u.clock.Now(),
	}

	appended, err := u.events.Append(ctx, 0, ev)
	if err != nil {
		if infra.IsKind(err, infra.KindConflict) {
			return nil, errs.Mark(err, errs.ErrBookingExists)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	state, err := booking.Replay(nil, []booking.Event{appended})
	if err != nil {
		return nil, errs.Mark(err, errs.ErrReplayInconsistency)
	}
	u.afterAppend(ctx, state, appended)
	return state, nil
}

func validateCreateInput(in CreateBookingInput) error {
	if in.ClientID == uuid.Nil || in.StylistID == uuid.Nil || in.ServiceID == uuid.Nil {
		return errs.Mark(errs.New("client, stylist and service are required"), ErrDomainValidation)
	}
	if _, err := time.Parse("2006-01-02", in.BookingDate); err != nil {
		return errs.Mark(errs.Wrap(err, "invalid booking date"), ErrDomainValidation)
	}
	if _, err := time.Parse("15:04", in.BookingTime); err != nil {
		return errs.Mark(errs.Wrap(err, "invalid booking time"), ErrDomainValidation)
	}
	if in.DurationMinutes <= 0 {
		return errs.Mark(errs.New("duration must be positive"), ErrDomainValidation)
	}
	if in.TotalPriceCents < 0 {
		return errs.Mark(errs.New("price cannot be negative"), ErrDomainValidation)
	}
	return nil
}

func (u *bookingUseCaseImpl) Accept(ctx context.Context, bookingID uuid.UUID, actor Actor) (*booking.State, error) {
	return u.execute(ctx, bookingID, actor, func(state *booking.State) (booking.Payload, error) {
		if err := authorize(state, actor); err != nil {
			return nil, err
		}
		if _, err := booking.Transition(state.Status, booking.CommandAccept); err != nil {
			return nil, errs.Mark(err, errs.ErrInvalidTransition)
		}
		return booking.AcceptedPayload{AcceptedAt: u.clock.Now()}, nil
	})
}

func (u *bookingUseCaseImpl) Confirm(ctx context.Context, bookingID uuid.UUID, actor Actor, paymentMethodRef string) (*booking.State, error) {
	return u.execute(ctx, bookingID, actor, func(state *booking.State) (booking.Payload, error) {
		if err := authorize(state, actor); err != nil {
			return nil, err
		}
		if _, err := booking.Transition(state.Status, booking.CommandConfirmPayment); err != nil {
			return nil, errs.Mark(err, errs.ErrInvalidTransition)
		}
		return booking.ConfirmedPayload{ConfirmedAt: u.clock.Now(), PaymentMethodRef: paymentMethodRef}, nil
	})
}

func (u *bookingUseCaseImpl) Start(ctx context.Context, bookingID uuid.UUID, actor Actor) (*booking.State, error) {
	return u.execute(ctx, bookingID, actor, func(state *booking.State) (booking.Payload, error) {
		if err := authorize(state, actor); err != nil {
			return nil, err
		}
		if _, err := booking.Transition(state.Status, booking.CommandStart); err != nil {
			return nil, errs.Mark(err, errs.ErrInvalidTransition)
		}
		return booking.StartedPayload{StartedAt: u.clock.Now()}, nil
	})
}

func (u *bookingUseCaseImpl) Complete(ctx context.Context, bookingID uuid.UUID, actor Actor) (*booking.State, error) {
	return u.execute(ctx, bookingID, actor, func(state *booking.State) (booking.Payload, error) {
		if err := authorize(state, actor); err != nil {
			return nil, err
		}
		if _, err := booking.Transition(state.Status, booking.CommandComplete); err != nil {
			return nil, errs.Mark(err, errs.ErrInvalidTransition)
		}
		return booking.CompletedPayload{
			CompletedAt:        u.clock.Now(),
			StylistPayoutCents: state.TotalPriceCents,
		}, nil
	})
}

// Cancel evaluates the refund policy and either cancels outright or, for a
// stylist cancelling inside the approval window without an admin override,
// parks the booking pending admin approval.
func (u *bookingUseCaseImpl) Cancel(ctx context.Context, in CancelBookingInput) (*booking.State, error) {
	return u.execute(ctx, in.BookingID, in.Actor, func(state *booking.State) (booking.Payload, error) {
		if err := authorize(state, in.Actor); err != nil {
			return nil, err
		}
		if _, err := booking.Transition(state.Status, booking.CommandCancel); err != nil {
			return nil, errs.Mark(err, errs.ErrInvalidTransition)
		}

		bookingAt, err := state.BookingDateTime()
		if err != nil {
			return nil, errs.Mark(err, errs.ErrReplayInconsistency)
		}
		now := u.clock.Now()

		outcome, err := booking.EvaluateCancellation(bookingAt, now, in.Actor.Role, state.TotalPriceCents, in.Override)
		if err != nil {
			return nil, errs.Mark(err, errs.ErrPolicyViolation)
		}

		if outcome.RequiresAdminApproval && in.Override == nil {
			return booking.CancellationRequestedPayload{
				RequestedBy:       in.Actor.ID,
				RequestedByRole:   in.Actor.Role,
				Reason:            in.Reason,
				RequestedAt:       now,
				RefundCents:       outcome.RefundCents,
				PenaltyCents:      outcome.PenaltyCents,
				HoursUntilBooking: outcome.HoursUntilBooking,
				PriorStatus:       state.Status,
			}, nil
		}

		return booking.CancelledPayload{
			CancelledBy:       in.Actor.ID,
			CancelledByRole:   in.Actor.Role,
			Reason:            in.Reason,
			CancelledAt:       now,
			RefundCents:       outcome.RefundCents,
			PenaltyCents:      outcome.PenaltyCents,
			HoursUntilBooking: outcome.HoursUntilBooking,
			Override:          in.Override,
		}, nil
	})
}

func (u *bookingUseCaseImpl) MarkNoShow(ctx context.Context, in MarkNoShowInput) (*booking.State, error) {
	return u.execute(ctx, in.BookingID, in.Actor, func(state *booking.State) (booking.Payload, error) {
		if err := authorize(state, in.Actor); err != nil {
			return nil, err
		}
		if _, err := booking.Transition(state.Status, booking.CommandMarkNoShow); err != nil {
			return nil, errs.Mark(err, errs.ErrInvalidTransition)
		}

		outcome, err := booking.EvaluateNoShow(in.Party, state.TotalPriceCents)
		if err != nil {
			return nil, errs.Mark(err, errs.ErrPolicyViolation)
		}
		return booking.NoShowPayload{
			Party:       in.Party,
			ReportedBy:  in.Actor.ID,
			Reason:      in.Reason,
			ReportedAt:  u.clock.Now(),
			RefundCents: outcome.RefundCents,
			PayoutCents: outcome.PayoutCents,
		}, nil
	})
}

func (u *bookingUseCaseImpl) Reschedule(ctx context.Context, in RescheduleInput) (*booking.State, error) {
	if _, err := time.Parse("2006-01-02", in.NewDate); err != nil {
		return nil, errs.Mark(errs.Wrap(err, "invalid booking date"), ErrDomainValidation)
	}
	if _, err := time.Parse("15:04", in.NewTime); err != nil {
		return nil, errs.Mark(errs.Wrap(err, "invalid booking time"), ErrDomainValidation)
	}

	return u.execute(ctx, in.BookingID, in.Actor, func(state *booking.State) (booking.Payload, error) {
		if err := authorize(state, in.Actor); err != nil {
			return nil, err
		}
		if _, err := booking.Transition(state.Status, booking.CommandReschedule); err != nil {
			return nil, errs.Mark(err, errs.ErrInvalidTransition)
		}
		return booking.RescheduledPayload{
			OldDate: state.BookingDate,
			OldTime: state.BookingTime,
			NewDate: in.NewDate,
			NewTime: in.NewTime,
		}, nil
	})
}

// Expire is issued by the expiration sweep. Only bookings still waiting on a
// response or a payment can expire; anything else is an invalid transition
// the sweep treats as "already moved on".
func (u *bookingUseCaseImpl) Expire(ctx context.Context, bookingID uuid.UUID, reason string) (*booking.State, error) {
	return u.execute(ctx, bookingID, SystemActor(), func(state *booking.State) (booking.Payload, error) {
		if _, err := booking.Transition(state.Status, booking.CommandExpire); err != nil {
			return nil, errs.Mark(err, errs.ErrInvalidTransition)
		}
		return booking.ExpiredPayload{ExpiredAt: u.clock.Now(), Reason: reason}, nil
	})
}

func (u *bookingUseCaseImpl) RecordPaymentCaptured(ctx context.Context, bookingID uuid.UUID, amountCents int64, transactionID, idempotencyKey string) (*booking.State, error) {
	return u.execute(ctx, bookingID, SystemActor(), func(state *booking.State) (booking.Payload, error) {
		if state.PaymentStatus != booking.PaymentUnpaid {
			// Retried capture job; the payment is already on record.
			return nil, nil
		}
		return booking.PaymentReceivedPayload{
			AmountCents:    amountCents,
			TransactionID:  transactionID,
			IdempotencyKey: idempotencyKey,
		}, nil
	})
}

func (u *bookingUseCaseImpl) RecordPaymentRefunded(ctx context.Context, bookingID uuid.UUID, amountCents int64, transactionID, idempotencyKey string) (*booking.State, error) {
	return u.execute(ctx, bookingID, SystemActor(), func(state *booking.State) (booking.Payload, error) {
		switch state.PaymentStatus {
		case booking.PaymentPaid, booking.PaymentPartiallyRefunded:
			return booking.PaymentRefundedPayload{
				AmountCents:    amountCents,
				TransactionID:  transactionID,
				IdempotencyKey: idempotencyKey,
			}, nil
		case booking.PaymentRefunded:
			return nil, nil
		default:
			return nil, errs.Mark(errs.New("refund against unpaid booking"), errs.ErrPolicyViolation)
		}
	})
}

func (u *bookingUseCaseImpl) RecordReminderSent(ctx context.Context, bookingID uuid.UUID, tier string) (*booking.State, error) {
	return u.execute(ctx, bookingID, SystemActor(), func(state *booking.State) (booking.Payload, error) {
		if state.Status != booking.StatusConfirmed && state.Status != booking.StatusInProgress {
			return nil, nil
		}
		return booking.ReminderSentPayload{ReminderTier: tier, SentAt: u.clock.Now()}, nil
	})
}

// authorize checks that the actor owns the side of the booking they act on.
// Admin and system actors pass unconditionally.
func authorize(state *booking.State, actor Actor) error {
	switch actor.Role {
	case booking.RoleClient:
		if state.ClientID != actor.ID {
			return errs.Mark(errs.New("booking belongs to another client"), errs.ErrActorNotAllowed)
		}
	case booking.RoleStylist:
		if state.StylistID != actor.ID {
			return errs.Mark(errs.New("booking belongs to another stylist"), errs.ErrActorNotAllowed)
		}
	case booking.RoleAdmin, booking.RoleSystem:
	default:
		return errs.Mark(errs.New("unknown role "+string(actor.Role)), errs.ErrActorNotAllowed)
	}
	return nil
}

type decideFunc func(state *booking.State) (booking.Payload, error)

// execute runs one command with optimistic concurrency: load, decide, append
// at the expected sequence. A conflict means another writer appended first;
// the command re-reads and re-decides against the fresh state, bounded by the
// retry limit. A decide returning (nil, nil) is an idempotent no-op.
func (u *bookingUseCaseImpl) execute(ctx context.Context, bookingID uuid.UUID, actor Actor, decide decideFunc) (*booking.State, error) {
	for attempt := 0; attempt <= u.cfg.CommandRetryLimit; attempt++ {
		state, err := u.load(ctx, bookingID)
		if err != nil {
			return nil, err
		}

		payload, err := decide(state)
		if err != nil {
			return nil, err
		}
		if payload == nil {
			return state, nil
		}

		ev := booking.Event{
			BookingID: bookingID,
			Type:      payload.EventType(),
			Payload:   payload,
			ActorID:   actor.ID,
			ActorRole: actor.Role,
			Timestamp: u.clock.Now(),
		}
		appended, err := u.events.Append(ctx, state.Sequence, ev)
		if infra.IsKind(err, infra.KindConflict) {
			continue
		}
		if err != nil {
			return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		if err := state.Apply(appended); err != nil {
			return nil, errs.Mark(err, errs.ErrReplayInconsistency)
		}
		u.afterAppend(ctx, state, appended)
		return state, nil
	}
	return nil, errs.Mark(errs.New("retry budget exhausted"), errs.ErrConcurrencyConflict)
}

// load rebuilds current state from the latest snapshot plus newer events. A
// snapshot that fails to load or replay is discarded and the full stream is
// replayed instead; only a full replay failure is surfaced as inconsistency.
func (u *bookingUseCaseImpl) load(ctx context.Context, bookingID uuid.UUID) (*booking.State, error) {
	snap, err := u.snapshots.Load(ctx, bookingID)
	if err != nil {
		slog.Warn("snapshot load failed, replaying full stream", "booking_id", bookingID, "error", err)
		snap = nil
	}

	if snap != nil {
		events, err := u.events.LoadEvents(ctx, bookingID, snap.Sequence+1)
		if err != nil {
			return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		state, replayErr := booking.Replay(snap, events)
		if replayErr == nil {
			return u.checkExists(state)
		}
		slog.Warn("snapshot replay failed, replaying full stream", "booking_id", bookingID, "error", replayErr)
	}

	events, err := u.events.LoadEvents(ctx, bookingID, 1)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	state, err := booking.Replay(nil, events)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrReplayInconsistency)
	}
	return u.checkExists(state)
}

func (u *bookingUseCaseImpl) checkExists(state *booking.State) (*booking.State, error) {
	if state.Sequence == 0 {
		return nil, errs.ErrBookingNotFound
	}
	return state, nil
}

// afterAppend runs the post-commit bookkeeping: snapshotting, the directory
// projection and side-effect jobs. All of it is best-effort; the event is
// already durable and replay will converge regardless.
func (u *bookingUseCaseImpl) afterAppend(ctx context.Context, state *booking.State, ev booking.Event) {
	u.maybeSnapshot(ctx, state, ev)
	u.updateDirectory(ctx, state, ev)
	u.dispatchJobs(ctx, state, ev)
}

// Snapshots are cut every N events plus at the states that matter most for
// read traffic: CONFIRMED and everything terminal.
func (u *bookingUseCaseImpl) maybeSnapshot(ctx context.Context, state *booking.State, ev booking.Event) {
	every := u.cfg.SnapshotEveryN
	cut := (every > 0 && state.Sequence%every == 0) ||
		state.Status.IsTerminal() ||
		ev.Type == booking.EventConfirmed
	if !cut {
		return
	}
	if err := u.snapshots.Save(ctx, state); err != nil {
		slog.Warn("failed to save snapshot", "booking_id", state.BookingID, "sequence", state.Sequence, "error", err)
	}
}

func (u *bookingUseCaseImpl) updateDirectory(ctx context.Context, state *booking.State, ev booking.Event) {
	entry := DirectoryEntry{
		BookingID: state.BookingID,
		ClientID:  state.ClientID,
		StylistID: state.StylistID,
		Status:    state.Status,
		UpdatedAt: ev.Timestamp,
	}
	if at, err := state.BookingDateTime(); err == nil {
		entry.BookingAt = at
	}
	switch state.Status {
	case booking.StatusPending:
		deadline := state.CreatedAt.Add(u.cfg.RequestWindow)
		entry.RequestExpiresAt = &deadline
	case booking.StatusVerifyAcceptance:
		deadline := ev.Timestamp.Add(u.cfg.AcceptanceWindow)
		entry.AcceptanceExpiresAt = &deadline
	}
	if err := u.directory.Upsert(ctx, entry); err != nil {
		slog.Warn("failed to update booking directory", "booking_id", state.BookingID, "error", err)
	}
}

func (u *bookingUseCaseImpl) dispatchJobs(ctx context.Context, state *booking.State, ev booking.Event) {
	ref := jobs.BookingRef{BookingID: state.BookingID}

	switch ev.Type {
	case booking.EventCreated:
		u.enqueue(ctx, queue.QueueEmailNotifications, jobs.JobBookingCreatedEmail, ref, queue.Options{})
		u.enqueue(ctx, queue.QueueBookingExpiration, jobs.JobExpireBooking,
			jobs.ExpireBookingPayload{BookingID: state.BookingID, Reason: "request window elapsed"},
			queue.Options{Delay: u.cfg.RequestWindow})
		u.enqueue(ctx, queue.QueueCacheWarming, jobs.JobWarmBookingCache, ref, queue.Options{})

	case booking.EventAccepted:
		u.enqueue(ctx, queue.QueueEmailNotifications, jobs.JobBookingAcceptedEmail, ref, queue.Options{})
		u.enqueue(ctx, queue.QueueBookingExpiration, jobs.JobExpireBooking,
			jobs.ExpireBookingPayload{BookingID: state.BookingID, Reason: "acceptance window elapsed"},
			queue.Options{Delay: u.cfg.AcceptanceWindow})

	case booking.EventConfirmed:
		u.enqueue(ctx, queue.QueueEmailNotifications, jobs.JobBookingConfirmedEmail, ref, queue.Options{})
		u.enqueue(ctx, queue.QueuePayments, jobs.JobCapturePayment,
			jobs.CapturePaymentPayload{BookingID: state.BookingID, EventSequence: ev.Sequence, AmountCents: state.TotalPriceCents},
			queue.Options{})
		u.enqueue(ctx, queue.QueueCalendarSync, jobs.JobSyncCalendar,
			jobs.CalendarSyncPayload{BookingID: state.BookingID, Action: "create"}, queue.Options{})
		u.scheduleReminders(ctx, state)

	case booking.EventRescheduled:
		u.enqueue(ctx, queue.QueueCalendarSync, jobs.JobSyncCalendar,
			jobs.CalendarSyncPayload{BookingID: state.BookingID, Action: "update"}, queue.Options{})
		if state.Status == booking.StatusConfirmed {
			u.scheduleReminders(ctx, state)
		}

	case booking.EventCancelled:
		u.enqueue(ctx, queue.QueueEmailNotifications, jobs.JobBookingCancelledEmail, ref, queue.Options{})
		u.enqueue(ctx, queue.QueueCalendarSync, jobs.JobSyncCalendar,
			jobs.CalendarSyncPayload{BookingID: state.BookingID, Action: "delete"}, queue.Options{})
		u.enqueueRefund(ctx, state, ev)

	case booking.EventNoShow:
		u.enqueue(ctx, queue.QueueEmailNotifications, jobs.JobNoShowEmail, ref, queue.Options{})
		u.enqueueRefund(ctx, state, ev)

	case booking.EventExpired:
		u.enqueue(ctx, queue.QueueEmailNotifications, jobs.JobBookingExpiredEmail, ref, queue.Options{})

	case booking.EventCompleted:
		u.enqueue(ctx, queue.QueueCacheWarming, jobs.JobWarmBookingCache, ref, queue.Options{})
	}

	u.enqueue(ctx, queue.QueueAnalytics, jobs.JobTrackBookingEvent,
		jobs.TrackEventPayload{BookingID: state.BookingID, EventType: string(ev.Type), Sequence: ev.Sequence},
		queue.Options{})
}

// scheduleReminders queues the 24h, 2h and 30m reminders that still lie in
// the future. The reminder handler re-checks status at send time, so stale
// reminders against cancelled bookings fizzle harmlessly.
func (u *bookingUseCaseImpl) scheduleReminders(ctx context.Context, state *booking.State) {
	bookingAt, err := state.BookingDateTime()
	if err != nil {
		slog.Warn("cannot schedule reminders", "booking_id", state.BookingID, "error", err)
		return
	}

	now := u.clock.Now()
	for _, tier := range jobs.ReminderTiers {
		sendAt := bookingAt.Add(-tier.Lead)
		if !sendAt.After(now) {
			continue
		}
		// Pinned by (booking, tier) so the hourly sweep and this schedule
		// converge on one job row.
		u.enqueue(ctx, queue.QueueBookingReminders, jobs.JobBookingReminder,
			jobs.ReminderPayload{BookingID: state.BookingID, Tier: tier.Name},
			queue.Options{NotBefore: sendAt, JobID: jobs.ReminderJobID(state.BookingID, tier.Name)})
	}
}

func (u *bookingUseCaseImpl) enqueueRefund(ctx context.Context, state *booking.State, ev booking.Event) {
	if state.RefundCents == nil || *state.RefundCents <= 0 {
		return
	}
	if state.PaymentStatus != booking.PaymentPaid {
		return
	}
	u.enqueue(ctx, queue.QueuePayments, jobs.JobRefundPayment,
		jobs.RefundPaymentPayload{BookingID: state.BookingID, EventSequence: ev.Sequence, AmountCents: *state.RefundCents},
		queue.Options{})
}

func (u *bookingUseCaseImpl) enqueue(ctx context.Context, queueName, name string, payload any, opts queue.Options) {
	if _, err := u.enqueuer.Enqueue(ctx, queueName, name, payload, opts); err != nil {
		slog.Warn("failed to enqueue job", "queue", queueName, "job", name, "error", err)
	}
}
