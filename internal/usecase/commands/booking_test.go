//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"salonbook/internal/domain/booking"
	"salonbook/internal/infra"
	"salonbook/internal/infra/eventstore"
	"salonbook/internal/infra/queue"
	"salonbook/internal/infra/readstore"
	"salonbook/internal/infra/snapshotstore"
	"salonbook/internal/jobs"
	"salonbook/internal/pkg/clock"
	"salonbook/internal/pkg/config"
	"salonbook/internal/pkg/errs"
	"salonbook/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type enqueuedJob struct {
	Queue   string
	Name    string
	Payload any
	Opts    queue.Options
}

// stubEnqueuer records every enqueue without running anything.
type stubEnqueuer struct {
	calls []enqueuedJob
}

func (s *stubEnqueuer) Enqueue(_ context.Context, queueName, name string, payload any, opts queue.Options) (uuid.UUID, error) {
	s.calls = append(s.calls, enqueuedJob{Queue: queueName, Name: name, Payload: payload, Opts: opts})
	return uuid.New(), nil
}

func (s *stubEnqueuer) named(name string) []enqueuedJob {
	var out []enqueuedJob
	for _, c := range s.calls {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

type fixture struct {
	events    *eventstore.MemoryStore
	snapshots *snapshotstore.MemoryStore
	directory *readstore.MemoryBookingDirectory
	enqueuer  *stubEnqueuer
	clock     *clock.MockClock
	uc        commands.BookingCommands
	admin     commands.AdminCommands
}

// Fixed "now"; bookings in tests sit two days out unless stated otherwise.
var testNow = time.Date(2025, 11, 3, 9, 0, 0, 0, time.UTC)

func newFixture() *fixture {
	f := &fixture{
		events:    eventstore.NewMemoryStore(),
		snapshots: snapshotstore.NewMemoryStore(),
		directory: readstore.NewMemoryBookingDirectory(),
		enqueuer:  &stubEnqueuer{},
		clock:     clock.NewMockClock(testNow),
	}
	cfg := config.NewTestConfig().Booking
	f.uc = commands.NewBookingUseCase(f.events, f.snapshots, f.directory, f.enqueuer, cfg, f.clock)
	f.admin = commands.NewAdminUseCase(f.events, f.snapshots, f.directory, f.enqueuer, cfg, f.clock)
	return f
}

func validCreateInput() commands.CreateBookingInput {
	return commands.CreateBookingInput{
		ClientID:        uuid.New(),
		StylistID:       uuid.New(),
		ServiceID:       uuid.New(),
		BookingDate:     testNow.Add(48 * time.Hour).Format("2006-01-02"),
		BookingTime:     "09:00",
		DurationMinutes: 60,
		TotalPriceCents: 10000,
	}
}

func (f *fixture) create(t *testing.T, in commands.CreateBookingInput) *booking.State {
	t.Helper()
	state, err := f.uc.Create(context.Background(), in)
	require.NoError(t, err)
	return state
}

func (f *fixture) confirmed(t *testing.T, in commands.CreateBookingInput) *booking.State {
	t.Helper()
	ctx := context.Background()
	state := f.create(t, in)
	_, err := f.uc.Accept(ctx, state.BookingID, commands.Actor{ID: in.StylistID, Role: booking.RoleStylist})
	require.NoError(t, err)
	state, err = f.uc.Confirm(ctx, state.BookingID, commands.Actor{ID: in.ClientID, Role: booking.RoleClient}, "pm_test")
	require.NoError(t, err)
	return state
}

func TestCreateBooking(t *testing.T) {
	t.Run("creates a pending booking and queues the side effects", func(t *testing.T) {
		f := newFixture()
		in := validCreateInput()

		state := f.create(t, in)

		assert.Equal(t, booking.StatusPending, state.Status)
		assert.Equal(t, booking.PaymentUnpaid, state.PaymentStatus)
		assert.Equal(t, int64(1), state.Sequence)
		assert.Equal(t, in.ClientID, state.ClientID)

		require.Len(t, f.enqueuer.named(jobs.JobBookingCreatedEmail), 1)
		require.Len(t, f.enqueuer.named(jobs.JobWarmBookingCache), 1)
		require.Len(t, f.enqueuer.named(jobs.JobTrackBookingEvent), 1)

		expire := f.enqueuer.named(jobs.JobExpireBooking)
		require.Len(t, expire, 1)
		assert.Equal(t, queue.QueueBookingExpiration, expire[0].Queue)
		assert.Equal(t, config.NewTestConfig().Booking.RequestWindow, expire[0].Opts.Delay)
	})

	t.Run("rejects a duplicate booking ID", func(t *testing.T) {
		f := newFixture()
		in := validCreateInput()
		in.BookingID = uuid.New()

		f.create(t, in)
		_, err := f.uc.Create(context.Background(), in)
		require.ErrorIs(t, err, errs.ErrBookingExists)
	})

	t.Run("validates input", func(t *testing.T) {
		f := newFixture()
		cases := []struct {
			name   string
			mutate func(*commands.CreateBookingInput)
		}{
			{"missing client", func(in *commands.CreateBookingInput) { in.ClientID = uuid.Nil }},
			{"bad date", func(in *commands.CreateBookingInput) { in.BookingDate = "tomorrow" }},
			{"bad time", func(in *commands.CreateBookingInput) { in.BookingTime = "9am" }},
			{"zero duration", func(in *commands.CreateBookingInput) { in.DurationMinutes = 0 }},
			{"negative price", func(in *commands.CreateBookingInput) { in.TotalPriceCents = -1 }},
		}
		for _, c := range cases {
			t.Run(c.name, func(t *testing.T) {
				in := validCreateInput()
				c.mutate(&in)
				_, err := f.uc.Create(context.Background(), in)
				require.ErrorIs(t, err, commands.ErrDomainValidation)
			})
		}
	})
}

func TestBookingLifecycle(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path runs pending through completed", func(t *testing.T) {
		f := newFixture()
		in := validCreateInput()
		stylist := commands.Actor{ID: in.StylistID, Role: booking.RoleStylist}
		client := commands.Actor{ID: in.ClientID, Role: booking.RoleClient}

		state := f.create(t, in)

		state, err := f.uc.Accept(ctx, state.BookingID, stylist)
		require.NoError(t, err)
		assert.Equal(t, booking.StatusVerifyAcceptance, state.Status)

		state, err = f.uc.Confirm(ctx, state.BookingID, client, "pm_test")
		require.NoError(t, err)
		assert.Equal(t, booking.StatusConfirmed, state.Status)

		state, err = f.uc.Start(ctx, state.BookingID, stylist)
		require.NoError(t, err)
		assert.Equal(t, booking.StatusInProgress, state.Status)

		state, err = f.uc.Complete(ctx, state.BookingID, stylist)
		require.NoError(t, err)
		assert.Equal(t, booking.StatusCompleted, state.Status)
		require.NotNil(t, state.ProviderPayoutCents)
		assert.Equal(t, in.TotalPriceCents, *state.ProviderPayoutCents)

		// Confirmation queues the capture and all three reminder tiers;
		// the booking sits 48h out so none are past due.
		require.Len(t, f.enqueuer.named(jobs.JobCapturePayment), 1)
		assert.Len(t, f.enqueuer.named(jobs.JobBookingReminder), 3)
	})

	t.Run("past-due reminder tiers are skipped", func(t *testing.T) {
		f := newFixture()
		in := validCreateInput()
		in.BookingDate = testNow.Format("2006-01-02")
		in.BookingTime = testNow.Add(3 * time.Hour).Format("15:04")

		f.confirmed(t, in)

		// 24h lead already passed; 2h and 30m remain.
		reminders := f.enqueuer.named(jobs.JobBookingReminder)
		require.Len(t, reminders, 2)
		for _, r := range reminders {
			assert.True(t, r.Opts.NotBefore.After(testNow))
		}
	})

	t.Run("commands out of order are invalid transitions", func(t *testing.T) {
		f := newFixture()
		in := validCreateInput()
		state := f.create(t, in)

		_, err := f.uc.Start(ctx, state.BookingID, commands.Actor{ID: in.StylistID, Role: booking.RoleStylist})
		require.ErrorIs(t, err, errs.ErrInvalidTransition)

		_, err = f.uc.Confirm(ctx, state.BookingID, commands.Actor{ID: in.ClientID, Role: booking.RoleClient}, "")
		require.ErrorIs(t, err, errs.ErrInvalidTransition)
	})

	t.Run("unknown booking", func(t *testing.T) {
		f := newFixture()
		_, err := f.uc.Accept(ctx, uuid.New(), commands.Actor{ID: uuid.New(), Role: booking.RoleStylist})
		require.ErrorIs(t, err, errs.ErrBookingNotFound)
	})

	t.Run("actors cannot touch other people's bookings", func(t *testing.T) {
		f := newFixture()
		in := validCreateInput()
		state := f.create(t, in)

		_, err := f.uc.Accept(ctx, state.BookingID, commands.Actor{ID: uuid.New(), Role: booking.RoleStylist})
		require.ErrorIs(t, err, errs.ErrActorNotAllowed)

		_, err = f.uc.Cancel(ctx, commands.CancelBookingInput{
			BookingID: state.BookingID,
			Actor:     commands.Actor{ID: uuid.New(), Role: booking.RoleClient},
		})
		require.ErrorIs(t, err, errs.ErrActorNotAllowed)
	})

	t.Run("confirmation cuts a snapshot", func(t *testing.T) {
		f := newFixture()
		state := f.confirmed(t, validCreateInput())

		snap, err := f.snapshots.Load(ctx, state.BookingID)
		require.NoError(t, err)
		require.NotNil(t, snap)
		assert.Equal(t, state.Sequence, snap.Sequence)
		assert.Equal(t, booking.StatusConfirmed, snap.Status)
	})
}

func TestCancelBooking(t *testing.T) {
	ctx := context.Background()

	t.Run("client with enough notice gets a full refund", func(t *testing.T) {
		f := newFixture()
		in := validCreateInput()
		state := f.confirmed(t, in)

		state, err := f.uc.Cancel(ctx, commands.CancelBookingInput{
			BookingID: state.BookingID,
			Actor:     commands.Actor{ID: in.ClientID, Role: booking.RoleClient},
			Reason:    "change of plans",
		})
		require.NoError(t, err)
		assert.Equal(t, booking.StatusCancelled, state.Status)
		require.NotNil(t, state.RefundCents)
		assert.Equal(t, in.TotalPriceCents, *state.RefundCents)
	})

	t.Run("client inside twelve hours forfeits the payment", func(t *testing.T) {
		f := newFixture()
		in := validCreateInput()
		in.BookingDate = testNow.Format("2006-01-02")
		in.BookingTime = testNow.Add(6 * time.Hour).Format("15:04")
		state := f.confirmed(t, in)

		state, err := f.uc.Cancel(ctx, commands.CancelBookingInput{
			BookingID: state.BookingID,
			Actor:     commands.Actor{ID: in.ClientID, Role: booking.RoleClient},
		})
		require.NoError(t, err)
		assert.Equal(t, booking.StatusCancelled, state.Status)
		require.NotNil(t, state.RefundCents)
		assert.Zero(t, *state.RefundCents)
	})

	t.Run("stylist with notice cancels outright with a penalty", func(t *testing.T) {
		f := newFixture()
		in := validCreateInput()
		state := f.confirmed(t, in)

		state, err := f.uc.Cancel(ctx, commands.CancelBookingInput{
			BookingID: state.BookingID,
			Actor:     commands.Actor{ID: in.StylistID, Role: booking.RoleStylist},
			Reason:    "double booked",
		})
		require.NoError(t, err)
		assert.Equal(t, booking.StatusCancelled, state.Status)
		require.NotNil(t, state.RefundCents)
		assert.Equal(t, in.TotalPriceCents, *state.RefundCents)
	})

	t.Run("stylist inside three hours is parked for admin approval", func(t *testing.T) {
		f := newFixture()
		in := validCreateInput()
		in.BookingDate = testNow.Format("2006-01-02")
		in.BookingTime = testNow.Add(2 * time.Hour).Format("15:04")
		state := f.confirmed(t, in)

		state, err := f.uc.Cancel(ctx, commands.CancelBookingInput{
			BookingID: state.BookingID,
			Actor:     commands.Actor{ID: in.StylistID, Role: booking.RoleStylist},
			Reason:    "sick",
		})
		require.NoError(t, err)
		assert.Equal(t, booking.StatusPendingAdminApproval, state.Status)
		require.NotNil(t, state.PendingCancellation)
		assert.Equal(t, booking.StatusConfirmed, state.PendingCancellation.PriorStatus)
		assert.Equal(t, in.TotalPriceCents, state.PendingCancellation.RefundCents)

		// Parked, not cancelled: no cancellation email yet.
		assert.Empty(t, f.enqueuer.named(jobs.JobBookingCancelledEmail))
	})

	t.Run("admin override cancels immediately inside the approval window", func(t *testing.T) {
		f := newFixture()
		in := validCreateInput()
		in.BookingDate = testNow.Format("2006-01-02")
		in.BookingTime = testNow.Add(2 * time.Hour).Format("15:04")
		state := f.confirmed(t, in)

		adminID := uuid.New()
		state, err := f.uc.Cancel(ctx, commands.CancelBookingInput{
			BookingID: state.BookingID,
			Actor:     commands.Actor{ID: adminID, Role: booking.RoleAdmin},
			Reason:    "stylist emergency",
			Override:  &booking.AdminOverride{AdminID: adminID, RefundCents: 5000},
		})
		require.NoError(t, err)
		assert.Equal(t, booking.StatusCancelled, state.Status)
		require.NotNil(t, state.RefundCents)
		assert.Equal(t, int64(5000), *state.RefundCents)
	})

	t.Run("refund job fires only when the payment was captured", func(t *testing.T) {
		f := newFixture()
		in := validCreateInput()
		state := f.confirmed(t, in)

		_, err := f.uc.RecordPaymentCaptured(ctx, state.BookingID, in.TotalPriceCents, "cap_1", "key_1")
		require.NoError(t, err)

		_, err = f.uc.Cancel(ctx, commands.CancelBookingInput{
			BookingID: state.BookingID,
			Actor:     commands.Actor{ID: in.ClientID, Role: booking.RoleClient},
		})
		require.NoError(t, err)

		refunds := f.enqueuer.named(jobs.JobRefundPayment)
		require.Len(t, refunds, 1)
		payload, ok := refunds[0].Payload.(jobs.RefundPaymentPayload)
		require.True(t, ok)
		assert.Equal(t, in.TotalPriceCents, payload.AmountCents)
	})

	t.Run("cancelled booking cannot be cancelled again", func(t *testing.T) {
		f := newFixture()
		in := validCreateInput()
		state := f.confirmed(t, in)

		_, err := f.uc.Cancel(ctx, commands.CancelBookingInput{
			BookingID: state.BookingID,
			Actor:     commands.Actor{ID: in.ClientID, Role: booking.RoleClient},
		})
		require.NoError(t, err)

		_, err = f.uc.Cancel(ctx, commands.CancelBookingInput{
			BookingID: state.BookingID,
			Actor:     commands.Actor{ID: in.ClientID, Role: booking.RoleClient},
		})
		require.ErrorIs(t, err, errs.ErrInvalidTransition)
	})
}

func TestAdminCancellationDecisions(t *testing.T) {
	ctx := context.Background()

	park := func(t *testing.T, f *fixture, in commands.CreateBookingInput) *booking.State {
		t.Helper()
		in.BookingDate = testNow.Format("2006-01-02")
		in.BookingTime = testNow.Add(2 * time.Hour).Format("15:04")
		state := f.confirmed(t, in)
		state, err := f.uc.Cancel(ctx, commands.CancelBookingInput{
			BookingID: state.BookingID,
			Actor:     commands.Actor{ID: in.StylistID, Role: booking.RoleStylist},
			Reason:    "sick",
		})
		require.NoError(t, err)
		require.Equal(t, booking.StatusPendingAdminApproval, state.Status)
		return state
	}

	t.Run("approval applies the parked outcome", func(t *testing.T) {
		f := newFixture()
		in := validCreateInput()
		state := park(t, f, in)

		adminID := uuid.New()
		state, err := f.admin.ApproveCancellation(ctx, state.BookingID, adminID, "confirmed with stylist")
		require.NoError(t, err)
		assert.Equal(t, booking.StatusCancelled, state.Status)
		assert.Nil(t, state.PendingCancellation)
		require.NotNil(t, state.RefundCents)
		assert.Equal(t, in.TotalPriceCents, *state.RefundCents)
		require.NotNil(t, state.Override)
		assert.Equal(t, adminID, state.Override.AdminID)
	})

	t.Run("rejection restores the prior status", func(t *testing.T) {
		f := newFixture()
		in := validCreateInput()
		state := park(t, f, in)

		state, err := f.admin.RejectCancellation(ctx, state.BookingID, uuid.New(), "not justified")
		require.NoError(t, err)
		assert.Equal(t, booking.StatusConfirmed, state.Status)
		assert.Nil(t, state.PendingCancellation)
	})

	t.Run("decisions require a parked request", func(t *testing.T) {
		f := newFixture()
		in := validCreateInput()
		state := f.confirmed(t, in)

		_, err := f.admin.ApproveCancellation(ctx, state.BookingID, uuid.New(), "")
		require.ErrorIs(t, err, errs.ErrInvalidTransition)
	})
}

func TestMarkNoShow(t *testing.T) {
	ctx := context.Background()

	t.Run("client no-show splits the payment", func(t *testing.T) {
		f := newFixture()
		in := validCreateInput()
		state := f.confirmed(t, in)

		state, err := f.uc.MarkNoShow(ctx, commands.MarkNoShowInput{
			BookingID: state.BookingID,
			Actor:     commands.Actor{ID: in.StylistID, Role: booking.RoleStylist},
			Party:     booking.NoShowClient,
		})
		require.NoError(t, err)
		assert.Equal(t, booking.StatusNoShow, state.Status)
		assert.Equal(t, booking.NoShowClient, state.NoShowParty)
		require.NotNil(t, state.RefundCents)
		require.NotNil(t, state.ProviderPayoutCents)
		assert.Equal(t, in.TotalPriceCents, *state.RefundCents+*state.ProviderPayoutCents)
	})

	t.Run("stylist no-show refunds everything", func(t *testing.T) {
		f := newFixture()
		in := validCreateInput()
		state := f.confirmed(t, in)

		state, err := f.uc.MarkNoShow(ctx, commands.MarkNoShowInput{
			BookingID: state.BookingID,
			Actor:     commands.Actor{ID: in.ClientID, Role: booking.RoleClient},
			Party:     booking.NoShowStylist,
		})
		require.NoError(t, err)
		require.NotNil(t, state.RefundCents)
		assert.Equal(t, in.TotalPriceCents, *state.RefundCents)
		require.NotNil(t, state.ProviderPayoutCents)
		assert.Zero(t, *state.ProviderPayoutCents)
	})
}

func TestRescheduleBooking(t *testing.T) {
	ctx := context.Background()

	t.Run("reschedule keeps the status and replaces the slot", func(t *testing.T) {
		f := newFixture()
		in := validCreateInput()
		state := f.confirmed(t, in)

		newDate := testNow.Add(96 * time.Hour).Format("2006-01-02")
		state, err := f.uc.Reschedule(ctx, commands.RescheduleInput{
			BookingID: state.BookingID,
			Actor:     commands.Actor{ID: in.ClientID, Role: booking.RoleClient},
			NewDate:   newDate,
			NewTime:   "14:30",
		})
		require.NoError(t, err)
		assert.Equal(t, booking.StatusConfirmed, state.Status)
		assert.Equal(t, newDate, state.BookingDate)
		assert.Equal(t, "14:30", state.BookingTime)
	})

	t.Run("rejects malformed slots before loading anything", func(t *testing.T) {
		f := newFixture()
		_, err := f.uc.Reschedule(ctx, commands.RescheduleInput{
			BookingID: uuid.New(),
			Actor:     commands.Actor{ID: uuid.New(), Role: booking.RoleClient},
			NewDate:   "soon",
			NewTime:   "14:30",
		})
		require.ErrorIs(t, err, commands.ErrDomainValidation)
	})
}

func TestExpireBooking(t *testing.T) {
	ctx := context.Background()

	t.Run("pending booking expires", func(t *testing.T) {
		f := newFixture()
		state := f.create(t, validCreateInput())

		state, err := f.uc.Expire(ctx, state.BookingID, "request window elapsed")
		require.NoError(t, err)
		assert.Equal(t, booking.StatusExpired, state.Status)
		require.Len(t, f.enqueuer.named(jobs.JobBookingExpiredEmail), 1)
	})

	t.Run("confirmed booking does not expire", func(t *testing.T) {
		f := newFixture()
		state := f.confirmed(t, validCreateInput())

		_, err := f.uc.Expire(ctx, state.BookingID, "request window elapsed")
		require.ErrorIs(t, err, errs.ErrInvalidTransition)
	})
}

func TestRecordPayment(t *testing.T) {
	ctx := context.Background()

	t.Run("capture is idempotent", func(t *testing.T) {
		f := newFixture()
		in := validCreateInput()
		state := f.confirmed(t, in)

		state, err := f.uc.RecordPaymentCaptured(ctx, state.BookingID, in.TotalPriceCents, "cap_1", "key_1")
		require.NoError(t, err)
		assert.Equal(t, booking.PaymentPaid, state.PaymentStatus)
		seq := state.Sequence

		state, err = f.uc.RecordPaymentCaptured(ctx, state.BookingID, in.TotalPriceCents, "cap_1", "key_1")
		require.NoError(t, err)
		assert.Equal(t, seq, state.Sequence, "retried capture must not append")
	})

	t.Run("full refund marks the payment refunded", func(t *testing.T) {
		f := newFixture()
		in := validCreateInput()
		state := f.confirmed(t, in)

		_, err := f.uc.RecordPaymentCaptured(ctx, state.BookingID, in.TotalPriceCents, "cap_1", "key_1")
		require.NoError(t, err)

		state, err = f.uc.RecordPaymentRefunded(ctx, state.BookingID, in.TotalPriceCents, "ref_1", "key_2")
		require.NoError(t, err)
		assert.Equal(t, booking.PaymentRefunded, state.PaymentStatus)

		// Retried refund job no-ops once fully refunded.
		seq := state.Sequence
		state, err = f.uc.RecordPaymentRefunded(ctx, state.BookingID, in.TotalPriceCents, "ref_1", "key_2")
		require.NoError(t, err)
		assert.Equal(t, seq, state.Sequence)
	})

	t.Run("refund against an unpaid booking is a policy violation", func(t *testing.T) {
		f := newFixture()
		state := f.confirmed(t, validCreateInput())

		_, err := f.uc.RecordPaymentRefunded(ctx, state.BookingID, 100, "ref_1", "key_1")
		require.ErrorIs(t, err, errs.ErrPolicyViolation)
	})
}

func TestRecordReminderSent(t *testing.T) {
	ctx := context.Background()

	t.Run("records against a confirmed booking", func(t *testing.T) {
		f := newFixture()
		state := f.confirmed(t, validCreateInput())
		seq := state.Sequence

		state, err := f.uc.RecordReminderSent(ctx, state.BookingID, jobs.ReminderTier24h)
		require.NoError(t, err)
		assert.Equal(t, seq+1, state.Sequence)
	})

	t.Run("no-ops once the booking left the reminder states", func(t *testing.T) {
		f := newFixture()
		in := validCreateInput()
		state := f.confirmed(t, in)

		state, err := f.uc.Cancel(ctx, commands.CancelBookingInput{
			BookingID: state.BookingID,
			Actor:     commands.Actor{ID: in.ClientID, Role: booking.RoleClient},
		})
		require.NoError(t, err)
		seq := state.Sequence

		state, err = f.uc.RecordReminderSent(ctx, state.BookingID, jobs.ReminderTier2h)
		require.NoError(t, err)
		assert.Equal(t, seq, state.Sequence)
	})
}

// conflictingStore injects a competing append right before the first write,
// forcing the command loop onto its retry path.
type conflictingStore struct {
	commands.EventStore
	clk      clock.Clock
	stylist  uuid.UUID
	injected bool
}

func (s *conflictingStore) Append(ctx context.Context, expectedSequence int64, ev booking.Event) (booking.Event, error) {
	if !s.injected && ev.Type == booking.EventCancelled {
		s.injected = true
		_, err := s.EventStore.Append(ctx, expectedSequence, booking.Event{
			BookingID: ev.BookingID,
			Type:      booking.EventAccepted,
			Payload:   booking.AcceptedPayload{AcceptedAt: s.clk.Now()},
			ActorID:   s.stylist,
			ActorRole: booking.RoleStylist,
			Timestamp: s.clk.Now(),
		})
		if err != nil {
			return booking.Event{}, err
		}
	}
	return s.EventStore.Append(ctx, expectedSequence, ev)
}

// alwaysConflict refuses every append with a conflict.
type alwaysConflict struct {
	commands.EventStore
}

func (s *alwaysConflict) Append(ctx context.Context, expectedSequence int64, ev booking.Event) (booking.Event, error) {
	if ev.Type == booking.EventCreated {
		return s.EventStore.Append(ctx, expectedSequence, ev)
	}
	return booking.Event{}, infra.WrapRepoErr("expected sequence is stale", nil, infra.KindConflict)
}

func TestOptimisticConcurrency(t *testing.T) {
	ctx := context.Background()
	cfg := config.NewTestConfig().Booking

	t.Run("a conflicting append triggers a reload and retry", func(t *testing.T) {
		f := newFixture()
		in := validCreateInput()
		state := f.create(t, in)

		store := &conflictingStore{EventStore: f.events, clk: f.clock, stylist: in.StylistID}
		uc := commands.NewBookingUseCase(store, f.snapshots, f.directory, f.enqueuer, cfg, f.clock)

		// The injected accept moves the booking to VERIFY_ACCEPTANCE;
		// cancel is still legal there, so the retry lands at sequence 3.
		state, err := uc.Cancel(ctx, commands.CancelBookingInput{
			BookingID: state.BookingID,
			Actor:     commands.Actor{ID: in.ClientID, Role: booking.RoleClient},
		})
		require.NoError(t, err)
		assert.Equal(t, booking.StatusCancelled, state.Status)
		assert.Equal(t, int64(3), state.Sequence)
	})

	t.Run("retry budget exhaustion surfaces a concurrency conflict", func(t *testing.T) {
		f := newFixture()
		in := validCreateInput()

		uc := commands.NewBookingUseCase(&alwaysConflict{EventStore: f.events}, f.snapshots, f.directory, f.enqueuer, cfg, f.clock)
		state, err := uc.Create(ctx, in)
		require.NoError(t, err)

		_, err = uc.Accept(ctx, state.BookingID, commands.Actor{ID: in.StylistID, Role: booking.RoleStylist})
		require.ErrorIs(t, err, errs.ErrConcurrencyConflict)
	})
}
