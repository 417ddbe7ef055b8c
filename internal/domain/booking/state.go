package booking

import (
	"time"

	"salonbook/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrSequenceGap       = errs.New("event sequence gap")
	ErrNotCreated        = errs.New("first event must be CREATED")
	ErrAlreadyCreated    = errs.New("booking already created")
	ErrAmountsDoNotSplit = errs.New("refund and payout do not sum to total price")
)

// CancelledBy captures who cancelled a booking.
type CancelledBy struct {
	UserID uuid.UUID
	Role   ActorRole
}

// PendingCancellation is a cancellation parked for admin approval, with the
// outcome computed at request time and the status to restore on rejection.
type PendingCancellation struct {
	RequestedBy       uuid.UUID
	RequestedByRole   ActorRole
	Reason            string
	RequestedAt       time.Time
	RefundCents       int64
	PenaltyCents      int64
	HoursUntilBooking float64
	PriorStatus       Status
}

// State is the materialized view of a booking produced by replaying its event
// log. It is what snapshots persist and what the state machine validates
// commands against.
type State struct {
	BookingID       uuid.UUID
	ClientID        uuid.UUID
	StylistID       uuid.UUID
	ServiceID       uuid.UUID
	BookingDate     string
	BookingTime     string
	DurationMinutes int
	TotalPriceCents int64
	Note            string

	Status        Status
	PaymentStatus PaymentStatus

	CancelledBy         *CancelledBy
	CancellationReason  string
	CancelledAt         *time.Time
	Override            *AdminOverride
	PendingCancellation *PendingCancellation

	NoShowParty         NoShowParty
	RefundCents         *int64
	ProviderPayoutCents *int64

	// Sequence is the last event folded into this state.
	Sequence  int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// BookingDateTime parses the stored date and time into a single instant.
// Date is "2006-01-02", time is "15:04" or "15:04:05".
func (s *State) BookingDateTime() (time.Time, error) {
	layouts := []string{"2006-01-02T15:04:05", "2006-01-02T15:04"}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s.BookingDate+"T"+s.BookingTime); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errs.New("invalid booking date/time: " + s.BookingDate + " " + s.BookingTime)
}

// Apply folds one event into the state. Events must arrive in sequence order
// with no gaps; anything else is a replay inconsistency the caller must treat
// as corruption, not skip over.
func (s *State) Apply(ev Event) error {
	if ev.Sequence != s.Sequence+1 {
		return errs.Mark(errs.New("expected sequence"), ErrSequenceGap)
	}
	if s.Sequence == 0 && ev.Type != EventCreated {
		return ErrNotCreated
	}

	switch p := ev.Payload.(type) {
	case CreatedPayload:
		if s.Sequence != 0 {
			return ErrAlreadyCreated
		}
		s.BookingID = ev.BookingID
		s.ClientID = p.ClientID
		s.StylistID = p.StylistID
		s.ServiceID = p.ServiceID
		s.BookingDate = p.BookingDate
		s.BookingTime = p.BookingTime
		s.DurationMinutes = p.DurationMinutes
		s.TotalPriceCents = p.TotalPriceCents
		s.Note = p.Note
		s.Status = StatusPending
		s.PaymentStatus = PaymentUnpaid
		s.CreatedAt = ev.Timestamp

	case AcceptedPayload:
		s.Status = StatusVerifyAcceptance

	case ConfirmedPayload:
		s.Status = StatusConfirmed

	case StartedPayload:
		s.Status = StatusInProgress

	case CompletedPayload:
		s.Status = StatusCompleted
		payout := p.StylistPayoutCents
		s.ProviderPayoutCents = &payout

	case CancellationRequestedPayload:
		s.Status = StatusPendingAdminApproval
		s.PendingCancellation = &PendingCancellation{
			RequestedBy:       p.RequestedBy,
			RequestedByRole:   p.RequestedByRole,
			Reason:            p.Reason,
			RequestedAt:       p.RequestedAt,
			RefundCents:       p.RefundCents,
			PenaltyCents:      p.PenaltyCents,
			HoursUntilBooking: p.HoursUntilBooking,
			PriorStatus:       p.PriorStatus,
		}

	case CancellationRejectedPayload:
		s.Status = p.RestoredStatus
		s.PendingCancellation = nil

	case CancelledPayload:
		s.Status = StatusCancelled
		s.PendingCancellation = nil
		s.CancelledBy = &CancelledBy{UserID: p.CancelledBy, Role: p.CancelledByRole}
		s.CancellationReason = p.Reason
		at := p.CancelledAt
		s.CancelledAt = &at
		s.Override = p.Override
		refund := p.RefundCents
		s.RefundCents = &refund

	case RescheduledPayload:
		s.BookingDate = p.NewDate
		s.BookingTime = p.NewTime

	case NoShowPayload:
		if p.RefundCents+p.PayoutCents != s.TotalPriceCents {
			return ErrAmountsDoNotSplit
		}
		s.Status = StatusNoShow
		s.NoShowParty = p.Party
		refund := p.RefundCents
		payout := p.PayoutCents
		s.RefundCents = &refund
		s.ProviderPayoutCents = &payout

	case ExpiredPayload:
		s.Status = StatusExpired

	case PaymentReceivedPayload:
		s.PaymentStatus = PaymentPaid

	case PaymentRefundedPayload:
		if p.AmountCents >= s.TotalPriceCents {
			s.PaymentStatus = PaymentRefunded
		} else {
			s.PaymentStatus = PaymentPartiallyRefunded
		}

	case ReminderSentPayload:
		// Audit-only; no state change.

	default:
		return errs.Mark(errs.New("event type "+string(ev.Type)), ErrUnknownEventType)
	}

	s.Sequence = ev.Sequence
	s.UpdatedAt = ev.Timestamp
	return nil
}

// Replay left-folds events on top of base. A nil base starts from the empty
// state (sequence 0). The input must be ordered and contiguous with base.
func Replay(base *State, events []Event) (*State, error) {
	state := &State{}
	if base != nil {
		copied := *base
		state = &copied
	}
	for _, ev := range events {
		if err := state.Apply(ev); err != nil {
			return nil, err
		}
	}
	return state, nil
}
