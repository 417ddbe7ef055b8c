package queries

import (
	"context"
	"encoding/json"
	"time"

	"salonbook/internal/domain/booking"
	"salonbook/internal/pkg/clock"
	"salonbook/internal/pkg/errs"

	"github.com/google/uuid"
)

// Read models (DTO for read side)
type BookingView struct {
	ID              uuid.UUID `json:"id"`
	ClientID        uuid.UUID `json:"client_id"`
	StylistID       uuid.UUID `json:"stylist_id"`
	ServiceID       uuid.UUID `json:"service_id"`
	BookingDate     string    `json:"booking_date"`
	BookingTime     string    `json:"booking_time"`
	DurationMinutes int       `json:"duration_minutes"`
	TotalPriceCents int64     `json:"total_price_cents"`
	Note            string    `json:"note,omitempty"`
	Status          string    `json:"status"`
	PaymentStatus   string    `json:"payment_status"`

	CancelledBy        *uuid.UUID `json:"cancelled_by,omitempty"`
	CancelledByRole    *string    `json:"cancelled_by_role,omitempty"`
	CancellationReason string     `json:"cancellation_reason,omitempty"`
	CancelledAt        *time.Time `json:"cancelled_at,omitempty"`

	NoShowParty         string `json:"no_show_party,omitempty"`
	RefundCents         *int64 `json:"refund_cents,omitempty"`
	ProviderPayoutCents *int64 `json:"provider_payout_cents,omitempty"`

	PendingCancellation *PendingCancellationView `json:"pending_cancellation,omitempty"`

	Sequence  int64     `json:"sequence"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type PendingCancellationView struct {
	RequestedBy       uuid.UUID `json:"requested_by"`
	RequestedByRole   string    `json:"requested_by_role"`
	Reason            string    `json:"reason,omitempty"`
	RequestedAt       time.Time `json:"requested_at"`
	RefundCents       int64     `json:"refund_cents"`
	PenaltyCents      int64     `json:"penalty_cents"`
	HoursUntilBooking float64   `json:"hours_until_booking"`
}

type BookingEventView struct {
	Sequence  int64           `json:"sequence"`
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload"`
	ActorID   uuid.UUID       `json:"actor_id"`
	ActorRole string          `json:"actor_role"`
	Timestamp time.Time       `json:"timestamp"`
}

type BookingSummary struct {
	ID        uuid.UUID `json:"id"`
	ClientID  uuid.UUID `json:"client_id"`
	StylistID uuid.UUID `json:"stylist_id"`
	Status    string    `json:"status"`
	BookingAt time.Time `json:"booking_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CancellationPreview shows a caller what cancelling right now would cost,
// without changing anything.
type CancellationPreview struct {
	RefundCents           int64   `json:"refund_cents"`
	PenaltyCents          int64   `json:"penalty_cents"`
	RequiresAdminApproval bool    `json:"requires_admin_approval"`
	HoursUntilBooking     float64 `json:"hours_until_booking"`
}

// ExpirationCandidate is a booking the directory believes has outstayed its
// window. The sweep re-validates against a fresh replay before expiring.
type ExpirationCandidate struct {
	BookingID uuid.UUID
	Reason    string
}

type BookingQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	History(ctx context.Context, id uuid.UUID) ([]*BookingEventView, error)
	PreviewCancellation(ctx context.Context, id uuid.UUID, role booking.ActorRole) (*CancellationPreview, error)
	ListByClient(ctx context.Context, clientID uuid.UUID, limit int) ([]*BookingSummary, error)
	ListByStylist(ctx context.Context, stylistID uuid.UUID, limit int) ([]*BookingSummary, error)
}

type EventReader interface {
	LoadEvents(ctx context.Context, bookingID uuid.UUID, fromSequence int64) ([]booking.Event, error)
}

type SnapshotReader interface {
	Load(ctx context.Context, bookingID uuid.UUID) (*booking.State, error)
}

type DirectoryReader interface {
	FindExpirationCandidates(ctx context.Context, now time.Time) ([]ExpirationCandidate, error)
	FindUpcomingConfirmed(ctx context.Context, from, until time.Time) ([]*BookingSummary, error)
	CountByStatus(ctx context.Context, since time.Time) (map[string]int64, error)
	ListByClient(ctx context.Context, clientID uuid.UUID, limit int) ([]*BookingSummary, error)
	ListByStylist(ctx context.Context, stylistID uuid.UUID, limit int) ([]*BookingSummary, error)
}

type bookingQueriesImpl struct {
	events    EventReader
	snapshots SnapshotReader
	directory DirectoryReader
	clock     clock.Clock
}

func NewBookingQueries(events EventReader, snapshots SnapshotReader, directory DirectoryReader, clock clock.Clock) BookingQueries {
	return &bookingQueriesImpl{
		events:    events,
		snapshots: snapshots,
		directory: directory,
		clock:     clock,
	}
}

func (q *bookingQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*BookingView, error) {
	state, err := q.loadState(ctx, id)
	if err != nil {
		return nil, err
	}
	return NewBookingView(state), nil
}

func (q *bookingQueriesImpl) History(ctx context.Context, id uuid.UUID) ([]*BookingEventView, error) {
	events, err := q.events.LoadEvents(ctx, id, 1)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if len(events) == 0 {
		return nil, errs.ErrBookingNotFound
	}

	out := make([]*BookingEventView, 0, len(events))
	for _, ev := range events {
		raw, err := booking.MarshalPayload(ev.Payload)
		if err != nil {
			return nil, errs.Mark(err, errs.ErrReplayInconsistency)
		}
		out = append(out, &BookingEventView{
			Sequence:  ev.Sequence,
			Type:      string(ev.Type),
			Payload:   raw,
			ActorID:   ev.ActorID,
			ActorRole: string(ev.ActorRole),
			Timestamp: ev.Timestamp,
		})
	}
	return out, nil
}

func (q *bookingQueriesImpl) PreviewCancellation(ctx context.Context, id uuid.UUID, role booking.ActorRole) (*CancellationPreview, error) {
	state, err := q.loadState(ctx, id)
	if err != nil {
		return nil, err
	}
	if !booking.CanTransition(state.Status, booking.CommandCancel) {
		return nil, errs.Mark(errs.New("booking is not cancellable"), errs.ErrInvalidTransition)
	}

	bookingAt, err := state.BookingDateTime()
	if err != nil {
		return nil, errs.Mark(err, errs.ErrReplayInconsistency)
	}
	outcome, err := booking.EvaluateCancellation(bookingAt, q.clock.Now(), role, state.TotalPriceCents, nil)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrPolicyViolation)
	}
	return &CancellationPreview{
		RefundCents:           outcome.RefundCents,
		PenaltyCents:          outcome.PenaltyCents,
		RequiresAdminApproval: outcome.RequiresAdminApproval,
		HoursUntilBooking:     outcome.HoursUntilBooking,
	}, nil
}

func (q *bookingQueriesImpl) ListByClient(ctx context.Context, clientID uuid.UUID, limit int) ([]*BookingSummary, error) {
	if limit <= 0 {
		limit = 50
	}
	return q.directory.ListByClient(ctx, clientID, limit)
}

func (q *bookingQueriesImpl) ListByStylist(ctx context.Context, stylistID uuid.UUID, limit int) ([]*BookingSummary, error) {
	if limit <= 0 {
		limit = 50
	}
	return q.directory.ListByStylist(ctx, stylistID, limit)
}

func (q *bookingQueriesImpl) loadState(ctx context.Context, id uuid.UUID) (*booking.State, error) {
	snap, err := q.snapshots.Load(ctx, id)
	if err != nil {
		snap = nil
	}

	from := int64(1)
	if snap != nil {
		from = snap.Sequence + 1
	}
	events, err := q.events.LoadEvents(ctx, id, from)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	state, err := booking.Replay(snap, events)
	if err != nil {
		// The snapshot may be stale or corrupt; the log is the truth.
		events, fullErr := q.events.LoadEvents(ctx, id, 1)
		if fullErr != nil {
			return nil, errs.Mark(fullErr, errs.ErrDatabaseOperationFailed)
		}
		state, err = booking.Replay(nil, events)
		if err != nil {
			return nil, errs.Mark(err, errs.ErrReplayInconsistency)
		}
	}
	if state.Sequence == 0 {
		return nil, errs.ErrBookingNotFound
	}
	return state, nil
}

// NewBookingView projects replayed state into the read DTO. Command handlers
// use it too, so a write returns the same shape a read does.
func NewBookingView(state *booking.State) *BookingView {
	view := &BookingView{
		ID:                  state.BookingID,
		ClientID:            state.ClientID,
		StylistID:           state.StylistID,
		ServiceID:           state.ServiceID,
		BookingDate:         state.BookingDate,
		BookingTime:         state.BookingTime,
		DurationMinutes:     state.DurationMinutes,
		TotalPriceCents:     state.TotalPriceCents,
		Note:                state.Note,
		Status:              string(state.Status),
		PaymentStatus:       string(state.PaymentStatus),
		CancellationReason:  state.CancellationReason,
		CancelledAt:         state.CancelledAt,
		NoShowParty:         string(state.NoShowParty),
		RefundCents:         state.RefundCents,
		ProviderPayoutCents: state.ProviderPayoutCents,
		Sequence:            state.Sequence,
		CreatedAt:           state.CreatedAt,
		UpdatedAt:           state.UpdatedAt,
	}
	if state.CancelledBy != nil {
		id := state.CancelledBy.UserID
		role := string(state.CancelledBy.Role)
		view.CancelledBy = &id
		view.CancelledByRole = &role
	}
	if state.PendingCancellation != nil {
		p := state.PendingCancellation
		view.PendingCancellation = &PendingCancellationView{
			RequestedBy:       p.RequestedBy,
			RequestedByRole:   string(p.RequestedByRole),
			Reason:            p.Reason,
			RequestedAt:       p.RequestedAt,
			RefundCents:       p.RefundCents,
			PenaltyCents:      p.PenaltyCents,
			HoursUntilBooking: p.HoursUntilBooking,
		}
	}
	return view
}
