package booking

import (
	"encoding/json"
	"time"

	"salonbook/internal/pkg/errs"

	"github.com/google/uuid"
)

type EventType string

const (
	EventCreated               EventType = "CREATED"
	EventAccepted              EventType = "ACCEPTED"
	EventConfirmed             EventType = "CONFIRMED"
	EventStarted               EventType = "STARTED"
	EventCompleted             EventType = "COMPLETED"
	EventCancelled             EventType = "CANCELLED"
	EventCancellationRequested EventType = "CANCELLATION_REQUESTED"
	EventCancellationRejected  EventType = "CANCELLATION_REJECTED"
	EventRescheduled           EventType = "RESCHEDULED"
	EventNoShow                EventType = "NO_SHOW"
	EventExpired               EventType = "EXPIRED"
	EventPaymentReceived       EventType = "PAYMENT_RECEIVED"
	EventPaymentRefunded       EventType = "PAYMENT_REFUNDED"
	EventReminderSent          EventType = "REMINDER_SENT"
)

var ErrUnknownEventType = errs.New("unknown event type")

// Payload is the typed body of an event. Each event kind has its own struct
// so replay logic is checked at compile time instead of poking at loose JSON.
type Payload interface {
	EventType() EventType
}

// Event is one immutable entry in a booking's log. Sequence numbers are
// contiguous per booking starting at 1.
type Event struct {
	BookingID uuid.UUID
	Sequence  int64
	Type      EventType
	Payload   Payload
	ActorID   uuid.UUID
	ActorRole ActorRole
	Timestamp time.Time
}

type CreatedPayload struct {
	ClientID        uuid.UUID `json:"clientId"`
	StylistID       uuid.UUID `json:"stylistId"`
	ServiceID       uuid.UUID `json:"serviceId"`
	BookingDate     string    `json:"bookingDate"`
	BookingTime     string    `json:"bookingTime"`
	DurationMinutes int       `json:"durationMinutes"`
	TotalPriceCents int64     `json:"totalPriceCents"`
	Note            string    `json:"note,omitempty"`
}

func (CreatedPayload) EventType() EventType { return EventCreated }

type AcceptedPayload struct {
	AcceptedAt time.Time `json:"acceptedAt"`
}

func (AcceptedPayload) EventType() EventType { return EventAccepted }

type ConfirmedPayload struct {
	ConfirmedAt      time.Time `json:"confirmedAt"`
	PaymentMethodRef string    `json:"paymentMethodRef,omitempty"`
}

func (ConfirmedPayload) EventType() EventType { return EventConfirmed }

type StartedPayload struct {
	StartedAt time.Time `json:"startedAt"`
}

func (StartedPayload) EventType() EventType { return EventStarted }

type CompletedPayload struct {
	CompletedAt        time.Time `json:"completedAt"`
	StylistPayoutCents int64     `json:"stylistPayoutCents"`
}

func (CompletedPayload) EventType() EventType { return EventCompleted }

// AdminOverride records an explicit admin decision attached to a cancellation.
type AdminOverride struct {
	AdminID     uuid.UUID `json:"adminId"`
	Reason      string    `json:"reason"`
	RefundCents int64     `json:"refundCents"`
}

type CancelledPayload struct {
	CancelledBy       uuid.UUID      `json:"cancelledBy"`
	CancelledByRole   ActorRole      `json:"cancelledByRole"`
	Reason            string         `json:"reason"`
	CancelledAt       time.Time      `json:"cancelledAt"`
	RefundCents       int64          `json:"refundCents"`
	PenaltyCents      int64          `json:"penaltyCents"`
	HoursUntilBooking float64        `json:"hoursUntilBooking"`
	Override          *AdminOverride `json:"override,omitempty"`
}

func (CancelledPayload) EventType() EventType { return EventCancelled }

// CancellationRequestedPayload parks a stylist cancellation that needs admin
// sign-off. PriorStatus is restored if the request is rejected.
type CancellationRequestedPayload struct {
	RequestedBy       uuid.UUID `json:"requestedBy"`
	RequestedByRole   ActorRole `json:"requestedByRole"`
	Reason            string    `json:"reason"`
	RequestedAt       time.Time `json:"requestedAt"`
	RefundCents       int64     `json:"refundCents"`
	PenaltyCents      int64     `json:"penaltyCents"`
	HoursUntilBooking float64   `json:"hoursUntilBooking"`
	PriorStatus       Status    `json:"priorStatus"`
}

func (CancellationRequestedPayload) EventType() EventType { return EventCancellationRequested }

type CancellationRejectedPayload struct {
	AdminID    uuid.UUID `json:"adminId"`
	Reason     string    `json:"reason"`
	RejectedAt time.Time `json:"rejectedAt"`
	// Status the booking returns to.
	RestoredStatus Status `json:"restoredStatus"`
}

func (CancellationRejectedPayload) EventType() EventType { return EventCancellationRejected }

type RescheduledPayload struct {
	OldDate string `json:"oldDate"`
	OldTime string `json:"oldTime"`
	NewDate string `json:"newDate"`
	NewTime string `json:"newTime"`
}

func (RescheduledPayload) EventType() EventType { return EventRescheduled }

type NoShowPayload struct {
	Party       NoShowParty `json:"party"`
	ReportedBy  uuid.UUID   `json:"reportedBy"`
	Reason      string      `json:"reason,omitempty"`
	ReportedAt  time.Time   `json:"reportedAt"`
	RefundCents int64       `json:"refundCents"`
	PayoutCents int64       `json:"payoutCents"`
}

func (NoShowPayload) EventType() EventType { return EventNoShow }

type ExpiredPayload struct {
	ExpiredAt time.Time `json:"expiredAt"`
	Reason    string    `json:"reason"`
}

func (ExpiredPayload) EventType() EventType { return EventExpired }

type PaymentReceivedPayload struct {
	AmountCents    int64  `json:"amountCents"`
	TransactionID  string `json:"transactionId"`
	IdempotencyKey string `json:"idempotencyKey"`
}

func (PaymentReceivedPayload) EventType() EventType { return EventPaymentReceived }

type PaymentRefundedPayload struct {
	AmountCents    int64  `json:"amountCents"`
	TransactionID  string `json:"transactionId"`
	IdempotencyKey string `json:"idempotencyKey"`
}

func (PaymentRefundedPayload) EventType() EventType { return EventPaymentRefunded }

type ReminderSentPayload struct {
	ReminderTier string    `json:"reminderTier"`
	SentAt       time.Time `json:"sentAt"`
}

func (ReminderSentPayload) EventType() EventType { return EventReminderSent }

// MarshalPayload encodes a payload for persistence.
func MarshalPayload(p Payload) ([]byte, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return nil, errs.Wrap(err, "failed to marshal event payload")
	}
	return data, nil
}

// UnmarshalPayload decodes a persisted payload into its typed form.
func UnmarshalPayload(t EventType, data []byte) (Payload, error) {
	var p Payload
	switch t {
	case EventCreated:
		p = &CreatedPayload{}
	case EventAccepted:
		p = &AcceptedPayload{}
	case EventConfirmed:
		p = &ConfirmedPayload{}
	case EventStarted:
		p = &StartedPayload{}
	case EventCompleted:
		p = &CompletedPayload{}
	case EventCancelled:
		p = &CancelledPayload{}
	case EventCancellationRequested:
		p = &CancellationRequestedPayload{}
	case EventCancellationRejected:
		p = &CancellationRejectedPayload{}
	case EventRescheduled:
		p = &RescheduledPayload{}
	case EventNoShow:
		p = &NoShowPayload{}
	case EventExpired:
		p = &ExpiredPayload{}
	case EventPaymentReceived:
		p = &PaymentReceivedPayload{}
	case EventPaymentRefunded:
		p = &PaymentRefundedPayload{}
	case EventReminderSent:
		p = &ReminderSentPayload{}
	default:
		return nil, errs.Mark(errs.New("event type "+string(t)), ErrUnknownEventType)
	}

	if err := json.Unmarshal(data, p); err != nil {
		return nil, errs.Wrap(err, "failed to unmarshal event payload")
	}
	return deref(p), nil
}

// deref returns the value form so payloads compare cleanly in tests.
func deref(p Payload) Payload {
	switch v := p.(type) {
	case *CreatedPayload:
		return *v
	case *AcceptedPayload:
		return *v
	case *ConfirmedPayload:
		return *v
	case *StartedPayload:
		return *v
	case *CompletedPayload:
		return *v
	case *CancelledPayload:
		return *v
	case *CancellationRequestedPayload:
		return *v
	case *CancellationRejectedPayload:
		return *v
	case *RescheduledPayload:
		return *v
	case *NoShowPayload:
		return *v
	case *ExpiredPayload:
		return *v
	case *PaymentReceivedPayload:
		return *v
	case *PaymentRefundedPayload:
		return *v
	case *ReminderSentPayload:
		return *v
	}
	return p
}
