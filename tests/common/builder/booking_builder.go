//go:build unit || e2e

package builder

import (
	"time"

	"salonbook/internal/domain/booking"
	reqdto "salonbook/internal/handler/dto/request"

	"github.com/google/uuid"
)

type BookingRequestBuilder struct {
	StylistID       uuid.UUID
	ServiceID       uuid.UUID
	BookingDate     string
	BookingTime     string
	DurationMinutes int
	TotalPriceCents int64
	Note            *string
}

func NewBookingRequestBuilder() *BookingRequestBuilder {
	return &BookingRequestBuilder{
		StylistID:       uuid.New(),
		ServiceID:       uuid.New(),
		BookingDate:     "2025-11-05",
		BookingTime:     "14:00",
		DurationMinutes: 60,
		TotalPriceCents: 8000,
	}
}

func (b *BookingRequestBuilder) BuildDTO() reqdto.CreateBookingRequest {
	return reqdto.CreateBookingRequest{
		StylistID:       b.StylistID,
		ServiceID:       b.ServiceID,
		BookingDate:     b.BookingDate,
		BookingTime:     b.BookingTime,
		DurationMinutes: b.DurationMinutes,
		TotalPriceCents: b.TotalPriceCents,
		Note:            b.Note,
	}
}

// Fluent builder methods
func (b *BookingRequestBuilder) WithStylist(stylistID uuid.UUID) *BookingRequestBuilder {
	b.StylistID = stylistID
	return b
}

func (b *BookingRequestBuilder) WithSlot(date, timeOfDay string) *BookingRequestBuilder {
	b.BookingDate = date
	b.BookingTime = timeOfDay
	return b
}

func (b *BookingRequestBuilder) WithPrice(cents int64) *BookingRequestBuilder {
	b.TotalPriceCents = cents
	return b
}

func (b *BookingRequestBuilder) WithNote(note string) *BookingRequestBuilder {
	b.Note = &note
	return b
}

type BookingStateBuilder struct {
	BookingID       uuid.UUID
	ClientID        uuid.UUID
	StylistID       uuid.UUID
	ServiceID       uuid.UUID
	BookingDate     string
	BookingTime     string
	DurationMinutes int
	TotalPriceCents int64
	Status          booking.Status
	PaymentStatus   booking.PaymentStatus
	Sequence        int64
}

func NewBookingStateBuilder() *BookingStateBuilder {
	return &BookingStateBuilder{
		BookingID:       uuid.New(),
		ClientID:        uuid.New(),
		StylistID:       uuid.New(),
		ServiceID:       uuid.New(),
		BookingDate:     "2025-11-05",
		BookingTime:     "14:00",
		DurationMinutes: 60,
		TotalPriceCents: 8000,
		Status:          booking.StatusPending,
		PaymentStatus:   booking.PaymentUnpaid,
		Sequence:        1,
	}
}

func (b *BookingStateBuilder) Build() *booking.State {
	now := time.Now().UTC()
	return &booking.State{
		BookingID:       b.BookingID,
		ClientID:        b.ClientID,
		StylistID:       b.StylistID,
		ServiceID:       b.ServiceID,
		BookingDate:     b.BookingDate,
		BookingTime:     b.BookingTime,
		DurationMinutes: b.DurationMinutes,
		TotalPriceCents: b.TotalPriceCents,
		Status:          b.Status,
		PaymentStatus:   b.PaymentStatus,
		Sequence:        b.Sequence,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// Fluent builder methods
func (b *BookingStateBuilder) WithID(id uuid.UUID) *BookingStateBuilder {
	b.BookingID = id
	return b
}

func (b *BookingStateBuilder) WithClient(clientID uuid.UUID) *BookingStateBuilder {
	b.ClientID = clientID
	return b
}

func (b *BookingStateBuilder) WithStylist(stylistID uuid.UUID) *BookingStateBuilder {
	b.StylistID = stylistID
	return b
}

func (b *BookingStateBuilder) WithStatus(status booking.Status) *BookingStateBuilder {
	b.Status = status
	return b
}

func (b *BookingStateBuilder) WithPayment(status booking.PaymentStatus) *BookingStateBuilder {
	b.PaymentStatus = status
	return b
}

func (b *BookingStateBuilder) WithSlot(date, timeOfDay string) *BookingStateBuilder {
	b.BookingDate = date
	b.BookingTime = timeOfDay
	return b
}

func (b *BookingStateBuilder) WithSequence(seq int64) *BookingStateBuilder {
	b.Sequence = seq
	return b
}
