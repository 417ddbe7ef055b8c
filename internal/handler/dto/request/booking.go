package request

import (
	"strings"

	"salonbook/internal/domain/booking"
	"salonbook/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	StylistID       uuid.UUID `json:"stylist_id" binding:"required"`
	ServiceID       uuid.UUID `json:"service_id" binding:"required"`
	BookingDate     string    `json:"booking_date" binding:"required"`
	BookingTime     string    `json:"booking_time" binding:"required"`
	DurationMinutes int       `json:"duration_minutes" binding:"required,gt=0"`
	TotalPriceCents int64     `json:"total_price_cents" binding:"gte=0"`
	Note            *string   `json:"note,omitempty"`
}

func (r CreateBookingRequest) ToInput(clientID uuid.UUID) commands.CreateBookingInput {
	note := ""
	if r.Note != nil {
		note = strings.TrimSpace(*r.Note)
	}
	return commands.CreateBookingInput{
		ClientID:        clientID,
		StylistID:       r.StylistID,
		ServiceID:       r.ServiceID,
		BookingDate:     r.BookingDate,
		BookingTime:     r.BookingTime,
		DurationMinutes: r.DurationMinutes,
		TotalPriceCents: r.TotalPriceCents,
		Note:            note,
	}
}

type ConfirmBookingRequest struct {
	PaymentMethodRef string `json:"payment_method_ref,omitempty"`
}

type CancelBookingRequest struct {
	Reason string `json:"reason,omitempty"`
	// Override fields are honored for admin callers only.
	OverrideRefundCents *int64 `json:"override_refund_cents,omitempty"`
	OverrideReason      string `json:"override_reason,omitempty"`
}

// Override builds the admin override, or nil when none was requested.
func (r CancelBookingRequest) Override(actorID uuid.UUID, role booking.ActorRole) *booking.AdminOverride {
	if role != booking.RoleAdmin || r.OverrideRefundCents == nil {
		return nil
	}
	return &booking.AdminOverride{
		AdminID:     actorID,
		Reason:      r.OverrideReason,
		RefundCents: *r.OverrideRefundCents,
	}
}

type MarkNoShowRequest struct {
	Party  string `json:"party" binding:"required,oneof=CLIENT STYLIST"`
	Reason string `json:"reason,omitempty"`
}

type RescheduleBookingRequest struct {
	NewDate string `json:"new_date" binding:"required"`
	NewTime string `json:"new_time" binding:"required"`
}

type AdminDecisionRequest struct {
	Reason string `json:"reason,omitempty"`
}
