package jobs

import (
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Job names, grouped by the queue that runs them.
const (
	// email-notifications
	JobBookingCreatedEmail   = "booking-created-email"
	JobBookingAcceptedEmail  = "booking-accepted-email"
	JobBookingConfirmedEmail = "booking-confirmed-email"
	JobBookingCancelledEmail = "booking-cancelled-email"
	JobBookingExpiredEmail   = "booking-expired-email"
	JobNoShowEmail           = "no-show-email"

	// booking-reminders
	JobBookingReminder = "booking-reminder"
	JobReminderSweep   = "reminder-sweep"

	// payments
	JobCapturePayment = "capture-payment"
	JobRefundPayment  = "refund-payment"

	// booking-expiration
	JobExpireBooking   = "expire-booking"
	JobExpirationSweep = "expiration-sweep"

	// analytics
	JobTrackBookingEvent = "track-booking-event"
	JobAnalyticsRollup   = "analytics-rollup"

	// calendar-sync
	JobSyncCalendar = "sync-calendar"

	// cache-warming
	JobWarmBookingCache = "warm-booking-cache"
	JobCacheWarmSweep   = "cache-warm-sweep"
)

// Reminder tiers, named by how far ahead of the appointment they fire.
const (
	ReminderTier24h = "24h"
	ReminderTier2h  = "2h"
	ReminderTier30m = "30m"
)

// ReminderTiers orders the tiers farthest-out first. Both the
// confirmation-time scheduler and the hourly sweep walk this table.
var ReminderTiers = []struct {
	Name string
	Lead time.Duration
}{
	{ReminderTier24h, 24 * time.Hour},
	{ReminderTier2h, 2 * time.Hour},
	{ReminderTier30m, 30 * time.Minute},
}

// BookingRef is the minimal payload for jobs that act on one booking.
type BookingRef struct {
	BookingID uuid.UUID `json:"bookingId"`
}

type ReminderPayload struct {
	BookingID uuid.UUID `json:"bookingId"`
	Tier      string    `json:"tier"`
}

type CapturePaymentPayload struct {
	BookingID uuid.UUID `json:"bookingId"`
	// EventSequence of the event that triggered the capture. Combined with
	// the booking ID it forms the idempotency key, so a retried job can
	// never double-charge.
	EventSequence int64 `json:"eventSequence"`
	AmountCents   int64 `json:"amountCents"`
}

type RefundPaymentPayload struct {
	BookingID     uuid.UUID `json:"bookingId"`
	EventSequence int64     `json:"eventSequence"`
	AmountCents   int64     `json:"amountCents"`
}

type ExpireBookingPayload struct {
	BookingID uuid.UUID `json:"bookingId"`
	Reason    string    `json:"reason"`
}

type TrackEventPayload struct {
	BookingID uuid.UUID `json:"bookingId"`
	EventType string    `json:"eventType"`
	Sequence  int64     `json:"sequence"`
}

type CalendarSyncPayload struct {
	BookingID uuid.UUID `json:"bookingId"`
	Action    string    `json:"action"`
}

// ReminderJobID pins one reminder tier of one booking to a stable job
// identity, so the confirmation-time schedule and the hourly sweep converge
// on a single job row instead of double-sending.
func ReminderJobID(bookingID uuid.UUID, tier string) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte("reminder/"+bookingID.String()+"/"+tier))
}

// IdempotencyKey derives the payment gateway key for a booking event. The
// same (booking, sequence) pair always yields the same key.
func IdempotencyKey(bookingID uuid.UUID, sequence int64) string {
	return bookingID.String() + ":" + strconv.FormatInt(sequence, 10)
}
