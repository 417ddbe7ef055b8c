package gateway

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// LogMailer writes outgoing mail to the log instead of an SMTP relay.
type LogMailer struct{}

func NewLogMailer() *LogMailer {
	return &LogMailer{}
}

func (m *LogMailer) Send(_ context.Context, template string, bookingID uuid.UUID) error {
	slog.Info("email sent", "template", template, "booking_id", bookingID)
	return nil
}

// LogCalendar mirrors bookings to an external calendar; this implementation
// only records the intent.
type LogCalendar struct{}

func NewLogCalendar() *LogCalendar {
	return &LogCalendar{}
}

func (c *LogCalendar) Sync(_ context.Context, bookingID uuid.UUID, action string) error {
	slog.Info("calendar synced", "booking_id", bookingID, "action", action)
	return nil
}

// LogAnalytics counts booking lifecycle events.
type LogAnalytics struct{}

func NewLogAnalytics() *LogAnalytics {
	return &LogAnalytics{}
}

func (a *LogAnalytics) Track(_ context.Context, bookingID uuid.UUID, eventType string, sequence int64) error {
	slog.Info("analytics event tracked", "booking_id", bookingID, "event_type", eventType, "sequence", sequence)
	return nil
}

func (a *LogAnalytics) Rollup(_ context.Context, since time.Time, counts map[string]int64) error {
	slog.Info("analytics rollup", "since", since, "counts", counts)
	return nil
}
