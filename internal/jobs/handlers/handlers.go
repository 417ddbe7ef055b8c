package handlers

import (
	"context"
	"time"

	"salonbook/internal/infra/queue"
	"salonbook/internal/jobs"

	"github.com/google/uuid"
)

// Gateway ports. Implementations live under internal/infra/gateway.
type PaymentGateway interface {
	Capture(ctx context.Context, idempotencyKey string, amountCents int64) (transactionID string, err error)
	Refund(ctx context.Context, idempotencyKey string, amountCents int64) (transactionID string, err error)
}

type Mailer interface {
	Send(ctx context.Context, template string, bookingID uuid.UUID) error
}

type CalendarGateway interface {
	Sync(ctx context.Context, bookingID uuid.UUID, action string) error
}

type AnalyticsSink interface {
	Track(ctx context.Context, bookingID uuid.UUID, eventType string, sequence int64) error
	Rollup(ctx context.Context, since time.Time, counts map[string]int64) error
}

// Recurring schedules. The expiration and reminder sweeps back up the
// per-booking delayed jobs; either path alone suffices.
const (
	reminderSweepCron   = "0 * * * *"
	expirationSweepCron = "*/15 * * * *"
	analyticsRollupCron = "0 0 * * *"
	cacheWarmSweepCron  = "*/5 * * * *"
)

// RegisterAll binds every job name to its handler on the manager.
func RegisterAll(
	m *queue.Manager,
	email *EmailHandler,
	reminder *ReminderHandler,
	expiration *ExpirationHandler,
	payments *PaymentsHandler,
	analytics *AnalyticsHandler,
	calendar *CalendarSyncHandler,
	cacheWarm *CacheWarmHandler,
) {
	for _, name := range []string{
		jobs.JobBookingCreatedEmail,
		jobs.JobBookingAcceptedEmail,
		jobs.JobBookingConfirmedEmail,
		jobs.JobBookingCancelledEmail,
		jobs.JobBookingExpiredEmail,
		jobs.JobNoShowEmail,
	} {
		m.Handle(queue.QueueEmailNotifications, name, email.Handle)
	}

	m.Handle(queue.QueueBookingReminders, jobs.JobBookingReminder, reminder.Handle)
	m.Handle(queue.QueueBookingReminders, jobs.JobReminderSweep, reminder.HandleSweep)
	m.Handle(queue.QueueBookingExpiration, jobs.JobExpireBooking, expiration.HandleExpire)
	m.Handle(queue.QueueBookingExpiration, jobs.JobExpirationSweep, expiration.HandleSweep)
	m.Handle(queue.QueuePayments, jobs.JobCapturePayment, payments.HandleCapture)
	m.Handle(queue.QueuePayments, jobs.JobRefundPayment, payments.HandleRefund)
	m.Handle(queue.QueueAnalytics, jobs.JobTrackBookingEvent, analytics.Handle)
	m.Handle(queue.QueueAnalytics, jobs.JobAnalyticsRollup, analytics.HandleRollup)
	m.Handle(queue.QueueCalendarSync, jobs.JobSyncCalendar, calendar.Handle)
	m.Handle(queue.QueueCacheWarming, jobs.JobWarmBookingCache, cacheWarm.Handle)
	m.Handle(queue.QueueCacheWarming, jobs.JobCacheWarmSweep, cacheWarm.HandleSweep)
}

// ScheduleRecurring arms the repeating jobs. Repeat enqueues are pinned by
// occurrence time, so calling this on every startup is idempotent.
func ScheduleRecurring(ctx context.Context, m *queue.Manager) error {
	recurring := []struct {
		queue string
		name  string
		cron  string
	}{
		{queue.QueueBookingReminders, jobs.JobReminderSweep, reminderSweepCron},
		{queue.QueueBookingExpiration, jobs.JobExpirationSweep, expirationSweepCron},
		{queue.QueueAnalytics, jobs.JobAnalyticsRollup, analyticsRollupCron},
		{queue.QueueCacheWarming, jobs.JobCacheWarmSweep, cacheWarmSweepCron},
	}
	for _, r := range recurring {
		if _, err := m.Enqueue(ctx, r.queue, r.name, nil, queue.Options{RepeatCron: r.cron}); err != nil {
			return err
		}
	}
	return nil
}
