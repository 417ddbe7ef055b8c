package queue

import (
	"encoding/json"
	"time"

	"salonbook/internal/pkg/errs"

	"github.com/google/uuid"
)

// Queue names. Every job belongs to exactly one of these.
const (
	QueueEmailNotifications = "email-notifications"
	QueueBookingReminders   = "booking-reminders"
	QueuePayments           = "payments"
	QueueBookingExpiration  = "booking-expiration"
	QueueAnalytics          = "analytics"
	QueueCalendarSync       = "calendar-sync"
	QueueCacheWarming       = "cache-warming"
)

var ErrUnknownQueue = errs.New("unknown queue")

type BackoffKind string

const (
	BackoffExponential BackoffKind = "exponential"
	BackoffFixed       BackoffKind = "fixed"
)

// BackoffPolicy controls the retry delay after a failed attempt. Exponential
// backoff doubles per attempt: base * 2^attempt.
type BackoffPolicy struct {
	Kind BackoffKind
	Base time.Duration
}

// Delay returns how long to wait before retry number attempt (0-based).
func (p BackoffPolicy) Delay(attempt int) time.Duration {
	if p.Kind == BackoffFixed {
		return p.Base
	}
	d := p.Base
	for i := 0; i < attempt; i++ {
		d *= 2
	}
	return d
}

// Definition is the static configuration of one queue: worker concurrency,
// retry budget and default priority for its jobs.
type Definition struct {
	Name            string
	Workers         int
	MaxAttempts     int
	Backoff         BackoffPolicy
	DefaultPriority int
}

// Definitions lists every queue the manager runs. Retry budgets and backoff
// bases differ per queue: payment work retries harder than cache warming.
func Definitions() []Definition {
	return []Definition{
		{Name: QueueEmailNotifications, Workers: 5, MaxAttempts: 3, Backoff: BackoffPolicy{Kind: BackoffExponential, Base: 2 * time.Second}},
		{Name: QueueBookingReminders, Workers: 3, MaxAttempts: 5, Backoff: BackoffPolicy{Kind: BackoffExponential, Base: 5 * time.Second}},
		{Name: QueuePayments, Workers: 2, MaxAttempts: 3, Backoff: BackoffPolicy{Kind: BackoffExponential, Base: 3 * time.Second}},
		{Name: QueueBookingExpiration, Workers: 1, MaxAttempts: 2, Backoff: BackoffPolicy{Kind: BackoffFixed, Base: 10 * time.Second}},
		{Name: QueueAnalytics, Workers: 2, MaxAttempts: 2, Backoff: BackoffPolicy{Kind: BackoffExponential, Base: 5 * time.Second}, DefaultPriority: 5},
		{Name: QueueCalendarSync, Workers: 2, MaxAttempts: 3, Backoff: BackoffPolicy{Kind: BackoffExponential, Base: 5 * time.Second}},
		{Name: QueueCacheWarming, Workers: 1, MaxAttempts: 1, Backoff: BackoffPolicy{Kind: BackoffFixed, Base: time.Minute}, DefaultPriority: 10},
	}
}

type JobStatus string

const (
	StatusWaiting   JobStatus = "waiting"
	StatusDelayed   JobStatus = "delayed"
	StatusActive    JobStatus = "active"
	StatusCompleted JobStatus = "completed"
	// StatusFailed is terminal: the job exhausted its attempts and sits in
	// the dead-letter set for inspection.
	StatusFailed JobStatus = "failed"
)

// Job is one unit of background work. Lower Priority runs sooner within a
// queue; NotBefore delays visibility.
type Job struct {
	ID          uuid.UUID
	Queue       string
	Name        string
	Payload     json.RawMessage
	Priority    int
	Attempts    int
	MaxAttempts int
	Status      JobStatus
	NotBefore   time.Time
	RepeatSpec  string
	LastError   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Options tune a single enqueue. Zero values fall back to the queue's
// definition.
type Options struct {
	// JobID pins the job's identity. Enqueueing the same ID twice is a
	// no-op, which is how repeating schedules survive restarts without
	// duplicating.
	JobID uuid.UUID
	// Priority orders jobs within a queue; lower runs sooner.
	Priority *int
	// Delay pushes the first run into the future relative to now.
	Delay time.Duration
	// NotBefore sets an absolute earliest run time; wins over Delay.
	NotBefore time.Time
	// RepeatCron re-enqueues the job on a cron schedule after each run.
	RepeatCron string
	// MaxAttempts overrides the queue's retry budget when > 0.
	MaxAttempts int
}

// Stats is the per-queue counter snapshot.
type Stats struct {
	Queue     string `json:"queue"`
	Waiting   int64  `json:"waiting"`
	Active    int64  `json:"active"`
	Completed int64  `json:"completed"`
	Failed    int64  `json:"failed"`
	Delayed   int64  `json:"delayed"`
}
