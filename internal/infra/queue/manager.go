package queue

import (
	"context"
	"encoding/json"
	"time"

	"salonbook/internal/infra"
	"salonbook/internal/pkg/clock"
	"salonbook/internal/pkg/config"
	"salonbook/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
)

var ErrNoHandler = errs.New("no handler registered for job")

// Handler processes one claimed job. Returning an error triggers the queue's
// retry policy; exhausting attempts dead-letters the job.
type Handler func(ctx context.Context, job Job) error

// Manager owns the seven queues: it enqueues jobs, runs per-queue worker
// pools and re-arms cron-repeating jobs after each run.
type Manager struct {
	store    Store
	defs     map[string]Definition
	handlers map[string]map[string]Handler
	clock    clock.Clock
	cfg      config.QueueConfig
}

func NewManager(store Store, clk clock.Clock, cfg config.QueueConfig) *Manager {
	defs := make(map[string]Definition)
	for _, d := range Definitions() {
		defs[d.Name] = d
	}
	return &Manager{
		store:    store,
		defs:     defs,
		handlers: make(map[string]map[string]Handler),
		clock:    clk,
		cfg:      cfg,
	}
}

// Handle registers the handler for jobs named name on the given queue.
// Registration happens at startup, before Run.
func (m *Manager) Handle(queue, name string, h Handler) {
	if _, ok := m.handlers[queue]; !ok {
		m.handlers[queue] = make(map[string]Handler)
	}
	m.handlers[queue][name] = h
}

// Enqueue adds a job. The payload is marshalled to JSON; options not set fall
// back to the queue definition.
func (m *Manager) Enqueue(ctx context.Context, queue, name string, payload any, opts Options) (uuid.UUID, error) {
	def, ok := m.defs[queue]
	if !ok {
		return uuid.Nil, errs.Mark(errs.New("queue "+queue), ErrUnknownQueue)
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return uuid.Nil, errs.Wrap(err, "failed to marshal job payload")
	}

	now := m.clock.Now()
	notBefore := now
	if opts.Delay > 0 {
		notBefore = now.Add(opts.Delay)
	}
	if !opts.NotBefore.IsZero() {
		notBefore = opts.NotBefore
	}

	if opts.RepeatCron != "" {
		schedule, err := cron.ParseStandard(opts.RepeatCron)
		if err != nil {
			return uuid.Nil, errs.Mark(errs.Wrap(err, opts.RepeatCron), errs.ErrInvalidSchedule)
		}
		if opts.NotBefore.IsZero() && opts.Delay == 0 {
			notBefore = schedule.Next(now)
		}
	}

	priority := def.DefaultPriority
	if opts.Priority != nil {
		priority = *opts.Priority
	}
	maxAttempts := def.MaxAttempts
	if opts.MaxAttempts > 0 {
		maxAttempts = opts.MaxAttempts
	}

	jobID := opts.JobID
	pinned := jobID != uuid.Nil
	if jobID == uuid.Nil && opts.RepeatCron != "" {
		// Repeating jobs pin their identity to the occurrence time so
		// restarts and concurrent re-arms converge on one row.
		jobID = RepeatJobID(queue, name, notBefore)
		pinned = true
	}
	if jobID == uuid.Nil {
		jobID = uuid.New()
	}

	job := &Job{
		ID:          jobID,
		Queue:       queue,
		Name:        name,
		Payload:     raw,
		Priority:    priority,
		MaxAttempts: maxAttempts,
		Status:      StatusWaiting,
		NotBefore:   notBefore,
		RepeatSpec:  opts.RepeatCron,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := m.store.Create(ctx, job); err != nil {
		if pinned && infra.IsKind(err, infra.KindConflict) {
			// Same pinned ID already enqueued.
			return job.ID, nil
		}
		return uuid.Nil, err
	}
	return job.ID, nil
}

// RepeatJobID derives the pinned identity of one occurrence of a repeating
// job, so concurrent re-arms and restarts converge on a single job row.
func RepeatJobID(queue, name string, runAt time.Time) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(queue+"/"+name+"/"+runAt.UTC().Format(time.RFC3339)))
}

// Stats returns the counter snapshot for one queue.
func (m *Manager) Stats(ctx context.Context, queue string) (Stats, error) {
	if _, ok := m.defs[queue]; !ok {
		return Stats{}, errs.Mark(errs.New("queue "+queue), ErrUnknownQueue)
	}
	return m.store.Stats(ctx, queue, m.clock.Now())
}

// StatsAll returns stats for every queue in definition order.
func (m *Manager) StatsAll(ctx context.Context) ([]Stats, error) {
	out := make([]Stats, 0, len(m.defs))
	for _, def := range Definitions() {
		stats, err := m.store.Stats(ctx, def.Name, m.clock.Now())
		if err != nil {
			return nil, err
		}
		out = append(out, stats)
	}
	return out, nil
}

// DeadJobs exposes a queue's dead-letter set.
func (m *Manager) DeadJobs(ctx context.Context, queue string, limit int) ([]Job, error) {
	if _, ok := m.defs[queue]; !ok {
		return nil, errs.Mark(errs.New("queue "+queue), ErrUnknownQueue)
	}
	if limit <= 0 {
		limit = 50
	}
	return m.store.DeadJobs(ctx, queue, limit)
}

// nextRepeat computes when a repeating job runs again. Invalid specs were
// rejected at enqueue time, so a parse failure here means stored data is bad.
func (m *Manager) nextRepeat(spec string, after time.Time) (time.Time, error) {
	schedule, err := cron.ParseStandard(spec)
	if err != nil {
		return time.Time{}, errs.Mark(errs.Wrap(err, spec), errs.ErrInvalidSchedule)
	}
	return schedule.Next(after), nil
}
