package queue

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Run starts every queue's worker pool plus the reclaim loop and blocks until
// ctx is cancelled. In-flight handlers finish before Run returns.
func (m *Manager) Run(ctx context.Context) {
	var wg sync.WaitGroup
	for _, def := range Definitions() {
		for i := 0; i < def.Workers; i++ {
			wg.Add(1)
			go func(def Definition) {
				defer wg.Done()
				m.workerLoop(ctx, def)
			}(def)
		}
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		m.reclaimLoop(ctx)
	}()

	wg.Wait()
}

func (m *Manager) workerLoop(ctx context.Context, def Definition) {
	ticker := time.NewTicker(m.cfg.PollInterval)
	defer ticker.Stop()

	for {
		// Drain runnable jobs before going back to sleep.
		for {
			if ctx.Err() != nil {
				return
			}
			processed, err := m.RunOnce(ctx, def.Name)
			if err != nil {
				slog.Error("queue poll failed", "queue", def.Name, "error", err)
				break
			}
			if !processed {
				break
			}
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// RunOnce claims and processes at most one job from the queue. It reports
// whether a job was processed. Tests drive the queues through this instead of
// racing against the poll loop.
func (m *Manager) RunOnce(ctx context.Context, queue string) (bool, error) {
	def, ok := m.defs[queue]
	if !ok {
		return false, ErrUnknownQueue
	}

	job, err := m.store.ClaimNext(ctx, queue, m.clock.Now())
	if err != nil {
		return false, err
	}
	if job == nil {
		return false, nil
	}

	m.process(ctx, def, *job)
	return true, nil
}

func (m *Manager) process(ctx context.Context, def Definition, job Job) {
	handler := m.handlers[job.Queue][job.Name]
	if handler == nil {
		m.fail(ctx, def, job, ErrNoHandler)
		return
	}

	if err := handler(ctx, job); err != nil {
		m.fail(ctx, def, job, err)
		return
	}

	now := m.clock.Now()
	if err := m.store.MarkCompleted(ctx, job.ID, now); err != nil {
		slog.Error("failed to mark job completed", "queue", job.Queue, "job", job.Name, "id", job.ID, "error", err)
	}
	if job.RepeatSpec != "" {
		m.rearm(ctx, job, now)
	}
}

func (m *Manager) fail(ctx context.Context, def Definition, job Job, jobErr error) {
	now := m.clock.Now()
	if job.Attempts >= job.MaxAttempts {
		slog.Error("job dead-lettered",
			"queue", job.Queue, "job", job.Name, "id", job.ID,
			"attempts", job.Attempts, "error", jobErr)
		if err := m.store.MarkDead(ctx, job.ID, jobErr.Error(), now); err != nil {
			slog.Error("failed to dead-letter job", "id", job.ID, "error", err)
		}
		// A dead repeating job still keeps its schedule alive.
		if job.RepeatSpec != "" {
			m.rearm(ctx, job, now)
		}
		return
	}

	delay := def.Backoff.Delay(job.Attempts - 1)
	slog.Warn("job failed, retrying",
		"queue", job.Queue, "job", job.Name, "id", job.ID,
		"attempt", job.Attempts, "retry_in", delay, "error", jobErr)
	if err := m.store.MarkRetry(ctx, job.ID, now.Add(delay), jobErr.Error(), now); err != nil {
		slog.Error("failed to schedule job retry", "id", job.ID, "error", err)
	}
}

// rearm enqueues the next occurrence of a cron-repeating job as a fresh job
// with a clean attempt counter.
func (m *Manager) rearm(ctx context.Context, job Job, now time.Time) {
	next, err := m.nextRepeat(job.RepeatSpec, now)
	if err != nil {
		slog.Error("failed to compute next run", "id", job.ID, "spec", job.RepeatSpec, "error", err)
		return
	}

	var payload any
	if len(job.Payload) > 0 {
		payload = job.Payload
	}
	_, err = m.Enqueue(ctx, job.Queue, job.Name, payload, Options{
		Priority:    &job.Priority,
		NotBefore:   next,
		RepeatCron:  job.RepeatSpec,
		MaxAttempts: job.MaxAttempts,
	})
	if err != nil {
		slog.Error("failed to re-arm repeating job", "id", job.ID, "spec", job.RepeatSpec, "error", err)
	}
}

// reclaimLoop periodically returns jobs stuck in active back to waiting.
func (m *Manager) reclaimLoop(ctx context.Context) {
	interval := m.cfg.ClaimTimeout / 2
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := m.store.ReclaimStuck(ctx, m.clock.Now().Add(-m.cfg.ClaimTimeout))
			if err != nil {
				slog.Error("failed to reclaim stuck jobs", "error", err)
				continue
			}
			if n > 0 {
				slog.Warn("reclaimed stuck jobs", "count", n)
			}
		}
	}
}
