//go:build unit

package queue_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"salonbook/internal/infra/queue"
	"salonbook/internal/pkg/clock"
	"salonbook/internal/pkg/config"
	"salonbook/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var queueTestNow = time.Date(2025, 11, 3, 9, 0, 0, 0, time.UTC)

func newManager() (*queue.Manager, *clock.MockClock) {
	clk := clock.NewMockClock(queueTestNow)
	m := queue.NewManager(queue.NewMemoryStore(), clk, config.NewTestConfig().Queue)
	return m, clk
}

// drain processes jobs from the queue until nothing is runnable.
func drain(t *testing.T, m *queue.Manager, queueName string) int {
	t.Helper()
	n := 0
	for {
		processed, err := m.RunOnce(context.Background(), queueName)
		require.NoError(t, err)
		if !processed {
			return n
		}
		n++
	}
}

func TestBackoffPolicy(t *testing.T) {
	exp := queue.BackoffPolicy{Kind: queue.BackoffExponential, Base: 2 * time.Second}
	assert.Equal(t, 2*time.Second, exp.Delay(0))
	assert.Equal(t, 4*time.Second, exp.Delay(1))
	assert.Equal(t, 8*time.Second, exp.Delay(2))

	fixed := queue.BackoffPolicy{Kind: queue.BackoffFixed, Base: 10 * time.Second}
	assert.Equal(t, 10*time.Second, fixed.Delay(0))
	assert.Equal(t, 10*time.Second, fixed.Delay(5))
}

func TestEnqueueAndProcess(t *testing.T) {
	ctx := context.Background()

	t.Run("handler receives the payload", func(t *testing.T) {
		m, _ := newManager()

		var got struct {
			Template string `json:"template"`
		}
		m.Handle(queue.QueueEmailNotifications, "welcome", func(_ context.Context, job queue.Job) error {
			return json.Unmarshal(job.Payload, &got)
		})

		_, err := m.Enqueue(ctx, queue.QueueEmailNotifications, "welcome",
			map[string]string{"template": "booking-created"}, queue.Options{})
		require.NoError(t, err)

		require.Equal(t, 1, drain(t, m, queue.QueueEmailNotifications))
		assert.Equal(t, "booking-created", got.Template)

		stats, err := m.Stats(ctx, queue.QueueEmailNotifications)
		require.NoError(t, err)
		assert.Equal(t, int64(1), stats.Completed)
	})

	t.Run("unknown queue is rejected", func(t *testing.T) {
		m, _ := newManager()
		_, err := m.Enqueue(ctx, "no-such-queue", "x", nil, queue.Options{})
		require.ErrorIs(t, err, queue.ErrUnknownQueue)

		_, err = m.Stats(ctx, "no-such-queue")
		require.ErrorIs(t, err, queue.ErrUnknownQueue)
	})

	t.Run("invalid cron spec is rejected", func(t *testing.T) {
		m, _ := newManager()
		_, err := m.Enqueue(ctx, queue.QueueAnalytics, "x", nil, queue.Options{RepeatCron: "every minute"})
		require.ErrorIs(t, err, errs.ErrInvalidSchedule)
	})

	t.Run("missing handler dead-letters after the retry budget", func(t *testing.T) {
		m, clk := newManager()

		_, err := m.Enqueue(ctx, queue.QueueCacheWarming, "unbound", nil, queue.Options{})
		require.NoError(t, err)

		// cache-warming allows a single attempt.
		require.Equal(t, 1, drain(t, m, queue.QueueCacheWarming))
		clk.Add(time.Hour)
		require.Equal(t, 0, drain(t, m, queue.QueueCacheWarming))

		stats, err := m.Stats(ctx, queue.QueueCacheWarming)
		require.NoError(t, err)
		assert.Equal(t, int64(1), stats.Failed)
	})
}

func TestPriorityAndDelay(t *testing.T) {
	ctx := context.Background()

	t.Run("lower priority value runs first", func(t *testing.T) {
		m, _ := newManager()

		var order []string
		m.Handle(queue.QueueAnalytics, "track", func(_ context.Context, job queue.Job) error {
			var p struct {
				Tag string `json:"tag"`
			}
			if err := json.Unmarshal(job.Payload, &p); err != nil {
				return err
			}
			order = append(order, p.Tag)
			return nil
		})

		low, high := 9, 1
		_, err := m.Enqueue(ctx, queue.QueueAnalytics, "track", map[string]string{"tag": "low"}, queue.Options{Priority: &low})
		require.NoError(t, err)
		_, err = m.Enqueue(ctx, queue.QueueAnalytics, "track", map[string]string{"tag": "high"}, queue.Options{Priority: &high})
		require.NoError(t, err)

		require.Equal(t, 2, drain(t, m, queue.QueueAnalytics))
		assert.Equal(t, []string{"high", "low"}, order)
	})

	t.Run("delayed jobs stay hidden until due", func(t *testing.T) {
		m, clk := newManager()
		m.Handle(queue.QueueBookingReminders, "remind", func(context.Context, queue.Job) error { return nil })

		_, err := m.Enqueue(ctx, queue.QueueBookingReminders, "remind", nil, queue.Options{Delay: 30 * time.Minute})
		require.NoError(t, err)

		require.Equal(t, 0, drain(t, m, queue.QueueBookingReminders))
		stats, err := m.Stats(ctx, queue.QueueBookingReminders)
		require.NoError(t, err)
		assert.Equal(t, int64(1), stats.Delayed)
		assert.Equal(t, int64(0), stats.Waiting)

		clk.Add(31 * time.Minute)
		require.Equal(t, 1, drain(t, m, queue.QueueBookingReminders))
	})

	t.Run("absolute NotBefore wins over Delay", func(t *testing.T) {
		m, clk := newManager()
		m.Handle(queue.QueueBookingReminders, "remind", func(context.Context, queue.Job) error { return nil })

		_, err := m.Enqueue(ctx, queue.QueueBookingReminders, "remind", nil, queue.Options{
			Delay:     time.Hour,
			NotBefore: queueTestNow.Add(5 * time.Minute),
		})
		require.NoError(t, err)

		clk.Add(6 * time.Minute)
		require.Equal(t, 1, drain(t, m, queue.QueueBookingReminders))
	})
}

func TestRetrySchedule(t *testing.T) {
	ctx := context.Background()

	t.Run("failures back off exponentially then dead-letter once", func(t *testing.T) {
		m, clk := newManager()

		attempts := 0
		m.Handle(queue.QueueEmailNotifications, "flaky", func(context.Context, queue.Job) error {
			attempts++
			return errs.New("smtp down")
		})

		_, err := m.Enqueue(ctx, queue.QueueEmailNotifications, "flaky", nil, queue.Options{})
		require.NoError(t, err)

		// Attempt 1 fails; retry in 2s.
		require.Equal(t, 1, drain(t, m, queue.QueueEmailNotifications))
		clk.Add(time.Second)
		require.Equal(t, 0, drain(t, m, queue.QueueEmailNotifications), "retry must wait out the backoff")
		clk.Add(time.Second)

		// Attempt 2 fails; retry in 4s.
		require.Equal(t, 1, drain(t, m, queue.QueueEmailNotifications))
		clk.Add(4 * time.Second)

		// Attempt 3 exhausts the budget.
		require.Equal(t, 1, drain(t, m, queue.QueueEmailNotifications))
		clk.Add(time.Hour)
		require.Equal(t, 0, drain(t, m, queue.QueueEmailNotifications))

		assert.Equal(t, 3, attempts)

		stats, err := m.Stats(ctx, queue.QueueEmailNotifications)
		require.NoError(t, err)
		assert.Equal(t, int64(1), stats.Failed)

		dead, err := m.DeadJobs(ctx, queue.QueueEmailNotifications, 10)
		require.NoError(t, err)
		require.Len(t, dead, 1)
		assert.Equal(t, "flaky", dead[0].Name)
		assert.Contains(t, dead[0].LastError, "smtp down")
	})

	t.Run("recovery after a retry completes the job", func(t *testing.T) {
		m, clk := newManager()

		calls := 0
		m.Handle(queue.QueueEmailNotifications, "flaky", func(context.Context, queue.Job) error {
			calls++
			if calls == 1 {
				return errs.New("transient")
			}
			return nil
		})

		_, err := m.Enqueue(ctx, queue.QueueEmailNotifications, "flaky", nil, queue.Options{})
		require.NoError(t, err)

		require.Equal(t, 1, drain(t, m, queue.QueueEmailNotifications))
		clk.Add(2 * time.Second)
		require.Equal(t, 1, drain(t, m, queue.QueueEmailNotifications))

		stats, err := m.Stats(ctx, queue.QueueEmailNotifications)
		require.NoError(t, err)
		assert.Equal(t, int64(1), stats.Completed)
		assert.Equal(t, int64(0), stats.Failed)
	})
}

func TestRepeatingJobs(t *testing.T) {
	ctx := context.Background()
	spec := "*/5 * * * *"

	t.Run("repeat enqueues pin their identity to the occurrence", func(t *testing.T) {
		m, _ := newManager()

		id1, err := m.Enqueue(ctx, queue.QueueBookingExpiration, "sweep", nil, queue.Options{RepeatCron: spec})
		require.NoError(t, err)
		id2, err := m.Enqueue(ctx, queue.QueueBookingExpiration, "sweep", nil, queue.Options{RepeatCron: spec})
		require.NoError(t, err)
		assert.Equal(t, id1, id2, "same occurrence must dedupe")

		stats, err := m.Stats(ctx, queue.QueueBookingExpiration)
		require.NoError(t, err)
		assert.Equal(t, int64(1), stats.Delayed+stats.Waiting)
	})

	t.Run("completion re-arms the next occurrence", func(t *testing.T) {
		m, clk := newManager()
		runs := 0
		m.Handle(queue.QueueBookingExpiration, "sweep", func(context.Context, queue.Job) error {
			runs++
			return nil
		})

		_, err := m.Enqueue(ctx, queue.QueueBookingExpiration, "sweep", nil, queue.Options{RepeatCron: spec})
		require.NoError(t, err)

		clk.Add(5 * time.Minute)
		require.Equal(t, 1, drain(t, m, queue.QueueBookingExpiration))
		clk.Add(5 * time.Minute)
		require.Equal(t, 1, drain(t, m, queue.QueueBookingExpiration))
		assert.Equal(t, 2, runs)
	})

	t.Run("a dead repeating job keeps its schedule", func(t *testing.T) {
		m, clk := newManager()
		m.Handle(queue.QueueBookingExpiration, "sweep", func(context.Context, queue.Job) error {
			return errs.New("boom")
		})

		_, err := m.Enqueue(ctx, queue.QueueBookingExpiration, "sweep", nil, queue.Options{RepeatCron: spec, MaxAttempts: 1})
		require.NoError(t, err)

		clk.Add(5 * time.Minute)
		require.Equal(t, 1, drain(t, m, queue.QueueBookingExpiration))

		stats, err := m.Stats(ctx, queue.QueueBookingExpiration)
		require.NoError(t, err)
		assert.Equal(t, int64(1), stats.Failed)
		assert.Equal(t, int64(1), stats.Delayed, "next occurrence must be queued despite the dead letter")
	})
}

func TestReclaimStuck(t *testing.T) {
	ctx := context.Background()
	store := queue.NewMemoryStore()
	clk := clock.NewMockClock(queueTestNow)
	cfg := config.NewTestConfig().Queue
	m := queue.NewManager(store, clk, cfg)

	_, err := m.Enqueue(ctx, queue.QueuePayments, "capture", nil, queue.Options{})
	require.NoError(t, err)

	// Claim directly, simulating a worker that died mid-run.
	job, err := store.ClaimNext(ctx, queue.QueuePayments, clk.Now())
	require.NoError(t, err)
	require.NotNil(t, job)

	clk.Add(cfg.ClaimTimeout + time.Minute)
	n, err := store.ReclaimStuck(ctx, clk.Now().Add(-cfg.ClaimTimeout))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	stats, err := m.Stats(ctx, queue.QueuePayments)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.Waiting)
}

func TestRepeatJobID(t *testing.T) {
	at := queueTestNow
	assert.Equal(t,
		queue.RepeatJobID("q", "j", at),
		queue.RepeatJobID("q", "j", at))
	assert.NotEqual(t,
		queue.RepeatJobID("q", "j", at),
		queue.RepeatJobID("q", "j", at.Add(time.Minute)))
	assert.NotEqual(t,
		queue.RepeatJobID("q", "a", at),
		queue.RepeatJobID("q", "b", at))
}

func TestStatsAll(t *testing.T) {
	m, _ := newManager()
	stats, err := m.StatsAll(context.Background())
	require.NoError(t, err)
	require.Len(t, stats, len(queue.Definitions()))

	names := make([]string, 0, len(stats))
	for _, s := range stats {
		names = append(names, s.Queue)
	}
	assert.Contains(t, names, queue.QueuePayments)
	assert.Contains(t, names, queue.QueueCacheWarming)
}
