package queue

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Store persists jobs and hands them to workers. Claiming is atomic: a job is
// observed active by at most one worker at a time.
type Store interface {
	Create(ctx context.Context, job *Job) error
	// ClaimNext atomically moves the runnable job with the lowest priority
	// value to active and increments its attempt counter. Returns nil when
	// nothing is runnable.
	ClaimNext(ctx context.Context, queue string, now time.Time) (*Job, error)
	MarkCompleted(ctx context.Context, id uuid.UUID, now time.Time) error
	// MarkRetry returns a failed job to the waiting set, hidden until
	// notBefore.
	MarkRetry(ctx context.Context, id uuid.UUID, notBefore time.Time, lastError string, now time.Time) error
	// MarkDead parks a job that exhausted its attempts.
	MarkDead(ctx context.Context, id uuid.UUID, lastError string, now time.Time) error
	Stats(ctx context.Context, queue string, now time.Time) (Stats, error)
	// ReclaimStuck returns active jobs claimed before the deadline to the
	// waiting set. Covers workers that died mid-job.
	ReclaimStuck(ctx context.Context, claimedBefore time.Time) (int64, error)
	// DeadJobs lists the dead-letter set of a queue, newest first.
	DeadJobs(ctx context.Context, queue string, limit int) ([]Job, error)
}
