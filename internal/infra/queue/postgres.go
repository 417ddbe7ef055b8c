package queue

import (
	"context"
	"errors"
	"time"

	"salonbook/internal/infra"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolationCode = "23505"

// PostgresStore keeps jobs in a single table and claims them with
// FOR UPDATE SKIP LOCKED, so concurrent workers never run the same job.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const createJobSQL = `
INSERT INTO jobs (id, queue, name, payload, priority, attempts, max_attempts, status, not_before, repeat_spec, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $11)
`

func (s *PostgresStore) Create(ctx context.Context, job *Job) error {
	_, err := s.pool.Exec(ctx, createJobSQL,
		job.ID,
		job.Queue,
		job.Name,
		job.Payload,
		job.Priority,
		job.Attempts,
		job.MaxAttempts,
		string(job.Status),
		job.NotBefore,
		job.RepeatSpec,
		job.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return infra.WrapRepoErr("job already exists", err, infra.KindConflict)
		}
		return infra.WrapRepoErr("failed to create job", err)
	}
	return nil
}

const claimNextSQL = `
UPDATE jobs SET status = 'active', attempts = attempts + 1, claimed_at = $2, updated_at = $2
WHERE id = (
	SELECT id FROM jobs
	WHERE queue = $1 AND status = 'waiting' AND not_before <= $2
	ORDER BY priority, not_before, created_at
	FOR UPDATE SKIP LOCKED
	LIMIT 1
)
RETURNING id, queue, name, payload, priority, attempts, max_attempts, status, not_before, repeat_spec, last_error, created_at, updated_at
`

func (s *PostgresStore) ClaimNext(ctx context.Context, queue string, now time.Time) (*Job, error) {
	row := s.pool.QueryRow(ctx, claimNextSQL, queue, now)
	job, err := scanJob(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, infra.WrapRepoErr("failed to claim job", err)
	}
	return job, nil
}

func (s *PostgresStore) MarkCompleted(ctx context.Context, id uuid.UUID, now time.Time) error {
	return s.exec(ctx, "failed to complete job",
		`UPDATE jobs SET status = 'completed', claimed_at = NULL, updated_at = $2 WHERE id = $1`, id, now)
}

func (s *PostgresStore) MarkRetry(ctx context.Context, id uuid.UUID, notBefore time.Time, lastError string, now time.Time) error {
	return s.exec(ctx, "failed to schedule retry",
		`UPDATE jobs SET status = 'waiting', not_before = $2, last_error = $3, claimed_at = NULL, updated_at = $4 WHERE id = $1`,
		id, notBefore, lastError, now)
}

func (s *PostgresStore) MarkDead(ctx context.Context, id uuid.UUID, lastError string, now time.Time) error {
	return s.exec(ctx, "failed to dead-letter job",
		`UPDATE jobs SET status = 'failed', last_error = $2, claimed_at = NULL, updated_at = $3 WHERE id = $1`,
		id, lastError, now)
}

func (s *PostgresStore) exec(ctx context.Context, msg, sql string, args ...any) error {
	tag, err := s.pool.Exec(ctx, sql, args...)
	if err != nil {
		return infra.WrapRepoErr(msg, err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("job not found", nil, infra.KindNotFound)
	}
	return nil
}

const statsSQL = `
SELECT
	count(*) FILTER (WHERE status = 'waiting' AND not_before <= $2) AS waiting,
	count(*) FILTER (WHERE status = 'active') AS active,
	count(*) FILTER (WHERE status = 'completed') AS completed,
	count(*) FILTER (WHERE status = 'failed') AS failed,
	count(*) FILTER (WHERE status = 'waiting' AND not_before > $2) AS delayed
FROM jobs WHERE queue = $1
`

func (s *PostgresStore) Stats(ctx context.Context, queue string, now time.Time) (Stats, error) {
	stats := Stats{Queue: queue}
	err := s.pool.QueryRow(ctx, statsSQL, queue, now).
		Scan(&stats.Waiting, &stats.Active, &stats.Completed, &stats.Failed, &stats.Delayed)
	if err != nil {
		return Stats{}, infra.WrapRepoErr("failed to read queue stats", err)
	}
	return stats, nil
}

func (s *PostgresStore) ReclaimStuck(ctx context.Context, claimedBefore time.Time) (int64, error) {
	tag, err := s.pool.Exec(ctx,
		`UPDATE jobs SET status = 'waiting', claimed_at = NULL WHERE status = 'active' AND claimed_at < $1`,
		claimedBefore)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to reclaim stuck jobs", err)
	}
	return tag.RowsAffected(), nil
}

const deadJobsSQL = `
SELECT id, queue, name, payload, priority, attempts, max_attempts, status, not_before, repeat_spec, last_error, created_at, updated_at
FROM jobs
WHERE queue = $1 AND status = 'failed'
ORDER BY updated_at DESC
LIMIT $2
`

func (s *PostgresStore) DeadJobs(ctx context.Context, queue string, limit int) ([]Job, error) {
	rows, err := s.pool.Query(ctx, deadJobsSQL, queue, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list dead jobs", err)
	}
	defer rows.Close()

	var out []Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan dead job", err)
		}
		out = append(out, *job)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate dead jobs", err)
	}
	return out, nil
}

func scanJob(row pgx.Row) (*Job, error) {
	var (
		job        Job
		status     string
		repeatSpec *string
		lastError  *string
	)
	err := row.Scan(
		&job.ID, &job.Queue, &job.Name, &job.Payload, &job.Priority,
		&job.Attempts, &job.MaxAttempts, &status, &job.NotBefore,
		&repeatSpec, &lastError, &job.CreatedAt, &job.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	job.Status = JobStatus(status)
	if repeatSpec != nil {
		job.RepeatSpec = *repeatSpec
	}
	if lastError != nil {
		job.LastError = *lastError
	}
	return &job, nil
}
