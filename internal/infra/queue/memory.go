package queue

import (
	"context"
	"sort"
	"sync"
	"time"

	"salonbook/internal/infra"

	"github.com/google/uuid"
)

type memoryJob struct {
	job       Job
	claimedAt time.Time
}

// MemoryStore is the in-memory Store used by unit tests and single-process
// setups. Semantics mirror the Postgres store.
type MemoryStore struct {
	mu   sync.Mutex
	jobs map[uuid.UUID]*memoryJob
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{jobs: make(map[uuid.UUID]*memoryJob)}
}

func (s *MemoryStore) Create(_ context.Context, job *Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.jobs[job.ID]; ok {
		return infra.WrapRepoErr("job already exists", nil, infra.KindConflict)
	}
	copied := *job
	s.jobs[job.ID] = &memoryJob{job: copied}
	return nil
}

func (s *MemoryStore) ClaimNext(_ context.Context, queue string, now time.Time) (*Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var candidates []*memoryJob
	for _, mj := range s.jobs {
		j := mj.job
		if j.Queue == queue && j.Status == StatusWaiting && !j.NotBefore.After(now) {
			candidates = append(candidates, mj)
		}
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	sort.Slice(candidates, func(i, j int) bool {
		a, b := candidates[i].job, candidates[j].job
		if a.Priority != b.Priority {
			return a.Priority < b.Priority
		}
		if !a.NotBefore.Equal(b.NotBefore) {
			return a.NotBefore.Before(b.NotBefore)
		}
		return a.CreatedAt.Before(b.CreatedAt)
	})

	mj := candidates[0]
	mj.job.Status = StatusActive
	mj.job.Attempts++
	mj.job.UpdatedAt = now
	mj.claimedAt = now

	claimed := mj.job
	return &claimed, nil
}

func (s *MemoryStore) MarkCompleted(_ context.Context, id uuid.UUID, now time.Time) error {
	return s.setStatus(id, StatusCompleted, "", now)
}

func (s *MemoryStore) MarkRetry(_ context.Context, id uuid.UUID, notBefore time.Time, lastError string, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	mj, ok := s.jobs[id]
	if !ok {
		return infra.WrapRepoErr("job not found", nil, infra.KindNotFound)
	}
	mj.job.Status = StatusWaiting
	mj.job.NotBefore = notBefore
	mj.job.LastError = lastError
	mj.job.UpdatedAt = now
	return nil
}

func (s *MemoryStore) MarkDead(_ context.Context, id uuid.UUID, lastError string, now time.Time) error {
	return s.setStatus(id, StatusFailed, lastError, now)
}

func (s *MemoryStore) setStatus(id uuid.UUID, status JobStatus, lastError string, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	mj, ok := s.jobs[id]
	if !ok {
		return infra.WrapRepoErr("job not found", nil, infra.KindNotFound)
	}
	mj.job.Status = status
	if lastError != "" {
		mj.job.LastError = lastError
	}
	mj.job.UpdatedAt = now
	return nil
}

func (s *MemoryStore) Stats(_ context.Context, queue string, now time.Time) (Stats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := Stats{Queue: queue}
	for _, mj := range s.jobs {
		j := mj.job
		if j.Queue != queue {
			continue
		}
		switch j.Status {
		case StatusWaiting:
			if j.NotBefore.After(now) {
				stats.Delayed++
			} else {
				stats.Waiting++
			}
		case StatusActive:
			stats.Active++
		case StatusCompleted:
			stats.Completed++
		case StatusFailed:
			stats.Failed++
		}
	}
	return stats, nil
}

func (s *MemoryStore) ReclaimStuck(_ context.Context, claimedBefore time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	for _, mj := range s.jobs {
		if mj.job.Status == StatusActive && mj.claimedAt.Before(claimedBefore) {
			mj.job.Status = StatusWaiting
			n++
		}
	}
	return n, nil
}

func (s *MemoryStore) DeadJobs(_ context.Context, queue string, limit int) ([]Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []Job
	for _, mj := range s.jobs {
		if mj.job.Queue == queue && mj.job.Status == StatusFailed {
			out = append(out, mj.job)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
