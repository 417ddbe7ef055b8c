package eventstore

import (
	"context"
	"sync"
	"time"

	"salonbook/internal/domain/booking"
	"salonbook/internal/infra"

	"github.com/google/uuid"
)

// MemoryStore is an in-memory event store with the same optimistic
// concurrency semantics as the Postgres store. It backs unit tests and keeps
// the append contract honest without a database.
type MemoryStore struct {
	mu     sync.RWMutex
	events map[uuid.UUID][]booking.Event
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		events: make(map[uuid.UUID][]booking.Event),
	}
}

func (s *MemoryStore) Append(_ context.Context, expectedSequence int64, ev booking.Event) (booking.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stream := s.events[ev.BookingID]
	current := int64(len(stream))
	if current != expectedSequence {
		return booking.Event{}, infra.WrapRepoErr("expected sequence is stale", nil, infra.KindConflict)
	}

	ev.Sequence = expectedSequence + 1
	if ev.Timestamp.IsZero() {
		ev.Timestamp = time.Now().UTC()
	}
	s.events[ev.BookingID] = append(stream, ev)
	return ev, nil
}

func (s *MemoryStore) LoadEvents(_ context.Context, bookingID uuid.UUID, fromSequence int64) ([]booking.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stream := s.events[bookingID]
	if fromSequence < 1 {
		fromSequence = 1
	}
	if int64(len(stream)) < fromSequence {
		return nil, nil
	}

	out := make([]booking.Event, len(stream[fromSequence-1:]))
	copy(out, stream[fromSequence-1:])
	return out, nil
}
