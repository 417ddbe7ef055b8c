package snapshotstore

import (
	"context"
	"sync"

	"salonbook/internal/domain/booking"

	"github.com/google/uuid"
)

// MemoryStore keeps the latest snapshot per booking in memory.
type MemoryStore struct {
	mu        sync.RWMutex
	snapshots map[uuid.UUID]booking.State
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		snapshots: make(map[uuid.UUID]booking.State),
	}
}

func (s *MemoryStore) Save(_ context.Context, state *booking.State) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, ok := s.snapshots[state.BookingID]
	if ok && prev.Sequence >= state.Sequence {
		return nil
	}
	s.snapshots[state.BookingID] = *state
	return nil
}

// Load returns the latest snapshot, or nil when none exists. A missing
// snapshot is not an error: replay just starts from the first event.
func (s *MemoryStore) Load(_ context.Context, bookingID uuid.UUID) (*booking.State, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state, ok := s.snapshots[bookingID]
	if !ok {
		return nil, nil
	}
	copied := state
	return &copied, nil
}
