package commands

import (
	"context"
	"time"

	"salonbook/internal/domain/booking"
	"salonbook/internal/infra/queue"

	"github.com/google/uuid"
)

// EventStore is the append-only booking event log. Append succeeds only when
// expectedSequence still matches the stream head; a stale expectation comes
// back as a conflict-kind repository error.
type EventStore interface {
	Append(ctx context.Context, expectedSequence int64, ev booking.Event) (booking.Event, error)
	LoadEvents(ctx context.Context, bookingID uuid.UUID, fromSequence int64) ([]booking.Event, error)
}

// SnapshotStore caches replayed state. Load returns nil when no snapshot
// exists; snapshots are an optimization and never the source of truth.
type SnapshotStore interface {
	Save(ctx context.Context, state *booking.State) error
	Load(ctx context.Context, bookingID uuid.UUID) (*booking.State, error)
}

// Enqueuer hands side-effect work to the background queues.
type Enqueuer interface {
	Enqueue(ctx context.Context, queueName, name string, payload any, opts queue.Options) (uuid.UUID, error)
}

// DirectoryEntry is the write-side projection of one booking, kept so the
// sweeps and list queries do not replay every stream.
type DirectoryEntry struct {
	BookingID           uuid.UUID
	ClientID            uuid.UUID
	StylistID           uuid.UUID
	Status              booking.Status
	BookingAt           time.Time
	RequestExpiresAt    *time.Time
	AcceptanceExpiresAt *time.Time
	UpdatedAt           time.Time
}

// BookingDirectory maintains the projection. Upsert is best-effort relative
// to the event log: sweeps re-validate against a fresh replay before acting.
type BookingDirectory interface {
	Upsert(ctx context.Context, entry DirectoryEntry) error
}

// Actor identifies who issues a command.
type Actor struct {
	ID   uuid.UUID
	Role booking.ActorRole
}

func SystemActor() Actor {
	return Actor{ID: uuid.Nil, Role: booking.RoleSystem}
}
