package eventstore

import (
	"context"
	"errors"

	"salonbook/internal/domain/booking"
	"salonbook/internal/infra"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolationCode = "23505"

// PostgresStore persists booking events in an append-only table keyed by
// (booking_id, sequence). Optimistic concurrency rides on the primary key:
// two writers racing for the same sequence collide on insert and the loser
// gets a conflict error.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const appendEventSQL = `
INSERT INTO booking_events (booking_id, sequence, event_type, payload, actor_id, actor_role, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
`

func (s *PostgresStore) Append(ctx context.Context, expectedSequence int64, ev booking.Event) (booking.Event, error) {
	payload, err := booking.MarshalPayload(ev.Payload)
	if err != nil {
		return booking.Event{}, infra.WrapRepoErr("failed to encode event payload", err)
	}

	ev.Sequence = expectedSequence + 1
	_, err = s.pool.Exec(ctx, appendEventSQL,
		ev.BookingID,
		ev.Sequence,
		string(ev.Type),
		payload,
		ev.ActorID,
		string(ev.ActorRole),
		ev.Timestamp,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return booking.Event{}, infra.WrapRepoErr("expected sequence is stale", err, infra.KindConflict)
		}
		return booking.Event{}, infra.WrapRepoErr("failed to append booking event", err)
	}
	return ev, nil
}

const loadEventsSQL = `
SELECT booking_id, sequence, event_type, payload, actor_id, actor_role, created_at
FROM booking_events
WHERE booking_id = $1 AND sequence >= $2
ORDER BY sequence
`

func (s *PostgresStore) LoadEvents(ctx context.Context, bookingID uuid.UUID, fromSequence int64) ([]booking.Event, error) {
	if fromSequence < 1 {
		fromSequence = 1
	}
	rows, err := s.pool.Query(ctx, loadEventsSQL, bookingID, fromSequence)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load booking events", err)
	}
	defer rows.Close()

	var out []booking.Event
	for rows.Next() {
		var (
			ev        booking.Event
			eventType string
			actorRole string
			raw       []byte
		)
		if err := rows.Scan(&ev.BookingID, &ev.Sequence, &eventType, &raw, &ev.ActorID, &actorRole, &ev.Timestamp); err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking event", err)
		}
		ev.Type = booking.EventType(eventType)
		ev.ActorRole = booking.ActorRole(actorRole)
		ev.Payload, err = booking.UnmarshalPayload(ev.Type, raw)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to decode event payload", err)
		}
		out = append(out, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate booking events", err)
	}
	return out, nil
}
