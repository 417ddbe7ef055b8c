package snapshotstore

import (
	"context"
	"encoding/json"
	"errors"

	"salonbook/internal/domain/booking"
	"salonbook/internal/infra"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore persists the latest snapshot per booking as jsonb. Saves are
// guarded so an older snapshot never overwrites a newer one.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const saveSnapshotSQL = `
INSERT INTO booking_snapshots (booking_id, state, event_sequence, updated_at)
VALUES ($1, $2, $3, now())
ON CONFLICT (booking_id) DO UPDATE
SET state = EXCLUDED.state, event_sequence = EXCLUDED.event_sequence, updated_at = now()
WHERE booking_snapshots.event_sequence < EXCLUDED.event_sequence
`

func (s *PostgresStore) Save(ctx context.Context, state *booking.State) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return infra.WrapRepoErr("failed to encode snapshot", err)
	}
	if _, err := s.pool.Exec(ctx, saveSnapshotSQL, state.BookingID, raw, state.Sequence); err != nil {
		return infra.WrapRepoErr("failed to save snapshot", err)
	}
	return nil
}

const loadSnapshotSQL = `
SELECT state FROM booking_snapshots WHERE booking_id = $1
`

func (s *PostgresStore) Load(ctx context.Context, bookingID uuid.UUID) (*booking.State, error) {
	var raw []byte
	err := s.pool.QueryRow(ctx, loadSnapshotSQL, bookingID).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load snapshot", err)
	}

	var state booking.State
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, infra.WrapRepoErr("failed to decode snapshot", err)
	}
	return &state, nil
}
