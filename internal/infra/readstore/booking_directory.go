package readstore

import (
	"context"
	"time"

	"salonbook/internal/domain/booking"
	"salonbook/internal/infra"
	"salonbook/internal/usecase/commands"
	"salonbook/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// BookingDirectory is the Postgres projection of booking headlines. The
// write side upserts after each append; sweeps and list endpoints read it
// instead of replaying streams.
type BookingDirectory struct {
	pool *pgxpool.Pool
}

func NewBookingDirectory(pool *pgxpool.Pool) *BookingDirectory {
	return &BookingDirectory{pool: pool}
}

const upsertDirectorySQL = `
INSERT INTO booking_directory (booking_id, client_id, stylist_id, status, booking_at, request_expires_at, acceptance_expires_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (booking_id) DO UPDATE
SET status = EXCLUDED.status,
    booking_at = EXCLUDED.booking_at,
    request_expires_at = EXCLUDED.request_expires_at,
    acceptance_expires_at = EXCLUDED.acceptance_expires_at,
    updated_at = EXCLUDED.updated_at
WHERE booking_directory.updated_at <= EXCLUDED.updated_at
`

func (d *BookingDirectory) Upsert(ctx context.Context, entry commands.DirectoryEntry) error {
	_, err := d.pool.Exec(ctx, upsertDirectorySQL,
		entry.BookingID,
		entry.ClientID,
		entry.StylistID,
		string(entry.Status),
		entry.BookingAt,
		entry.RequestExpiresAt,
		entry.AcceptanceExpiresAt,
		entry.UpdatedAt,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to upsert booking directory", err)
	}
	return nil
}

const expirationCandidatesSQL = `
SELECT booking_id, status
FROM booking_directory
WHERE (status = $1 AND request_expires_at <= $3)
   OR (status = $2 AND acceptance_expires_at <= $3)
ORDER BY updated_at
`

func (d *BookingDirectory) FindExpirationCandidates(ctx context.Context, now time.Time) ([]queries.ExpirationCandidate, error) {
	rows, err := d.pool.Query(ctx, expirationCandidatesSQL,
		string(booking.StatusPending), string(booking.StatusVerifyAcceptance), now)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find expiration candidates", err)
	}
	defer rows.Close()

	var out []queries.ExpirationCandidate
	for rows.Next() {
		var (
			id     uuid.UUID
			status string
		)
		if err := rows.Scan(&id, &status); err != nil {
			return nil, infra.WrapRepoErr("failed to scan expiration candidate", err)
		}
		out = append(out, queries.ExpirationCandidate{
			BookingID: id,
			Reason:    expirationReason(booking.Status(status)),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate expiration candidates", err)
	}
	return out, nil
}

func expirationReason(status booking.Status) string {
	if status == booking.StatusVerifyAcceptance {
		return "acceptance window elapsed"
	}
	return "request window elapsed"
}

const upcomingConfirmedSQL = `
SELECT booking_id, client_id, stylist_id, status, booking_at, updated_at
FROM booking_directory
WHERE status = $1 AND booking_at >= $2 AND booking_at < $3
ORDER BY booking_at
`

// FindUpcomingConfirmed lists confirmed bookings whose appointment falls in
// [from, until). The reminder and cache-warm sweeps run on it.
func (d *BookingDirectory) FindUpcomingConfirmed(ctx context.Context, from, until time.Time) ([]*queries.BookingSummary, error) {
	rows, err := d.pool.Query(ctx, upcomingConfirmedSQL, string(booking.StatusConfirmed), from, until)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find upcoming bookings", err)
	}
	defer rows.Close()

	var out []*queries.BookingSummary
	for rows.Next() {
		var summary queries.BookingSummary
		if err := rows.Scan(&summary.ID, &summary.ClientID, &summary.StylistID, &summary.Status, &summary.BookingAt, &summary.UpdatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan upcoming booking", err)
		}
		out = append(out, &summary)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate upcoming bookings", err)
	}
	return out, nil
}

const countByStatusSQL = `
SELECT status, COUNT(*)
FROM booking_directory
WHERE updated_at >= $1
GROUP BY status
`

// CountByStatus tallies bookings touched since the given time, per status.
// The daily analytics rollup feeds these counts to the sink.
func (d *BookingDirectory) CountByStatus(ctx context.Context, since time.Time) (map[string]int64, error) {
	rows, err := d.pool.Query(ctx, countByStatusSQL, since)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to count bookings by status", err)
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var (
			status string
			n      int64
		)
		if err := rows.Scan(&status, &n); err != nil {
			return nil, infra.WrapRepoErr("failed to scan status count", err)
		}
		counts[status] = n
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate status counts", err)
	}
	return counts, nil
}

const listByClientSQL = `
SELECT booking_id, client_id, stylist_id, status, booking_at, updated_at
FROM booking_directory
WHERE client_id = $1
ORDER BY booking_at DESC
LIMIT $2
`

const listByStylistSQL = `
SELECT booking_id, client_id, stylist_id, status, booking_at, updated_at
FROM booking_directory
WHERE stylist_id = $1
ORDER BY booking_at DESC
LIMIT $2
`

func (d *BookingDirectory) ListByClient(ctx context.Context, clientID uuid.UUID, limit int) ([]*queries.BookingSummary, error) {
	return d.list(ctx, listByClientSQL, clientID, limit)
}

func (d *BookingDirectory) ListByStylist(ctx context.Context, stylistID uuid.UUID, limit int) ([]*queries.BookingSummary, error) {
	return d.list(ctx, listByStylistSQL, stylistID, limit)
}

func (d *BookingDirectory) list(ctx context.Context, sql string, id uuid.UUID, limit int) ([]*queries.BookingSummary, error) {
	rows, err := d.pool.Query(ctx, sql, id, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings", err)
	}
	defer rows.Close()

	var out []*queries.BookingSummary
	for rows.Next() {
		var summary queries.BookingSummary
		if err := rows.Scan(&summary.ID, &summary.ClientID, &summary.StylistID, &summary.Status, &summary.BookingAt, &summary.UpdatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking summary", err)
		}
		out = append(out, &summary)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate booking summaries", err)
	}
	return out, nil
}
