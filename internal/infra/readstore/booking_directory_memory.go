package readstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"salonbook/internal/domain/booking"
	"salonbook/internal/usecase/commands"
	"salonbook/internal/usecase/queries"

	"github.com/google/uuid"
)

// MemoryBookingDirectory mirrors BookingDirectory for tests and
// single-process setups.
type MemoryBookingDirectory struct {
	mu      sync.RWMutex
	entries map[uuid.UUID]commands.DirectoryEntry
}

func NewMemoryBookingDirectory() *MemoryBookingDirectory {
	return &MemoryBookingDirectory{entries: make(map[uuid.UUID]commands.DirectoryEntry)}
}

func (d *MemoryBookingDirectory) Upsert(_ context.Context, entry commands.DirectoryEntry) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if prev, ok := d.entries[entry.BookingID]; ok && prev.UpdatedAt.After(entry.UpdatedAt) {
		return nil
	}
	d.entries[entry.BookingID] = entry
	return nil
}

func (d *MemoryBookingDirectory) FindExpirationCandidates(_ context.Context, now time.Time) ([]queries.ExpirationCandidate, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	var out []queries.ExpirationCandidate
	for _, entry := range d.entries {
		switch entry.Status {
		case booking.StatusPending:
			if entry.RequestExpiresAt != nil && !entry.RequestExpiresAt.After(now) {
				out = append(out, queries.ExpirationCandidate{BookingID: entry.BookingID, Reason: "request window elapsed"})
			}
		case booking.StatusVerifyAcceptance:
			if entry.AcceptanceExpiresAt != nil && !entry.AcceptanceExpiresAt.After(now) {
				out = append(out, queries.ExpirationCandidate{BookingID: entry.BookingID, Reason: "acceptance window elapsed"})
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].BookingID.String() < out[j].BookingID.String() })
	return out, nil
}

func (d *MemoryBookingDirectory) FindUpcomingConfirmed(_ context.Context, from, until time.Time) ([]*queries.BookingSummary, error) {
	out, err := d.list(func(e commands.DirectoryEntry) bool {
		return e.Status == booking.StatusConfirmed && !e.BookingAt.Before(from) && e.BookingAt.Before(until)
	}, 0)
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool { return out[i].BookingAt.Before(out[j].BookingAt) })
	return out, nil
}

func (d *MemoryBookingDirectory) CountByStatus(_ context.Context, since time.Time) (map[string]int64, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	counts := make(map[string]int64)
	for _, entry := range d.entries {
		if entry.UpdatedAt.Before(since) {
			continue
		}
		counts[string(entry.Status)]++
	}
	return counts, nil
}

func (d *MemoryBookingDirectory) ListByClient(_ context.Context, clientID uuid.UUID, limit int) ([]*queries.BookingSummary, error) {
	return d.list(func(e commands.DirectoryEntry) bool { return e.ClientID == clientID }, limit)
}

func (d *MemoryBookingDirectory) ListByStylist(_ context.Context, stylistID uuid.UUID, limit int) ([]*queries.BookingSummary, error) {
	return d.list(func(e commands.DirectoryEntry) bool { return e.StylistID == stylistID }, limit)
}

func (d *MemoryBookingDirectory) list(match func(commands.DirectoryEntry) bool, limit int) ([]*queries.BookingSummary, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	var out []*queries.BookingSummary
	for _, entry := range d.entries {
		if !match(entry) {
			continue
		}
		out = append(out, &queries.BookingSummary{
			ID:        entry.BookingID,
			ClientID:  entry.ClientID,
			StylistID: entry.StylistID,
			Status:    string(entry.Status),
			BookingAt: entry.BookingAt,
			UpdatedAt: entry.UpdatedAt,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].BookingAt.After(out[j].BookingAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
