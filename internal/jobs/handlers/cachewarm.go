package handlers

import (
	"context"
	"encoding/json"
	"time"

	"salonbook/internal/domain/booking"
	"salonbook/internal/infra/queue"
	"salonbook/internal/jobs"
	"salonbook/internal/pkg/clock"
	"salonbook/internal/pkg/errs"
	"salonbook/internal/usecase/commands"
	"salonbook/internal/usecase/queries"

	"github.com/google/uuid"
)

// CacheWarmHandler pre-materializes a booking's state into the snapshot
// store so the next read skips a full replay.
type CacheWarmHandler struct {
	events    queries.EventReader
	snapshots commands.SnapshotStore
	directory queries.DirectoryReader
	clock     clock.Clock
}

func NewCacheWarmHandler(events queries.EventReader, snapshots commands.SnapshotStore, directory queries.DirectoryReader, clk clock.Clock) *CacheWarmHandler {
	return &CacheWarmHandler{events: events, snapshots: snapshots, directory: directory, clock: clk}
}

func (h *CacheWarmHandler) Handle(ctx context.Context, job queue.Job) error {
	var ref jobs.BookingRef
	if err := json.Unmarshal(job.Payload, &ref); err != nil {
		return errs.Wrap(err, "invalid cache warm job payload")
	}
	return h.warm(ctx, ref.BookingID)
}

// HandleSweep warms the bookings most likely to be read next: confirmed
// appointments inside the coming 24h.
func (h *CacheWarmHandler) HandleSweep(ctx context.Context, _ queue.Job) error {
	now := h.clock.Now()
	upcoming, err := h.directory.FindUpcomingConfirmed(ctx, now, now.Add(24*time.Hour))
	if err != nil {
		return err
	}
	for _, summary := range upcoming {
		if err := h.warm(ctx, summary.ID); err != nil {
			return err
		}
	}
	return nil
}

func (h *CacheWarmHandler) warm(ctx context.Context, bookingID uuid.UUID) error {
	events, err := h.events.LoadEvents(ctx, bookingID, 1)
	if err != nil {
		return err
	}
	if len(events) == 0 {
		return nil
	}

	state, err := booking.Replay(nil, events)
	if err != nil {
		return errs.Mark(err, errs.ErrReplayInconsistency)
	}
	return h.snapshots.Save(ctx, state)
}
