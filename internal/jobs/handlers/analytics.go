package handlers

import (
	"context"
	"encoding/json"
	"time"

	"salonbook/internal/infra/queue"
	"salonbook/internal/jobs"
	"salonbook/internal/pkg/clock"
	"salonbook/internal/pkg/errs"
	"salonbook/internal/usecase/queries"
)

type AnalyticsHandler struct {
	sink      AnalyticsSink
	directory queries.DirectoryReader
	clock     clock.Clock
}

func NewAnalyticsHandler(sink AnalyticsSink, directory queries.DirectoryReader, clk clock.Clock) *AnalyticsHandler {
	return &AnalyticsHandler{sink: sink, directory: directory, clock: clk}
}

func (h *AnalyticsHandler) Handle(ctx context.Context, job queue.Job) error {
	var payload jobs.TrackEventPayload
	if err := json.Unmarshal(job.Payload, &payload); err != nil {
		return errs.Wrap(err, "invalid analytics job payload")
	}
	return h.sink.Track(ctx, payload.BookingID, payload.EventType, payload.Sequence)
}

// HandleRollup pushes per-status counts of the last 24h to the sink.
func (h *AnalyticsHandler) HandleRollup(ctx context.Context, _ queue.Job) error {
	since := h.clock.Now().Add(-24 * time.Hour)
	counts, err := h.directory.CountByStatus(ctx, since)
	if err != nil {
		return err
	}
	return h.sink.Rollup(ctx, since, counts)
}
