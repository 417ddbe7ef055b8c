package handlers

import (
	"context"
	"encoding/json"

	"salonbook/internal/infra/queue"
	"salonbook/internal/jobs"
	"salonbook/internal/pkg/errs"
)

type CalendarSyncHandler struct {
	gateway CalendarGateway
}

func NewCalendarSyncHandler(gateway CalendarGateway) *CalendarSyncHandler {
	return &CalendarSyncHandler{gateway: gateway}
}

func (h *CalendarSyncHandler) Handle(ctx context.Context, job queue.Job) error {
	var payload jobs.CalendarSyncPayload
	if err := json.Unmarshal(job.Payload, &payload); err != nil {
		return errs.Wrap(err, "invalid calendar sync job payload")
	}
	return h.gateway.Sync(ctx, payload.BookingID, payload.Action)
}
