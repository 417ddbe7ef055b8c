package handlers

import (
	"context"
	"encoding/json"

	"salonbook/internal/infra/queue"
	"salonbook/internal/jobs"
	"salonbook/internal/pkg/errs"
)

// EmailHandler sends lifecycle notification mail. The job name doubles as
// the mail template.
type EmailHandler struct {
	mailer Mailer
}

func NewEmailHandler(mailer Mailer) *EmailHandler {
	return &EmailHandler{mailer: mailer}
}

func (h *EmailHandler) Handle(ctx context.Context, job queue.Job) error {
	var ref jobs.BookingRef
	if err := json.Unmarshal(job.Payload, &ref); err != nil {
		return errs.Wrap(err, "invalid email job payload")
	}
	return h.mailer.Send(ctx, job.Name, ref.BookingID)
}
