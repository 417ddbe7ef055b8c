package handlers

import (
	"context"
	"encoding/json"

	"salonbook/internal/infra/queue"
	"salonbook/internal/jobs"
	"salonbook/internal/pkg/errs"
	"salonbook/internal/usecase/commands"
)

// PaymentsHandler settles charges and refunds. The idempotency key derives
// from (booking, event sequence): a retried job re-sends the same key and the
// gateway returns the original transaction instead of moving money twice.
type PaymentsHandler struct {
	gateway  PaymentGateway
	commands commands.BookingCommands
}

func NewPaymentsHandler(gateway PaymentGateway, cmds commands.BookingCommands) *PaymentsHandler {
	return &PaymentsHandler{gateway: gateway, commands: cmds}
}

func (h *PaymentsHandler) HandleCapture(ctx context.Context, job queue.Job) error {
	var payload jobs.CapturePaymentPayload
	if err := json.Unmarshal(job.Payload, &payload); err != nil {
		return errs.Wrap(err, "invalid capture job payload")
	}

	key := jobs.IdempotencyKey(payload.BookingID, payload.EventSequence)
	transactionID, err := h.gateway.Capture(ctx, key, payload.AmountCents)
	if err != nil {
		return errs.Mark(err, errs.ErrExternalGatewayFailure)
	}

	_, err = h.commands.RecordPaymentCaptured(ctx, payload.BookingID, payload.AmountCents, transactionID, key)
	return err
}

func (h *PaymentsHandler) HandleRefund(ctx context.Context, job queue.Job) error {
	var payload jobs.RefundPaymentPayload
	if err := json.Unmarshal(job.Payload, &payload); err != nil {
		return errs.Wrap(err, "invalid refund job payload")
	}

	key := jobs.IdempotencyKey(payload.BookingID, payload.EventSequence)
	transactionID, err := h.gateway.Refund(ctx, key, payload.AmountCents)
	if err != nil {
		return errs.Mark(err, errs.ErrExternalGatewayFailure)
	}

	_, err = h.commands.RecordPaymentRefunded(ctx, payload.BookingID, payload.AmountCents, transactionID, key)
	return err
}
