package gateway

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"sync"
)

// StubPaymentGateway stands in for the real payment provider. Transaction
// IDs derive from the idempotency key, so a retried capture returns the same
// ID the first attempt would have produced.
type StubPaymentGateway struct {
	mu       sync.Mutex
	captured map[string]int64
	refunded map[string]int64
}

func NewStubPaymentGateway() *StubPaymentGateway {
	return &StubPaymentGateway{
		captured: make(map[string]int64),
		refunded: make(map[string]int64),
	}
}

func (g *StubPaymentGateway) Capture(_ context.Context, idempotencyKey string, amountCents int64) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.captured[idempotencyKey]; !ok {
		g.captured[idempotencyKey] = amountCents
		slog.Info("payment captured", "idempotency_key", idempotencyKey, "amount_cents", amountCents)
	}
	return transactionID("cap", idempotencyKey), nil
}

func (g *StubPaymentGateway) Refund(_ context.Context, idempotencyKey string, amountCents int64) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.refunded[idempotencyKey]; !ok {
		g.refunded[idempotencyKey] = amountCents
		slog.Info("payment refunded", "idempotency_key", idempotencyKey, "amount_cents", amountCents)
	}
	return transactionID("ref", idempotencyKey), nil
}

func transactionID(prefix, idempotencyKey string) string {
	sum := sha256.Sum256([]byte(idempotencyKey))
	return prefix + "_" + hex.EncodeToString(sum[:8])
}
