package memstore

import (
	"context"

	"github.com/google/uuid"

	"github.com/georgemunganga/restaurant-pos/internal/apperr"
	"github.com/georgemunganga/restaurant-pos/internal/modules/receipt"
)

type receiptRepo struct{ s *Store }

func (r receiptRepo) NextSequence(ctx context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.seq++
	return r.s.seq, nil
}

func (r receiptRepo) Create(ctx context.Context, rc *receipt.Receipt) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.receipts {
		if existing.ReceiptNumber == rc.ReceiptNumber {
			return apperr.Conflict("receipt number %s already issued", rc.ReceiptNumber)
		}
	}
	c := *rc
	r.s.receipts = append(r.s.receipts, &c)
	return nil
}

func (r receiptRepo) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]*receipt.Receipt, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []*receipt.Receipt{}
	for _, rc := range r.s.receipts {
		if rc.OrderID == orderID {
			c := *rc
			out = append(out, &c)
		}
	}
	return out, nil
}
