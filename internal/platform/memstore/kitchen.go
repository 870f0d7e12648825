package memstore

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/georgemunganga/restaurant-pos/internal/apperr"
	"github.com/georgemunganga/restaurant-pos/internal/modules/kitchen"
	"github.com/georgemunganga/restaurant-pos/internal/modules/order"
)

type kitchenRepo struct{ s *Store }

func (r kitchenRepo) UpdateStatus(ctx context.Context, orderID uuid.UUID, from, to order.Status, entry *order.StatusLog) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.orders[orderID]
	if !ok {
		return apperr.NotFound("order %s not found", orderID)
	}
	if o.Status != from {
		return fmt.Errorf("order %s: %w", orderID, kitchen.ErrStaleStatus)
	}
	o.Status = to
	o.UpdatedAt = r.s.now()
	r.s.appendLogLocked(entry)
	return nil
}

func (r kitchenRepo) ListByStatus(ctx context.Context, branchID *uuid.UUID, statuses ...order.Status) ([]*order.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	want := map[order.Status]bool{}
	for _, st := range statuses {
		want[st] = true
	}
	return r.s.filterOrdersLocked(func(o *order.Order) bool {
		return want[o.Status] && (branchID == nil || o.BranchID == *branchID)
	}), nil
}

func (r kitchenRepo) History(ctx context.Context, orderID uuid.UUID) ([]*order.StatusLog, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []*order.StatusLog{}
	for _, e := range r.s.logs {
		if e.OrderID == orderID {
			c := *e
			out = append(out, &c)
		}
	}
	return out, nil
}
