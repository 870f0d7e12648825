package memstore

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/georgemunganga/restaurant-pos/internal/apperr"
	"github.com/georgemunganga/restaurant-pos/internal/modules/order"
	"github.com/georgemunganga/restaurant-pos/internal/modules/payment"
)

type paymentRepo struct{ s *Store }

func (r paymentRepo) Process(ctx context.Context, p *payment.Payment, entry *order.StatusLog) (*payment.Settlement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.orders[p.OrderID]
	if !ok {
		return nil, apperr.NotFound("order %s not found", p.OrderID)
	}
	if o.Status == order.StatusCompleted {
		return nil, fmt.Errorf("order %s: %w", p.OrderID, payment.ErrAlreadyPaid)
	}

	p.CreatedAt = r.s.now()
	c := *p
	r.s.payments = append(r.s.payments, &c)
	o.Status = order.StatusCompleted
	o.UpdatedAt = p.CreatedAt
	r.s.appendLogLocked(entry)

	st := &payment.Settlement{Payment: p, OrderTotal: o.TotalAmount}
	if o.OrderType != order.TypeDineIn || o.TableID == nil {
		return st, nil
	}
	tableID := *o.TableID
	st.TableID = &tableID
	for _, other := range r.s.orders {
		if other.ID != o.ID && other.TableID != nil && *other.TableID == tableID && other.Status != order.StatusCompleted {
			return st, nil
		}
	}
	if err := r.s.releaseLocked(tableID); err != nil {
		return nil, err
	}
	st.TableReleased = true
	return st, nil
}

func (r paymentRepo) Get(ctx context.Context, id uuid.UUID) (*payment.Payment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.payments {
		if p.ID == id {
			c := *p
			return &c, nil
		}
	}
	return nil, apperr.NotFound("payment %s not found", id)
}

func (r paymentRepo) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]*payment.Payment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []*payment.Payment{}
	for _, p := range r.s.payments {
		if p.OrderID == orderID {
			c := *p
			out = append(out, &c)
		}
	}
	return out, nil
}
