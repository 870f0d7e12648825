package memstore

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/georgemunganga/restaurant-pos/internal/apperr"
	"github.com/georgemunganga/restaurant-pos/internal/modules/order"
	"github.com/georgemunganga/restaurant-pos/internal/modules/table"
)

type orderRepo struct{ s *Store }

func (r orderRepo) Create(ctx context.Context, o *order.Order, entry *order.StatusLog) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	ss, ok := r.s.sessions[o.SessionID]
	if !ok {
		return apperr.NotFound("session %s not found", o.SessionID)
	}
	if !ss.IsOpen() {
		return fmt.Errorf("session %s: %w", o.SessionID, order.ErrSessionClosed)
	}
	if o.TableID != nil {
		if err := r.s.transitionLocked(*o.TableID, table.StatusFree, table.StatusOccupied); err != nil {
			return err
		}
	}

	o.CreatedAt = r.s.now()
	o.UpdatedAt = o.CreatedAt
	for _, it := range o.Items {
		it.OrderID = o.ID
		it.CreatedAt = o.CreatedAt
	}
	r.s.orders[o.ID] = copyOrder(o)
	r.s.appendLogLocked(entry)
	return nil
}

func (r orderRepo) AddItems(ctx context.Context, orderID uuid.UUID, items []*order.Item) (*order.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.orders[orderID]
	if !ok {
		return nil, apperr.NotFound("order %s not found", orderID)
	}
	if o.Status == order.StatusCompleted {
		return nil, fmt.Errorf("order %s: %w", orderID, order.ErrCompleted)
	}
	now := r.s.now()
	for _, it := range items {
		it.OrderID = orderID
		it.CreatedAt = now
		c := *it
		o.Items = append(o.Items, &c)
		o.TotalAmount = o.TotalAmount.Add(it.LineTotal())
	}
	o.UpdatedAt = now
	return copyOrder(o), nil
}

func (r orderRepo) Get(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.orders[id]
	if !ok {
		return nil, apperr.NotFound("order %s not found", id)
	}
	return copyOrder(o), nil
}

func (r orderRepo) GetActiveForTable(ctx context.Context, tableID uuid.UUID) (*order.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var found *order.Order
	for _, o := range r.s.orders {
		if o.OrderType != order.TypeDineIn || o.TableID == nil || *o.TableID != tableID || o.Status == order.StatusCompleted {
			continue
		}
		if found == nil || o.CreatedAt.After(found.CreatedAt) {
			found = o
		}
	}
	if found == nil {
		return nil, apperr.NotFound("table %s has no active order", tableID)
	}
	return copyOrder(found), nil
}

func (r orderRepo) ListBySession(ctx context.Context, sessionID uuid.UUID) ([]*order.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.filterOrdersLocked(func(o *order.Order) bool { return o.SessionID == sessionID }), nil
}

// Callers hold mu.
func (s *Store) filterOrdersLocked(match func(*order.Order) bool) []*order.Order {
	var out []*order.Order
	for _, o := range s.orders {
		if match(o) {
			out = append(out, copyOrder(o))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

func (s *Store) appendLogLocked(e *order.StatusLog) {
	e.ChangedAt = s.now()
	c := *e
	s.logs = append(s.logs, &c)
}
