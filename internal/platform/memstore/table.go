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

type tableRepo struct{ s *Store }

func (r tableRepo) CreateFloor(ctx context.Context, f *table.Floor) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	f.CreatedAt = r.s.now()
	c := *f
	r.s.floors[f.ID] = &c
	return nil
}

func (r tableRepo) ListFloors(ctx context.Context, branchID uuid.UUID) ([]*table.Floor, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*table.Floor
	for _, f := range r.s.floors {
		if f.BranchID == branchID {
			c := *f
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r tableRepo) CreateTable(ctx context.Context, t *table.Table) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.floors[t.FloorID]; !ok {
		return apperr.NotFound("floor %s not found", t.FloorID)
	}
	if t.Status == "" {
		t.Status = table.StatusFree
	}
	t.CreatedAt = r.s.now()
	t.UpdatedAt = t.CreatedAt
	r.s.tables[t.ID] = copyTable(t)
	return nil
}

func (r tableRepo) GetTable(ctx context.Context, id uuid.UUID) (*table.Table, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.tables[id]
	if !ok {
		return nil, apperr.NotFound("table %s not found", id)
	}
	return copyTable(t), nil
}

func (r tableRepo) ListTables(ctx context.Context, floorID *uuid.UUID) ([]*table.Table, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*table.Table
	for _, t := range r.s.tables {
		if floorID == nil || t.FloorID == *floorID {
			out = append(out, copyTable(t))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Label < out[j].Label })
	return out, nil
}

func (r tableRepo) Transition(ctx context.Context, id uuid.UUID, from, to table.Status) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.transitionLocked(id, from, to)
}

func (r tableRepo) ReleaseIdle(ctx context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.tables[id]; !ok {
		return apperr.NotFound("table %s not found", id)
	}
	for _, o := range r.s.orders {
		if o.OrderType == order.TypeDineIn && o.TableID != nil && *o.TableID == id && o.Status != order.StatusCompleted {
			return fmt.Errorf("table %s: %w", id, table.ErrInUse)
		}
	}
	return r.s.releaseLocked(id)
}

func (r tableRepo) Mismatches(ctx context.Context) ([]*table.Mismatch, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	active := map[uuid.UUID]int{}
	for _, o := range r.s.orders {
		if o.OrderType == order.TypeDineIn && o.TableID != nil && o.Status != order.StatusCompleted {
			active[*o.TableID]++
		}
	}
	var out []*table.Mismatch
	for _, t := range r.s.tables {
		n := active[t.ID]
		occupied := t.Status == table.StatusOccupied
		if (occupied && n != 1) || (!occupied && n > 0) {
			out = append(out, &table.Mismatch{TableID: t.ID, Label: t.Label, Status: t.Status, ActiveOrders: n})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Label < out[j].Label })
	return out, nil
}

// Callers hold mu.
func (s *Store) transitionLocked(id uuid.UUID, from, to table.Status) error {
	t, ok := s.tables[id]
	if !ok {
		return apperr.NotFound("table %s not found", id)
	}
	if t.Status != from {
		if from == table.StatusReserved {
			return fmt.Errorf("table %s: %w", id, table.ErrNotReserved)
		}
		return fmt.Errorf("table %s: %w", id, table.ErrNotFree)
	}
	t.Status = to
	t.UpdatedAt = s.now()
	return nil
}

func (s *Store) releaseLocked(id uuid.UUID) error {
	t, ok := s.tables[id]
	if !ok {
		return apperr.NotFound("table %s not found", id)
	}
	t.Status = table.StatusFree
	t.UpdatedAt = s.now()
	return nil
}

// SetTableStatus overwrites a table's status without any check. Tests use it
// to simulate drift.
func (s *Store) SetTableStatus(id uuid.UUID, status table.Status) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.tables[id]; ok {
		t.Status = status
	}
}
