package memstore

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/georgemunganga/restaurant-pos/internal/apperr"
	"github.com/georgemunganga/restaurant-pos/internal/modules/staff"
)

type staffRepo struct{ s *Store }

func (r staffRepo) Create(ctx context.Context, m *staff.Staff) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.staff {
		if strings.EqualFold(existing.Email, m.Email) {
			return apperr.Conflict("email %s already registered", m.Email)
		}
	}
	m.CreatedAt = r.s.now()
	m.UpdatedAt = m.CreatedAt
	c := *m
	r.s.staff[m.ID] = &c
	return nil
}

func (r staffRepo) GetByEmail(ctx context.Context, email string) (*staff.Staff, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, m := range r.s.staff {
		if strings.EqualFold(m.Email, email) {
			c := *m
			return &c, nil
		}
	}
	return nil, apperr.NotFound("staff %s not found", email)
}

func (r staffRepo) GetByID(ctx context.Context, id uuid.UUID) (*staff.Staff, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m, ok := r.s.staff[id]
	if !ok {
		return nil, apperr.NotFound("staff %s not found", id)
	}
	c := *m
	return &c, nil
}

func (r staffRepo) ListByBranch(ctx context.Context, branchID uuid.UUID) ([]*staff.Staff, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*staff.Staff
	for _, m := range r.s.staff {
		if m.BranchID == branchID {
			c := *m
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
