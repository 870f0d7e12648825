package memstore

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/georgemunganga/restaurant-pos/internal/apperr"
	"github.com/georgemunganga/restaurant-pos/internal/modules/catalog"
)

type catalogRepo struct{ s *Store }

func (r catalogRepo) Create(ctx context.Context, p *catalog.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p.CreatedAt = r.s.now()
	p.UpdatedAt = p.CreatedAt
	c := *p
	r.s.products[p.ID] = &c
	return nil
}

func (r catalogRepo) GetByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok {
		return nil, apperr.NotFound("product %s not found", id)
	}
	c := *p
	return &c, nil
}

func (r catalogRepo) List(ctx context.Context, f catalog.ListFilter) ([]*catalog.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*catalog.Product
	for _, p := range r.s.products {
		if f.BranchID != nil && p.BranchID != nil && *p.BranchID != *f.BranchID {
			continue
		}
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		if f.ActiveOnly && !p.IsActive {
			continue
		}
		c := *p
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (r catalogRepo) Update(ctx context.Context, p *catalog.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[p.ID]; !ok {
		return apperr.NotFound("product %s not found", p.ID)
	}
	p.UpdatedAt = r.s.now()
	c := *p
	r.s.products[p.ID] = &c
	return nil
}
