package catalog

import (
	"context"

	"github.com/google/uuid"
)

// ListFilter narrows a product listing. Zero values match everything.
type ListFilter struct {
	BranchID   *uuid.UUID
	Category   string
	ActiveOnly bool
}

// Repository defines the interface for product storage.
type Repository interface {
	Create(ctx context.Context, p *Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*Product, error)
	List(ctx context.Context, f ListFilter) ([]*Product, error)
	Update(ctx context.Context, p *Product) error
}
