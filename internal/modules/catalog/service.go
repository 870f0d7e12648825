package catalog

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/georgemunganga/restaurant-pos/internal/apperr"
)

// Service defines catalog business logic.
type Service interface {
	CreateProduct(ctx context.Context, req CreateProductRequest) (*Product, error)
	GetProduct(ctx context.Context, id string) (*Product, error)
	ListProducts(ctx context.Context, branchID, category string, activeOnly bool) ([]*Product, error)
	UpdateProduct(ctx context.Context, id string, req CreateProductRequest) (*Product, error)

	// Lookup resolves a product for pricing. Unknown ids are ErrNotFound.
	Lookup(ctx context.Context, id uuid.UUID) (*Product, error)
}

type service struct {
	repo Repository
	log  *slog.Logger
}

func NewService(repo Repository, log *slog.Logger) Service {
	return &service{repo: repo, log: log}
}

func (s *service) CreateProduct(ctx context.Context, req CreateProductRequest) (*Product, error) {
	p := &Product{ID: uuid.New(), IsActive: true}
	if err := apply(p, req); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	s.log.InfoContext(ctx, "product created", "action", "create_product", "product_id", p.ID, "price", p.Price)
	return p, nil
}

func (s *service) GetProduct(ctx context.Context, id string) (*Product, error) {
	uid, err := apperr.ParseID("product_id", id)
	if err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, uid)
}

func (s *service) ListProducts(ctx context.Context, branchID, category string, activeOnly bool) ([]*Product, error) {
	bid, err := apperr.ParseOptionalID("branch_id", branchID)
	if err != nil {
		return nil, err
	}
	return s.repo.List(ctx, ListFilter{BranchID: bid, Category: category, ActiveOnly: activeOnly})
}

func (s *service) UpdateProduct(ctx context.Context, id string, req CreateProductRequest) (*Product, error) {
	p, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := apply(p, req); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) Lookup(ctx context.Context, id uuid.UUID) (*Product, error) {
	return s.repo.GetByID(ctx, id)
}

func apply(p *Product, req CreateProductRequest) error {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return apperr.Invalid("name is required")
	}
	if req.Price.IsNegative() {
		return apperr.Invalid("price must not be negative")
	}
	bid, err := apperr.ParseOptionalID("branch_id", req.BranchID)
	if err != nil {
		return err
	}
	p.BranchID = bid
	p.Name = name
	p.Category = strings.TrimSpace(req.Category)
	p.Price = req.Price.Round(2)
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}
	return nil
}
