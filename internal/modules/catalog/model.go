package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a menu item. A nil BranchID means it is sold at every branch.
type Product struct {
	ID        uuid.UUID       `json:"id"`
	BranchID  *uuid.UUID      `json:"branch_id,omitempty"`
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	Price     decimal.Decimal `json:"price"`
	IsActive  bool            `json:"is_active"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// CreateProductRequest holds the data for creating or replacing a product.
type CreateProductRequest struct {
	BranchID string          `json:"branch_id,omitempty"`
	Name     string          `json:"name"`
	Category string          `json:"category"`
	Price    decimal.Decimal `json:"price"`
	IsActive *bool           `json:"is_active,omitempty"`
}
