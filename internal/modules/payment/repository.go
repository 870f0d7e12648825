package payment

import (
	"context"

	"github.com/google/uuid"

	"github.com/georgemunganga/restaurant-pos/internal/modules/order"
)

// Repository defines data access for payments.
type Repository interface {
	// Process settles an order in one transaction: it locks the order, rejects
	// a completed one with ErrAlreadyPaid, inserts p, completes the order,
	// records entry and frees a dine-in table that has no other active order.
	Process(ctx context.Context, p *Payment, entry *order.StatusLog) (*Settlement, error)

	Get(ctx context.Context, id uuid.UUID) (*Payment, error)
	ListByOrder(ctx context.Context, orderID uuid.UUID) ([]*Payment, error)
}
