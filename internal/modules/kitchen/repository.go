package kitchen

import (
	"context"

	"github.com/google/uuid"

	"github.com/georgemunganga/restaurant-pos/internal/modules/order"
)

// Repository defines data access for the kitchen queue.
type Repository interface {
	// UpdateStatus writes to only if the order is still in from, and records
	// entry in the same transaction. It returns ErrStaleStatus otherwise.
	UpdateStatus(ctx context.Context, orderID uuid.UUID, from, to order.Status, entry *order.StatusLog) error

	// ListByStatus returns orders in any of statuses, oldest first. A nil
	// branchID matches every branch.
	ListByStatus(ctx context.Context, branchID *uuid.UUID, statuses ...order.Status) ([]*order.Order, error)

	// History returns the status log of an order, oldest first.
	History(ctx context.Context, orderID uuid.UUID) ([]*order.StatusLog, error)
}
