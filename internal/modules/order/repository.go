package order

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines data access for orders.
type Repository interface {
	// Create persists o, its items and the first status log entry in one
	// transaction. The session is re-read under a share lock and, for dine-in,
	// the table is claimed in the same transaction.
	Create(ctx context.Context, o *Order, entry *StatusLog) error

	// AddItems appends items to a non-completed order and increments its
	// total atomically, returning the updated order.
	AddItems(ctx context.Context, orderID uuid.UUID, items []*Item) (*Order, error)

	// Get retrieves an order with its items.
	Get(ctx context.Context, id uuid.UUID) (*Order, error)

	// GetActiveForTable returns the non-completed dine-in order on a table.
	GetActiveForTable(ctx context.Context, tableID uuid.UUID) (*Order, error)

	// ListBySession returns the orders of a session, oldest first.
	ListBySession(ctx context.Context, sessionID uuid.UUID) ([]*Order, error)
}
