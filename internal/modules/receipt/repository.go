package receipt

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines data access for receipts.
type Repository interface {
	// NextSequence returns the next value of the receipt number sequence.
	NextSequence(ctx context.Context) (int64, error)
	Create(ctx context.Context, r *Receipt) error
	ListByOrder(ctx context.Context, orderID uuid.UUID) ([]*Receipt, error)
}
