package staff

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines data access for staff members.
type Repository interface {
	Create(ctx context.Context, s *Staff) error
	GetByEmail(ctx context.Context, email string) (*Staff, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Staff, error)
	ListByBranch(ctx context.Context, branchID uuid.UUID) ([]*Staff, error)
}
