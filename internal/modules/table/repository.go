package table

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines data access for floors and tables.
type Repository interface {
	CreateFloor(ctx context.Context, f *Floor) error
	ListFloors(ctx context.Context, branchID uuid.UUID) ([]*Floor, error)

	CreateTable(ctx context.Context, t *Table) error
	GetTable(ctx context.Context, id uuid.UUID) (*Table, error)
	// ListTables returns every table, or only those on floorID when it is set.
	ListTables(ctx context.Context, floorID *uuid.UUID) ([]*Table, error)

	// Transition moves a table from one status to another in a single
	// conditional statement. It fails with a Conflict when the table is not in
	// from, and ErrNotFound when it does not exist.
	Transition(ctx context.Context, id uuid.UUID, from, to Status) error

	// ReleaseIdle sets the table FREE unless a non-completed dine-in order
	// references it, in which case it fails with ErrInUse.
	ReleaseIdle(ctx context.Context, id uuid.UUID) error

	// Mismatches lists tables whose status disagrees with their active dine-in orders.
	Mismatches(ctx context.Context) ([]*Mismatch, error)
}
