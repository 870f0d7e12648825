package table

import (
	"time"

	"github.com/google/uuid"

	"github.com/georgemunganga/restaurant-pos/internal/apperr"
)

// Status is the occupancy state of a table.
type Status string

const (
	StatusFree     Status = "FREE"
	StatusOccupied Status = "OCCUPIED"
	StatusReserved Status = "RESERVED"
)

var (
	// ErrNotFree is returned when a claim or reservation finds the table taken.
	ErrNotFree = apperr.New(apperr.ErrConflict, "table is not free")
	// ErrNotReserved is returned when a cancelled reservation no longer holds the table.
	ErrNotReserved = apperr.New(apperr.ErrConflict, "table is not reserved")
	// ErrInUse is returned when a release finds an active dine-in order on the table.
	ErrInUse = apperr.New(apperr.ErrConflict, "table has an active dine-in order")
)

// statusConflict names why a transition out of from did not apply.
func statusConflict(from Status) error {
	if from == StatusReserved {
		return ErrNotReserved
	}
	return ErrNotFree
}

// Floor groups the tables of one dining area.
type Floor struct {
	ID        uuid.UUID `json:"id"`
	BranchID  uuid.UUID `json:"branch_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Table is a seating location. OCCUPIED means exactly one non-completed
// dine-in order is attached to it.
type Table struct {
	ID        uuid.UUID `json:"id"`
	FloorID   uuid.UUID `json:"floor_id"`
	Label     string    `json:"label"`
	Seats     int       `json:"seats"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Mismatch is a table whose status disagrees with its active dine-in orders.
type Mismatch struct {
	TableID      uuid.UUID `json:"table_id"`
	Label        string    `json:"label"`
	Status       Status    `json:"status"`
	ActiveOrders int       `json:"active_orders"`
}

type CreateFloorRequest struct {
	BranchID string `json:"branch_id"`
	Name     string `json:"name"`
}

type CreateTableRequest struct {
	FloorID string `json:"floor_id"`
	Label   string `json:"label"`
	Seats   int    `json:"seats"`
}
