package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/georgemunganga/restaurant-pos/internal/apperr"
)

// Type tells whether an order is eaten in (and holds a table) or taken away.
type Type string

const (
	TypeDineIn   Type = "DINE_IN"
	TypeTakeaway Type = "TAKEAWAY"
)

// Status represents the lifecycle state of an order.
type Status string

const (
	StatusCreated    Status = "CREATED"
	StatusInProgress Status = "IN_PROGRESS"
	StatusReady      Status = "READY"
	StatusCompleted  Status = "COMPLETED"
)

var (
	ErrSessionClosed = apperr.New(apperr.ErrInvalid, "session is closed")
	ErrCompleted     = apperr.New(apperr.ErrInvalid, "order is already completed")
)

// Order is a ticket opened against a session. TotalAmount always equals the
// sum of its item line totals.
type Order struct {
	ID          uuid.UUID       `json:"id"`
	BranchID    uuid.UUID       `json:"branch_id"`
	SessionID   uuid.UUID       `json:"session_id"`
	TableID     *uuid.UUID      `json:"table_id,omitempty"` // dine-in only
	CustomerID  *uuid.UUID      `json:"customer_id,omitempty"`
	OrderType   Type            `json:"order_type"`
	Status      Status          `json:"status"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Items       []*Item         `json:"items"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// Item is an immutable line. PriceAtTime and ProductName are snapshots taken
// when the line was added.
type Item struct {
	ID          uuid.UUID       `json:"id"`
	OrderID     uuid.UUID       `json:"order_id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	PriceAtTime decimal.Decimal `json:"price_at_time"`
	CreatedAt   time.Time       `json:"created_at"`
}

func (i *Item) LineTotal() decimal.Decimal {
	return i.PriceAtTime.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// StatusLog records one status an order entered.
type StatusLog struct {
	ID        uuid.UUID  `json:"id"`
	OrderID   uuid.UUID  `json:"order_id"`
	Status    Status     `json:"status"`
	ChangedBy *uuid.UUID `json:"changed_by,omitempty"`
	Note      string     `json:"note,omitempty"`
	ChangedAt time.Time  `json:"changed_at"`
}

// ItemRequest is one requested line.
type ItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// CreateOrderRequest is the payload for opening an order. BranchID defaults
// to the branch of the session's terminal.
type CreateOrderRequest struct {
	BranchID   string        `json:"branch_id,omitempty"`
	SessionID  string        `json:"session_id"`
	OrderType  string        `json:"order_type"`
	TableID    string        `json:"table_id,omitempty"`
	CustomerID string        `json:"customer_id,omitempty"`
	Items      []ItemRequest `json:"items,omitempty"`
}

type AddItemsRequest struct {
	Items []ItemRequest `json:"items"`
}
