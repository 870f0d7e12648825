package payment

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/georgemunganga/restaurant-pos/internal/apperr"
)

// Method represents how an order was paid.
type Method string

const (
	MethodCash Method = "CASH"
	MethodUPI  Method = "UPI"
	MethodCard Method = "CARD"
)

// Status represents the state of a payment.
type Status string

const StatusCompleted Status = "COMPLETED"

// ErrAlreadyPaid is returned for a second payment against a completed order.
var ErrAlreadyPaid = apperr.New(apperr.ErrInvalid, "order is already completed")

// Payment records money taken against an order.
type Payment struct {
	ID                   uuid.UUID       `json:"id"`
	OrderID              uuid.UUID       `json:"order_id"`
	Method               Method          `json:"method"`
	Amount               decimal.Decimal `json:"amount"`
	Status               Status          `json:"status"`
	TransactionReference *string         `json:"transaction_reference,omitempty"`
	CreatedAt            time.Time       `json:"created_at"`
}

// Settlement is what the payment transaction observed and changed.
type Settlement struct {
	Payment       *Payment
	OrderTotal    decimal.Decimal
	TableID       *uuid.UUID
	TableReleased bool
}

// ProcessPaymentRequest is the payload for paying an order.
type ProcessPaymentRequest struct {
	OrderID              string          `json:"order_id"`
	Amount               decimal.Decimal `json:"amount"`
	Method               string          `json:"method"`
	TransactionReference string          `json:"transaction_reference,omitempty"`
}
