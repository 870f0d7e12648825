package receipt

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/georgemunganga/restaurant-pos/internal/modules/order"
	"github.com/georgemunganga/restaurant-pos/internal/modules/payment"
)

// TakeawayLabel replaces the table label on receipts without a table.
const TakeawayLabel = "Takeaway"

// Receipt is the issued record of a paid order. Numbers are never reused.
type Receipt struct {
	ID            uuid.UUID `json:"id"`
	OrderID       uuid.UUID `json:"order_id"`
	ReceiptNumber string    `json:"receipt_number"`
	IssuedAt      time.Time `json:"issued_at"`
}

// Line is one printed receipt row.
type Line struct {
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// View is the printable projection returned to the client.
type View struct {
	Receipt
	OrderType  order.Type         `json:"order_type"`
	TableLabel string             `json:"table_label"`
	Items      []Line             `json:"items"`
	Total      decimal.Decimal    `json:"total"`
	Payments   []*payment.Payment `json:"payments"`
}
