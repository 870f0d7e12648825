// Package notify publishes domain events to the kitchen display and floor
// clients. Delivery is best effort: a failed publish is logged and never
// undoes the state change that produced it.
package notify

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Event is the routing key of a published message.
type Event string

const (
	KitchenNewOrder    Event = "kitchen.new_order"
	TableStatusChanged Event = "table.status_changed"
	OrderStatusChanged Event = "order.status_changed"
	OrderPaid          Event = "order.paid"
)

// Publisher delivers one event. Implementations must be safe for concurrent use.
type Publisher interface {
	Publish(ctx context.Context, event Event, payload any) error
}

// Envelope is the JSON body written to the broker.
type Envelope struct {
	Event      Event     `json:"event"`
	OccurredAt time.Time `json:"occurred_at"`
	Payload    any       `json:"payload"`
}

// ── payloads ─────────────────────────────────────────────────────────────────

type KitchenItem struct {
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
}

type NewOrderPayload struct {
	OrderID   uuid.UUID     `json:"order_id"`
	BranchID  uuid.UUID     `json:"branch_id"`
	TableID   *uuid.UUID    `json:"table_id,omitempty"`
	OrderType string        `json:"order_type"`
	Items     []KitchenItem `json:"items"`
}

type TableStatusPayload struct {
	TableID uuid.UUID `json:"table_id"`
	Status  string    `json:"status"`
}

type OrderStatusPayload struct {
	OrderID uuid.UUID `json:"order_id"`
	From    string    `json:"from"`
	To      string    `json:"to"`
}

type OrderPaidPayload struct {
	OrderID   uuid.UUID       `json:"order_id"`
	PaymentID uuid.UUID       `json:"payment_id"`
	Amount    decimal.Decimal `json:"amount"`
	Method    string          `json:"method"`
}

// Notifier wraps a Publisher so callers never see its failures.
type Notifier struct {
	pub     Publisher
	log     *slog.Logger
	timeout time.Duration
}

func NewNotifier(pub Publisher, log *slog.Logger, timeout time.Duration) *Notifier {
	return &Notifier{pub: pub, log: log, timeout: timeout}
}

// Notify publishes on a context detached from the caller's cancellation, so an
// event produced at the end of a request still goes out after the response.
func (n *Notifier) Notify(ctx context.Context, event Event, payload any) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), n.timeout)
	defer cancel()

	if err := n.pub.Publish(ctx, event, payload); err != nil {
		n.log.WarnContext(ctx, "notification dropped",
			"action", "notify",
			"event", string(event),
			"error", err)
	}
}

// LogPublisher writes events to the process log. It is used when no broker
// is configured.
type LogPublisher struct{ log *slog.Logger }

func NewLogPublisher(log *slog.Logger) *LogPublisher { return &LogPublisher{log: log} }

func (p *LogPublisher) Publish(ctx context.Context, event Event, payload any) error {
	p.log.InfoContext(ctx, "event", "action", "notify", "event", string(event), "payload", payload)
	return nil
}
