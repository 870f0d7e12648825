package receipt

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/georgemunganga/restaurant-pos/internal/apperr"
	"github.com/georgemunganga/restaurant-pos/internal/modules/order"
	"github.com/georgemunganga/restaurant-pos/internal/modules/payment"
	"github.com/georgemunganga/restaurant-pos/internal/modules/table"
)

type Orders interface {
	GetOrder(ctx context.Context, id string) (*order.Order, error)
}

type Payments interface {
	ListOrderPayments(ctx context.Context, orderID string) ([]*payment.Payment, error)
}

type Tables interface {
	GetTable(ctx context.Context, id string) (*table.Table, error)
}

// Service assembles receipts for paid orders.
type Service interface {
	GenerateReceipt(ctx context.Context, orderID string) (*View, error)
	ListOrderReceipts(ctx context.Context, orderID string) ([]*Receipt, error)
}

type service struct {
	repo     Repository
	orders   Orders
	payments Payments
	tables   Tables
	log      *slog.Logger
	now      func() time.Time
}

func NewService(repo Repository, orders Orders, payments Payments, tables Tables, log *slog.Logger) Service {
	return &service{repo: repo, orders: orders, payments: payments, tables: tables, log: log, now: time.Now}
}

func (s *service) GenerateReceipt(ctx context.Context, orderID string) (*View, error) {
	o, err := s.orders.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.Status != order.StatusCompleted {
		return nil, apperr.Invalid("order %s is not paid (status %s)", o.ID, o.Status)
	}

	label := TakeawayLabel
	if o.TableID != nil {
		t, err := s.tables.GetTable(ctx, o.TableID.String())
		if err != nil {
			return nil, err
		}
		label = t.Label
	}

	payments, err := s.payments.ListOrderPayments(ctx, o.ID.String())
	if err != nil {
		return nil, err
	}

	seq, err := s.repo.NextSequence(ctx)
	if err != nil {
		return nil, err
	}
	issuedAt := s.now().UTC()
	rc := Receipt{
		ID:            uuid.New(),
		OrderID:       o.ID,
		ReceiptNumber: formatNumber(issuedAt, seq),
		IssuedAt:      issuedAt,
	}
	if err := s.repo.Create(ctx, &rc); err != nil {
		return nil, err
	}

	view := &View{
		Receipt:    rc,
		OrderType:  o.OrderType,
		TableLabel: label,
		Items:      make([]Line, 0, len(o.Items)),
		Total:      o.TotalAmount,
		Payments:   payments,
	}
	for _, it := range o.Items {
		view.Items = append(view.Items, Line{
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.PriceAtTime,
			LineTotal:   it.LineTotal(),
		})
	}

	s.log.InfoContext(ctx, "receipt issued",
		"action", "generate_receipt", "order_id", o.ID, "receipt_number", rc.ReceiptNumber)
	return view, nil
}

func (s *service) ListOrderReceipts(ctx context.Context, orderID string) ([]*Receipt, error) {
	uid, err := apperr.ParseID("order_id", orderID)
	if err != nil {
		return nil, err
	}
	return s.repo.ListByOrder(ctx, uid)
}

// formatNumber renders a receipt number: RCP-YYYYMMDD-NNNNNNNN
func formatNumber(t time.Time, seq int64) string {
	return fmt.Sprintf("RCP-%s-%08d", t.Format("20060102"), seq)
}
