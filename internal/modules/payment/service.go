package payment

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/georgemunganga/restaurant-pos/internal/apperr"
	"github.com/georgemunganga/restaurant-pos/internal/modules/order"
	"github.com/georgemunganga/restaurant-pos/internal/platform/actor"
	"github.com/georgemunganga/restaurant-pos/internal/platform/notify"
)

// Orders resolves the order being paid.
type Orders interface {
	GetOrder(ctx context.Context, id string) (*order.Order, error)
}

// Service defines payment business logic.
type Service interface {
	// ProcessPayment completes an order and frees its table when no other
	// active order is seated there.
	ProcessPayment(ctx context.Context, req ProcessPaymentRequest) (*Payment, error)
	GetPayment(ctx context.Context, id string) (*Payment, error)
	ListOrderPayments(ctx context.Context, orderID string) ([]*Payment, error)
}

type service struct {
	repo     Repository
	orders   Orders
	notifier *notify.Notifier
	log      *slog.Logger
}

func NewService(repo Repository, orders Orders, notifier *notify.Notifier, log *slog.Logger) Service {
	return &service{repo: repo, orders: orders, notifier: notifier, log: log}
}

func (s *service) ProcessPayment(ctx context.Context, req ProcessPaymentRequest) (*Payment, error) {
	o, err := s.orders.GetOrder(ctx, req.OrderID)
	if err != nil {
		return nil, err
	}
	orderID := o.ID

	amount := req.Amount.Round(2)
	if !amount.IsPositive() {
		return nil, apperr.Invalid("amount must be at least 0.01")
	}

	method := Method(strings.ToUpper(strings.TrimSpace(req.Method)))
	switch method {
	case MethodCash, MethodUPI, MethodCard:
	default:
		return nil, apperr.Invalid("invalid method: %q (allowed: CASH, UPI, CARD)", req.Method)
	}

	p := &Payment{
		ID:      uuid.New(),
		OrderID: orderID,
		Method:  method,
		Amount:  amount,
		Status:  StatusCompleted,
	}
	if ref := strings.TrimSpace(req.TransactionReference); ref != "" {
		p.TransactionReference = &ref
	}
	entry := &order.StatusLog{
		ID:        uuid.New(),
		OrderID:   orderID,
		Status:    order.StatusCompleted,
		ChangedBy: actor.StaffID(ctx),
		Note:      fmt.Sprintf("paid by %s", method),
	}

	st, err := s.repo.Process(ctx, p, entry)
	if err != nil {
		return nil, err
	}

	if !p.Amount.Equal(st.OrderTotal) {
		s.log.WarnContext(ctx, "payment amount differs from order total",
			"action", "process_payment", "order_id", orderID,
			"amount", p.Amount.StringFixed(2), "total", st.OrderTotal.StringFixed(2))
	}
	s.log.InfoContext(ctx, "payment processed",
		"action", "process_payment", "order_id", orderID, "payment_id", p.ID,
		"method", method, "table_released", st.TableReleased)

	if st.TableReleased {
		s.notifier.Notify(ctx, notify.TableStatusChanged, notify.TableStatusPayload{
			TableID: *st.TableID,
			Status:  "FREE",
		})
	}
	s.notifier.Notify(ctx, notify.OrderPaid, notify.OrderPaidPayload{
		OrderID:   orderID,
		PaymentID: p.ID,
		Amount:    p.Amount,
		Method:    string(method),
	})
	return p, nil
}

func (s *service) GetPayment(ctx context.Context, id string) (*Payment, error) {
	uid, err := apperr.ParseID("payment_id", id)
	if err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, uid)
}

func (s *service) ListOrderPayments(ctx context.Context, orderID string) ([]*Payment, error) {
	uid, err := apperr.ParseID("order_id", orderID)
	if err != nil {
		return nil, err
	}
	return s.repo.ListByOrder(ctx, uid)
}
