package kitchen

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/georgemunganga/restaurant-pos/internal/apperr"
	"github.com/georgemunganga/restaurant-pos/internal/modules/order"
	"github.com/georgemunganga/restaurant-pos/internal/platform/actor"
	"github.com/georgemunganga/restaurant-pos/internal/platform/notify"
)

// Orders reads the order being moved.
type Orders interface {
	GetOrder(ctx context.Context, id string) (*order.Order, error)
}

// Service drives orders through CREATED -> IN_PROGRESS -> READY.
type Service interface {
	UpdateStatus(ctx context.Context, orderID string, req UpdateStatusRequest) (*order.Order, error)
	StartOrder(ctx context.Context, orderID string) (*order.Order, error)
	MarkReady(ctx context.Context, orderID string) (*order.Order, error)

	// ListActive returns CREATED and IN_PROGRESS orders, oldest first.
	ListActive(ctx context.Context, branchID string) ([]*order.Order, error)
	// ListReady returns READY orders, oldest first.
	ListReady(ctx context.Context, branchID string) ([]*order.Order, error)

	History(ctx context.Context, orderID string) ([]*order.StatusLog, error)
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

func (s *service) UpdateStatus(ctx context.Context, orderID string, req UpdateStatusRequest) (*order.Order, error) {
	o, err := s.orders.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	from := o.Status
	to := order.Status(strings.ToUpper(strings.TrimSpace(req.Status)))
	if !CanTransition(from, to) {
		return nil, apperr.InvalidTransition("cannot transition order from %s to %s", from, to)
	}

	entry := &order.StatusLog{
		ID:        uuid.New(),
		OrderID:   o.ID,
		Status:    to,
		ChangedBy: actor.StaffID(ctx),
		Note:      req.Note,
	}
	if err := s.repo.UpdateStatus(ctx, o.ID, from, to, entry); err != nil {
		return nil, err
	}
	o.Status = to
	o.UpdatedAt = entry.ChangedAt

	s.log.InfoContext(ctx, "order status changed",
		"action", "update_status", "order_id", o.ID, "from", from, "to", to)
	s.notifier.Notify(ctx, notify.OrderStatusChanged, notify.OrderStatusPayload{
		OrderID: o.ID,
		From:    string(from),
		To:      string(to),
	})
	return o, nil
}

func (s *service) StartOrder(ctx context.Context, orderID string) (*order.Order, error) {
	return s.UpdateStatus(ctx, orderID, UpdateStatusRequest{Status: string(order.StatusInProgress)})
}

func (s *service) MarkReady(ctx context.Context, orderID string) (*order.Order, error) {
	return s.UpdateStatus(ctx, orderID, UpdateStatusRequest{Status: string(order.StatusReady)})
}

func (s *service) ListActive(ctx context.Context, branchID string) ([]*order.Order, error) {
	return s.list(ctx, branchID, order.StatusCreated, order.StatusInProgress)
}

func (s *service) ListReady(ctx context.Context, branchID string) ([]*order.Order, error) {
	return s.list(ctx, branchID, order.StatusReady)
}

func (s *service) History(ctx context.Context, orderID string) ([]*order.StatusLog, error) {
	o, err := s.orders.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return s.repo.History(ctx, o.ID)
}

func (s *service) list(ctx context.Context, branchID string, statuses ...order.Status) ([]*order.Order, error) {
	bid, err := apperr.ParseOptionalID("branch_id", branchID)
	if err != nil {
		return nil, err
	}
	return s.repo.ListByStatus(ctx, bid, statuses...)
}
