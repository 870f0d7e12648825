package order

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/georgemunganga/restaurant-pos/internal/apperr"
	"github.com/georgemunganga/restaurant-pos/internal/modules/catalog"
	"github.com/georgemunganga/restaurant-pos/internal/modules/session"
	"github.com/georgemunganga/restaurant-pos/internal/platform/actor"
	"github.com/georgemunganga/restaurant-pos/internal/platform/notify"
)

// Catalog prices products. Unknown ids must be reported as ErrNotFound.
type Catalog interface {
	Lookup(ctx context.Context, id uuid.UUID) (*catalog.Product, error)
}

// Sessions resolves the session an order is opened against.
type Sessions interface {
	GetSession(ctx context.Context, id string) (*session.Session, error)
	GetTerminal(ctx context.Context, id string) (*session.Terminal, error)
}

// Service defines the order lifecycle.
type Service interface {
	// CreateOrder opens an order on an open session. A dine-in order claims
	// its table in the same transaction.
	CreateOrder(ctx context.Context, req CreateOrderRequest) (*Order, error)

	// AddItems prices and appends lines to a non-completed order.
	AddItems(ctx context.Context, orderID string, req AddItemsRequest) (*Order, error)

	// SendToKitchen announces the order to the kitchen display. Status is unchanged.
	SendToKitchen(ctx context.Context, orderID string) (*Order, error)

	GetActiveOrderForTable(ctx context.Context, tableID string) (*Order, error)
	GetOrder(ctx context.Context, id string) (*Order, error)
	ListSessionOrders(ctx context.Context, sessionID string) ([]*Order, error)
}

type service struct {
	repo     Repository
	catalog  Catalog
	sessions Sessions
	notifier *notify.Notifier
	log      *slog.Logger
}

func NewService(repo Repository, catalog Catalog, sessions Sessions, notifier *notify.Notifier, log *slog.Logger) Service {
	return &service{repo: repo, catalog: catalog, sessions: sessions, notifier: notifier, log: log}
}

func (s *service) CreateOrder(ctx context.Context, req CreateOrderRequest) (*Order, error) {
	sess, err := s.sessions.GetSession(ctx, req.SessionID)
	if err != nil {
		return nil, err
	}
	if !sess.IsOpen() {
		return nil, ErrSessionClosed
	}

	orderType := Type(strings.ToUpper(req.OrderType))
	var tableID *uuid.UUID
	switch orderType {
	case TypeDineIn:
		if req.TableID == "" {
			return nil, apperr.Invalid("table_id is required for DINE_IN orders")
		}
		if tableID, err = apperr.ParseOptionalID("table_id", req.TableID); err != nil {
			return nil, err
		}
	case TypeTakeaway:
		// a takeaway never holds a table
	default:
		return nil, apperr.Invalid("invalid order_type: %q (allowed: DINE_IN, TAKEAWAY)", req.OrderType)
	}

	customerID, err := apperr.ParseOptionalID("customer_id", req.CustomerID)
	if err != nil {
		return nil, err
	}

	branchID, err := s.branchOf(ctx, req.BranchID, sess)
	if err != nil {
		return nil, err
	}

	items, total, err := s.priceItems(ctx, branchID, req.Items)
	if err != nil {
		return nil, err
	}

	o := &Order{
		ID:          uuid.New(),
		BranchID:    branchID,
		SessionID:   sess.ID,
		TableID:     tableID,
		CustomerID:  customerID,
		OrderType:   orderType,
		Status:      StatusCreated,
		TotalAmount: total,
		Items:       items,
	}
	entry := &StatusLog{
		ID:        uuid.New(),
		OrderID:   o.ID,
		Status:    StatusCreated,
		ChangedBy: actor.StaffID(ctx),
		Note:      "order created",
	}
	if err := s.repo.Create(ctx, o, entry); err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "order created",
		"action", "create_order", "order_id", o.ID, "order_type", o.OrderType,
		"items", len(o.Items), "total", o.TotalAmount.StringFixed(2))
	if o.TableID != nil {
		s.notifier.Notify(ctx, notify.TableStatusChanged, notify.TableStatusPayload{
			TableID: *o.TableID,
			Status:  "OCCUPIED",
		})
	}
	return o, nil
}

func (s *service) AddItems(ctx context.Context, orderID string, req AddItemsRequest) (*Order, error) {
	if len(req.Items) == 0 {
		return nil, apperr.Invalid("items must not be empty")
	}
	o, err := s.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.Status == StatusCompleted {
		return nil, ErrCompleted
	}

	items, _, err := s.priceItems(ctx, o.BranchID, req.Items)
	if err != nil {
		return nil, err
	}
	updated, err := s.repo.AddItems(ctx, o.ID, items)
	if err != nil {
		return nil, err
	}
	s.log.InfoContext(ctx, "items added",
		"action", "add_items", "order_id", o.ID, "added", len(items), "total", updated.TotalAmount.StringFixed(2))
	return updated, nil
}

func (s *service) SendToKitchen(ctx context.Context, orderID string) (*Order, error) {
	o, err := s.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if len(o.Items) == 0 {
		return nil, apperr.Invalid("order %s has no items", o.ID)
	}

	payload := notify.NewOrderPayload{
		OrderID:   o.ID,
		BranchID:  o.BranchID,
		TableID:   o.TableID,
		OrderType: string(o.OrderType),
	}
	for _, it := range o.Items {
		payload.Items = append(payload.Items, notify.KitchenItem{ProductName: it.ProductName, Quantity: it.Quantity})
	}
	s.notifier.Notify(ctx, notify.KitchenNewOrder, payload)
	s.log.InfoContext(ctx, "order sent to kitchen", "action", "send_to_kitchen", "order_id", o.ID)
	return o, nil
}

func (s *service) GetActiveOrderForTable(ctx context.Context, tableID string) (*Order, error) {
	uid, err := apperr.ParseID("table_id", tableID)
	if err != nil {
		return nil, err
	}
	return s.repo.GetActiveForTable(ctx, uid)
}

func (s *service) GetOrder(ctx context.Context, id string) (*Order, error) {
	uid, err := apperr.ParseID("order_id", id)
	if err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, uid)
}

func (s *service) ListSessionOrders(ctx context.Context, sessionID string) ([]*Order, error) {
	uid, err := apperr.ParseID("session_id", sessionID)
	if err != nil {
		return nil, err
	}
	return s.repo.ListBySession(ctx, uid)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func (s *service) branchOf(ctx context.Context, requested string, sess *session.Session) (uuid.UUID, error) {
	if requested != "" {
		return apperr.ParseID("branch_id", requested)
	}
	t, err := s.sessions.GetTerminal(ctx, sess.TerminalID.String())
	if err != nil {
		return uuid.Nil, err
	}
	return t.BranchID, nil
}

// priceItems snapshots the catalog price of each requested line. Products
// that are unknown, inactive or sold only at another branch are skipped.
func (s *service) priceItems(ctx context.Context, branchID uuid.UUID, reqs []ItemRequest) ([]*Item, decimal.Decimal, error) {
	ids := make([]uuid.UUID, len(reqs))
	for i, r := range reqs {
		if r.Quantity <= 0 {
			return nil, decimal.Zero, apperr.Invalid("quantity must be > 0 for product %s", r.ProductID)
		}
		id, err := apperr.ParseID("product_id", r.ProductID)
		if err != nil {
			return nil, decimal.Zero, err
		}
		ids[i] = id
	}

	items := []*Item{}
	total := decimal.Zero
	for i, r := range reqs {
		p, err := s.catalog.Lookup(ctx, ids[i])
		if errors.Is(err, apperr.ErrNotFound) {
			s.log.DebugContext(ctx, "unknown product skipped", "action", "price_items", "product_id", ids[i])
			continue
		}
		if err != nil {
			return nil, decimal.Zero, err
		}
		if !p.IsActive || (p.BranchID != nil && *p.BranchID != branchID) {
			s.log.DebugContext(ctx, "unavailable product skipped", "action", "price_items", "product_id", p.ID)
			continue
		}

		it := &Item{
			ID:          uuid.New(),
			ProductID:   p.ID,
			ProductName: p.Name,
			Quantity:    r.Quantity,
			PriceAtTime: p.Price,
		}
		items = append(items, it)
		total = total.Add(it.LineTotal())
	}
	return items, total, nil
}
