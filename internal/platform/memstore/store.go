// Package memstore keeps every repository in memory behind one mutex. It
// backs the service and scenario tests; production wiring uses Postgres.
package memstore

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/georgemunganga/restaurant-pos/internal/modules/catalog"
	"github.com/georgemunganga/restaurant-pos/internal/modules/kitchen"
	"github.com/georgemunganga/restaurant-pos/internal/modules/order"
	"github.com/georgemunganga/restaurant-pos/internal/modules/payment"
	"github.com/georgemunganga/restaurant-pos/internal/modules/receipt"
	"github.com/georgemunganga/restaurant-pos/internal/modules/session"
	"github.com/georgemunganga/restaurant-pos/internal/modules/staff"
	"github.com/georgemunganga/restaurant-pos/internal/modules/table"
)

type Store struct {
	mu    sync.Mutex
	clock time.Time

	products  map[uuid.UUID]*catalog.Product
	floors    map[uuid.UUID]*table.Floor
	tables    map[uuid.UUID]*table.Table
	terminals map[uuid.UUID]*session.Terminal
	sessions  map[uuid.UUID]*session.Session
	orders    map[uuid.UUID]*order.Order
	logs      []*order.StatusLog
	payments  []*payment.Payment
	receipts  []*receipt.Receipt
	staff     map[uuid.UUID]*staff.Staff
	seq       int64
}

func New() *Store {
	return &Store{
		clock:     time.Now().UTC(),
		products:  map[uuid.UUID]*catalog.Product{},
		floors:    map[uuid.UUID]*table.Floor{},
		tables:    map[uuid.UUID]*table.Table{},
		terminals: map[uuid.UUID]*session.Terminal{},
		sessions:  map[uuid.UUID]*session.Session{},
		orders:    map[uuid.UUID]*order.Order{},
		staff:     map[uuid.UUID]*staff.Staff{},
	}
}

// now advances a logical clock so timestamps are strictly increasing.
// Callers hold mu.
func (s *Store) now() time.Time {
	s.clock = s.clock.Add(time.Millisecond)
	return s.clock
}

func (s *Store) Catalog() catalog.Repository  { return catalogRepo{s} }
func (s *Store) Tables() table.Repository     { return tableRepo{s} }
func (s *Store) Sessions() session.Repository { return sessionRepo{s} }
func (s *Store) Orders() order.Repository     { return orderRepo{s} }
func (s *Store) Kitchen() kitchen.Repository  { return kitchenRepo{s} }
func (s *Store) Payments() payment.Repository { return paymentRepo{s} }
func (s *Store) Receipts() receipt.Repository { return receiptRepo{s} }
func (s *Store) Staff() staff.Repository      { return staffRepo{s} }

func copyOrder(o *order.Order) *order.Order {
	c := *o
	c.Items = make([]*order.Item, len(o.Items))
	for i, it := range o.Items {
		ic := *it
		c.Items[i] = &ic
	}
	return &c
}

func copyTable(t *table.Table) *table.Table {
	c := *t
	return &c
}

func copySession(ss *session.Session) *session.Session {
	c := *ss
	return &c
}
