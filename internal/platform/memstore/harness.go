package memstore

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/georgemunganga/restaurant-pos/internal/app"
	"github.com/georgemunganga/restaurant-pos/internal/modules/catalog"
	"github.com/georgemunganga/restaurant-pos/internal/modules/session"
	"github.com/georgemunganga/restaurant-pos/internal/modules/staff"
	"github.com/georgemunganga/restaurant-pos/internal/modules/table"
	"github.com/georgemunganga/restaurant-pos/internal/platform/notify"
)

// TestSecret signs tokens issued by a Harness.
const TestSecret = "test-secret-test-secret-test-secret"

// Harness is the full service graph over one Store.
type Harness struct {
	Store    *Store
	Events   *Recorder
	Services *app.Services
	Log      *slog.Logger
}

func NewHarness() *Harness {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	st := New()
	rec := &Recorder{}
	repos := app.Repositories{
		Catalog:  st.Catalog(),
		Tables:   st.Tables(),
		Sessions: st.Sessions(),
		Orders:   st.Orders(),
		Kitchen:  st.Kitchen(),
		Payments: st.Payments(),
		Receipts: st.Receipts(),
		Staff:    st.Staff(),
	}
	notifier := notify.NewNotifier(rec, log, time.Second)
	svc := app.NewServices(repos, notifier, app.AuthConfig{Secret: TestSecret, TTL: time.Hour}, log)
	return &Harness{Store: st, Events: rec, Services: svc, Log: log}
}

// Fixture is one branch ready to take orders: a floor with tables T1..T3, a
// terminal with an open session, and a small menu.
type Fixture struct {
	BranchID uuid.UUID
	StaffID  uuid.UUID
	Floor    *table.Floor
	Tables   []*table.Table
	Terminal *session.Terminal
	Session  *session.Session
	Products map[string]*catalog.Product
}

// Menu prices used by Seed. "Retired" is inactive.
var Menu = []struct {
	Name     string
	Category string
	Price    string
	Active   bool
}{
	{"Burger", "Mains", "12.50", true},
	{"Fries", "Sides", "4.00", true},
	{"Soda", "Drinks", "2.25", true},
	{"Retired", "Mains", "9.99", false},
}

func (h *Harness) Seed(ctx context.Context) (*Fixture, error) {
	f := &Fixture{BranchID: uuid.New(), StaffID: uuid.New(), Products: map[string]*catalog.Product{}}
	branch := f.BranchID.String()

	if err := h.Store.Staff().Create(ctx, &staff.Staff{
		ID:       f.StaffID,
		BranchID: f.BranchID,
		Email:    "cashier-" + f.StaffID.String() + "@example.com",
		Name:     "Cashier",
		Role:     staff.RoleCashier,
	}); err != nil {
		return nil, err
	}

	var err error
	if f.Floor, err = h.Services.Tables.CreateFloor(ctx, table.CreateFloorRequest{BranchID: branch, Name: "Main"}); err != nil {
		return nil, err
	}
	for _, label := range []string{"T1", "T2", "T3"} {
		t, err := h.Services.Tables.CreateTable(ctx, table.CreateTableRequest{FloorID: f.Floor.ID.String(), Label: label, Seats: 4})
		if err != nil {
			return nil, err
		}
		f.Tables = append(f.Tables, t)
	}

	if f.Terminal, err = h.Services.Sessions.CreateTerminal(ctx, session.CreateTerminalRequest{BranchID: branch, Name: "Till 1"}); err != nil {
		return nil, err
	}
	if f.Session, err = h.Services.Sessions.OpenSession(ctx, session.OpenSessionRequest{
		TerminalID: f.Terminal.ID.String(),
		StaffID:    f.StaffID.String(),
	}); err != nil {
		return nil, err
	}

	for _, m := range Menu {
		active := m.Active
		p, err := h.Services.Catalog.CreateProduct(ctx, catalog.CreateProductRequest{
			BranchID: branch,
			Name:     m.Name,
			Category: m.Category,
			Price:    decimal.RequireFromString(m.Price),
			IsActive: &active,
		})
		if err != nil {
			return nil, err
		}
		f.Products[m.Name] = p
	}
	h.Events.Reset()
	return f, nil
}
