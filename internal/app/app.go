// Package app assembles repositories, services and HTTP routes. cmd/api wires
// it over Postgres; tests wire it over memstore.
package app

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/georgemunganga/restaurant-pos/internal/modules/auth"
	"github.com/georgemunganga/restaurant-pos/internal/modules/catalog"
	"github.com/georgemunganga/restaurant-pos/internal/modules/kitchen"
	"github.com/georgemunganga/restaurant-pos/internal/modules/order"
	"github.com/georgemunganga/restaurant-pos/internal/modules/payment"
	"github.com/georgemunganga/restaurant-pos/internal/modules/receipt"
	"github.com/georgemunganga/restaurant-pos/internal/modules/session"
	"github.com/georgemunganga/restaurant-pos/internal/modules/staff"
	"github.com/georgemunganga/restaurant-pos/internal/modules/table"
	"github.com/georgemunganga/restaurant-pos/internal/platform/logging"
	"github.com/georgemunganga/restaurant-pos/internal/platform/notify"
	"github.com/georgemunganga/restaurant-pos/internal/platform/web"
)

type Repositories struct {
	Catalog  catalog.Repository
	Tables   table.Repository
	Sessions session.Repository
	Orders   order.Repository
	Kitchen  kitchen.Repository
	Payments payment.Repository
	Receipts receipt.Repository
	Staff    staff.Repository
}

func PostgresRepositories(db *sql.DB) Repositories {
	return Repositories{
		Catalog:  catalog.NewPostgresRepository(db),
		Tables:   table.NewPostgresRepository(db),
		Sessions: session.NewPostgresRepository(db),
		Orders:   order.NewPostgresRepository(db),
		Kitchen:  kitchen.NewPostgresRepository(db),
		Payments: payment.NewPostgresRepository(db),
		Receipts: receipt.NewPostgresRepository(db),
		Staff:    staff.NewPostgresRepository(db),
	}
}

type Services struct {
	Catalog  catalog.Service
	Tables   table.Service
	Sessions session.Service
	Orders   order.Service
	Kitchen  kitchen.Service
	Payments payment.Service
	Receipts receipt.Service
	Staff    staff.Service
	Auth     auth.Service
}

// AuthConfig controls token signing. An empty Secret disables the login
// route and leaves the API open.
type AuthConfig struct {
	Secret string
	TTL    time.Duration
}

func NewServices(repos Repositories, notifier *notify.Notifier, authCfg AuthConfig, log *slog.Logger) *Services {
	svc := &Services{
		Catalog:  catalog.NewService(repos.Catalog, log),
		Tables:   table.NewService(repos.Tables, notifier, log),
		Sessions: session.NewService(repos.Sessions, log),
		Staff:    staff.NewService(repos.Staff, log),
		Auth:     auth.NewService(repos.Staff, authCfg.Secret, authCfg.TTL, log),
	}
	svc.Orders = order.NewService(repos.Orders, svc.Catalog, svc.Sessions, notifier, log)
	svc.Kitchen = kitchen.NewService(repos.Kitchen, svc.Orders, notifier, log)
	svc.Payments = payment.NewService(repos.Payments, svc.Orders, notifier, log)
	svc.Receipts = receipt.NewService(repos.Receipts, svc.Orders, svc.Payments, svc.Tables, log)
	return svc
}

// NewRouter mounts every module. When authEnabled, all routes except login,
// staff registration and the health check require a bearer token.
func NewRouter(svc *Services, log *slog.Logger, requestTimeout time.Duration, authEnabled bool) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logging.RequestLogger(log))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		web.Respond(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// ── public ──────────────────────────────────────────────
	if authEnabled {
		auth.NewHandler(svc.Auth, log).RegisterRoutes(r)
	}
	staffHandler := staff.NewHandler(svc.Staff, log)
	staffHandler.RegisterPublicRoutes(r)

	// ── staff only ──────────────────────────────────────────
	r.Group(func(r chi.Router) {
		if authEnabled {
			r.Use(auth.Middleware(svc.Auth, log))
		}
		staffHandler.RegisterRoutes(r)
		catalog.NewHandler(svc.Catalog, log).RegisterRoutes(r)
		table.NewHandler(svc.Tables, log).RegisterRoutes(r)
		session.NewHandler(svc.Sessions, log).RegisterRoutes(r)
		order.NewHandler(svc.Orders, log).RegisterRoutes(r)
		kitchen.NewHandler(svc.Kitchen, log).RegisterRoutes(r)
		payment.NewHandler(svc.Payments, log).RegisterRoutes(r)
		receipt.NewHandler(svc.Receipts, log).RegisterRoutes(r)
	})
	return r
}
