package table

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/georgemunganga/restaurant-pos/internal/platform/web"
)

// Handler exposes floor and table HTTP endpoints.
type Handler struct {
	service Service
	log     *slog.Logger
}

func NewHandler(service Service, log *slog.Logger) *Handler {
	return &Handler{service: service, log: log}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1/floors", func(r chi.Router) {
		r.Post("/", h.createFloor) // POST /api/v1/floors
		r.Get("/", h.listFloors)   // GET  /api/v1/floors?branch_id=
	})
	r.Route("/api/v1/tables", func(r chi.Router) {
		r.Post("/", h.createTable)                     // POST /api/v1/tables
		r.Get("/", h.listTables)                       // GET  /api/v1/tables?floor_id=
		r.Get("/{id}", h.getTable)                     // GET  /api/v1/tables/{id}
		r.Post("/{id}/release", h.release)             // POST /api/v1/tables/{id}/release
		r.Post("/{id}/reserve", h.reserve)             // POST /api/v1/tables/{id}/reserve
		r.Delete("/{id}/reserve", h.cancelReservation) // DELETE /api/v1/tables/{id}/reserve
	})
}

func (h *Handler) createFloor(w http.ResponseWriter, r *http.Request) {
	var req CreateFloorRequest
	if err := web.Decode(r, &req); err != nil {
		web.Error(w, r, h.log, err)
		return
	}
	f, err := h.service.CreateFloor(r.Context(), req)
	if err != nil {
		web.Error(w, r, h.log, err)
		return
	}
	web.Respond(w, http.StatusCreated, f)
}

func (h *Handler) listFloors(w http.ResponseWriter, r *http.Request) {
	floors, err := h.service.ListFloors(r.Context(), r.URL.Query().Get("branch_id"))
	if err != nil {
		web.Error(w, r, h.log, err)
		return
	}
	web.Respond(w, http.StatusOK, floors)
}

func (h *Handler) createTable(w http.ResponseWriter, r *http.Request) {
	var req CreateTableRequest
	if err := web.Decode(r, &req); err != nil {
		web.Error(w, r, h.log, err)
		return
	}
	t, err := h.service.CreateTable(r.Context(), req)
	if err != nil {
		web.Error(w, r, h.log, err)
		return
	}
	web.Respond(w, http.StatusCreated, t)
}

func (h *Handler) listTables(w http.ResponseWriter, r *http.Request) {
	tables, err := h.service.ListTables(r.Context(), r.URL.Query().Get("floor_id"))
	if err != nil {
		web.Error(w, r, h.log, err)
		return
	}
	web.Respond(w, http.StatusOK, tables)
}

func (h *Handler) getTable(w http.ResponseWriter, r *http.Request) {
	t, err := h.service.GetTable(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		web.Error(w, r, h.log, err)
		return
	}
	web.Respond(w, http.StatusOK, t)
}

func (h *Handler) release(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.service.ReleaseTable)
}

func (h *Handler) reserve(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.service.ReserveTable)
}

func (h *Handler) cancelReservation(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.service.CancelReservation)
}

type transitionFunc func(ctx context.Context, id string) (*Table, error)

func (h *Handler) transition(w http.ResponseWriter, r *http.Request, fn transitionFunc) {
	t, err := fn(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		web.Error(w, r, h.log, err)
		return
	}
	web.Respond(w, http.StatusOK, t)
}
