package kitchen

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/georgemunganga/restaurant-pos/internal/platform/web"
)

// Handler exposes the kitchen display endpoints.
type Handler struct {
	service Service
	log     *slog.Logger
}

func NewHandler(service Service, log *slog.Logger) *Handler {
	return &Handler{service: service, log: log}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1/kitchen", func(r chi.Router) {
		r.Get("/orders/active", h.listActive)          // GET   /api/v1/kitchen/orders/active?branch_id=
		r.Get("/orders/ready", h.listReady)            // GET   /api/v1/kitchen/orders/ready?branch_id=
		r.Patch("/orders/{id}/status", h.updateStatus) // PATCH /api/v1/kitchen/orders/{id}/status
		r.Post("/orders/{id}/start", h.start)          // POST  /api/v1/kitchen/orders/{id}/start
		r.Post("/orders/{id}/ready", h.ready)          // POST  /api/v1/kitchen/orders/{id}/ready
		r.Get("/orders/{id}/history", h.history)       // GET   /api/v1/kitchen/orders/{id}/history
	})
}

func (h *Handler) listActive(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.ListActive(r.Context(), r.URL.Query().Get("branch_id"))
	if err != nil {
		web.Error(w, r, h.log, err)
		return
	}
	web.Respond(w, http.StatusOK, orders)
}

func (h *Handler) listReady(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.ListReady(r.Context(), r.URL.Query().Get("branch_id"))
	if err != nil {
		web.Error(w, r, h.log, err)
		return
	}
	web.Respond(w, http.StatusOK, orders)
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	var req UpdateStatusRequest
	if err := web.Decode(r, &req); err != nil {
		web.Error(w, r, h.log, err)
		return
	}
	o, err := h.service.UpdateStatus(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		web.Error(w, r, h.log, err)
		return
	}
	web.Respond(w, http.StatusOK, o)
}

func (h *Handler) start(w http.ResponseWriter, r *http.Request) {
	o, err := h.service.StartOrder(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		web.Error(w, r, h.log, err)
		return
	}
	web.Respond(w, http.StatusOK, o)
}

func (h *Handler) ready(w http.ResponseWriter, r *http.Request) {
	o, err := h.service.MarkReady(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		web.Error(w, r, h.log, err)
		return
	}
	web.Respond(w, http.StatusOK, o)
}

func (h *Handler) history(w http.ResponseWriter, r *http.Request) {
	logs, err := h.service.History(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		web.Error(w, r, h.log, err)
		return
	}
	web.Respond(w, http.StatusOK, logs)
}
