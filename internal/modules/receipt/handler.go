package receipt

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/georgemunganga/restaurant-pos/internal/platform/web"
)

// Handler exposes receipt HTTP endpoints.
type Handler struct {
	service Service
	log     *slog.Logger
}

func NewHandler(service Service, log *slog.Logger) *Handler {
	return &Handler{service: service, log: log}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1/receipts", func(r chi.Router) {
		r.Post("/order/{order_id}", h.generate)   // POST /api/v1/receipts/order/{order_id}
		r.Get("/order/{order_id}", h.listByOrder) // GET  /api/v1/receipts/order/{order_id}
	})
}

func (h *Handler) generate(w http.ResponseWriter, r *http.Request) {
	v, err := h.service.GenerateReceipt(r.Context(), chi.URLParam(r, "order_id"))
	if err != nil {
		web.Error(w, r, h.log, err)
		return
	}
	web.Respond(w, http.StatusCreated, v)
}

func (h *Handler) listByOrder(w http.ResponseWriter, r *http.Request) {
	receipts, err := h.service.ListOrderReceipts(r.Context(), chi.URLParam(r, "order_id"))
	if err != nil {
		web.Error(w, r, h.log, err)
		return
	}
	web.Respond(w, http.StatusOK, receipts)
}
