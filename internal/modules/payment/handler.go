package payment

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/georgemunganga/restaurant-pos/internal/platform/web"
)

// Handler exposes payment HTTP endpoints.
type Handler struct {
	service Service
	log     *slog.Logger
}

func NewHandler(service Service, log *slog.Logger) *Handler {
	return &Handler{service: service, log: log}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1/payments", func(r chi.Router) {
		r.Post("/", h.processPayment)             // POST /api/v1/payments
		r.Get("/{id}", h.getPayment)              // GET  /api/v1/payments/{id}
		r.Get("/order/{order_id}", h.listByOrder) // GET  /api/v1/payments/order/{order_id}
	})
}

func (h *Handler) processPayment(w http.ResponseWriter, r *http.Request) {
	var req ProcessPaymentRequest
	if err := web.Decode(r, &req); err != nil {
		web.Error(w, r, h.log, err)
		return
	}
	p, err := h.service.ProcessPayment(r.Context(), req)
	if err != nil {
		web.Error(w, r, h.log, err)
		return
	}
	web.Respond(w, http.StatusCreated, p)
}

func (h *Handler) getPayment(w http.ResponseWriter, r *http.Request) {
	p, err := h.service.GetPayment(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		web.Error(w, r, h.log, err)
		return
	}
	web.Respond(w, http.StatusOK, p)
}

func (h *Handler) listByOrder(w http.ResponseWriter, r *http.Request) {
	payments, err := h.service.ListOrderPayments(r.Context(), chi.URLParam(r, "order_id"))
	if err != nil {
		web.Error(w, r, h.log, err)
		return
	}
	web.Respond(w, http.StatusOK, payments)
}
