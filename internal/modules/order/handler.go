package order

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/georgemunganga/restaurant-pos/internal/platform/web"
)

// Handler exposes order HTTP endpoints.
type Handler struct {
	service Service
	log     *slog.Logger
}

func NewHandler(service Service, log *slog.Logger) *Handler {
	return &Handler{service: service, log: log}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1/orders", func(r chi.Router) {
		r.Post("/", h.createOrder)                             // POST /api/v1/orders
		r.Get("/{id}", h.getOrder)                             // GET  /api/v1/orders/{id}
		r.Post("/{id}/items", h.addItems)                      // POST /api/v1/orders/{id}/items
		r.Post("/{id}/send", h.sendToKitchen)                  // POST /api/v1/orders/{id}/send
		r.Get("/table/{table_id}/active", h.getActiveForTable) // GET  /api/v1/orders/table/{table_id}/active
		r.Get("/session/{session_id}", h.listSessionOrders)    // GET  /api/v1/orders/session/{session_id}
	})
}

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderRequest
	if err := web.Decode(r, &req); err != nil {
		web.Error(w, r, h.log, err)
		return
	}
	o, err := h.service.CreateOrder(r.Context(), req)
	if err != nil {
		web.Error(w, r, h.log, err)
		return
	}
	web.Respond(w, http.StatusCreated, o)
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	o, err := h.service.GetOrder(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		web.Error(w, r, h.log, err)
		return
	}
	web.Respond(w, http.StatusOK, o)
}

func (h *Handler) addItems(w http.ResponseWriter, r *http.Request) {
	var req AddItemsRequest
	if err := web.Decode(r, &req); err != nil {
		web.Error(w, r, h.log, err)
		return
	}
	o, err := h.service.AddItems(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		web.Error(w, r, h.log, err)
		return
	}
	web.Respond(w, http.StatusOK, o)
}

func (h *Handler) sendToKitchen(w http.ResponseWriter, r *http.Request) {
	o, err := h.service.SendToKitchen(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		web.Error(w, r, h.log, err)
		return
	}
	web.Respond(w, http.StatusAccepted, o)
}

func (h *Handler) getActiveForTable(w http.ResponseWriter, r *http.Request) {
	o, err := h.service.GetActiveOrderForTable(r.Context(), chi.URLParam(r, "table_id"))
	if err != nil {
		web.Error(w, r, h.log, err)
		return
	}
	web.Respond(w, http.StatusOK, o)
}

func (h *Handler) listSessionOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.ListSessionOrders(r.Context(), chi.URLParam(r, "session_id"))
	if err != nil {
		web.Error(w, r, h.log, err)
		return
	}
	web.Respond(w, http.StatusOK, orders)
}
