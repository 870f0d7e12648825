package staff

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/georgemunganga/restaurant-pos/internal/platform/web"
)

type Handler struct {
	service Service
	log     *slog.Logger
}

func NewHandler(service Service, log *slog.Logger) *Handler {
	return &Handler{service: service, log: log}
}

// RegisterPublicRoutes mounts the routes reachable without a token.
func (h *Handler) RegisterPublicRoutes(r chi.Router) {
	r.Post("/api/v1/staff", h.register) // POST /api/v1/staff
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/api/v1/staff", h.list)     // GET /api/v1/staff?branch_id=
	r.Get("/api/v1/staff/{id}", h.get) // GET /api/v1/staff/{id}
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := web.Decode(r, &req); err != nil {
		web.Error(w, r, h.log, err)
		return
	}
	member, err := h.service.Register(r.Context(), req)
	if err != nil {
		web.Error(w, r, h.log, err)
		return
	}
	web.Respond(w, http.StatusCreated, member)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	members, err := h.service.ListStaff(r.Context(), r.URL.Query().Get("branch_id"))
	if err != nil {
		web.Error(w, r, h.log, err)
		return
	}
	web.Respond(w, http.StatusOK, members)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	member, err := h.service.GetStaff(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		web.Error(w, r, h.log, err)
		return
	}
	web.Respond(w, http.StatusOK, member)
}
