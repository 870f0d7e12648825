package session

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/georgemunganga/restaurant-pos/internal/platform/web"
)

// Handler exposes terminal and session HTTP endpoints.
type Handler struct {
	service Service
	log     *slog.Logger
}

func NewHandler(service Service, log *slog.Logger) *Handler {
	return &Handler{service: service, log: log}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1/terminals", func(r chi.Router) {
		r.Post("/", h.createTerminal)            // POST /api/v1/terminals
		r.Get("/", h.listTerminals)              // GET  /api/v1/terminals?branch_id=
		r.Get("/{id}", h.getTerminal)            // GET  /api/v1/terminals/{id}
		r.Get("/{id}/session", h.getOpenSession) // GET  /api/v1/terminals/{id}/session
	})
	r.Route("/api/v1/sessions", func(r chi.Router) {
		r.Post("/", h.openSession)            // POST /api/v1/sessions
		r.Get("/{id}", h.getSession)          // GET  /api/v1/sessions/{id}
		r.Post("/{id}/close", h.closeSession) // POST /api/v1/sessions/{id}/close
	})
}

func (h *Handler) createTerminal(w http.ResponseWriter, r *http.Request) {
	var req CreateTerminalRequest
	if err := web.Decode(r, &req); err != nil {
		web.Error(w, r, h.log, err)
		return
	}
	t, err := h.service.CreateTerminal(r.Context(), req)
	if err != nil {
		web.Error(w, r, h.log, err)
		return
	}
	web.Respond(w, http.StatusCreated, t)
}

func (h *Handler) listTerminals(w http.ResponseWriter, r *http.Request) {
	terminals, err := h.service.ListTerminals(r.Context(), r.URL.Query().Get("branch_id"))
	if err != nil {
		web.Error(w, r, h.log, err)
		return
	}
	web.Respond(w, http.StatusOK, terminals)
}

func (h *Handler) getTerminal(w http.ResponseWriter, r *http.Request) {
	t, err := h.service.GetTerminal(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		web.Error(w, r, h.log, err)
		return
	}
	web.Respond(w, http.StatusOK, t)
}

func (h *Handler) getOpenSession(w http.ResponseWriter, r *http.Request) {
	s, err := h.service.GetOpenSession(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		web.Error(w, r, h.log, err)
		return
	}
	web.Respond(w, http.StatusOK, s)
}

func (h *Handler) openSession(w http.ResponseWriter, r *http.Request) {
	var req OpenSessionRequest
	if err := web.Decode(r, &req); err != nil {
		web.Error(w, r, h.log, err)
		return
	}
	s, err := h.service.OpenSession(r.Context(), req)
	if err != nil {
		web.Error(w, r, h.log, err)
		return
	}
	web.Respond(w, http.StatusCreated, s)
}

func (h *Handler) getSession(w http.ResponseWriter, r *http.Request) {
	s, err := h.service.GetSession(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		web.Error(w, r, h.log, err)
		return
	}
	web.Respond(w, http.StatusOK, s)
}

func (h *Handler) closeSession(w http.ResponseWriter, r *http.Request) {
	s, err := h.service.CloseSession(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		web.Error(w, r, h.log, err)
		return
	}
	web.Respond(w, http.StatusOK, s)
}
