// AngelaMos | 2026
// handler.go

package kol

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/angelamos/kol-backend/internal/core"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Route("/records", func(r chi.Router) {
		r.Use(authenticator)

		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	records, err := h.service.List(r.Context())
	if err != nil {
		core.ServerError(w, err, "Error fetching data")
		return
	}

	core.OK(w, records)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var fields map[string]any
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if _, err := h.service.Create(r.Context(), fields); err != nil {
		var fieldErr *FieldError
		if errors.As(err, &fieldErr) {
			core.BadRequest(w, err.Error())
			return
		}
		core.ServerError(w, err, "Error creating KOL")
		return
	}

	core.Text(w, http.StatusCreated, "KOL created")
}

// Update applies a sparse field map. An empty body is a client error; a
// field that fails its rule surfaces as a server error carrying the builder
// message, matching the store-facing contract of this endpoint.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var fields map[string]any
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	changed, err := h.service.Update(r.Context(), id, fields)
	if err != nil {
		if errors.Is(err, ErrEmptyUpdate) {
			core.BadRequest(w, ErrEmptyUpdate.Error())
			return
		}
		var fieldErr *FieldError
		if errors.As(err, &fieldErr) {
			core.ServerError(w, err, err.Error())
			return
		}
		core.ServerError(w, err, "Error updating KOL")
		return
	}

	core.OK(w, changed)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		core.BadRequest(w, `"id" is not allowed to be empty`)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		core.ServerError(w, err, "Error deleting KOL")
		return
	}

	core.Text(w, http.StatusOK, "KOL deleted")
}
