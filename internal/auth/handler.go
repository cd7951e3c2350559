// AngelaMos | 2026
// handler.go

package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/angelamos/kol-backend/internal/core"
)

type Handler struct {
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)
	})
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "Username and password are required")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, "Username and password are required")
		return
	}

	if err := h.service.Register(r.Context(), req.Username, req.Password); err != nil {
		if errors.Is(err, ErrUsernameExists) {
			core.BadRequest(w, "Username already exists")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.Created(w, RegisterResponse{Message: "User registered"})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "Username and password are required")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, "Username and password are required")
		return
	}

	token, err := h.service.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			core.BadRequest(w, "Invalid credentials")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, TokenResponse{Token: token})
}
