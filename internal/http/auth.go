package http

import (
	"net/http"

	"github.com/classmeet/classmeet/internal/service"
	"github.com/classmeet/classmeet/pkg/httpx"
)

// LoginHandler serves POST /v1/auth/login.
type LoginHandler struct {
	AuthService *service.AuthService
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Email == "" || req.Password == "" {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "email and password are required")
		return
	}

	info, err := h.AuthService.ValidateUser(ctx, req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	resp, err := h.AuthService.Login(ctx, info)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, resp)
}

// ProfileHandler serves GET /v1/auth/profile: the identity behind the
// presented token.
type ProfileHandler struct{}

type profileResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func (h *ProfileHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromCtx(r.Context())
	if !ok {
		writeBearerError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, profileResponse{
		ID:    actor.ID,
		Email: actor.Email,
		Role:  string(actor.Role),
	})
}
