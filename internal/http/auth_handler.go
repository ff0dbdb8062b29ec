package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/ArsemaYemiru/ak-storefront/internal/domain"
)

// AuthClient is the slice of the CMS the auth handlers need.
// Consumers define this interface, not the CMS implementation.
type AuthClient interface {
	Login(ctx context.Context, identifier, password string) (*domain.User, string, error)
	Register(ctx context.Context, username, email, password string) (*domain.User, string, error)
}

type AuthHandler struct {
	client AuthClient
}

func NewAuthHandler(client AuthClient) *AuthHandler {
	return &AuthHandler{client: client}
}

type LoginRequestDTO struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

type RegisterRequestDTO struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	User *domain.User `json:"user"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	stores := storesFromContext(r.Context())
	if stores == nil {
		respondError(w, http.StatusInternalServerError, "no_session", "session not initialized")
		return
	}

	var req LoginRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Identifier == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "invalid_request", "identifier and password are required")
		return
	}

	user, token, err := h.client.Login(r.Context(), req.Identifier, req.Password)
	if err != nil {
		handleCMSError(w, err)
		return
	}

	stores.Auth.SetAuth(r.Context(), user, token)
	respondJSON(w, http.StatusOK, AuthResponse{User: user})
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	stores := storesFromContext(r.Context())
	if stores == nil {
		respondError(w, http.StatusInternalServerError, "no_session", "session not initialized")
		return
	}

	var req RegisterRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "invalid_request", "username, email and password are required")
		return
	}

	user, token, err := h.client.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		handleCMSError(w, err)
		return
	}

	stores.Auth.SetAuth(r.Context(), user, token)
	respondJSON(w, http.StatusCreated, AuthResponse{User: user})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	stores := storesFromContext(r.Context())
	if stores == nil {
		respondError(w, http.StatusInternalServerError, "no_session", "session not initialized")
		return
	}

	stores.Auth.Logout(r.Context())
	respondJSON(w, http.StatusOK, map[string]string{"status": "signed out"})
}

// Me reports the current identity, or 401 for anonymous sessions.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	stores := storesFromContext(r.Context())
	if stores == nil {
		respondError(w, http.StatusInternalServerError, "no_session", "session not initialized")
		return
	}

	snap := stores.Auth.Snapshot()
	if !snap.Authenticated() {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "not signed in")
		return
	}

	respondJSON(w, http.StatusOK, AuthResponse{User: snap.User})
}
