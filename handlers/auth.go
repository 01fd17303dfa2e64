package handlers

import (
	"encoding/json"
	"net/http"

	"hitrate-app-go/logging"
	"hitrate-app-go/models"
	"hitrate-app-go/services"
)

// AuthHandler handles login requests for the API.
type AuthHandler struct {
	authService *services.AuthService
	logger      *logging.Logger
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logging.WithPrefix("AuthHandler"),
	}
}

// Login handles POST /api/login with a JSON email/password body.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	resp, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		h.logger.Warnf("Failed login for %s: %v", req.Email, err)
		respondError(w, http.StatusUnauthorized, "invalid email or password")
		return
	}

	respondJSON(w, http.StatusOK, resp)
}
