package handler

import (
	"net/http"
	"strings"

	"github.com/mediease/insurance-portal-service/internal/core/domain"
	"github.com/mediease/insurance-portal-service/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(auth ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: auth}
}

// LoginResponse mirrors the portal contract: the flat identity fields the
// front-end persists, plus the bearer token.
type LoginResponse struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Role    string `json:"role"`
	Admin   bool   `json:"admin"`
	Message string `json:"message"`
	Token   string `json:"token"`
}

// Login authenticates with email/password passed as query parameters
// (POST /api/users/login?email&password, the portal contract).
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	password := r.URL.Query().Get("password")
	if email == "" || password == "" {
		writeError(w, domain.ValidationError("email and password are required"))
		return
	}

	session, err := h.authService.Login(r.Context(), email, password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, LoginResponse{
		ID:      session.EmployeeID,
		Name:    session.DisplayName,
		Email:   session.Email,
		Role:    string(session.Role),
		Admin:   session.IsAdmin(),
		Message: "Login successful",
		Token:   session.Token,
	})
}

// Logout invalidates the caller's session as a unit.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	header := r.Header.Get("Authorization")
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		http.Error(w, "invalid authorization header", http.StatusUnauthorized)
		return
	}

	if err := h.authService.Logout(r.Context(), parts[1]); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Logged out"})
}
