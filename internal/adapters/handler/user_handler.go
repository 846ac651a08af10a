package handler

import (
	"net/http"
	"strconv"

	"github.com/mediease/insurance-portal-service/internal/adapters/middleware"
	"github.com/mediease/insurance-portal-service/internal/core/ports"
)

type UserHandler struct {
	userService ports.UserService
}

func NewUserHandler(users ports.UserService) *UserHandler {
	return &UserHandler{userService: users}
}

// GetByID serves GET /api/users/{id}. Employees can only read their own
// profile; administrators can read any.
func (h *UserHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}

	session := middleware.SessionFromContext(r.Context())
	if session == nil || (!session.IsAdmin() && session.EmployeeID != id) {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}

	emp, err := h.userService.Employee(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, emp)
}
