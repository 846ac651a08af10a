package handler

import (
	"net/http"
	"strconv"

	"github.com/mediease/insurance-portal-service/internal/adapters/middleware"
	"github.com/mediease/insurance-portal-service/internal/core/domain"
	"github.com/mediease/insurance-portal-service/internal/core/ports"
)

type InsuranceHandler struct {
	insuranceService ports.InsuranceService
}

func NewInsuranceHandler(insurance ports.InsuranceService) *InsuranceHandler {
	return &InsuranceHandler{insuranceService: insurance}
}

// ByEmployee serves GET /api/insurance/{empId}. An employee with no
// policy gets an empty 200, not a 404: the portal treats "no insurance"
// as a normal state driving the enrollment screen.
func (h *InsuranceHandler) ByEmployee(w http.ResponseWriter, r *http.Request) {
	empID, ok := h.authorizedEmpID(w, r, r.PathValue("empId"))
	if !ok {
		return
	}

	policy, err := h.insuranceService.EmployeeInsurance(r.Context(), empID)
	if err != nil {
		writeError(w, err)
		return
	}
	if policy == nil {
		writeJSON(w, http.StatusOK, nil)
		return
	}
	writeJSON(w, http.StatusOK, policy)
}

// Create serves POST /api/insurance/create?empId&packageId.
func (h *InsuranceHandler) Create(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	empID, ok := h.authorizedEmpID(w, r, q.Get("empId"))
	if !ok {
		return
	}
	packageID, err := strconv.ParseInt(q.Get("packageId"), 10, 64)
	if err != nil {
		http.Error(w, "invalid packageId", http.StatusBadRequest)
		return
	}

	policy, err := h.insuranceService.CreateInsurance(r.Context(), empID, packageID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, policy)
}

// Packages serves GET /api/insurance/packages.
func (h *InsuranceHandler) Packages(w http.ResponseWriter, r *http.Request) {
	packages, err := h.insuranceService.Packages(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if packages == nil {
		packages = []domain.InsurancePackage{}
	}
	writeJSON(w, http.StatusOK, packages)
}

// Dependants serves GET /api/insurance/dependants/{empId}.
func (h *InsuranceHandler) Dependants(w http.ResponseWriter, r *http.Request) {
	empID, ok := h.authorizedEmpID(w, r, r.PathValue("empId"))
	if !ok {
		return
	}

	dependants, err := h.insuranceService.Dependants(r.Context(), empID)
	if err != nil {
		writeError(w, err)
		return
	}
	if dependants == nil {
		dependants = []domain.Dependant{}
	}
	writeJSON(w, http.StatusOK, dependants)
}

// AddDependant serves POST /api/insurance/dependant/add?empId&name&age&gender&relation.
func (h *InsuranceHandler) AddDependant(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	empID, ok := h.authorizedEmpID(w, r, q.Get("empId"))
	if !ok {
		return
	}
	age, _ := strconv.Atoi(q.Get("age"))

	dep, err := h.insuranceService.AddDependant(r.Context(), empID, q.Get("name"), age, q.Get("gender"), q.Get("relation"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, dep)
}

// UpdateDependant serves PUT /api/insurance/dependant/update/{id}?name&age&gender&relation.
func (h *InsuranceHandler) UpdateDependant(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid dependant id", http.StatusBadRequest)
		return
	}

	q := r.URL.Query()
	age, _ := strconv.Atoi(q.Get("age"))

	dep, err := h.insuranceService.UpdateDependant(r.Context(), id, q.Get("name"), age, q.Get("gender"), q.Get("relation"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dep)
}

// DeleteDependant serves DELETE /api/insurance/dependant/delete/{id}.
func (h *InsuranceHandler) DeleteDependant(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid dependant id", http.StatusBadRequest)
		return
	}

	if err := h.insuranceService.DeleteDependant(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Dependant removed"})
}

// authorizedEmpID parses the employee id and enforces self-or-admin access.
func (h *InsuranceHandler) authorizedEmpID(w http.ResponseWriter, r *http.Request, raw string) (int64, bool) {
	empID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		http.Error(w, "invalid empId", http.StatusBadRequest)
		return 0, false
	}

	session := middleware.SessionFromContext(r.Context())
	if session == nil || (!session.IsAdmin() && session.EmployeeID != empID) {
		http.Error(w, "forbidden", http.StatusForbidden)
		return 0, false
	}
	return empID, true
}
