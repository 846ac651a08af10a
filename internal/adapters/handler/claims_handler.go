package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/mediease/insurance-portal-service/internal/adapters/middleware"
	"github.com/mediease/insurance-portal-service/internal/core/domain"
	"github.com/mediease/insurance-portal-service/internal/core/ports"
	"github.com/mediease/insurance-portal-service/internal/observability"
)

const dateLayout = "2006-01-02"

type ClaimsHandler struct {
	claimService  ports.ClaimService
	reviewService ports.ReviewService
}

func NewClaimsHandler(claims ports.ClaimService, review ports.ReviewService) *ClaimsHandler {
	return &ClaimsHandler{
		claimService:  claims,
		reviewService: review,
	}
}

// Create serves POST /api/requests/create?empId&amount&hospitalId.
// A missing or unparsable hospitalId is treated as "no hospital selected"
// so validation reports it, not the parser.
func (h *ClaimsHandler) Create(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	empID, err := strconv.ParseInt(q.Get("empId"), 10, 64)
	if err != nil {
		http.Error(w, "invalid empId", http.StatusBadRequest)
		return
	}
	amount, err := strconv.ParseFloat(q.Get("amount"), 64)
	if err != nil {
		writeError(w, domain.ErrInvalidAmount)
		return
	}
	hospitalID, _ := strconv.ParseInt(q.Get("hospitalId"), 10, 64)

	session := middleware.SessionFromContext(r.Context())
	if session == nil || (!session.IsAdmin() && session.EmployeeID != empID) {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}

	claim, err := h.claimService.SubmitClaim(r.Context(), empID, hospitalID, amount)
	if err != nil {
		writeError(w, err)
		return
	}

	observability.ClaimsSubmittedTotal.Inc()
	writeJSON(w, http.StatusCreated, claim)
}

// ByEmployee serves GET /api/requests/employee/{empId}.
func (h *ClaimsHandler) ByEmployee(w http.ResponseWriter, r *http.Request) {
	empID, err := strconv.ParseInt(r.PathValue("empId"), 10, 64)
	if err != nil {
		http.Error(w, "invalid empId", http.StatusBadRequest)
		return
	}

	session := middleware.SessionFromContext(r.Context())
	if session == nil || (!session.IsAdmin() && session.EmployeeID != empID) {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}

	claims, err := h.claimService.EmployeeClaims(r.Context(), empID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, emptyIfNil(claims))
}

// All serves GET /api/requests/all (admin only, unfiltered).
func (h *ClaimsHandler) All(w http.ResponseWriter, r *http.Request) {
	claims, err := h.reviewService.AllClaims(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, emptyIfNil(claims))
}

// Filtered serves GET /api/requests/filtered?status&startDate&endDate.
// Absent status means ALL; dates are inclusive day bounds.
func (h *ClaimsHandler) Filtered(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	status := domain.StatusAll
	if s := q.Get("status"); s != "" {
		status = domain.ClaimStatus(s)
	}

	from, err := parseDate(q.Get("startDate"))
	if err != nil {
		http.Error(w, "invalid startDate", http.StatusBadRequest)
		return
	}
	to, err := parseDate(q.Get("endDate"))
	if err != nil {
		http.Error(w, "invalid endDate", http.StatusBadRequest)
		return
	}

	claims, err := h.reviewService.FilteredClaims(r.Context(), status, from, to)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, emptyIfNil(claims))
}

// Approve serves PUT /api/requests/approve/{id}.
func (h *ClaimsHandler) Approve(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, domain.DecisionApprove)
}

// Reject serves PUT /api/requests/reject/{id}.
func (h *ClaimsHandler) Reject(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, domain.DecisionReject)
}

func (h *ClaimsHandler) decide(w http.ResponseWriter, r *http.Request, decision domain.Decision) {
	requestID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid request id", http.StatusBadRequest)
		return
	}

	claim, err := h.reviewService.Decide(r.Context(), requestID, decision)
	if err != nil {
		writeError(w, err)
		return
	}

	observability.ClaimDecisionsTotal.WithLabelValues(string(decision)).Inc()
	writeJSON(w, http.StatusOK, claim)
}

func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// emptyIfNil keeps list endpoints returning [] rather than null.
func emptyIfNil(claims []domain.ClaimRequest) []domain.ClaimRequest {
	if claims == nil {
		return []domain.ClaimRequest{}
	}
	return claims
}
