package unit

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mediease/insurance-portal-service/internal/adapters/handler"
	"github.com/mediease/insurance-portal-service/internal/adapters/middleware"
	"github.com/mediease/insurance-portal-service/internal/core/domain"
	"github.com/mediease/insurance-portal-service/internal/core/services"
	"github.com/mediease/insurance-portal-service/test/mocks"
)

// claimsTestServer wires the claims handler behind a mux so path values
// resolve, with a fixed session injected in place of the auth middleware.
func claimsTestServer(h *handler.ClaimsHandler, session *domain.Session) *http.ServeMux {
	withSession := func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			next(w, r.WithContext(middleware.ContextWithSession(r.Context(), session)))
		}
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/requests/create", withSession(h.Create))
	mux.HandleFunc("GET /api/requests/employee/{empId}", withSession(h.ByEmployee))
	mux.HandleFunc("GET /api/requests/all", withSession(h.All))
	mux.HandleFunc("GET /api/requests/filtered", withSession(h.Filtered))
	mux.HandleFunc("PUT /api/requests/approve/{id}", withSession(h.Approve))
	mux.HandleFunc("PUT /api/requests/reject/{id}", withSession(h.Reject))
	return mux
}

func newClaimsHandlerFixture() (*handler.ClaimsHandler, *mocks.MockClaimRepository, *mocks.MockInsuranceRepository) {
	insuranceRepo := mocks.NewMockInsuranceRepository()
	hospitalRepo := mocks.NewMockHospitalRepository(mocks.CreateTestHospital(1))
	claimRepo := mocks.NewMockClaimRepository().
		WithHospitals(mocks.CreateTestHospital(1)).
		WithInsurance(insuranceRepo)

	claimsService := services.NewClaimsService(claimRepo, insuranceRepo, hospitalRepo)
	reviewService := services.NewReviewService(claimRepo)
	return handler.NewClaimsHandler(claimsService, reviewService), claimRepo, insuranceRepo
}

func TestCreateClaimHandler_Success(t *testing.T) {
	h, _, insuranceRepo := newClaimsHandlerFixture()
	insuranceRepo.SetPolicy(mocks.CreateTestInsurance(7, 50000))

	session := mocks.CreateTestSession("tok", 7, domain.RoleEmployee)
	mux := claimsTestServer(h, &session)

	req := httptest.NewRequest(http.MethodPost, "/api/requests/create?empId=7&amount=12000&hospitalId=1", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var claim domain.ClaimRequest
	if err := json.NewDecoder(rec.Body).Decode(&claim); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if claim.Status != domain.ClaimPending {
		t.Errorf("expected PENDING, got %s", claim.Status)
	}
	if claim.RequestID == 0 {
		t.Error("expected assigned request id")
	}
}

func TestCreateClaimHandler_ForbiddenForOtherEmployee(t *testing.T) {
	h, claimRepo, insuranceRepo := newClaimsHandlerFixture()
	insuranceRepo.SetPolicy(mocks.CreateTestInsurance(7, 50000))

	session := mocks.CreateTestSession("tok", 8, domain.RoleEmployee)
	mux := claimsTestServer(h, &session)

	req := httptest.NewRequest(http.MethodPost, "/api/requests/create?empId=7&amount=12000&hospitalId=1", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
	if len(claimRepo.CreateCalls) != 0 {
		t.Error("forbidden request must not create a claim")
	}
}

func TestCreateClaimHandler_ValidationErrors(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{"no_hospital", "/api/requests/create?empId=7&amount=12000"},
		{"bad_amount", "/api/requests/create?empId=7&amount=abc&hospitalId=1"},
		{"exceeds_coverage", "/api/requests/create?empId=7&amount=99999&hospitalId=1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _, insuranceRepo := newClaimsHandlerFixture()
			insuranceRepo.SetPolicy(mocks.CreateTestInsurance(7, 50000))

			session := mocks.CreateTestSession("tok", 7, domain.RoleEmployee)
			mux := claimsTestServer(h, &session)

			req := httptest.NewRequest(http.MethodPost, tt.query, nil)
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestEmployeeClaimsHandler_AdminCanReadAnyEmployee(t *testing.T) {
	h, claimRepo, _ := newClaimsHandlerFixture()
	claimRepo.AddClaim(mocks.CreateTestClaim(1, 7, 1000, nil))

	session := mocks.CreateTestSession("tok", 99, domain.RoleAdmin)
	mux := claimsTestServer(h, &session)

	req := httptest.NewRequest(http.MethodGet, "/api/requests/employee/7", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var claims []domain.ClaimRequest
	if err := json.NewDecoder(rec.Body).Decode(&claims); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(claims) != 1 {
		t.Fatalf("expected 1 claim, got %d", len(claims))
	}
}

func TestFilteredHandler_ParsesDates(t *testing.T) {
	h, claimRepo, _ := newClaimsHandlerFixture()
	claimRepo.AddClaim(mocks.CreateTestClaim(1, 7, 1000, day(2024, 1, 10)))
	claimRepo.AddClaim(mocks.CreateTestClaim(2, 7, 2000, day(2024, 3, 10)))

	session := mocks.CreateTestSession("tok", 1, domain.RoleAdmin)
	mux := claimsTestServer(h, &session)

	req := httptest.NewRequest(http.MethodGet, "/api/requests/filtered?status=PENDING&startDate=2024-01-01&endDate=2024-01-31", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var claims []domain.ClaimRequest
	if err := json.NewDecoder(rec.Body).Decode(&claims); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(claims) != 1 || claims[0].RequestID != 1 {
		t.Fatalf("expected only claim 1, got %+v", claims)
	}
}

func TestFilteredHandler_RejectsBadDate(t *testing.T) {
	h, _, _ := newClaimsHandlerFixture()
	session := mocks.CreateTestSession("tok", 1, domain.RoleAdmin)
	mux := claimsTestServer(h, &session)

	req := httptest.NewRequest(http.MethodGet, "/api/requests/filtered?startDate=01-01-2024", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestApproveHandler(t *testing.T) {
	h, claimRepo, insuranceRepo := newClaimsHandlerFixture()
	insuranceRepo.SetPolicy(mocks.CreateTestInsurance(7, 50000))
	claimRepo.AddClaim(mocks.CreateTestClaim(5, 7, 10000, day(2024, 2, 1)))

	session := mocks.CreateTestSession("tok", 1, domain.RoleAdmin)
	mux := claimsTestServer(h, &session)

	req := httptest.NewRequest(http.MethodPut, "/api/requests/approve/5", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var claim domain.ClaimRequest
	if err := json.NewDecoder(rec.Body).Decode(&claim); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if claim.Status != domain.ClaimApproved {
		t.Errorf("expected APPROVED, got %s", claim.Status)
	}
	if claim.CopayAmount == nil || *claim.CopayAmount != 2000 {
		t.Errorf("expected copay 2000, got %v", claim.CopayAmount)
	}

	// A second decision on the same claim conflicts.
	req = httptest.NewRequest(http.MethodPut, "/api/requests/reject/5", nil)
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 on re-decision, got %d", rec.Code)
	}
}

func TestRejectHandler_UnknownClaim(t *testing.T) {
	h, _, _ := newClaimsHandlerFixture()
	session := mocks.CreateTestSession("tok", 1, domain.RoleAdmin)
	mux := claimsTestServer(h, &session)

	req := httptest.NewRequest(http.MethodPut, "/api/requests/reject/404", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
