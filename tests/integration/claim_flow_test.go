// Package integration exercises the HTTP surface end to end: real
// handlers, real services and real middleware, with the in-memory mocks
// standing in for Postgres and Redis.
package integration

import (
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/mediease/insurance-portal-service/internal/adapters/handler"
	"github.com/mediease/insurance-portal-service/internal/adapters/middleware"
	"github.com/mediease/insurance-portal-service/internal/core/domain"
	"github.com/mediease/insurance-portal-service/internal/core/services"
	"github.com/mediease/insurance-portal-service/test/mocks"
)

type testEnv struct {
	server        *httptest.Server
	employeeRepo  *mocks.MockEmployeeRepository
	insuranceRepo *mocks.MockInsuranceRepository
	claimRepo     *mocks.MockClaimRepository
}

func setupTestServer(t *testing.T) *testEnv {
	t.Helper()

	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("failed to generate key: %v", err)
	}

	employeeRepo := mocks.NewMockEmployeeRepository()
	insuranceRepo := mocks.NewMockInsuranceRepository()
	insuranceRepo.SetPackages([]domain.InsurancePackage{
		{ID: 1, PackageName: "Gold", Amount: 100000},
	})
	hospitalRepo := mocks.NewMockHospitalRepository(mocks.CreateTestHospital(1))
	claimRepo := mocks.NewMockClaimRepository().
		WithHospitals(mocks.CreateTestHospital(1)).
		WithInsurance(insuranceRepo)
	sessions := mocks.NewMockSessionStore()

	authService := services.NewAuthService(employeeRepo, sessions, privateKey, time.Hour)
	registrationService := services.NewRegistrationService(employeeRepo)
	claimsService := services.NewClaimsService(claimRepo, insuranceRepo, hospitalRepo)
	reviewService := services.NewReviewService(claimRepo)
	insuranceService := services.NewInsuranceOnboarding(insuranceRepo)

	authHandler := handler.NewAuthHandler(authService)
	registrationHandler := handler.NewRegistrationHandler(registrationService)
	claimsHandler := handler.NewClaimsHandler(claimsService, reviewService)
	insuranceHandler := handler.NewInsuranceHandler(insuranceService)

	authMiddleware := middleware.NewAuthMiddleware(&privateKey.PublicKey, sessions)
	anyRole := []domain.Role{domain.RoleEmployee, domain.RoleAdmin}
	adminOnly := []domain.Role{domain.RoleAdmin}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/users/login", authHandler.Login)
	mux.HandleFunc("POST /api/users/register", registrationHandler.Register)
	mux.HandleFunc("POST /api/users/logout", authMiddleware.RequireRole(anyRole, authHandler.Logout))
	mux.HandleFunc("POST /api/requests/create", authMiddleware.RequireRole(anyRole, claimsHandler.Create))
	mux.HandleFunc("GET /api/requests/employee/{empId}", authMiddleware.RequireRole(anyRole, claimsHandler.ByEmployee))
	mux.HandleFunc("GET /api/requests/all", authMiddleware.RequireRole(adminOnly, claimsHandler.All))
	mux.HandleFunc("PUT /api/requests/approve/{id}", authMiddleware.RequireRole(adminOnly, claimsHandler.Approve))
	mux.HandleFunc("POST /api/insurance/create", authMiddleware.RequireRole(anyRole, insuranceHandler.Create))
	mux.HandleFunc("GET /api/insurance/{empId}", authMiddleware.RequireRole(anyRole, insuranceHandler.ByEmployee))

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return &testEnv{
		server:        server,
		employeeRepo:  employeeRepo,
		insuranceRepo: insuranceRepo,
		claimRepo:     claimRepo,
	}
}

func (env *testEnv) register(t *testing.T, name, email, role string) handler.RegistrationResponse {
	t.Helper()
	body := fmt.Sprintf(`{"name":%q,"phone":"9876543210","email":%q,"password":"secret1","role":%q}`, name, email, role)
	resp, err := http.Post(env.server.URL+"/api/users/register", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("register request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201 from register, got %d", resp.StatusCode)
	}

	var out handler.RegistrationResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("failed to decode register response: %v", err)
	}
	return out
}

func (env *testEnv) login(t *testing.T, email, password string) handler.LoginResponse {
	t.Helper()
	url := fmt.Sprintf("%s/api/users/login?email=%s&password=%s", env.server.URL, email, password)
	resp, err := http.Post(url, "application/json", nil)
	if err != nil {
		t.Fatalf("login request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 from login, got %d", resp.StatusCode)
	}

	var out handler.LoginResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("failed to decode login response: %v", err)
	}
	return out
}

func (env *testEnv) do(t *testing.T, method, path, token string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, env.server.URL+path, nil)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	return resp
}

// TestClaimLifecycle walks the portal's primary journey: an employee
// registers, logs in, enrolls in a package, raises a claim, and an
// administrator approves it.
func TestClaimLifecycle(t *testing.T) {
	env := setupTestServer(t)

	employee := env.register(t, "Asha Rao", "asha@mediease.com", "")
	env.register(t, "Portal Admin", "admin@mediease.com", "ADMIN")

	empLogin := env.login(t, "asha@mediease.com", "secret1")
	adminLogin := env.login(t, "admin@mediease.com", "secret1")
	if !adminLogin.Admin {
		t.Fatal("expected admin flag on admin login")
	}

	// Enrollment: no policy yet, then Gold.
	resp := env.do(t, http.MethodGet, fmt.Sprintf("/api/insurance/%d", employee.ID), empLogin.Token)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected empty 200 for missing policy, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	resp = env.do(t, http.MethodPost, fmt.Sprintf("/api/insurance/create?empId=%d&packageId=1", employee.ID), empLogin.Token)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201 from insurance create, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	// Claim submission by the employee.
	resp = env.do(t, http.MethodPost, fmt.Sprintf("/api/requests/create?empId=%d&amount=10000&hospitalId=1", employee.ID), empLogin.Token)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201 from claim create, got %d", resp.StatusCode)
	}
	var claim domain.ClaimRequest
	if err := json.NewDecoder(resp.Body).Decode(&claim); err != nil {
		t.Fatalf("failed to decode claim: %v", err)
	}
	resp.Body.Close()

	// The employee cannot reach the admin review surface.
	resp = env.do(t, http.MethodGet, "/api/requests/all", empLogin.Token)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403 for employee on admin route, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	// The admin approves; copay split comes back populated.
	resp = env.do(t, http.MethodPut, fmt.Sprintf("/api/requests/approve/%d", claim.RequestID), adminLogin.Token)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 from approve, got %d", resp.StatusCode)
	}
	var decided domain.ClaimRequest
	if err := json.NewDecoder(resp.Body).Decode(&decided); err != nil {
		t.Fatalf("failed to decode decided claim: %v", err)
	}
	resp.Body.Close()

	if decided.Status != domain.ClaimApproved {
		t.Errorf("expected APPROVED, got %s", decided.Status)
	}
	if decided.CopayAmount == nil || *decided.CopayAmount != 2000 {
		t.Errorf("expected copay 2000, got %v", decided.CopayAmount)
	}
	if decided.ApprovedAmount == nil || *decided.ApprovedAmount != 8000 {
		t.Errorf("expected approved amount 8000, got %v", decided.ApprovedAmount)
	}

	// Coverage shrank by the insurer-paid share.
	resp = env.do(t, http.MethodGet, fmt.Sprintf("/api/insurance/%d", employee.ID), empLogin.Token)
	var policy domain.Insurance
	if err := json.NewDecoder(resp.Body).Decode(&policy); err != nil {
		t.Fatalf("failed to decode policy: %v", err)
	}
	resp.Body.Close()
	if policy.AmountRemaining != 92000 {
		t.Errorf("expected remaining 92000, got %v", policy.AmountRemaining)
	}
}

// TestLogoutKillsSession verifies the session record, not the token
// expiry, is what authenticates requests.
func TestLogoutKillsSession(t *testing.T) {
	env := setupTestServer(t)

	employee := env.register(t, "Asha Rao", "asha@mediease.com", "")
	login := env.login(t, "asha@mediease.com", "secret1")

	resp := env.do(t, http.MethodGet, fmt.Sprintf("/api/requests/employee/%d", employee.ID), login.Token)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 before logout, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	resp = env.do(t, http.MethodPost, "/api/users/logout", login.Token)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 from logout, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	// The still-unexpired token no longer authenticates.
	resp = env.do(t, http.MethodGet, fmt.Sprintf("/api/requests/employee/%d", employee.ID), login.Token)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 after logout, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}
