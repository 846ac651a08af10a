// Package mocks provides in-memory implementations of the port interfaces
// so services and handlers can be tested without Postgres, Redis or
// RabbitMQ. Each mock tracks its calls and supports error injection.
package mocks

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/mediease/insurance-portal-service/internal/core/domain"
	"github.com/mediease/insurance-portal-service/internal/core/ports"
)

// MockEmployeeRepository implements ports.EmployeeRepository.
type MockEmployeeRepository struct {
	mu sync.RWMutex

	employees map[int64]*domain.Employee
	nextID    int64

	FindByEmailCalls []string
	FindByIDCalls    []int64
	CreateCalls      []domain.Employee

	FindByEmailError error
	FindByIDError    error
	CreateError      error
}

var _ ports.EmployeeRepository = (*MockEmployeeRepository)(nil)

func NewMockEmployeeRepository() *MockEmployeeRepository {
	return &MockEmployeeRepository{
		employees: make(map[int64]*domain.Employee),
		nextID:    1,
	}
}

// AddEmployee seeds an employee directly (test setup).
func (m *MockEmployeeRepository) AddEmployee(emp domain.Employee) *domain.Employee {
	m.mu.Lock()
	defer m.mu.Unlock()
	if emp.ID == 0 {
		emp.ID = m.nextID
	}
	if emp.ID >= m.nextID {
		m.nextID = emp.ID + 1
	}
	m.employees[emp.ID] = &emp
	return &emp
}

func (m *MockEmployeeRepository) FindByEmail(ctx context.Context, email string) (*domain.Employee, error) {
	m.mu.Lock()
	m.FindByEmailCalls = append(m.FindByEmailCalls, email)
	m.mu.Unlock()

	if m.FindByEmailError != nil {
		return nil, m.FindByEmailError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, emp := range m.employees {
		if emp.Email == email {
			cp := *emp
			return &cp, nil
		}
	}
	return nil, domain.ErrEmployeeNotFound
}

func (m *MockEmployeeRepository) FindByID(ctx context.Context, id int64) (*domain.Employee, error) {
	m.mu.Lock()
	m.FindByIDCalls = append(m.FindByIDCalls, id)
	m.mu.Unlock()

	if m.FindByIDError != nil {
		return nil, m.FindByIDError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	emp, ok := m.employees[id]
	if !ok {
		return nil, domain.ErrEmployeeNotFound
	}
	cp := *emp
	return &cp, nil
}

func (m *MockEmployeeRepository) Create(ctx context.Context, emp domain.Employee) (*domain.Employee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CreateCalls = append(m.CreateCalls, emp)

	if m.CreateError != nil {
		return nil, m.CreateError
	}

	for _, existing := range m.employees {
		if existing.Email == emp.Email {
			return nil, domain.ErrEmailTaken
		}
	}

	emp.ID = m.nextID
	emp.CreatedAt = time.Now()
	m.nextID++
	m.employees[emp.ID] = &emp
	cp := emp
	return &cp, nil
}

// MockInsuranceRepository implements ports.InsuranceRepository.
type MockInsuranceRepository struct {
	mu sync.RWMutex

	policies   map[int64]*domain.Insurance // keyed by emp id
	packages   []domain.InsurancePackage
	dependants map[int64]*domain.Dependant
	nextDepID  int64

	FindByEmployeeCalls []int64
	CreateCalls         [][2]int64

	FindByEmployeeError error
	CreateError         error
	DependantsError     error
}

var _ ports.InsuranceRepository = (*MockInsuranceRepository)(nil)

func NewMockInsuranceRepository() *MockInsuranceRepository {
	return &MockInsuranceRepository{
		policies:   make(map[int64]*domain.Insurance),
		dependants: make(map[int64]*domain.Dependant),
		nextDepID:  1,
	}
}

// SetPolicy seeds a policy for an employee (test setup).
func (m *MockInsuranceRepository) SetPolicy(policy domain.Insurance) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.policies[policy.EmpID] = &policy
}

// SetPackages seeds the selectable packages (test setup).
func (m *MockInsuranceRepository) SetPackages(packages []domain.InsurancePackage) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.packages = packages
}

func (m *MockInsuranceRepository) FindByEmployee(ctx context.Context, empID int64) (*domain.Insurance, error) {
	m.mu.Lock()
	m.FindByEmployeeCalls = append(m.FindByEmployeeCalls, empID)
	m.mu.Unlock()

	if m.FindByEmployeeError != nil {
		return nil, m.FindByEmployeeError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	policy, ok := m.policies[empID]
	if !ok {
		return nil, nil
	}
	cp := *policy
	return &cp, nil
}

func (m *MockInsuranceRepository) Create(ctx context.Context, empID, packageID int64) (*domain.Insurance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CreateCalls = append(m.CreateCalls, [2]int64{empID, packageID})

	if m.CreateError != nil {
		return nil, m.CreateError
	}
	if _, exists := m.policies[empID]; exists {
		return nil, domain.ErrPolicyExists
	}

	for _, pkg := range m.packages {
		if pkg.ID == packageID {
			policy := domain.Insurance{
				ID:              empID,
				EmpID:           empID,
				PackageName:     pkg.PackageName,
				AmountRemaining: pkg.Amount,
			}
			m.policies[empID] = &policy
			cp := policy
			return &cp, nil
		}
	}
	return nil, domain.ErrPackageNotFound
}

func (m *MockInsuranceRepository) Packages(ctx context.Context) ([]domain.InsurancePackage, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.InsurancePackage, len(m.packages))
	copy(out, m.packages)
	return out, nil
}

func (m *MockInsuranceRepository) Dependants(ctx context.Context, empID int64) ([]domain.Dependant, error) {
	if m.DependantsError != nil {
		return nil, m.DependantsError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []domain.Dependant
	for _, dep := range m.dependants {
		if dep.DependantFor == empID {
			out = append(out, *dep)
		}
	}
	return out, nil
}

func (m *MockInsuranceRepository) AddDependant(ctx context.Context, dep domain.Dependant) (*domain.Dependant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	dep.ID = m.nextDepID
	m.nextDepID++
	m.dependants[dep.ID] = &dep
	cp := dep
	return &cp, nil
}

func (m *MockInsuranceRepository) UpdateDependant(ctx context.Context, dep domain.Dependant) (*domain.Dependant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.dependants[dep.ID]
	if !ok {
		return nil, domain.ErrDependantNotFound
	}
	dep.DependantFor = existing.DependantFor
	m.dependants[dep.ID] = &dep
	cp := dep
	return &cp, nil
}

func (m *MockInsuranceRepository) DeleteDependant(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.dependants[id]; !ok {
		return domain.ErrDependantNotFound
	}
	delete(m.dependants, id)
	return nil
}

// MockHospitalRepository implements ports.HospitalRepository.
type MockHospitalRepository struct {
	mu sync.RWMutex

	hospitals []domain.Hospital

	AllError  error
	ByIDError error
}

var _ ports.HospitalRepository = (*MockHospitalRepository)(nil)

func NewMockHospitalRepository(hospitals ...domain.Hospital) *MockHospitalRepository {
	return &MockHospitalRepository{hospitals: hospitals}
}

func (m *MockHospitalRepository) All(ctx context.Context) ([]domain.Hospital, error) {
	if m.AllError != nil {
		return nil, m.AllError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.Hospital, len(m.hospitals))
	copy(out, m.hospitals)
	return out, nil
}

func (m *MockHospitalRepository) ByCity(ctx context.Context, city string) ([]domain.Hospital, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []domain.Hospital
	for _, h := range m.hospitals {
		if strings.EqualFold(h.City, city) {
			out = append(out, h)
		}
	}
	return out, nil
}

func (m *MockHospitalRepository) ByState(ctx context.Context, state string) ([]domain.Hospital, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []domain.Hospital
	for _, h := range m.hospitals {
		if strings.EqualFold(h.State, state) {
			out = append(out, h)
		}
	}
	return out, nil
}

func (m *MockHospitalRepository) ByID(ctx context.Context, id int64) (*domain.Hospital, error) {
	if m.ByIDError != nil {
		return nil, m.ByIDError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, h := range m.hospitals {
		if h.ID == id {
			cp := h
			return &cp, nil
		}
	}
	return nil, domain.ErrHospitalNotFound
}

// MockClaimRepository implements ports.ClaimRepository. Decide reproduces
// the transactional semantics of the SQL adapter in memory: copay split
// on approval, coverage decrement, terminal-state guard.
type MockClaimRepository struct {
	mu sync.RWMutex

	claims    map[int64]*domain.ClaimRequest
	hospitals map[int64]domain.Hospital // copay rate lookup for Decide
	insurance *MockInsuranceRepository  // coverage decrement on approve
	nextID    int64

	CreateCalls []domain.ClaimRequest
	DecideCalls []int64

	CreateError error
	AllError    error
	DecideError error

	// OutboxPayloads records what Decide would have written to the outbox.
	OutboxPayloads [][]byte
}

var _ ports.ClaimRepository = (*MockClaimRepository)(nil)

func NewMockClaimRepository() *MockClaimRepository {
	return &MockClaimRepository{
		claims:    make(map[int64]*domain.ClaimRequest),
		hospitals: make(map[int64]domain.Hospital),
		nextID:    1,
	}
}

// WithHospitals registers hospitals so Decide can resolve copay rates.
func (m *MockClaimRepository) WithHospitals(hospitals ...domain.Hospital) *MockClaimRepository {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, h := range hospitals {
		m.hospitals[h.ID] = h
	}
	return m
}

// WithInsurance links an insurance mock so approvals decrement coverage.
func (m *MockClaimRepository) WithInsurance(repo *MockInsuranceRepository) *MockClaimRepository {
	m.insurance = repo
	return m
}

// AddClaim seeds a claim directly (test setup).
func (m *MockClaimRepository) AddClaim(claim domain.ClaimRequest) *domain.ClaimRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	if claim.RequestID == 0 {
		claim.RequestID = m.nextID
	}
	if claim.RequestID >= m.nextID {
		m.nextID = claim.RequestID + 1
	}
	m.claims[claim.RequestID] = &claim
	return &claim
}

func (m *MockClaimRepository) Create(ctx context.Context, claim domain.ClaimRequest) (*domain.ClaimRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CreateCalls = append(m.CreateCalls, claim)

	if m.CreateError != nil {
		return nil, m.CreateError
	}

	claim.RequestID = m.nextID
	m.nextID++
	m.claims[claim.RequestID] = &claim
	cp := claim
	return &cp, nil
}

func (m *MockClaimRepository) All(ctx context.Context) ([]domain.ClaimRequest, error) {
	if m.AllError != nil {
		return nil, m.AllError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.ClaimRequest, 0, len(m.claims))
	for _, c := range m.claims {
		out = append(out, *c)
	}
	return out, nil
}

func (m *MockClaimRepository) ByEmployee(ctx context.Context, empID int64) ([]domain.ClaimRequest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []domain.ClaimRequest
	for _, c := range m.claims {
		if c.EmpID == empID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (m *MockClaimRepository) Decide(ctx context.Context, requestID int64, decision domain.Decision, outboxPayload []byte) (*domain.ClaimRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DecideCalls = append(m.DecideCalls, requestID)

	if m.DecideError != nil {
		return nil, m.DecideError
	}

	claim, ok := m.claims[requestID]
	if !ok {
		return nil, domain.ErrClaimNotFound
	}
	if claim.Decided() {
		return nil, domain.ErrAlreadyDecided
	}

	now := time.Now()
	if decision == domain.DecisionApprove {
		copayRate := 0.0
		if h, ok := m.hospitals[claim.HospitalID]; ok {
			copayRate = h.CopayPercentage
		}
		copay := domain.ComputeCopay(claim.RequestAmount, copayRate)
		approved := domain.ComputeApprovedAmount(claim.RequestAmount, copay)

		claim.Status = domain.ClaimApproved
		claim.CopayAmount = &copay
		claim.ApprovedAmount = &approved
		claim.ApprovedAt = &now

		if m.insurance != nil {
			if policy, ok := m.insurance.policies[claim.EmpID]; ok {
				policy.AmountRemaining -= approved
				if policy.AmountRemaining < 0 {
					policy.AmountRemaining = 0
				}
			}
		}
	} else {
		claim.Status = domain.ClaimRejected
	}

	m.OutboxPayloads = append(m.OutboxPayloads, outboxPayload)
	cp := *claim
	return &cp, nil
}

