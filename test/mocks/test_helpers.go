package mocks

import (
	"time"

	"github.com/mediease/insurance-portal-service/internal/core/domain"
	"github.com/mediease/insurance-portal-service/internal/core/ports"
)

// CreateTestHospital returns a network hospital with a 20% copay rate.
func CreateTestHospital(id int64) domain.Hospital {
	return domain.Hospital{
		ID:              id,
		HospitalName:    "City Care Hospital",
		City:            "Pune",
		State:           "Maharashtra",
		Address:         "12 MG Road",
		Phone:           "020-5551234",
		Specialties:     "Cardiology, Orthopedics",
		CopayPercentage: 20,
	}
}

// CreateTestInsurance returns an active policy with the given remaining
// coverage.
func CreateTestInsurance(empID int64, remaining float64) domain.Insurance {
	return domain.Insurance{
		ID:              empID,
		EmpID:           empID,
		PackageName:     "Gold",
		AmountRemaining: remaining,
	}
}

// CreateTestClaim returns a pending claim created at the given time. Pass
// a nil createdAt to model legacy rows without a timestamp.
func CreateTestClaim(requestID, empID int64, amount float64, createdAt *time.Time) domain.ClaimRequest {
	return domain.ClaimRequest{
		RequestID:     requestID,
		EmpID:         empID,
		RequestAmount: amount,
		Status:        domain.ClaimPending,
		HospitalID:    1,
		CreatedAt:     createdAt,
	}
}

// CreateTestSession returns a logged-in session for the given role.
func CreateTestSession(token string, empID int64, role domain.Role) domain.Session {
	return domain.Session{
		Token:       token,
		EmployeeID:  empID,
		DisplayName: "Test Employee",
		Email:       "test@mediease.com",
		Role:        role,
	}
}

// CreateTestEvent returns a sample claim-decided event.
func CreateTestEvent(requestID, empID int64, decision domain.Decision) ports.ClaimDecidedEvent {
	return ports.ClaimDecidedEvent{
		RequestID: requestID,
		EmpID:     empID,
		Decision:  decision,
		DecidedAt: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

// TimePtr is a convenience for building optional timestamps in fixtures.
func TimePtr(t time.Time) *time.Time {
	return &t
}
