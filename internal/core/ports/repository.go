package ports

import (
	"context"

	"github.com/mediease/insurance-portal-service/internal/core/domain"
)

type EmployeeRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.Employee, error)
	FindByID(ctx context.Context, id int64) (*domain.Employee, error)
	Create(ctx context.Context, emp domain.Employee) (*domain.Employee, error)
}

type InsuranceRepository interface {
	// FindByEmployee returns (nil, nil) when the employee has no policy yet.
	FindByEmployee(ctx context.Context, empID int64) (*domain.Insurance, error)
	Create(ctx context.Context, empID, packageID int64) (*domain.Insurance, error)
	Packages(ctx context.Context) ([]domain.InsurancePackage, error)

	Dependants(ctx context.Context, empID int64) ([]domain.Dependant, error)
	AddDependant(ctx context.Context, dep domain.Dependant) (*domain.Dependant, error)
	UpdateDependant(ctx context.Context, dep domain.Dependant) (*domain.Dependant, error)
	DeleteDependant(ctx context.Context, id int64) error
}

type HospitalRepository interface {
	All(ctx context.Context) ([]domain.Hospital, error)
	ByCity(ctx context.Context, city string) ([]domain.Hospital, error)
	ByState(ctx context.Context, state string) ([]domain.Hospital, error)
	ByID(ctx context.Context, id int64) (*domain.Hospital, error)
}

type ClaimRepository interface {
	Create(ctx context.Context, claim domain.ClaimRequest) (*domain.ClaimRequest, error)
	All(ctx context.Context) ([]domain.ClaimRequest, error)
	ByEmployee(ctx context.Context, empID int64) ([]domain.ClaimRequest, error)
	// Decide flips a PENDING claim to its terminal status, computes and
	// stores the copay split on approval, decrements the policy's remaining
	// coverage, and records the outbox event in the same transaction.
	// Returns domain.ErrClaimNotFound / domain.ErrAlreadyDecided.
	Decide(ctx context.Context, requestID int64, decision domain.Decision, outboxPayload []byte) (*domain.ClaimRequest, error)
}
