package ports

import (
	"context"
	"time"

	"github.com/mediease/insurance-portal-service/internal/core/domain"
)

type AuthService interface {
	Login(ctx context.Context, email, password string) (*domain.Session, error)
	Logout(ctx context.Context, token string) error
}

type RegistrationService interface {
	Register(ctx context.Context, name, phone, email, password, role string) (*domain.Employee, error)
}

type UserService interface {
	Employee(ctx context.Context, id int64) (*domain.Employee, error)
}

type ClaimService interface {
	SubmitClaim(ctx context.Context, empID, hospitalID int64, amount float64) (*domain.ClaimRequest, error)
	EmployeeClaims(ctx context.Context, empID int64) ([]domain.ClaimRequest, error)
}

type ReviewService interface {
	AllClaims(ctx context.Context) ([]domain.ClaimRequest, error)
	FilteredClaims(ctx context.Context, status domain.ClaimStatus, from, to *time.Time) ([]domain.ClaimRequest, error)
	Decide(ctx context.Context, requestID int64, decision domain.Decision) (*domain.ClaimRequest, error)
}

type InsuranceService interface {
	EmployeeInsurance(ctx context.Context, empID int64) (*domain.Insurance, error)
	CreateInsurance(ctx context.Context, empID, packageID int64) (*domain.Insurance, error)
	Packages(ctx context.Context) ([]domain.InsurancePackage, error)

	Dependants(ctx context.Context, empID int64) ([]domain.Dependant, error)
	AddDependant(ctx context.Context, empID int64, name string, age int, gender, relation string) (*domain.Dependant, error)
	UpdateDependant(ctx context.Context, id int64, name string, age int, gender, relation string) (*domain.Dependant, error)
	DeleteDependant(ctx context.Context, id int64) error
}

type HospitalService interface {
	All(ctx context.Context) ([]domain.Hospital, error)
	Search(ctx context.Context, term string) ([]domain.Hospital, error)
	ByCity(ctx context.Context, city string) ([]domain.Hospital, error)
	ByState(ctx context.Context, state string) ([]domain.Hospital, error)
	ByID(ctx context.Context, id int64) (*domain.Hospital, error)
}
