package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/mediease/insurance-portal-service/internal/core/domain"
	"github.com/mediease/insurance-portal-service/internal/core/ports"
)

// InsuranceOnboarding covers package selection and dependant management.
// An employee holds at most one active policy; dependants live and die
// independently of the policy and claim lifecycles.
type InsuranceOnboarding struct {
	insuranceRepo ports.InsuranceRepository
}

var _ ports.InsuranceService = (*InsuranceOnboarding)(nil)

func NewInsuranceOnboarding(insuranceRepo ports.InsuranceRepository) *InsuranceOnboarding {
	return &InsuranceOnboarding{insuranceRepo: insuranceRepo}
}

func (s *InsuranceOnboarding) EmployeeInsurance(ctx context.Context, empID int64) (*domain.Insurance, error) {
	return s.insuranceRepo.FindByEmployee(ctx, empID)
}

func (s *InsuranceOnboarding) CreateInsurance(ctx context.Context, empID, packageID int64) (*domain.Insurance, error) {
	existing, err := s.insuranceRepo.FindByEmployee(ctx, empID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrPolicyExists
	}

	policy, err := s.insuranceRepo.Create(ctx, empID, packageID)
	if err != nil {
		return nil, err
	}

	log.Info().
		Int64("emp_id", empID).
		Int64("package_id", packageID).
		Str("package", policy.PackageName).
		Msg("insurance policy created")

	return policy, nil
}

func (s *InsuranceOnboarding) Packages(ctx context.Context) ([]domain.InsurancePackage, error) {
	return s.insuranceRepo.Packages(ctx)
}

func (s *InsuranceOnboarding) Dependants(ctx context.Context, empID int64) ([]domain.Dependant, error) {
	return s.insuranceRepo.Dependants(ctx, empID)
}

func (s *InsuranceOnboarding) AddDependant(ctx context.Context, empID int64, name string, age int, gender, relation string) (*domain.Dependant, error) {
	if err := validateDependant(name, age); err != nil {
		return nil, err
	}
	return s.insuranceRepo.AddDependant(ctx, domain.Dependant{
		Name:         strings.TrimSpace(name),
		Age:          age,
		Gender:       gender,
		Relation:     relation,
		DependantFor: empID,
	})
}

func (s *InsuranceOnboarding) UpdateDependant(ctx context.Context, id int64, name string, age int, gender, relation string) (*domain.Dependant, error) {
	if err := validateDependant(name, age); err != nil {
		return nil, err
	}
	return s.insuranceRepo.UpdateDependant(ctx, domain.Dependant{
		ID:       id,
		Name:     strings.TrimSpace(name),
		Age:      age,
		Gender:   gender,
		Relation: relation,
	})
}

func (s *InsuranceOnboarding) DeleteDependant(ctx context.Context, id int64) error {
	return s.insuranceRepo.DeleteDependant(ctx, id)
}

func validateDependant(name string, age int) error {
	if strings.TrimSpace(name) == "" {
		return domain.ValidationError("dependant name is required")
	}
	if age <= 0 {
		return domain.ValidationError("dependant age must be positive")
	}
	return nil
}
