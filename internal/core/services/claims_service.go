package services

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/mediease/insurance-portal-service/internal/core/domain"
	"github.com/mediease/insurance-portal-service/internal/core/ports"
)

// ClaimsService turns a claim amount and a hospital selection into a valid
// PENDING claim. The copay preview (domain.ComputeCopay /
// domain.ComputeApprovedAmount) is a pure contract shared with the admin
// decision path, which recomputes the authoritative split at approval.
type ClaimsService struct {
	claimRepo     ports.ClaimRepository
	insuranceRepo ports.InsuranceRepository
	hospitalRepo  ports.HospitalRepository
}

var _ ports.ClaimService = (*ClaimsService)(nil)

func NewClaimsService(
	claimRepo ports.ClaimRepository,
	insuranceRepo ports.InsuranceRepository,
	hospitalRepo ports.HospitalRepository,
) *ClaimsService {
	return &ClaimsService{
		claimRepo:     claimRepo,
		insuranceRepo: insuranceRepo,
		hospitalRepo:  hospitalRepo,
	}
}

// SubmitClaim validates the prospective claim against the employee's live
// remaining coverage and persists it as PENDING. Validation failures never
// reach the repository; there is no automatic retry on write failure.
func (s *ClaimsService) SubmitClaim(ctx context.Context, empID, hospitalID int64, amount float64) (*domain.ClaimRequest, error) {
	insurance, err := s.insuranceRepo.FindByEmployee(ctx, empID)
	if err != nil {
		return nil, err
	}
	if insurance == nil {
		return nil, domain.ErrNoInsurance
	}

	if err := domain.ValidateClaim(hospitalID, amount, insurance.AmountRemaining); err != nil {
		return nil, err
	}

	if _, err := s.hospitalRepo.ByID(ctx, hospitalID); err != nil {
		return nil, err
	}

	now := time.Now()
	claim := domain.ClaimRequest{
		EmpID:         empID,
		RequestAmount: amount,
		Status:        domain.ClaimPending,
		HospitalID:    hospitalID,
		CreatedAt:     &now,
	}

	created, err := s.claimRepo.Create(ctx, claim)
	if err != nil {
		return nil, err
	}

	log.Info().
		Int64("request_id", created.RequestID).
		Int64("emp_id", empID).
		Int64("hospital_id", hospitalID).
		Float64("amount", amount).
		Msg("claim submitted")

	return created, nil
}

// EmployeeClaims returns the employee's claims newest first.
func (s *ClaimsService) EmployeeClaims(ctx context.Context, empID int64) ([]domain.ClaimRequest, error) {
	return s.claimRepo.ByEmployee(ctx, empID)
}
