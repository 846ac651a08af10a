// Package unit contains unit tests for the API services. Each test wires
// a service against the in-memory mocks so business rules can be checked
// without Postgres, Redis or RabbitMQ.
package unit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mediease/insurance-portal-service/internal/core/domain"
	"github.com/mediease/insurance-portal-service/internal/core/services"
	"github.com/mediease/insurance-portal-service/test/mocks"
)

func newClaimsFixture() (*services.ClaimsService, *mocks.MockClaimRepository, *mocks.MockInsuranceRepository) {
	insuranceRepo := mocks.NewMockInsuranceRepository()
	hospitalRepo := mocks.NewMockHospitalRepository(mocks.CreateTestHospital(1))
	claimRepo := mocks.NewMockClaimRepository().
		WithHospitals(mocks.CreateTestHospital(1)).
		WithInsurance(insuranceRepo)

	return services.NewClaimsService(claimRepo, insuranceRepo, hospitalRepo), claimRepo, insuranceRepo
}

func TestSubmitClaim_CreatesPendingClaim(t *testing.T) {
	svc, claimRepo, insuranceRepo := newClaimsFixture()
	insuranceRepo.SetPolicy(mocks.CreateTestInsurance(7, 50000))

	claim, err := svc.SubmitClaim(context.Background(), 7, 1, 12000)
	require.NoError(t, err)

	assert.Equal(t, domain.ClaimPending, claim.Status)
	assert.Equal(t, int64(7), claim.EmpID)
	assert.Equal(t, 12000.0, claim.RequestAmount)
	assert.NotNil(t, claim.CreatedAt, "submission must be timestamped")
	assert.Nil(t, claim.CopayAmount, "copay split is populated only at decision time")
	assert.Nil(t, claim.ApprovedAmount)
	assert.Len(t, claimRepo.CreateCalls, 1)
}

func TestSubmitClaim_ValidationOrder(t *testing.T) {
	tests := []struct {
		name       string
		hospitalID int64
		amount     float64
		remaining  float64
		wantErr    error
	}{
		{"no_hospital_selected", 0, 5000, 50000, domain.ErrNoHospitalSelected},
		{"no_hospital_beats_bad_amount", 0, -1, 50000, domain.ErrNoHospitalSelected},
		{"zero_amount", 1, 0, 50000, domain.ErrInvalidAmount},
		{"negative_amount", 1, -200, 50000, domain.ErrInvalidAmount},
		{"exceeds_coverage", 1, 60000, 50000, domain.ErrExceedsCoverage},
		{"amount_equal_to_coverage_passes", 1, 50000, 50000, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, insuranceRepo := newClaimsFixture()
			insuranceRepo.SetPolicy(mocks.CreateTestInsurance(7, tt.remaining))

			_, err := svc.SubmitClaim(context.Background(), 7, tt.hospitalID, tt.amount)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestSubmitClaim_NoPolicy(t *testing.T) {
	svc, claimRepo, _ := newClaimsFixture()

	_, err := svc.SubmitClaim(context.Background(), 99, 1, 5000)
	assert.ErrorIs(t, err, domain.ErrNoInsurance)
	assert.Empty(t, claimRepo.CreateCalls, "invalid claims must never reach the repository")
}

func TestSubmitClaim_UnknownHospital(t *testing.T) {
	svc, _, insuranceRepo := newClaimsFixture()
	insuranceRepo.SetPolicy(mocks.CreateTestInsurance(7, 50000))

	_, err := svc.SubmitClaim(context.Background(), 7, 42, 5000)
	assert.ErrorIs(t, err, domain.ErrHospitalNotFound)
}

func TestComputeCopay(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		rate   float64
		want   float64
	}{
		{"twenty_percent", 10000, 20, 2000},
		{"zero_rate", 10000, 0, 0},
		{"full_rate", 10000, 100, 10000},
		{"zero_amount", 0, 20, 0},
		{"negative_amount_treated_as_unset", -500, 20, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := domain.ComputeCopay(tt.amount, tt.rate)
			assert.Equal(t, tt.want, got)
			if tt.amount > 0 {
				assert.Equal(t, tt.amount-got, domain.ComputeApprovedAmount(tt.amount, got))
			}
		})
	}
}

func TestEmployeeClaims_ReturnsOnlyOwnClaims(t *testing.T) {
	svc, claimRepo, insuranceRepo := newClaimsFixture()
	insuranceRepo.SetPolicy(mocks.CreateTestInsurance(7, 50000))

	claimRepo.AddClaim(mocks.CreateTestClaim(1, 7, 1000, nil))
	claimRepo.AddClaim(mocks.CreateTestClaim(2, 8, 2000, nil))
	claimRepo.AddClaim(mocks.CreateTestClaim(3, 7, 3000, nil))

	claims, err := svc.EmployeeClaims(context.Background(), 7)
	require.NoError(t, err)
	assert.Len(t, claims, 2)
	for _, c := range claims {
		assert.Equal(t, int64(7), c.EmpID)
	}
}
