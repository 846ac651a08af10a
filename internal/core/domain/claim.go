package domain

import "time"

type ClaimStatus string

const (
	ClaimPending  ClaimStatus = "PENDING"
	ClaimApproved ClaimStatus = "APPROVED"
	ClaimRejected ClaimStatus = "REJECTED"

	// StatusAll is a filter value, never a stored status.
	StatusAll ClaimStatus = "ALL"
)

// ClaimRequest is a reimbursement request raised by an employee against a
// network hospital visit. ApprovedAmount and CopayAmount are populated only
// once an administrator takes a terminal decision; CreatedAt is server-set
// at submission. A nil CreatedAt can occur on legacy rows and participates
// in sorting via the request-id fallback.
type ClaimRequest struct {
	RequestID      int64       `json:"requestId"`
	EmpID          int64       `json:"empId"`
	RequestAmount  float64     `json:"requestAmount"`
	ApprovedAmount *float64    `json:"approvedAmount,omitempty"`
	CopayAmount    *float64    `json:"copayAmount,omitempty"`
	Status         ClaimStatus `json:"status"`
	HospitalID     int64       `json:"hospitalId,omitempty"`
	CreatedAt      *time.Time  `json:"createdAt,omitempty"`
	ApprovedAt     *time.Time  `json:"approvedAt,omitempty"`
}

// Decided reports whether the claim has reached a terminal state.
// PENDING -> APPROVED and PENDING -> REJECTED are the only legal
// transitions; both are irreversible.
func (c *ClaimRequest) Decided() bool {
	return c.Status == ClaimApproved || c.Status == ClaimRejected
}

type Decision string

const (
	DecisionApprove Decision = "APPROVE"
	DecisionReject  Decision = "REJECT"
)

// ComputeCopay returns the employee-borne share of a claim amount at the
// given hospital copay rate. Non-positive amounts are treated as
// not-yet-entered and yield 0, not an error.
func ComputeCopay(requestAmount, copayPercentage float64) float64 {
	if requestAmount <= 0 {
		return 0
	}
	return requestAmount * copayPercentage / 100
}

// ComputeApprovedAmount returns the insurer-paid share after the copay
// deduction. Non-negative by construction for copay rates in [0, 100].
func ComputeApprovedAmount(requestAmount, copayAmount float64) float64 {
	return requestAmount - copayAmount
}

// ValidateClaim runs the pre-flight checks on a prospective claim, in
// order, reporting only the first failure: hospital selected, amount
// positive, amount within remaining coverage.
func ValidateClaim(hospitalID int64, requestAmount, remainingCoverage float64) error {
	if hospitalID <= 0 {
		return ErrNoHospitalSelected
	}
	if requestAmount <= 0 {
		return ErrInvalidAmount
	}
	if requestAmount > remainingCoverage {
		return ErrExceedsCoverage
	}
	return nil
}
