package domain

import "errors"

// Claim validation errors, surfaced before any write is issued.
var (
	ErrNoHospitalSelected = errors.New("no hospital selected")
	ErrInvalidAmount      = errors.New("claim amount must be positive")
	ErrExceedsCoverage    = errors.New("claim amount exceeds remaining coverage")
	ErrNoInsurance        = errors.New("employee has no active insurance")
)

// Decision and lookup errors.
var (
	ErrClaimNotFound  = errors.New("claim not found")
	ErrAlreadyDecided = errors.New("claim is no longer pending")
)

// ValidationError is a local, pre-flight failure: it is surfaced to the
// caller immediately and never results in a write.
type ValidationError string

func (e ValidationError) Error() string { return string(e) }

var (
	ErrEmployeeNotFound   = errors.New("employee not found")
	ErrEmailTaken         = errors.New("account already exists with this email")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrHospitalNotFound   = errors.New("hospital not found")
	ErrDependantNotFound  = errors.New("dependant not found")
	ErrPackageNotFound    = errors.New("insurance package not found")
	ErrPolicyExists       = errors.New("employee already has an active policy")
)
