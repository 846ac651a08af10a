package domain

// InsurancePackage is a selectable coverage tier. Amount is the total
// coverage the package grants for a policy lifetime.
type InsurancePackage struct {
	ID          int64   `json:"insuranceId"`
	PackageName string  `json:"packageName"`
	Amount      float64 `json:"amount"`
}

// Insurance is an employee's single active policy. AmountRemaining starts
// at the package amount and only ever decreases, as claims are approved.
type Insurance struct {
	ID              int64   `json:"insuranceId"`
	EmpID           int64   `json:"empId"`
	PackageName     string  `json:"packageName"`
	AmountRemaining float64 `json:"amountRemaining"`
}

type Dependant struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Age      int    `json:"age"`
	Gender   string `json:"gender"`
	Relation string `json:"relation"`
	// DependantFor is the owning employee's id.
	DependantFor int64 `json:"dependantFor"`
}
