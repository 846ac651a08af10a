package domain

import "time"

type Role string

const (
	RoleEmployee Role = "EMPLOYEE"
	RoleAdmin    Role = "ADMIN"
)

// ParseRole maps a stored role string onto the enumerated type.
// Anything unrecognized degrades to EMPLOYEE rather than failing the
// request: the role is only ever widened by an explicit admin grant.
func ParseRole(s string) Role {
	if s == string(RoleAdmin) {
		return RoleAdmin
	}
	return RoleEmployee
}

type Employee struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	Password  string    `json:"-"`
	CreatedAt time.Time `json:"createdAt"`
}

func (e *Employee) IsAdmin() bool {
	return e.Role == RoleAdmin
}
