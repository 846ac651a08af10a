package domain

// Session is the authenticated-user record built once at login and
// invalidated as a unit at logout. It replaces loose per-key flags: the
// role is the enumerated type, parsed exactly once at deserialization.
type Session struct {
	Token       string `json:"-"`
	EmployeeID  int64  `json:"employeeId"`
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
	Role        Role   `json:"role"`
}

func (s *Session) IsAdmin() bool {
	return s.Role == RoleAdmin
}
