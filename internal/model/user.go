package model

import "strings"

// Roles accepted by the operator API. ADMIN can manage users; OPERATOR runs
// the day-to-day check-in/check-out flow.
const (
	RoleAdmin    = "ADMIN"
	RoleOperator = "OPERATOR"
)

// User is an API credential record. The password field of the stored record
// holds a bcrypt hash, never the plain password.
//
// Fields:
//  Username     – unique login name.
//  PasswordHash – bcrypt hash of the password.
//  Role         – ADMIN or OPERATOR.
type User struct {
	Username     string
	PasswordHash string
	Role         string
}

// IsAdmin reports whether the user carries the admin role.
func (u *User) IsAdmin() bool {
	return strings.EqualFold(u.Role, RoleAdmin)
}
