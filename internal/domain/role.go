package domain

import "strings"

// Role is the canonical actor role vocabulary. Identity providers may send
// role values with or without a "ROLE_" prefix; NormalizeRole folds both
// spellings onto the canonical set exactly once, at the boundary.
type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleStaff    Role = "STAFF"
	RoleOperator Role = "OPERATOR"
	RoleDriver   Role = "DRIVER"
	RoleManager  Role = "MANAGER"
	RoleAdmin    Role = "ADMIN"
)

func NormalizeRole(raw string) Role {
	r := strings.ToUpper(strings.TrimSpace(raw))
	r = strings.TrimPrefix(r, "ROLE_")
	return Role(r)
}

func (r Role) IsValid() bool {
	switch r {
	case RoleCustomer, RoleStaff, RoleOperator, RoleDriver, RoleManager, RoleAdmin:
		return true
	}
	return false
}
