// Package model contains the domain types shared across FinMate packages.
package model

import "strings"

// Role describes the kind of earner a user is. It selects both the budget
// split and the success metric applied to them.
type Role string

const (
	// RoleUnset is the zero value for users who have not picked a role.
	RoleUnset Role = ""
	// RoleStudent has low, unstable income.
	RoleStudent Role = "Student"
	// RoleProfessional has a standard, stable income.
	RoleProfessional Role = "Professional"
	// RoleHousewife runs a household-heavy budget.
	RoleHousewife Role = "Housewife"
)

// Roles lists every selectable role in display order.
var Roles = []Role{RoleStudent, RoleProfessional, RoleHousewife}

// ParseRole matches s case-insensitively against the known roles.
// Unknown values return RoleUnset and false.
func ParseRole(s string) (Role, bool) {
	s = strings.TrimSpace(s)
	for _, r := range Roles {
		if strings.EqualFold(s, string(r)) {
			return r, true
		}
	}
	return RoleUnset, false
}

// Valid reports whether r is one of the selectable roles.
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleProfessional, RoleHousewife:
		return true
	default:
		return false
	}
}
