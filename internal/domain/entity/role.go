// Package entity contains the core business objects of the project.
package entity

import "slices"

// Role represents the authorization scope of an account.
type Role string

const (
	// RoleUser indicates a regular user.
	RoleUser Role = "user"
	// RoleAdmin indicates an administrator with access to user management.
	RoleAdmin Role = "admin"
)

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleAdmin:
		return true
	default:
		return false
	}
}

// Roles is a slice of Role for convenience.
type Roles []Role

// Contains reports whether the set allows the given role. This is the single
// authorization predicate in the system; the authorizer middleware delegates
// to it.
func (rs Roles) Contains(role Role) bool {
	return slices.Contains(rs, role)
}
