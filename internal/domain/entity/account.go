// Package entity contains the core business objects of the project.
package entity

import "time"

// Account is the root entity for authentication and authorization. It holds
// the credential material and therefore never leaves the service as-is;
// outward-facing code converts it to an Identity first.
type Account struct {
	ID                int64
	Name              string
	Email             string
	PasswordHash      string
	Role              Role
	ThemePreference   ThemePreference
	ResetToken        *string
	ResetTokenExpires *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
