// Package entity contains the core business objects of the project.
package entity

import "time"

// Identity is the public-safe projection of an Account. It is the only user
// shape that crosses the HTTP boundary; PasswordHash and the reset-token pair
// never appear on it. A reset token is a password-setting bearer secret, so
// leaking it through any response would let an identity-token holder take
// over the account permanently.
// The JSON field names follow the SPA's existing contract.
type Identity struct {
	ID              int64           `json:"id"`
	Name            string          `json:"name"`
	Email           string          `json:"email"`
	Role            Role            `json:"role"`
	ThemePreference ThemePreference `json:"theme_preference"`
	IsVerified      bool            `json:"isVerified"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// NewIdentity is the single conversion from a stored Account to its public
// view. There is no verification flow, so IsVerified is always true.
func NewIdentity(account *Account) Identity {
	return Identity{
		ID:              account.ID,
		Name:            account.Name,
		Email:           account.Email,
		Role:            account.Role,
		ThemePreference: account.ThemePreference,
		IsVerified:      true,
		CreatedAt:       account.CreatedAt,
		UpdatedAt:       account.UpdatedAt,
	}
}
