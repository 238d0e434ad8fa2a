package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"gatekeeper/internal/domain/entity"
)

// IdentityClaims are the custom claims embedded in an identity token.
type IdentityClaims struct {
	UserID int64       `json:"userId"`
	Email  string      `json:"email"`
	Role   entity.Role `json:"role"`
	jwt.RegisteredClaims
}

// ResetToken is an opaque, random bearer secret for the password-reset flow.
// It is unrelated to the identity-token signing scheme.
type ResetToken struct {
	Token     string
	ExpiresAt time.Time
}

// TokenService defines the interface for issuing and verifying identity
// tokens and for minting reset tokens. This abstracts the details of token
// creation from the use cases.
type TokenService interface {
	// GenerateIdentityToken creates a signed, time-limited token encoding the
	// account's id, email and role.
	GenerateIdentityToken(account *entity.Account) (string, error)

	// ValidateIdentityToken checks the signature, structure and expiry of a
	// token string. A token is valid for its entire lifetime once issued;
	// there is no revocation list.
	ValidateIdentityToken(tokenString string) (*IdentityClaims, error)

	// GenerateResetToken mints a cryptographically random reset token with
	// its expiry. The caller is responsible for persisting it.
	GenerateResetToken() (*ResetToken, error)
}
