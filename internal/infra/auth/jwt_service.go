// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"

	"gatekeeper/config"
	"gatekeeper/internal/domain/entity"
	"gatekeeper/internal/domain/service"
)

// resetTokenBytes yields 256 bits of entropy per reset token.
const resetTokenBytes = 32

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
type jwtService struct {
	secret      string        // Secret key for signing identity tokens.
	identityTTL time.Duration // Time-to-live for identity tokens.
	resetTTL    time.Duration // Time-to-live for reset tokens.
}

// NewJWTService is the constructor for jwtService.
// It takes configuration values to create a new token service instance.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.SecretKey.Identity == "" {
		return nil, errors.New("jwt secret must be provided")
	}

	return &jwtService{
		secret:      cfg.SecretKey.Identity,
		identityTTL: cfg.Auth.IdentityTokenTTL,
		resetTTL:    cfg.Auth.ResetTokenTTL,
	}, nil
}

// GenerateIdentityToken creates a signed HS256 token carrying the account's
// id, email and role plus the standard issued-at/expiry claims.
func (s *jwtService) GenerateIdentityToken(account *entity.Account) (string, error) {
	now := time.Now()
	claims := &service.IdentityClaims{
		UserID: account.ID,
		Email:  account.Email,
		Role:   account.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.identityTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.secret))
	if err != nil {
		return "", errors.Wrap(err, "failed to sign identity token")
	}

	return signed, nil
}

// ValidateIdentityToken parses and verifies a token string. Signature
// mismatch, a malformed structure and expiry all surface as a single error;
// callers must not distinguish them to the client beyond "invalid or expired".
func (s *jwtService) ValidateIdentityToken(tokenString string) (*service.IdentityClaims, error) {
	claims := &service.IdentityClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		// Ensure the signing method is what we expect.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return []byte(s.secret), nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse token structure")
	}
	if !token.Valid {
		return nil, errors.New("token is not valid")
	}

	return claims, nil
}

// GenerateResetToken mints an opaque random reset token. It is a bearer
// secret, not a signed structure, and shares nothing with the JWT scheme.
func (s *jwtService) GenerateResetToken() (*service.ResetToken, error) {
	buf := make([]byte, resetTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return nil, errors.Wrap(err, "failed to read random bytes for reset token")
	}

	return &service.ResetToken{
		Token:     hex.EncodeToString(buf),
		ExpiresAt: time.Now().Add(s.resetTTL),
	}, nil
}
