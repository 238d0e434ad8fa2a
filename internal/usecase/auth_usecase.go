// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"gatekeeper/internal/domain/entity"
)

// --- Input DTOs ---

// SignupInput defines the data required to register a new account.
type SignupInput struct {
	Name     string
	Email    string
	Password string
}

// LoginInput defines the data required to log in.
type LoginInput struct {
	Email    string
	Password string
}

// ConfirmPasswordResetInput carries a reset token and the replacement password.
type ConfirmPasswordResetInput struct {
	Token       string
	NewPassword string
}

// --- Output DTOs ---

// AuthOutput returns the public identity view plus a freshly issued identity token.
type AuthOutput struct {
	User  entity.Identity `json:"user"`
	Token string          `json:"token"`
}

// MessageOutput carries a plain acknowledgment message.
type MessageOutput struct {
	Message string `json:"message"`
}

// AuthUsecase defines the interface for authentication and user-management
// business operations. This is the contract the HTTP handlers depend on.
type AuthUsecase interface {
	// Signup registers a new account with role "user" and issues an identity token.
	Signup(ctx context.Context, input SignupInput) (*AuthOutput, error)

	// Login verifies credentials and issues an identity token. Unknown email
	// and wrong password are indistinguishable to the caller.
	Login(ctx context.Context, input LoginInput) (*AuthOutput, error)

	// RequestPasswordReset acknowledges with the same message whether or not
	// the email exists. For existing accounts it persists a reset token.
	RequestPasswordReset(ctx context.Context, email string) (*MessageOutput, error)

	// ConfirmPasswordReset consumes a reset token and replaces the password.
	ConfirmPasswordReset(ctx context.Context, input ConfirmPasswordResetInput) (*MessageOutput, error)

	// GetUser returns the public identity view of a single account.
	GetUser(ctx context.Context, userID int64) (*entity.Identity, error)

	// ListUsers returns all accounts as identity views, newest first.
	ListUsers(ctx context.Context) ([]entity.Identity, error)

	// UpdateRole changes an account's role, leaving every other field untouched.
	UpdateRole(ctx context.Context, userID int64, role entity.Role) (*entity.Identity, error)

	// DeleteUser permanently removes an account.
	DeleteUser(ctx context.Context, userID int64) (*MessageOutput, error)
}
