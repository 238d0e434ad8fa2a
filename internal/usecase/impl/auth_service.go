// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "gatekeeper/internal/delivery/context"
	"gatekeeper/internal/domain/entity"
	domainerrors "gatekeeper/internal/domain/errors"
	"gatekeeper/internal/domain/repository"
	"gatekeeper/internal/domain/service"
	"gatekeeper/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// resetAckMessage is returned by RequestPasswordReset whether or not the
// email exists, so the response cannot be used to probe for accounts.
const resetAckMessage = "If the email exists, a reset link has been sent"

// authService implements the AuthUsecase interface.
type authService struct {
	accountRepo  repository.AccountRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	logger       *slog.Logger
}

// AuthServiceParams holds dependencies for authService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	AccountRepo  repository.AccountRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Logger       *slog.Logger
}

// NewAuthService is the constructor for authService. It receives all dependencies as interfaces.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	return &authService{
		accountRepo:  params.AccountRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Signup registers a new account and issues an identity token for it.
func (srv *authService) Signup(ctx context.Context, input usecase.SignupInput) (*usecase.AuthOutput, error) {
	srv.log(ctx).Info("Starting signup", slog.String("email", input.Email))

	_, err := srv.accountRepo.FindByEmail(ctx, input.Email)
	if err == nil {
		srv.log(ctx).Warn("Signup rejected, email already registered", slog.String("email", input.Email))

		return nil, errors.Wrap(domainerrors.ErrEmailAlreadyRegistered, "signup failed")
	}
	if !errors.Is(err, repository.ErrAccountNotFound) {
		return nil, errors.Wrap(err, "failed to check existing account during signup")
	}

	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during signup", slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrPasswordHashFailed, "failed to hash password during signup")
	}

	newAccount := &entity.Account{
		Name:            input.Name,
		Email:           input.Email,
		PasswordHash:    hashedPassword,
		Role:            entity.RoleUser,
		ThemePreference: entity.ThemeSystem,
	}

	if err := srv.accountRepo.Create(ctx, newAccount); err != nil {
		// A concurrent signup with the same email surfaces here as a
		// unique-constraint conflict; pass the domain error through.
		return nil, errors.Wrap(err, "failed to create account during signup")
	}

	token, err := srv.tokenService.GenerateIdentityToken(newAccount)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate identity token during signup")
	}

	srv.log(ctx).Debug("Signup completed", slog.Int64("userID", newAccount.ID))

	return &usecase.AuthOutput{
		User:  entity.NewIdentity(newAccount),
		Token: token,
	}, nil
}

// Login verifies credentials and issues an identity token. A missing account
// and a wrong password return the same error so callers cannot enumerate
// registered emails.
func (srv *authService) Login(ctx context.Context, input usecase.LoginInput) (*usecase.AuthOutput, error) {
	srv.log(ctx).Debug("Starting login", slog.String("email", input.Email))

	account, err := srv.accountRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			srv.log(ctx).Warn("Login failed, unknown email", slog.String("email", input.Email))

			return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
		}

		return nil, errors.Wrap(err, "failed to load account during login")
	}

	if !srv.hasher.Check(input.Password, account.PasswordHash) {
		srv.log(ctx).Warn("Login failed, password mismatch", slog.String("email", input.Email))

		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
	}

	token, err := srv.tokenService.GenerateIdentityToken(account)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate identity token during login")
	}

	srv.log(ctx).Debug("Login successful", slog.Int64("userID", account.ID))

	return &usecase.AuthOutput{
		User:  entity.NewIdentity(account),
		Token: token,
	}, nil
}

// RequestPasswordReset issues a reset token for existing accounts and always
// acknowledges with the same message. The token is logged as a stand-in for
// email delivery.
func (srv *authService) RequestPasswordReset(ctx context.Context, email string) (*usecase.MessageOutput, error) {
	account, err := srv.accountRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			// Deliberate non-disclosure of account existence.
			srv.log(ctx).Debug("Password reset requested for unknown email")

			return &usecase.MessageOutput{Message: resetAckMessage}, nil
		}

		return nil, errors.Wrap(err, "failed to load account for password reset")
	}

	resetToken, err := srv.tokenService.GenerateResetToken()
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate reset token")
	}

	account.ResetToken = &resetToken.Token
	account.ResetTokenExpires = &resetToken.ExpiresAt

	if err := srv.accountRepo.Update(ctx, account); err != nil {
		return nil, errors.Wrap(err, "failed to persist reset token")
	}

	srv.log(ctx).Info("Password reset token issued",
		slog.String("email", email),
		slog.String("resetToken", resetToken.Token),
	)

	return &usecase.MessageOutput{Message: resetAckMessage}, nil
}

// ConfirmPasswordReset consumes a reset token: it replaces the password and
// clears the token so it cannot be used twice.
func (srv *authService) ConfirmPasswordReset(ctx context.Context, input usecase.ConfirmPasswordResetInput) (*usecase.MessageOutput, error) {
	account, err := srv.accountRepo.FindByResetToken(ctx, input.Token)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, errors.Wrap(domainerrors.ErrInvalidResetToken, "reset token not found")
		}

		return nil, errors.Wrap(err, "failed to load account by reset token")
	}

	if account.ResetTokenExpires == nil || account.ResetTokenExpires.Before(time.Now()) {
		return nil, errors.Wrap(domainerrors.ErrInvalidResetToken, "reset token expired")
	}

	hashedPassword, err := srv.hasher.Hash(input.NewPassword)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during reset", slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrPasswordHashFailed, "failed to hash new password")
	}

	account.PasswordHash = hashedPassword
	account.ResetToken = nil
	account.ResetTokenExpires = nil

	if err := srv.accountRepo.Update(ctx, account); err != nil {
		return nil, errors.Wrap(err, "failed to persist new password")
	}

	srv.log(ctx).Info("Password reset completed", slog.Int64("userID", account.ID))

	return &usecase.MessageOutput{Message: "Password has been reset successfully"}, nil
}

// GetUser returns the public identity view of a single account.
func (srv *authService) GetUser(ctx context.Context, userID int64) (*entity.Identity, error) {
	account, err := srv.accountRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, errors.Wrap(domainerrors.ErrUserNotFound, "account lookup failed")
		}

		return nil, errors.Wrap(err, "failed to find account by id")
	}

	identity := entity.NewIdentity(account)

	return &identity, nil
}

// ListUsers returns all accounts as identity views, newest first.
func (srv *authService) ListUsers(ctx context.Context) ([]entity.Identity, error) {
	accounts, err := srv.accountRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list accounts")
	}

	identities := make([]entity.Identity, 0, len(accounts))
	for _, account := range accounts {
		identities = append(identities, entity.NewIdentity(account))
	}

	return identities, nil
}

// UpdateRole changes an account's role and returns the updated identity view.
// Every other field is left untouched.
func (srv *authService) UpdateRole(ctx context.Context, userID int64, role entity.Role) (*entity.Identity, error) {
	account, err := srv.accountRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, errors.Wrap(domainerrors.ErrUserNotFound, "role update failed")
		}

		return nil, errors.Wrap(err, "failed to load account for role update")
	}

	account.Role = role

	if err := srv.accountRepo.Update(ctx, account); err != nil {
		return nil, errors.Wrap(err, "failed to persist role update")
	}

	srv.log(ctx).Info("Role updated", slog.Int64("userID", userID), slog.String("role", role.String()))

	identity := entity.NewIdentity(account)

	return &identity, nil
}

// DeleteUser permanently removes an account.
func (srv *authService) DeleteUser(ctx context.Context, userID int64) (*usecase.MessageOutput, error) {
	if err := srv.accountRepo.Delete(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, errors.Wrap(domainerrors.ErrUserNotFound, "delete failed")
		}

		return nil, errors.Wrap(err, "failed to delete account")
	}

	srv.log(ctx).Info("Account deleted", slog.Int64("userID", userID))

	return &usecase.MessageOutput{Message: "User deleted successfully"}, nil
}
