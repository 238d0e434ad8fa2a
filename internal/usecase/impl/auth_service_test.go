package impl

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"gatekeeper/internal/domain/entity"
	domainerrors "gatekeeper/internal/domain/errors"
	"gatekeeper/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthService_Signup_Success(t *testing.T) {
	repo := newFakeAccountRepo()
	service := newTestAuthService(repo, &fakeHasher{}, &fakeTokenService{})

	ctx := context.Background()
	output, err := service.Signup(ctx, usecase.SignupInput{
		Name:     "Alice Smith",
		Email:    "alice@example.com",
		Password: "Str0ngPass!",
	})
	require.NoError(t, err)
	require.NotNil(t, output)

	assert.Equal(t, "identity-token:alice@example.com", output.Token)
	assert.Equal(t, "Alice Smith", output.User.Name)
	assert.Equal(t, "alice@example.com", output.User.Email)
	assert.Equal(t, entity.RoleUser, output.User.Role)
	assert.Equal(t, entity.ThemeSystem, output.User.ThemePreference)
	assert.True(t, output.User.IsVerified)
	assert.NotZero(t, output.User.ID)

	stored, err := repo.FindByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, "hashed:Str0ngPass!", stored.PasswordHash)
}

func TestAuthService_Signup_DuplicateEmail(t *testing.T) {
	repo := newFakeAccountRepo()
	service := newTestAuthService(repo, &fakeHasher{}, &fakeTokenService{})

	ctx := context.Background()
	_, err := service.Signup(ctx, usecase.SignupInput{
		Name:     "Alice Smith",
		Email:    "alice@example.com",
		Password: "Str0ngPass!",
	})
	require.NoError(t, err)

	output, err := service.Signup(ctx, usecase.SignupInput{
		Name:     "Other Alice",
		Email:    "alice@example.com",
		Password: "An0therPass!",
	})
	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrEmailAlreadyRegistered)
}

func TestAuthService_Signup_HashFailure(t *testing.T) {
	repo := newFakeAccountRepo()
	hasher := &fakeHasher{hashErr: errors.New("bcrypt exploded")}
	service := newTestAuthService(repo, hasher, &fakeTokenService{})

	output, err := service.Signup(context.Background(), usecase.SignupInput{
		Name:     "Alice Smith",
		Email:    "alice@example.com",
		Password: "Str0ngPass!",
	})
	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrPasswordHashFailed)
	assert.Empty(t, repo.accounts)
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newFakeAccountRepo()
	service := newTestAuthService(repo, &fakeHasher{}, &fakeTokenService{})

	ctx := context.Background()
	_, err := service.Signup(ctx, usecase.SignupInput{
		Name:     "Alice Smith",
		Email:    "alice@example.com",
		Password: "Str0ngPass!",
	})
	require.NoError(t, err)

	output, err := service.Login(ctx, usecase.LoginInput{
		Email:    "alice@example.com",
		Password: "Str0ngPass!",
	})
	require.NoError(t, err)
	assert.Equal(t, "identity-token:alice@example.com", output.Token)
	assert.Equal(t, "alice@example.com", output.User.Email)
}

func TestAuthService_Login_UnknownEmailAndWrongPasswordLookAlike(t *testing.T) {
	repo := newFakeAccountRepo()
	service := newTestAuthService(repo, &fakeHasher{}, &fakeTokenService{})

	ctx := context.Background()
	_, err := service.Signup(ctx, usecase.SignupInput{
		Name:     "Alice Smith",
		Email:    "alice@example.com",
		Password: "Str0ngPass!",
	})
	require.NoError(t, err)

	_, unknownErr := service.Login(ctx, usecase.LoginInput{
		Email:    "nobody@example.com",
		Password: "Str0ngPass!",
	})
	_, wrongPassErr := service.Login(ctx, usecase.LoginInput{
		Email:    "alice@example.com",
		Password: "WrongPass1!",
	})

	assert.ErrorIs(t, unknownErr, domainerrors.ErrInvalidCredentials)
	assert.ErrorIs(t, wrongPassErr, domainerrors.ErrInvalidCredentials)
}

func TestAuthService_RequestPasswordReset_UnknownEmail(t *testing.T) {
	repo := newFakeAccountRepo()
	service := newTestAuthService(repo, &fakeHasher{}, &fakeTokenService{})

	output, err := service.RequestPasswordReset(context.Background(), "nobody@example.com")
	require.NoError(t, err)
	assert.Equal(t, "If the email exists, a reset link has been sent", output.Message)
}

func TestAuthService_RequestPasswordReset_PersistsToken(t *testing.T) {
	repo := newFakeAccountRepo()
	expiry := time.Now().Add(time.Hour).Truncate(time.Second)
	tokens := &fakeTokenService{resetToken: "fresh-token", resetExpiry: expiry}
	service := newTestAuthService(repo, &fakeHasher{}, tokens)

	ctx := context.Background()
	_, err := service.Signup(ctx, usecase.SignupInput{
		Name:     "Alice Smith",
		Email:    "alice@example.com",
		Password: "Str0ngPass!",
	})
	require.NoError(t, err)

	output, err := service.RequestPasswordReset(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, "If the email exists, a reset link has been sent", output.Message)

	stored, err := repo.FindByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	require.NotNil(t, stored.ResetToken)
	require.NotNil(t, stored.ResetTokenExpires)
	assert.Equal(t, "fresh-token", *stored.ResetToken)
	assert.Equal(t, expiry, *stored.ResetTokenExpires)
}

func TestAuthService_PendingResetTokenNeverSurfacesInIdentities(t *testing.T) {
	repo := newFakeAccountRepo()
	tokens := &fakeTokenService{resetToken: "live-secret"}
	service := newTestAuthService(repo, &fakeHasher{}, tokens)

	ctx := context.Background()
	_, err := service.Signup(ctx, usecase.SignupInput{
		Name:     "Alice Smith",
		Email:    "alice@example.com",
		Password: "Str0ngPass!",
	})
	require.NoError(t, err)
	_, err = service.RequestPasswordReset(ctx, "alice@example.com")
	require.NoError(t, err)

	// The token is persisted and consumable, so no identity view may carry it.
	stored, err := repo.FindByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	require.NotNil(t, stored.ResetToken)

	login, err := service.Login(ctx, usecase.LoginInput{
		Email:    "alice@example.com",
		Password: "Str0ngPass!",
	})
	require.NoError(t, err)
	loginJSON, err := json.Marshal(login)
	require.NoError(t, err)
	assert.NotContains(t, string(loginJSON), "live-secret")

	identities, err := service.ListUsers(ctx)
	require.NoError(t, err)
	listJSON, err := json.Marshal(identities)
	require.NoError(t, err)
	assert.NotContains(t, string(listJSON), "live-secret")
	assert.NotContains(t, string(listJSON), "resetToken")

	me, err := service.GetUser(ctx, login.User.ID)
	require.NoError(t, err)
	meJSON, err := json.Marshal(me)
	require.NoError(t, err)
	assert.NotContains(t, string(meJSON), "live-secret")
}

func TestAuthService_ConfirmPasswordReset_Success(t *testing.T) {
	repo := newFakeAccountRepo()
	tokens := &fakeTokenService{resetToken: "fresh-token"}
	service := newTestAuthService(repo, &fakeHasher{}, tokens)

	ctx := context.Background()
	_, err := service.Signup(ctx, usecase.SignupInput{
		Name:     "Alice Smith",
		Email:    "alice@example.com",
		Password: "Str0ngPass!",
	})
	require.NoError(t, err)
	_, err = service.RequestPasswordReset(ctx, "alice@example.com")
	require.NoError(t, err)

	output, err := service.ConfirmPasswordReset(ctx, usecase.ConfirmPasswordResetInput{
		Token:       "fresh-token",
		NewPassword: "N3wPassword!",
	})
	require.NoError(t, err)
	assert.Equal(t, "Password has been reset successfully", output.Message)

	stored, err := repo.FindByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, "hashed:N3wPassword!", stored.PasswordHash)
	assert.Nil(t, stored.ResetToken)
	assert.Nil(t, stored.ResetTokenExpires)

	// Old password no longer works, new one does.
	_, err = service.Login(ctx, usecase.LoginInput{Email: "alice@example.com", Password: "Str0ngPass!"})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
	_, err = service.Login(ctx, usecase.LoginInput{Email: "alice@example.com", Password: "N3wPassword!"})
	assert.NoError(t, err)
}

func TestAuthService_ConfirmPasswordReset_TokenSingleUse(t *testing.T) {
	repo := newFakeAccountRepo()
	tokens := &fakeTokenService{resetToken: "fresh-token"}
	service := newTestAuthService(repo, &fakeHasher{}, tokens)

	ctx := context.Background()
	_, err := service.Signup(ctx, usecase.SignupInput{
		Name:     "Alice Smith",
		Email:    "alice@example.com",
		Password: "Str0ngPass!",
	})
	require.NoError(t, err)
	_, err = service.RequestPasswordReset(ctx, "alice@example.com")
	require.NoError(t, err)

	_, err = service.ConfirmPasswordReset(ctx, usecase.ConfirmPasswordResetInput{
		Token:       "fresh-token",
		NewPassword: "N3wPassword!",
	})
	require.NoError(t, err)

	_, err = service.ConfirmPasswordReset(ctx, usecase.ConfirmPasswordResetInput{
		Token:       "fresh-token",
		NewPassword: "Y3tAnother!",
	})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidResetToken)
}

func TestAuthService_ConfirmPasswordReset_ExpiredToken(t *testing.T) {
	repo := newFakeAccountRepo()
	tokens := &fakeTokenService{
		resetToken:  "stale-token",
		resetExpiry: time.Now().Add(-time.Minute),
	}
	service := newTestAuthService(repo, &fakeHasher{}, tokens)

	ctx := context.Background()
	_, err := service.Signup(ctx, usecase.SignupInput{
		Name:     "Alice Smith",
		Email:    "alice@example.com",
		Password: "Str0ngPass!",
	})
	require.NoError(t, err)
	_, err = service.RequestPasswordReset(ctx, "alice@example.com")
	require.NoError(t, err)

	output, err := service.ConfirmPasswordReset(ctx, usecase.ConfirmPasswordResetInput{
		Token:       "stale-token",
		NewPassword: "N3wPassword!",
	})
	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidResetToken)
}

func TestAuthService_GetUser_NotFound(t *testing.T) {
	repo := newFakeAccountRepo()
	service := newTestAuthService(repo, &fakeHasher{}, &fakeTokenService{})

	identity, err := service.GetUser(context.Background(), 42)
	assert.Nil(t, identity)
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}

func TestAuthService_ListUsers_NewestFirst(t *testing.T) {
	repo := newFakeAccountRepo()
	service := newTestAuthService(repo, &fakeHasher{}, &fakeTokenService{})

	ctx := context.Background()
	for _, email := range []string{"first@example.com", "second@example.com", "third@example.com"} {
		_, err := service.Signup(ctx, usecase.SignupInput{
			Name:     "Some User",
			Email:    email,
			Password: "Str0ngPass!",
		})
		require.NoError(t, err)
		time.Sleep(time.Millisecond)
	}

	identities, err := service.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, identities, 3)
	assert.Equal(t, "third@example.com", identities[0].Email)
	assert.Equal(t, "first@example.com", identities[2].Email)
}

func TestAuthService_UpdateRole(t *testing.T) {
	repo := newFakeAccountRepo()
	service := newTestAuthService(repo, &fakeHasher{}, &fakeTokenService{})

	ctx := context.Background()
	signup, err := service.Signup(ctx, usecase.SignupInput{
		Name:     "Alice Smith",
		Email:    "alice@example.com",
		Password: "Str0ngPass!",
	})
	require.NoError(t, err)

	before, err := repo.FindByID(ctx, signup.User.ID)
	require.NoError(t, err)

	identity, err := service.UpdateRole(ctx, signup.User.ID, entity.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, identity.Role)

	// Only the role changes.
	stored, err := repo.FindByID(ctx, signup.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice Smith", stored.Name)
	assert.Equal(t, "alice@example.com", stored.Email)
	assert.Equal(t, "hashed:Str0ngPass!", stored.PasswordHash)
	assert.Equal(t, entity.ThemeSystem, stored.ThemePreference)
	assert.Equal(t, before.CreatedAt, stored.CreatedAt)
}

func TestAuthService_UpdateRole_NotFound(t *testing.T) {
	repo := newFakeAccountRepo()
	service := newTestAuthService(repo, &fakeHasher{}, &fakeTokenService{})

	identity, err := service.UpdateRole(context.Background(), 42, entity.RoleAdmin)
	assert.Nil(t, identity)
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}

func TestAuthService_DeleteUser(t *testing.T) {
	repo := newFakeAccountRepo()
	service := newTestAuthService(repo, &fakeHasher{}, &fakeTokenService{})

	ctx := context.Background()
	signup, err := service.Signup(ctx, usecase.SignupInput{
		Name:     "Alice Smith",
		Email:    "alice@example.com",
		Password: "Str0ngPass!",
	})
	require.NoError(t, err)

	output, err := service.DeleteUser(ctx, signup.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "User deleted successfully", output.Message)

	_, err = service.DeleteUser(ctx, signup.User.ID)
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}
