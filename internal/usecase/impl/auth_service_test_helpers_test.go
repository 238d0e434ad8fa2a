package impl

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"strings"
	"time"

	"gatekeeper/internal/domain/entity"
	"gatekeeper/internal/domain/repository"
	"gatekeeper/internal/domain/service"
	"gatekeeper/internal/usecase"

	"github.com/pkg/errors"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestAuthService(repo repository.AccountRepository, hasher service.PasswordHasher, tokens service.TokenService) usecase.AuthUsecase {
	return NewAuthService(AuthServiceParams{
		AccountRepo:  repo,
		Hasher:       hasher,
		TokenService: tokens,
		Logger:       newDiscardLogger(),
	})
}

// fakeAccountRepo is an in-memory AccountRepository. Accounts are stored by
// value so test code holding pointers cannot mutate the store accidentally.
type fakeAccountRepo struct {
	accounts map[int64]entity.Account
	nextID   int64
	failWith error
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{
		accounts: make(map[int64]entity.Account),
		nextID:   1,
	}
}

func (r *fakeAccountRepo) FindByID(ctx context.Context, id int64) (*entity.Account, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	account, ok := r.accounts[id]
	if !ok {
		return nil, repository.ErrAccountNotFound
	}

	return &account, nil
}

func (r *fakeAccountRepo) FindByEmail(ctx context.Context, email string) (*entity.Account, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	for _, account := range r.accounts {
		if account.Email == email {
			return &account, nil
		}
	}

	return nil, repository.ErrAccountNotFound
}

func (r *fakeAccountRepo) FindByResetToken(ctx context.Context, token string) (*entity.Account, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	for _, account := range r.accounts {
		if account.ResetToken != nil && *account.ResetToken == token {
			return &account, nil
		}
	}

	return nil, repository.ErrAccountNotFound
}

func (r *fakeAccountRepo) List(ctx context.Context) ([]*entity.Account, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	accounts := make([]*entity.Account, 0, len(r.accounts))
	for id := range r.accounts {
		account := r.accounts[id]
		accounts = append(accounts, &account)
	}
	sort.Slice(accounts, func(i, j int) bool {
		return accounts[i].CreatedAt.After(accounts[j].CreatedAt)
	})

	return accounts, nil
}

func (r *fakeAccountRepo) Create(ctx context.Context, account *entity.Account) error {
	if r.failWith != nil {
		return r.failWith
	}
	account.ID = r.nextID
	r.nextID++
	account.CreatedAt = time.Now()
	account.UpdatedAt = account.CreatedAt
	r.accounts[account.ID] = *account

	return nil
}

func (r *fakeAccountRepo) Update(ctx context.Context, account *entity.Account) error {
	if r.failWith != nil {
		return r.failWith
	}
	if _, ok := r.accounts[account.ID]; !ok {
		return repository.ErrAccountNotFound
	}
	// The real repository saves every column, so an update carrying a zero
	// CreatedAt would silently clobber the stored creation time. Fail loudly
	// instead of masking it.
	if account.CreatedAt.IsZero() {
		return errors.New("update would erase created_at")
	}
	account.UpdatedAt = time.Now()
	r.accounts[account.ID] = *account

	return nil
}

func (r *fakeAccountRepo) Delete(ctx context.Context, id int64) error {
	if r.failWith != nil {
		return r.failWith
	}
	if _, ok := r.accounts[id]; !ok {
		return repository.ErrAccountNotFound
	}
	delete(r.accounts, id)

	return nil
}

// fakeHasher prefixes instead of hashing so tests can see through it.
type fakeHasher struct {
	hashErr error
}

func (h *fakeHasher) Hash(password string) (string, error) {
	if h.hashErr != nil {
		return "", h.hashErr
	}

	return "hashed:" + password, nil
}

func (h *fakeHasher) Check(password, hash string) bool {
	return hash == "hashed:"+password
}

// fakeTokenService issues deterministic tokens.
type fakeTokenService struct {
	resetToken  string
	resetExpiry time.Time
	generateErr error
}

func (s *fakeTokenService) GenerateIdentityToken(account *entity.Account) (string, error) {
	if s.generateErr != nil {
		return "", s.generateErr
	}

	return "identity-token:" + account.Email, nil
}

func (s *fakeTokenService) ValidateIdentityToken(tokenString string) (*service.IdentityClaims, error) {
	email, ok := strings.CutPrefix(tokenString, "identity-token:")
	if !ok {
		return nil, errors.New("token is malformed")
	}

	return &service.IdentityClaims{Email: email}, nil
}

func (s *fakeTokenService) GenerateResetToken() (*service.ResetToken, error) {
	if s.generateErr != nil {
		return nil, s.generateErr
	}
	token := s.resetToken
	if token == "" {
		token = "reset-token"
	}
	expiry := s.resetExpiry
	if expiry.IsZero() {
		expiry = time.Now().Add(time.Hour)
	}

	return &service.ResetToken{Token: token, ExpiresAt: expiry}, nil
}
