// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"gatekeeper/internal/domain/entity"
)

// ErrAccountNotFound is a domain-specific error returned when no account matches a lookup.
var ErrAccountNotFound = errors.New("account not found")

// AccountRepository defines the standard operations for account persistence.
// The application layer depends on this interface, not the concrete implementation.
// The store is the single source of truth; every method is a single-row operation.
type AccountRepository interface {
	// FindByID retrieves a single account by its unique ID.
	FindByID(ctx context.Context, id int64) (*entity.Account, error)

	// FindByEmail retrieves a single account by its email address.
	// The match is case-sensitive, mirroring the unique column.
	FindByEmail(ctx context.Context, email string) (*entity.Account, error)

	// FindByResetToken retrieves the account holding an active reset token.
	FindByResetToken(ctx context.Context, token string) (*entity.Account, error)

	// List returns all accounts ordered by creation time descending.
	List(ctx context.Context) ([]*entity.Account, error)

	// Create persists a new account and fills in the generated ID and timestamps.
	Create(ctx context.Context, account *entity.Account) error

	// Update modifies an existing account.
	Update(ctx context.Context, account *entity.Account) error

	// Delete permanently removes an account. Returns ErrAccountNotFound if no row matched.
	Delete(ctx context.Context, id int64) error
}
