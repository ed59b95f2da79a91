package repositories

import (
	"context"

	"github.com/aqarfin/estate_ledger/internal/core/domain"
)

// AccountReader defines read operations for GL account data
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountByCode retrieves an account by its unique chart-of-accounts code.
	FindAccountByCode(ctx context.Context, code string) (*domain.Account, error)

	// FindAccountsByIDs retrieves multiple accounts by their IDs.
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts retrieves every account in the registry, ordered by code.
	ListAccounts(ctx context.Context) ([]domain.Account, error)

	// HasPostedLines reports whether any journal line references the account.
	HasPostedLines(ctx context.Context, accountID string) (bool, error)
}

// AccountWriter defines write operations for GL account data
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateAccount updates mutable account fields (name, active flag).
	UpdateAccount(ctx context.Context, account domain.Account) error

	// DeleteAccount removes an account. Callers must have verified that no
	// posted line references it.
	DeleteAccount(ctx context.Context, accountID string) error
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
