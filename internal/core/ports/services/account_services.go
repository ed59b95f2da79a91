package services

import (
	"context"

	"github.com/aqarfin/estate_ledger/internal/core/domain"
	"github.com/aqarfin/estate_ledger/internal/dto"
)

// AccountReaderSvc defines read operations for the GL account registry
type AccountReaderSvc interface {
	// GetAccountByID retrieves a specific account by its ID.
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// GetAccountByCode retrieves an account by its chart-of-accounts code.
	GetAccountByCode(ctx context.Context, code string) (*domain.Account, error)

	// GetAccountsByIDs retrieves multiple accounts keyed by ID.
	GetAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts retrieves the full chart of accounts.
	ListAccounts(ctx context.Context) ([]domain.Account, error)
}

// AccountWriterSvc defines write operations for the GL account registry
type AccountWriterSvc interface {
	// CreateAccount registers a new account with a unique code.
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorID string) (*domain.Account, error)

	// UpdateAccount renames or (de)activates an account.
	UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, updaterID string) (*domain.Account, error)

	// DeleteAccount removes an account; refused once any posted line references it.
	DeleteAccount(ctx context.Context, accountID string, deleterID string) error
}

// AccountSvcFacade combines all account-related service interfaces
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}
