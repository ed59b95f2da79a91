package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/aqarfin/estate_ledger/internal/apperrors"
	"github.com/aqarfin/estate_ledger/internal/core/domain"
	portsrepo "github.com/aqarfin/estate_ledger/internal/core/ports/repositories"
	portssvc "github.com/aqarfin/estate_ledger/internal/core/ports/services"
	"github.com/aqarfin/estate_ledger/internal/dto"
	"github.com/aqarfin/estate_ledger/internal/platform/logging"
)

var (
	ErrAccountCodeTaken = errors.New("account code already in use")
	ErrAccountInUse     = errors.New("account has posted lines and cannot be deleted")
)

// accountService maintains the GL account registry.
type accountService struct {
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewAccountService creates a new account registry service.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: accountRepo}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorID string) (*domain.Account, error) {
	logger := logging.FromContext(ctx)

	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	existing, err := s.accountRepo.FindAccountByCode(ctx, req.Code)
	if err != nil && !apperrors.IsNotFound(err) {
		logger.Error("Failed to check account code uniqueness", slog.String("code", req.Code), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to check account code: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: %s", ErrAccountCodeTaken, req.Code)
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountID:  uuid.NewString(),
		Code:       req.Code,
		Name:       req.Name,
		NormalSide: req.NormalSide,
		IsActive:   true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		logger.Error("Failed to save account", slog.String("code", req.Code), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save account: %w", err)
	}

	logger.Info("Account created", slog.String("account_id", account.AccountID), slog.String("code", account.Code))
	return &account, nil
}

func (s *accountService) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, updaterID string) (*domain.Account, error) {
	logger := logging.FromContext(ctx)

	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}

	updated := false
	if req.Name != nil && *req.Name != account.Name {
		account.Name = *req.Name
		updated = true
	}
	if req.IsActive != nil && *req.IsActive != account.IsActive {
		account.IsActive = *req.IsActive
		updated = true
	}
	if !updated {
		return account, nil
	}

	account.LastUpdatedAt = time.Now().UTC()
	account.LastUpdatedBy = updaterID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		logger.Error("Failed to update account", slog.String("account_id", accountID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to update account: %w", err)
	}

	logger.Info("Account updated", slog.String("account_id", accountID))
	return account, nil
}

// DeleteAccount removes an account from the registry. Accounts referenced by
// any posted line are part of the audit history and can only be deactivated.
func (s *accountService) DeleteAccount(ctx context.Context, accountID string, deleterID string) error {
	logger := logging.FromContext(ctx)

	if _, err := s.accountRepo.FindAccountByID(ctx, accountID); err != nil {
		return fmt.Errorf("failed to find account %s: %w", accountID, err)
	}

	inUse, err := s.accountRepo.HasPostedLines(ctx, accountID)
	if err != nil {
		logger.Error("Failed to check account usage", slog.String("account_id", accountID), slog.String("error", err.Error()))
		return fmt.Errorf("failed to check account usage: %w", err)
	}
	if inUse {
		return fmt.Errorf("%w: %s", ErrAccountInUse, accountID)
	}

	if err := s.accountRepo.DeleteAccount(ctx, accountID); err != nil {
		logger.Error("Failed to delete account", slog.String("account_id", accountID), slog.String("error", err.Error()))
		return fmt.Errorf("failed to delete account: %w", err)
	}

	logger.Info("Account deleted", slog.String("account_id", accountID), slog.String("deleted_by", deleterID))
	return nil
}

func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}
	return account, nil
}

func (s *accountService) GetAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to find account with code %s: %w", code, err)
	}
	return account, nil
}

func (s *accountService) GetAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to find accounts: %w", err)
	}
	return accounts, nil
}

func (s *accountService) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}
