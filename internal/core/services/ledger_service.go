package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aqarfin/estate_ledger/internal/apperrors"
	"github.com/aqarfin/estate_ledger/internal/core/domain"
	portsrepo "github.com/aqarfin/estate_ledger/internal/core/ports/repositories"
	portssvc "github.com/aqarfin/estate_ledger/internal/core/ports/services"
	"github.com/aqarfin/estate_ledger/internal/platform/logging"
	"github.com/aqarfin/estate_ledger/internal/utils/accounting"
)

// ledgerService computes statements and balances over posted lines.
type ledgerService struct {
	journalRepo portsrepo.JournalRepositoryFacade
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(journalRepo portsrepo.JournalRepositoryFacade) portssvc.LedgerSvcFacade {
	return &ledgerService{journalRepo: journalRepo}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// QueryLedger computes the opening balance, the chronologically ordered lines
// with running balances, and the closing balance for a scope and range.
func (s *ledgerService) QueryLedger(ctx context.Context, scope domain.Scope, r domain.DateRange) (*domain.LedgerResult, error) {
	logger := logging.FromContext(ctx)

	if scope.AccountID == nil && scope.Party == nil {
		return nil, fmt.Errorf("%w: ledger scope must name an account or a party", apperrors.ErrValidation)
	}
	if r.End.Before(r.Start) {
		return nil, fmt.Errorf("%w: range end precedes start", apperrors.ErrValidation)
	}

	opening, err := s.journalRepo.SumLedgerBefore(ctx, scope, r.Start)
	if err != nil {
		logger.Error("Failed to compute opening balance", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to compute opening balance: %w", err)
	}

	lines, err := s.journalRepo.FindLedgerLines(ctx, scope, r)
	if err != nil {
		logger.Error("Failed to fetch ledger lines", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to fetch ledger lines: %w", err)
	}

	// The repository orders by (created_at, line_id) already; re-sorting keeps
	// the replay order a property of the engine, not of the store.
	accounting.SortChronological(lines)
	closing, totalDebit, totalCredit := accounting.FoldRunningBalances(lines, opening)

	logger.Debug("Ledger query complete",
		slog.Int("lines", len(lines)),
		slog.String("opening", opening.String()),
		slog.String("closing", closing.String()))

	return &domain.LedgerResult{
		Scope:          scope,
		Range:          r,
		OpeningBalance: opening,
		ClosingBalance: closing,
		TotalDebit:     totalDebit,
		TotalCredit:    totalCredit,
		Lines:          lines,
	}, nil
}

// Statement is the party-scoped ledger behind owner and renter statements.
func (s *ledgerService) Statement(ctx context.Context, party domain.PartyRef, r domain.DateRange) (*domain.LedgerResult, error) {
	return s.QueryLedger(ctx, domain.ByParty(party), r)
}

// TrialBalance returns each account's signed balance as of an instant.
func (s *ledgerService) TrialBalance(ctx context.Context, asOf time.Time) ([]domain.TrialBalanceRow, error) {
	logger := logging.FromContext(ctx)

	rows, err := s.journalRepo.TrialBalanceRows(ctx, asOf)
	if err != nil {
		logger.Error("Failed to compute trial balance", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to compute trial balance: %w", err)
	}
	return rows, nil
}
