package services

import (
	"context"
	"fmt"

	"github.com/aqarfin/estate_ledger/internal/core/domain"
	portsrepo "github.com/aqarfin/estate_ledger/internal/core/ports/repositories"
	portssvc "github.com/aqarfin/estate_ledger/internal/core/ports/services"
)

// pettyCashService is a specialized read model over the ledger and
// settlement engines for a designated cash-on-hand account. Issuing petty
// cash posts to the account's normal side; settling receipts post to the
// opposite side, so "issued" lines are exactly the normal-side lines.
type pettyCashService struct {
	accountRepo   portsrepo.AccountRepositoryFacade
	ledgerSvc     portssvc.LedgerSvcFacade
	settlementSvc portssvc.SettlementSvcFacade
}

// NewPettyCashService creates a new PettyCashService.
func NewPettyCashService(accountRepo portsrepo.AccountRepositoryFacade, ledgerSvc portssvc.LedgerSvcFacade, settlementSvc portssvc.SettlementSvcFacade) portssvc.PettyCashSvcFacade {
	return &pettyCashService{
		accountRepo:   accountRepo,
		ledgerSvc:     ledgerSvc,
		settlementSvc: settlementSvc,
	}
}

var _ portssvc.PettyCashSvcFacade = (*pettyCashService)(nil)

// Summary aggregates issued/settled/remaining for the account over a range.
func (s *pettyCashService) Summary(ctx context.Context, accountID string, r domain.DateRange) (*domain.PettyCashSummary, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}

	result, err := s.ledgerSvc.QueryLedger(ctx, domain.ByAccount(accountID), r)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger for account %s: %w", accountID, err)
	}

	var issued, settled domain.Money
	for _, line := range result.Lines {
		if line.Side != account.NormalSide {
			continue
		}
		summary, err := s.settlementSvc.SettlementSummary(ctx, line.LineID)
		if err != nil {
			return nil, fmt.Errorf("failed to summarize line %s: %w", line.LineID, err)
		}
		issued = issued.Add(summary.Total)
		settled = settled.Add(summary.Settled)
	}

	return &domain.PettyCashSummary{
		AccountID:      accountID,
		TotalIssued:    issued,
		TotalSettled:   settled,
		TotalRemaining: issued.Sub(settled),
		PercentSettled: domain.PercentOf(settled, issued),
	}, nil
}

// Ledger returns the account statement with running balances.
func (s *pettyCashService) Ledger(ctx context.Context, accountID string, r domain.DateRange) (*domain.LedgerResult, error) {
	if _, err := s.accountRepo.FindAccountByID(ctx, accountID); err != nil {
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}
	result, err := s.ledgerSvc.QueryLedger(ctx, domain.ByAccount(accountID), r)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger for account %s: %w", accountID, err)
	}
	return result, nil
}
