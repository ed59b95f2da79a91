package services

import (
	"context"

	"github.com/aqarfin/estate_ledger/internal/core/domain"
)

// PettyCashSvcFacade is the specialized view over the ledger and settlement
// engines for a designated cash-on-hand account.
type PettyCashSvcFacade interface {
	// Summary aggregates issued/settled/remaining for the petty-cash account
	// over a date range.
	Summary(ctx context.Context, accountID string, r domain.DateRange) (*domain.PettyCashSummary, error)

	// Ledger returns the petty-cash statement itself (issued and spend lines
	// with running balances).
	Ledger(ctx context.Context, accountID string, r domain.DateRange) (*domain.LedgerResult, error)
}
