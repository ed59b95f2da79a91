package services

import (
	"context"
	"time"

	"github.com/aqarfin/estate_ledger/internal/core/domain"
)

// LedgerSvcFacade defines the balance and statement queries. Collaborators
// render whatever this returns; they never recompute balances themselves.
type LedgerSvcFacade interface {
	// QueryLedger computes opening balance, ordered lines with running
	// balances, closing balance and debit/credit totals for a scope.
	QueryLedger(ctx context.Context, scope domain.Scope, r domain.DateRange) (*domain.LedgerResult, error)

	// Statement is QueryLedger scoped to a party, the call behind every
	// owner/renter statement page.
	Statement(ctx context.Context, party domain.PartyRef, r domain.DateRange) (*domain.LedgerResult, error)

	// TrialBalance returns each account's balance as of an instant.
	TrialBalance(ctx context.Context, asOf time.Time) ([]domain.TrialBalanceRow, error)
}
