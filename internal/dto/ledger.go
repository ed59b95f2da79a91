package dto

import (
	"time"

	"github.com/aqarfin/estate_ledger/internal/core/domain"
)

// LedgerLineResponse is one statement row: the line plus its signed
// contribution and the running balance after it.
type LedgerLineResponse struct {
	LineResponse
	SignedAmount   string `json:"signedAmount"`
	RunningBalance string `json:"runningBalance"`
}

// LedgerResponse is the rendered outcome of a ledger query. Statement and
// petty-cash collaborators consume this instead of recomputing balances.
type LedgerResponse struct {
	OpeningBalance string               `json:"openingBalance"`
	ClosingBalance string               `json:"closingBalance"`
	TotalDebit     string               `json:"totalDebit"`
	TotalCredit    string               `json:"totalCredit"`
	Lines          []LedgerLineResponse `json:"lines"`
}

// TrialBalanceRowResponse is one account row of the trial balance report.
type TrialBalanceRowResponse struct {
	AccountID string `json:"accountID"`
	Code      string `json:"code"`
	Name      string `json:"name"`
	Debit     string `json:"debit"`
	Credit    string `json:"credit"`
}

// TrialBalanceResponse is the full report as of an instant.
type TrialBalanceResponse struct {
	AsOf time.Time                 `json:"asOf"`
	Rows []TrialBalanceRowResponse `json:"rows"`
}

// ToLedgerResponse converts a domain.LedgerResult to LedgerResponse DTO.
func ToLedgerResponse(r *domain.LedgerResult) LedgerResponse {
	lines := make([]LedgerLineResponse, len(r.Lines))
	for i := range r.Lines {
		lines[i] = LedgerLineResponse{
			LineResponse:   ToLineResponse(&r.Lines[i].JournalLine),
			SignedAmount:   r.Lines[i].SignedAmount.String(),
			RunningBalance: r.Lines[i].RunningBalance.String(),
		}
	}
	return LedgerResponse{
		OpeningBalance: r.OpeningBalance.String(),
		ClosingBalance: r.ClosingBalance.String(),
		TotalDebit:     r.TotalDebit.String(),
		TotalCredit:    r.TotalCredit.String(),
		Lines:          lines,
	}
}

// ToTrialBalanceResponse converts trial balance rows to the report DTO.
func ToTrialBalanceResponse(asOf time.Time, rows []domain.TrialBalanceRow) TrialBalanceResponse {
	out := make([]TrialBalanceRowResponse, len(rows))
	for i, row := range rows {
		out[i] = TrialBalanceRowResponse{
			AccountID: row.AccountID,
			Code:      row.Code,
			Name:      row.Name,
			Debit:     row.Debit.String(),
			Credit:    row.Credit.String(),
		}
	}
	return TrialBalanceResponse{AsOf: asOf, Rows: out}
}
