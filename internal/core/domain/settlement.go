package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SettlementAllocation matches part of a payable line's amount against a
// settling line. Allocations are created and deleted, never edited; deleting
// one reopens the payable's remaining amount.
type SettlementAllocation struct {
	AllocationID   string    `json:"allocationID"` // Primary key (UUID)
	PayableLineID  string    `json:"payableLineID"`
	SettlingLineID string    `json:"settlingLineID"`
	AmountMatched  Money     `json:"amountMatched"`
	CreatedAt      time.Time `json:"createdAt"`
	CreatedBy      string    `json:"createdBy"`
}

// SettlementSummary describes how much of a line has been settled.
// Invariant: Settled + Remaining == Total and Settled never exceeds Total.
type SettlementSummary struct {
	LineID         string          `json:"lineID"`
	Total          Money           `json:"total"`
	Settled        Money           `json:"settled"`
	Remaining      Money           `json:"remaining"`
	PercentSettled decimal.Decimal `json:"percentSettled"`
	IsSettled      bool            `json:"isSettled"`
}

// PettyCashSummary aggregates a petty-cash account over a date range:
// how much cash was issued, how much of it has been settled by spend lines,
// and what is still outstanding.
type PettyCashSummary struct {
	AccountID      string          `json:"accountID"`
	TotalIssued    Money           `json:"totalIssued"`
	TotalSettled   Money           `json:"totalSettled"`
	TotalRemaining Money           `json:"totalRemaining"`
	PercentSettled decimal.Decimal `json:"percentSettled"`
}
