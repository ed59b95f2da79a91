package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/aqarfin/estate_ledger/internal/core/domain"
)

// MatchSettlementRequest defines the input for manual reconciliation.
// A nil Amount means "as much as both lines allow".
type MatchSettlementRequest struct {
	PayableLineID  string           `json:"payableLineID" validate:"required"`
	SettlingLineID string           `json:"settlingLineID" validate:"required"`
	Amount         *decimal.Decimal `json:"amount,omitempty"`
}

// AllocationResponse defines the data returned for a settlement allocation.
type AllocationResponse struct {
	AllocationID   string    `json:"allocationID"`
	PayableLineID  string    `json:"payableLineID"`
	SettlingLineID string    `json:"settlingLineID"`
	AmountMatched  string    `json:"amountMatched"`
	CreatedAt      time.Time `json:"createdAt"`
}

// SettlementSummaryResponse defines the settled/remaining breakdown of a line.
type SettlementSummaryResponse struct {
	LineID         string `json:"lineID"`
	Total          string `json:"total"`
	Settled        string `json:"settled"`
	Remaining      string `json:"remaining"`
	PercentSettled string `json:"percentSettled"`
	IsSettled      bool   `json:"isSettled"`
}

// PettyCashSummaryResponse defines the petty-cash issued/spent/remaining card.
type PettyCashSummaryResponse struct {
	AccountID      string `json:"accountID"`
	TotalIssued    string `json:"totalIssued"`
	TotalSettled   string `json:"totalSettled"`
	TotalRemaining string `json:"totalRemaining"`
	PercentSettled string `json:"percentSettled"`
}

// ToAllocationResponse converts a domain.SettlementAllocation to its DTO.
func ToAllocationResponse(a *domain.SettlementAllocation) AllocationResponse {
	return AllocationResponse{
		AllocationID:   a.AllocationID,
		PayableLineID:  a.PayableLineID,
		SettlingLineID: a.SettlingLineID,
		AmountMatched:  a.AmountMatched.String(),
		CreatedAt:      a.CreatedAt,
	}
}

// ToSettlementSummaryResponse converts a domain.SettlementSummary to its DTO.
func ToSettlementSummaryResponse(s *domain.SettlementSummary) SettlementSummaryResponse {
	return SettlementSummaryResponse{
		LineID:         s.LineID,
		Total:          s.Total.String(),
		Settled:        s.Settled.String(),
		Remaining:      s.Remaining.String(),
		PercentSettled: s.PercentSettled.StringFixed(2),
		IsSettled:      s.IsSettled,
	}
}

// ToPettyCashSummaryResponse converts a domain.PettyCashSummary to its DTO.
func ToPettyCashSummaryResponse(s *domain.PettyCashSummary) PettyCashSummaryResponse {
	return PettyCashSummaryResponse{
		AccountID:      s.AccountID,
		TotalIssued:    s.TotalIssued.String(),
		TotalSettled:   s.TotalSettled.String(),
		TotalRemaining: s.TotalRemaining.String(),
		PercentSettled: s.PercentSettled.StringFixed(2),
	}
}
