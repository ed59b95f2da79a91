package services

import (
	"context"

	"github.com/aqarfin/estate_ledger/internal/core/domain"
	"github.com/aqarfin/estate_ledger/internal/dto"
)

// SettlementReaderSvc defines read operations over settlement state
type SettlementReaderSvc interface {
	// Remaining returns a line's amount minus everything matched against it.
	Remaining(ctx context.Context, lineID string) (domain.Money, error)

	// SettlementSummary returns the total/settled/remaining breakdown of a
	// line, the single source of truth for settlement percentages.
	SettlementSummary(ctx context.Context, lineID string) (*domain.SettlementSummary, error)

	// AllocationsForLine lists the allocations a line participates in.
	AllocationsForLine(ctx context.Context, lineID string) ([]domain.SettlementAllocation, error)
}

// SettlementWriterSvc defines reconciliation operations
type SettlementWriterSvc interface {
	// MatchSettlement allocates an amount of a settling line against a
	// payable line. Nil request amount means min(both remainings).
	MatchSettlement(ctx context.Context, req dto.MatchSettlementRequest, actorID string) (*domain.SettlementAllocation, error)

	// AutoMatch runs the greedy matching pass for a newly posted line and
	// returns whatever allocations it created.
	AutoMatch(ctx context.Context, newLineID string, actorID string) ([]domain.SettlementAllocation, error)

	// UnmatchAllocation deletes one allocation, reopening both lines.
	UnmatchAllocation(ctx context.Context, allocationID string, actorID string) error

	// VoidSettlements deletes every allocation in which the line settles
	// others. This is the path taken when a payment is voided.
	VoidSettlements(ctx context.Context, settlingLineID string, actorID string) error
}

// SettlementSvcFacade combines all settlement-related service interfaces
type SettlementSvcFacade interface {
	SettlementReaderSvc
	SettlementWriterSvc
}
