package repositories

import (
	"context"

	"github.com/aqarfin/estate_ledger/internal/core/domain"
)

// SettlementReader defines read operations for settlement allocation data
type SettlementReader interface {
	// FindAllocationByID retrieves a single allocation.
	FindAllocationByID(ctx context.Context, allocationID string) (*domain.SettlementAllocation, error)

	// FindAllocationsForLine retrieves every allocation in which the line
	// participates, as payable or as settling, ordered by createdAt then id.
	FindAllocationsForLine(ctx context.Context, lineID string) ([]domain.SettlementAllocation, error)

	// SumMatchedForLines returns, per line id, the total amount already
	// matched against that line in either role. Lines with no allocations
	// are present with a zero sum.
	SumMatchedForLines(ctx context.Context, lineIDs []string) (map[string]domain.Money, error)

	// FindOpenCounterpartLines retrieves not-fully-settled lines on the given
	// account and side that carry the given subject ref. Candidates for the
	// auto-match pass.
	FindOpenCounterpartLines(ctx context.Context, subject domain.SubjectRef, accountID string, side domain.Side) ([]domain.JournalLine, error)
}

// SettlementWriter defines write operations for settlement allocation data.
// Implementations lock both journal lines, re-verify remaining amounts under
// the lock, and refresh the lines' is_settled flags in the same transaction.
type SettlementWriter interface {
	// CreateAllocation persists an allocation. Returns ErrExceedsRemaining
	// if, under the lock, either line no longer has the capacity.
	CreateAllocation(ctx context.Context, alloc domain.SettlementAllocation) error

	// DeleteAllocation removes one allocation and reopens both lines' remaining.
	DeleteAllocation(ctx context.Context, allocationID string) error

	// DeleteAllocationsForLines removes every allocation touching any of the
	// given lines and refreshes the settled flags of all affected lines.
	DeleteAllocationsForLines(ctx context.Context, lineIDs []string) error
}

// SettlementRepositoryFacade combines all settlement-related repository interfaces
type SettlementRepositoryFacade interface {
	SettlementReader
	SettlementWriter
}
