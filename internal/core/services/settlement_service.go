package services

import (
	"context"
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
	"github.com/aqarfin/estate_ledger/internal/utils/accounting"
)

// settlementService matches payable lines against settling lines.
// Two lines are compatible when they hit the same GL account on opposite
// sides; the line on the account's normal side is the payable.
type settlementService struct {
	journalRepo    portsrepo.JournalRepositoryFacade
	accountRepo    portsrepo.AccountRepositoryFacade
	settlementRepo portsrepo.SettlementRepositoryFacade
}

// NewSettlementService creates a new SettlementService.
func NewSettlementService(journalRepo portsrepo.JournalRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade, settlementRepo portsrepo.SettlementRepositoryFacade) portssvc.SettlementSvcFacade {
	return &settlementService{
		journalRepo:    journalRepo,
		accountRepo:    accountRepo,
		settlementRepo: settlementRepo,
	}
}

var _ portssvc.SettlementSvcFacade = (*settlementService)(nil)

// MatchSettlement allocates an amount of a settling line against a payable
// line. With no requested amount it allocates min(both remainings).
func (s *settlementService) MatchSettlement(ctx context.Context, req dto.MatchSettlementRequest, actorID string) (*domain.SettlementAllocation, error) {
	logger := logging.FromContext(ctx)

	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	if req.PayableLineID == req.SettlingLineID {
		return nil, fmt.Errorf("%w: a line cannot settle itself", apperrors.ErrValidation)
	}

	payable, err := s.journalRepo.FindLineByID(ctx, req.PayableLineID)
	if err != nil {
		return nil, fmt.Errorf("failed to find payable line %s: %w", req.PayableLineID, err)
	}
	settling, err := s.journalRepo.FindLineByID(ctx, req.SettlingLineID)
	if err != nil {
		return nil, fmt.Errorf("failed to find settling line %s: %w", req.SettlingLineID, err)
	}

	if payable.AccountID != settling.AccountID || payable.Side == settling.Side {
		return nil, fmt.Errorf("%w: payable %s and settling %s", apperrors.ErrIncompatibleAccounts, payable.LineID, settling.LineID)
	}
	account, err := s.accountRepo.FindAccountByID(ctx, payable.AccountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find account %s: %w", payable.AccountID, err)
	}
	if payable.Side != account.NormalSide {
		return nil, fmt.Errorf("%w: payable line %s is not on account %s's normal side", apperrors.ErrIncompatibleAccounts, payable.LineID, account.Code)
	}

	// A reversed entry is netted to zero by its reversing pair; its lines
	// stay out of settlement even after a cascade unsettle reopened them.
	entryIDs := []string{payable.EntryID}
	if settling.EntryID != payable.EntryID {
		entryIDs = append(entryIDs, settling.EntryID)
	}
	for _, entryID := range entryIDs {
		entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
		if err != nil {
			return nil, fmt.Errorf("failed to find entry %s: %w", entryID, err)
		}
		if entry.Status != domain.Posted {
			return nil, fmt.Errorf("%w: entry %s has status %s; only lines of posted entries settle", apperrors.ErrValidation, entryID, entry.Status)
		}
	}

	sums, err := s.settlementRepo.SumMatchedForLines(ctx, []string{payable.LineID, settling.LineID})
	if err != nil {
		return nil, fmt.Errorf("failed to sum existing allocations: %w", err)
	}
	payableRemaining := payable.Amount.Sub(sums[payable.LineID])
	settlingRemaining := settling.Amount.Sub(sums[settling.LineID])

	if payableRemaining.IsZero() {
		return nil, fmt.Errorf("%w: payable line %s", apperrors.ErrAlreadySettled, payable.LineID)
	}
	if settlingRemaining.IsZero() {
		return nil, fmt.Errorf("%w: settling line %s", apperrors.ErrAlreadySettled, settling.LineID)
	}

	var amount domain.Money
	if req.Amount != nil {
		amount, err = domain.MoneyFromDecimal(*req.Amount)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidAmount, err)
		}
		if !amount.IsPositive() {
			return nil, fmt.Errorf("%w: requested amount is %s", apperrors.ErrInvalidAmount, amount)
		}
		if amount.Cmp(payableRemaining) > 0 || amount.Cmp(settlingRemaining) > 0 {
			return nil, fmt.Errorf("%w: requested %s, payable remaining %s, settling remaining %s",
				apperrors.ErrExceedsRemaining, amount, payableRemaining, settlingRemaining)
		}
	} else {
		amount = domain.MinMoney(payableRemaining, settlingRemaining)
	}

	alloc := domain.SettlementAllocation{
		AllocationID:   uuid.NewString(),
		PayableLineID:  payable.LineID,
		SettlingLineID: settling.LineID,
		AmountMatched:  amount,
		CreatedAt:      time.Now().UTC(),
		CreatedBy:      actorID,
	}

	// The repository re-verifies both remainings under row locks; a
	// concurrent allocation surfaces as ErrExceedsRemaining here.
	if err := s.settlementRepo.CreateAllocation(ctx, alloc); err != nil {
		logger.Error("Failed to create allocation",
			slog.String("payable_line_id", payable.LineID),
			slog.String("settling_line_id", settling.LineID),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to create allocation: %w", err)
	}

	logger.Info("Settlement matched",
		slog.String("allocation_id", alloc.AllocationID),
		slog.String("payable_line_id", payable.LineID),
		slog.String("settling_line_id", settling.LineID),
		slog.String("amount", amount.String()))
	return &alloc, nil
}

// AutoMatch runs the greedy pass for a newly posted line: counterpart lines
// share its subject ref on the same account with the opposite side. Payables
// are consumed oldest first, settling lines largest remaining first, until
// either side is exhausted.
func (s *settlementService) AutoMatch(ctx context.Context, newLineID string, actorID string) ([]domain.SettlementAllocation, error) {
	logger := logging.FromContext(ctx)

	line, err := s.journalRepo.FindLineByID(ctx, newLineID)
	if err != nil {
		return nil, fmt.Errorf("failed to find line %s: %w", newLineID, err)
	}
	if line.Subject == nil || !line.Subject.EligibleForAutoMatch() {
		return nil, nil
	}

	account, err := s.accountRepo.FindAccountByID(ctx, line.AccountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find account %s: %w", line.AccountID, err)
	}

	counterparts, err := s.settlementRepo.FindOpenCounterpartLines(ctx, *line.Subject, line.AccountID, line.Side.Opposite())
	if err != nil {
		return nil, fmt.Errorf("failed to find counterpart lines: %w", err)
	}
	if len(counterparts) == 0 {
		return nil, nil
	}

	lineIDs := make([]string, 0, len(counterparts)+1)
	lineIDs = append(lineIDs, line.LineID)
	for _, c := range counterparts {
		lineIDs = append(lineIDs, c.LineID)
	}
	sums, err := s.settlementRepo.SumMatchedForLines(ctx, lineIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to sum existing allocations: %w", err)
	}

	remaining := make(map[string]domain.Money, len(lineIDs))
	remaining[line.LineID] = line.Amount.Sub(sums[line.LineID])
	for _, c := range counterparts {
		remaining[c.LineID] = c.Amount.Sub(sums[c.LineID])
	}

	lineIsPayable := line.Side == account.NormalSide
	if lineIsPayable {
		accounting.SortSettlingLargestRemainingFirst(counterparts, remaining)
	} else {
		accounting.SortPayablesOldestFirst(counterparts)
	}

	var created []domain.SettlementAllocation
	now := time.Now().UTC()
	for _, counterpart := range counterparts {
		if remaining[line.LineID].IsZero() {
			break
		}
		amount := domain.MinMoney(remaining[line.LineID], remaining[counterpart.LineID])
		if !amount.IsPositive() {
			continue
		}

		alloc := domain.SettlementAllocation{
			AllocationID:  uuid.NewString(),
			AmountMatched: amount,
			CreatedAt:     now,
			CreatedBy:     actorID,
		}
		if lineIsPayable {
			alloc.PayableLineID = line.LineID
			alloc.SettlingLineID = counterpart.LineID
		} else {
			alloc.PayableLineID = counterpart.LineID
			alloc.SettlingLineID = line.LineID
		}

		if err := s.settlementRepo.CreateAllocation(ctx, alloc); err != nil {
			logger.Error("Auto-match allocation failed",
				slog.String("payable_line_id", alloc.PayableLineID),
				slog.String("settling_line_id", alloc.SettlingLineID),
				slog.String("error", err.Error()))
			return created, fmt.Errorf("failed to create allocation: %w", err)
		}

		remaining[line.LineID] = remaining[line.LineID].Sub(amount)
		remaining[counterpart.LineID] = remaining[counterpart.LineID].Sub(amount)
		created = append(created, alloc)
	}

	if len(created) > 0 {
		logger.Info("Auto-match complete",
			slog.String("line_id", line.LineID),
			slog.Int("allocations", len(created)))
	}
	return created, nil
}

// Remaining returns a line's amount minus everything matched against it.
func (s *settlementService) Remaining(ctx context.Context, lineID string) (domain.Money, error) {
	line, err := s.journalRepo.FindLineByID(ctx, lineID)
	if err != nil {
		return 0, fmt.Errorf("failed to find line %s: %w", lineID, err)
	}
	sums, err := s.settlementRepo.SumMatchedForLines(ctx, []string{lineID})
	if err != nil {
		return 0, fmt.Errorf("failed to sum allocations for line %s: %w", lineID, err)
	}
	return line.Amount.Sub(sums[lineID]), nil
}

// SettlementSummary returns the settled/remaining breakdown of a line.
func (s *settlementService) SettlementSummary(ctx context.Context, lineID string) (*domain.SettlementSummary, error) {
	line, err := s.journalRepo.FindLineByID(ctx, lineID)
	if err != nil {
		return nil, fmt.Errorf("failed to find line %s: %w", lineID, err)
	}
	sums, err := s.settlementRepo.SumMatchedForLines(ctx, []string{lineID})
	if err != nil {
		return nil, fmt.Errorf("failed to sum allocations for line %s: %w", lineID, err)
	}

	settled := sums[lineID]
	remaining := line.Amount.Sub(settled)
	return &domain.SettlementSummary{
		LineID:         lineID,
		Total:          line.Amount,
		Settled:        settled,
		Remaining:      remaining,
		PercentSettled: domain.PercentOf(settled, line.Amount),
		IsSettled:      remaining.IsZero(),
	}, nil
}

// AllocationsForLine lists every allocation the line participates in.
func (s *settlementService) AllocationsForLine(ctx context.Context, lineID string) ([]domain.SettlementAllocation, error) {
	if _, err := s.journalRepo.FindLineByID(ctx, lineID); err != nil {
		return nil, fmt.Errorf("failed to find line %s: %w", lineID, err)
	}
	allocs, err := s.settlementRepo.FindAllocationsForLine(ctx, lineID)
	if err != nil {
		return nil, fmt.Errorf("failed to list allocations for line %s: %w", lineID, err)
	}
	return allocs, nil
}

// UnmatchAllocation deletes one allocation, reopening both lines' remaining.
func (s *settlementService) UnmatchAllocation(ctx context.Context, allocationID string, actorID string) error {
	logger := logging.FromContext(ctx)

	alloc, err := s.settlementRepo.FindAllocationByID(ctx, allocationID)
	if err != nil {
		return fmt.Errorf("failed to find allocation %s: %w", allocationID, err)
	}
	if err := s.settlementRepo.DeleteAllocation(ctx, allocationID); err != nil {
		logger.Error("Failed to delete allocation", slog.String("allocation_id", allocationID), slog.String("error", err.Error()))
		return fmt.Errorf("failed to delete allocation: %w", err)
	}

	logger.Info("Allocation removed",
		slog.String("allocation_id", allocationID),
		slog.String("payable_line_id", alloc.PayableLineID),
		slog.String("settling_line_id", alloc.SettlingLineID),
		slog.String("removed_by", actorID))
	return nil
}

// VoidSettlements deletes every allocation in which the line settles others.
// Called when a payment is voided; the payable lines it touched reopen.
func (s *settlementService) VoidSettlements(ctx context.Context, settlingLineID string, actorID string) error {
	logger := logging.FromContext(ctx)

	if _, err := s.journalRepo.FindLineByID(ctx, settlingLineID); err != nil {
		return fmt.Errorf("failed to find line %s: %w", settlingLineID, err)
	}

	allocs, err := s.settlementRepo.FindAllocationsForLine(ctx, settlingLineID)
	if err != nil {
		return fmt.Errorf("failed to list allocations for line %s: %w", settlingLineID, err)
	}

	removed := 0
	for _, alloc := range allocs {
		if alloc.SettlingLineID != settlingLineID {
			continue
		}
		if err := s.settlementRepo.DeleteAllocation(ctx, alloc.AllocationID); err != nil {
			logger.Error("Failed to delete allocation during void",
				slog.String("allocation_id", alloc.AllocationID),
				slog.String("error", err.Error()))
			return fmt.Errorf("failed to delete allocation %s: %w", alloc.AllocationID, err)
		}
		removed++
	}

	logger.Info("Settlements voided",
		slog.String("settling_line_id", settlingLineID),
		slog.Int("allocations_removed", removed),
		slog.String("voided_by", actorID))
	return nil
}
