package services

import (
	"context"
	"errors"
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

var (
	ErrEntryMinLines   = errors.New("entry must have at least two lines")
	ErrMemoMissing     = errors.New("entry memo is required")
	ErrAccountInactive = errors.New("account is inactive")
	ErrNotReversible   = errors.New("entry cannot be reversed")
)

// journalService posts and reverses journal entries.
type journalService struct {
	journalRepo   portsrepo.JournalRepositoryFacade
	accountSvc    portssvc.AccountSvcFacade
	settlementSvc portssvc.SettlementSvcFacade
}

// NewJournalService creates a new JournalService.
func NewJournalService(journalRepo portsrepo.JournalRepositoryFacade, accountSvc portssvc.AccountSvcFacade, settlementSvc portssvc.SettlementSvcFacade) portssvc.JournalSvcFacade {
	return &journalService{
		journalRepo:   journalRepo,
		accountSvc:    accountSvc,
		settlementSvc: settlementSvc,
	}
}

var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// PostEntry validates and persists a balanced journal entry.
// Validation order: line amounts, account resolution, then the balance check.
func (s *journalService) PostEntry(ctx context.Context, req dto.PostEntryRequest, creatorID string) (*domain.JournalEntry, error) {
	logger := logging.FromContext(ctx)

	if req.Memo == "" {
		return nil, ErrMemoMissing
	}
	if len(req.Lines) < 2 {
		return nil, ErrEntryMinLines
	}
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	now := time.Now().UTC()
	entryID := uuid.NewString()

	// 1. Every amount must be positive and fit in minor units.
	lines := make([]domain.JournalLine, len(req.Lines))
	accountIDs := make([]string, 0, len(req.Lines))
	for i, input := range req.Lines {
		amount, err := domain.MoneyFromDecimal(input.Amount)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", apperrors.ErrInvalidAmount, i, err)
		}
		if !amount.IsPositive() {
			return nil, fmt.Errorf("%w: line %d amount is %s", apperrors.ErrInvalidAmount, i, amount)
		}

		line := domain.JournalLine{
			LineID:     uuid.NewString(),
			EntryID:    entryID,
			AccountID:  input.AccountID,
			Side:       input.Side,
			Amount:     amount,
			PropertyID: input.PropertyID,
			UnitID:     input.UnitID,
			CreatedAt:  now,
		}
		if input.Party != nil {
			party := domain.PartyRef{Kind: input.Party.Kind, ID: input.Party.ID}
			line.Party = &party
		}
		if input.Subject != nil {
			subject := domain.SubjectRef{Kind: input.Subject.Kind, ID: input.Subject.ID, Label: input.Subject.Label}
			line.Subject = &subject
		}
		lines[i] = line
		accountIDs = append(accountIDs, input.AccountID)
	}

	// 2. Every account must resolve in the registry and be active.
	uniqueAccountIDs := uniqueStrings(accountIDs)
	accountsMap, err := s.accountSvc.GetAccountsByIDs(ctx, uniqueAccountIDs)
	if err != nil {
		logger.Error("Failed to fetch accounts for posting", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to fetch accounts: %w", err)
	}
	for _, id := range uniqueAccountIDs {
		acc, found := accountsMap[id]
		if !found {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrUnknownAccount, id)
		}
		if !acc.IsActive {
			return nil, fmt.Errorf("%w: %s", ErrAccountInactive, id)
		}
	}

	// 3. Debits must equal credits exactly, in minor units.
	debitTotal, creditTotal := accounting.EntryTotals(lines)
	if debitTotal != creditTotal {
		return nil, &apperrors.UnbalancedEntryError{
			DebitTotal:  debitTotal.MinorUnits(),
			CreditTotal: creditTotal.MinorUnits(),
		}
	}

	entry := domain.JournalEntry{
		EntryID:  entryID,
		Memo:     req.Memo,
		IsManual: req.IsManual,
		Status:   domain.Posted,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorID,
		},
	}

	if err := s.journalRepo.SaveEntry(ctx, entry, lines); err != nil {
		logger.Error("Failed to save entry", slog.String("entry_id", entryID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save entry: %w", err)
	}

	logger.Info("Entry posted", slog.String("entry_id", entryID), slog.Int("lines", len(lines)), slog.Bool("manual", req.IsManual))

	// Run the auto-match pass for lines tagged with a matchable subject.
	// The entry is already durable; a failed match attempt is logged and left
	// to manual reconciliation.
	for _, line := range lines {
		if line.Subject == nil || !line.Subject.EligibleForAutoMatch() {
			continue
		}
		if _, err := s.settlementSvc.AutoMatch(ctx, line.LineID, creatorID); err != nil {
			logger.Warn("Auto-match failed for posted line",
				slog.String("entry_id", entryID),
				slog.String("line_id", line.LineID),
				slog.String("error", err.Error()))
		}
	}

	entry.Lines = lines
	return &entry, nil
}

// GetEntry retrieves an entry together with its lines.
func (s *journalService) GetEntry(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	logger := logging.FromContext(ctx)

	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		if !apperrors.IsNotFound(err) {
			logger.Error("Failed to find entry", slog.String("entry_id", entryID), slog.String("error", err.Error()))
		}
		return nil, fmt.Errorf("failed to find entry %s: %w", entryID, err)
	}

	lines, err := s.journalRepo.FindLinesByEntryID(ctx, entryID)
	if err != nil {
		logger.Error("Failed to fetch lines for entry", slog.String("entry_id", entryID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to retrieve lines for entry %s: %w", entryID, err)
	}
	entry.Lines = lines
	return entry, nil
}

// ListEntries retrieves a paginated list of entries.
func (s *journalService) ListEntries(ctx context.Context, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	logger := logging.FromContext(ctx)

	entries, nextToken, err := s.journalRepo.ListEntries(ctx, params.Limit, params.NextToken, params.IncludeReversals)
	if err != nil {
		logger.Error("Failed to list entries", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to retrieve entries: %w", err)
	}

	responses := make([]dto.EntryResponse, len(entries))
	for i := range entries {
		if params.IncludeLines {
			lines, err := s.journalRepo.FindLinesByEntryID(ctx, entries[i].EntryID)
			if err != nil {
				logger.Warn("Failed to fetch lines for listed entry", slog.String("entry_id", entries[i].EntryID), slog.String("error", err.Error()))
			} else {
				entries[i].Lines = lines
			}
		}
		responses[i] = dto.ToEntryResponse(&entries[i])
	}

	return &dto.ListEntriesResponse{Entries: responses, NextToken: nextToken}, nil
}

// ReverseEntry posts a new entry with every line's side flipped and links it
// to the original. Lines participating in settlements block the reversal
// unless the caller opts into cascading un-settlement.
func (s *journalService) ReverseEntry(ctx context.Context, entryID string, req dto.ReverseEntryRequest, userID string) (*domain.JournalEntry, error) {
	logger := logging.FromContext(ctx)

	original, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.ErrNotFound
		}
		logger.Error("Failed to fetch entry for reversal", slog.String("entry_id", entryID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to retrieve entry: %w", err)
	}

	if original.Status == domain.Reversed || original.ReversedByEntryID != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrAlreadyReversed, entryID)
	}
	if _, err := s.journalRepo.FindReversalOf(ctx, entryID); err == nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrAlreadyReversed, entryID)
	} else if !apperrors.IsNotFound(err) {
		return nil, fmt.Errorf("failed to check for existing reversal: %w", err)
	}
	if original.IsReversal() {
		return nil, fmt.Errorf("%w: %s is itself a reversal", ErrNotReversible, entryID)
	}
	if !original.IsManual && !req.AllowSystem {
		return nil, fmt.Errorf("%w: %s is system-generated", ErrNotReversible, entryID)
	}

	originalLines, err := s.journalRepo.FindLinesByEntryID(ctx, entryID)
	if err != nil {
		logger.Error("Failed to fetch lines for reversal", slog.String("entry_id", entryID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to retrieve lines: %w", err)
	}

	if !req.CascadeUnsettle {
		for _, line := range originalLines {
			remaining, err := s.settlementSvc.Remaining(ctx, line.LineID)
			if err != nil {
				return nil, fmt.Errorf("failed to check settlement state of line %s: %w", line.LineID, err)
			}
			if remaining.Cmp(line.Amount) != 0 {
				return nil, fmt.Errorf("%w: line %s", apperrors.ErrSettledLinesPresent, line.LineID)
			}
		}
	}

	now := time.Now().UTC()
	reversingID := uuid.NewString()

	reversing := domain.JournalEntry{
		EntryID:           reversingID,
		Memo:              fmt.Sprintf("Reversal of: %s", original.Memo),
		IsManual:          original.IsManual,
		Status:            domain.Posted,
		ReversalOfEntryID: &original.EntryID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	reversingLines := make([]domain.JournalLine, len(originalLines))
	for i, orig := range originalLines {
		reversingLines[i] = domain.JournalLine{
			LineID:     uuid.NewString(),
			EntryID:    reversingID,
			AccountID:  orig.AccountID,
			Side:       orig.Side.Opposite(),
			Amount:     orig.Amount,
			Party:      orig.Party,
			Subject:    orig.Subject,
			PropertyID: orig.PropertyID,
			UnitID:     orig.UnitID,
			CreatedAt:  now,
		}
	}

	if err := s.journalRepo.SaveReversalEntry(ctx, reversing, reversingLines, original.EntryID, req.CascadeUnsettle); err != nil {
		logger.Error("Failed to save reversing entry", slog.String("entry_id", entryID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save reversing entry: %w", err)
	}

	logger.Info("Entry reversed", slog.String("entry_id", entryID), slog.String("reversing_entry_id", reversingID), slog.Bool("cascade_unsettle", req.CascadeUnsettle))
	reversing.Lines = reversingLines
	return &reversing, nil
}

// uniqueStrings returns a slice containing only the unique strings from the input.
func uniqueStrings(input []string) []string {
	seen := make(map[string]struct{}, len(input))
	result := make([]string, 0, len(input))
	for _, str := range input {
		if _, ok := seen[str]; !ok {
			seen[str] = struct{}{}
			result = append(result, str)
		}
	}
	return result
}
