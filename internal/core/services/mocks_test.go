package services_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/aqarfin/estate_ledger/internal/core/domain"
	portsrepo "github.com/aqarfin/estate_ledger/internal/core/ports/repositories"
	portssvc "github.com/aqarfin/estate_ledger/internal/core/ports/services"
	"github.com/aqarfin/estate_ledger/internal/dto"
)

// --- Mock JournalRepository ---

type MockJournalRepository struct {
	mock.Mock
}

var _ portsrepo.JournalRepositoryFacade = (*MockJournalRepository)(nil)

func (m *MockJournalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) FindReversalOf(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalLine), args.Error(1)
}

func (m *MockJournalRepository) FindLineByID(ctx context.Context, lineID string) (*domain.JournalLine, error) {
	args := m.Called(ctx, lineID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalLine), args.Error(1)
}

func (m *MockJournalRepository) ListEntries(ctx context.Context, limit int, nextToken *string, includeReversals bool) ([]domain.JournalEntry, *string, error) {
	args := m.Called(ctx, limit, nextToken, includeReversals)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.JournalEntry), returnedNextToken, args.Error(2)
}

func (m *MockJournalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) error {
	args := m.Called(ctx, entry, lines)
	return args.Error(0)
}

func (m *MockJournalRepository) SaveReversalEntry(ctx context.Context, reversing domain.JournalEntry, lines []domain.JournalLine, originalEntryID string, cascadeUnsettle bool) error {
	args := m.Called(ctx, reversing, lines, originalEntryID, cascadeUnsettle)
	return args.Error(0)
}

func (m *MockJournalRepository) SumLedgerBefore(ctx context.Context, scope domain.Scope, before time.Time) (domain.Money, error) {
	args := m.Called(ctx, scope, before)
	return args.Get(0).(domain.Money), args.Error(1)
}

func (m *MockJournalRepository) FindLedgerLines(ctx context.Context, scope domain.Scope, r domain.DateRange) ([]domain.LedgerLine, error) {
	args := m.Called(ctx, scope, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerLine), args.Error(1)
}

func (m *MockJournalRepository) TrialBalanceRows(ctx context.Context, asOf time.Time) ([]domain.TrialBalanceRow, error) {
	args := m.Called(ctx, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TrialBalanceRow), args.Error(1)
}

// --- Mock AccountRepository ---

type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) HasPostedLines(ctx context.Context, accountID string) (bool, error) {
	args := m.Called(ctx, accountID)
	return args.Bool(0), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) DeleteAccount(ctx context.Context, accountID string) error {
	args := m.Called(ctx, accountID)
	return args.Error(0)
}

// --- Mock SettlementRepository ---

type MockSettlementRepository struct {
	mock.Mock
}

var _ portsrepo.SettlementRepositoryFacade = (*MockSettlementRepository)(nil)

func (m *MockSettlementRepository) FindAllocationByID(ctx context.Context, allocationID string) (*domain.SettlementAllocation, error) {
	args := m.Called(ctx, allocationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SettlementAllocation), args.Error(1)
}

func (m *MockSettlementRepository) FindAllocationsForLine(ctx context.Context, lineID string) ([]domain.SettlementAllocation, error) {
	args := m.Called(ctx, lineID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SettlementAllocation), args.Error(1)
}

func (m *MockSettlementRepository) SumMatchedForLines(ctx context.Context, lineIDs []string) (map[string]domain.Money, error) {
	args := m.Called(ctx, lineIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Money), args.Error(1)
}

func (m *MockSettlementRepository) FindOpenCounterpartLines(ctx context.Context, subject domain.SubjectRef, accountID string, side domain.Side) ([]domain.JournalLine, error) {
	args := m.Called(ctx, subject, accountID, side)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalLine), args.Error(1)
}

func (m *MockSettlementRepository) CreateAllocation(ctx context.Context, alloc domain.SettlementAllocation) error {
	args := m.Called(ctx, alloc)
	return args.Error(0)
}

func (m *MockSettlementRepository) DeleteAllocation(ctx context.Context, allocationID string) error {
	args := m.Called(ctx, allocationID)
	return args.Error(0)
}

func (m *MockSettlementRepository) DeleteAllocationsForLines(ctx context.Context, lineIDs []string) error {
	args := m.Called(ctx, lineIDs)
	return args.Error(0)
}

// --- Mock AccountService (as used by JournalService) ---

type MockAccountService struct {
	mock.Mock
}

var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

func (m *MockAccountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) GetAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) GetAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountService) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorID string) (*domain.Account, error) {
	args := m.Called(ctx, req, creatorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, updaterID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID, req, updaterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) DeleteAccount(ctx context.Context, accountID string, deleterID string) error {
	args := m.Called(ctx, accountID, deleterID)
	return args.Error(0)
}

// --- Mock SettlementService (as used by JournalService) ---

type MockSettlementService struct {
	mock.Mock
}

var _ portssvc.SettlementSvcFacade = (*MockSettlementService)(nil)

func (m *MockSettlementService) Remaining(ctx context.Context, lineID string) (domain.Money, error) {
	args := m.Called(ctx, lineID)
	return args.Get(0).(domain.Money), args.Error(1)
}

func (m *MockSettlementService) SettlementSummary(ctx context.Context, lineID string) (*domain.SettlementSummary, error) {
	args := m.Called(ctx, lineID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SettlementSummary), args.Error(1)
}

func (m *MockSettlementService) AllocationsForLine(ctx context.Context, lineID string) ([]domain.SettlementAllocation, error) {
	args := m.Called(ctx, lineID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SettlementAllocation), args.Error(1)
}

func (m *MockSettlementService) MatchSettlement(ctx context.Context, req dto.MatchSettlementRequest, actorID string) (*domain.SettlementAllocation, error) {
	args := m.Called(ctx, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SettlementAllocation), args.Error(1)
}

func (m *MockSettlementService) AutoMatch(ctx context.Context, newLineID string, actorID string) ([]domain.SettlementAllocation, error) {
	args := m.Called(ctx, newLineID, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SettlementAllocation), args.Error(1)
}

func (m *MockSettlementService) UnmatchAllocation(ctx context.Context, allocationID string, actorID string) error {
	args := m.Called(ctx, allocationID, actorID)
	return args.Error(0)
}

func (m *MockSettlementService) VoidSettlements(ctx context.Context, settlingLineID string, actorID string) error {
	args := m.Called(ctx, settlingLineID, actorID)
	return args.Error(0)
}

// --- Mock LedgerService (as used by PettyCashService) ---

type MockLedgerService struct {
	mock.Mock
}

var _ portssvc.LedgerSvcFacade = (*MockLedgerService)(nil)

func (m *MockLedgerService) QueryLedger(ctx context.Context, scope domain.Scope, r domain.DateRange) (*domain.LedgerResult, error) {
	args := m.Called(ctx, scope, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerResult), args.Error(1)
}

func (m *MockLedgerService) Statement(ctx context.Context, party domain.PartyRef, r domain.DateRange) (*domain.LedgerResult, error) {
	args := m.Called(ctx, party, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerResult), args.Error(1)
}

func (m *MockLedgerService) TrialBalance(ctx context.Context, asOf time.Time) ([]domain.TrialBalanceRow, error) {
	args := m.Called(ctx, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TrialBalanceRow), args.Error(1)
}
