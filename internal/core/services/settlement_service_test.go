package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/aqarfin/estate_ledger/internal/apperrors"
	"github.com/aqarfin/estate_ledger/internal/core/domain"
	portssvc "github.com/aqarfin/estate_ledger/internal/core/ports/services"
	"github.com/aqarfin/estate_ledger/internal/core/services"
	"github.com/aqarfin/estate_ledger/internal/dto"
)

type SettlementServiceTestSuite struct {
	suite.Suite
	mockJournalRepo    *MockJournalRepository
	mockAccountRepo    *MockAccountRepository
	mockSettlementRepo *MockSettlementRepository
	service            portssvc.SettlementSvcFacade
	receivable         domain.Account
	payableAcct        domain.Account
	userID             string
	baseTime           time.Time
}

func (suite *SettlementServiceTestSuite) SetupTest() {
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockSettlementRepo = new(MockSettlementRepository)
	suite.service = services.NewSettlementService(suite.mockJournalRepo, suite.mockAccountRepo, suite.mockSettlementRepo)

	suite.userID = uuid.NewString()
	suite.baseTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	suite.receivable = domain.Account{
		AccountID:  uuid.NewString(),
		Code:       "1200",
		Name:       "Rent Receivable",
		NormalSide: domain.Debit,
		IsActive:   true,
	}
	suite.payableAcct = domain.Account{
		AccountID:  uuid.NewString(),
		Code:       "2100",
		Name:       "Owner Payable",
		NormalSide: domain.Credit,
		IsActive:   true,
	}
}

func (suite *SettlementServiceTestSuite) line(accountID string, side domain.Side, minor int64, offset time.Duration) *domain.JournalLine {
	return &domain.JournalLine{
		LineID:    uuid.NewString(),
		EntryID:   uuid.NewString(),
		AccountID: accountID,
		Side:      side,
		Amount:    domain.NewMoney(minor),
		CreatedAt: suite.baseTime.Add(offset),
	}
}

func (suite *SettlementServiceTestSuite) expectEntryStatus(ctx context.Context, entryID string, status domain.EntryStatus) {
	suite.mockJournalRepo.On("FindEntryByID", ctx, entryID).
		Return(&domain.JournalEntry{EntryID: entryID, Status: status}, nil).Once()
}

func (suite *SettlementServiceTestSuite) sums(pairs map[string]int64) map[string]domain.Money {
	m := make(map[string]domain.Money, len(pairs))
	for id, v := range pairs {
		m[id] = domain.NewMoney(v)
	}
	return m
}

func (suite *SettlementServiceTestSuite) TestMatchSettlement_FullMatch() {
	ctx := context.Background()
	payable := suite.line(suite.receivable.AccountID, domain.Debit, 500000, 0)
	settling := suite.line(suite.receivable.AccountID, domain.Credit, 500000, time.Hour)

	suite.mockJournalRepo.On("FindLineByID", ctx, payable.LineID).Return(payable, nil).Once()
	suite.mockJournalRepo.On("FindLineByID", ctx, settling.LineID).Return(settling, nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.receivable.AccountID).Return(&suite.receivable, nil).Once()
	suite.expectEntryStatus(ctx, payable.EntryID, domain.Posted)
	suite.expectEntryStatus(ctx, settling.EntryID, domain.Posted)
	suite.mockSettlementRepo.On("SumMatchedForLines", ctx, []string{payable.LineID, settling.LineID}).
		Return(suite.sums(map[string]int64{payable.LineID: 0, settling.LineID: 0}), nil).Once()
	suite.mockSettlementRepo.On("CreateAllocation", ctx, mock.MatchedBy(func(a domain.SettlementAllocation) bool {
		return a.PayableLineID == payable.LineID &&
			a.SettlingLineID == settling.LineID &&
			a.AmountMatched == domain.NewMoney(500000)
	})).Return(nil).Once()

	alloc, err := suite.service.MatchSettlement(ctx, dto.MatchSettlementRequest{
		PayableLineID:  payable.LineID,
		SettlingLineID: settling.LineID,
	}, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(alloc)
	suite.Equal(domain.NewMoney(500000), alloc.AmountMatched)
	suite.mockSettlementRepo.AssertExpectations(suite.T())
}

func (suite *SettlementServiceTestSuite) TestMatchSettlement_PartialDefaultsToSmallerRemaining() {
	ctx := context.Background()
	payable := suite.line(suite.receivable.AccountID, domain.Debit, 500000, 0)
	settling := suite.line(suite.receivable.AccountID, domain.Credit, 200000, time.Hour)

	suite.mockJournalRepo.On("FindLineByID", ctx, payable.LineID).Return(payable, nil).Once()
	suite.mockJournalRepo.On("FindLineByID", ctx, settling.LineID).Return(settling, nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.receivable.AccountID).Return(&suite.receivable, nil).Once()
	suite.expectEntryStatus(ctx, payable.EntryID, domain.Posted)
	suite.expectEntryStatus(ctx, settling.EntryID, domain.Posted)
	suite.mockSettlementRepo.On("SumMatchedForLines", ctx, mock.Anything).
		Return(suite.sums(map[string]int64{payable.LineID: 100000, settling.LineID: 0}), nil).Once()
	suite.mockSettlementRepo.On("CreateAllocation", ctx, mock.MatchedBy(func(a domain.SettlementAllocation) bool {
		return a.AmountMatched == domain.NewMoney(200000)
	})).Return(nil).Once()

	alloc, err := suite.service.MatchSettlement(ctx, dto.MatchSettlementRequest{
		PayableLineID:  payable.LineID,
		SettlingLineID: settling.LineID,
	}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.NewMoney(200000), alloc.AmountMatched)
}

func (suite *SettlementServiceTestSuite) TestMatchSettlement_RequestedAmountExceedsRemaining() {
	ctx := context.Background()
	payable := suite.line(suite.receivable.AccountID, domain.Debit, 500000, 0)
	settling := suite.line(suite.receivable.AccountID, domain.Credit, 500000, time.Hour)

	suite.mockJournalRepo.On("FindLineByID", ctx, payable.LineID).Return(payable, nil).Once()
	suite.mockJournalRepo.On("FindLineByID", ctx, settling.LineID).Return(settling, nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.receivable.AccountID).Return(&suite.receivable, nil).Once()
	suite.expectEntryStatus(ctx, payable.EntryID, domain.Posted)
	suite.expectEntryStatus(ctx, settling.EntryID, domain.Posted)
	suite.mockSettlementRepo.On("SumMatchedForLines", ctx, mock.Anything).
		Return(suite.sums(map[string]int64{payable.LineID: 400000, settling.LineID: 0}), nil).Once()

	amount := decimal.RequireFromString("200")
	_, err := suite.service.MatchSettlement(ctx, dto.MatchSettlementRequest{
		PayableLineID:  payable.LineID,
		SettlingLineID: settling.LineID,
		Amount:         &amount,
	}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrExceedsRemaining)
	suite.mockSettlementRepo.AssertNotCalled(suite.T(), "CreateAllocation", mock.Anything, mock.Anything)
}

func (suite *SettlementServiceTestSuite) TestMatchSettlement_DifferentAccountsIncompatible() {
	ctx := context.Background()
	payable := suite.line(suite.receivable.AccountID, domain.Debit, 100000, 0)
	settling := suite.line(suite.payableAcct.AccountID, domain.Credit, 100000, time.Hour)

	suite.mockJournalRepo.On("FindLineByID", ctx, payable.LineID).Return(payable, nil).Once()
	suite.mockJournalRepo.On("FindLineByID", ctx, settling.LineID).Return(settling, nil).Once()

	_, err := suite.service.MatchSettlement(ctx, dto.MatchSettlementRequest{
		PayableLineID:  payable.LineID,
		SettlingLineID: settling.LineID,
	}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrIncompatibleAccounts)
}

func (suite *SettlementServiceTestSuite) TestMatchSettlement_SameSideIncompatible() {
	ctx := context.Background()
	payable := suite.line(suite.receivable.AccountID, domain.Debit, 100000, 0)
	settling := suite.line(suite.receivable.AccountID, domain.Debit, 100000, time.Hour)

	suite.mockJournalRepo.On("FindLineByID", ctx, payable.LineID).Return(payable, nil).Once()
	suite.mockJournalRepo.On("FindLineByID", ctx, settling.LineID).Return(settling, nil).Once()

	_, err := suite.service.MatchSettlement(ctx, dto.MatchSettlementRequest{
		PayableLineID:  payable.LineID,
		SettlingLineID: settling.LineID,
	}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrIncompatibleAccounts)
}

func (suite *SettlementServiceTestSuite) TestMatchSettlement_PayableMustBeOnNormalSide() {
	ctx := context.Background()
	// The off-normal-side line cannot take the payable role.
	payable := suite.line(suite.receivable.AccountID, domain.Credit, 100000, 0)
	settling := suite.line(suite.receivable.AccountID, domain.Debit, 100000, time.Hour)

	suite.mockJournalRepo.On("FindLineByID", ctx, payable.LineID).Return(payable, nil).Once()
	suite.mockJournalRepo.On("FindLineByID", ctx, settling.LineID).Return(settling, nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.receivable.AccountID).Return(&suite.receivable, nil).Once()

	_, err := suite.service.MatchSettlement(ctx, dto.MatchSettlementRequest{
		PayableLineID:  payable.LineID,
		SettlingLineID: settling.LineID,
	}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrIncompatibleAccounts)
}

func (suite *SettlementServiceTestSuite) TestMatchSettlement_SelfSettlementRefused() {
	ctx := context.Background()
	lineID := uuid.NewString()

	_, err := suite.service.MatchSettlement(ctx, dto.MatchSettlementRequest{
		PayableLineID:  lineID,
		SettlingLineID: lineID,
	}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *SettlementServiceTestSuite) TestMatchSettlement_FullySettledPayableRefused() {
	ctx := context.Background()
	payable := suite.line(suite.receivable.AccountID, domain.Debit, 500000, 0)
	settling := suite.line(suite.receivable.AccountID, domain.Credit, 500000, time.Hour)

	suite.mockJournalRepo.On("FindLineByID", ctx, payable.LineID).Return(payable, nil).Once()
	suite.mockJournalRepo.On("FindLineByID", ctx, settling.LineID).Return(settling, nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.receivable.AccountID).Return(&suite.receivable, nil).Once()
	suite.expectEntryStatus(ctx, payable.EntryID, domain.Posted)
	suite.expectEntryStatus(ctx, settling.EntryID, domain.Posted)
	suite.mockSettlementRepo.On("SumMatchedForLines", ctx, mock.Anything).
		Return(suite.sums(map[string]int64{payable.LineID: 500000, settling.LineID: 0}), nil).Once()

	_, err := suite.service.MatchSettlement(ctx, dto.MatchSettlementRequest{
		PayableLineID:  payable.LineID,
		SettlingLineID: settling.LineID,
	}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrAlreadySettled)
}

// After a cascade-unsettle reversal the original lines reopen, but their
// entry is REVERSED and nets to zero; re-allocating against them is refused.
func (suite *SettlementServiceTestSuite) TestMatchSettlement_ReversedEntryLineRefused() {
	ctx := context.Background()
	payable := suite.line(suite.receivable.AccountID, domain.Debit, 500000, 0)
	settling := suite.line(suite.receivable.AccountID, domain.Credit, 500000, time.Hour)

	suite.mockJournalRepo.On("FindLineByID", ctx, payable.LineID).Return(payable, nil).Once()
	suite.mockJournalRepo.On("FindLineByID", ctx, settling.LineID).Return(settling, nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.receivable.AccountID).Return(&suite.receivable, nil).Once()
	suite.expectEntryStatus(ctx, payable.EntryID, domain.Reversed)

	_, err := suite.service.MatchSettlement(ctx, dto.MatchSettlementRequest{
		PayableLineID:  payable.LineID,
		SettlingLineID: settling.LineID,
	}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockSettlementRepo.AssertNotCalled(suite.T(), "CreateAllocation", mock.Anything, mock.Anything)
}

func (suite *SettlementServiceTestSuite) TestMatchSettlement_ReversedSettlingEntryRefused() {
	ctx := context.Background()
	payable := suite.line(suite.receivable.AccountID, domain.Debit, 500000, 0)
	settling := suite.line(suite.receivable.AccountID, domain.Credit, 500000, time.Hour)

	suite.mockJournalRepo.On("FindLineByID", ctx, payable.LineID).Return(payable, nil).Once()
	suite.mockJournalRepo.On("FindLineByID", ctx, settling.LineID).Return(settling, nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.receivable.AccountID).Return(&suite.receivable, nil).Once()
	suite.expectEntryStatus(ctx, payable.EntryID, domain.Posted)
	suite.expectEntryStatus(ctx, settling.EntryID, domain.Reversed)

	_, err := suite.service.MatchSettlement(ctx, dto.MatchSettlementRequest{
		PayableLineID:  payable.LineID,
		SettlingLineID: settling.LineID,
	}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockSettlementRepo.AssertNotCalled(suite.T(), "CreateAllocation", mock.Anything, mock.Anything)
}

// --- AutoMatch ---

func (suite *SettlementServiceTestSuite) TestAutoMatch_NoSubjectIsNoOp() {
	ctx := context.Background()
	line := suite.line(suite.receivable.AccountID, domain.Debit, 100000, 0)

	suite.mockJournalRepo.On("FindLineByID", ctx, line.LineID).Return(line, nil).Once()

	allocs, err := suite.service.AutoMatch(ctx, line.LineID, suite.userID)

	suite.Require().NoError(err)
	suite.Empty(allocs)
	suite.mockSettlementRepo.AssertNotCalled(suite.T(), "FindOpenCounterpartLines", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *SettlementServiceTestSuite) TestAutoMatch_MaintenanceSubjectIsNoOp() {
	ctx := context.Background()
	line := suite.line(suite.receivable.AccountID, domain.Debit, 100000, 0)
	line.Subject = &domain.SubjectRef{Kind: domain.SubjectMaintenance, ID: uuid.NewString()}

	suite.mockJournalRepo.On("FindLineByID", ctx, line.LineID).Return(line, nil).Once()

	allocs, err := suite.service.AutoMatch(ctx, line.LineID, suite.userID)

	suite.Require().NoError(err)
	suite.Empty(allocs)
}

// A payment line settles open invoices against the same subject oldest first.
func (suite *SettlementServiceTestSuite) TestAutoMatch_SettlingLineConsumesPayablesOldestFirst() {
	ctx := context.Background()
	invoiceID := uuid.NewString()
	subject := domain.SubjectRef{Kind: domain.SubjectInvoice, ID: invoiceID}

	settling := suite.line(suite.receivable.AccountID, domain.Credit, 700000, 2*time.Hour)
	settling.Subject = &subject

	older := suite.line(suite.receivable.AccountID, domain.Debit, 500000, 0)
	older.Subject = &subject
	newer := suite.line(suite.receivable.AccountID, domain.Debit, 400000, time.Hour)
	newer.Subject = &subject

	suite.mockJournalRepo.On("FindLineByID", ctx, settling.LineID).Return(settling, nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.receivable.AccountID).Return(&suite.receivable, nil).Once()
	// Candidates arrive in arbitrary order; the matcher must sort them.
	suite.mockSettlementRepo.On("FindOpenCounterpartLines", ctx, subject, suite.receivable.AccountID, domain.Debit).
		Return([]domain.JournalLine{*newer, *older}, nil).Once()
	suite.mockSettlementRepo.On("SumMatchedForLines", ctx, mock.Anything).
		Return(suite.sums(map[string]int64{settling.LineID: 0, older.LineID: 0, newer.LineID: 0}), nil).Once()
	suite.mockSettlementRepo.On("CreateAllocation", ctx, mock.AnythingOfType("domain.SettlementAllocation")).Return(nil).Twice()

	allocs, err := suite.service.AutoMatch(ctx, settling.LineID, suite.userID)

	suite.Require().NoError(err)
	suite.Require().Len(allocs, 2)
	// Oldest payable absorbed in full first, the rest goes to the newer one.
	suite.Equal(older.LineID, allocs[0].PayableLineID)
	suite.Equal(domain.NewMoney(500000), allocs[0].AmountMatched)
	suite.Equal(newer.LineID, allocs[1].PayableLineID)
	suite.Equal(domain.NewMoney(200000), allocs[1].AmountMatched)
	for _, a := range allocs {
		suite.Equal(settling.LineID, a.SettlingLineID)
	}
}

// An invoice line draws from open payments largest remaining first.
func (suite *SettlementServiceTestSuite) TestAutoMatch_PayableLineDrawsLargestRemainingFirst() {
	ctx := context.Background()
	paymentID := uuid.NewString()
	subject := domain.SubjectRef{Kind: domain.SubjectPayment, ID: paymentID}

	payable := suite.line(suite.receivable.AccountID, domain.Debit, 600000, 2*time.Hour)
	payable.Subject = &subject

	small := suite.line(suite.receivable.AccountID, domain.Credit, 200000, 0)
	small.Subject = &subject
	large := suite.line(suite.receivable.AccountID, domain.Credit, 500000, time.Hour)
	large.Subject = &subject

	suite.mockJournalRepo.On("FindLineByID", ctx, payable.LineID).Return(payable, nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.receivable.AccountID).Return(&suite.receivable, nil).Once()
	suite.mockSettlementRepo.On("FindOpenCounterpartLines", ctx, subject, suite.receivable.AccountID, domain.Credit).
		Return([]domain.JournalLine{*small, *large}, nil).Once()
	suite.mockSettlementRepo.On("SumMatchedForLines", ctx, mock.Anything).
		Return(suite.sums(map[string]int64{payable.LineID: 0, small.LineID: 0, large.LineID: 0}), nil).Once()
	suite.mockSettlementRepo.On("CreateAllocation", ctx, mock.AnythingOfType("domain.SettlementAllocation")).Return(nil).Twice()

	allocs, err := suite.service.AutoMatch(ctx, payable.LineID, suite.userID)

	suite.Require().NoError(err)
	suite.Require().Len(allocs, 2)
	suite.Equal(large.LineID, allocs[0].SettlingLineID)
	suite.Equal(domain.NewMoney(500000), allocs[0].AmountMatched)
	suite.Equal(small.LineID, allocs[1].SettlingLineID)
	suite.Equal(domain.NewMoney(100000), allocs[1].AmountMatched)
	for _, a := range allocs {
		suite.Equal(payable.LineID, a.PayableLineID)
	}
}

func (suite *SettlementServiceTestSuite) TestAutoMatch_StopsWhenLineExhausted() {
	ctx := context.Background()
	subject := domain.SubjectRef{Kind: domain.SubjectInvoice, ID: uuid.NewString()}

	settling := suite.line(suite.receivable.AccountID, domain.Credit, 300000, 2*time.Hour)
	settling.Subject = &subject
	first := suite.line(suite.receivable.AccountID, domain.Debit, 300000, 0)
	first.Subject = &subject
	second := suite.line(suite.receivable.AccountID, domain.Debit, 400000, time.Hour)
	second.Subject = &subject

	suite.mockJournalRepo.On("FindLineByID", ctx, settling.LineID).Return(settling, nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.receivable.AccountID).Return(&suite.receivable, nil).Once()
	suite.mockSettlementRepo.On("FindOpenCounterpartLines", ctx, subject, suite.receivable.AccountID, domain.Debit).
		Return([]domain.JournalLine{*first, *second}, nil).Once()
	suite.mockSettlementRepo.On("SumMatchedForLines", ctx, mock.Anything).
		Return(suite.sums(map[string]int64{settling.LineID: 0, first.LineID: 0, second.LineID: 0}), nil).Once()
	suite.mockSettlementRepo.On("CreateAllocation", ctx, mock.Anything).Return(nil).Once()

	allocs, err := suite.service.AutoMatch(ctx, settling.LineID, suite.userID)

	suite.Require().NoError(err)
	suite.Require().Len(allocs, 1)
	suite.Equal(first.LineID, allocs[0].PayableLineID)
	suite.Equal(domain.NewMoney(300000), allocs[0].AmountMatched)
}

func (suite *SettlementServiceTestSuite) TestAutoMatch_NoCandidates() {
	ctx := context.Background()
	subject := domain.SubjectRef{Kind: domain.SubjectInvoice, ID: uuid.NewString()}
	line := suite.line(suite.receivable.AccountID, domain.Credit, 100000, 0)
	line.Subject = &subject

	suite.mockJournalRepo.On("FindLineByID", ctx, line.LineID).Return(line, nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.receivable.AccountID).Return(&suite.receivable, nil).Once()
	suite.mockSettlementRepo.On("FindOpenCounterpartLines", ctx, subject, suite.receivable.AccountID, domain.Debit).
		Return([]domain.JournalLine{}, nil).Once()

	allocs, err := suite.service.AutoMatch(ctx, line.LineID, suite.userID)

	suite.Require().NoError(err)
	suite.Empty(allocs)
}

// --- Summaries ---

func (suite *SettlementServiceTestSuite) TestSettlementSummary() {
	ctx := context.Background()
	line := suite.line(suite.receivable.AccountID, domain.Debit, 500000, 0)

	suite.mockJournalRepo.On("FindLineByID", ctx, line.LineID).Return(line, nil).Once()
	suite.mockSettlementRepo.On("SumMatchedForLines", ctx, []string{line.LineID}).
		Return(suite.sums(map[string]int64{line.LineID: 320000}), nil).Once()

	summary, err := suite.service.SettlementSummary(ctx, line.LineID)

	suite.Require().NoError(err)
	suite.Equal(domain.NewMoney(500000), summary.Total)
	suite.Equal(domain.NewMoney(320000), summary.Settled)
	suite.Equal(domain.NewMoney(180000), summary.Remaining)
	suite.Equal("64.00", summary.PercentSettled.StringFixed(2))
	suite.False(summary.IsSettled)
}

func (suite *SettlementServiceTestSuite) TestSettlementSummary_FullySettled() {
	ctx := context.Background()
	line := suite.line(suite.receivable.AccountID, domain.Debit, 250000, 0)

	suite.mockJournalRepo.On("FindLineByID", ctx, line.LineID).Return(line, nil).Once()
	suite.mockSettlementRepo.On("SumMatchedForLines", ctx, []string{line.LineID}).
		Return(suite.sums(map[string]int64{line.LineID: 250000}), nil).Once()

	summary, err := suite.service.SettlementSummary(ctx, line.LineID)

	suite.Require().NoError(err)
	suite.True(summary.IsSettled)
	suite.True(summary.Remaining.IsZero())
	suite.Equal("100.00", summary.PercentSettled.StringFixed(2))
}

func (suite *SettlementServiceTestSuite) TestRemaining() {
	ctx := context.Background()
	line := suite.line(suite.receivable.AccountID, domain.Debit, 120000, 0)

	suite.mockJournalRepo.On("FindLineByID", ctx, line.LineID).Return(line, nil).Once()
	suite.mockSettlementRepo.On("SumMatchedForLines", ctx, []string{line.LineID}).
		Return(suite.sums(map[string]int64{line.LineID: 45000}), nil).Once()

	remaining, err := suite.service.Remaining(ctx, line.LineID)

	suite.Require().NoError(err)
	suite.Equal(domain.NewMoney(75000), remaining)
}

// --- Unmatch / Void ---

func (suite *SettlementServiceTestSuite) TestUnmatchAllocation() {
	ctx := context.Background()
	alloc := &domain.SettlementAllocation{
		AllocationID:   uuid.NewString(),
		PayableLineID:  uuid.NewString(),
		SettlingLineID: uuid.NewString(),
		AmountMatched:  domain.NewMoney(100000),
	}

	suite.mockSettlementRepo.On("FindAllocationByID", ctx, alloc.AllocationID).Return(alloc, nil).Once()
	suite.mockSettlementRepo.On("DeleteAllocation", ctx, alloc.AllocationID).Return(nil).Once()

	err := suite.service.UnmatchAllocation(ctx, alloc.AllocationID, suite.userID)

	suite.Require().NoError(err)
	suite.mockSettlementRepo.AssertExpectations(suite.T())
}

func (suite *SettlementServiceTestSuite) TestVoidSettlements_OnlySettlingRoleAllocationsRemoved() {
	ctx := context.Background()
	line := suite.line(suite.receivable.AccountID, domain.Credit, 500000, 0)

	asSettling := domain.SettlementAllocation{
		AllocationID:   uuid.NewString(),
		PayableLineID:  uuid.NewString(),
		SettlingLineID: line.LineID,
		AmountMatched:  domain.NewMoney(200000),
	}
	asPayable := domain.SettlementAllocation{
		AllocationID:   uuid.NewString(),
		PayableLineID:  line.LineID,
		SettlingLineID: uuid.NewString(),
		AmountMatched:  domain.NewMoney(100000),
	}

	suite.mockJournalRepo.On("FindLineByID", ctx, line.LineID).Return(line, nil).Once()
	suite.mockSettlementRepo.On("FindAllocationsForLine", ctx, line.LineID).
		Return([]domain.SettlementAllocation{asSettling, asPayable}, nil).Once()
	suite.mockSettlementRepo.On("DeleteAllocation", ctx, asSettling.AllocationID).Return(nil).Once()

	err := suite.service.VoidSettlements(ctx, line.LineID, suite.userID)

	suite.Require().NoError(err)
	suite.mockSettlementRepo.AssertNotCalled(suite.T(), "DeleteAllocation", ctx, asPayable.AllocationID)
}

func TestSettlementServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SettlementServiceTestSuite))
}
