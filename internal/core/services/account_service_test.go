package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/aqarfin/estate_ledger/internal/apperrors"
	"github.com/aqarfin/estate_ledger/internal/core/domain"
	portssvc "github.com/aqarfin/estate_ledger/internal/core/ports/services"
	"github.com/aqarfin/estate_ledger/internal/core/services"
	"github.com/aqarfin/estate_ledger/internal/dto"
)

type AccountServiceTestSuite struct {
	suite.Suite
	mockAccountRepo *MockAccountRepository
	service         portssvc.AccountSvcFacade
	actorID         string
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.service = services.NewAccountService(suite.mockAccountRepo)
	suite.actorID = uuid.NewString()
}

func (suite *AccountServiceTestSuite) TestCreateAccount_Success() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{Code: "1150", Name: "Petty Cash", NormalSide: domain.Debit}

	suite.mockAccountRepo.On("FindAccountByCode", ctx, "1150").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockAccountRepo.On("SaveAccount", ctx, mock.MatchedBy(func(a domain.Account) bool {
		return a.Code == "1150" &&
			a.Name == "Petty Cash" &&
			a.NormalSide == domain.Debit &&
			a.IsActive &&
			a.CreatedBy == suite.actorID
	})).Return(nil).Once()

	account, err := suite.service.CreateAccount(ctx, req, suite.actorID)

	suite.Require().NoError(err)
	suite.NotEmpty(account.AccountID)
	suite.True(account.IsActive)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_CodeTaken() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{Code: "1100", Name: "Cash", NormalSide: domain.Debit}
	existing := &domain.Account{AccountID: uuid.NewString(), Code: "1100", Name: "Cash on Hand", NormalSide: domain.Debit}

	suite.mockAccountRepo.On("FindAccountByCode", ctx, "1100").Return(existing, nil).Once()

	_, err := suite.service.CreateAccount(ctx, req, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrAccountCodeTaken)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_InvalidNormalSide() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{Code: "9999", Name: "Suspense", NormalSide: domain.Side("SIDEWAYS")}

	_, err := suite.service.CreateAccount(ctx, req, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "FindAccountByCode", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_MissingCode() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{Name: "Nameless", NormalSide: domain.Credit}

	_, err := suite.service.CreateAccount(ctx, req, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_PartialFields() {
	ctx := context.Background()
	accountID := uuid.NewString()
	existing := &domain.Account{
		AccountID:  accountID,
		Code:       "2100",
		Name:       "Owner Payable",
		NormalSide: domain.Credit,
		IsActive:   true,
	}
	newName := "Owner Payables"

	suite.mockAccountRepo.On("FindAccountByID", ctx, accountID).Return(existing, nil).Once()
	suite.mockAccountRepo.On("UpdateAccount", ctx, mock.MatchedBy(func(a domain.Account) bool {
		return a.AccountID == accountID &&
			a.Name == newName &&
			a.IsActive &&
			a.LastUpdatedBy == suite.actorID
	})).Return(nil).Once()

	account, err := suite.service.UpdateAccount(ctx, accountID, dto.UpdateAccountRequest{Name: &newName}, suite.actorID)

	suite.Require().NoError(err)
	suite.Equal(newName, account.Name)
	suite.Equal("2100", account.Code)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_NoChangeSkipsWrite() {
	ctx := context.Background()
	accountID := uuid.NewString()
	existing := &domain.Account{AccountID: accountID, Code: "2100", Name: "Owner Payable", NormalSide: domain.Credit, IsActive: true}
	sameName := "Owner Payable"

	suite.mockAccountRepo.On("FindAccountByID", ctx, accountID).Return(existing, nil).Once()

	account, err := suite.service.UpdateAccount(ctx, accountID, dto.UpdateAccountRequest{Name: &sameName}, suite.actorID)

	suite.Require().NoError(err)
	suite.Equal("Owner Payable", account.Name)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "UpdateAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_Deactivate() {
	ctx := context.Background()
	accountID := uuid.NewString()
	existing := &domain.Account{AccountID: accountID, Code: "4100", Name: "Rental Income", NormalSide: domain.Credit, IsActive: true}
	inactive := false

	suite.mockAccountRepo.On("FindAccountByID", ctx, accountID).Return(existing, nil).Once()
	suite.mockAccountRepo.On("UpdateAccount", ctx, mock.MatchedBy(func(a domain.Account) bool {
		return !a.IsActive
	})).Return(nil).Once()

	account, err := suite.service.UpdateAccount(ctx, accountID, dto.UpdateAccountRequest{IsActive: &inactive}, suite.actorID)

	suite.Require().NoError(err)
	suite.False(account.IsActive)
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_NotFound() {
	ctx := context.Background()
	accountID := uuid.NewString()
	name := "Anything"

	suite.mockAccountRepo.On("FindAccountByID", ctx, accountID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.UpdateAccount(ctx, accountID, dto.UpdateAccountRequest{Name: &name}, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *AccountServiceTestSuite) TestDeleteAccount_Success() {
	ctx := context.Background()
	accountID := uuid.NewString()
	existing := &domain.Account{AccountID: accountID, Code: "9100", Name: "Unused", NormalSide: domain.Debit}

	suite.mockAccountRepo.On("FindAccountByID", ctx, accountID).Return(existing, nil).Once()
	suite.mockAccountRepo.On("HasPostedLines", ctx, accountID).Return(false, nil).Once()
	suite.mockAccountRepo.On("DeleteAccount", ctx, accountID).Return(nil).Once()

	err := suite.service.DeleteAccount(ctx, accountID, suite.actorID)

	suite.Require().NoError(err)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestDeleteAccount_BlockedByPostedLines() {
	ctx := context.Background()
	accountID := uuid.NewString()
	existing := &domain.Account{AccountID: accountID, Code: "1200", Name: "Receivable", NormalSide: domain.Debit}

	suite.mockAccountRepo.On("FindAccountByID", ctx, accountID).Return(existing, nil).Once()
	suite.mockAccountRepo.On("HasPostedLines", ctx, accountID).Return(true, nil).Once()

	err := suite.service.DeleteAccount(ctx, accountID, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrAccountInUse)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "DeleteAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestGetAccountByCode() {
	ctx := context.Background()
	existing := &domain.Account{AccountID: uuid.NewString(), Code: "1150", Name: "Petty Cash", NormalSide: domain.Debit, IsActive: true}

	suite.mockAccountRepo.On("FindAccountByCode", ctx, "1150").Return(existing, nil).Once()

	account, err := suite.service.GetAccountByCode(ctx, "1150")

	suite.Require().NoError(err)
	suite.Equal(existing.AccountID, account.AccountID)
}

func (suite *AccountServiceTestSuite) TestListAccounts() {
	ctx := context.Background()
	now := time.Now().UTC()
	accounts := []domain.Account{
		{AccountID: uuid.NewString(), Code: "1100", Name: "Cash", NormalSide: domain.Debit, IsActive: true, AuditFields: domain.AuditFields{CreatedAt: now}},
		{AccountID: uuid.NewString(), Code: "2100", Name: "Owner Payable", NormalSide: domain.Credit, IsActive: true, AuditFields: domain.AuditFields{CreatedAt: now}},
	}

	suite.mockAccountRepo.On("ListAccounts", ctx).Return(accounts, nil).Once()

	got, err := suite.service.ListAccounts(ctx)

	suite.Require().NoError(err)
	suite.Len(got, 2)
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
