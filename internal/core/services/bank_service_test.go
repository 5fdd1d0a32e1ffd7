package services_test

import (
	"context"
	"testing"

	"github.com/devjsik/exchange_rate_app/internal/apperrors"
	"github.com/devjsik/exchange_rate_app/internal/core/domain"
	"github.com/devjsik/exchange_rate_app/internal/core/services"
	"github.com/devjsik/exchange_rate_app/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type BankServiceTestSuite struct {
	suite.Suite
	mockBankRepo *MockBankRepository
	service      *services.BankService
}

func (suite *BankServiceTestSuite) SetupTest() {
	suite.mockBankRepo = new(MockBankRepository)
	suite.service = services.NewBankService(suite.mockBankRepo)
}

func validCreateRequest() dto.CreateBankRequest {
	return dto.CreateBankRequest{
		Name:             "Test Bank",
		Code:             "TB",
		SpreadRate:       dec("1"),
		PreferentialRate: dec("50"),
		FixedFee:         dec("1000"),
		FeeRate:          dec("0.1"),
		MinAmount:        dec("1"),
		MaxAmount:        dec("10000000"),
	}
}

func (suite *BankServiceTestSuite) TestGetBankByCode_NormalizesInput() {
	ctx := context.Background()
	suite.mockBankRepo.On("FindBankByCode", ctx, "TB").Return(testBank(), nil).Once()

	bank, err := suite.service.GetBankByCode(ctx, "  tb ")

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "TB", bank.Code)
}

func (suite *BankServiceTestSuite) TestGetBankByCode_EmptyCode() {
	_, err := suite.service.GetBankByCode(context.Background(), "   ")
	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
}

func (suite *BankServiceTestSuite) TestCreateBank_Success() {
	ctx := context.Background()
	suite.mockBankRepo.On("SaveBank", ctx, mock.MatchedBy(func(bank domain.BankPricingProfile) bool {
		return bank.Code == "TB" && bank.IsActive && bank.BankID != "" && bank.CreatedBy == "admin-1"
	})).Return(nil).Once()

	bank, err := suite.service.CreateBank(ctx, validCreateRequest(), "admin-1")

	require.NoError(suite.T(), err)
	assert.True(suite.T(), bank.IsActive)
	suite.mockBankRepo.AssertExpectations(suite.T())
}

func (suite *BankServiceTestSuite) TestCreateBank_RejectsOutOfRangeRates() {
	ctx := context.Background()

	req := validCreateRequest()
	req.SpreadRate = dec("11")
	_, err := suite.service.CreateBank(ctx, req, "admin-1")
	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)

	req = validCreateRequest()
	req.PreferentialRate = dec("101")
	_, err = suite.service.CreateBank(ctx, req, "admin-1")
	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)

	req = validCreateRequest()
	req.FeeRate = dec("6")
	_, err = suite.service.CreateBank(ctx, req, "admin-1")
	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)

	req = validCreateRequest()
	req.MaxAmount = req.MinAmount
	_, err = suite.service.CreateBank(ctx, req, "admin-1")
	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)

	suite.mockBankRepo.AssertNotCalled(suite.T(), "SaveBank", mock.Anything, mock.Anything)
}

func (suite *BankServiceTestSuite) TestCreateBank_DuplicateCode() {
	ctx := context.Background()
	suite.mockBankRepo.On("SaveBank", ctx, mock.Anything).Return(apperrors.ErrDuplicate).Once()

	_, err := suite.service.CreateBank(ctx, validCreateRequest(), "admin-1")

	assert.ErrorIs(suite.T(), err, apperrors.ErrDuplicate)
}

func (suite *BankServiceTestSuite) TestUpdateBank_PartialUpdate() {
	ctx := context.Background()
	suite.mockBankRepo.On("FindBankByCode", ctx, "TB").Return(testBank(), nil).Once()

	newSpread := dec("2")
	suite.mockBankRepo.On("UpdateBank", ctx, mock.MatchedBy(func(bank domain.BankPricingProfile) bool {
		// Only the spread changes; untouched fields keep their stored values
		return bank.SpreadRate.Equal(newSpread) &&
			bank.Name == "Test Bank" &&
			bank.LastUpdatedBy == "admin-2"
	})).Return(nil).Once()

	bank, err := suite.service.UpdateBank(ctx, "TB", dto.UpdateBankRequest{SpreadRate: &newSpread}, "admin-2")

	require.NoError(suite.T(), err)
	assert.True(suite.T(), bank.SpreadRate.Equal(newSpread))
	suite.mockBankRepo.AssertExpectations(suite.T())
}

func (suite *BankServiceTestSuite) TestUpdateBank_RevalidatesProfile() {
	ctx := context.Background()
	suite.mockBankRepo.On("FindBankByCode", ctx, "TB").Return(testBank(), nil).Once()

	badSpread := dec("99")
	_, err := suite.service.UpdateBank(ctx, "TB", dto.UpdateBankRequest{SpreadRate: &badSpread}, "admin-2")

	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
	suite.mockBankRepo.AssertNotCalled(suite.T(), "UpdateBank", mock.Anything, mock.Anything)
}

func (suite *BankServiceTestSuite) TestUpdateBank_NotFound() {
	ctx := context.Background()
	suite.mockBankRepo.On("FindBankByCode", ctx, "NB").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.UpdateBank(ctx, "NB", dto.UpdateBankRequest{}, "admin-2")

	assert.ErrorIs(suite.T(), err, apperrors.ErrNotFound)
}

func (suite *BankServiceTestSuite) TestListActiveBanks() {
	ctx := context.Background()
	banks := []domain.BankPricingProfile{*testBank()}
	suite.mockBankRepo.On("ListActiveBanks", ctx).Return(banks, nil).Once()

	got, err := suite.service.ListActiveBanks(ctx)

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), banks, got)
}

func TestBankServiceTestSuite(t *testing.T) {
	suite.Run(t, new(BankServiceTestSuite))
}
