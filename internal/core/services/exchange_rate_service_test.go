package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/katehonz/baraba-sub001/internal/apperrors"
	"github.com/katehonz/baraba-sub001/internal/core/domain"
	portsrepo "github.com/katehonz/baraba-sub001/internal/core/ports/repositories"
	portssvc "github.com/katehonz/baraba-sub001/internal/core/ports/services"
	"github.com/katehonz/baraba-sub001/internal/core/services"
	"github.com/katehonz/baraba-sub001/internal/dto"
)

// --- Mock ExchangeRateRepository ---
type MockExchangeRateRepository struct {
	mock.Mock
}

var _ portsrepo.ExchangeRateRepositoryFacade = (*MockExchangeRateRepository)(nil)

func (m *MockExchangeRateRepository) RateFor(ctx context.Context, currencyCode string, onDate time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, currencyCode, onDate)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockExchangeRateRepository) SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) error {
	args := m.Called(ctx, rate)
	return args.Error(0)
}

func (m *MockExchangeRateRepository) ListRates(ctx context.Context, currencyCode string, limit int, nextToken *string) ([]domain.ExchangeRate, *string, error) {
	args := m.Called(ctx, currencyCode, limit, nextToken)
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	if args.Get(0) == nil {
		return nil, token, args.Error(2)
	}
	return args.Get(0).([]domain.ExchangeRate), token, args.Error(2)
}

// --- Test Suite Setup ---
type ExchangeRateServiceTestSuite struct {
	suite.Suite
	mockRateRepo *MockExchangeRateRepository
	service      portssvc.ExchangeRateSvcFacade
	userID       string
}

func (suite *ExchangeRateServiceTestSuite) SetupTest() {
	suite.mockRateRepo = new(MockExchangeRateRepository)
	suite.service = services.NewExchangeRateService(suite.mockRateRepo, "BGN")
	suite.userID = uuid.NewString()
}

func (suite *ExchangeRateServiceTestSuite) TestSaveRate_Success() {
	ctx := context.Background()
	req := dto.SaveExchangeRateRequest{
		CurrencyCode:  "usd",
		Rate:          decimal.RequireFromString("1.85"),
		DateEffective: time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
	}
	var saved domain.ExchangeRate

	suite.mockRateRepo.On("SaveExchangeRate", ctx, mock.AnythingOfType("domain.ExchangeRate")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(domain.ExchangeRate)
		}).Return(nil).Once()

	rate, err := suite.service.SaveRate(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal("USD", rate.CurrencyCode)
	suite.Equal("USD", saved.CurrencyCode)
	suite.True(saved.Rate.Equal(decimal.RequireFromString("1.85")))
	suite.NotEmpty(saved.ExchangeRateID)
	suite.Equal(suite.userID, saved.CreatedBy)
	suite.mockRateRepo.AssertExpectations(suite.T())
}

func (suite *ExchangeRateServiceTestSuite) TestSaveRate_BaseCurrencyRejected() {
	ctx := context.Background()
	req := dto.SaveExchangeRateRequest{
		CurrencyCode:  "BGN",
		Rate:          decimal.NewFromInt(1),
		DateEffective: time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
	}

	_, err := suite.service.SaveRate(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRateRepo.AssertNotCalled(suite.T(), "SaveExchangeRate", mock.Anything, mock.Anything)
}

func (suite *ExchangeRateServiceTestSuite) TestSaveRate_NonPositiveRejected() {
	ctx := context.Background()
	req := dto.SaveExchangeRateRequest{
		CurrencyCode:  "USD",
		Rate:          decimal.Zero,
		DateEffective: time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
	}

	_, err := suite.service.SaveRate(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRateRepo.AssertNotCalled(suite.T(), "SaveExchangeRate", mock.Anything, mock.Anything)
}

func (suite *ExchangeRateServiceTestSuite) TestRateFor_BaseCurrencyIsOne() {
	ctx := context.Background()

	rate, err := suite.service.RateFor(ctx, "BGN", time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC))

	suite.Require().NoError(err)
	suite.True(rate.Equal(decimal.NewFromInt(1)))
	suite.mockRateRepo.AssertNotCalled(suite.T(), "RateFor", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ExchangeRateServiceTestSuite) TestRateFor_UppercasesCode() {
	ctx := context.Background()
	onDate := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)

	suite.mockRateRepo.On("RateFor", ctx, "USD", onDate).Return(decimal.RequireFromString("1.85"), nil).Once()

	rate, err := suite.service.RateFor(ctx, "usd", onDate)

	suite.Require().NoError(err)
	suite.True(rate.Equal(decimal.RequireFromString("1.85")))
	suite.mockRateRepo.AssertExpectations(suite.T())
}

func (suite *ExchangeRateServiceTestSuite) TestRateFor_BadCode() {
	ctx := context.Background()

	_, err := suite.service.RateFor(ctx, "US", time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC))

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ExchangeRateServiceTestSuite) TestRateFor_Unavailable() {
	ctx := context.Background()
	onDate := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)

	suite.mockRateRepo.On("RateFor", ctx, "USD", onDate).Return(decimal.Zero, apperrors.ErrRateUnavailable).Once()

	_, err := suite.service.RateFor(ctx, "USD", onDate)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrRateUnavailable)
}

func (suite *ExchangeRateServiceTestSuite) TestListRates_DefaultLimit() {
	ctx := context.Background()
	rates := []domain.ExchangeRate{{ExchangeRateID: uuid.NewString(), CurrencyCode: "USD"}}

	suite.mockRateRepo.On("ListRates", ctx, "USD", 50, (*string)(nil)).Return(rates, nil, nil).Once()

	result, token, err := suite.service.ListRates(ctx, "usd", 0, nil)

	suite.Require().NoError(err)
	suite.Len(result, 1)
	suite.Nil(token)
	suite.mockRateRepo.AssertExpectations(suite.T())
}

func (suite *ExchangeRateServiceTestSuite) TestListRates_PassesCursorThrough() {
	ctx := context.Background()
	cursor := "b3BhcXVl"
	next := "bmV4dA=="
	rates := []domain.ExchangeRate{{ExchangeRateID: uuid.NewString(), CurrencyCode: "USD"}}

	suite.mockRateRepo.On("ListRates", ctx, "USD", 10, &cursor).Return(rates, &next, nil).Once()

	result, token, err := suite.service.ListRates(ctx, "usd", 10, &cursor)

	suite.Require().NoError(err)
	suite.Len(result, 1)
	suite.Require().NotNil(token)
	suite.Equal(next, *token)
	suite.mockRateRepo.AssertExpectations(suite.T())
}

func TestExchangeRateServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ExchangeRateServiceTestSuite))
}
