package services_test

import (
	"context"
	"fmt"
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

// --- Mock RevaluationRepository ---
type MockRevaluationRepository struct {
	mock.Mock
}

var _ portsrepo.RevaluationRepositoryFacade = (*MockRevaluationRepository)(nil)

func (m *MockRevaluationRepository) FindRevaluationByID(ctx context.Context, companyID, revaluationID string) (*domain.CurrencyRevaluation, error) {
	args := m.Called(ctx, companyID, revaluationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CurrencyRevaluation), args.Error(1)
}

func (m *MockRevaluationRepository) FindLinesByRevaluationID(ctx context.Context, revaluationID string) ([]domain.RevaluationLine, error) {
	args := m.Called(ctx, revaluationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RevaluationLine), args.Error(1)
}

func (m *MockRevaluationRepository) FindActiveRevaluation(ctx context.Context, companyID string, year, month int) (*domain.CurrencyRevaluation, error) {
	args := m.Called(ctx, companyID, year, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CurrencyRevaluation), args.Error(1)
}

func (m *MockRevaluationRepository) ListRevaluations(ctx context.Context, companyID string, status *domain.RevaluationStatus) ([]domain.CurrencyRevaluation, error) {
	args := m.Called(ctx, companyID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CurrencyRevaluation), args.Error(1)
}

func (m *MockRevaluationRepository) SaveRevaluation(ctx context.Context, revaluation domain.CurrencyRevaluation, lines []domain.RevaluationLine) error {
	args := m.Called(ctx, revaluation, lines)
	return args.Error(0)
}

func (m *MockRevaluationRepository) PostRevaluation(ctx context.Context, revaluationID string, entry domain.JournalEntry, lines []domain.EntryLine, updatedBy string, updatedAt time.Time) (int64, error) {
	args := m.Called(ctx, revaluationID, entry, lines, updatedBy, updatedAt)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRevaluationRepository) ReverseRevaluation(ctx context.Context, revaluationID string, entry domain.JournalEntry, lines []domain.EntryLine, updatedBy string, updatedAt time.Time) (int64, error) {
	args := m.Called(ctx, revaluationID, entry, lines, updatedBy, updatedAt)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRevaluationRepository) DeleteRevaluation(ctx context.Context, companyID, revaluationID string) error {
	args := m.Called(ctx, companyID, revaluationID)
	return args.Error(0)
}

// --- Mock ExchangeRateService ---
type MockExchangeRateService struct {
	mock.Mock
}

var _ portssvc.ExchangeRateSvcFacade = (*MockExchangeRateService)(nil)

func (m *MockExchangeRateService) SaveRate(ctx context.Context, req dto.SaveExchangeRateRequest, creatorUserID string) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateService) RateFor(ctx context.Context, currencyCode string, onDate time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, currencyCode, onDate)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockExchangeRateService) ListRates(ctx context.Context, currencyCode string, limit int, nextToken *string) ([]domain.ExchangeRate, *string, error) {
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
type RevaluationServiceTestSuite struct {
	suite.Suite
	mockRevaluationRepo *MockRevaluationRepository
	mockJournalRepo     *MockJournalRepository
	mockAccountSvc      *MockAccountService
	mockRateSvc         *MockExchangeRateService
	mockPeriodSvc       *MockPeriodService
	service             portssvc.RevaluationSvcFacade
	receivable          domain.Account
	payable             domain.Account
	gainAccount         domain.Account
	lossAccount         domain.Account
	companyID           string
	userID              string
	periodEnd           time.Time
	cutoff              time.Time
}

func (suite *RevaluationServiceTestSuite) SetupTest() {
	suite.mockRevaluationRepo = new(MockRevaluationRepository)
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.mockAccountSvc = new(MockAccountService)
	suite.mockRateSvc = new(MockExchangeRateService)
	suite.mockPeriodSvc = new(MockPeriodService)
	suite.service = services.NewRevaluationService(
		suite.mockRevaluationRepo,
		suite.mockJournalRepo,
		suite.mockAccountSvc,
		suite.mockRateSvc,
		suite.mockPeriodSvc,
		services.RevaluationConfig{
			BaseCurrency:    "BGN",
			GainAccountCode: "724",
			LossAccountCode: "624",
			Precision:       2,
		},
	)

	suite.companyID = uuid.NewString()
	suite.userID = uuid.NewString()
	suite.periodEnd = time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)
	suite.cutoff = time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)

	suite.receivable = domain.Account{
		AccountID:         uuid.NewString(),
		CompanyID:         suite.companyID,
		Code:              "411",
		AccountType:       domain.Asset,
		CurrencyCode:      "USD",
		IsMonetaryForeign: true,
		IsActive:          true,
	}
	suite.payable = domain.Account{
		AccountID:         uuid.NewString(),
		CompanyID:         suite.companyID,
		Code:              "401",
		AccountType:       domain.Liability,
		CurrencyCode:      "EUR",
		IsMonetaryForeign: true,
		IsActive:          true,
	}
	suite.gainAccount = domain.Account{
		AccountID:   uuid.NewString(),
		CompanyID:   suite.companyID,
		Code:        "724",
		AccountType: domain.Revenue,
		IsActive:    true,
	}
	suite.lossAccount = domain.Account{
		AccountID:   uuid.NewString(),
		CompanyID:   suite.companyID,
		Code:        "624",
		AccountType: domain.Expense,
		IsActive:    true,
	}
}

func (suite *RevaluationServiceTestSuite) pendingRevaluation(revaluationID string) *domain.CurrencyRevaluation {
	return &domain.CurrencyRevaluation{
		RevaluationID: revaluationID,
		CompanyID:     suite.companyID,
		Year:          2025,
		Month:         3,
		Status:        domain.RevaluationPending,
		TotalGains:    decimal.NewFromInt(50),
		TotalLosses:   decimal.Zero,
		NetResult:     decimal.NewFromInt(50),
	}
}

// --- Preview ---

// A 1000 USD receivable recorded at 1800 BGN revalued at 1.85 rises to 1850, a
// 50 BGN gain on a debit-normal account.
func (suite *RevaluationServiceTestSuite) TestPreview_GainOnReceivable() {
	ctx := context.Background()

	suite.mockAccountSvc.On("ListMonetaryForeign", ctx, suite.companyID).Return([]domain.Account{suite.receivable}, nil).Once()
	suite.mockJournalRepo.On("AccountForeignBalance", ctx, suite.companyID, suite.receivable.AccountID, "USD", suite.cutoff).Return(decimal.NewFromInt(1000), nil).Once()
	suite.mockJournalRepo.On("AccountBaseBalance", ctx, suite.companyID, suite.receivable.AccountID, suite.cutoff).Return(decimal.NewFromInt(1800), nil).Once()
	suite.mockRateSvc.On("RateFor", ctx, "USD", suite.periodEnd).Return(decimal.RequireFromString("1.85"), nil).Once()

	preview, err := suite.service.Preview(ctx, suite.companyID, 2025, 3)

	suite.Require().NoError(err)
	suite.Require().Len(preview.Lines, 1)
	line := preview.Lines[0]
	suite.Equal("411", line.AccountCode)
	suite.True(line.ForeignNetBalance.Equal(decimal.NewFromInt(1000)))
	suite.True(line.RecordedBaseBalance.Equal(decimal.NewFromInt(1800)))
	suite.True(line.RevaluedBaseBalance.Equal(decimal.NewFromInt(1850)))
	suite.True(line.Difference.Equal(decimal.NewFromInt(50)))
	suite.True(line.IsGain)
	suite.True(preview.TotalGains.Equal(decimal.NewFromInt(50)))
	suite.True(preview.TotalLosses.Equal(decimal.Zero))
	suite.True(preview.NetResult.Equal(decimal.NewFromInt(50)))
	suite.Equal(suite.periodEnd, preview.RateDate)
	suite.mockRateSvc.AssertExpectations(suite.T())
}

// A payable that grows in base currency is a loss: credit-normal account with a
// positive normal-side difference.
func (suite *RevaluationServiceTestSuite) TestPreview_LossOnPayable() {
	ctx := context.Background()

	suite.mockAccountSvc.On("ListMonetaryForeign", ctx, suite.companyID).Return([]domain.Account{suite.payable}, nil).Once()
	// Signed balances are debits minus credits; a payable carries credits.
	suite.mockJournalRepo.On("AccountForeignBalance", ctx, suite.companyID, suite.payable.AccountID, "EUR", suite.cutoff).Return(decimal.NewFromInt(-500), nil).Once()
	suite.mockJournalRepo.On("AccountBaseBalance", ctx, suite.companyID, suite.payable.AccountID, suite.cutoff).Return(decimal.NewFromInt(-900), nil).Once()
	suite.mockRateSvc.On("RateFor", ctx, "EUR", suite.periodEnd).Return(decimal.RequireFromString("1.9"), nil).Once()

	preview, err := suite.service.Preview(ctx, suite.companyID, 2025, 3)

	suite.Require().NoError(err)
	suite.Require().Len(preview.Lines, 1)
	line := preview.Lines[0]
	suite.True(line.ForeignNetBalance.Equal(decimal.NewFromInt(500)))
	suite.True(line.RecordedBaseBalance.Equal(decimal.NewFromInt(900)))
	suite.True(line.RevaluedBaseBalance.Equal(decimal.NewFromInt(950)))
	suite.True(line.Difference.Equal(decimal.NewFromInt(50)))
	suite.False(line.IsGain)
	suite.True(preview.TotalLosses.Equal(decimal.NewFromInt(50)))
	suite.True(preview.NetResult.Equal(decimal.NewFromInt(-50)))
}

// A payable shrinking in base currency is a gain on a credit-normal account.
func (suite *RevaluationServiceTestSuite) TestPreview_GainOnPayable() {
	ctx := context.Background()

	suite.mockAccountSvc.On("ListMonetaryForeign", ctx, suite.companyID).Return([]domain.Account{suite.payable}, nil).Once()
	suite.mockJournalRepo.On("AccountForeignBalance", ctx, suite.companyID, suite.payable.AccountID, "EUR", suite.cutoff).Return(decimal.NewFromInt(-500), nil).Once()
	suite.mockJournalRepo.On("AccountBaseBalance", ctx, suite.companyID, suite.payable.AccountID, suite.cutoff).Return(decimal.NewFromInt(-1000), nil).Once()
	suite.mockRateSvc.On("RateFor", ctx, "EUR", suite.periodEnd).Return(decimal.RequireFromString("1.9"), nil).Once()

	preview, err := suite.service.Preview(ctx, suite.companyID, 2025, 3)

	suite.Require().NoError(err)
	suite.Require().Len(preview.Lines, 1)
	line := preview.Lines[0]
	suite.True(line.Difference.Equal(decimal.NewFromInt(-50)))
	suite.True(line.IsGain)
	suite.True(preview.TotalGains.Equal(decimal.NewFromInt(50)))
}

func (suite *RevaluationServiceTestSuite) TestPreview_SkipsZeroBalances() {
	ctx := context.Background()

	suite.mockAccountSvc.On("ListMonetaryForeign", ctx, suite.companyID).Return([]domain.Account{suite.receivable}, nil).Once()
	suite.mockJournalRepo.On("AccountForeignBalance", ctx, suite.companyID, suite.receivable.AccountID, "USD", suite.cutoff).Return(decimal.Zero, nil).Once()
	suite.mockJournalRepo.On("AccountBaseBalance", ctx, suite.companyID, suite.receivable.AccountID, suite.cutoff).Return(decimal.Zero, nil).Once()

	preview, err := suite.service.Preview(ctx, suite.companyID, 2025, 3)

	suite.Require().NoError(err)
	suite.Empty(preview.Lines)
	suite.mockRateSvc.AssertNotCalled(suite.T(), "RateFor", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *RevaluationServiceTestSuite) TestPreview_RateUnavailable() {
	ctx := context.Background()

	suite.mockAccountSvc.On("ListMonetaryForeign", ctx, suite.companyID).Return([]domain.Account{suite.receivable}, nil).Once()
	suite.mockJournalRepo.On("AccountForeignBalance", ctx, suite.companyID, suite.receivable.AccountID, "USD", suite.cutoff).Return(decimal.NewFromInt(1000), nil).Once()
	suite.mockJournalRepo.On("AccountBaseBalance", ctx, suite.companyID, suite.receivable.AccountID, suite.cutoff).Return(decimal.NewFromInt(1800), nil).Once()
	suite.mockRateSvc.On("RateFor", ctx, "USD", suite.periodEnd).Return(decimal.Zero, apperrors.ErrRateUnavailable).Once()

	_, err := suite.service.Preview(ctx, suite.companyID, 2025, 3)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrRateUnavailable)
	suite.Contains(err.Error(), "411")
}

func (suite *RevaluationServiceTestSuite) TestPreview_YearOutOfRange() {
	ctx := context.Background()

	_, err := suite.service.Preview(ctx, suite.companyID, 5000, 3)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockAccountSvc.AssertNotCalled(suite.T(), "ListMonetaryForeign", mock.Anything, mock.Anything)
}

func (suite *RevaluationServiceTestSuite) TestPreview_MonthOutOfRange() {
	ctx := context.Background()

	_, err := suite.service.Preview(ctx, suite.companyID, 2025, 13)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockAccountSvc.AssertNotCalled(suite.T(), "ListMonetaryForeign", mock.Anything, mock.Anything)
}

// --- Create ---

func (suite *RevaluationServiceTestSuite) TestCreate_Success() {
	ctx := context.Background()
	var saved domain.CurrencyRevaluation
	var savedLines []domain.RevaluationLine

	suite.mockRevaluationRepo.On("FindActiveRevaluation", ctx, suite.companyID, 2025, 3).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockPeriodSvc.On("IsOpen", ctx, suite.companyID, suite.periodEnd).Return(true, nil).Once()
	suite.mockAccountSvc.On("ListMonetaryForeign", ctx, suite.companyID).Return([]domain.Account{suite.receivable}, nil).Once()
	suite.mockJournalRepo.On("AccountForeignBalance", ctx, suite.companyID, suite.receivable.AccountID, "USD", suite.cutoff).Return(decimal.NewFromInt(1000), nil).Once()
	suite.mockJournalRepo.On("AccountBaseBalance", ctx, suite.companyID, suite.receivable.AccountID, suite.cutoff).Return(decimal.NewFromInt(1800), nil).Once()
	suite.mockRateSvc.On("RateFor", ctx, "USD", suite.periodEnd).Return(decimal.RequireFromString("1.85"), nil).Once()
	suite.mockRevaluationRepo.On("SaveRevaluation", ctx, mock.AnythingOfType("domain.CurrencyRevaluation"), mock.AnythingOfType("[]domain.RevaluationLine")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(domain.CurrencyRevaluation)
			savedLines = args.Get(2).([]domain.RevaluationLine)
		}).Return(nil).Once()

	revaluation, err := suite.service.Create(ctx, suite.companyID, 2025, 3, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.RevaluationPending, revaluation.Status)
	suite.True(revaluation.TotalGains.Equal(decimal.NewFromInt(50)))
	suite.Equal(suite.userID, revaluation.CreatedBy)
	suite.Equal(domain.RevaluationPending, saved.Status)
	suite.Require().Len(savedLines, 1)
	suite.NotEmpty(savedLines[0].LineID)
	suite.Equal(saved.RevaluationID, savedLines[0].RevaluationID)
	suite.mockRevaluationRepo.AssertExpectations(suite.T())
}

func (suite *RevaluationServiceTestSuite) TestCreate_ActiveAlreadyExists() {
	ctx := context.Background()

	suite.mockRevaluationRepo.On("FindActiveRevaluation", ctx, suite.companyID, 2025, 3).Return(suite.pendingRevaluation(uuid.NewString()), nil).Once()

	_, err := suite.service.Create(ctx, suite.companyID, 2025, 3, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrRevaluationExists)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockRevaluationRepo.AssertNotCalled(suite.T(), "SaveRevaluation", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *RevaluationServiceTestSuite) TestCreate_PeriodClosed() {
	ctx := context.Background()

	suite.mockRevaluationRepo.On("FindActiveRevaluation", ctx, suite.companyID, 2025, 3).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockPeriodSvc.On("IsOpen", ctx, suite.companyID, suite.periodEnd).Return(false, nil).Once()

	_, err := suite.service.Create(ctx, suite.companyID, 2025, 3, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrPeriodClosed)
	suite.mockRevaluationRepo.AssertNotCalled(suite.T(), "SaveRevaluation", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *RevaluationServiceTestSuite) TestCreate_YearOutOfRange() {
	ctx := context.Background()

	_, err := suite.service.Create(ctx, suite.companyID, 5000, 3, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRevaluationRepo.AssertNotCalled(suite.T(), "FindActiveRevaluation", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockRevaluationRepo.AssertNotCalled(suite.T(), "SaveRevaluation", mock.Anything, mock.Anything, mock.Anything)
}

// A unique-index violation surfacing from the save (two creates racing past the
// FindActiveRevaluation check) still reaches the caller as a duplicate.
func (suite *RevaluationServiceTestSuite) TestCreate_DuplicateRaceFromRepository() {
	ctx := context.Background()

	suite.mockRevaluationRepo.On("FindActiveRevaluation", ctx, suite.companyID, 2025, 3).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockPeriodSvc.On("IsOpen", ctx, suite.companyID, suite.periodEnd).Return(true, nil).Once()
	suite.mockAccountSvc.On("ListMonetaryForeign", ctx, suite.companyID).Return([]domain.Account{suite.receivable}, nil).Once()
	suite.mockJournalRepo.On("AccountForeignBalance", ctx, suite.companyID, suite.receivable.AccountID, "USD", suite.cutoff).Return(decimal.NewFromInt(1000), nil).Once()
	suite.mockJournalRepo.On("AccountBaseBalance", ctx, suite.companyID, suite.receivable.AccountID, suite.cutoff).Return(decimal.NewFromInt(1800), nil).Once()
	suite.mockRateSvc.On("RateFor", ctx, "USD", suite.periodEnd).Return(decimal.RequireFromString("1.85"), nil).Once()
	suite.mockRevaluationRepo.On("SaveRevaluation", ctx, mock.AnythingOfType("domain.CurrencyRevaluation"), mock.AnythingOfType("[]domain.RevaluationLine")).
		Return(fmt.Errorf("%w: active revaluation already exists for 2025-03", apperrors.ErrDuplicate)).Once()

	_, err := suite.service.Create(ctx, suite.companyID, 2025, 3, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

// --- Post ---

func (suite *RevaluationServiceTestSuite) TestPost_Success() {
	ctx := context.Background()
	revaluationID := uuid.NewString()
	revLines := []domain.RevaluationLine{
		{
			LineID:              uuid.NewString(),
			RevaluationID:       revaluationID,
			AccountID:           suite.receivable.AccountID,
			AccountCode:         "411",
			CurrencyCode:        "USD",
			ForeignNetBalance:   decimal.NewFromInt(1000),
			RecordedBaseBalance: decimal.NewFromInt(1800),
			ExchangeRate:        decimal.RequireFromString("1.85"),
			RevaluedBaseBalance: decimal.NewFromInt(1850),
			Difference:          decimal.NewFromInt(50),
			IsGain:              true,
		},
	}
	var postedEntry domain.JournalEntry
	var postedLines []domain.EntryLine

	suite.mockRevaluationRepo.On("FindRevaluationByID", ctx, suite.companyID, revaluationID).Return(suite.pendingRevaluation(revaluationID), nil).Once()
	suite.mockPeriodSvc.On("IsOpen", ctx, suite.companyID, suite.periodEnd).Return(true, nil).Once()
	suite.mockRevaluationRepo.On("FindLinesByRevaluationID", ctx, revaluationID).Return(revLines, nil).Once()
	suite.mockAccountSvc.On("GetAccountByCode", ctx, suite.companyID, "724").Return(&suite.gainAccount, nil).Once()
	suite.mockAccountSvc.On("GetAccountByCode", ctx, suite.companyID, "624").Return(&suite.lossAccount, nil).Once()
	suite.mockRevaluationRepo.On("PostRevaluation", ctx, revaluationID, mock.AnythingOfType("domain.JournalEntry"), mock.AnythingOfType("[]domain.EntryLine"), suite.userID, mock.AnythingOfType("time.Time")).
		Run(func(args mock.Arguments) {
			postedEntry = args.Get(2).(domain.JournalEntry)
			postedLines = args.Get(3).([]domain.EntryLine)
		}).Return(int64(12), nil).Once()

	revaluation, err := suite.service.Post(ctx, suite.companyID, revaluationID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.RevaluationPosted, revaluation.Status)
	suite.Require().NotNil(revaluation.JournalEntryID)
	suite.Equal(postedEntry.EntryID, *revaluation.JournalEntryID)

	suite.Equal(domain.Posted, postedEntry.Status)
	suite.Equal(suite.periodEnd, postedEntry.AccountingDate)
	suite.Equal(suite.periodEnd, postedEntry.DocumentDate)
	suite.Require().NotNil(postedEntry.DocumentRef)
	suite.Equal(revaluationID, *postedEntry.DocumentRef)

	// A gain debits the monetary account and credits the gain account.
	suite.Require().Len(postedLines, 2)
	suite.Equal(suite.receivable.AccountID, postedLines[0].AccountID)
	suite.True(postedLines[0].DebitAmount.Equal(decimal.NewFromInt(50)))
	suite.True(postedLines[0].CreditAmount.IsZero())
	suite.Equal(suite.gainAccount.AccountID, postedLines[1].AccountID)
	suite.True(postedLines[1].CreditAmount.Equal(decimal.NewFromInt(50)))
	suite.True(postedLines[1].DebitAmount.IsZero())

	suite.mockRevaluationRepo.AssertExpectations(suite.T())
}

func (suite *RevaluationServiceTestSuite) TestPost_MixedGainsAndLosses() {
	ctx := context.Background()
	revaluationID := uuid.NewString()
	revLines := []domain.RevaluationLine{
		{LineID: uuid.NewString(), RevaluationID: revaluationID, AccountID: suite.receivable.AccountID, AccountCode: "411", CurrencyCode: "USD", Difference: decimal.NewFromInt(50), IsGain: true},
		{LineID: uuid.NewString(), RevaluationID: revaluationID, AccountID: suite.payable.AccountID, AccountCode: "401", CurrencyCode: "EUR", Difference: decimal.NewFromInt(30), IsGain: false},
	}
	var postedLines []domain.EntryLine

	suite.mockRevaluationRepo.On("FindRevaluationByID", ctx, suite.companyID, revaluationID).Return(suite.pendingRevaluation(revaluationID), nil).Once()
	suite.mockPeriodSvc.On("IsOpen", ctx, suite.companyID, suite.periodEnd).Return(true, nil).Once()
	suite.mockRevaluationRepo.On("FindLinesByRevaluationID", ctx, revaluationID).Return(revLines, nil).Once()
	suite.mockAccountSvc.On("GetAccountByCode", ctx, suite.companyID, "724").Return(&suite.gainAccount, nil).Once()
	suite.mockAccountSvc.On("GetAccountByCode", ctx, suite.companyID, "624").Return(&suite.lossAccount, nil).Once()
	suite.mockRevaluationRepo.On("PostRevaluation", ctx, revaluationID, mock.AnythingOfType("domain.JournalEntry"), mock.AnythingOfType("[]domain.EntryLine"), suite.userID, mock.AnythingOfType("time.Time")).
		Run(func(args mock.Arguments) {
			postedLines = args.Get(3).([]domain.EntryLine)
		}).Return(int64(13), nil).Once()

	_, err := suite.service.Post(ctx, suite.companyID, revaluationID, suite.userID)

	suite.Require().NoError(err)
	// Monetary lines first, then the loss and gain offsets.
	suite.Require().Len(postedLines, 4)
	suite.True(postedLines[0].DebitAmount.Equal(decimal.NewFromInt(50)))
	suite.True(postedLines[1].CreditAmount.Equal(decimal.NewFromInt(30)))
	suite.Equal(suite.lossAccount.AccountID, postedLines[2].AccountID)
	suite.True(postedLines[2].DebitAmount.Equal(decimal.NewFromInt(30)))
	suite.Equal(suite.gainAccount.AccountID, postedLines[3].AccountID)
	suite.True(postedLines[3].CreditAmount.Equal(decimal.NewFromInt(50)))

	debits, credits := decimal.Zero, decimal.Zero
	for _, l := range postedLines {
		debits = debits.Add(l.DebitAmount)
		credits = credits.Add(l.CreditAmount)
	}
	suite.True(debits.Equal(credits))
}

func (suite *RevaluationServiceTestSuite) TestPost_NotPending() {
	ctx := context.Background()
	revaluationID := uuid.NewString()
	posted := suite.pendingRevaluation(revaluationID)
	posted.Status = domain.RevaluationPosted

	suite.mockRevaluationRepo.On("FindRevaluationByID", ctx, suite.companyID, revaluationID).Return(posted, nil).Once()

	_, err := suite.service.Post(ctx, suite.companyID, revaluationID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrRevaluationNotPending)
	suite.mockRevaluationRepo.AssertNotCalled(suite.T(), "PostRevaluation", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *RevaluationServiceTestSuite) TestPost_NothingToAdjust() {
	ctx := context.Background()
	revaluationID := uuid.NewString()
	revLines := []domain.RevaluationLine{
		{LineID: uuid.NewString(), RevaluationID: revaluationID, AccountID: suite.receivable.AccountID, AccountCode: "411", CurrencyCode: "USD", Difference: decimal.Zero},
	}

	suite.mockRevaluationRepo.On("FindRevaluationByID", ctx, suite.companyID, revaluationID).Return(suite.pendingRevaluation(revaluationID), nil).Once()
	suite.mockPeriodSvc.On("IsOpen", ctx, suite.companyID, suite.periodEnd).Return(true, nil).Once()
	suite.mockRevaluationRepo.On("FindLinesByRevaluationID", ctx, revaluationID).Return(revLines, nil).Once()
	suite.mockAccountSvc.On("GetAccountByCode", ctx, suite.companyID, "724").Return(&suite.gainAccount, nil).Once()
	suite.mockAccountSvc.On("GetAccountByCode", ctx, suite.companyID, "624").Return(&suite.lossAccount, nil).Once()

	_, err := suite.service.Post(ctx, suite.companyID, revaluationID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrNothingToAdjust)
	suite.mockRevaluationRepo.AssertNotCalled(suite.T(), "PostRevaluation", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *RevaluationServiceTestSuite) TestPost_PeriodClosed() {
	ctx := context.Background()
	revaluationID := uuid.NewString()

	suite.mockRevaluationRepo.On("FindRevaluationByID", ctx, suite.companyID, revaluationID).Return(suite.pendingRevaluation(revaluationID), nil).Once()
	suite.mockPeriodSvc.On("IsOpen", ctx, suite.companyID, suite.periodEnd).Return(false, nil).Once()

	_, err := suite.service.Post(ctx, suite.companyID, revaluationID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrPeriodClosed)
	suite.mockRevaluationRepo.AssertNotCalled(suite.T(), "PostRevaluation", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// A ClosePeriod landing between the advisory check and the repository transaction
// is caught by the in-transaction gate; the failure still reads as a closed period.
func (suite *RevaluationServiceTestSuite) TestPost_PeriodClosedInsideTransaction() {
	ctx := context.Background()
	revaluationID := uuid.NewString()
	revLines := []domain.RevaluationLine{
		{LineID: uuid.NewString(), RevaluationID: revaluationID, AccountID: suite.receivable.AccountID, AccountCode: "411", CurrencyCode: "USD", Difference: decimal.NewFromInt(50), IsGain: true},
	}

	suite.mockRevaluationRepo.On("FindRevaluationByID", ctx, suite.companyID, revaluationID).Return(suite.pendingRevaluation(revaluationID), nil).Once()
	suite.mockPeriodSvc.On("IsOpen", ctx, suite.companyID, suite.periodEnd).Return(true, nil).Once()
	suite.mockRevaluationRepo.On("FindLinesByRevaluationID", ctx, revaluationID).Return(revLines, nil).Once()
	suite.mockAccountSvc.On("GetAccountByCode", ctx, suite.companyID, "724").Return(&suite.gainAccount, nil).Once()
	suite.mockAccountSvc.On("GetAccountByCode", ctx, suite.companyID, "624").Return(&suite.lossAccount, nil).Once()
	suite.mockRevaluationRepo.On("PostRevaluation", ctx, revaluationID, mock.AnythingOfType("domain.JournalEntry"), mock.AnythingOfType("[]domain.EntryLine"), suite.userID, mock.AnythingOfType("time.Time")).
		Return(int64(0), fmt.Errorf("%w: period 2025-03", apperrors.ErrPeriodClosed)).Once()

	_, err := suite.service.Post(ctx, suite.companyID, revaluationID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrPeriodClosed)
}

// --- Reverse ---

func (suite *RevaluationServiceTestSuite) TestReverse_SwapsDebitAndCredit() {
	ctx := context.Background()
	revaluationID := uuid.NewString()
	entryID := uuid.NewString()
	posted := suite.pendingRevaluation(revaluationID)
	posted.Status = domain.RevaluationPosted
	posted.JournalEntryID = &entryID

	originalEntry := &domain.JournalEntry{
		EntryID:        entryID,
		CompanyID:      suite.companyID,
		DocumentDate:   suite.periodEnd,
		AccountingDate: suite.periodEnd,
		Status:         domain.Posted,
	}
	originalLines := []domain.EntryLine{
		{LineID: uuid.NewString(), EntryID: entryID, AccountID: suite.receivable.AccountID, DebitAmount: decimal.NewFromInt(50)},
		{LineID: uuid.NewString(), EntryID: entryID, AccountID: suite.gainAccount.AccountID, CreditAmount: decimal.NewFromInt(50)},
	}
	var reversedEntry domain.JournalEntry
	var reversedLines []domain.EntryLine

	suite.mockRevaluationRepo.On("FindRevaluationByID", ctx, suite.companyID, revaluationID).Return(posted, nil).Once()
	suite.mockJournalRepo.On("FindEntryByID", ctx, suite.companyID, entryID).Return(originalEntry, nil).Once()
	suite.mockJournalRepo.On("FindLinesByEntryID", ctx, entryID).Return(originalLines, nil).Once()
	suite.mockPeriodSvc.On("IsOpen", ctx, suite.companyID, suite.periodEnd).Return(true, nil).Once()
	suite.mockRevaluationRepo.On("ReverseRevaluation", ctx, revaluationID, mock.AnythingOfType("domain.JournalEntry"), mock.AnythingOfType("[]domain.EntryLine"), suite.userID, mock.AnythingOfType("time.Time")).
		Run(func(args mock.Arguments) {
			reversedEntry = args.Get(2).(domain.JournalEntry)
			reversedLines = args.Get(3).([]domain.EntryLine)
		}).Return(int64(14), nil).Once()

	revaluation, err := suite.service.Reverse(ctx, suite.companyID, revaluationID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.RevaluationReversed, revaluation.Status)

	suite.Equal(domain.Posted, reversedEntry.Status)
	suite.Equal(suite.periodEnd, reversedEntry.AccountingDate)
	suite.NotEqual(entryID, reversedEntry.EntryID)

	suite.Require().Len(reversedLines, 2)
	suite.Equal(suite.receivable.AccountID, reversedLines[0].AccountID)
	suite.True(reversedLines[0].CreditAmount.Equal(decimal.NewFromInt(50)))
	suite.True(reversedLines[0].DebitAmount.IsZero())
	suite.Equal(suite.gainAccount.AccountID, reversedLines[1].AccountID)
	suite.True(reversedLines[1].DebitAmount.Equal(decimal.NewFromInt(50)))
	suite.True(reversedLines[1].CreditAmount.IsZero())

	suite.mockRevaluationRepo.AssertExpectations(suite.T())
}

func (suite *RevaluationServiceTestSuite) TestReverse_NotPosted() {
	ctx := context.Background()
	revaluationID := uuid.NewString()

	suite.mockRevaluationRepo.On("FindRevaluationByID", ctx, suite.companyID, revaluationID).Return(suite.pendingRevaluation(revaluationID), nil).Once()

	_, err := suite.service.Reverse(ctx, suite.companyID, revaluationID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrRevaluationNotPosted)
	suite.mockRevaluationRepo.AssertNotCalled(suite.T(), "ReverseRevaluation", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// --- Delete ---

func (suite *RevaluationServiceTestSuite) TestDelete_Pending() {
	ctx := context.Background()
	revaluationID := uuid.NewString()

	suite.mockRevaluationRepo.On("FindRevaluationByID", ctx, suite.companyID, revaluationID).Return(suite.pendingRevaluation(revaluationID), nil).Once()
	suite.mockRevaluationRepo.On("DeleteRevaluation", ctx, suite.companyID, revaluationID).Return(nil).Once()

	err := suite.service.Delete(ctx, suite.companyID, revaluationID)

	suite.Require().NoError(err)
	suite.mockRevaluationRepo.AssertExpectations(suite.T())
}

func (suite *RevaluationServiceTestSuite) TestDelete_Posted() {
	ctx := context.Background()
	revaluationID := uuid.NewString()
	posted := suite.pendingRevaluation(revaluationID)
	posted.Status = domain.RevaluationPosted

	suite.mockRevaluationRepo.On("FindRevaluationByID", ctx, suite.companyID, revaluationID).Return(posted, nil).Once()

	err := suite.service.Delete(ctx, suite.companyID, revaluationID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrRevaluationNotPending)
	suite.mockRevaluationRepo.AssertNotCalled(suite.T(), "DeleteRevaluation", mock.Anything, mock.Anything, mock.Anything)
}

// --- Reads ---

func (suite *RevaluationServiceTestSuite) TestGetByID_LoadsLines() {
	ctx := context.Background()
	revaluationID := uuid.NewString()
	lines := []domain.RevaluationLine{{LineID: uuid.NewString(), RevaluationID: revaluationID, AccountCode: "411"}}

	suite.mockRevaluationRepo.On("FindRevaluationByID", ctx, suite.companyID, revaluationID).Return(suite.pendingRevaluation(revaluationID), nil).Once()
	suite.mockRevaluationRepo.On("FindLinesByRevaluationID", ctx, revaluationID).Return(lines, nil).Once()

	revaluation, err := suite.service.GetByID(ctx, suite.companyID, revaluationID)

	suite.Require().NoError(err)
	suite.Len(revaluation.Lines, 1)
}

func (suite *RevaluationServiceTestSuite) TestList_FiltersByStatus() {
	ctx := context.Background()
	status := domain.RevaluationPosted
	expected := []domain.CurrencyRevaluation{*suite.pendingRevaluation(uuid.NewString())}

	suite.mockRevaluationRepo.On("ListRevaluations", ctx, suite.companyID, &status).Return(expected, nil).Once()

	revaluations, err := suite.service.List(ctx, suite.companyID, &status)

	suite.Require().NoError(err)
	suite.Len(revaluations, 1)
	suite.mockRevaluationRepo.AssertExpectations(suite.T())
}

func TestRevaluationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(RevaluationServiceTestSuite))
}
