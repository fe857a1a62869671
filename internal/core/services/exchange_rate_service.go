package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/katehonz/baraba-sub001/internal/apperrors"
	"github.com/katehonz/baraba-sub001/internal/core/domain"
	portsrepo "github.com/katehonz/baraba-sub001/internal/core/ports/repositories"
	portssvc "github.com/katehonz/baraba-sub001/internal/core/ports/services"
	"github.com/katehonz/baraba-sub001/internal/dto"
)

// exchangeRateService maintains rates to the base currency and serves lookups for
// the revaluation engine.
type exchangeRateService struct {
	rateRepo     portsrepo.ExchangeRateRepositoryFacade
	baseCurrency string
}

// NewExchangeRateService creates a new exchange rate service.
func NewExchangeRateService(rateRepo portsrepo.ExchangeRateRepositoryFacade, baseCurrency string) portssvc.ExchangeRateSvcFacade {
	return &exchangeRateService{rateRepo: rateRepo, baseCurrency: baseCurrency}
}

var _ portssvc.ExchangeRateSvcFacade = (*exchangeRateService)(nil)

// SaveRate stores a rate effective on a date, replacing an existing one for the
// same currency and effective date.
func (s *exchangeRateService) SaveRate(ctx context.Context, req dto.SaveExchangeRateRequest, creatorUserID string) (*domain.ExchangeRate, error) {
	currency := strings.ToUpper(req.CurrencyCode)
	if currency == s.baseCurrency {
		return nil, fmt.Errorf("%w: cannot store a rate for the base currency %s", apperrors.ErrValidation, s.baseCurrency)
	}
	if req.Rate.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: exchange rate must be positive", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	rate := domain.ExchangeRate{
		ExchangeRateID: uuid.NewString(),
		CurrencyCode:   currency,
		Rate:           req.Rate,
		DateEffective:  req.DateEffective,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.rateRepo.SaveExchangeRate(ctx, rate); err != nil {
		return nil, fmt.Errorf("failed to save exchange rate: %w", err)
	}
	return &rate, nil
}

// RateFor returns the rate from currencyCode to base effective on onDate.
func (s *exchangeRateService) RateFor(ctx context.Context, currencyCode string, onDate time.Time) (decimal.Decimal, error) {
	currency := strings.ToUpper(currencyCode)
	if len(currency) != 3 {
		return decimal.Zero, fmt.Errorf("%w: currency codes must be 3 letters", apperrors.ErrValidation)
	}
	if currency == s.baseCurrency {
		return decimal.NewFromInt(1), nil
	}
	return s.rateRepo.RateFor(ctx, currency, onDate)
}

// ListRates retrieves a page of stored rates for a currency, newest first.
func (s *exchangeRateService) ListRates(ctx context.Context, currencyCode string, limit int, nextToken *string) ([]domain.ExchangeRate, *string, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.rateRepo.ListRates(ctx, strings.ToUpper(currencyCode), limit, nextToken)
}
