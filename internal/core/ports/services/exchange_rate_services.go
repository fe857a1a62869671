package services

import (
	"context"
	"time"

	"github.com/katehonz/baraba-sub001/internal/core/domain"
	"github.com/katehonz/baraba-sub001/internal/dto"
	"github.com/shopspring/decimal"
)

// ExchangeRateSvcFacade maintains and serves rates to the base currency. The
// revaluation engine treats it as a pluggable data source that may have no rate
// for a requested (currency, date).
type ExchangeRateSvcFacade interface {
	// SaveRate stores a rate effective on a date, replacing an existing one for the
	// same currency and date.
	SaveRate(ctx context.Context, req dto.SaveExchangeRateRequest, creatorUserID string) (*domain.ExchangeRate, error)

	// RateFor returns the rate from currencyCode to base effective on onDate, or
	// apperrors.ErrRateUnavailable.
	RateFor(ctx context.Context, currencyCode string, onDate time.Time) (decimal.Decimal, error)

	// ListRates retrieves a page of stored rates for a currency, newest first, with
	// a token for the next page.
	ListRates(ctx context.Context, currencyCode string, limit int, nextToken *string) ([]domain.ExchangeRate, *string, error)
}
