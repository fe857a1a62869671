package repositories

import (
	"context"
	"time"

	"github.com/katehonz/baraba-sub001/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RateSource answers period-end rate lookups for the revaluation engine.
type RateSource interface {
	// RateFor returns the conversion rate from the given currency to the base
	// currency effective on the given date (the newest rate dated at or before it),
	// or apperrors.ErrRateUnavailable if no such rate is stored.
	RateFor(ctx context.Context, currencyCode string, onDate time.Time) (decimal.Decimal, error)
}

// ExchangeRateRepositoryFacade combines rate lookups with rate maintenance.
type ExchangeRateRepositoryFacade interface {
	RateSource

	// SaveExchangeRate inserts a rate, or updates it when one already exists for the
	// same currency and effective date.
	SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) error

	// ListRates retrieves a page of stored rates for a currency, newest first, using
	// token-based pagination on the effective date. It returns the rates, a token for
	// the next page, and an error.
	ListRates(ctx context.Context, currencyCode string, limit int, nextToken *string) ([]domain.ExchangeRate, *string, error)
}
