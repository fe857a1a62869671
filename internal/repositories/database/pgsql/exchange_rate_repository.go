package pgsql

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/katehonz/baraba-sub001/internal/apperrors"
	"github.com/katehonz/baraba-sub001/internal/core/domain"
	portsrepo "github.com/katehonz/baraba-sub001/internal/core/ports/repositories"
	"github.com/katehonz/baraba-sub001/internal/models"
	"github.com/katehonz/baraba-sub001/internal/utils/mapping"
	"github.com/katehonz/baraba-sub001/internal/utils/pagination"
	"github.com/shopspring/decimal"
)

type PgxExchangeRateRepository struct {
	BaseRepository
}

// newPgxExchangeRateRepository creates a new repository for exchange rate data.
func newPgxExchangeRateRepository(pool *pgxpool.Pool) portsrepo.ExchangeRateRepositoryFacade {
	return &PgxExchangeRateRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxExchangeRateRepository implements portsrepo.ExchangeRateRepositoryFacade
var _ portsrepo.ExchangeRateRepositoryFacade = (*PgxExchangeRateRepository)(nil)

// RateFor returns the newest stored rate for the currency dated at or before the
// given date, or apperrors.ErrRateUnavailable when none exists.
func (r *PgxExchangeRateRepository) RateFor(ctx context.Context, currencyCode string, onDate time.Time) (decimal.Decimal, error) {
	query := `
		SELECT rate
		FROM exchange_rates
		WHERE currency_code = $1 AND date_effective <= $2
		ORDER BY date_effective DESC
		LIMIT 1;
	`
	var rate decimal.Decimal
	err := r.Pool.QueryRow(ctx, query, currencyCode, onDate).Scan(&rate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, apperrors.ErrRateUnavailable
		}
		return decimal.Zero, apperrors.NewAppError(500, "failed to look up rate for "+currencyCode, err)
	}
	return rate, nil
}

// SaveExchangeRate inserts a rate, or updates it when one already exists for the
// same currency and effective date.
func (r *PgxExchangeRateRepository) SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) error {
	m := mapping.ToModelExchangeRate(rate)
	query := `
		INSERT INTO exchange_rates (
			exchange_rate_id, currency_code, rate, date_effective,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (currency_code, date_effective) DO UPDATE
		SET rate = EXCLUDED.rate,
		    last_updated_at = EXCLUDED.last_updated_at,
		    last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err := r.Pool.Exec(ctx, query,
		m.ExchangeRateID,
		m.CurrencyCode,
		m.Rate,
		m.DateEffective,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to save exchange rate for "+m.CurrencyCode, err)
	}
	return nil
}

// ListRates retrieves a page of stored rates for a currency, newest first, using
// token-based pagination. (currency_code, date_effective) is unique, so the
// effective date of the last item on a page is a stable cursor.
func (r *PgxExchangeRateRepository) ListRates(ctx context.Context, currencyCode string, limit int, nextToken *string) ([]domain.ExchangeRate, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// We fetch one extra item to determine if there's a next page.
	fetchLimit := limit + 1

	query := `
		SELECT exchange_rate_id, currency_code, rate, date_effective,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM exchange_rates
		WHERE currency_code = $1
	`
	args := []interface{}{currencyCode}

	if nextToken != nil && *nextToken != "" {
		cursorDate, decodeErr := pagination.DecodeDateBasedToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		args = append(args, cursorDate)
		query += ` AND date_effective < $` + strconv.Itoa(len(args))
	}

	args = append(args, fetchLimit)
	query += ` ORDER BY date_effective DESC LIMIT $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query rates for "+currencyCode, err)
	}
	defer rows.Close()

	rates := make([]models.ExchangeRate, 0, fetchLimit)
	for rows.Next() {
		var m models.ExchangeRate
		err := rows.Scan(
			&m.ExchangeRateID,
			&m.CurrencyCode,
			&m.Rate,
			&m.DateEffective,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan rate row for "+currencyCode, err)
		}
		rates = append(rates, m)
	}

	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating rate rows for "+currencyCode, err)
	}

	var nextTokenVal *string
	results := rates
	if len(rates) > limit {
		lastRate := rates[limit-1]
		newToken := pagination.EncodeDateBasedToken(lastRate.DateEffective)
		nextTokenVal = &newToken
		results = rates[:limit]
	}

	return mapping.ToDomainExchangeRateSlice(results), nextTokenVal, nil
}
