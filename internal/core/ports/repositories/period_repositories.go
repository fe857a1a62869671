package repositories

import (
	"context"

	"github.com/katehonz/baraba-sub001/internal/core/domain"
)

// PeriodReader defines read operations for accounting period data.
type PeriodReader interface {
	// FindPeriod retrieves the period row for (company, year, month), or
	// apperrors.ErrNotFound if none has been materialized yet.
	FindPeriod(ctx context.Context, companyID string, year, month int) (*domain.AccountingPeriod, error)

	// ListPeriods retrieves periods for a company, optionally filtered by year,
	// month and status, ordered by (year, month).
	ListPeriods(ctx context.Context, companyID string, year, month *int, status *domain.PeriodStatus) ([]domain.AccountingPeriod, error)
}

// PeriodWriter defines write operations for accounting period data.
type PeriodWriter interface {
	// UpsertPeriod inserts or fully updates the period row for its natural key.
	UpsertPeriod(ctx context.Context, period domain.AccountingPeriod) error

	// InsertPeriodsIfAbsent inserts the given periods, leaving already existing
	// (company, year, month) rows untouched.
	InsertPeriodsIfAbsent(ctx context.Context, periods []domain.AccountingPeriod) error
}

// PeriodRepositoryFacade combines all period-related repository interfaces.
type PeriodRepositoryFacade interface {
	PeriodReader
	PeriodWriter
}
