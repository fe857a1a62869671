package services

import (
	"context"
	"time"

	"github.com/katehonz/baraba-sub001/internal/core/domain"
	"github.com/katehonz/baraba-sub001/internal/dto"
)

// PeriodSvcFacade owns the per-company-year-month lock state. Every ledger write
// and every revaluation create/post consults IsOpen before proceeding.
type PeriodSvcFacade interface {
	// InitializeYear creates the 12 periods of the year as OPEN where absent.
	// Existing periods are left untouched; calling it twice is harmless.
	InitializeYear(ctx context.Context, companyID string, year int, userID string) ([]domain.AccountingPeriod, error)

	// ClosePeriod transitions OPEN -> CLOSED, recording who closed it and why.
	// Closing an already-closed period is an explicit error, not a no-op.
	ClosePeriod(ctx context.Context, companyID string, req dto.ClosePeriodRequest) (*domain.AccountingPeriod, error)

	// ReopenPeriod transitions CLOSED -> OPEN and clears the close metadata.
	ReopenPeriod(ctx context.Context, companyID string, year, month int, userID string) (*domain.AccountingPeriod, error)

	// ListPeriods retrieves periods filtered by the given params.
	ListPeriods(ctx context.Context, companyID string, params dto.ListPeriodsParams) ([]domain.AccountingPeriod, error)

	// IsOpen reports whether the period containing date accepts mutations.
	// A period that was never materialized is OPEN (the PeriodDefaultOpen policy).
	IsOpen(ctx context.Context, companyID string, date time.Time) (bool, error)
}
