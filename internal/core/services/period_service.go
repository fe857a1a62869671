package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/katehonz/baraba-sub001/internal/apperrors"
	"github.com/katehonz/baraba-sub001/internal/core/domain"
	portsrepo "github.com/katehonz/baraba-sub001/internal/core/ports/repositories"
	portssvc "github.com/katehonz/baraba-sub001/internal/core/ports/services"
	"github.com/katehonz/baraba-sub001/internal/dto"
	"github.com/katehonz/baraba-sub001/internal/middleware"
)

var (
	ErrPeriodAlreadyClosed = fmt.Errorf("%w: period is already closed", apperrors.ErrConflict)
	ErrPeriodNotClosed     = fmt.Errorf("%w: period is not closed", apperrors.ErrConflict)
)

// PeriodDefaultOpen is the lazy-default policy for period rows: a
// (company, year, month) with no accounting_periods row counts as OPEN. Rows are
// materialized by initializeYear or on first close; consumers must treat a
// not-found lookup as an open period, never as an error.
const PeriodDefaultOpen = true

// validatePeriod rejects (year, month) pairs outside the range the period schema
// accepts, so a typo'd year surfaces as a validation error instead of a database
// constraint failure.
func validatePeriod(year, month int) error {
	if year < 1900 || year > 2999 {
		return fmt.Errorf("%w: year %d is out of range", apperrors.ErrValidation, year)
	}
	if month < 1 || month > 12 {
		return fmt.Errorf("%w: month %d is out of range", apperrors.ErrValidation, month)
	}
	return nil
}

// periodService owns the OPEN/CLOSED state machine per company-year-month.
type periodService struct {
	periodRepo portsrepo.PeriodRepositoryFacade
}

// NewPeriodService creates a new accounting period service.
func NewPeriodService(periodRepo portsrepo.PeriodRepositoryFacade) portssvc.PeriodSvcFacade {
	return &periodService{periodRepo: periodRepo}
}

var _ portssvc.PeriodSvcFacade = (*periodService)(nil)

// IsOpen reports whether the period containing date accepts ledger mutations,
// applying the PeriodDefaultOpen policy for periods that were never materialized.
func (s *periodService) IsOpen(ctx context.Context, companyID string, date time.Time) (bool, error) {
	year, month := domain.PeriodOf(date)
	period, err := s.periodRepo.FindPeriod(ctx, companyID, year, month)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return PeriodDefaultOpen, nil
		}
		return false, fmt.Errorf("failed to look up period %04d-%02d: %w", year, month, err)
	}
	return period.Status == domain.PeriodOpen, nil
}

// InitializeYear creates the 12 periods of the year as OPEN where absent.
func (s *periodService) InitializeYear(ctx context.Context, companyID string, year int, userID string) ([]domain.AccountingPeriod, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if year < 1900 || year > 2999 {
		return nil, fmt.Errorf("%w: year %d is out of range", apperrors.ErrValidation, year)
	}

	now := time.Now().UTC()
	periods := make([]domain.AccountingPeriod, 12)
	for m := 1; m <= 12; m++ {
		periods[m-1] = domain.AccountingPeriod{
			PeriodID:  uuid.NewString(),
			CompanyID: companyID,
			Year:      year,
			Month:     m,
			Status:    domain.PeriodOpen,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}
	}

	if err := s.periodRepo.InsertPeriodsIfAbsent(ctx, periods); err != nil {
		logger.Error("Failed to initialize year", slog.String("error", err.Error()), slog.String("company_id", companyID), slog.Int("year", year))
		return nil, fmt.Errorf("failed to initialize year %d: %w", year, err)
	}

	logger.Info("Year initialized", slog.String("company_id", companyID), slog.Int("year", year))
	return s.periodRepo.ListPeriods(ctx, companyID, &year, nil, nil)
}

// ClosePeriod transitions OPEN -> CLOSED. A period that was never materialized is
// open by policy and gets its row created here. Closing a CLOSED period is an
// explicit error so a double close cannot silently overwrite the audit trail.
func (s *periodService) ClosePeriod(ctx context.Context, companyID string, req dto.ClosePeriodRequest) (*domain.AccountingPeriod, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := validatePeriod(req.Year, req.Month); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	period, err := s.periodRepo.FindPeriod(ctx, companyID, req.Year, req.Month)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("failed to look up period: %w", err)
		}
		period = &domain.AccountingPeriod{
			PeriodID:  uuid.NewString(),
			CompanyID: companyID,
			Year:      req.Year,
			Month:     req.Month,
			Status:    domain.PeriodOpen,
			AuditFields: domain.AuditFields{
				CreatedAt: now,
				CreatedBy: req.ClosedBy,
			},
		}
	}
	if period.Status == domain.PeriodClosed {
		return nil, fmt.Errorf("%w: %04d-%02d", ErrPeriodAlreadyClosed, req.Year, req.Month)
	}

	period.Status = domain.PeriodClosed
	period.ClosedAt = &now
	period.ClosedBy = &req.ClosedBy
	period.Notes = req.Notes
	period.LastUpdatedAt = now
	period.LastUpdatedBy = req.ClosedBy

	if err := s.periodRepo.UpsertPeriod(ctx, *period); err != nil {
		logger.Error("Failed to close period", slog.String("error", err.Error()), slog.String("company_id", companyID), slog.Int("year", req.Year), slog.Int("month", req.Month))
		return nil, fmt.Errorf("failed to close period: %w", err)
	}

	logger.Info("Period closed", slog.String("company_id", companyID), slog.Int("year", req.Year), slog.Int("month", req.Month), slog.String("closed_by", req.ClosedBy))
	return period, nil
}

// ReopenPeriod transitions CLOSED -> OPEN and clears the close metadata.
func (s *periodService) ReopenPeriod(ctx context.Context, companyID string, year, month int, userID string) (*domain.AccountingPeriod, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	period, err := s.periodRepo.FindPeriod(ctx, companyID, year, month)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Never materialized means never closed; there is nothing to reopen.
			return nil, fmt.Errorf("%w: %04d-%02d", ErrPeriodNotClosed, year, month)
		}
		return nil, fmt.Errorf("failed to look up period: %w", err)
	}
	if period.Status != domain.PeriodClosed {
		return nil, fmt.Errorf("%w: %04d-%02d", ErrPeriodNotClosed, year, month)
	}

	now := time.Now().UTC()
	period.Status = domain.PeriodOpen
	period.ClosedAt = nil
	period.ClosedBy = nil
	period.Notes = nil
	period.LastUpdatedAt = now
	period.LastUpdatedBy = userID

	if err := s.periodRepo.UpsertPeriod(ctx, *period); err != nil {
		logger.Error("Failed to reopen period", slog.String("error", err.Error()), slog.String("company_id", companyID), slog.Int("year", year), slog.Int("month", month))
		return nil, fmt.Errorf("failed to reopen period: %w", err)
	}

	logger.Info("Period reopened", slog.String("company_id", companyID), slog.Int("year", year), slog.Int("month", month))
	return period, nil
}

// ListPeriods retrieves periods for a company filtered by the given params.
func (s *periodService) ListPeriods(ctx context.Context, companyID string, params dto.ListPeriodsParams) ([]domain.AccountingPeriod, error) {
	periods, err := s.periodRepo.ListPeriods(ctx, companyID, params.Year, params.Month, params.Status)
	if err != nil {
		return nil, fmt.Errorf("failed to list periods: %w", err)
	}
	return periods, nil
}
