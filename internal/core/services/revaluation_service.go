package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/katehonz/baraba-sub001/internal/apperrors"
	"github.com/katehonz/baraba-sub001/internal/core/domain"
	portsrepo "github.com/katehonz/baraba-sub001/internal/core/ports/repositories"
	portssvc "github.com/katehonz/baraba-sub001/internal/core/ports/services"
	"github.com/katehonz/baraba-sub001/internal/dto"
	"github.com/katehonz/baraba-sub001/internal/middleware"
	"github.com/katehonz/baraba-sub001/internal/utils/accounting"
)

var (
	ErrRevaluationExists     = fmt.Errorf("%w: an active revaluation already exists for this period", apperrors.ErrDuplicate)
	ErrRevaluationNotPending = fmt.Errorf("%w: revaluation is not pending", apperrors.ErrConflict)
	ErrRevaluationNotPosted  = fmt.Errorf("%w: revaluation is not posted", apperrors.ErrConflict)
	ErrNothingToAdjust       = fmt.Errorf("%w: no revaluation differences to post", apperrors.ErrValidation)
)

// RevaluationConfig carries the company-independent engine settings.
type RevaluationConfig struct {
	BaseCurrency    string
	GainAccountCode string // FX gain account in the chart, e.g. "724"
	LossAccountCode string // FX loss account in the chart, e.g. "624"
	Precision       int32  // Base currency decimal places
}

// revaluationService computes and books period-end FX adjustments.
type revaluationService struct {
	revaluationRepo portsrepo.RevaluationRepositoryFacade
	journalRepo     portsrepo.JournalRepositoryFacade
	accountSvc      portssvc.AccountSvcFacade
	rateSvc         portssvc.ExchangeRateSvcFacade
	periodSvc       portssvc.PeriodSvcFacade
	cfg             RevaluationConfig
}

// NewRevaluationService creates a new currency revaluation service.
func NewRevaluationService(
	revaluationRepo portsrepo.RevaluationRepositoryFacade,
	journalRepo portsrepo.JournalRepositoryFacade,
	accountSvc portssvc.AccountSvcFacade,
	rateSvc portssvc.ExchangeRateSvcFacade,
	periodSvc portssvc.PeriodSvcFacade,
	cfg RevaluationConfig,
) portssvc.RevaluationSvcFacade {
	return &revaluationService{
		revaluationRepo: revaluationRepo,
		journalRepo:     journalRepo,
		accountSvc:      accountSvc,
		rateSvc:         rateSvc,
		periodSvc:       periodSvc,
		cfg:             cfg,
	}
}

var _ portssvc.RevaluationSvcFacade = (*revaluationService)(nil)

// computeLines runs the pure revaluation computation for every monetary
// foreign-currency account with activity up to the period end. Accounts come back
// from the registry ordered by code, which keeps repeated runs deterministic.
//
// Balances are normalized to the account's normal side before the arithmetic, so
// the gain rule is: debit-normal gains on a positive difference, credit-normal on
// a negative one (a payable becoming cheaper in base currency is a gain).
func (s *revaluationService) computeLines(ctx context.Context, companyID string, year, month int) ([]domain.RevaluationLine, error) {
	// Balances aggregate everything dated inside the period, including intraday
	// timestamps on the last day, so the cutoff is the first instant of the next
	// month. The rate lookup stays on the period-end date itself.
	cutoff := domain.PeriodCutoff(year, month)
	rateDate := domain.PeriodEnd(year, month)

	accounts, err := s.accountSvc.ListMonetaryForeign(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list monetary foreign accounts: %w", err)
	}

	lines := make([]domain.RevaluationLine, 0, len(accounts))
	for _, acc := range accounts {
		if acc.CurrencyCode == "" || acc.CurrencyCode == s.cfg.BaseCurrency {
			continue
		}

		foreignSigned, err := s.journalRepo.AccountForeignBalance(ctx, companyID, acc.AccountID, acc.CurrencyCode, cutoff)
		if err != nil {
			return nil, fmt.Errorf("failed to compute foreign balance for account %s: %w", acc.Code, err)
		}
		baseSigned, err := s.journalRepo.AccountBaseBalance(ctx, companyID, acc.AccountID, cutoff)
		if err != nil {
			return nil, fmt.Errorf("failed to compute base balance for account %s: %w", acc.Code, err)
		}
		if foreignSigned.IsZero() && baseSigned.IsZero() {
			continue
		}

		side := acc.AccountType.NormalSide()
		foreignNet := accounting.NormalSideBalance(foreignSigned, side)
		recorded := accounting.NormalSideBalance(baseSigned, side)

		rate, err := s.rateSvc.RateFor(ctx, acc.CurrencyCode, rateDate)
		if err != nil {
			if errors.Is(err, apperrors.ErrRateUnavailable) {
				return nil, fmt.Errorf("%w: %s on %s (account %s)", apperrors.ErrRateUnavailable, acc.CurrencyCode, rateDate.Format("2006-01-02"), acc.Code)
			}
			return nil, fmt.Errorf("failed to fetch rate for %s: %w", acc.CurrencyCode, err)
		}

		revalued := foreignNet.Mul(rate).Round(s.cfg.Precision)
		difference := revalued.Sub(recorded)
		isGain := (side == domain.DebitNormal && difference.IsPositive()) ||
			(side == domain.CreditNormal && difference.IsNegative())

		lines = append(lines, domain.RevaluationLine{
			AccountID:           acc.AccountID,
			AccountCode:         acc.Code,
			CurrencyCode:        acc.CurrencyCode,
			ForeignNetBalance:   foreignNet,
			RecordedBaseBalance: recorded,
			ExchangeRate:        rate,
			RevaluedBaseBalance: revalued,
			Difference:          difference,
			IsGain:              isGain,
		})
	}
	return lines, nil
}

// sumLines aggregates totals: gains and losses as positive magnitudes.
func sumLines(lines []domain.RevaluationLine) (gains, losses decimal.Decimal) {
	gains, losses = decimal.Zero, decimal.Zero
	for _, line := range lines {
		if line.Difference.IsZero() {
			continue
		}
		if line.IsGain {
			gains = gains.Add(line.Difference.Abs())
		} else {
			losses = losses.Add(line.Difference.Abs())
		}
	}
	return gains, losses
}

// Preview computes the revaluation without persisting anything.
func (s *revaluationService) Preview(ctx context.Context, companyID string, year, month int) (*dto.RevaluationPreviewResponse, error) {
	if err := validatePeriod(year, month); err != nil {
		return nil, err
	}

	lines, err := s.computeLines(ctx, companyID, year, month)
	if err != nil {
		return nil, err
	}
	gains, losses := sumLines(lines)

	resp := &dto.RevaluationPreviewResponse{
		CompanyID:   companyID,
		Year:        year,
		Month:       month,
		RateDate:    domain.PeriodEnd(year, month),
		Lines:       make([]dto.RevaluationLineResponse, len(lines)),
		TotalGains:  gains,
		TotalLosses: losses,
		NetResult:   gains.Sub(losses),
	}
	for i := range lines {
		resp.Lines[i] = dto.ToRevaluationLineResponse(&lines[i])
	}
	return resp, nil
}

// Create re-runs the preview computation and persists it as PENDING. The preview a
// client saw earlier is only a snapshot; the persisted figures are recomputed here.
func (s *revaluationService) Create(ctx context.Context, companyID string, year, month int, userID string) (*domain.CurrencyRevaluation, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := validatePeriod(year, month); err != nil {
		return nil, err
	}

	if _, err := s.revaluationRepo.FindActiveRevaluation(ctx, companyID, year, month); err == nil {
		return nil, fmt.Errorf("%w: %04d-%02d", ErrRevaluationExists, year, month)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check for existing revaluation: %w", err)
	}

	if err := s.requireOpenPeriod(ctx, companyID, year, month); err != nil {
		return nil, err
	}

	lines, err := s.computeLines(ctx, companyID, year, month)
	if err != nil {
		return nil, err
	}
	gains, losses := sumLines(lines)

	now := time.Now().UTC()
	revaluationID := uuid.NewString()
	for i := range lines {
		lines[i].LineID = uuid.NewString()
		lines[i].RevaluationID = revaluationID
	}

	revaluation := domain.CurrencyRevaluation{
		RevaluationID: revaluationID,
		CompanyID:     companyID,
		Year:          year,
		Month:         month,
		Status:        domain.RevaluationPending,
		TotalGains:    gains,
		TotalLosses:   losses,
		NetResult:     gains.Sub(losses),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.revaluationRepo.SaveRevaluation(ctx, revaluation, lines); err != nil {
		logger.Error("Failed to save revaluation", slog.String("error", err.Error()), slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to save revaluation: %w", err)
	}
	revaluation.Lines = lines

	logger.Info("Revaluation created", slog.String("revaluation_id", revaluationID), slog.Int("year", year), slog.Int("month", month))
	return &revaluation, nil
}

// buildAdjustmentLines turns persisted revaluation lines into balanced entry lines:
// every gain debits its monetary account and every loss credits it, with aggregate
// offsets against the FX gain and loss accounts. Zero differences produce no line.
func (s *revaluationService) buildAdjustmentLines(entryID string, revLines []domain.RevaluationLine, gainAccountID, lossAccountID, userID string, now time.Time) []domain.EntryLine {
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}

	lines := make([]domain.EntryLine, 0, len(revLines)+2)
	totalGains, totalLosses := decimal.Zero, decimal.Zero
	for _, rl := range revLines {
		if rl.Difference.IsZero() {
			continue
		}
		amount := rl.Difference.Abs()
		line := domain.EntryLine{
			LineID:      uuid.NewString(),
			EntryID:     entryID,
			AccountID:   rl.AccountID,
			AuditFields: audit,
		}
		if rl.IsGain {
			line.DebitAmount = amount
			totalGains = totalGains.Add(amount)
		} else {
			line.CreditAmount = amount
			totalLosses = totalLosses.Add(amount)
		}
		lines = append(lines, line)
	}

	if totalLosses.IsPositive() {
		lines = append(lines, domain.EntryLine{
			LineID:      uuid.NewString(),
			EntryID:     entryID,
			AccountID:   lossAccountID,
			DebitAmount: totalLosses,
			AuditFields: audit,
		})
	}
	if totalGains.IsPositive() {
		lines = append(lines, domain.EntryLine{
			LineID:       uuid.NewString(),
			EntryID:      entryID,
			AccountID:    gainAccountID,
			CreditAmount: totalGains,
			AuditFields:  audit,
		})
	}
	return lines
}

// Post books the adjusting entry through the ledger and marks the revaluation
// POSTED, in one repository transaction. On any failure the revaluation stays
// PENDING and no entry is left behind.
func (s *revaluationService) Post(ctx context.Context, companyID, revaluationID, userID string) (*domain.CurrencyRevaluation, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	revaluation, err := s.revaluationRepo.FindRevaluationByID(ctx, companyID, revaluationID)
	if err != nil {
		return nil, err
	}
	if revaluation.Status != domain.RevaluationPending {
		return nil, ErrRevaluationNotPending
	}

	if err := s.requireOpenPeriod(ctx, companyID, revaluation.Year, revaluation.Month); err != nil {
		return nil, err
	}

	revLines, err := s.revaluationRepo.FindLinesByRevaluationID(ctx, revaluationID)
	if err != nil {
		return nil, fmt.Errorf("failed to load revaluation lines: %w", err)
	}

	gainAccount, err := s.accountSvc.GetAccountByCode(ctx, companyID, s.cfg.GainAccountCode)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve FX gain account %q: %w", s.cfg.GainAccountCode, err)
	}
	lossAccount, err := s.accountSvc.GetAccountByCode(ctx, companyID, s.cfg.LossAccountCode)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve FX loss account %q: %w", s.cfg.LossAccountCode, err)
	}

	now := time.Now().UTC()
	entryID := uuid.NewString()
	entryLines := s.buildAdjustmentLines(entryID, revLines, gainAccount.AccountID, lossAccount.AccountID, userID, now)
	if len(entryLines) == 0 {
		return nil, ErrNothingToAdjust
	}

	// The generated entry balances by construction; run the validator anyway so a
	// broken construction can never reach the ledger.
	if err := accounting.ValidateBalance(entryLines, decimal.Zero); err != nil {
		return nil, fmt.Errorf("generated adjustment entry failed balance validation: %w", err)
	}

	periodEnd := domain.PeriodEnd(revaluation.Year, revaluation.Month)
	entry := domain.JournalEntry{
		EntryID:        entryID,
		CompanyID:      companyID,
		DocumentDate:   periodEnd,
		AccountingDate: periodEnd,
		Description:    fmt.Sprintf("Currency revaluation %04d-%02d", revaluation.Year, revaluation.Month),
		Status:         domain.Posted,
		DocumentRef:    &revaluationID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	entryNumber, err := s.revaluationRepo.PostRevaluation(ctx, revaluationID, entry, entryLines, userID, now)
	if err != nil {
		logger.Error("Failed to post revaluation", slog.String("error", err.Error()), slog.String("revaluation_id", revaluationID))
		return nil, fmt.Errorf("failed to post revaluation: %w", err)
	}

	revaluation.Status = domain.RevaluationPosted
	revaluation.JournalEntryID = &entryID
	revaluation.LastUpdatedAt = now
	revaluation.LastUpdatedBy = userID
	revaluation.Lines = revLines

	logger.Info("Revaluation posted", slog.String("revaluation_id", revaluationID), slog.String("entry_id", entryID), slog.Int64("entry_number", entryNumber))
	return revaluation, nil
}

// Reverse posts an entry negating the original adjustment line for line (debit and
// credit swapped, identical amounts) and marks the revaluation REVERSED.
func (s *revaluationService) Reverse(ctx context.Context, companyID, revaluationID, userID string) (*domain.CurrencyRevaluation, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	revaluation, err := s.revaluationRepo.FindRevaluationByID(ctx, companyID, revaluationID)
	if err != nil {
		return nil, err
	}
	if revaluation.Status != domain.RevaluationPosted || revaluation.JournalEntryID == nil {
		return nil, ErrRevaluationNotPosted
	}

	originalEntry, err := s.journalRepo.FindEntryByID(ctx, companyID, *revaluation.JournalEntryID)
	if err != nil {
		return nil, fmt.Errorf("failed to load adjusting entry: %w", err)
	}
	originalLines, err := s.journalRepo.FindLinesByEntryID(ctx, originalEntry.EntryID)
	if err != nil {
		return nil, fmt.Errorf("failed to load adjusting entry lines: %w", err)
	}

	if err := s.requireOpenPeriod(ctx, companyID, revaluation.Year, revaluation.Month); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	entryID := uuid.NewString()
	reversedLines := make([]domain.EntryLine, len(originalLines))
	for i, ol := range originalLines {
		reversedLines[i] = domain.EntryLine{
			LineID:       uuid.NewString(),
			EntryID:      entryID,
			AccountID:    ol.AccountID,
			DebitAmount:  ol.CreditAmount,
			CreditAmount: ol.DebitAmount,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}
	}

	entry := domain.JournalEntry{
		EntryID:        entryID,
		CompanyID:      companyID,
		DocumentDate:   originalEntry.DocumentDate,
		AccountingDate: originalEntry.AccountingDate,
		Description:    fmt.Sprintf("Reversal of currency revaluation %04d-%02d", revaluation.Year, revaluation.Month),
		Status:         domain.Posted,
		DocumentRef:    &revaluationID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	entryNumber, err := s.revaluationRepo.ReverseRevaluation(ctx, revaluationID, entry, reversedLines, userID, now)
	if err != nil {
		logger.Error("Failed to reverse revaluation", slog.String("error", err.Error()), slog.String("revaluation_id", revaluationID))
		return nil, fmt.Errorf("failed to reverse revaluation: %w", err)
	}

	revaluation.Status = domain.RevaluationReversed
	revaluation.LastUpdatedAt = now
	revaluation.LastUpdatedBy = userID

	logger.Info("Revaluation reversed", slog.String("revaluation_id", revaluationID), slog.String("reversing_entry_id", entryID), slog.Int64("entry_number", entryNumber))
	return revaluation, nil
}

// Delete removes a PENDING revaluation with its lines. POSTED and REVERSED
// revaluations are part of the audit trail and can only be reversed.
func (s *revaluationService) Delete(ctx context.Context, companyID, revaluationID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	revaluation, err := s.revaluationRepo.FindRevaluationByID(ctx, companyID, revaluationID)
	if err != nil {
		return err
	}
	if revaluation.Status != domain.RevaluationPending {
		return ErrRevaluationNotPending
	}

	if err := s.revaluationRepo.DeleteRevaluation(ctx, companyID, revaluationID); err != nil {
		logger.Error("Failed to delete revaluation", slog.String("error", err.Error()), slog.String("revaluation_id", revaluationID))
		return fmt.Errorf("failed to delete revaluation: %w", err)
	}

	logger.Info("Revaluation deleted", slog.String("revaluation_id", revaluationID))
	return nil
}

// GetByID retrieves a revaluation with its lines.
func (s *revaluationService) GetByID(ctx context.Context, companyID, revaluationID string) (*domain.CurrencyRevaluation, error) {
	revaluation, err := s.revaluationRepo.FindRevaluationByID(ctx, companyID, revaluationID)
	if err != nil {
		return nil, err
	}
	lines, err := s.revaluationRepo.FindLinesByRevaluationID(ctx, revaluationID)
	if err != nil {
		return nil, fmt.Errorf("failed to load revaluation lines: %w", err)
	}
	revaluation.Lines = lines
	return revaluation, nil
}

// List retrieves revaluations, optionally filtered by status.
func (s *revaluationService) List(ctx context.Context, companyID string, status *domain.RevaluationStatus) ([]domain.CurrencyRevaluation, error) {
	revaluations, err := s.revaluationRepo.ListRevaluations(ctx, companyID, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list revaluations: %w", err)
	}
	return revaluations, nil
}

// requireOpenPeriod gates revaluation mutations on the target period's lock state,
// evaluated at the period-end date.
func (s *revaluationService) requireOpenPeriod(ctx context.Context, companyID string, year, month int) error {
	open, err := s.periodSvc.IsOpen(ctx, companyID, domain.PeriodEnd(year, month))
	if err != nil {
		return fmt.Errorf("failed to check accounting period: %w", err)
	}
	if !open {
		return fmt.Errorf("%w: period %04d-%02d", apperrors.ErrPeriodClosed, year, month)
	}
	return nil
}
