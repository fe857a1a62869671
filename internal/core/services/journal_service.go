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
	ErrEntryUnbalanced    = fmt.Errorf("%w: entry lines do not balance", apperrors.ErrValidation)
	ErrEntryMinLines      = fmt.Errorf("%w: entry must have at least two lines", apperrors.ErrValidation)
	ErrEntryMinAccounts   = fmt.Errorf("%w: entry must affect at least two different accounts", apperrors.ErrValidation)
	ErrInvalidLine        = fmt.Errorf("%w: malformed entry line", apperrors.ErrValidation)
	ErrAccountNotFound    = fmt.Errorf("%w: account not found", apperrors.ErrValidation)
	ErrAlreadyPosted      = fmt.Errorf("%w: entry is already posted", apperrors.ErrConflict)
	ErrEntryNotDraft      = fmt.Errorf("%w: entry is not in draft status", apperrors.ErrConflict)
	ErrEntryNotPosted     = fmt.Errorf("%w: entry is not posted", apperrors.ErrConflict)
	ErrCannotDeletePosted = fmt.Errorf("%w: posted entries must be unposted before deletion", apperrors.ErrConflict)
)

// journalService provides the journal entry lifecycle and balance reads.
type journalService struct {
	journalRepo  portsrepo.JournalRepositoryFacade
	accountSvc   portssvc.AccountSvcFacade
	periodSvc    portssvc.PeriodSvcFacade
	baseCurrency string
	epsilon      decimal.Decimal
}

// NewJournalService creates a new journal service.
func NewJournalService(journalRepo portsrepo.JournalRepositoryFacade, accountSvc portssvc.AccountSvcFacade, periodSvc portssvc.PeriodSvcFacade, baseCurrency string, epsilon decimal.Decimal) portssvc.JournalSvcFacade {
	return &journalService{
		journalRepo:  journalRepo,
		accountSvc:   accountSvc,
		periodSvc:    periodSvc,
		baseCurrency: baseCurrency,
		epsilon:      epsilon,
	}
}

var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// requireOpenPeriod fails with ErrPeriodClosed when the period containing date
// does not accept mutations.
func (s *journalService) requireOpenPeriod(ctx context.Context, companyID string, date time.Time) error {
	open, err := s.periodSvc.IsOpen(ctx, companyID, date)
	if err != nil {
		return fmt.Errorf("failed to check accounting period: %w", err)
	}
	if !open {
		year, month := domain.PeriodOf(date)
		return fmt.Errorf("%w: period %04d-%02d", apperrors.ErrPeriodClosed, year, month)
	}
	return nil
}

// buildLines converts request lines into domain lines after per-line validation.
func (s *journalService) buildLines(entryID string, reqLines []dto.EntryLineRequest, userID string, now time.Time) ([]domain.EntryLine, error) {
	lines := make([]domain.EntryLine, len(reqLines))
	for i, lr := range reqLines {
		if lr.CurrencyCode != nil && *lr.CurrencyCode == s.baseCurrency {
			return nil, fmt.Errorf("%w: line %d carries the base currency as a foreign currency", ErrInvalidLine, i)
		}
		line := domain.EntryLine{
			LineID:         uuid.NewString(),
			EntryID:        entryID,
			AccountID:      lr.AccountID,
			DebitAmount:    lr.DebitAmount,
			CreditAmount:   lr.CreditAmount,
			CurrencyCode:   lr.CurrencyCode,
			CurrencyAmount: lr.CurrencyAmount,
			ExchangeRate:   lr.ExchangeRate,
			CounterpartID:  lr.CounterpartID,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}
		if err := accounting.ValidateLine(line); err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrInvalidLine, i, err)
		}
		lines[i] = line
	}
	return lines, nil
}

// validateEntry runs the full create/update validation: line shapes, balance,
// account existence and the period gate for the accounting date.
func (s *journalService) validateEntry(ctx context.Context, companyID string, accountingDate time.Time, lines []domain.EntryLine) error {
	if len(lines) < 2 {
		return ErrEntryMinLines
	}
	accountSet := make(map[string]struct{}, len(lines))
	accountIDs := make([]string, 0, len(lines))
	for _, line := range lines {
		if _, seen := accountSet[line.AccountID]; !seen {
			accountSet[line.AccountID] = struct{}{}
			accountIDs = append(accountIDs, line.AccountID)
		}
	}
	if len(accountSet) < 2 {
		return ErrEntryMinAccounts
	}

	if err := accounting.ValidateBalance(lines, s.epsilon); err != nil {
		var unbalanced *accounting.UnbalancedError
		if errors.As(err, &unbalanced) {
			return fmt.Errorf("%w: difference is %s", ErrEntryUnbalanced, unbalanced.Difference.String())
		}
		return fmt.Errorf("%w: %v", ErrInvalidLine, err)
	}

	if err := s.requireOpenPeriod(ctx, companyID, accountingDate); err != nil {
		return err
	}

	accountsMap, err := s.accountSvc.GetAccountsByIDs(ctx, companyID, accountIDs)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: %v", ErrAccountNotFound, err)
		}
		return fmt.Errorf("failed to fetch accounts: %w", err)
	}
	for _, id := range accountIDs {
		acc, found := accountsMap[id]
		if !found {
			return fmt.Errorf("%w: ID %s", ErrAccountNotFound, id)
		}
		if !acc.IsActive {
			return fmt.Errorf("%w: account %s is inactive", apperrors.ErrValidation, id)
		}
	}
	return nil
}

// CreateEntry validates and persists a new DRAFT entry with its lines. The entry
// number is allocated inside the repository transaction together with the insert.
func (s *journalService) CreateEntry(ctx context.Context, companyID string, req dto.CreateJournalEntryRequest, creatorUserID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	entryID := uuid.NewString()

	lines, err := s.buildLines(entryID, req.Lines, creatorUserID, now)
	if err != nil {
		return nil, err
	}
	if err := s.validateEntry(ctx, companyID, req.AccountingDate, lines); err != nil {
		return nil, err
	}

	entry := domain.JournalEntry{
		EntryID:        entryID,
		CompanyID:      companyID,
		DocumentDate:   req.DocumentDate,
		AccountingDate: req.AccountingDate,
		Description:    req.Description,
		Status:         domain.Draft,
		CounterpartID:  req.CounterpartID,
		DocumentRef:    req.DocumentRef,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	entryNumber, err := s.journalRepo.SaveEntry(ctx, entry, lines)
	if err != nil {
		logger.Error("Failed to save journal entry", slog.String("error", err.Error()), slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to save journal entry: %w", err)
	}
	entry.EntryNumber = entryNumber
	entry.Lines = lines

	logger.Info("Journal entry created", slog.String("entry_id", entry.EntryID), slog.Int64("entry_number", entryNumber), slog.String("company_id", companyID))
	return &entry, nil
}

// UpdateEntry replaces a DRAFT entry's header and lines after re-validation.
// Both the entry's current period and the requested accounting date's period must
// be open, so entries cannot be moved out of or into a closed period.
func (s *journalService) UpdateEntry(ctx context.Context, companyID, entryID string, req dto.CreateJournalEntryRequest, userID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	existing, err := s.journalRepo.FindEntryByID(ctx, companyID, entryID)
	if err != nil {
		return nil, err
	}
	if existing.Status != domain.Draft {
		return nil, ErrAlreadyPosted
	}
	if err := s.requireOpenPeriod(ctx, companyID, existing.AccountingDate); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	lines, err := s.buildLines(entryID, req.Lines, userID, now)
	if err != nil {
		return nil, err
	}
	if err := s.validateEntry(ctx, companyID, req.AccountingDate, lines); err != nil {
		return nil, err
	}

	updated := *existing
	updated.DocumentDate = req.DocumentDate
	updated.AccountingDate = req.AccountingDate
	updated.Description = req.Description
	updated.CounterpartID = req.CounterpartID
	updated.DocumentRef = req.DocumentRef
	updated.LastUpdatedAt = now
	updated.LastUpdatedBy = userID

	if err := s.journalRepo.ReplaceEntry(ctx, updated, lines); err != nil {
		logger.Error("Failed to update journal entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to update journal entry: %w", err)
	}
	updated.Lines = lines

	logger.Info("Journal entry updated", slog.String("entry_id", entryID))
	return &updated, nil
}

// PostEntry transitions DRAFT -> POSTED. Balance and the period gate are
// re-checked here even though create validated them, since both ledger state and
// period locks may have moved since the draft was written.
func (s *journalService) PostEntry(ctx context.Context, companyID, entryID, userID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entry, err := s.journalRepo.FindEntryByID(ctx, companyID, entryID)
	if err != nil {
		return nil, err
	}
	if entry.Status != domain.Draft {
		return nil, ErrAlreadyPosted
	}

	lines, err := s.journalRepo.FindLinesByEntryID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to load entry lines: %w", err)
	}
	if err := accounting.ValidateBalance(lines, s.epsilon); err != nil {
		var unbalanced *accounting.UnbalancedError
		if errors.As(err, &unbalanced) {
			return nil, fmt.Errorf("%w: difference is %s", ErrEntryUnbalanced, unbalanced.Difference.String())
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidLine, err)
	}
	if err := s.requireOpenPeriod(ctx, companyID, entry.AccountingDate); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := s.journalRepo.UpdateEntryStatus(ctx, companyID, entryID, domain.Posted, userID, now); err != nil {
		logger.Error("Failed to post journal entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to post journal entry: %w", err)
	}

	entry.Status = domain.Posted
	entry.LastUpdatedAt = now
	entry.LastUpdatedBy = userID
	entry.Lines = lines

	logger.Info("Journal entry posted", slog.String("entry_id", entryID), slog.Int64("entry_number", entry.EntryNumber))
	return entry, nil
}

// UnpostEntry transitions POSTED -> DRAFT, provided the entry's period is still open.
func (s *journalService) UnpostEntry(ctx context.Context, companyID, entryID, userID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entry, err := s.journalRepo.FindEntryByID(ctx, companyID, entryID)
	if err != nil {
		return nil, err
	}
	if entry.Status != domain.Posted {
		return nil, ErrEntryNotPosted
	}
	if err := s.requireOpenPeriod(ctx, companyID, entry.AccountingDate); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := s.journalRepo.UpdateEntryStatus(ctx, companyID, entryID, domain.Draft, userID, now); err != nil {
		logger.Error("Failed to unpost journal entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to unpost journal entry: %w", err)
	}

	entry.Status = domain.Draft
	entry.LastUpdatedAt = now
	entry.LastUpdatedBy = userID

	logger.Info("Journal entry unposted", slog.String("entry_id", entryID))
	return entry, nil
}

// DeleteEntry soft-deletes a DRAFT entry. Posted entries must be unposted first.
func (s *journalService) DeleteEntry(ctx context.Context, companyID, entryID, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	entry, err := s.journalRepo.FindEntryByID(ctx, companyID, entryID)
	if err != nil {
		return err
	}
	if entry.Status != domain.Draft {
		return ErrCannotDeletePosted
	}
	if err := s.requireOpenPeriod(ctx, companyID, entry.AccountingDate); err != nil {
		return err
	}

	if err := s.journalRepo.SoftDeleteEntry(ctx, companyID, entryID, userID, time.Now().UTC()); err != nil {
		logger.Error("Failed to delete journal entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		return fmt.Errorf("failed to delete journal entry: %w", err)
	}

	logger.Info("Journal entry deleted", slog.String("entry_id", entryID))
	return nil
}

// GetEntryByID retrieves an entry with its lines.
func (s *journalService) GetEntryByID(ctx context.Context, companyID, entryID string) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindEntryByID(ctx, companyID, entryID)
	if err != nil {
		return nil, err
	}
	lines, err := s.journalRepo.FindLinesByEntryID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to load entry lines: %w", err)
	}
	entry.Lines = lines
	return entry, nil
}

// ListEntries retrieves a paginated list of entries for a company.
func (s *journalService) ListEntries(ctx context.Context, companyID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}
	entries, nextToken, err := s.journalRepo.ListEntries(ctx, companyID, limit, params.NextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list journal entries: %w", err)
	}

	responses := make([]dto.JournalEntryResponse, len(entries))
	for i := range entries {
		responses[i] = dto.ToJournalEntryResponse(&entries[i])
	}
	return &dto.ListEntriesResponse{Entries: responses, NextToken: nextToken}, nil
}

// ValidateEntryBalance runs the standalone balance check against a stored entry.
func (s *journalService) ValidateEntryBalance(ctx context.Context, companyID, entryID string) (*dto.BalanceCheckResponse, error) {
	if _, err := s.journalRepo.FindEntryByID(ctx, companyID, entryID); err != nil {
		return nil, err
	}
	lines, err := s.journalRepo.FindLinesByEntryID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to load entry lines: %w", err)
	}
	if err := accounting.ValidateBalance(lines, s.epsilon); err != nil {
		msg := err.Error()
		return &dto.BalanceCheckResponse{Valid: false, Message: &msg}, nil
	}
	return &dto.BalanceCheckResponse{Valid: true}, nil
}

// AccountBalance aggregates the net balance of an account over POSTED lines up to
// and including asOf. The repository bound is exclusive, so the inclusive instant
// is converted here.
func (s *journalService) AccountBalance(ctx context.Context, companyID, accountID string, asOf time.Time, currencyCode *string) (*dto.AccountBalanceResponse, error) {
	if _, err := s.accountSvc.GetAccountByID(ctx, companyID, accountID); err != nil {
		return nil, err
	}

	before := asOf.Add(time.Nanosecond)
	base, err := s.journalRepo.AccountBaseBalance(ctx, companyID, accountID, before)
	if err != nil {
		return nil, fmt.Errorf("failed to compute base balance: %w", err)
	}
	resp := &dto.AccountBalanceResponse{
		AccountID:   accountID,
		AsOf:        asOf,
		BaseBalance: base,
	}
	if currencyCode != nil && *currencyCode != "" {
		foreign, err := s.journalRepo.AccountForeignBalance(ctx, companyID, accountID, *currencyCode, before)
		if err != nil {
			return nil, fmt.Errorf("failed to compute foreign balance: %w", err)
		}
		resp.CurrencyCode = currencyCode
		resp.CurrencyBalance = &foreign
	}
	return resp, nil
}
