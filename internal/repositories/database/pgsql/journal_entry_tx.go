package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/katehonz/baraba-sub001/internal/apperrors"
	"github.com/katehonz/baraba-sub001/internal/core/domain"
	"github.com/katehonz/baraba-sub001/internal/utils/mapping"
)

// lockCompanyTx takes pg_advisory_xact_lock on the company ID so that concurrent
// ledger mutations and period closes for one company serialize. The lock is
// released when the surrounding transaction ends.
func lockCompanyTx(ctx context.Context, tx pgx.Tx, companyID string) error {
	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1));`, companyID); err != nil {
		return apperrors.NewAppError(500, "failed to acquire company lock for "+companyID, err)
	}
	return nil
}

// requireOpenPeriodTx re-checks the accounting period of the given date inside the
// mutating transaction, after the company lock is held. A missing period row means
// OPEN; only an explicit CLOSED row rejects the mutation. This is the authoritative
// gate; the service-level check is advisory and can race with ClosePeriod.
func requireOpenPeriodTx(ctx context.Context, tx pgx.Tx, companyID string, date time.Time) error {
	year, month := domain.PeriodOf(date)

	var status string
	err := tx.QueryRow(ctx, `
		SELECT status
		FROM accounting_periods
		WHERE company_id = $1 AND year = $2 AND month = $3;
	`, companyID, year, month).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		return apperrors.NewAppError(500, fmt.Sprintf("failed to check period %04d-%02d for company %s", year, month, companyID), err)
	}
	if domain.PeriodStatus(status) == domain.PeriodClosed {
		return fmt.Errorf("%w: period %04d-%02d", apperrors.ErrPeriodClosed, year, month)
	}
	return nil
}

// insertJournalEntryTx inserts a journal entry header and its lines inside the
// given transaction, allocating the next entry number for the company.
//
// Number allocation holds the per-company advisory lock so that two concurrent
// inserts for one company serialize. The entry's accounting period is re-checked
// under that lock. Soft-deleted entries keep their numbers, so the MAX scan
// deliberately ignores the deleted_at filter.
func insertJournalEntryTx(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry, lines []domain.EntryLine) (int64, error) {
	if err := lockCompanyTx(ctx, tx, entry.CompanyID); err != nil {
		return 0, err
	}
	if err := requireOpenPeriodTx(ctx, tx, entry.CompanyID, entry.AccountingDate); err != nil {
		return 0, err
	}

	var entryNumber int64
	err := tx.QueryRow(ctx, `
		SELECT COALESCE(MAX(entry_number), 0) + 1
		FROM journal_entries
		WHERE company_id = $1;
	`, entry.CompanyID).Scan(&entryNumber)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to allocate entry number for company "+entry.CompanyID, err)
	}

	modelEntry := mapping.ToModelJournalEntry(entry)
	modelEntry.EntryNumber = entryNumber

	entryQuery := `
		INSERT INTO journal_entries (
			entry_id, company_id, entry_number, document_date, accounting_date,
			description, status, counterpart_id, document_ref,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err = tx.Exec(ctx, entryQuery,
		modelEntry.EntryID,
		modelEntry.CompanyID,
		modelEntry.EntryNumber,
		modelEntry.DocumentDate,
		modelEntry.AccountingDate,
		modelEntry.Description,
		modelEntry.Status,
		modelEntry.CounterpartID,
		modelEntry.DocumentRef,
		modelEntry.CreatedAt,
		modelEntry.CreatedBy,
		modelEntry.LastUpdatedAt,
		modelEntry.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			// Another transaction won the (company_id, entry_number) slot despite
			// the lock; the caller can retry with a fresh number.
			return 0, fmt.Errorf("%w: entry number %d already taken for company %s", apperrors.ErrConcurrency, entryNumber, modelEntry.CompanyID)
		}
		return 0, apperrors.NewAppError(500, "failed to insert journal entry "+modelEntry.EntryID, err)
	}

	if err := insertEntryLinesTx(ctx, tx, entry.EntryID, lines); err != nil {
		return 0, err
	}

	return entryNumber, nil
}

// insertEntryLinesTx batch-inserts the lines of one entry inside the given transaction.
func insertEntryLinesTx(ctx context.Context, tx pgx.Tx, entryID string, lines []domain.EntryLine) error {
	batch := &pgx.Batch{}
	lineQuery := `
		INSERT INTO journal_entry_lines (
			line_id, entry_id, account_id, debit_amount, credit_amount,
			currency_code, currency_amount, exchange_rate, counterpart_id,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	for _, line := range lines {
		modelLine := mapping.ToModelEntryLine(line)
		modelLine.EntryID = entryID
		batch.Queue(lineQuery,
			modelLine.LineID,
			modelLine.EntryID,
			modelLine.AccountID,
			modelLine.DebitAmount,
			modelLine.CreditAmount,
			modelLine.CurrencyCode,
			modelLine.CurrencyAmount,
			modelLine.ExchangeRate,
			modelLine.CounterpartID,
			modelLine.CreatedAt,
			modelLine.CreatedBy,
			modelLine.LastUpdatedAt,
			modelLine.LastUpdatedBy,
		)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to execute line batch for entry "+entryID, err)
	}
	return nil
}
