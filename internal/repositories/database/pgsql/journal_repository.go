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

type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for journal entry and line data.
func newPgxJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepositoryFacade {
	return &PgxJournalRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxJournalRepository implements portsrepo.JournalRepositoryFacade
var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

const entrySelectColumns = `
	entry_id, company_id, entry_number, document_date, accounting_date,
	description, status, counterpart_id, document_ref,
	created_at, created_by, last_updated_at, last_updated_by
`

func scanJournalEntry(row pgx.Row) (models.JournalEntry, error) {
	var m models.JournalEntry
	err := row.Scan(
		&m.EntryID,
		&m.CompanyID,
		&m.EntryNumber,
		&m.DocumentDate,
		&m.AccountingDate,
		&m.Description,
		&m.Status,
		&m.CounterpartID,
		&m.DocumentRef,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveEntry persists a new entry with its lines in one transaction and returns
// the entry number allocated inside that transaction.
func (r *PgxJournalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.EntryLine) (int64, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer r.Rollback(ctx, tx) // Will be ignored if transaction is committed successfully

	entryNumber, err := insertJournalEntryTx(ctx, tx, entry, lines)
	if err != nil {
		return 0, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return 0, err
	}
	return entryNumber, nil
}

// ReplaceEntry updates a DRAFT entry's header fields and swaps its lines for the
// given set, all in one transaction. The entry number never changes. Both the
// entry's current period and the one it moves into must be open.
func (r *PgxJournalRepository) ReplaceEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.EntryLine) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := lockCompanyTx(ctx, tx, entry.CompanyID); err != nil {
		return err
	}
	currentDate, err := lockEntryDateTx(ctx, tx, entry.CompanyID, entry.EntryID)
	if err != nil {
		return err
	}
	if err := requireOpenPeriodTx(ctx, tx, entry.CompanyID, currentDate); err != nil {
		return err
	}
	if err := requireOpenPeriodTx(ctx, tx, entry.CompanyID, entry.AccountingDate); err != nil {
		return err
	}

	modelEntry := mapping.ToModelJournalEntry(entry)
	updateQuery := `
		UPDATE journal_entries
		SET document_date = $3,
		    accounting_date = $4,
		    description = $5,
		    counterpart_id = $6,
		    document_ref = $7,
		    last_updated_at = $8,
		    last_updated_by = $9
		WHERE entry_id = $1 AND company_id = $2 AND status = 'DRAFT' AND deleted_at IS NULL;
	`
	cmdTag, err := tx.Exec(ctx, updateQuery,
		modelEntry.EntryID,
		modelEntry.CompanyID,
		modelEntry.DocumentDate,
		modelEntry.AccountingDate,
		modelEntry.Description,
		modelEntry.CounterpartID,
		modelEntry.DocumentRef,
		modelEntry.LastUpdatedAt,
		modelEntry.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update journal entry "+modelEntry.EntryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("draft entry " + modelEntry.EntryID + " not found for update")
	}

	if _, err := tx.Exec(ctx, `DELETE FROM journal_entry_lines WHERE entry_id = $1;`, modelEntry.EntryID); err != nil {
		return apperrors.NewAppError(500, "failed to delete lines of entry "+modelEntry.EntryID, err)
	}
	if err := insertEntryLinesTx(ctx, tx, entry.EntryID, lines); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// lockEntryDateTx row-locks a live entry and returns its accounting date, so the
// period gate sees a date that cannot change under us.
func lockEntryDateTx(ctx context.Context, tx pgx.Tx, companyID, entryID string) (time.Time, error) {
	var accountingDate time.Time
	err := tx.QueryRow(ctx, `
		SELECT accounting_date
		FROM journal_entries
		WHERE entry_id = $1 AND company_id = $2 AND deleted_at IS NULL
		FOR UPDATE;
	`, entryID, companyID).Scan(&accountingDate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return time.Time{}, apperrors.NewNotFoundError("entry " + entryID + " not found")
		}
		return time.Time{}, apperrors.NewAppError(500, "failed to lock entry "+entryID, err)
	}
	return accountingDate, nil
}

// UpdateEntryStatus transitions an entry between DRAFT and POSTED. The check that
// the entry's period is still open runs inside the transaction, under the company
// lock, so a concurrent ClosePeriod cannot slip between check and update.
func (r *PgxJournalRepository) UpdateEntryStatus(ctx context.Context, companyID, entryID string, status domain.EntryStatus, updatedBy string, updatedAt time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := lockCompanyTx(ctx, tx, companyID); err != nil {
		return err
	}
	accountingDate, err := lockEntryDateTx(ctx, tx, companyID, entryID)
	if err != nil {
		return err
	}
	if err := requireOpenPeriodTx(ctx, tx, companyID, accountingDate); err != nil {
		return err
	}

	query := `
		UPDATE journal_entries
		SET status = $3,
		    last_updated_at = $4,
		    last_updated_by = $5
		WHERE entry_id = $1 AND company_id = $2 AND deleted_at IS NULL;
	`
	cmdTag, err := tx.Exec(ctx, query, entryID, companyID, status, updatedAt, updatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update status of entry "+entryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("entry " + entryID + " not found for status update")
	}
	return r.Commit(ctx, tx)
}

// SoftDeleteEntry marks a DRAFT entry as deleted. Deleted entries keep their
// entry numbers but disappear from reads and balance aggregations. The period
// gate runs inside the transaction under the company lock.
func (r *PgxJournalRepository) SoftDeleteEntry(ctx context.Context, companyID, entryID string, deletedBy string, deletedAt time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := lockCompanyTx(ctx, tx, companyID); err != nil {
		return err
	}
	accountingDate, err := lockEntryDateTx(ctx, tx, companyID, entryID)
	if err != nil {
		return err
	}
	if err := requireOpenPeriodTx(ctx, tx, companyID, accountingDate); err != nil {
		return err
	}

	query := `
		UPDATE journal_entries
		SET deleted_at = $3,
		    deleted_by = $4,
		    last_updated_at = $3,
		    last_updated_by = $4
		WHERE entry_id = $1 AND company_id = $2 AND status = 'DRAFT' AND deleted_at IS NULL;
	`
	cmdTag, err := tx.Exec(ctx, query, entryID, companyID, deletedAt, deletedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to soft delete entry "+entryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("draft entry " + entryID + " not found for delete")
	}
	return r.Commit(ctx, tx)
}

// FindEntryByID retrieves a journal entry header by its ID.
func (r *PgxJournalRepository) FindEntryByID(ctx context.Context, companyID, entryID string) (*domain.JournalEntry, error) {
	query := `
		SELECT ` + entrySelectColumns + `
		FROM journal_entries
		WHERE entry_id = $1 AND company_id = $2 AND deleted_at IS NULL;
	`
	m, err := scanJournalEntry(r.Pool.QueryRow(ctx, query, entryID, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find entry by ID "+entryID, err)
	}

	domainEntry := mapping.ToDomainJournalEntry(m)
	return &domainEntry, nil
}

// FindLinesByEntryID retrieves all lines associated with a specific entry.
func (r *PgxJournalRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.EntryLine, error) {
	query := `
		SELECT line_id, entry_id, account_id, debit_amount, credit_amount,
		       currency_code, currency_amount, exchange_rate, counterpart_id,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM journal_entry_lines
		WHERE entry_id = $1
		ORDER BY line_id;
	`
	rows, err := r.Pool.Query(ctx, query, entryID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query lines for entry "+entryID, err)
	}
	defer rows.Close()

	lines := []models.EntryLine{}
	for rows.Next() {
		var l models.EntryLine
		err := rows.Scan(
			&l.LineID,
			&l.EntryID,
			&l.AccountID,
			&l.DebitAmount,
			&l.CreditAmount,
			&l.CurrencyCode,
			&l.CurrencyAmount,
			&l.ExchangeRate,
			&l.CounterpartID,
			&l.CreatedAt,
			&l.CreatedBy,
			&l.LastUpdatedAt,
			&l.LastUpdatedBy,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan line row for entry "+entryID, err)
		}
		lines = append(lines, l)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating line rows for entry "+entryID, err)
	}

	return mapping.ToDomainEntryLineSlice(lines), nil
}

// ListEntries retrieves a paginated list of entries for a company using token-based pagination.
// Entries are returned in ascending entry-number order, which is total per company.
func (r *PgxJournalRepository) ListEntries(ctx context.Context, companyID string, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// We fetch one extra item to determine if there's a next page.
	fetchLimit := limit + 1

	baseQuery := `
		SELECT ` + entrySelectColumns + `
		FROM journal_entries
	`
	filterClause := `WHERE company_id = $1 AND deleted_at IS NULL`
	orderByClause := `ORDER BY entry_number ASC`

	var rows pgx.Rows
	var err error
	args := []interface{}{companyID}

	if nextToken != nil && *nextToken != "" {
		lastEntryNumber, decodeErr := pagination.DecodeEntryNumberToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}

		cursorClause := `AND entry_number > $2`
		args = append(args, lastEntryNumber)

		query := baseQuery + " " + filterClause + " " + cursorClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	} else {
		query := baseQuery + " " + filterClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	}

	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query entries for company "+companyID, err)
	}
	defer rows.Close()

	modelEntries := make([]models.JournalEntry, 0, fetchLimit)
	for rows.Next() {
		m, scanErr := scanJournalEntry(rows)
		if scanErr != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan entry row for company "+companyID, scanErr)
		}
		modelEntries = append(modelEntries, m)
	}

	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating entry rows for company "+companyID, err)
	}

	var nextTokenVal *string
	results := modelEntries
	if len(modelEntries) > limit {
		// The token points to the last item included in this response page;
		// the next query starts after it.
		lastEntry := modelEntries[limit-1]
		newToken := pagination.EncodeEntryNumberToken(lastEntry.EntryNumber)
		nextTokenVal = &newToken
		results = modelEntries[:limit]
	}

	return mapping.ToDomainJournalEntrySlice(results), nextTokenVal, nil
}

// AccountBaseBalance returns the base-currency net balance (debits minus credits)
// of an account over POSTED, non-deleted entries dated strictly before the cutoff.
// The exclusive bound lets a month-end caller pass the first instant of the next
// month and still count intraday timestamps on the last day.
func (r *PgxJournalRepository) AccountBaseBalance(ctx context.Context, companyID, accountID string, before time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(l.debit_amount - l.credit_amount), 0)
		FROM journal_entry_lines l
		JOIN journal_entries e ON l.entry_id = e.entry_id
		WHERE l.account_id = $1
		  AND e.company_id = $2
		  AND e.status = 'POSTED'
		  AND e.deleted_at IS NULL
		  AND e.accounting_date < $3;
	`
	var balance decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, accountID, companyID, before).Scan(&balance); err != nil {
		return decimal.Zero, apperrors.NewAppError(500, "failed to aggregate base balance for account "+accountID, err)
	}
	return balance, nil
}

// AccountForeignBalance returns the net foreign-currency balance of an account for
// one currency: the sum of currency amounts of debit lines minus credit lines,
// over POSTED, non-deleted entries dated strictly before the cutoff.
func (r *PgxJournalRepository) AccountForeignBalance(ctx context.Context, companyID, accountID, currencyCode string, before time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(
			CASE WHEN l.debit_amount <> 0 THEN l.currency_amount ELSE -l.currency_amount END
		), 0)
		FROM journal_entry_lines l
		JOIN journal_entries e ON l.entry_id = e.entry_id
		WHERE l.account_id = $1
		  AND e.company_id = $2
		  AND l.currency_code = $3
		  AND e.status = 'POSTED'
		  AND e.deleted_at IS NULL
		  AND e.accounting_date < $4;
	`
	var balance decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, accountID, companyID, currencyCode, before).Scan(&balance); err != nil {
		return decimal.Zero, apperrors.NewAppError(500, "failed to aggregate foreign balance for account "+accountID, err)
	}
	return balance, nil
}
