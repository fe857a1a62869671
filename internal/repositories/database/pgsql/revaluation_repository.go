package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/katehonz/baraba-sub001/internal/apperrors"
	"github.com/katehonz/baraba-sub001/internal/core/domain"
	portsrepo "github.com/katehonz/baraba-sub001/internal/core/ports/repositories"
	"github.com/katehonz/baraba-sub001/internal/models"
	"github.com/katehonz/baraba-sub001/internal/utils/mapping"
)

type PgxRevaluationRepository struct {
	BaseRepository
}

// newPgxRevaluationRepository creates a new repository for currency revaluation data.
func newPgxRevaluationRepository(pool *pgxpool.Pool) portsrepo.RevaluationRepositoryFacade {
	return &PgxRevaluationRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxRevaluationRepository implements portsrepo.RevaluationRepositoryFacade
var _ portsrepo.RevaluationRepositoryFacade = (*PgxRevaluationRepository)(nil)

const revaluationSelectColumns = `
	revaluation_id, company_id, year, month, status,
	total_gains, total_losses, net_result, journal_entry_id,
	created_at, created_by, last_updated_at, last_updated_by
`

func scanCurrencyRevaluation(row pgx.Row) (models.CurrencyRevaluation, error) {
	var m models.CurrencyRevaluation
	err := row.Scan(
		&m.RevaluationID,
		&m.CompanyID,
		&m.Year,
		&m.Month,
		&m.Status,
		&m.TotalGains,
		&m.TotalLosses,
		&m.NetResult,
		&m.JournalEntryID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveRevaluation persists a new PENDING revaluation with its lines in one transaction.
func (r *PgxRevaluationRepository) SaveRevaluation(ctx context.Context, revaluation domain.CurrencyRevaluation, lines []domain.RevaluationLine) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelCurrencyRevaluation(revaluation)
	headerQuery := `
		INSERT INTO currency_revaluations (
			revaluation_id, company_id, year, month, status,
			total_gains, total_losses, net_result, journal_entry_id,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err = tx.Exec(ctx, headerQuery,
		m.RevaluationID,
		m.CompanyID,
		m.Year,
		m.Month,
		m.Status,
		m.TotalGains,
		m.TotalLosses,
		m.NetResult,
		m.JournalEntryID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			// The partial unique index on (company_id, year, month) for non-REVERSED
			// rows fires when an active revaluation already exists for the period.
			return fmt.Errorf("%w: active revaluation already exists for %04d-%02d", apperrors.ErrDuplicate, m.Year, m.Month)
		}
		return apperrors.NewAppError(500, "failed to insert revaluation "+m.RevaluationID, err)
	}

	batch := &pgx.Batch{}
	lineQuery := `
		INSERT INTO currency_revaluation_lines (
			line_id, revaluation_id, account_id, account_code, currency_code,
			foreign_net_balance, recorded_base_balance, exchange_rate,
			revalued_base_balance, difference, is_gain
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	for _, line := range lines {
		ml := mapping.ToModelRevaluationLine(line)
		ml.RevaluationID = m.RevaluationID
		batch.Queue(lineQuery,
			ml.LineID,
			ml.RevaluationID,
			ml.AccountID,
			ml.AccountCode,
			ml.CurrencyCode,
			ml.ForeignNetBalance,
			ml.RecordedBaseBalance,
			ml.ExchangeRate,
			ml.RevaluedBaseBalance,
			ml.Difference,
			ml.IsGain,
		)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to execute line batch for revaluation "+m.RevaluationID, err)
	}

	return r.Commit(ctx, tx)
}

// PostRevaluation inserts the adjusting journal entry as POSTED and flips the
// revaluation from PENDING to POSTED in one transaction. It returns the entry
// number allocated for the adjusting entry.
func (r *PgxRevaluationRepository) PostRevaluation(ctx context.Context, revaluationID string, entry domain.JournalEntry, lines []domain.EntryLine, updatedBy string, updatedAt time.Time) (int64, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer r.Rollback(ctx, tx)

	entryNumber, err := insertJournalEntryTx(ctx, tx, entry, lines)
	if err != nil {
		return 0, err
	}

	updateQuery := `
		UPDATE currency_revaluations
		SET status = 'POSTED',
		    journal_entry_id = $2,
		    posted_at = $3,
		    last_updated_at = $3,
		    last_updated_by = $4
		WHERE revaluation_id = $1 AND status = 'PENDING';
	`
	cmdTag, err := tx.Exec(ctx, updateQuery, revaluationID, entry.EntryID, updatedAt, updatedBy)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to mark revaluation "+revaluationID+" posted", err)
	}
	if cmdTag.RowsAffected() == 0 {
		// Lost a race with another caller; the rollback discards the entry insert.
		return 0, apperrors.ErrConflict
	}

	if err := r.Commit(ctx, tx); err != nil {
		return 0, err
	}
	return entryNumber, nil
}

// ReverseRevaluation inserts the negating journal entry as POSTED and flips the
// revaluation from POSTED to REVERSED in one transaction. It returns the entry
// number allocated for the reversal entry.
func (r *PgxRevaluationRepository) ReverseRevaluation(ctx context.Context, revaluationID string, entry domain.JournalEntry, lines []domain.EntryLine, updatedBy string, updatedAt time.Time) (int64, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer r.Rollback(ctx, tx)

	entryNumber, err := insertJournalEntryTx(ctx, tx, entry, lines)
	if err != nil {
		return 0, err
	}

	updateQuery := `
		UPDATE currency_revaluations
		SET status = 'REVERSED',
		    reversed_at = $2,
		    last_updated_at = $2,
		    last_updated_by = $3
		WHERE revaluation_id = $1 AND status = 'POSTED';
	`
	cmdTag, err := tx.Exec(ctx, updateQuery, revaluationID, updatedAt, updatedBy)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to mark revaluation "+revaluationID+" reversed", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return 0, apperrors.ErrConflict
	}

	if err := r.Commit(ctx, tx); err != nil {
		return 0, err
	}
	return entryNumber, nil
}

// DeleteRevaluation removes a PENDING revaluation and its lines.
func (r *PgxRevaluationRepository) DeleteRevaluation(ctx context.Context, companyID, revaluationID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := tx.Exec(ctx, `DELETE FROM currency_revaluation_lines WHERE revaluation_id = $1;`, revaluationID); err != nil {
		return apperrors.NewAppError(500, "failed to delete lines of revaluation "+revaluationID, err)
	}

	cmdTag, err := tx.Exec(ctx, `
		DELETE FROM currency_revaluations
		WHERE revaluation_id = $1 AND company_id = $2 AND status = 'PENDING';
	`, revaluationID, companyID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete revaluation "+revaluationID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("pending revaluation " + revaluationID + " not found for delete")
	}

	return r.Commit(ctx, tx)
}

// FindRevaluationByID retrieves a revaluation header by its ID.
func (r *PgxRevaluationRepository) FindRevaluationByID(ctx context.Context, companyID, revaluationID string) (*domain.CurrencyRevaluation, error) {
	query := `
		SELECT ` + revaluationSelectColumns + `
		FROM currency_revaluations
		WHERE revaluation_id = $1 AND company_id = $2;
	`
	m, err := scanCurrencyRevaluation(r.Pool.QueryRow(ctx, query, revaluationID, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find revaluation by ID "+revaluationID, err)
	}

	domainRevaluation := mapping.ToDomainCurrencyRevaluation(m)
	return &domainRevaluation, nil
}

// FindActiveRevaluation retrieves the non-REVERSED revaluation for (company, year, month).
func (r *PgxRevaluationRepository) FindActiveRevaluation(ctx context.Context, companyID string, year, month int) (*domain.CurrencyRevaluation, error) {
	query := `
		SELECT ` + revaluationSelectColumns + `
		FROM currency_revaluations
		WHERE company_id = $1 AND year = $2 AND month = $3 AND status <> 'REVERSED';
	`
	m, err := scanCurrencyRevaluation(r.Pool.QueryRow(ctx, query, companyID, year, month))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find active revaluation for company "+companyID, err)
	}

	domainRevaluation := mapping.ToDomainCurrencyRevaluation(m)
	return &domainRevaluation, nil
}

// FindLinesByRevaluationID retrieves all lines associated with one revaluation.
func (r *PgxRevaluationRepository) FindLinesByRevaluationID(ctx context.Context, revaluationID string) ([]domain.RevaluationLine, error) {
	query := `
		SELECT line_id, revaluation_id, account_id, account_code, currency_code,
		       foreign_net_balance, recorded_base_balance, exchange_rate,
		       revalued_base_balance, difference, is_gain
		FROM currency_revaluation_lines
		WHERE revaluation_id = $1
		ORDER BY account_code;
	`
	rows, err := r.Pool.Query(ctx, query, revaluationID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query lines for revaluation "+revaluationID, err)
	}
	defer rows.Close()

	lines := []models.RevaluationLine{}
	for rows.Next() {
		var l models.RevaluationLine
		err := rows.Scan(
			&l.LineID,
			&l.RevaluationID,
			&l.AccountID,
			&l.AccountCode,
			&l.CurrencyCode,
			&l.ForeignNetBalance,
			&l.RecordedBaseBalance,
			&l.ExchangeRate,
			&l.RevaluedBaseBalance,
			&l.Difference,
			&l.IsGain,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan line row for revaluation "+revaluationID, err)
		}
		lines = append(lines, l)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating line rows for revaluation "+revaluationID, err)
	}

	return mapping.ToDomainRevaluationLineSlice(lines), nil
}

// ListRevaluations retrieves revaluations for a company, optionally filtered by
// status, newest period first.
func (r *PgxRevaluationRepository) ListRevaluations(ctx context.Context, companyID string, status *domain.RevaluationStatus) ([]domain.CurrencyRevaluation, error) {
	query := `
		SELECT ` + revaluationSelectColumns + `
		FROM currency_revaluations
		WHERE company_id = $1
	`
	args := []interface{}{companyID}
	if status != nil {
		args = append(args, *status)
		query += ` AND status = $` + strconv.Itoa(len(args))
	}
	query += ` ORDER BY year DESC, month DESC, created_at DESC;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query revaluations for company "+companyID, err)
	}
	defer rows.Close()

	revaluations := []models.CurrencyRevaluation{}
	for rows.Next() {
		m, scanErr := scanCurrencyRevaluation(rows)
		if scanErr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan revaluation row for company "+companyID, scanErr)
		}
		revaluations = append(revaluations, m)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating revaluation rows for company "+companyID, err)
	}

	return mapping.ToDomainCurrencyRevaluationSlice(revaluations), nil
}
