package pgsql

import (
	"context"
	"errors"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/katehonz/baraba-sub001/internal/apperrors"
	"github.com/katehonz/baraba-sub001/internal/core/domain"
	portsrepo "github.com/katehonz/baraba-sub001/internal/core/ports/repositories"
	"github.com/katehonz/baraba-sub001/internal/models"
	"github.com/katehonz/baraba-sub001/internal/utils/mapping"
)

type PgxPeriodRepository struct {
	BaseRepository
}

// newPgxPeriodRepository creates a new repository for accounting period data.
func newPgxPeriodRepository(pool *pgxpool.Pool) portsrepo.PeriodRepositoryFacade {
	return &PgxPeriodRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxPeriodRepository implements portsrepo.PeriodRepositoryFacade
var _ portsrepo.PeriodRepositoryFacade = (*PgxPeriodRepository)(nil)

const periodSelectColumns = `
	period_id, company_id, year, month, status, closed_at, closed_by, notes,
	created_at, created_by, last_updated_at, last_updated_by
`

func scanAccountingPeriod(row pgx.Row) (models.AccountingPeriod, error) {
	var m models.AccountingPeriod
	err := row.Scan(
		&m.PeriodID,
		&m.CompanyID,
		&m.Year,
		&m.Month,
		&m.Status,
		&m.ClosedAt,
		&m.ClosedBy,
		&m.Notes,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// FindPeriod retrieves the period row for (company, year, month).
func (r *PgxPeriodRepository) FindPeriod(ctx context.Context, companyID string, year, month int) (*domain.AccountingPeriod, error) {
	query := `
		SELECT ` + periodSelectColumns + `
		FROM accounting_periods
		WHERE company_id = $1 AND year = $2 AND month = $3;
	`
	m, err := scanAccountingPeriod(r.Pool.QueryRow(ctx, query, companyID, year, month))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find period for company "+companyID, err)
	}

	domainPeriod := mapping.ToDomainAccountingPeriod(m)
	return &domainPeriod, nil
}

// ListPeriods retrieves periods for a company with optional year, month and
// status filters, ordered by (year, month).
func (r *PgxPeriodRepository) ListPeriods(ctx context.Context, companyID string, year, month *int, status *domain.PeriodStatus) ([]domain.AccountingPeriod, error) {
	query := `
		SELECT ` + periodSelectColumns + `
		FROM accounting_periods
		WHERE company_id = $1
	`
	args := []interface{}{companyID}
	if year != nil {
		args = append(args, *year)
		query += ` AND year = $` + strconv.Itoa(len(args))
	}
	if month != nil {
		args = append(args, *month)
		query += ` AND month = $` + strconv.Itoa(len(args))
	}
	if status != nil {
		args = append(args, *status)
		query += ` AND status = $` + strconv.Itoa(len(args))
	}
	query += ` ORDER BY year, month;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query periods for company "+companyID, err)
	}
	defer rows.Close()

	periods := []models.AccountingPeriod{}
	for rows.Next() {
		m, scanErr := scanAccountingPeriod(rows)
		if scanErr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan period row for company "+companyID, scanErr)
		}
		periods = append(periods, m)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating period rows for company "+companyID, err)
	}

	return mapping.ToDomainAccountingPeriodSlice(periods), nil
}

// UpsertPeriod inserts or fully updates the period row for its natural key
// (company_id, year, month). It runs under the same per-company advisory lock the
// ledger mutations hold, so a close cannot interleave with an in-flight entry
// mutation for the company.
func (r *PgxPeriodRepository) UpsertPeriod(ctx context.Context, period domain.AccountingPeriod) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelAccountingPeriod(period)
	if err := lockCompanyTx(ctx, tx, m.CompanyID); err != nil {
		return err
	}

	query := `
		INSERT INTO accounting_periods (
			period_id, company_id, year, month, status, closed_at, closed_by, notes,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (company_id, year, month) DO UPDATE
		SET status = EXCLUDED.status,
		    closed_at = EXCLUDED.closed_at,
		    closed_by = EXCLUDED.closed_by,
		    notes = EXCLUDED.notes,
		    last_updated_at = EXCLUDED.last_updated_at,
		    last_updated_by = EXCLUDED.last_updated_by;
	`
	if _, err := tx.Exec(ctx, query,
		m.PeriodID,
		m.CompanyID,
		m.Year,
		m.Month,
		m.Status,
		m.ClosedAt,
		m.ClosedBy,
		m.Notes,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	); err != nil {
		return apperrors.NewAppError(500, "failed to upsert period for company "+m.CompanyID, err)
	}
	return r.Commit(ctx, tx)
}

// InsertPeriodsIfAbsent inserts the given periods, leaving already existing
// (company_id, year, month) rows untouched.
func (r *PgxPeriodRepository) InsertPeriodsIfAbsent(ctx context.Context, periods []domain.AccountingPeriod) error {
	if len(periods) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	query := `
		INSERT INTO accounting_periods (
			period_id, company_id, year, month, status, closed_at, closed_by, notes,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (company_id, year, month) DO NOTHING;
	`
	for _, period := range periods {
		m := mapping.ToModelAccountingPeriod(period)
		batch.Queue(query,
			m.PeriodID,
			m.CompanyID,
			m.Year,
			m.Month,
			m.Status,
			m.ClosedAt,
			m.ClosedBy,
			m.Notes,
			m.CreatedAt,
			m.CreatedBy,
			m.LastUpdatedAt,
			m.LastUpdatedBy,
		)
	}

	br := r.Pool.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to execute period insert batch", err)
	}
	return nil
}
