package models

import "time"

// PeriodStatus indicates whether an accounting period accepts ledger mutations.
type PeriodStatus string

const (
	PeriodOpen   PeriodStatus = "OPEN"
	PeriodClosed PeriodStatus = "CLOSED"
)

// AccountingPeriod mirrors a row of the accounting_periods table.
// (company_id, year, month) carries a unique constraint.
type AccountingPeriod struct {
	PeriodID  string       `db:"period_id"`
	CompanyID string       `db:"company_id"`
	Year      int          `db:"year"`
	Month     int          `db:"month"`
	Status    PeriodStatus `db:"status"`
	ClosedAt  *time.Time   `db:"closed_at"`
	ClosedBy  *string      `db:"closed_by"`
	Notes     *string      `db:"notes"`
	AuditFields
}
