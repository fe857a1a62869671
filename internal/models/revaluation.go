package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// RevaluationStatus tracks the currency_revaluations state machine.
type RevaluationStatus string

const (
	RevaluationPending  RevaluationStatus = "PENDING"
	RevaluationPosted   RevaluationStatus = "POSTED"
	RevaluationReversed RevaluationStatus = "REVERSED"
)

// CurrencyRevaluation mirrors a row of the currency_revaluations table.
// JournalEntryID is populated once the adjustment has been posted.
type CurrencyRevaluation struct {
	RevaluationID  string            `db:"revaluation_id"`
	CompanyID      string            `db:"company_id"`
	Year           int               `db:"year"`
	Month          int               `db:"month"`
	Status         RevaluationStatus `db:"status"`
	TotalGains     decimal.Decimal   `db:"total_gains"`
	TotalLosses    decimal.Decimal   `db:"total_losses"`
	NetResult      decimal.Decimal   `db:"net_result"`
	JournalEntryID *string           `db:"journal_entry_id"`
	PostedAt       *time.Time        `db:"posted_at"`
	ReversedAt     *time.Time        `db:"reversed_at"`
	AuditFields
}

// RevaluationLine mirrors a row of the currency_revaluation_lines table.
// AccountCode is denormalized so the snapshot survives chart edits.
type RevaluationLine struct {
	LineID              string          `db:"line_id"`
	RevaluationID       string          `db:"revaluation_id"`
	AccountID           string          `db:"account_id"`
	AccountCode         string          `db:"account_code"`
	CurrencyCode        string          `db:"currency_code"`
	ForeignNetBalance   decimal.Decimal `db:"foreign_net_balance"`
	RecordedBaseBalance decimal.Decimal `db:"recorded_base_balance"`
	ExchangeRate        decimal.Decimal `db:"exchange_rate"`
	RevaluedBaseBalance decimal.Decimal `db:"revalued_base_balance"`
	Difference          decimal.Decimal `db:"difference"`
	IsGain              bool            `db:"is_gain"`
}
