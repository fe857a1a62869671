package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus indicates the lifecycle state of a journal entry.
type EntryStatus string

const (
	Draft  EntryStatus = "DRAFT"
	Posted EntryStatus = "POSTED"
)

// JournalEntry mirrors a row of the journal_entries table.
type JournalEntry struct {
	EntryID        string      `db:"entry_id"`
	CompanyID      string      `db:"company_id"`
	EntryNumber    int64       `db:"entry_number"`
	DocumentDate   time.Time   `db:"document_date"`
	AccountingDate time.Time   `db:"accounting_date"`
	Description    string      `db:"description"`
	Status         EntryStatus `db:"status"`
	CounterpartID  *string     `db:"counterpart_id"`
	DocumentRef    *string     `db:"document_ref"`
	DeletedAt      *time.Time  `db:"deleted_at"`
	DeletedBy      *string     `db:"deleted_by"`
	AuditFields
}

// EntryLine mirrors a row of the journal_entry_lines table.
type EntryLine struct {
	LineID         string           `db:"line_id"`
	EntryID        string           `db:"entry_id"`
	AccountID      string           `db:"account_id"`
	DebitAmount    decimal.Decimal  `db:"debit_amount"`
	CreditAmount   decimal.Decimal  `db:"credit_amount"`
	CurrencyCode   *string          `db:"currency_code"`
	CurrencyAmount *decimal.Decimal `db:"currency_amount"`
	ExchangeRate   *decimal.Decimal `db:"exchange_rate"`
	CounterpartID  *string          `db:"counterpart_id"`
	AuditFields
}
