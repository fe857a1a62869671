package domain

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

// JournalEntry represents a single, balanced financial event composed of entry lines.
// Entries are created as DRAFT and become immutable (within an open period) once POSTED.
type JournalEntry struct {
	EntryID        string      `json:"entryID"`        // Primary Key (e.g., UUID)
	CompanyID      string      `json:"companyID"`      // FK -> companies.company_id (Not Null)
	EntryNumber    int64       `json:"entryNumber"`    // Strictly increasing per company, assigned on create
	DocumentDate   time.Time   `json:"documentDate"`   // Date on the source document
	AccountingDate time.Time   `json:"accountingDate"` // Date the entry takes effect in the ledger
	Description    string      `json:"description"`
	Status         EntryStatus `json:"status"`
	CounterpartID  *string     `json:"counterpartID,omitempty"`
	DocumentRef    *string     `json:"documentRef,omitempty"` // Originating document reference
	Lines          []EntryLine `json:"lines,omitempty"`       // Often loaded separately
	AuditFields
}

// EntryLine represents a single line within a JournalEntry, affecting one account.
// Exactly one of DebitAmount / CreditAmount is non-zero. For lines denominated in a
// foreign currency, CurrencyCode, CurrencyAmount and ExchangeRate are set together.
type EntryLine struct {
	LineID         string           `json:"lineID"`  // Primary Key (e.g., UUID)
	EntryID        string           `json:"entryID"` // FK -> journal_entries.entry_id (Not Null)
	AccountID      string           `json:"accountID"`
	DebitAmount    decimal.Decimal  `json:"debitAmount"`  // Base currency
	CreditAmount   decimal.Decimal  `json:"creditAmount"` // Base currency
	CurrencyCode   *string          `json:"currencyCode,omitempty"`
	CurrencyAmount *decimal.Decimal `json:"currencyAmount,omitempty"`
	ExchangeRate   *decimal.Decimal `json:"exchangeRate,omitempty"`
	CounterpartID  *string          `json:"counterpartID,omitempty"`
	AuditFields
}

// IsDebit reports whether the line's non-zero side is the debit column.
func (l EntryLine) IsDebit() bool {
	return !l.DebitAmount.IsZero()
}

// BaseAmount returns the line's base-currency amount regardless of side.
func (l EntryLine) BaseAmount() decimal.Decimal {
	if l.IsDebit() {
		return l.DebitAmount
	}
	return l.CreditAmount
}
