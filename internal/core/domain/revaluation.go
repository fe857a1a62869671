package domain

import "github.com/shopspring/decimal"

// RevaluationStatus tracks the PENDING -> POSTED -> REVERSED state machine.
// No transition skips a state and REVERSED is terminal.
type RevaluationStatus string

const (
	RevaluationPending  RevaluationStatus = "PENDING"
	RevaluationPosted   RevaluationStatus = "POSTED"
	RevaluationReversed RevaluationStatus = "REVERSED"
)

// CurrencyRevaluation is a period-end FX adjustment for one (company, year, month).
// At most one revaluation per key may be in a non-REVERSED status at any time.
type CurrencyRevaluation struct {
	RevaluationID  string            `json:"revaluationID"` // Primary Key (e.g., UUID)
	CompanyID      string            `json:"companyID"`
	Year           int               `json:"year"`
	Month          int               `json:"month"`
	Status         RevaluationStatus `json:"status"`
	TotalGains     decimal.Decimal   `json:"totalGains"`
	TotalLosses    decimal.Decimal   `json:"totalLosses"`
	NetResult      decimal.Decimal   `json:"netResult"` // TotalGains - TotalLosses
	JournalEntryID *string           `json:"journalEntryID,omitempty"`
	Lines          []RevaluationLine `json:"lines,omitempty"`
	AuditFields
}

// RevaluationLine holds the revaluation arithmetic for one monetary account.
//
// Balances are expressed on the account's normal side: a debit-normal account's
// balance is debits minus credits, a credit-normal account's is credits minus
// debits. With that convention the sign rule from the engine holds uniformly:
// a positive Difference on a debit-normal account is a gain, a positive
// Difference on a credit-normal account (the liability grew) is a loss.
type RevaluationLine struct {
	LineID              string          `json:"lineID"`
	RevaluationID       string          `json:"revaluationID"`
	AccountID           string          `json:"accountID"`
	AccountCode         string          `json:"accountCode"`
	CurrencyCode        string          `json:"currencyCode"`
	ForeignNetBalance   decimal.Decimal `json:"foreignNetBalance"`
	RecordedBaseBalance decimal.Decimal `json:"recordedBaseBalance"`
	ExchangeRate        decimal.Decimal `json:"exchangeRate"`        // Period-end rate to base
	RevaluedBaseBalance decimal.Decimal `json:"revaluedBaseBalance"` // ForeignNetBalance * ExchangeRate
	Difference          decimal.Decimal `json:"difference"`          // RevaluedBaseBalance - RecordedBaseBalance
	IsGain              bool            `json:"isGain"`
}
