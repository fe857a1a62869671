package models

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// Account mirrors a row of the accounts table. The table is owned by the chart
// of accounts module; the ledger core reads it only.
type Account struct {
	AccountID         string      `db:"account_id"`
	CompanyID         string      `db:"company_id"`
	Code              string      `db:"code"`
	Name              string      `db:"name"`
	AccountType       AccountType `db:"account_type"`
	CurrencyCode      string      `db:"currency_code"`
	IsMonetaryForeign bool        `db:"is_monetary_foreign"`
	IsActive          bool        `db:"is_active"`
	AuditFields
}
