package domain

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// NormalSide is the side on which an account's balance naturally increases.
type NormalSide string

const (
	DebitNormal  NormalSide = "DEBIT"
	CreditNormal NormalSide = "CREDIT"
)

// NormalSide derives the normal balance side from the account type.
// Assets and expenses are debit-normal; liabilities, equity and revenue are credit-normal.
func (t AccountType) NormalSide() NormalSide {
	switch t {
	case Asset, Expense:
		return DebitNormal
	default:
		return CreditNormal
	}
}

// Account represents an entry in the company's chart of accounts. The account
// registry is maintained outside the ledger core; the core only reads it.
type Account struct {
	AccountID    string      `json:"accountID"`    // Primary Key (e.g., UUID)
	CompanyID    string      `json:"companyID"`    // FK -> companies.company_id (Not Null)
	Code         string      `json:"code"`         // National chart code, e.g. "411", "503"
	Name         string      `json:"name"`         // User-defined name
	AccountType  AccountType `json:"accountType"`  // ASSET, LIABILITY, etc.
	CurrencyCode string      `json:"currencyCode"` // Currency of the account's monetary positions
	// IsMonetaryForeign marks monetary accounts held in a foreign currency,
	// making them eligible for period-end revaluation.
	IsMonetaryForeign bool `json:"isMonetaryForeign"`
	IsActive          bool `json:"isActive"`
	AuditFields
}
