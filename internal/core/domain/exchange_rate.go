package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate stores the conversion rate from a foreign currency to the base
// currency effective on a specific date. Rate lookups pick the newest rate whose
// effective date does not exceed the requested date.
type ExchangeRate struct {
	ExchangeRateID string          `json:"exchangeRateID"` // Primary Key (e.g., UUID)
	CurrencyCode   string          `json:"currencyCode"`   // Foreign currency, e.g. "USD"
	Rate           decimal.Decimal `json:"rate"`           // Units of base currency per 1 unit of CurrencyCode
	DateEffective  time.Time       `json:"dateEffective"`
	AuditFields
}
