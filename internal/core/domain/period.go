package domain

import "time"

// PeriodStatus indicates whether an accounting period accepts ledger mutations.
type PeriodStatus string

const (
	PeriodOpen   PeriodStatus = "OPEN"
	PeriodClosed PeriodStatus = "CLOSED"
)

// AccountingPeriod is the unit of ledger immutability: once CLOSED, no entry dated
// within it may be created, posted, unposted or deleted. (CompanyID, Year, Month) is
// the natural key. Periods are created lazily; a missing row means OPEN (see the
// PeriodDefaultOpen policy in the period service).
type AccountingPeriod struct {
	PeriodID  string       `json:"periodID"` // Primary Key (e.g., UUID)
	CompanyID string       `json:"companyID"`
	Year      int          `json:"year"`
	Month     int          `json:"month"` // 1..12
	Status    PeriodStatus `json:"status"`
	ClosedAt  *time.Time   `json:"closedAt,omitempty"`
	ClosedBy  *string      `json:"closedBy,omitempty"`
	Notes     *string      `json:"notes,omitempty"`
	AuditFields
}

// PeriodOf returns the (year, month) the given date falls in.
func PeriodOf(date time.Time) (int, int) {
	return date.Year(), int(date.Month())
}

// PeriodEnd returns the last day of the given (year, month) at midnight UTC.
func PeriodEnd(year, month int) time.Time {
	return time.Date(year, time.Month(month)+1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)
}

// PeriodStart returns the first day of the given (year, month) at midnight UTC.
func PeriodStart(year, month int) time.Time {
	return time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
}

// PeriodCutoff returns the first instant of the month after (year, month). Balance
// queries use it as an exclusive upper bound so that any timestamp PeriodOf places
// inside the period, including intraday times on the last day, is counted.
func PeriodCutoff(year, month int) time.Time {
	return time.Date(year, time.Month(month)+1, 1, 0, 0, 0, 0, time.UTC)
}
