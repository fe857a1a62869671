package dto

import (
	"time"

	"github.com/katehonz/baraba-sub001/internal/core/domain"
	"github.com/shopspring/decimal"
)

// EntryLineRequest defines one line of a journal entry create/update request.
// Exactly one of debitAmount / creditAmount must be non-zero; the service rejects
// lines that set both or neither. Foreign currency fields travel together.
type EntryLineRequest struct {
	AccountID      string           `json:"accountID" binding:"required"`
	DebitAmount    decimal.Decimal  `json:"debitAmount"`
	CreditAmount   decimal.Decimal  `json:"creditAmount"`
	CurrencyCode   *string          `json:"currencyCode,omitempty"`
	CurrencyAmount *decimal.Decimal `json:"currencyAmount,omitempty"`
	ExchangeRate   *decimal.Decimal `json:"exchangeRate,omitempty"`
	CounterpartID  *string          `json:"counterpartID,omitempty"`
}

// CreateJournalEntryRequest defines the payload for creating a journal entry,
// and for replacing a DRAFT entry on update.
type CreateJournalEntryRequest struct {
	DocumentDate   time.Time          `json:"documentDate" binding:"required"`
	AccountingDate time.Time          `json:"accountingDate" binding:"required"`
	Description    string             `json:"description" binding:"required"`
	CounterpartID  *string            `json:"counterpartID,omitempty"`
	DocumentRef    *string            `json:"documentRef,omitempty"`
	Lines          []EntryLineRequest `json:"lines" binding:"required,min=2,dive"`
}

// ListEntriesParams holds parameters for listing journal entries.
type ListEntriesParams struct {
	Limit     int
	NextToken *string
}

// EntryLineResponse defines the data returned for an entry line.
type EntryLineResponse struct {
	LineID         string           `json:"lineID"`
	AccountID      string           `json:"accountID"`
	DebitAmount    decimal.Decimal  `json:"debitAmount"`
	CreditAmount   decimal.Decimal  `json:"creditAmount"`
	CurrencyCode   *string          `json:"currencyCode,omitempty"`
	CurrencyAmount *decimal.Decimal `json:"currencyAmount,omitempty"`
	ExchangeRate   *decimal.Decimal `json:"exchangeRate,omitempty"`
	CounterpartID  *string          `json:"counterpartID,omitempty"`
}

// JournalEntryResponse defines the data returned for a journal entry.
type JournalEntryResponse struct {
	EntryID        string              `json:"entryID"`
	CompanyID      string              `json:"companyID"`
	EntryNumber    int64               `json:"entryNumber"`
	DocumentDate   time.Time           `json:"documentDate"`
	AccountingDate time.Time           `json:"accountingDate"`
	Description    string              `json:"description"`
	Status         string              `json:"status"`
	CounterpartID  *string             `json:"counterpartID,omitempty"`
	DocumentRef    *string             `json:"documentRef,omitempty"`
	Lines          []EntryLineResponse `json:"lines,omitempty"`
	CreatedAt      time.Time           `json:"createdAt"`
	CreatedBy      string              `json:"createdBy"`
}

// ListEntriesResponse wraps a page of entries with the continuation token.
type ListEntriesResponse struct {
	Entries   []JournalEntryResponse `json:"entries"`
	NextToken *string                `json:"nextToken,omitempty"`
}

// BalanceCheckResponse is the result of the standalone balance validation check.
type BalanceCheckResponse struct {
	Valid   bool    `json:"valid"`
	Message *string `json:"message,omitempty"`
}

// AccountBalanceResponse carries an account's net balance as of a date.
type AccountBalanceResponse struct {
	AccountID       string           `json:"accountID"`
	AsOf            time.Time        `json:"asOf"`
	BaseBalance     decimal.Decimal  `json:"baseBalance"`
	CurrencyCode    *string          `json:"currencyCode,omitempty"`
	CurrencyBalance *decimal.Decimal `json:"currencyBalance,omitempty"`
}

// ToEntryLineResponse converts a domain.EntryLine to EntryLineResponse.
func ToEntryLineResponse(l *domain.EntryLine) EntryLineResponse {
	return EntryLineResponse{
		LineID:         l.LineID,
		AccountID:      l.AccountID,
		DebitAmount:    l.DebitAmount,
		CreditAmount:   l.CreditAmount,
		CurrencyCode:   l.CurrencyCode,
		CurrencyAmount: l.CurrencyAmount,
		ExchangeRate:   l.ExchangeRate,
		CounterpartID:  l.CounterpartID,
	}
}

// ToJournalEntryResponse converts a domain.JournalEntry to JournalEntryResponse.
func ToJournalEntryResponse(e *domain.JournalEntry) JournalEntryResponse {
	resp := JournalEntryResponse{
		EntryID:        e.EntryID,
		CompanyID:      e.CompanyID,
		EntryNumber:    e.EntryNumber,
		DocumentDate:   e.DocumentDate,
		AccountingDate: e.AccountingDate,
		Description:    e.Description,
		Status:         string(e.Status),
		CounterpartID:  e.CounterpartID,
		DocumentRef:    e.DocumentRef,
		CreatedAt:      e.CreatedAt,
		CreatedBy:      e.CreatedBy,
	}
	if len(e.Lines) > 0 {
		resp.Lines = make([]EntryLineResponse, len(e.Lines))
		for i := range e.Lines {
			resp.Lines[i] = ToEntryLineResponse(&e.Lines[i])
		}
	}
	return resp
}
