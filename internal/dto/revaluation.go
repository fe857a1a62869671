package dto

import (
	"time"

	"github.com/katehonz/baraba-sub001/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RevaluationPeriodRequest selects the (year, month) a preview or create targets.
type RevaluationPeriodRequest struct {
	Year  int `json:"year" binding:"required"`
	Month int `json:"month" binding:"required,min=1,max=12"`
}

// RevaluationLineResponse defines the data returned for one revaluation line.
type RevaluationLineResponse struct {
	LineID              string          `json:"lineID,omitempty"`
	AccountID           string          `json:"accountID"`
	AccountCode         string          `json:"accountCode"`
	CurrencyCode        string          `json:"currencyCode"`
	ForeignNetBalance   decimal.Decimal `json:"foreignNetBalance"`
	RecordedBaseBalance decimal.Decimal `json:"recordedBaseBalance"`
	ExchangeRate        decimal.Decimal `json:"exchangeRate"`
	RevaluedBaseBalance decimal.Decimal `json:"revaluedBaseBalance"`
	Difference          decimal.Decimal `json:"difference"`
	IsGain              bool            `json:"isGain"`
}

// RevaluationPreviewResponse carries a computed-but-not-persisted revaluation.
type RevaluationPreviewResponse struct {
	CompanyID   string                    `json:"companyID"`
	Year        int                       `json:"year"`
	Month       int                       `json:"month"`
	RateDate    time.Time                 `json:"rateDate"` // Period-end date the rates were taken at
	Lines       []RevaluationLineResponse `json:"lines"`
	TotalGains  decimal.Decimal           `json:"totalGains"`
	TotalLosses decimal.Decimal           `json:"totalLosses"`
	NetResult   decimal.Decimal           `json:"netResult"`
}

// RevaluationResponse defines the data returned for a persisted revaluation.
type RevaluationResponse struct {
	RevaluationID  string                    `json:"revaluationID"`
	CompanyID      string                    `json:"companyID"`
	Year           int                       `json:"year"`
	Month          int                       `json:"month"`
	Status         string                    `json:"status"`
	TotalGains     decimal.Decimal           `json:"totalGains"`
	TotalLosses    decimal.Decimal           `json:"totalLosses"`
	NetResult      decimal.Decimal           `json:"netResult"`
	JournalEntryID *string                   `json:"journalEntryID,omitempty"`
	Lines          []RevaluationLineResponse `json:"lines,omitempty"`
	CreatedAt      time.Time                 `json:"createdAt"`
	CreatedBy      string                    `json:"createdBy"`
}

// ToRevaluationLineResponse converts a domain.RevaluationLine to its response DTO.
func ToRevaluationLineResponse(l *domain.RevaluationLine) RevaluationLineResponse {
	return RevaluationLineResponse{
		LineID:              l.LineID,
		AccountID:           l.AccountID,
		AccountCode:         l.AccountCode,
		CurrencyCode:        l.CurrencyCode,
		ForeignNetBalance:   l.ForeignNetBalance,
		RecordedBaseBalance: l.RecordedBaseBalance,
		ExchangeRate:        l.ExchangeRate,
		RevaluedBaseBalance: l.RevaluedBaseBalance,
		Difference:          l.Difference,
		IsGain:              l.IsGain,
	}
}

// ToRevaluationResponse converts a domain.CurrencyRevaluation to its response DTO.
func ToRevaluationResponse(r *domain.CurrencyRevaluation) RevaluationResponse {
	resp := RevaluationResponse{
		RevaluationID:  r.RevaluationID,
		CompanyID:      r.CompanyID,
		Year:           r.Year,
		Month:          r.Month,
		Status:         string(r.Status),
		TotalGains:     r.TotalGains,
		TotalLosses:    r.TotalLosses,
		NetResult:      r.NetResult,
		JournalEntryID: r.JournalEntryID,
		CreatedAt:      r.CreatedAt,
		CreatedBy:      r.CreatedBy,
	}
	if len(r.Lines) > 0 {
		resp.Lines = make([]RevaluationLineResponse, len(r.Lines))
		for i := range r.Lines {
			resp.Lines[i] = ToRevaluationLineResponse(&r.Lines[i])
		}
	}
	return resp
}

// ToRevaluationResponses converts a slice of revaluations to response DTOs.
func ToRevaluationResponses(revaluations []domain.CurrencyRevaluation) []RevaluationResponse {
	responses := make([]RevaluationResponse, len(revaluations))
	for i := range revaluations {
		responses[i] = ToRevaluationResponse(&revaluations[i])
	}
	return responses
}
