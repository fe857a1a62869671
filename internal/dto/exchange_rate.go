package dto

import (
	"time"

	"github.com/katehonz/baraba-sub001/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SaveExchangeRateRequest defines the payload for storing a rate to base currency.
type SaveExchangeRateRequest struct {
	CurrencyCode  string          `json:"currencyCode" binding:"required,len=3"`
	Rate          decimal.Decimal `json:"rate" binding:"required"`
	DateEffective time.Time       `json:"dateEffective" binding:"required"`
}

// ExchangeRateResponse defines the data returned for a stored exchange rate.
type ExchangeRateResponse struct {
	ExchangeRateID string          `json:"exchangeRateID"`
	CurrencyCode   string          `json:"currencyCode"`
	Rate           decimal.Decimal `json:"rate"`
	DateEffective  time.Time       `json:"dateEffective"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// ToExchangeRateResponse converts a domain.ExchangeRate to its response DTO.
func ToExchangeRateResponse(r *domain.ExchangeRate) ExchangeRateResponse {
	return ExchangeRateResponse{
		ExchangeRateID: r.ExchangeRateID,
		CurrencyCode:   r.CurrencyCode,
		Rate:           r.Rate,
		DateEffective:  r.DateEffective,
		CreatedAt:      r.CreatedAt,
	}
}

// ToExchangeRateResponses converts a slice of rates to response DTOs.
func ToExchangeRateResponses(rates []domain.ExchangeRate) []ExchangeRateResponse {
	responses := make([]ExchangeRateResponse, len(rates))
	for i := range rates {
		responses[i] = ToExchangeRateResponse(&rates[i])
	}
	return responses
}
