package dto

import (
	"github.com/katehonz/baraba-sub001/internal/core/domain"
)

// AccountResponse defines the registry data returned for a chart account.
type AccountResponse struct {
	AccountID         string `json:"accountID"`
	CompanyID         string `json:"companyID"`
	Code              string `json:"code"`
	Name              string `json:"name"`
	AccountType       string `json:"accountType"`
	NormalSide        string `json:"normalSide"`
	CurrencyCode      string `json:"currencyCode"`
	IsMonetaryForeign bool   `json:"isMonetaryForeign"`
	IsActive          bool   `json:"isActive"`
}

// ToAccountResponse converts a domain.Account to its response DTO.
func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:         a.AccountID,
		CompanyID:         a.CompanyID,
		Code:              a.Code,
		Name:              a.Name,
		AccountType:       string(a.AccountType),
		NormalSide:        string(a.AccountType.NormalSide()),
		CurrencyCode:      a.CurrencyCode,
		IsMonetaryForeign: a.IsMonetaryForeign,
		IsActive:          a.IsActive,
	}
}

// ToAccountResponses converts a slice of accounts to response DTOs.
func ToAccountResponses(accounts []domain.Account) []AccountResponse {
	responses := make([]AccountResponse, len(accounts))
	for i := range accounts {
		responses[i] = ToAccountResponse(&accounts[i])
	}
	return responses
}
