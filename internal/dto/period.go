package dto

import (
	"time"

	"github.com/katehonz/baraba-sub001/internal/core/domain"
)

// ClosePeriodRequest defines the payload for closing an accounting period.
type ClosePeriodRequest struct {
	Year     int     `json:"year" binding:"required"`
	Month    int     `json:"month" binding:"required,min=1,max=12"`
	ClosedBy string  `json:"closedBy" binding:"required"`
	Notes    *string `json:"notes,omitempty"`
}

// ReopenPeriodRequest defines the payload for reopening a closed period.
type ReopenPeriodRequest struct {
	Year  int `json:"year" binding:"required"`
	Month int `json:"month" binding:"required,min=1,max=12"`
}

// ListPeriodsParams holds the optional filters for listing periods.
type ListPeriodsParams struct {
	Year   *int
	Month  *int
	Status *domain.PeriodStatus
}

// AccountingPeriodResponse defines the data returned for an accounting period.
type AccountingPeriodResponse struct {
	PeriodID  string     `json:"periodID"`
	CompanyID string     `json:"companyID"`
	Year      int        `json:"year"`
	Month     int        `json:"month"`
	Status    string     `json:"status"`
	ClosedAt  *time.Time `json:"closedAt,omitempty"`
	ClosedBy  *string    `json:"closedBy,omitempty"`
	Notes     *string    `json:"notes,omitempty"`
}

// ToAccountingPeriodResponse converts a domain.AccountingPeriod to its response DTO.
func ToAccountingPeriodResponse(p *domain.AccountingPeriod) AccountingPeriodResponse {
	return AccountingPeriodResponse{
		PeriodID:  p.PeriodID,
		CompanyID: p.CompanyID,
		Year:      p.Year,
		Month:     p.Month,
		Status:    string(p.Status),
		ClosedAt:  p.ClosedAt,
		ClosedBy:  p.ClosedBy,
		Notes:     p.Notes,
	}
}

// ToAccountingPeriodResponses converts a slice of periods to response DTOs.
func ToAccountingPeriodResponses(periods []domain.AccountingPeriod) []AccountingPeriodResponse {
	responses := make([]AccountingPeriodResponse, len(periods))
	for i := range periods {
		responses[i] = ToAccountingPeriodResponse(&periods[i])
	}
	return responses
}
