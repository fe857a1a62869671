package mapping

import (
	"github.com/katehonz/baraba-sub001/internal/core/domain"
	"github.com/katehonz/baraba-sub001/internal/models"
)

// ToModelCurrencyRevaluation converts a domain CurrencyRevaluation to a model
// CurrencyRevaluation. Lines are mapped separately; the posted_at/reversed_at
// columns are repository-owned.
func ToModelCurrencyRevaluation(d domain.CurrencyRevaluation) models.CurrencyRevaluation {
	return models.CurrencyRevaluation{
		RevaluationID:  d.RevaluationID,
		CompanyID:      d.CompanyID,
		Year:           d.Year,
		Month:          d.Month,
		Status:         models.RevaluationStatus(d.Status),
		TotalGains:     d.TotalGains,
		TotalLosses:    d.TotalLosses,
		NetResult:      d.NetResult,
		JournalEntryID: d.JournalEntryID,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCurrencyRevaluation converts a model CurrencyRevaluation to a domain CurrencyRevaluation
func ToDomainCurrencyRevaluation(m models.CurrencyRevaluation) domain.CurrencyRevaluation {
	return domain.CurrencyRevaluation{
		RevaluationID:  m.RevaluationID,
		CompanyID:      m.CompanyID,
		Year:           m.Year,
		Month:          m.Month,
		Status:         domain.RevaluationStatus(m.Status),
		TotalGains:     m.TotalGains,
		TotalLosses:    m.TotalLosses,
		NetResult:      m.NetResult,
		JournalEntryID: m.JournalEntryID,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainCurrencyRevaluationSlice converts a slice of model CurrencyRevaluations to a slice of domain CurrencyRevaluations
func ToDomainCurrencyRevaluationSlice(ms []models.CurrencyRevaluation) []domain.CurrencyRevaluation {
	ds := make([]domain.CurrencyRevaluation, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainCurrencyRevaluation(m)
	}
	return ds
}

// ToModelRevaluationLine converts a domain RevaluationLine to a model RevaluationLine
func ToModelRevaluationLine(d domain.RevaluationLine) models.RevaluationLine {
	return models.RevaluationLine{
		LineID:              d.LineID,
		RevaluationID:       d.RevaluationID,
		AccountID:           d.AccountID,
		AccountCode:         d.AccountCode,
		CurrencyCode:        d.CurrencyCode,
		ForeignNetBalance:   d.ForeignNetBalance,
		RecordedBaseBalance: d.RecordedBaseBalance,
		ExchangeRate:        d.ExchangeRate,
		RevaluedBaseBalance: d.RevaluedBaseBalance,
		Difference:          d.Difference,
		IsGain:              d.IsGain,
	}
}

// ToModelRevaluationLineSlice converts a slice of domain RevaluationLines to a slice of model RevaluationLines
func ToModelRevaluationLineSlice(ds []domain.RevaluationLine) []models.RevaluationLine {
	ms := make([]models.RevaluationLine, len(ds))
	for i, d := range ds {
		ms[i] = ToModelRevaluationLine(d)
	}
	return ms
}

// ToDomainRevaluationLine converts a model RevaluationLine to a domain RevaluationLine
func ToDomainRevaluationLine(m models.RevaluationLine) domain.RevaluationLine {
	return domain.RevaluationLine{
		LineID:              m.LineID,
		RevaluationID:       m.RevaluationID,
		AccountID:           m.AccountID,
		AccountCode:         m.AccountCode,
		CurrencyCode:        m.CurrencyCode,
		ForeignNetBalance:   m.ForeignNetBalance,
		RecordedBaseBalance: m.RecordedBaseBalance,
		ExchangeRate:        m.ExchangeRate,
		RevaluedBaseBalance: m.RevaluedBaseBalance,
		Difference:          m.Difference,
		IsGain:              m.IsGain,
	}
}

// ToDomainRevaluationLineSlice converts a slice of model RevaluationLines to a slice of domain RevaluationLines
func ToDomainRevaluationLineSlice(ms []models.RevaluationLine) []domain.RevaluationLine {
	ds := make([]domain.RevaluationLine, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainRevaluationLine(m)
	}
	return ds
}
