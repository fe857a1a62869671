package mapping

import (
	"github.com/katehonz/baraba-sub001/internal/core/domain"
	"github.com/katehonz/baraba-sub001/internal/models"
)

// ToModelJournalEntry converts a domain JournalEntry to a model JournalEntry.
// Lines are mapped separately; the soft-delete columns are repository-owned.
func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		EntryID:        d.EntryID,
		CompanyID:      d.CompanyID,
		EntryNumber:    d.EntryNumber,
		DocumentDate:   d.DocumentDate,
		AccountingDate: d.AccountingDate,
		Description:    d.Description,
		Status:         models.EntryStatus(d.Status),
		CounterpartID:  d.CounterpartID,
		DocumentRef:    d.DocumentRef,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalEntry converts a model JournalEntry to a domain JournalEntry
func ToDomainJournalEntry(m models.JournalEntry) domain.JournalEntry {
	return domain.JournalEntry{
		EntryID:        m.EntryID,
		CompanyID:      m.CompanyID,
		EntryNumber:    m.EntryNumber,
		DocumentDate:   m.DocumentDate,
		AccountingDate: m.AccountingDate,
		Description:    m.Description,
		Status:         domain.EntryStatus(m.Status),
		CounterpartID:  m.CounterpartID,
		DocumentRef:    m.DocumentRef,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainJournalEntrySlice converts a slice of model JournalEntries to a slice of domain JournalEntries
func ToDomainJournalEntrySlice(ms []models.JournalEntry) []domain.JournalEntry {
	ds := make([]domain.JournalEntry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainJournalEntry(m)
	}
	return ds
}

// ToModelEntryLine converts a domain EntryLine to a model EntryLine
func ToModelEntryLine(d domain.EntryLine) models.EntryLine {
	return models.EntryLine{
		LineID:         d.LineID,
		EntryID:        d.EntryID,
		AccountID:      d.AccountID,
		DebitAmount:    d.DebitAmount,
		CreditAmount:   d.CreditAmount,
		CurrencyCode:   d.CurrencyCode,
		CurrencyAmount: d.CurrencyAmount,
		ExchangeRate:   d.ExchangeRate,
		CounterpartID:  d.CounterpartID,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToModelEntryLineSlice converts a slice of domain EntryLines to a slice of model EntryLines
func ToModelEntryLineSlice(ds []domain.EntryLine) []models.EntryLine {
	ms := make([]models.EntryLine, len(ds))
	for i, d := range ds {
		ms[i] = ToModelEntryLine(d)
	}
	return ms
}

// ToDomainEntryLine converts a model EntryLine to a domain EntryLine
func ToDomainEntryLine(m models.EntryLine) domain.EntryLine {
	return domain.EntryLine{
		LineID:         m.LineID,
		EntryID:        m.EntryID,
		AccountID:      m.AccountID,
		DebitAmount:    m.DebitAmount,
		CreditAmount:   m.CreditAmount,
		CurrencyCode:   m.CurrencyCode,
		CurrencyAmount: m.CurrencyAmount,
		ExchangeRate:   m.ExchangeRate,
		CounterpartID:  m.CounterpartID,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainEntryLineSlice converts a slice of model EntryLines to a slice of domain EntryLines
func ToDomainEntryLineSlice(ms []models.EntryLine) []domain.EntryLine {
	ds := make([]domain.EntryLine, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainEntryLine(m)
	}
	return ds
}
