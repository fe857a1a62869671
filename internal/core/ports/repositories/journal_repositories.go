package repositories

import (
	"context"
	"time"

	"github.com/katehonz/baraba-sub001/internal/core/domain"
	"github.com/shopspring/decimal"
)

// JournalEntryReader defines read operations for journal entry data.
type JournalEntryReader interface {
	// FindEntryByID retrieves a specific journal entry (header only) by its identifier.
	FindEntryByID(ctx context.Context, companyID, entryID string) (*domain.JournalEntry, error)

	// FindLinesByEntryID retrieves all lines belonging to a single entry.
	FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.EntryLine, error)

	// ListEntries retrieves a paginated list of entries for a company in entry-number
	// order using token-based pagination. It returns the entries, a token for the
	// next page, and an error.
	ListEntries(ctx context.Context, companyID string, limit int, nextToken *string) ([]domain.JournalEntry, *string, error)
}

// JournalEntryWriter defines write operations for journal entry data.
type JournalEntryWriter interface {
	// SaveEntry persists a new entry with its lines. The entry number is allocated
	// inside the same transaction as the insert and returned; two concurrent saves
	// for one company never receive the same number. The entry's accounting period
	// is re-checked inside that transaction and a closed period rejects the save
	// with ErrPeriodClosed.
	SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.EntryLine) (int64, error)

	// ReplaceEntry updates a DRAFT entry's header fields and replaces its lines.
	// Both the entry's current period and its new one must be open.
	ReplaceEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.EntryLine) error

	// UpdateEntryStatus transitions an entry between DRAFT and POSTED. The entry's
	// period must be open; the check runs inside the mutating transaction.
	UpdateEntryStatus(ctx context.Context, companyID, entryID string, status domain.EntryStatus, updatedBy string, updatedAt time.Time) error

	// SoftDeleteEntry marks a DRAFT entry as deleted; deleted entries are excluded
	// from all reads and balance aggregations.
	SoftDeleteEntry(ctx context.Context, companyID, entryID string, deletedBy string, deletedAt time.Time) error
}

// BalanceReader defines read-only balance aggregations over POSTED entries.
type BalanceReader interface {
	// AccountBaseBalance returns the base-currency net balance (debits minus credits)
	// of an account over POSTED lines with accounting_date < before. The bound is
	// exclusive; month-end callers pass domain.PeriodCutoff.
	AccountBaseBalance(ctx context.Context, companyID, accountID string, before time.Time) (decimal.Decimal, error)

	// AccountForeignBalance returns the net foreign-currency balance (sum of currency
	// amounts, debits minus credits) of an account for one currency over POSTED lines
	// with accounting_date < before.
	AccountForeignBalance(ctx context.Context, companyID, accountID, currencyCode string, before time.Time) (decimal.Decimal, error)
}

// JournalRepositoryFacade combines all journal-related repository interfaces.
type JournalRepositoryFacade interface {
	JournalEntryReader
	JournalEntryWriter
	BalanceReader
}
