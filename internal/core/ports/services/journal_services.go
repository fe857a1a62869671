package services

import (
	"context"
	"time"

	"github.com/katehonz/baraba-sub001/internal/core/domain"
	"github.com/katehonz/baraba-sub001/internal/dto"
)

// JournalReaderSvc defines read operations for journal entry data.
type JournalReaderSvc interface {
	// GetEntryByID retrieves a specific entry, lines included.
	GetEntryByID(ctx context.Context, companyID, entryID string) (*domain.JournalEntry, error)

	// ListEntries retrieves a paginated list of entries for a company.
	ListEntries(ctx context.Context, companyID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error)

	// ValidateEntryBalance runs the balance check against a stored entry's lines
	// without mutating anything.
	ValidateEntryBalance(ctx context.Context, companyID, entryID string) (*dto.BalanceCheckResponse, error)

	// AccountBalance aggregates an account's net balance over POSTED lines up to and
	// including asOf, in base currency and, when currencyCode is given, in that
	// foreign currency as well.
	AccountBalance(ctx context.Context, companyID, accountID string, asOf time.Time, currencyCode *string) (*dto.AccountBalanceResponse, error)
}

// JournalWriterSvc defines lifecycle operations for journal entries.
type JournalWriterSvc interface {
	// CreateEntry validates and persists a new DRAFT entry with its lines.
	CreateEntry(ctx context.Context, companyID string, req dto.CreateJournalEntryRequest, creatorUserID string) (*domain.JournalEntry, error)

	// UpdateEntry replaces a DRAFT entry's header and lines after re-validation.
	UpdateEntry(ctx context.Context, companyID, entryID string, req dto.CreateJournalEntryRequest, userID string) (*domain.JournalEntry, error)

	// PostEntry transitions DRAFT -> POSTED.
	PostEntry(ctx context.Context, companyID, entryID, userID string) (*domain.JournalEntry, error)

	// UnpostEntry transitions POSTED -> DRAFT.
	UnpostEntry(ctx context.Context, companyID, entryID, userID string) (*domain.JournalEntry, error)

	// DeleteEntry soft-deletes a DRAFT entry.
	DeleteEntry(ctx context.Context, companyID, entryID, userID string) error
}

// JournalSvcFacade combines all journal-related service interfaces.
type JournalSvcFacade interface {
	JournalReaderSvc
	JournalWriterSvc
}
