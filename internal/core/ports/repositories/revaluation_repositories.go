package repositories

import (
	"context"
	"time"

	"github.com/katehonz/baraba-sub001/internal/core/domain"
)

// RevaluationReader defines read operations for currency revaluation data.
type RevaluationReader interface {
	// FindRevaluationByID retrieves a revaluation (header only) by its identifier.
	FindRevaluationByID(ctx context.Context, companyID, revaluationID string) (*domain.CurrencyRevaluation, error)

	// FindLinesByRevaluationID retrieves all lines belonging to one revaluation.
	FindLinesByRevaluationID(ctx context.Context, revaluationID string) ([]domain.RevaluationLine, error)

	// FindActiveRevaluation retrieves the non-REVERSED revaluation for
	// (company, year, month), or apperrors.ErrNotFound if none exists.
	FindActiveRevaluation(ctx context.Context, companyID string, year, month int) (*domain.CurrencyRevaluation, error)

	// ListRevaluations retrieves revaluations for a company, optionally filtered by
	// status, newest period first.
	ListRevaluations(ctx context.Context, companyID string, status *domain.RevaluationStatus) ([]domain.CurrencyRevaluation, error)
}

// RevaluationWriter defines write operations for currency revaluation data.
type RevaluationWriter interface {
	// SaveRevaluation persists a new PENDING revaluation with its lines.
	SaveRevaluation(ctx context.Context, revaluation domain.CurrencyRevaluation, lines []domain.RevaluationLine) error

	// PostRevaluation inserts the adjusting journal entry with its lines as POSTED
	// and marks the revaluation POSTED with the entry's ID, all in one transaction.
	// It returns the allocated entry number.
	PostRevaluation(ctx context.Context, revaluationID string, entry domain.JournalEntry, lines []domain.EntryLine, updatedBy string, updatedAt time.Time) (int64, error)

	// ReverseRevaluation inserts the negating journal entry with its lines as POSTED
	// and marks the revaluation REVERSED, all in one transaction. It returns the
	// allocated entry number.
	ReverseRevaluation(ctx context.Context, revaluationID string, entry domain.JournalEntry, lines []domain.EntryLine, updatedBy string, updatedAt time.Time) (int64, error)

	// DeleteRevaluation removes a revaluation and its lines.
	DeleteRevaluation(ctx context.Context, companyID, revaluationID string) error
}

// RevaluationRepositoryFacade combines all revaluation-related repository interfaces.
type RevaluationRepositoryFacade interface {
	RevaluationReader
	RevaluationWriter
}
