package services

import (
	"context"

	"github.com/katehonz/baraba-sub001/internal/core/domain"
	"github.com/katehonz/baraba-sub001/internal/dto"
)

// RevaluationSvcFacade drives the period-end FX revaluation state machine:
// none -> PENDING -> POSTED -> REVERSED, never skipping a state.
type RevaluationSvcFacade interface {
	// Preview computes the revaluation lines and totals for (year, month) without
	// persisting anything. Deterministic for unchanged ledger and rate state.
	Preview(ctx context.Context, companyID string, year, month int) (*dto.RevaluationPreviewResponse, error)

	// Create re-runs the preview computation and persists it as PENDING. Fails when
	// an active (non-REVERSED) revaluation already exists for the key.
	Create(ctx context.Context, companyID string, year, month int, userID string) (*domain.CurrencyRevaluation, error)

	// Post builds the balancing adjustment entry, posts it through the ledger and
	// marks the revaluation POSTED, atomically.
	Post(ctx context.Context, companyID, revaluationID, userID string) (*domain.CurrencyRevaluation, error)

	// Reverse posts an entry negating the original adjustment (debit/credit swapped
	// per line) and marks the revaluation REVERSED.
	Reverse(ctx context.Context, companyID, revaluationID, userID string) (*domain.CurrencyRevaluation, error)

	// Delete removes a PENDING revaluation. POSTED ones must be reversed instead.
	Delete(ctx context.Context, companyID, revaluationID string) error

	// GetByID retrieves a revaluation, lines included.
	GetByID(ctx context.Context, companyID, revaluationID string) (*domain.CurrencyRevaluation, error)

	// List retrieves revaluations, optionally filtered by status.
	List(ctx context.Context, companyID string, status *domain.RevaluationStatus) ([]domain.CurrencyRevaluation, error)
}
