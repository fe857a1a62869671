package repositories

import (
	"context"

	"github.com/katehonz/baraba-sub001/internal/core/domain"
)

// AccountRepositoryFacade exposes the account registry to the ledger core. The
// registry is maintained by the front office; the core never writes to it.
type AccountRepositoryFacade interface {
	// FindAccountByID retrieves a single account by its identifier.
	FindAccountByID(ctx context.Context, companyID, accountID string) (*domain.Account, error)

	// FindAccountsByIDs retrieves the given accounts keyed by ID. Every requested
	// ID must resolve; a missing one yields apperrors.ErrNotFound.
	FindAccountsByIDs(ctx context.Context, companyID string, accountIDs []string) (map[string]domain.Account, error)

	// FindAccountByCode retrieves an account by its chart code.
	FindAccountByCode(ctx context.Context, companyID, code string) (*domain.Account, error)

	// ListMonetaryForeignAccounts retrieves the active accounts flagged as monetary
	// foreign-currency positions, ordered by code.
	ListMonetaryForeignAccounts(ctx context.Context, companyID string) ([]domain.Account, error)
}
