package services

import (
	"context"

	"github.com/katehonz/baraba-sub001/internal/core/domain"
)

// AccountSvcFacade is the read side of the account registry as seen by the ledger
// core: identity, normal balance side and revaluation eligibility.
type AccountSvcFacade interface {
	// GetAccountByID retrieves a single account.
	GetAccountByID(ctx context.Context, companyID, accountID string) (*domain.Account, error)

	// GetAccountsByIDs retrieves accounts keyed by ID; every ID must resolve.
	GetAccountsByIDs(ctx context.Context, companyID string, accountIDs []string) (map[string]domain.Account, error)

	// GetAccountByCode retrieves an account by its chart code.
	GetAccountByCode(ctx context.Context, companyID, code string) (*domain.Account, error)

	// ListMonetaryForeign retrieves the active revaluable accounts, ordered by code.
	ListMonetaryForeign(ctx context.Context, companyID string) ([]domain.Account, error)
}
