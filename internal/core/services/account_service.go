package services

import (
	"context"
	"fmt"

	"github.com/katehonz/baraba-sub001/internal/core/domain"
	portsrepo "github.com/katehonz/baraba-sub001/internal/core/ports/repositories"
	portssvc "github.com/katehonz/baraba-sub001/internal/core/ports/services"
)

// accountService is the thin read side of the account registry. The chart of
// accounts is maintained by the front office; the ledger core only asks for
// identity, normal side and revaluation eligibility.
type accountService struct {
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewAccountService creates a new account registry read service.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: accountRepo}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) GetAccountByID(ctx context.Context, companyID, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, companyID, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}
	return account, nil
}

func (s *accountService) GetAccountsByIDs(ctx context.Context, companyID string, accountIDs []string) (map[string]domain.Account, error) {
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, companyID, accountIDs)
	if err != nil {
		return nil, err
	}
	return accounts, nil
}

func (s *accountService) GetAccountByCode(ctx context.Context, companyID, code string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByCode(ctx, companyID, code)
	if err != nil {
		return nil, fmt.Errorf("failed to find account with code %s: %w", code, err)
	}
	return account, nil
}

func (s *accountService) ListMonetaryForeign(ctx context.Context, companyID string) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListMonetaryForeignAccounts(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list monetary foreign accounts: %w", err)
	}
	return accounts, nil
}
