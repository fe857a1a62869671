package services

import (
	"github.com/shopspring/decimal"

	portsrepo "github.com/katehonz/baraba-sub001/internal/core/ports/repositories"
	portssvc "github.com/katehonz/baraba-sub001/internal/core/ports/services"
)

// NewServiceContainer wires all services with their repository dependencies.
// The epsilon used by balance validation is one unit of the configured base
// currency precision.
func NewServiceContainer(repos *portsrepo.RepositoryProvider, cfg RevaluationConfig) *portssvc.ServiceContainer {
	epsilon := decimal.New(1, -cfg.Precision)

	accountSvc := NewAccountService(repos.AccountRepo)
	periodSvc := NewPeriodService(repos.PeriodRepo)
	rateSvc := NewExchangeRateService(repos.ExchangeRateRepo, cfg.BaseCurrency)
	journalSvc := NewJournalService(repos.JournalRepo, accountSvc, periodSvc, cfg.BaseCurrency, epsilon)
	revaluationSvc := NewRevaluationService(repos.RevaluationRepo, repos.JournalRepo, accountSvc, rateSvc, periodSvc, cfg)

	return &portssvc.ServiceContainer{
		Account:      accountSvc,
		Journal:      journalSvc,
		Period:       periodSvc,
		Revaluation:  revaluationSvc,
		ExchangeRate: rateSvc,
	}
}
