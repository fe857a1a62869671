package services

// ServiceContainer holds all service facades needed by the HTTP layer.
// This makes passing dependencies to route registration cleaner.
type ServiceContainer struct {
	Account      AccountSvcFacade
	Journal      JournalSvcFacade
	Period       PeriodSvcFacade
	Revaluation  RevaluationSvcFacade
	ExchangeRate ExchangeRateSvcFacade
}
