package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/katehonz/baraba-sub001/internal/core/ports/services"
	"github.com/katehonz/baraba-sub001/internal/dto"
	"github.com/katehonz/baraba-sub001/internal/middleware"
)

// accountHandler serves read access to the account registry. The chart of
// accounts is maintained elsewhere; these endpoints only expose what the ledger
// core knows about an account.
type accountHandler struct {
	accountService portssvc.AccountSvcFacade
}

// newAccountHandler creates a new accountHandler.
func newAccountHandler(accountService portssvc.AccountSvcFacade) *accountHandler {
	return &accountHandler{
		accountService: accountService,
	}
}

func (h *accountHandler) getAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")
	accountID := c.Param("account_id")

	account, err := h.accountService.GetAccountByID(c.Request.Context(), companyID, accountID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve account")
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// listMonetaryForeign returns the active accounts eligible for period-end
// currency revaluation, ordered by code.
func (h *accountHandler) listMonetaryForeign(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	accounts, err := h.accountService.ListMonetaryForeign(c.Request.Context(), companyID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list monetary accounts")
		return
	}

	c.JSON(http.StatusOK, gin.H{"accounts": dto.ToAccountResponses(accounts)})
}

// registerAccountRoutes registers the registry read routes within a company group.
func registerAccountRoutes(rg *gin.RouterGroup, accountService portssvc.AccountSvcFacade) {
	h := newAccountHandler(accountService)

	rg.GET("/accounts/:account_id", h.getAccount)
	rg.GET("/monetary-accounts", h.listMonetaryForeign)
}
