package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	portssvc "github.com/katehonz/baraba-sub001/internal/core/ports/services"
	"github.com/katehonz/baraba-sub001/internal/dto"
	"github.com/katehonz/baraba-sub001/internal/middleware"
)

// exchangeRateHandler handles HTTP requests related to exchange rates.
type exchangeRateHandler struct {
	exchangeRateService portssvc.ExchangeRateSvcFacade
}

// newExchangeRateHandler creates a new exchangeRateHandler.
func newExchangeRateHandler(exchangeRateService portssvc.ExchangeRateSvcFacade) *exchangeRateHandler {
	return &exchangeRateHandler{
		exchangeRateService: exchangeRateService,
	}
}

func (h *exchangeRateHandler) saveRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	saveReq := dto.SaveExchangeRateRequest{}
	if err := c.ShouldBindJSON(&saveReq); err != nil {
		logger.Error("Failed to bind JSON for SaveRate", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	rate, err := h.exchangeRateService.SaveRate(c.Request.Context(), saveReq, creatorUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to save exchange rate")
		return
	}

	logger.Info("Exchange rate saved",
		slog.String("currency", rate.CurrencyCode),
		slog.Time("date_effective", rate.DateEffective))
	c.JSON(http.StatusCreated, dto.ToExchangeRateResponse(rate))
}

func (h *exchangeRateHandler) getRates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	currencyCode := c.Param("currency")

	// With a date filter the endpoint answers the revaluation-style lookup: the
	// newest rate effective at or before the date. Without one it lists stored rates.
	if dateStr := c.Query("date"); dateStr != "" {
		onDate, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date parameter"})
			return
		}

		rate, err := h.exchangeRateService.RateFor(c.Request.Context(), currencyCode, onDate)
		if err != nil {
			respondServiceError(c, logger, err, "Failed to look up exchange rate")
			return
		}

		c.JSON(http.StatusOK, gin.H{"currencyCode": currencyCode, "date": dateStr, "rate": rate})
		return
	}

	limit := 0
	if limitStr := c.Query("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit parameter"})
			return
		}
		limit = parsed
	}
	var nextToken *string
	if token := c.Query("nextToken"); token != "" {
		nextToken = &token
	}

	rates, newToken, err := h.exchangeRateService.ListRates(c.Request.Context(), currencyCode, limit, nextToken)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list exchange rates")
		return
	}

	resp := gin.H{"rates": dto.ToExchangeRateResponses(rates)}
	if newToken != nil {
		resp["nextToken"] = *newToken
	}
	c.JSON(http.StatusOK, resp)
}

// registerExchangeRateRoutes registers exchange rate routes.
func registerExchangeRateRoutes(group *gin.RouterGroup, exchangeRateService portssvc.ExchangeRateSvcFacade) {
	h := newExchangeRateHandler(exchangeRateService)

	rates := group.Group("/exchange-rates")
	{
		rates.POST("", h.saveRate)
		rates.GET("/:currency", h.getRates)
	}
}
