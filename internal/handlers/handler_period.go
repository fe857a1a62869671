package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/katehonz/baraba-sub001/internal/core/domain"
	portssvc "github.com/katehonz/baraba-sub001/internal/core/ports/services"
	"github.com/katehonz/baraba-sub001/internal/dto"
	"github.com/katehonz/baraba-sub001/internal/middleware"
)

// periodHandler handles HTTP requests related to accounting periods.
type periodHandler struct {
	periodService portssvc.PeriodSvcFacade
}

// newPeriodHandler creates a new periodHandler.
func newPeriodHandler(periodService portssvc.PeriodSvcFacade) *periodHandler {
	return &periodHandler{
		periodService: periodService,
	}
}

func (h *periodHandler) listPeriods(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	params := dto.ListPeriodsParams{}
	if yearStr := c.Query("year"); yearStr != "" {
		year, err := strconv.Atoi(yearStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid year parameter"})
			return
		}
		params.Year = &year
	}
	if monthStr := c.Query("month"); monthStr != "" {
		month, err := strconv.Atoi(monthStr)
		if err != nil || month < 1 || month > 12 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid month parameter"})
			return
		}
		params.Month = &month
	}
	if statusStr := c.Query("status"); statusStr != "" {
		status := domain.PeriodStatus(statusStr)
		if status != domain.PeriodOpen && status != domain.PeriodClosed {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status parameter"})
			return
		}
		params.Status = &status
	}

	periods, err := h.periodService.ListPeriods(c.Request.Context(), companyID, params)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list accounting periods")
		return
	}

	c.JSON(http.StatusOK, gin.H{"periods": dto.ToAccountingPeriodResponses(periods)})
}

func (h *periodHandler) initializeYear(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid year parameter"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	periods, err := h.periodService.InitializeYear(c.Request.Context(), companyID, year, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to initialize accounting year")
		return
	}

	logger.Info("Accounting year initialized", slog.Int("year", year))
	c.JSON(http.StatusOK, gin.H{"periods": dto.ToAccountingPeriodResponses(periods)})
}

func (h *periodHandler) closePeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	closeReq := dto.ClosePeriodRequest{}
	if err := c.ShouldBindJSON(&closeReq); err != nil {
		logger.Error("Failed to bind JSON for ClosePeriod", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	period, err := h.periodService.ClosePeriod(c.Request.Context(), companyID, closeReq)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to close accounting period")
		return
	}

	logger.Info("Accounting period closed",
		slog.Int("year", closeReq.Year),
		slog.Int("month", closeReq.Month))
	c.JSON(http.StatusOK, dto.ToAccountingPeriodResponse(period))
}

func (h *periodHandler) reopenPeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	reopenReq := dto.ReopenPeriodRequest{}
	if err := c.ShouldBindJSON(&reopenReq); err != nil {
		logger.Error("Failed to bind JSON for ReopenPeriod", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	period, err := h.periodService.ReopenPeriod(c.Request.Context(), companyID, reopenReq.Year, reopenReq.Month, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to reopen accounting period")
		return
	}

	logger.Info("Accounting period reopened",
		slog.Int("year", reopenReq.Year),
		slog.Int("month", reopenReq.Month))
	c.JSON(http.StatusOK, dto.ToAccountingPeriodResponse(period))
}

// registerPeriodRoutes registers accounting period routes on the company group.
func registerPeriodRoutes(companies *gin.RouterGroup, periodService portssvc.PeriodSvcFacade) {
	h := newPeriodHandler(periodService)

	periods := companies.Group("/accounting-periods")
	{
		periods.GET("", h.listPeriods)
		periods.POST("/initialize/:year", h.initializeYear)
		periods.POST("/close", h.closePeriod)
		periods.POST("/reopen", h.reopenPeriod)
	}
}
