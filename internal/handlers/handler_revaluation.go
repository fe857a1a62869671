package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/katehonz/baraba-sub001/internal/core/domain"
	portssvc "github.com/katehonz/baraba-sub001/internal/core/ports/services"
	"github.com/katehonz/baraba-sub001/internal/dto"
	"github.com/katehonz/baraba-sub001/internal/middleware"
)

// revaluationHandler handles HTTP requests related to currency revaluations.
type revaluationHandler struct {
	revaluationService portssvc.RevaluationSvcFacade
}

// newRevaluationHandler creates a new revaluationHandler.
func newRevaluationHandler(revaluationService portssvc.RevaluationSvcFacade) *revaluationHandler {
	return &revaluationHandler{
		revaluationService: revaluationService,
	}
}

func (h *revaluationHandler) previewRevaluation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	periodReq := dto.RevaluationPeriodRequest{}
	if err := c.ShouldBindJSON(&periodReq); err != nil {
		logger.Error("Failed to bind JSON for PreviewRevaluation", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	preview, err := h.revaluationService.Preview(c.Request.Context(), companyID, periodReq.Year, periodReq.Month)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to preview revaluation")
		return
	}

	c.JSON(http.StatusOK, preview)
}

func (h *revaluationHandler) createRevaluation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	periodReq := dto.RevaluationPeriodRequest{}
	if err := c.ShouldBindJSON(&periodReq); err != nil {
		logger.Error("Failed to bind JSON for CreateRevaluation", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	revaluation, err := h.revaluationService.Create(c.Request.Context(), companyID, periodReq.Year, periodReq.Month, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create revaluation")
		return
	}

	logger.Info("Revaluation created",
		slog.String("revaluation_id", revaluation.RevaluationID),
		slog.Int("year", periodReq.Year),
		slog.Int("month", periodReq.Month))
	c.JSON(http.StatusCreated, dto.ToRevaluationResponse(revaluation))
}

func (h *revaluationHandler) getRevaluation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")
	revaluationID := c.Param("revaluation_id")

	revaluation, err := h.revaluationService.GetByID(c.Request.Context(), companyID, revaluationID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve revaluation")
		return
	}

	c.JSON(http.StatusOK, dto.ToRevaluationResponse(revaluation))
}

func (h *revaluationHandler) listRevaluations(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	var status *domain.RevaluationStatus
	if statusStr := c.Query("status"); statusStr != "" {
		s := domain.RevaluationStatus(statusStr)
		if s != domain.RevaluationPending && s != domain.RevaluationPosted && s != domain.RevaluationReversed {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status parameter"})
			return
		}
		status = &s
	}

	revaluations, err := h.revaluationService.List(c.Request.Context(), companyID, status)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list revaluations")
		return
	}

	c.JSON(http.StatusOK, gin.H{"revaluations": dto.ToRevaluationResponses(revaluations)})
}

func (h *revaluationHandler) postRevaluation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")
	revaluationID := c.Param("revaluation_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	revaluation, err := h.revaluationService.Post(c.Request.Context(), companyID, revaluationID, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to post revaluation")
		return
	}

	logger.Info("Revaluation posted", slog.String("revaluation_id", revaluationID))
	c.JSON(http.StatusOK, dto.ToRevaluationResponse(revaluation))
}

func (h *revaluationHandler) reverseRevaluation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")
	revaluationID := c.Param("revaluation_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	revaluation, err := h.revaluationService.Reverse(c.Request.Context(), companyID, revaluationID, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to reverse revaluation")
		return
	}

	logger.Info("Revaluation reversed", slog.String("revaluation_id", revaluationID))
	c.JSON(http.StatusOK, dto.ToRevaluationResponse(revaluation))
}

func (h *revaluationHandler) deleteRevaluation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")
	revaluationID := c.Param("revaluation_id")

	if err := h.revaluationService.Delete(c.Request.Context(), companyID, revaluationID); err != nil {
		respondServiceError(c, logger, err, "Failed to delete revaluation")
		return
	}

	logger.Info("Revaluation deleted", slog.String("revaluation_id", revaluationID))
	c.Status(http.StatusNoContent)
}

// registerRevaluationRoutes registers currency revaluation routes on the company group.
func registerRevaluationRoutes(companies *gin.RouterGroup, revaluationService portssvc.RevaluationSvcFacade) {
	h := newRevaluationHandler(revaluationService)

	revaluations := companies.Group("/currency-revaluations")
	{
		revaluations.GET("", h.listRevaluations)
		revaluations.POST("", h.createRevaluation)
		revaluations.POST("/preview", h.previewRevaluation)
		revaluations.GET("/:revaluation_id", h.getRevaluation)
		revaluations.POST("/:revaluation_id/post", h.postRevaluation)
		revaluations.POST("/:revaluation_id/reverse", h.reverseRevaluation)
		revaluations.DELETE("/:revaluation_id", h.deleteRevaluation)
	}
}
