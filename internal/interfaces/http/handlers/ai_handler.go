package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finsmart/finsmart/internal/application/dto"
	"github.com/finsmart/finsmart/internal/application/service"
	"github.com/finsmart/finsmart/internal/interfaces/http/middleware"
	"github.com/finsmart/finsmart/pkg/errors"
	"github.com/finsmart/finsmart/pkg/logger"
)

// AIHandler exposes the prediction gateway endpoints.
type AIHandler struct {
	ai  *service.AIAppService
	log logger.Logger
}

// NewAIHandler creates the AI handler.
func NewAIHandler(ai *service.AIAppService, log logger.Logger) *AIHandler {
	return &AIHandler{
		ai:  ai,
		log: log.WithComponent("ai_handler"),
	}
}

// Health handles GET /api/v1/ai/health. It proxies the AI service probe;
// an unreachable upstream renders as 503 rather than a hard failure.
func (h *AIHandler) Health(c *gin.Context) {
	health, err := h.ai.Health(c.Request.Context())
	if err != nil {
		dto.SendError(c, err)
		return
	}
	c.JSON(http.StatusOK, health)
}

// PredictCategories handles POST /api/v1/ai/predict-categories.
func (h *AIHandler) PredictCategories(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		dto.SendError(c, errors.ErrUnauthorized("authentication required"))
		return
	}

	var req dto.PredictCategoriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.SendError(c, errors.ErrValidation("malformed request body").WithCause(err))
		return
	}

	resp, err := h.ai.PredictCategories(c.Request.Context(), userID, &req)
	if err != nil {
		dto.SendError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// NormalizeMerchants handles POST /api/v1/ai/normalise-merchants.
func (h *AIHandler) NormalizeMerchants(c *gin.Context) {
	if _, ok := middleware.CurrentUserID(c); !ok {
		dto.SendError(c, errors.ErrUnauthorized("authentication required"))
		return
	}

	var req dto.NormalizeMerchantsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.SendError(c, errors.ErrValidation("malformed request body").WithCause(err))
		return
	}

	resp, err := h.ai.NormalizeMerchants(c.Request.Context(), &req)
	if err != nil {
		dto.SendError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ScoreAnomalies handles POST /api/v1/ai/score-anomalies.
func (h *AIHandler) ScoreAnomalies(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		dto.SendError(c, errors.ErrUnauthorized("authentication required"))
		return
	}

	var req dto.ScoreAnomaliesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.SendError(c, errors.ErrValidation("malformed request body").WithCause(err))
		return
	}

	resp, err := h.ai.ScoreAnomalies(c.Request.Context(), userID, &req)
	if err != nil {
		dto.SendError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
