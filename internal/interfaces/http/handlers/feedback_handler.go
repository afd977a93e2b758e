// Package handlers implements the HTTP handlers of the finsmart core API.
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/finsmart/finsmart/internal/application/dto"
	"github.com/finsmart/finsmart/internal/application/service"
	"github.com/finsmart/finsmart/internal/domain/models"
	"github.com/finsmart/finsmart/internal/interfaces/http/middleware"
	"github.com/finsmart/finsmart/pkg/errors"
	"github.com/finsmart/finsmart/pkg/logger"
)

// FeedbackHandler exposes the AI feedback capture endpoints.
type FeedbackHandler struct {
	feedback *service.FeedbackAppService
	log      logger.Logger
}

// NewFeedbackHandler creates the feedback handler.
func NewFeedbackHandler(feedback *service.FeedbackAppService, log logger.Logger) *FeedbackHandler {
	return &FeedbackHandler{
		feedback: feedback,
		log:      log.WithComponent("feedback_handler"),
	}
}

// SubmitCategory handles POST /api/v1/feedback/category.
func (h *FeedbackHandler) SubmitCategory(c *gin.Context) {
	var req dto.CategoryFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.SendError(c, errors.ErrValidation("malformed request body").WithCause(err))
		return
	}
	h.submit(c, req.Payload(), req.TransactionID, "Category feedback recorded")
}

// SubmitMerchant handles POST /api/v1/feedback/merchant.
func (h *FeedbackHandler) SubmitMerchant(c *gin.Context) {
	var req dto.MerchantFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.SendError(c, errors.ErrValidation("malformed request body").WithCause(err))
		return
	}
	h.submit(c, req.Payload(), "", "Merchant feedback recorded")
}

// SubmitAnomaly handles POST /api/v1/feedback/anomaly.
func (h *FeedbackHandler) SubmitAnomaly(c *gin.Context) {
	var req dto.AnomalyFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.SendError(c, errors.ErrValidation("malformed request body").WithCause(err))
		return
	}
	h.submit(c, req.Payload(), req.TransactionID, "Anomaly feedback recorded")
}

func (h *FeedbackHandler) submit(c *gin.Context, payload models.FeedbackPayload, transactionID, message string) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		dto.SendError(c, errors.ErrUnauthorized("authentication required"))
		return
	}

	var txRef *uuid.UUID
	if transactionID != "" {
		id, err := uuid.Parse(transactionID)
		if err != nil {
			dto.SendError(c, errors.ErrValidation("transactionId must be a UUID").WithCause(err))
			return
		}
		txRef = &id
	}

	record, err := h.feedback.Submit(c.Request.Context(), userID, payload, txRef)
	if err != nil {
		dto.SendError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewFeedbackResponse(record, message))
}

// List handles GET /api/v1/feedback. Supports page/pageSize query params
// and an optional kind filter; results are newest first.
func (h *FeedbackHandler) List(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		dto.SendError(c, errors.ErrUnauthorized("authentication required"))
		return
	}

	if kindParam := c.Query("kind"); kindParam != "" {
		kind := models.FeedbackKind(kindParam)
		if !kind.Valid() {
			dto.SendError(c, errors.ErrValidation("unknown feedback kind: "+kindParam))
			return
		}
		records, err := h.feedback.ListByUserAndKind(c.Request.Context(), userID, kind)
		if err != nil {
			dto.SendError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.FeedbackListResponse{
			Items:    records,
			Page:     1,
			PageSize: len(records),
			Total:    int64(len(records)),
		})
		return
	}

	page := intQuery(c, "page", 1)
	pageSize := intQuery(c, "pageSize", 50)

	records, total, err := h.feedback.ListByUser(c.Request.Context(), userID, page, pageSize)
	if err != nil {
		dto.SendError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FeedbackListResponse{
		Items:    records,
		Page:     page,
		PageSize: pageSize,
		Total:    total,
	})
}

// ListByTransaction handles GET /api/v1/feedback/transaction/:id.
func (h *FeedbackHandler) ListByTransaction(c *gin.Context) {
	if _, ok := middleware.CurrentUserID(c); !ok {
		dto.SendError(c, errors.ErrUnauthorized("authentication required"))
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		dto.SendError(c, errors.ErrValidation("transaction id must be a UUID").WithCause(err))
		return
	}

	records, err := h.feedback.ListByTransaction(c.Request.Context(), id)
	if err != nil {
		dto.SendError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FeedbackListResponse{
		Items:    records,
		Page:     1,
		PageSize: len(records),
		Total:    int64(len(records)),
	})
}

// Stats handles GET /api/v1/feedback/stats.
func (h *FeedbackHandler) Stats(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		dto.SendError(c, errors.ErrUnauthorized("authentication required"))
		return
	}

	stats, err := h.feedback.Stats(c.Request.Context(), userID)
	if err != nil {
		dto.SendError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FeedbackStatsResponse{
		CategoryOverrides: stats[models.FeedbackCategoryOverride],
		MerchantConfirms:  stats[models.FeedbackMerchantConfirm],
		AnomalyLabels:     stats[models.FeedbackAnomalyLabel],
	})
}

// DeleteAll handles DELETE /api/v1/feedback. Erasure is irreversible.
func (h *FeedbackHandler) DeleteAll(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		dto.SendError(c, errors.ErrUnauthorized("authentication required"))
		return
	}

	deleted, err := h.feedback.DeleteAllForUser(c.Request.Context(), userID)
	if err != nil {
		dto.SendError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FeedbackDeleteResponse{Deleted: deleted})
}

func intQuery(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
