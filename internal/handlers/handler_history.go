package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/alnoor-soft/safebox_backend/internal/core/ports/services"
	"github.com/alnoor-soft/safebox_backend/internal/dto"
	"github.com/alnoor-soft/safebox_backend/internal/middleware"
)

// historyHandler handles the global confirmation audit trail.
type historyHandler struct {
	historyService portssvc.HistorySvcFacade
}

// registerHistoryRoutes registers routes for the global audit trail.
func registerHistoryRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := &historyHandler{historyService: services.History}

	confirmations := rg.Group("/confirmations")
	{
		confirmations.GET("", h.listConfirmations)
		confirmations.DELETE("", h.purgeConfirmations)
	}
}

// listConfirmations godoc
// @Summary List confirmation records
// @Tags confirmations
// @Produce json
// @Param safeID query string false "Filter to one safe"
// @Success 200 {array} dto.ConfirmationRecordResponse
// @Security BearerAuth
// @Router /confirmations [get]
func (h *historyHandler) listConfirmations(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var safeID *string
	if v := c.Query("safeID"); v != "" {
		safeID = &v
	}

	records, err := h.historyService.ListConfirmationHistory(c.Request.Context(), safeID)
	if err != nil {
		logger.Error("Failed to list confirmation records", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list confirmation records"})
		return
	}
	c.JSON(http.StatusOK, dto.ToConfirmationRecordResponses(records))
}

// purgeConfirmations godoc
// @Summary Purge confirmation records
// @Description Administrative purge of the audit trail, optionally scoped to one safe.
// @Tags confirmations
// @Produce json
// @Param safeID query string false "Only purge records of this safe"
// @Success 200 {object} map[string]int64
// @Security BearerAuth
// @Router /confirmations [delete]
func (h *historyHandler) purgeConfirmations(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var safeID *string
	if v := c.Query("safeID"); v != "" {
		safeID = &v
	}

	deleted, err := h.historyService.PurgeConfirmationHistory(c.Request.Context(), safeID)
	if err != nil {
		logger.Error("Failed to purge confirmation records", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to purge confirmation records"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}
