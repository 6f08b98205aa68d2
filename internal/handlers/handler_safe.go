package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/alnoor-soft/safebox_backend/internal/apperrors"
	portssvc "github.com/alnoor-soft/safebox_backend/internal/core/ports/services"
	"github.com/alnoor-soft/safebox_backend/internal/dto"
	"github.com/alnoor-soft/safebox_backend/internal/middleware"
)

// safeHandler handles HTTP requests related to safes and their balances.
type safeHandler struct {
	safeService         portssvc.SafeSvcFacade
	balanceService      portssvc.BalanceSvcFacade
	confirmationService portssvc.ConfirmationSvcFacade
	historyService      portssvc.HistorySvcFacade
	operatorService     portssvc.OperatorSvcFacade
}

// registerSafeRoutes registers routes related to safes.
func registerSafeRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := &safeHandler{
		safeService:         services.Safe,
		balanceService:      services.Balance,
		confirmationService: services.Confirmation,
		historyService:      services.History,
		operatorService:     services.Operator,
	}

	rg.GET("/balances", h.listAllBalances)

	safes := rg.Group("/safes")
	{
		safes.POST("", h.createSafe)
		safes.GET("", h.listSafes)
		safes.GET("/:safeID", h.getSafe)
		safes.PUT("/:safeID", h.updateSafe)
		safes.GET("/:safeID/balances", h.getSafeBalances)
		safes.POST("/:safeID/recompute", h.recomputeSafe)
		safes.POST("/:safeID/confirmations", h.confirmVouchers)
		safes.GET("/:safeID/confirmations", h.listSafeConfirmations)
		safes.POST("/:safeID/resets", h.resetSafe)
		safes.GET("/:safeID/resets", h.listSafeResets)
	}
}

// createSafe godoc
// @Summary Create a new safe
// @Tags safes
// @Accept json
// @Produce json
// @Param safe body dto.CreateSafeRequest true "Safe details"
// @Success 201 {object} dto.SafeResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /safes [post]
func (h *safeHandler) createSafe(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateSafeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}
	operatorID, ok := middleware.GetOperatorIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	safe, err := h.safeService.CreateSafe(c.Request.Context(), req, operatorID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		logger.Error("Failed to create safe", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create safe"})
		return
	}
	c.JSON(http.StatusCreated, dto.ToSafeResponse(safe))
}

// listSafes godoc
// @Summary List safes
// @Tags safes
// @Produce json
// @Param mainOnly query bool false "Only main safes (eligible transfer targets)"
// @Success 200 {array} dto.SafeResponse
// @Security BearerAuth
// @Router /safes [get]
func (h *safeHandler) listSafes(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	mainOnly, _ := strconv.ParseBool(c.Query("mainOnly"))
	safes, err := h.safeService.ListSafes(c.Request.Context(), mainOnly)
	if err != nil {
		logger.Error("Failed to list safes", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list safes"})
		return
	}
	c.JSON(http.StatusOK, dto.ToSafeResponses(safes))
}

// getSafe godoc
// @Summary Get a safe by ID
// @Tags safes
// @Produce json
// @Param safeID path string true "Safe ID"
// @Success 200 {object} dto.SafeResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /safes/{safeID} [get]
func (h *safeHandler) getSafe(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	safe, err := h.safeService.GetSafeByID(c.Request.Context(), c.Param("safeID"))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Safe not found"})
			return
		}
		logger.Error("Failed to get safe", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve safe"})
		return
	}
	c.JSON(http.StatusOK, dto.ToSafeResponse(safe))
}

// updateSafe godoc
// @Summary Update a safe
// @Description Updates name, main flag and custodian metadata. Balances move only through confirmations, recompute and resets.
// @Tags safes
// @Accept json
// @Produce json
// @Param safeID path string true "Safe ID"
// @Param safe body dto.UpdateSafeRequest true "Fields to update"
// @Success 200 {object} dto.SafeResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /safes/{safeID} [put]
func (h *safeHandler) updateSafe(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.UpdateSafeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}
	operatorID, ok := middleware.GetOperatorIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	safe, err := h.safeService.UpdateSafe(c.Request.Context(), c.Param("safeID"), req, operatorID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Safe not found"})
			return
		}
		logger.Error("Failed to update safe", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to update safe"})
		return
	}
	c.JSON(http.StatusOK, dto.ToSafeResponse(safe))
}

// listAllBalances godoc
// @Summary Derived balances for all safes
// @Description Folds every voucher into per-safe confirmed/unconfirmed totals. Read-only; persisted balances are not touched.
// @Tags balances
// @Produce json
// @Success 200 {object} map[string]domain.SafeTotals
// @Security BearerAuth
// @Router /balances [get]
func (h *safeHandler) listAllBalances(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	totals, err := h.balanceService.AggregateAll(c.Request.Context())
	if err != nil {
		logger.Error("Failed to aggregate balances", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to aggregate balances"})
		return
	}
	c.JSON(http.StatusOK, totals)
}

// getSafeBalances godoc
// @Summary Derived balances for one safe
// @Tags balances
// @Produce json
// @Param safeID path string true "Safe ID"
// @Success 200 {object} dto.SafeBalancesResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /safes/{safeID}/balances [get]
func (h *safeHandler) getSafeBalances(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	safeID := c.Param("safeID")

	totals, err := h.balanceService.AggregateSafe(c.Request.Context(), safeID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Safe not found"})
			return
		}
		logger.Error("Failed to aggregate safe balances", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to aggregate balances"})
		return
	}
	c.JSON(http.StatusOK, dto.SafeBalancesResponse{SafeID: safeID, Totals: *totals})
}

// recomputeSafe godoc
// @Summary Recompute and persist a safe's balances
// @Description Re-derives the confirmed balances from the full voucher set and writes them back to the safe record.
// @Tags balances
// @Produce json
// @Param safeID path string true "Safe ID"
// @Success 200 {object} dto.SafeBalancesResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /safes/{safeID}/recompute [post]
func (h *safeHandler) recomputeSafe(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	safeID := c.Param("safeID")

	operatorID, ok := middleware.GetOperatorIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	totals, err := h.balanceService.RecomputeAndPersist(c.Request.Context(), safeID, operatorID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Safe not found"})
			return
		}
		logger.Error("Failed to recompute safe balances", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to recompute balances"})
		return
	}
	c.JSON(http.StatusOK, dto.SafeBalancesResponse{SafeID: safeID, Totals: *totals})
}

// confirmVouchers godoc
// @Summary Confirm a batch of vouchers on a safe
// @Description Flips the vouchers to confirmed, applies their net effect to the safe's balances and writes the audit record atomically.
// @Tags confirmations
// @Accept json
// @Produce json
// @Param safeID path string true "Safe ID"
// @Param batch body dto.ConfirmVouchersRequest true "Voucher IDs to confirm"
// @Success 200 {object} dto.ConfirmationResultResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /safes/{safeID}/confirmations [post]
func (h *safeHandler) confirmVouchers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	safeID := c.Param("safeID")

	var req dto.ConfirmVouchersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}
	operator, ok := operatorIdentityFromContext(c, h.operatorService)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	result, err := h.confirmationService.ConfirmVouchers(c.Request.Context(), safeID, req.VoucherIDs, operator)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Safe not found"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		default:
			logger.Error("Failed to confirm vouchers", slog.String("safe_id", safeID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to confirm vouchers"})
		}
		return
	}
	c.JSON(http.StatusOK, dto.ToConfirmationResultResponse(result))
}

// listSafeConfirmations godoc
// @Summary Confirmation history for one safe
// @Tags confirmations
// @Produce json
// @Param safeID path string true "Safe ID"
// @Success 200 {array} dto.ConfirmationRecordResponse
// @Security BearerAuth
// @Router /safes/{safeID}/confirmations [get]
func (h *safeHandler) listSafeConfirmations(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	safeID := c.Param("safeID")

	records, err := h.historyService.ListConfirmationHistory(c.Request.Context(), &safeID)
	if err != nil {
		logger.Error("Failed to list confirmation history", slog.String("safe_id", safeID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list confirmation history"})
		return
	}
	c.JSON(http.StatusOK, dto.ToConfirmationRecordResponses(records))
}

// resetSafe godoc
// @Summary Reset or transfer a safe's balances
// @Description Zeroes the named balances, or credits them to a main safe when targetSafeID is set, and appends a reset ledger entry atomically.
// @Tags resets
// @Accept json
// @Produce json
// @Param safeID path string true "Safe ID"
// @Param reset body dto.ResetSafeRequest true "Reset details"
// @Success 200 {object} dto.ResetHistoryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /safes/{safeID}/resets [post]
func (h *safeHandler) resetSafe(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	safeID := c.Param("safeID")

	var req dto.ResetSafeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}
	operator, ok := operatorIdentityFromContext(c, h.operatorService)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	history, err := h.safeService.ResetSafe(c.Request.Context(), safeID, req, operator)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Safe not found"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		default:
			logger.Error("Failed to reset safe", slog.String("safe_id", safeID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to reset safe"})
		}
		return
	}
	c.JSON(http.StatusOK, dto.ToResetHistoryResponse(history))
}

// listSafeResets godoc
// @Summary Reset ledger for one safe
// @Tags resets
// @Produce json
// @Param safeID path string true "Safe ID"
// @Success 200 {array} dto.ResetHistoryResponse
// @Security BearerAuth
// @Router /safes/{safeID}/resets [get]
func (h *safeHandler) listSafeResets(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	safeID := c.Param("safeID")

	history, err := h.historyService.ListResetHistory(c.Request.Context(), safeID)
	if err != nil {
		logger.Error("Failed to list reset history", slog.String("safe_id", safeID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list reset history"})
		return
	}
	c.JSON(http.StatusOK, dto.ToResetHistoryResponses(history))
}
