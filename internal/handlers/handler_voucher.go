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

// voucherHandler handles HTTP requests related to vouchers.
type voucherHandler struct {
	voucherService      portssvc.VoucherSvcFacade
	confirmationService portssvc.ConfirmationSvcFacade
	operatorService     portssvc.OperatorSvcFacade
}

// registerVoucherRoutes registers routes related to vouchers.
func registerVoucherRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := &voucherHandler{
		voucherService:      services.Voucher,
		confirmationService: services.Confirmation,
		operatorService:     services.Operator,
	}

	vouchers := rg.Group("/vouchers")
	{
		vouchers.POST("", h.createVoucher)
		vouchers.POST("/import", h.importVouchers)
		vouchers.GET("", h.listVouchers)
		vouchers.GET("/:voucherID", h.getVoucher)
		vouchers.DELETE("/:voucherID", h.deleteVoucher)
		vouchers.POST("/:voucherID/confirm", h.confirmVoucher)
	}
}

// createVoucher godoc
// @Summary Create a new voucher
// @Tags vouchers
// @Accept json
// @Produce json
// @Param voucher body dto.CreateVoucherRequest true "Voucher details"
// @Success 201 {object} dto.VoucherResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /vouchers [post]
func (h *voucherHandler) createVoucher(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateVoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}
	operatorID, ok := middleware.GetOperatorIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	voucher, err := h.voucherService.CreateVoucher(c.Request.Context(), req, operatorID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Safe not found"})
		default:
			logger.Error("Failed to create voucher", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create voucher"})
		}
		return
	}
	c.JSON(http.StatusCreated, dto.ToVoucherResponse(voucher))
}

// importVouchers godoc
// @Summary Bulk import vouchers
// @Description Ingests spreadsheet-shaped rows. Missing or malformed amounts are stored as zero; unknown types, currencies or safes reject the import.
// @Tags vouchers
// @Accept json
// @Produce json
// @Param import body dto.ImportVouchersRequest true "Voucher rows"
// @Success 201 {array} dto.VoucherResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /vouchers/import [post]
func (h *voucherHandler) importVouchers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.ImportVouchersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}
	operatorID, ok := middleware.GetOperatorIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	vouchers, err := h.voucherService.ImportVouchers(c.Request.Context(), req, operatorID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		logger.Error("Failed to import vouchers", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to import vouchers"})
		return
	}
	c.JSON(http.StatusCreated, dto.ToVoucherResponses(vouchers))
}

// listVouchers godoc
// @Summary List vouchers
// @Tags vouchers
// @Produce json
// @Param safeID query string false "Filter to one safe"
// @Param unconfirmedOnly query bool false "Only unconfirmed vouchers"
// @Success 200 {array} dto.VoucherResponse
// @Security BearerAuth
// @Router /vouchers [get]
func (h *voucherHandler) listVouchers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var safeID *string
	if v := c.Query("safeID"); v != "" {
		safeID = &v
	}
	unconfirmedOnly, _ := strconv.ParseBool(c.Query("unconfirmedOnly"))

	vouchers, err := h.voucherService.ListVouchers(c.Request.Context(), safeID, unconfirmedOnly)
	if err != nil {
		logger.Error("Failed to list vouchers", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list vouchers"})
		return
	}
	c.JSON(http.StatusOK, dto.ToVoucherResponses(vouchers))
}

// getVoucher godoc
// @Summary Get a voucher by ID
// @Tags vouchers
// @Produce json
// @Param voucherID path string true "Voucher ID"
// @Success 200 {object} dto.VoucherResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /vouchers/{voucherID} [get]
func (h *voucherHandler) getVoucher(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	voucher, err := h.voucherService.GetVoucherByID(c.Request.Context(), c.Param("voucherID"))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Voucher not found"})
			return
		}
		logger.Error("Failed to get voucher", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve voucher"})
		return
	}
	c.JSON(http.StatusOK, dto.ToVoucherResponse(voucher))
}

// deleteVoucher godoc
// @Summary Delete an unconfirmed voucher
// @Description Moves the voucher into the deleted archive. Confirmed vouchers cannot be deleted.
// @Tags vouchers
// @Produce json
// @Param voucherID path string true "Voucher ID"
// @Success 204 "No Content"
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /vouchers/{voucherID} [delete]
func (h *voucherHandler) deleteVoucher(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	voucherID := c.Param("voucherID")

	operatorID, ok := middleware.GetOperatorIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.voucherService.DeleteVoucher(c.Request.Context(), voucherID, operatorID); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Voucher not found"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		default:
			logger.Error("Failed to delete voucher", slog.String("voucher_id", voucherID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to delete voucher"})
		}
		return
	}
	c.Status(http.StatusNoContent)
}

// confirmVoucher godoc
// @Summary Confirm a single voucher
// @Description Confirms one voucher, deriving the owning safe from the voucher itself.
// @Tags confirmations
// @Produce json
// @Param voucherID path string true "Voucher ID"
// @Success 200 {object} dto.ConfirmationResultResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /vouchers/{voucherID}/confirm [post]
func (h *voucherHandler) confirmVoucher(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	voucherID := c.Param("voucherID")

	operator, ok := operatorIdentityFromContext(c, h.operatorService)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	result, err := h.confirmationService.ConfirmVoucher(c.Request.Context(), voucherID, operator)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Voucher not found"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		default:
			logger.Error("Failed to confirm voucher", slog.String("voucher_id", voucherID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to confirm voucher"})
		}
		return
	}
	c.JSON(http.StatusOK, dto.ToConfirmationResultResponse(result))
}
