package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alnoor-soft/safebox_backend/internal/apperrors"
	portssvc "github.com/alnoor-soft/safebox_backend/internal/core/ports/services"
	"github.com/alnoor-soft/safebox_backend/internal/dto"
	"github.com/alnoor-soft/safebox_backend/internal/middleware"
)

// operatorHandler handles HTTP requests related to operators.
type operatorHandler struct {
	operatorService portssvc.OperatorSvcFacade
}

// registerOperatorRoutes registers routes related to operators.
func registerOperatorRoutes(rg *gin.RouterGroup, operatorService portssvc.OperatorSvcFacade) {
	h := &operatorHandler{operatorService: operatorService}

	operators := rg.Group("/operators")
	{
		operators.POST("", h.createOperator)
		operators.GET("/:operatorID", h.getOperator)
	}
}

// createOperator godoc
// @Summary Create a new operator
// @Tags operators
// @Accept json
// @Produce json
// @Param operator body dto.CreateOperatorRequest true "Operator details"
// @Success 201 {object} dto.OperatorResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /operators [post]
func (h *operatorHandler) createOperator(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateOperatorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}
	creatorID, ok := middleware.GetOperatorIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	operator, err := h.operatorService.CreateOperator(c.Request.Context(), req, creatorID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrDuplicate):
			c.JSON(http.StatusConflict, ErrorResponse{Error: "An operator with this email already exists"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		default:
			logger.Error("Failed to create operator", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create operator"})
		}
		return
	}
	c.JSON(http.StatusCreated, dto.ToOperatorResponse(operator))
}

// getOperator godoc
// @Summary Get an operator by ID
// @Tags operators
// @Produce json
// @Param operatorID path string true "Operator ID"
// @Success 200 {object} dto.OperatorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /operators/{operatorID} [get]
func (h *operatorHandler) getOperator(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	operator, err := h.operatorService.GetOperatorByID(c.Request.Context(), c.Param("operatorID"))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Operator not found"})
			return
		}
		logger.Error("Failed to get operator", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve operator"})
		return
	}
	c.JSON(http.StatusOK, dto.ToOperatorResponse(operator))
}
