package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/alnoor-soft/safebox_backend/internal/apperrors"
	"github.com/alnoor-soft/safebox_backend/internal/core/domain"
	portssvc "github.com/alnoor-soft/safebox_backend/internal/core/ports/services"
	"github.com/alnoor-soft/safebox_backend/internal/dto"
	"github.com/alnoor-soft/safebox_backend/internal/middleware"
	"github.com/alnoor-soft/safebox_backend/pkg/config"
)

// authHandler handles authentication related requests.
type authHandler struct {
	operatorService portssvc.OperatorSvcFacade
	tokenService    portssvc.TokenSvcFacade
}

// newAuthHandler creates a new authHandler.
func newAuthHandler(os portssvc.OperatorSvcFacade, ts portssvc.TokenSvcFacade) *authHandler {
	return &authHandler{
		operatorService: os,
		tokenService:    ts,
	}
}

// registerAuthRoutes sets up the public authentication routes.
func registerAuthRoutes(r *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) {
	h := newAuthHandler(services.Operator, services.Token)

	rate, err := limiter.NewRateFromFormatted(cfg.LoginRateLimit)
	if err != nil {
		// Fall back to a conservative default when the configured value is unusable.
		rate, _ = limiter.NewRateFromFormatted("5-M")
	}
	ipLimiter := limiter.New(memory.NewStore(), rate)

	auth := r.Group("/api/v1/auth")
	{
		auth.POST("/login", middleware.RateLimit(ipLimiter), h.login)
	}
}

// login godoc
// @Summary Operator login
// @Description Authenticates an operator and returns a signed token.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/login [post]
func (h *authHandler) login(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	operator, err := h.operatorService.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, apperrors.ErrForbidden) {
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid email or password"})
			return
		}
		logger.Error("Login failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to authenticate"})
		return
	}

	token, expiresAt, err := h.tokenService.GenerateToken(c.Request.Context(), *operator)
	if err != nil {
		logger.Error("Failed to sign token", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		Operator:  dto.ToOperatorResponse(operator),
	})
}

// operatorIdentityFromContext resolves the authenticated operator's full
// identity for audit snapshots. Confirmation and reset records denormalize
// the operator name and email, so the ID from the token is not enough.
func operatorIdentityFromContext(c *gin.Context, operatorService portssvc.OperatorSvcFacade) (domain.OperatorIdentity, bool) {
	operatorID, ok := middleware.GetOperatorIDFromContext(c)
	if !ok {
		return domain.OperatorIdentity{}, false
	}
	operator, err := operatorService.GetOperatorByID(c.Request.Context(), operatorID)
	if err != nil {
		return domain.OperatorIdentity{}, false
	}
	return domain.OperatorIdentity{
		ID:    operator.OperatorID,
		Name:  operator.Name,
		Email: operator.Email,
	}, true
}
