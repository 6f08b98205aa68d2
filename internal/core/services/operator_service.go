package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/alnoor-soft/safebox_backend/internal/apperrors"
	"github.com/alnoor-soft/safebox_backend/internal/core/domain"
	portsrepo "github.com/alnoor-soft/safebox_backend/internal/core/ports/repositories"
	portssvc "github.com/alnoor-soft/safebox_backend/internal/core/ports/services"
	"github.com/alnoor-soft/safebox_backend/internal/dto"
	"github.com/alnoor-soft/safebox_backend/internal/middleware"
)

// ErrInvalidCredentials is returned for any failed login attempt. The cause
// (missing operator, wrong password, inactive account) is not disclosed.
var ErrInvalidCredentials = errors.New("invalid credentials")

// operatorService provides operator management and credential checks.
type operatorService struct {
	operatorRepo portsrepo.OperatorRepositoryFacade
}

// NewOperatorService creates a new OperatorService.
func NewOperatorService(operatorRepo portsrepo.OperatorRepositoryFacade) portssvc.OperatorSvcFacade {
	return &operatorService{operatorRepo: operatorRepo}
}

var _ portssvc.OperatorSvcFacade = (*operatorService)(nil)

// CreateOperator creates a new operator with a bcrypt-hashed password.
func (s *operatorService) CreateOperator(ctx context.Context, req dto.CreateOperatorRequest, creatorID string) (*domain.Operator, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Error("Failed to hash operator password", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	operator := domain.Operator{
		OperatorID:   uuid.NewString(),
		Name:         req.Name,
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: string(hash),
		IsActive:     true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorID,
		},
	}

	if err := s.operatorRepo.SaveOperator(ctx, operator); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			logger.Error("Failed to save operator", slog.String("error", err.Error()))
		}
		return nil, err
	}

	logger.Info("Operator created", slog.String("operator_id", operator.OperatorID))
	return &operator, nil
}

// EnsureBootstrapOperator creates the initial operator when none exist yet.
// Called at startup with the configured bootstrap credentials; a populated
// operators table makes this a no-op so the configured password never
// overwrites a live account.
func (s *operatorService) EnsureBootstrapOperator(ctx context.Context, name, email, password string) (*domain.Operator, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if strings.TrimSpace(email) == "" || password == "" {
		return nil, fmt.Errorf("%w: bootstrap operator email and password are required", apperrors.ErrValidation)
	}

	count, err := s.operatorRepo.CountOperators(ctx)
	if err != nil {
		logger.Error("Failed to count operators for bootstrap", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to count operators: %w", err)
	}
	if count > 0 {
		return nil, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logger.Error("Failed to hash bootstrap operator password", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	operator := domain.Operator{
		OperatorID:   uuid.NewString(),
		Name:         name,
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PasswordHash: string(hash),
		IsActive:     true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}
	operator.CreatedBy = operator.OperatorID
	operator.LastUpdatedBy = operator.OperatorID

	if err := s.operatorRepo.SaveOperator(ctx, operator); err != nil {
		// A duplicate here means another instance bootstrapped first.
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, nil
		}
		logger.Error("Failed to save bootstrap operator", slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Bootstrap operator created",
		slog.String("operator_id", operator.OperatorID),
		slog.String("email", operator.Email))
	return &operator, nil
}

// GetOperatorByID retrieves an operator by ID.
func (s *operatorService) GetOperatorByID(ctx context.Context, operatorID string) (*domain.Operator, error) {
	return s.operatorRepo.FindOperatorByID(ctx, operatorID)
}

// Authenticate verifies an email/password pair.
func (s *operatorService) Authenticate(ctx context.Context, email, password string) (*domain.Operator, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	operator, err := s.operatorRepo.FindOperatorByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrForbidden, ErrInvalidCredentials)
		}
		logger.Error("Failed to look up operator for login", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to look up operator: %w", err)
	}
	if !operator.IsActive {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrForbidden, ErrInvalidCredentials)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(operator.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrForbidden, ErrInvalidCredentials)
	}

	return operator, nil
}
