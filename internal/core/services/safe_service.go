package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/alnoor-soft/safebox_backend/internal/apperrors"
	"github.com/alnoor-soft/safebox_backend/internal/core/domain"
	portsrepo "github.com/alnoor-soft/safebox_backend/internal/core/ports/repositories"
	portssvc "github.com/alnoor-soft/safebox_backend/internal/core/ports/services"
	"github.com/alnoor-soft/safebox_backend/internal/dto"
	"github.com/alnoor-soft/safebox_backend/internal/middleware"
)

var (
	// ErrNegativeOpeningBalance is returned when a safe is created with a
	// negative opening balance.
	ErrNegativeOpeningBalance = errors.New("opening balances must be non-negative")
	// ErrTargetNotMain is returned when a transfer-to-safe targets a safe
	// that is not marked as a main safe.
	ErrTargetNotMain = errors.New("transfer target must be a main safe")
	// ErrTransferToSelf is returned when a safe is reset into itself.
	ErrTransferToSelf = errors.New("cannot transfer a safe's balance to itself")
)

// safeService provides safe CRUD and the reset/transfer operation.
type safeService struct {
	safeRepo portsrepo.SafeRepositoryFacade
}

// NewSafeService creates a new SafeService.
func NewSafeService(safeRepo portsrepo.SafeRepositoryFacade) portssvc.SafeSvcFacade {
	return &safeService{safeRepo: safeRepo}
}

var _ portssvc.SafeSvcFacade = (*safeService)(nil)

// CreateSafe creates a new safe with optional opening balances.
func (s *safeService) CreateSafe(ctx context.Context, req dto.CreateSafeRequest, creatorID string) (*domain.Safe, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.BalanceUSD.IsNegative() || req.BalanceIQD.IsNegative() {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrNegativeOpeningBalance)
	}

	now := time.Now().UTC()
	safe := domain.Safe{
		SafeID:            uuid.NewString(),
		Name:              req.Name,
		BalanceUSD:        req.BalanceUSD,
		BalanceIQD:        req.BalanceIQD,
		IsMain:            req.IsMain,
		CustodianName:     req.CustodianName,
		CustodianImageURL: req.CustodianImageURL,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorID,
		},
	}

	if err := s.safeRepo.SaveSafe(ctx, safe); err != nil {
		logger.Error("Failed to save safe", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save safe: %w", err)
	}

	logger.Info("Safe created", slog.String("safe_id", safe.SafeID), slog.String("name", safe.Name))
	return &safe, nil
}

// GetSafeByID retrieves a safe by its ID.
func (s *safeService) GetSafeByID(ctx context.Context, safeID string) (*domain.Safe, error) {
	return s.safeRepo.FindSafeByID(ctx, safeID)
}

// ListSafes retrieves all safes, optionally only main safes (the eligible
// transfer targets).
func (s *safeService) ListSafes(ctx context.Context, mainOnly bool) ([]domain.Safe, error) {
	return s.safeRepo.ListSafes(ctx, mainOnly)
}

// UpdateSafe updates a safe's name, main flag and custodian metadata.
// Balances are never touched here; they move only through the confirmation
// workflow, recompute, and reset operations.
func (s *safeService) UpdateSafe(ctx context.Context, safeID string, req dto.UpdateSafeRequest, updatedBy string) (*domain.Safe, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	safe, err := s.safeRepo.FindSafeByID(ctx, safeID)
	if err != nil {
		return nil, err
	}

	updated := false
	if req.Name != nil {
		safe.Name = *req.Name
		updated = true
	}
	if req.IsMain != nil {
		safe.IsMain = *req.IsMain
		updated = true
	}
	if req.CustodianName != nil {
		safe.CustodianName = *req.CustodianName
		updated = true
	}
	if req.CustodianImageURL != nil {
		safe.CustodianImageURL = *req.CustodianImageURL
		updated = true
	}
	if !updated {
		logger.Debug("No fields provided for safe update", slog.String("safe_id", safeID))
		return safe, nil
	}

	safe.LastUpdatedAt = time.Now().UTC()
	safe.LastUpdatedBy = updatedBy

	if err := s.safeRepo.UpdateSafe(ctx, *safe); err != nil {
		logger.Error("Failed to update safe", slog.String("safe_id", safeID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to update safe: %w", err)
	}

	logger.Info("Safe updated", slog.String("safe_id", safeID))
	return safe, nil
}

// ResetSafe zeroes or transfers the safe's balances and records the event in
// the reset ledger. The snapshot, the balance mutation and the ledger insert
// commit in one repository transaction.
func (s *safeService) ResetSafe(ctx context.Context, safeID string, req dto.ResetSafeRequest, operator domain.OperatorIdentity) (*domain.ResetHistory, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if operator.ID == "" {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrMissingOperator)
	}

	if req.TargetSafeID != nil {
		if *req.TargetSafeID == safeID {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrTransferToSelf)
		}
		target, err := s.safeRepo.FindSafeByID(ctx, *req.TargetSafeID)
		if err != nil {
			if !errors.Is(err, apperrors.ErrNotFound) {
				logger.Error("Failed to find transfer target safe", slog.String("target_safe_id", *req.TargetSafeID), slog.String("error", err.Error()))
			}
			return nil, err
		}
		if !target.IsMain {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrTargetNotMain)
		}
	}

	now := time.Now().UTC()
	history, err := s.safeRepo.ResetSafe(ctx, safeID, req.ResetType, req.TargetSafeID, operator, now)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to reset safe", slog.String("safe_id", safeID), slog.String("error", err.Error()))
		}
		return nil, err
	}

	logger.Info("Safe reset recorded",
		slog.String("safe_id", safeID),
		slog.String("reset_type", string(req.ResetType)),
		slog.Bool("is_transfer", req.TargetSafeID != nil),
	)
	return history, nil
}
