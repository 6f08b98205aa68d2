package services

import (
	"context"

	"github.com/alnoor-soft/safebox_backend/internal/core/domain"
	"github.com/alnoor-soft/safebox_backend/internal/dto"
)

// SafeSvcFacade exposes safe CRUD and the reset/transfer operation.
type SafeSvcFacade interface {
	CreateSafe(ctx context.Context, req dto.CreateSafeRequest, creatorID string) (*domain.Safe, error)
	GetSafeByID(ctx context.Context, safeID string) (*domain.Safe, error)
	ListSafes(ctx context.Context, mainOnly bool) ([]domain.Safe, error)
	UpdateSafe(ctx context.Context, safeID string, req dto.UpdateSafeRequest, updatedBy string) (*domain.Safe, error)

	// ResetSafe zeroes or transfers the safe's balances and records the
	// event in the reset ledger, atomically.
	ResetSafe(ctx context.Context, safeID string, req dto.ResetSafeRequest, operator domain.OperatorIdentity) (*domain.ResetHistory, error)
}
