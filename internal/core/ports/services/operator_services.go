package services

import (
	"context"

	"github.com/alnoor-soft/safebox_backend/internal/core/domain"
	"github.com/alnoor-soft/safebox_backend/internal/dto"
)

// OperatorSvcFacade exposes operator management and credential checks.
type OperatorSvcFacade interface {
	CreateOperator(ctx context.Context, req dto.CreateOperatorRequest, creatorID string) (*domain.Operator, error)
	GetOperatorByID(ctx context.Context, operatorID string) (*domain.Operator, error)

	// EnsureBootstrapOperator creates the initial operator account when the
	// operators table is empty, so the first login is possible without a
	// pre-existing token. Returns nil when operators already exist.
	EnsureBootstrapOperator(ctx context.Context, name, email, password string) (*domain.Operator, error)

	// Authenticate verifies the email/password pair and returns the
	// operator on success.
	Authenticate(ctx context.Context, email, password string) (*domain.Operator, error)
}
