package repositories

import (
	"context"

	"github.com/alnoor-soft/safebox_backend/internal/core/domain"
)

// OperatorRepositoryFacade defines persistence operations for operators.
type OperatorRepositoryFacade interface {
	SaveOperator(ctx context.Context, operator domain.Operator) error
	FindOperatorByID(ctx context.Context, operatorID string) (*domain.Operator, error)
	FindOperatorByEmail(ctx context.Context, email string) (*domain.Operator, error)

	// CountOperators reports how many operators exist. Used to decide
	// whether the bootstrap operator still needs to be provisioned.
	CountOperators(ctx context.Context) (int64, error)
}
