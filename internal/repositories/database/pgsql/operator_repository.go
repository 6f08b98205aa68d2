package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/alnoor-soft/safebox_backend/internal/apperrors"
	"github.com/alnoor-soft/safebox_backend/internal/core/domain"
	portsrepo "github.com/alnoor-soft/safebox_backend/internal/core/ports/repositories"
)

// uniqueViolationCode is the Postgres error code for unique constraint violations.
const uniqueViolationCode = "23505"

type PgxOperatorRepository struct {
	BaseRepository
}

// newPgxOperatorRepository creates a new repository for operator data.
func newPgxOperatorRepository(pool *pgxpool.Pool) portsrepo.OperatorRepositoryFacade {
	return &PgxOperatorRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxOperatorRepository implements the facade
var _ portsrepo.OperatorRepositoryFacade = (*PgxOperatorRepository)(nil)

const operatorColumns = `operator_id, name, email, password_hash, is_active, created_at, created_by, last_updated_at, last_updated_by`

func scanOperator(row pgx.Row) (*domain.Operator, error) {
	var op domain.Operator
	err := row.Scan(
		&op.OperatorID,
		&op.Name,
		&op.Email,
		&op.PasswordHash,
		&op.IsActive,
		&op.CreatedAt,
		&op.CreatedBy,
		&op.LastUpdatedAt,
		&op.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &op, nil
}

func (r *PgxOperatorRepository) SaveOperator(ctx context.Context, operator domain.Operator) error {
	query := `
		INSERT INTO operators (` + operatorColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		operator.OperatorID,
		operator.Name,
		operator.Email,
		operator.PasswordHash,
		operator.IsActive,
		operator.CreatedAt,
		operator.CreatedBy,
		operator.LastUpdatedAt,
		operator.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return fmt.Errorf("%w: operator with email %s", apperrors.ErrDuplicate, operator.Email)
		}
		return fmt.Errorf("failed to save operator %s: %w", operator.OperatorID, err)
	}
	return nil
}

func (r *PgxOperatorRepository) CountOperators(ctx context.Context) (int64, error) {
	var count int64
	if err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM operators;`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count operators: %w", err)
	}
	return count, nil
}

func (r *PgxOperatorRepository) FindOperatorByID(ctx context.Context, operatorID string) (*domain.Operator, error) {
	query := `SELECT ` + operatorColumns + ` FROM operators WHERE operator_id = $1;`
	op, err := scanOperator(r.Pool.QueryRow(ctx, query, operatorID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("operator " + operatorID + " not found")
		}
		return nil, fmt.Errorf("failed to find operator by ID %s: %w", operatorID, err)
	}
	return op, nil
}

func (r *PgxOperatorRepository) FindOperatorByEmail(ctx context.Context, email string) (*domain.Operator, error) {
	query := `SELECT ` + operatorColumns + ` FROM operators WHERE email = $1;`
	op, err := scanOperator(r.Pool.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("operator with email " + email + " not found")
		}
		return nil, fmt.Errorf("failed to find operator by email: %w", err)
	}
	return op, nil
}
