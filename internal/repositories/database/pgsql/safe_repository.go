package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/alnoor-soft/safebox_backend/internal/apperrors"
	"github.com/alnoor-soft/safebox_backend/internal/core/domain"
	portsrepo "github.com/alnoor-soft/safebox_backend/internal/core/ports/repositories"
	"github.com/alnoor-soft/safebox_backend/internal/utils/accounting"
)

type PgxSafeRepository struct {
	BaseRepository
	resetHistoryRepo portsrepo.ResetHistoryRepositoryFacade
}

// newPgxSafeRepository creates a new repository for safe data. The reset
// history repository is injected so ResetSafe can write its ledger entry
// inside the same transaction.
func newPgxSafeRepository(pool *pgxpool.Pool, resetHistoryRepo portsrepo.ResetHistoryRepositoryFacade) portsrepo.SafeRepositoryFacade {
	return &PgxSafeRepository{
		BaseRepository:   BaseRepository{Pool: pool},
		resetHistoryRepo: resetHistoryRepo,
	}
}

// Ensure PgxSafeRepository implements portsrepo.SafeRepositoryFacade
var _ portsrepo.SafeRepositoryFacade = (*PgxSafeRepository)(nil)

const safeColumns = `safe_id, name, balance_usd, balance_iqd, is_main, custodian_name, custodian_image_url, created_at, created_by, last_updated_at, last_updated_by`

func scanSafe(row pgx.Row) (*domain.Safe, error) {
	var safe domain.Safe
	err := row.Scan(
		&safe.SafeID,
		&safe.Name,
		&safe.BalanceUSD,
		&safe.BalanceIQD,
		&safe.IsMain,
		&safe.CustodianName,
		&safe.CustodianImageURL,
		&safe.CreatedAt,
		&safe.CreatedBy,
		&safe.LastUpdatedAt,
		&safe.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &safe, nil
}

func (r *PgxSafeRepository) SaveSafe(ctx context.Context, safe domain.Safe) error {
	query := `
		INSERT INTO safes (` + safeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		safe.SafeID,
		safe.Name,
		safe.BalanceUSD,
		safe.BalanceIQD,
		safe.IsMain,
		safe.CustodianName,
		safe.CustodianImageURL,
		safe.CreatedAt,
		safe.CreatedBy,
		safe.LastUpdatedAt,
		safe.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save safe %s: %w", safe.SafeID, err)
	}
	return nil
}

func (r *PgxSafeRepository) FindSafeByID(ctx context.Context, safeID string) (*domain.Safe, error) {
	query := `SELECT ` + safeColumns + ` FROM safes WHERE safe_id = $1;`
	safe, err := scanSafe(r.Pool.QueryRow(ctx, query, safeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("safe " + safeID + " not found")
		}
		return nil, fmt.Errorf("failed to find safe by ID %s: %w", safeID, err)
	}
	return safe, nil
}

func (r *PgxSafeRepository) ListSafes(ctx context.Context, mainOnly bool) ([]domain.Safe, error) {
	query := `SELECT ` + safeColumns + ` FROM safes`
	if mainOnly {
		query += ` WHERE is_main = TRUE`
	}
	query += ` ORDER BY name;`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list safes: %w", err)
	}
	defer rows.Close()

	safes := make([]domain.Safe, 0)
	for rows.Next() {
		safe, err := scanSafe(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan safe row: %w", err)
		}
		safes = append(safes, *safe)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed iterating safe rows: %w", err)
	}
	return safes, nil
}

func (r *PgxSafeRepository) UpdateSafe(ctx context.Context, safe domain.Safe) error {
	query := `
		UPDATE safes
		SET name = $2, is_main = $3, custodian_name = $4, custodian_image_url = $5,
		    last_updated_at = $6, last_updated_by = $7
		WHERE safe_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		safe.SafeID,
		safe.Name,
		safe.IsMain,
		safe.CustodianName,
		safe.CustodianImageURL,
		safe.LastUpdatedAt,
		safe.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update safe %s: %w", safe.SafeID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("safe " + safe.SafeID + " not found")
	}
	return nil
}

// SetSafeBalances overwrites both persisted balances with recomputed values.
func (r *PgxSafeRepository) SetSafeBalances(ctx context.Context, safeID string, balanceUSD, balanceIQD decimal.Decimal, updatedBy string, now time.Time) error {
	query := `
		UPDATE safes
		SET balance_usd = $2, balance_iqd = $3, last_updated_at = $4, last_updated_by = $5
		WHERE safe_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, safeID, balanceUSD, balanceIQD, now, updatedBy)
	if err != nil {
		return fmt.Errorf("failed to set balances for safe %s: %w", safeID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("safe " + safeID + " not found")
	}
	return nil
}

// FindSafeByIDForUpdate retrieves a safe and locks its row for the duration
// of the transaction.
func (r *PgxSafeRepository) FindSafeByIDForUpdate(ctx context.Context, tx pgx.Tx, safeID string) (*domain.Safe, error) {
	query := `SELECT ` + safeColumns + ` FROM safes WHERE safe_id = $1 FOR UPDATE;`
	safe, err := scanSafe(tx.QueryRow(ctx, query, safeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("safe " + safeID + " not found")
		}
		return nil, fmt.Errorf("failed to lock safe %s: %w", safeID, err)
	}
	return safe, nil
}

// ApplySafeBalanceDeltaInTx increments the safe's balances by the given net
// deltas within an existing transaction. The caller must hold the row lock.
func (r *PgxSafeRepository) ApplySafeBalanceDeltaInTx(ctx context.Context, tx pgx.Tx, safeID string, deltaUSD, deltaIQD decimal.Decimal, updatedBy string, now time.Time) error {
	query := `
		UPDATE safes
		SET balance_usd = balance_usd + $2, balance_iqd = balance_iqd + $3,
		    last_updated_at = $4, last_updated_by = $5
		WHERE safe_id = $1;
	`
	tag, err := tx.Exec(ctx, query, safeID, deltaUSD, deltaIQD, now, updatedBy)
	if err != nil {
		return fmt.Errorf("failed to apply balance delta to safe %s: %w", safeID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("safe " + safeID + " not found")
	}
	return nil
}

// ResetSafe snapshots the safe's balances, zeroes (or transfers) the portions
// named by resetType and writes the reset ledger entry, all in one
// transaction.
func (r *PgxSafeRepository) ResetSafe(ctx context.Context, safeID string, resetType domain.ResetType, targetSafeID *string, operator domain.OperatorIdentity, now time.Time) (*domain.ResetHistory, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	safe, err := r.FindSafeByIDForUpdate(ctx, tx, safeID)
	if err != nil {
		return nil, err
	}

	plan := accounting.PlanReset(safe.BalanceUSD, safe.BalanceIQD, resetType)
	history := domain.ResetHistory{
		ResetID:            uuid.NewString(),
		SafeID:             safe.SafeID,
		SafeName:           safe.Name,
		ResetType:          resetType,
		PreviousBalanceUSD: plan.PreviousUSD,
		PreviousBalanceIQD: plan.PreviousIQD,
		ResetBy:            operator.Name,
		CreatedAt:          now,
	}

	if targetSafeID != nil {
		target, err := r.FindSafeByIDForUpdate(ctx, tx, *targetSafeID)
		if err != nil {
			return nil, err
		}
		history.TargetSafeID = &target.SafeID
		history.TargetSafeName = &target.Name
		if err := r.ApplySafeBalanceDeltaInTx(ctx, tx, target.SafeID, plan.TransferUSD, plan.TransferIQD, operator.ID, now); err != nil {
			return nil, err
		}
	}

	query := `
		UPDATE safes
		SET balance_usd = $2, balance_iqd = $3, last_updated_at = $4, last_updated_by = $5
		WHERE safe_id = $1;
	`
	if _, err := tx.Exec(ctx, query, safe.SafeID, plan.NewUSD, plan.NewIQD, now, operator.ID); err != nil {
		return nil, apperrors.NewAppError(500, "failed to reset balances for safe "+safe.SafeID, err)
	}

	if err := r.resetHistoryRepo.InsertResetHistoryInTx(ctx, tx, history); err != nil {
		return nil, apperrors.NewAppError(500, "failed to record reset for safe "+safe.SafeID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &history, nil
}
