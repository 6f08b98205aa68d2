package pgsql

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/alnoor-soft/safebox_backend/internal/core/domain"
	portsrepo "github.com/alnoor-soft/safebox_backend/internal/core/ports/repositories"
)

type PgxResetHistoryRepository struct {
	BaseRepository
}

// newPgxResetHistoryRepository creates a new repository for the reset ledger.
func newPgxResetHistoryRepository(pool *pgxpool.Pool) portsrepo.ResetHistoryRepositoryFacade {
	return &PgxResetHistoryRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxResetHistoryRepository implements the facade
var _ portsrepo.ResetHistoryRepositoryFacade = (*PgxResetHistoryRepository)(nil)

const resetHistoryColumns = `reset_id, safe_id, safe_name, reset_type, previous_balance_usd, previous_balance_iqd, target_safe_id, target_safe_name, reset_by, created_at`

const insertResetHistoryQuery = `
	INSERT INTO reset_history (` + resetHistoryColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
`

func resetHistoryInsertArgs(h domain.ResetHistory) []any {
	return []any{
		h.ResetID,
		h.SafeID,
		h.SafeName,
		h.ResetType,
		h.PreviousBalanceUSD,
		h.PreviousBalanceIQD,
		h.TargetSafeID,
		h.TargetSafeName,
		h.ResetBy,
		h.CreatedAt,
	}
}

func (r *PgxResetHistoryRepository) SaveResetHistory(ctx context.Context, history domain.ResetHistory) error {
	if _, err := r.Pool.Exec(ctx, insertResetHistoryQuery, resetHistoryInsertArgs(history)...); err != nil {
		return fmt.Errorf("failed to save reset history %s: %w", history.ResetID, err)
	}
	return nil
}

// InsertResetHistoryInTx writes the ledger entry inside an existing
// transaction, so it commits or aborts with the balance reset.
func (r *PgxResetHistoryRepository) InsertResetHistoryInTx(ctx context.Context, tx pgx.Tx, history domain.ResetHistory) error {
	if _, err := tx.Exec(ctx, insertResetHistoryQuery, resetHistoryInsertArgs(history)...); err != nil {
		return fmt.Errorf("failed to insert reset history %s: %w", history.ResetID, err)
	}
	return nil
}

func (r *PgxResetHistoryRepository) ListResetHistoryBySafeID(ctx context.Context, safeID string) ([]domain.ResetHistory, error) {
	query := `SELECT ` + resetHistoryColumns + ` FROM reset_history WHERE safe_id = $1 ORDER BY created_at DESC;`

	rows, err := r.Pool.Query(ctx, query, safeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reset history for safe %s: %w", safeID, err)
	}
	defer rows.Close()

	entries := make([]domain.ResetHistory, 0)
	for rows.Next() {
		var h domain.ResetHistory
		var prevUSD, prevIQD sql.NullString
		var targetID, targetName sql.NullString
		err := rows.Scan(
			&h.ResetID,
			&h.SafeID,
			&h.SafeName,
			&h.ResetType,
			&prevUSD,
			&prevIQD,
			&targetID,
			&targetName,
			&h.ResetBy,
			&h.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan reset history row: %w", err)
		}
		if prevUSD.Valid {
			d, err := decimal.NewFromString(prevUSD.String)
			if err != nil {
				return nil, fmt.Errorf("invalid previous USD balance on reset %s: %w", h.ResetID, err)
			}
			h.PreviousBalanceUSD = &d
		}
		if prevIQD.Valid {
			d, err := decimal.NewFromString(prevIQD.String)
			if err != nil {
				return nil, fmt.Errorf("invalid previous IQD balance on reset %s: %w", h.ResetID, err)
			}
			h.PreviousBalanceIQD = &d
		}
		if targetID.Valid {
			h.TargetSafeID = &targetID.String
		}
		if targetName.Valid {
			h.TargetSafeName = &targetName.String
		}
		entries = append(entries, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed iterating reset history rows: %w", err)
	}
	return entries, nil
}
