package pgsql

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/alnoor-soft/safebox_backend/internal/core/domain"
	portsrepo "github.com/alnoor-soft/safebox_backend/internal/core/ports/repositories"
)

type PgxConfirmationRecordRepository struct {
	BaseRepository
}

// newPgxConfirmationRecordRepository creates a new repository for the
// confirmation audit trail.
func newPgxConfirmationRecordRepository(pool *pgxpool.Pool) portsrepo.ConfirmationRecordRepositoryFacade {
	return &PgxConfirmationRecordRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxConfirmationRecordRepository implements the facade
var _ portsrepo.ConfirmationRecordRepositoryFacade = (*PgxConfirmationRecordRepository)(nil)

const confirmationRecordColumns = `record_id, safe_id, safe_name, unconfirmed_usd, unconfirmed_iqd, voucher_count, voucher_ids, details, confirmed_by, confirmed_by_email, confirmed_at`

const insertConfirmationRecordQuery = `
	INSERT INTO confirmation_records (` + confirmationRecordColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
`

func confirmationRecordInsertArgs(record domain.ConfirmationRecord) ([]any, error) {
	details, err := json.Marshal(record.Details)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal confirmation details: %w", err)
	}
	return []any{
		record.RecordID,
		record.SafeID,
		record.SafeName,
		record.UnconfirmedUSD,
		record.UnconfirmedIQD,
		record.VoucherCount,
		record.VoucherIDs,
		details,
		record.ConfirmedBy,
		record.ConfirmedByEmail,
		record.ConfirmedAt,
	}, nil
}

func (r *PgxConfirmationRecordRepository) SaveConfirmationRecord(ctx context.Context, record domain.ConfirmationRecord) error {
	args, err := confirmationRecordInsertArgs(record)
	if err != nil {
		return err
	}
	if _, err := r.Pool.Exec(ctx, insertConfirmationRecordQuery, args...); err != nil {
		return fmt.Errorf("failed to save confirmation record %s: %w", record.RecordID, err)
	}
	return nil
}

// InsertConfirmationRecordInTx writes the record inside an existing
// transaction, so the audit entry commits or aborts with the batch.
func (r *PgxConfirmationRecordRepository) InsertConfirmationRecordInTx(ctx context.Context, tx pgx.Tx, record domain.ConfirmationRecord) error {
	args, err := confirmationRecordInsertArgs(record)
	if err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, insertConfirmationRecordQuery, args...); err != nil {
		return fmt.Errorf("failed to insert confirmation record %s: %w", record.RecordID, err)
	}
	return nil
}

func (r *PgxConfirmationRecordRepository) ListConfirmationRecords(ctx context.Context, safeID *string) ([]domain.ConfirmationRecord, error) {
	query := `SELECT ` + confirmationRecordColumns + ` FROM confirmation_records`
	args := []any{}
	if safeID != nil {
		query += ` WHERE safe_id = $1`
		args = append(args, *safeID)
	}
	query += ` ORDER BY confirmed_at DESC;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list confirmation records: %w", err)
	}
	defer rows.Close()

	records := make([]domain.ConfirmationRecord, 0)
	for rows.Next() {
		var record domain.ConfirmationRecord
		var details []byte
		err := rows.Scan(
			&record.RecordID,
			&record.SafeID,
			&record.SafeName,
			&record.UnconfirmedUSD,
			&record.UnconfirmedIQD,
			&record.VoucherCount,
			&record.VoucherIDs,
			&details,
			&record.ConfirmedBy,
			&record.ConfirmedByEmail,
			&record.ConfirmedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan confirmation record row: %w", err)
		}
		if len(details) > 0 {
			if err := json.Unmarshal(details, &record.Details); err != nil {
				return nil, fmt.Errorf("failed to unmarshal details for record %s: %w", record.RecordID, err)
			}
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed iterating confirmation record rows: %w", err)
	}
	return records, nil
}

func (r *PgxConfirmationRecordRepository) DeleteConfirmationRecords(ctx context.Context, safeID *string) (int64, error) {
	query := `DELETE FROM confirmation_records`
	args := []any{}
	if safeID != nil {
		query += ` WHERE safe_id = $1`
		args = append(args, *safeID)
	}
	query += `;`

	tag, err := r.Pool.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to delete confirmation records: %w", err)
	}
	return tag.RowsAffected(), nil
}
