package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/alnoor-soft/safebox_backend/internal/apperrors"
	"github.com/alnoor-soft/safebox_backend/internal/core/domain"
	portsrepo "github.com/alnoor-soft/safebox_backend/internal/core/ports/repositories"
	"github.com/alnoor-soft/safebox_backend/internal/utils/accounting"
)

type PgxVoucherRepository struct {
	BaseRepository
	safeRepo   portsrepo.SafeRepositoryFacade
	recordRepo portsrepo.ConfirmationRecordRepositoryFacade
}

// newPgxVoucherRepository creates a new repository for voucher data. The safe
// and confirmation record repositories are injected so ConfirmVouchers can
// lock the safe and write the audit record inside its own transaction.
func newPgxVoucherRepository(pool *pgxpool.Pool, safeRepo portsrepo.SafeRepositoryFacade, recordRepo portsrepo.ConfirmationRecordRepositoryFacade) portsrepo.VoucherRepositoryFacade {
	return &PgxVoucherRepository{
		BaseRepository: BaseRepository{Pool: pool},
		safeRepo:       safeRepo,
		recordRepo:     recordRepo,
	}
}

// Ensure PgxVoucherRepository implements portsrepo.VoucherRepositoryFacade
var _ portsrepo.VoucherRepositoryFacade = (*PgxVoucherRepository)(nil)

const voucherColumns = `voucher_id, safe_id, type, currency, amount, confirmation, is_transfer, company, section, notes, confirmed_at, confirmed_by, confirmed_by_name, created_at, created_by, last_updated_at, last_updated_by`

func scanVoucher(row pgx.Row) (*domain.Voucher, error) {
	var v domain.Voucher
	err := row.Scan(
		&v.VoucherID,
		&v.SafeID,
		&v.Type,
		&v.Currency,
		&v.Amount,
		&v.Confirmation,
		&v.IsTransfer,
		&v.Company,
		&v.Section,
		&v.Notes,
		&v.ConfirmedAt,
		&v.ConfirmedBy,
		&v.ConfirmedByName,
		&v.CreatedAt,
		&v.CreatedBy,
		&v.LastUpdatedAt,
		&v.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

const insertVoucherQuery = `
	INSERT INTO vouchers (` + voucherColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);
`

func voucherInsertArgs(v domain.Voucher) []any {
	return []any{
		v.VoucherID,
		v.SafeID,
		v.Type,
		v.Currency,
		v.Amount,
		v.Confirmation,
		v.IsTransfer,
		v.Company,
		v.Section,
		v.Notes,
		v.ConfirmedAt,
		v.ConfirmedBy,
		v.ConfirmedByName,
		v.CreatedAt,
		v.CreatedBy,
		v.LastUpdatedAt,
		v.LastUpdatedBy,
	}
}

func (r *PgxVoucherRepository) SaveVoucher(ctx context.Context, voucher domain.Voucher) error {
	if _, err := r.Pool.Exec(ctx, insertVoucherQuery, voucherInsertArgs(voucher)...); err != nil {
		return fmt.Errorf("failed to save voucher %s: %w", voucher.VoucherID, err)
	}
	return nil
}

func (r *PgxVoucherRepository) SaveVouchers(ctx context.Context, vouchers []domain.Voucher) error {
	if len(vouchers) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, v := range vouchers {
		batch.Queue(insertVoucherQuery, voucherInsertArgs(v)...)
	}
	br := r.Pool.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to save voucher batch: %w", err)
	}
	return nil
}

func (r *PgxVoucherRepository) FindVoucherByID(ctx context.Context, voucherID string) (*domain.Voucher, error) {
	query := `SELECT ` + voucherColumns + ` FROM vouchers WHERE voucher_id = $1;`
	voucher, err := scanVoucher(r.Pool.QueryRow(ctx, query, voucherID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("voucher " + voucherID + " not found")
		}
		return nil, fmt.Errorf("failed to find voucher by ID %s: %w", voucherID, err)
	}
	return voucher, nil
}

func (r *PgxVoucherRepository) FindVouchersBySafeID(ctx context.Context, safeID string, unconfirmedOnly bool) ([]domain.Voucher, error) {
	query := `SELECT ` + voucherColumns + ` FROM vouchers WHERE safe_id = $1`
	if unconfirmedOnly {
		query += ` AND confirmation = FALSE`
	}
	query += ` ORDER BY created_at;`

	rows, err := r.Pool.Query(ctx, query, safeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list vouchers for safe %s: %w", safeID, err)
	}
	defer rows.Close()
	return collectVouchers(rows)
}

func (r *PgxVoucherRepository) ListVouchers(ctx context.Context, unconfirmedOnly bool) ([]domain.Voucher, error) {
	query := `SELECT ` + voucherColumns + ` FROM vouchers`
	if unconfirmedOnly {
		query += ` WHERE confirmation = FALSE`
	}
	query += ` ORDER BY created_at;`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list vouchers: %w", err)
	}
	defer rows.Close()
	return collectVouchers(rows)
}

func collectVouchers(rows pgx.Rows) ([]domain.Voucher, error) {
	vouchers := make([]domain.Voucher, 0)
	for rows.Next() {
		v, err := scanVoucher(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan voucher row: %w", err)
		}
		vouchers = append(vouchers, *v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed iterating voucher rows: %w", err)
	}
	return vouchers, nil
}

// SoftDeleteVoucher copies the voucher into the deleted_vouchers archive and
// removes it from the working set, in one transaction.
func (r *PgxVoucherRepository) SoftDeleteVoucher(ctx context.Context, voucherID string, deletedBy string, now time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	archiveQuery := `
		INSERT INTO deleted_vouchers (` + voucherColumns + `, deleted_at, deleted_by)
		SELECT ` + voucherColumns + `, $2, $3 FROM vouchers WHERE voucher_id = $1;
	`
	tag, err := tx.Exec(ctx, archiveQuery, voucherID, now, deletedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to archive voucher "+voucherID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("voucher " + voucherID + " not found")
	}

	if _, err := tx.Exec(ctx, `DELETE FROM vouchers WHERE voucher_id = $1;`, voucherID); err != nil {
		return apperrors.NewAppError(500, "failed to delete voucher "+voucherID, err)
	}

	return r.Commit(ctx, tx)
}

// ConfirmVouchers applies a confirmation batch as one all-or-nothing
// transaction: the safe row is locked first, the batch's still-unconfirmed
// vouchers are locked and flipped, the net balance effect lands on the safe
// and the audit record is inserted. Requested vouchers that are missing or
// already confirmed are reported as skipped without failing the batch.
func (r *PgxVoucherRepository) ConfirmVouchers(ctx context.Context, batch domain.ConfirmationBatch, record domain.ConfirmationRecord) (*domain.ConfirmationResult, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	// Lock the safe before touching any voucher so concurrent batches on the
	// same safe serialize.
	if _, err := r.safeRepo.FindSafeByIDForUpdate(ctx, tx, batch.SafeID); err != nil {
		return nil, err
	}

	lockQuery := `
		SELECT ` + voucherColumns + `
		FROM vouchers
		WHERE voucher_id = ANY($1) AND safe_id = $2 AND confirmation = FALSE
		FOR UPDATE;
	`
	rows, err := tx.Query(ctx, lockQuery, batch.VoucherIDs, batch.SafeID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to lock vouchers for confirmation", err)
	}
	confirmable, err := collectVouchers(rows)
	rows.Close()
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to read vouchers for confirmation", err)
	}

	confirmed := make(map[string]struct{}, len(confirmable))
	for _, v := range confirmable {
		confirmed[v.VoucherID] = struct{}{}
	}
	skipped := make([]string, 0)
	for _, id := range batch.VoucherIDs {
		if _, ok := confirmed[id]; !ok {
			skipped = append(skipped, id)
		}
	}

	result := &domain.ConfirmationResult{
		SafeID:     batch.SafeID,
		SkippedIDs: skipped,
	}
	if len(confirmable) == 0 {
		// Nothing to flip; leave balances and the audit trail untouched.
		return result, nil
	}

	operator := batch.Operator
	now := batch.ConfirmedAt
	updateQuery := `
		UPDATE vouchers
		SET confirmation = TRUE, confirmed_at = $2, confirmed_by = $3, confirmed_by_name = $4,
		    last_updated_at = $2, last_updated_by = $3
		WHERE voucher_id = $1;
	`
	pgxBatch := &pgx.Batch{}
	for _, v := range confirmable {
		pgxBatch.Queue(updateQuery, v.VoucherID, now, operator.ID, operator.Name)
	}
	br := tx.SendBatch(ctx, pgxBatch)
	if err := br.Close(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to flip confirmation flags", err)
	}

	netUSD, netIQD := accounting.NetEffect(confirmable)
	if err := r.safeRepo.ApplySafeBalanceDeltaInTx(ctx, tx, batch.SafeID, netUSD, netIQD, operator.ID, now); err != nil {
		return nil, err
	}

	// Complete the audit record from the vouchers that actually flipped.
	record.VoucherCount = len(confirmable)
	record.VoucherIDs = make([]string, 0, len(confirmable))
	record.Details = make([]domain.ConfirmedVoucherDetail, 0, len(confirmable))
	for _, v := range confirmable {
		record.VoucherIDs = append(record.VoucherIDs, v.VoucherID)
		record.Details = append(record.Details, domain.ConfirmedVoucherDetail{
			VoucherID: v.VoucherID,
			Company:   v.Company,
			Section:   v.Section,
			Amount:    v.Amount,
			Currency:  v.Currency,
			Type:      v.Type,
		})
	}
	if err := r.recordRepo.InsertConfirmationRecordInTx(ctx, tx, record); err != nil {
		return nil, apperrors.NewAppError(500, "failed to insert confirmation record", err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	result.ConfirmedCount = len(confirmable)
	result.TotalUSD = netUSD
	result.TotalIQD = netIQD
	result.RecordID = record.RecordID
	return result, nil
}
