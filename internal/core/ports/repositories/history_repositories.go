package repositories

import (
	"context"

	"github.com/alnoor-soft/safebox_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// ConfirmationRecordRepositoryFacade defines persistence for the append-only
// confirmation audit trail.
type ConfirmationRecordRepositoryFacade interface {
	SaveConfirmationRecord(ctx context.Context, record domain.ConfirmationRecord) error

	// InsertConfirmationRecordInTx writes the record as part of an existing
	// transaction, so the audit entry commits or aborts together with the
	// confirmation batch that produced it.
	InsertConfirmationRecordInTx(ctx context.Context, tx pgx.Tx, record domain.ConfirmationRecord) error

	// ListConfirmationRecords returns records sorted by confirmedAt
	// descending, optionally filtered to one safe.
	ListConfirmationRecords(ctx context.Context, safeID *string) ([]domain.ConfirmationRecord, error)

	// DeleteConfirmationRecords purges records, optionally scoped to one
	// safe, and returns the number removed.
	DeleteConfirmationRecords(ctx context.Context, safeID *string) (int64, error)
}

// ResetHistoryRepositoryFacade defines persistence for the append-only
// safe reset/transfer ledger.
type ResetHistoryRepositoryFacade interface {
	SaveResetHistory(ctx context.Context, history domain.ResetHistory) error
	InsertResetHistoryInTx(ctx context.Context, tx pgx.Tx, history domain.ResetHistory) error

	// ListResetHistoryBySafeID returns records sorted by createdAt descending.
	ListResetHistoryBySafeID(ctx context.Context, safeID string) ([]domain.ResetHistory, error)
}
