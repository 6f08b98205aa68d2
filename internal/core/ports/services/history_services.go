package services

import (
	"context"

	"github.com/alnoor-soft/safebox_backend/internal/core/domain"
)

// HistorySvcFacade exposes the append-only audit surfaces: the confirmation
// record trail and the reset/transfer ledger.
type HistorySvcFacade interface {
	// RecordConfirmationBatch appends a standalone confirmation record and
	// returns its identifier. The confirmation workflow itself writes its
	// record inside the confirmation transaction; this entry point exists
	// for out-of-band recording.
	RecordConfirmationBatch(ctx context.Context, record domain.ConfirmationRecord) (string, error)

	ListConfirmationHistory(ctx context.Context, safeID *string) ([]domain.ConfirmationRecord, error)

	// PurgeConfirmationHistory is an administrative purge, optionally
	// scoped to one safe. Returns the number of records removed.
	PurgeConfirmationHistory(ctx context.Context, safeID *string) (int64, error)

	// RecordReset appends a reset ledger entry without touching balances.
	RecordReset(ctx context.Context, history domain.ResetHistory) (string, error)

	ListResetHistory(ctx context.Context, safeID string) ([]domain.ResetHistory, error)
}
