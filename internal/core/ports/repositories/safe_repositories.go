package repositories

import (
	"context"
	"time"

	"github.com/alnoor-soft/safebox_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// SafeRepositoryFacade defines persistence operations for safes.
type SafeRepositoryFacade interface {
	SaveSafe(ctx context.Context, safe domain.Safe) error
	FindSafeByID(ctx context.Context, safeID string) (*domain.Safe, error)
	ListSafes(ctx context.Context, mainOnly bool) ([]domain.Safe, error)
	UpdateSafe(ctx context.Context, safe domain.Safe) error

	// SetSafeBalances overwrites both persisted balances with recomputed
	// values and bumps the audit fields.
	SetSafeBalances(ctx context.Context, safeID string, balanceUSD, balanceIQD decimal.Decimal, updatedBy string, now time.Time) error

	// FindSafeByIDForUpdate retrieves a safe and locks its row for the
	// duration of the transaction. Must be called within a transaction.
	FindSafeByIDForUpdate(ctx context.Context, tx pgx.Tx, safeID string) (*domain.Safe, error)

	// ApplySafeBalanceDeltaInTx increments the safe's balances by the given
	// net deltas within an existing transaction.
	ApplySafeBalanceDeltaInTx(ctx context.Context, tx pgx.Tx, safeID string, deltaUSD, deltaIQD decimal.Decimal, updatedBy string, now time.Time) error

	// ResetSafe zeroes (or transfers) the safe's balances per resetType and
	// writes the ResetHistory record in one transaction. When targetSafeID
	// is non-nil the superseded balances are credited to that safe.
	ResetSafe(ctx context.Context, safeID string, resetType domain.ResetType, targetSafeID *string, operator domain.OperatorIdentity, now time.Time) (*domain.ResetHistory, error)
}
