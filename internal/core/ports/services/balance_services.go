package services

import (
	"context"

	"github.com/alnoor-soft/safebox_backend/internal/core/domain"
)

// BalanceSvcFacade exposes balance aggregation.
// Aggregation entry points are pure queries; RecomputeAndPersist is the only
// one that writes.
type BalanceSvcFacade interface {
	// AggregateAll folds every voucher into per-safe totals. Every known
	// safe is present in the result, with zero totals when it has no
	// matching vouchers.
	AggregateAll(ctx context.Context) (map[string]domain.SafeTotals, error)

	// AggregateSafe folds the vouchers of one safe.
	AggregateSafe(ctx context.Context, safeID string) (*domain.SafeTotals, error)

	// RecomputeAndPersist re-derives the safe's confirmed balances from its
	// full voucher set and writes them back to the safe record.
	RecomputeAndPersist(ctx context.Context, safeID string, updatedBy string) (*domain.SafeTotals, error)
}
