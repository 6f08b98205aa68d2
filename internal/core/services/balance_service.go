package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/alnoor-soft/safebox_backend/internal/core/domain"
	portsrepo "github.com/alnoor-soft/safebox_backend/internal/core/ports/repositories"
	portssvc "github.com/alnoor-soft/safebox_backend/internal/core/ports/services"
	"github.com/alnoor-soft/safebox_backend/internal/middleware"
	"github.com/alnoor-soft/safebox_backend/internal/utils/accounting"
)

// balanceService derives confirmed/unconfirmed totals from vouchers.
type balanceService struct {
	safeRepo    portsrepo.SafeRepositoryFacade
	voucherRepo portsrepo.VoucherRepositoryFacade
}

// NewBalanceService creates a new BalanceService.
func NewBalanceService(safeRepo portsrepo.SafeRepositoryFacade, voucherRepo portsrepo.VoucherRepositoryFacade) portssvc.BalanceSvcFacade {
	return &balanceService{
		safeRepo:    safeRepo,
		voucherRepo: voucherRepo,
	}
}

var _ portssvc.BalanceSvcFacade = (*balanceService)(nil)

// AggregateAll folds every voucher into per-safe totals. Safes with no
// matching vouchers appear with zero totals.
func (s *balanceService) AggregateAll(ctx context.Context) (map[string]domain.SafeTotals, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	safes, err := s.safeRepo.ListSafes(ctx, false)
	if err != nil {
		logger.Error("Failed to list safes for aggregation", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list safes: %w", err)
	}
	safeIDs := make([]string, len(safes))
	for i, safe := range safes {
		safeIDs[i] = safe.SafeID
	}

	vouchers, err := s.voucherRepo.ListVouchers(ctx, false)
	if err != nil {
		logger.Error("Failed to list vouchers for aggregation", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list vouchers: %w", err)
	}

	totals := accounting.AggregateBalances(vouchers, safeIDs)
	logger.Debug("Aggregated balances", slog.Int("safe_count", len(totals)), slog.Int("voucher_count", len(vouchers)))
	return totals, nil
}

// AggregateSafe folds the vouchers of one safe. Read-only.
func (s *balanceService) AggregateSafe(ctx context.Context, safeID string) (*domain.SafeTotals, error) {
	if _, err := s.safeRepo.FindSafeByID(ctx, safeID); err != nil {
		return nil, err
	}

	vouchers, err := s.voucherRepo.FindVouchersBySafeID(ctx, safeID, false)
	if err != nil {
		return nil, fmt.Errorf("failed to list vouchers for safe %s: %w", safeID, err)
	}

	totals := domain.SafeTotals{}
	for _, v := range vouchers {
		totals = accounting.Accumulate(totals, v)
	}
	return &totals, nil
}

// RecomputeAndPersist re-derives the safe's confirmed balances from its full
// voucher set and writes them back to the safe record, bumping the audit
// fields. Returns the totals that were persisted.
func (s *balanceService) RecomputeAndPersist(ctx context.Context, safeID string, updatedBy string) (*domain.SafeTotals, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	totals, err := s.AggregateSafe(ctx, safeID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := s.safeRepo.SetSafeBalances(ctx, safeID, totals.ConfirmedUSD, totals.ConfirmedIQD, updatedBy, now); err != nil {
		logger.Error("Failed to persist recomputed balances", slog.String("safe_id", safeID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to persist recomputed balances for safe %s: %w", safeID, err)
	}

	logger.Info("Recomputed and persisted safe balances",
		slog.String("safe_id", safeID),
		slog.String("balance_usd", totals.ConfirmedUSD.String()),
		slog.String("balance_iqd", totals.ConfirmedIQD.String()),
	)
	return totals, nil
}
