package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/alnoor-soft/safebox_backend/internal/apperrors"
	"github.com/alnoor-soft/safebox_backend/internal/core/domain"
	portsrepo "github.com/alnoor-soft/safebox_backend/internal/core/ports/repositories"
	portssvc "github.com/alnoor-soft/safebox_backend/internal/core/ports/services"
	"github.com/alnoor-soft/safebox_backend/internal/middleware"
	"github.com/alnoor-soft/safebox_backend/internal/utils/accounting"
)

var (
	// ErrEmptyBatch is returned when a confirmation batch contains no voucher IDs.
	ErrEmptyBatch = errors.New("confirmation batch must contain at least one voucher")
	// ErrAlreadyConfirmed is returned when a single-voucher confirm targets a
	// voucher that is already confirmed.
	ErrAlreadyConfirmed = errors.New("voucher is already confirmed")
	// ErrMissingOperator is returned when the operator identity is incomplete.
	ErrMissingOperator = errors.New("operator identity is required")
)

// confirmationService transitions vouchers from unconfirmed to confirmed and
// applies their net effect to the owning safe's persisted balances.
type confirmationService struct {
	safeRepo    portsrepo.SafeRepositoryFacade
	voucherRepo portsrepo.VoucherRepositoryFacade
}

// NewConfirmationService creates a new ConfirmationService.
func NewConfirmationService(safeRepo portsrepo.SafeRepositoryFacade, voucherRepo portsrepo.VoucherRepositoryFacade) portssvc.ConfirmationSvcFacade {
	return &confirmationService{
		safeRepo:    safeRepo,
		voucherRepo: voucherRepo,
	}
}

var _ portssvc.ConfirmationSvcFacade = (*confirmationService)(nil)

// ConfirmVouchers confirms a batch of vouchers on one safe. The flag flips,
// the safe balance delta and the audit record commit in a single repository
// transaction; a missing safe aborts the whole batch. Vouchers in the batch
// that are missing or already confirmed are skipped without failing the
// batch, tolerating concurrent deletion.
func (s *confirmationService) ConfirmVouchers(ctx context.Context, safeID string, voucherIDs []string, operator domain.OperatorIdentity) (*domain.ConfirmationResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if len(voucherIDs) == 0 {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrEmptyBatch)
	}
	if operator.ID == "" {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrMissingOperator)
	}

	safe, err := s.safeRepo.FindSafeByID(ctx, safeID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find safe for confirmation", slog.String("safe_id", safeID), slog.String("error", err.Error()))
		}
		return nil, err
	}

	// Snapshot the unconfirmed totals as observed before this batch; they are
	// denormalized into the audit record.
	unconfirmed, err := s.voucherRepo.FindVouchersBySafeID(ctx, safeID, true)
	if err != nil {
		logger.Error("Failed to read unconfirmed vouchers for snapshot", slog.String("safe_id", safeID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to read unconfirmed vouchers for safe %s: %w", safeID, err)
	}
	observed := domain.SafeTotals{}
	for _, v := range unconfirmed {
		observed = accounting.Accumulate(observed, v)
	}

	now := time.Now().UTC()
	record := domain.ConfirmationRecord{
		RecordID:         uuid.NewString(),
		SafeID:           safe.SafeID,
		SafeName:         safe.Name,
		UnconfirmedUSD:   observed.UnconfirmedUSD,
		UnconfirmedIQD:   observed.UnconfirmedIQD,
		ConfirmedBy:      operator.Name,
		ConfirmedByEmail: operator.Email,
		ConfirmedAt:      now,
		// VoucherCount, VoucherIDs and Details are completed by the
		// repository from the vouchers that actually get confirmed.
	}
	batch := domain.ConfirmationBatch{
		SafeID:      safe.SafeID,
		VoucherIDs:  voucherIDs,
		Operator:    operator,
		ConfirmedAt: now,
	}

	result, err := s.voucherRepo.ConfirmVouchers(ctx, batch, record)
	if err != nil {
		logger.Error("Confirmation batch failed", slog.String("safe_id", safeID), slog.Int("batch_size", len(voucherIDs)), slog.String("error", err.Error()))
		return nil, err
	}

	if len(result.SkippedIDs) > 0 {
		logger.Warn("Some vouchers in the batch were skipped",
			slog.String("safe_id", safeID),
			slog.Int("skipped", len(result.SkippedIDs)),
		)
	}
	logger.Info("Confirmation batch applied",
		slog.String("safe_id", safeID),
		slog.Int("confirmed", result.ConfirmedCount),
		slog.String("total_usd", result.TotalUSD.String()),
		slog.String("total_iqd", result.TotalIQD.String()),
		slog.String("record_id", result.RecordID),
	)
	return result, nil
}

// ConfirmVoucher confirms a single voucher, deriving the owning safe from
// the voucher itself. Unlike the batch form, a missing voucher is an error,
// and an already-confirmed voucher is rejected.
func (s *confirmationService) ConfirmVoucher(ctx context.Context, voucherID string, operator domain.OperatorIdentity) (*domain.ConfirmationResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	voucher, err := s.voucherRepo.FindVoucherByID(ctx, voucherID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find voucher for confirmation", slog.String("voucher_id", voucherID), slog.String("error", err.Error()))
		}
		return nil, err
	}
	if voucher.Confirmation {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrAlreadyConfirmed)
	}

	return s.ConfirmVouchers(ctx, voucher.SafeID, []string{voucherID}, operator)
}
