package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/alnoor-soft/safebox_backend/internal/apperrors"
	"github.com/alnoor-soft/safebox_backend/internal/core/domain"
	portsrepo "github.com/alnoor-soft/safebox_backend/internal/core/ports/repositories"
	portssvc "github.com/alnoor-soft/safebox_backend/internal/core/ports/services"
	"github.com/alnoor-soft/safebox_backend/internal/middleware"
)

// historyService provides the append-only audit surfaces.
type historyService struct {
	recordRepo portsrepo.ConfirmationRecordRepositoryFacade
	resetRepo  portsrepo.ResetHistoryRepositoryFacade
}

// NewHistoryService creates a new HistoryService.
func NewHistoryService(recordRepo portsrepo.ConfirmationRecordRepositoryFacade, resetRepo portsrepo.ResetHistoryRepositoryFacade) portssvc.HistorySvcFacade {
	return &historyService{
		recordRepo: recordRepo,
		resetRepo:  resetRepo,
	}
}

var _ portssvc.HistorySvcFacade = (*historyService)(nil)

// RecordConfirmationBatch appends a standalone confirmation record. Pure
// append; no voucher or safe is mutated.
func (s *historyService) RecordConfirmationBatch(ctx context.Context, record domain.ConfirmationRecord) (string, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if record.SafeID == "" {
		return "", fmt.Errorf("%w: safe reference is required", apperrors.ErrValidation)
	}
	if len(record.VoucherIDs) == 0 {
		return "", fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrEmptyBatch)
	}

	if record.RecordID == "" {
		record.RecordID = uuid.NewString()
	}
	if record.ConfirmedAt.IsZero() {
		record.ConfirmedAt = time.Now().UTC()
	}
	record.VoucherCount = len(record.VoucherIDs)

	if err := s.recordRepo.SaveConfirmationRecord(ctx, record); err != nil {
		logger.Error("Failed to save confirmation record", slog.String("safe_id", record.SafeID), slog.String("error", err.Error()))
		return "", fmt.Errorf("failed to save confirmation record: %w", err)
	}

	logger.Info("Confirmation record appended", slog.String("record_id", record.RecordID), slog.String("safe_id", record.SafeID))
	return record.RecordID, nil
}

// ListConfirmationHistory lists audit records, newest first, optionally
// filtered to one safe.
func (s *historyService) ListConfirmationHistory(ctx context.Context, safeID *string) ([]domain.ConfirmationRecord, error) {
	return s.recordRepo.ListConfirmationRecords(ctx, safeID)
}

// PurgeConfirmationHistory removes audit records, optionally scoped to one
// safe. Administrative only.
func (s *historyService) PurgeConfirmationHistory(ctx context.Context, safeID *string) (int64, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	deleted, err := s.recordRepo.DeleteConfirmationRecords(ctx, safeID)
	if err != nil {
		logger.Error("Failed to purge confirmation records", slog.String("error", err.Error()))
		return 0, fmt.Errorf("failed to purge confirmation records: %w", err)
	}

	logger.Info("Confirmation records purged", slog.Int64("deleted", deleted))
	return deleted, nil
}

// RecordReset appends a reset ledger entry without touching balances; the
// combined reset-and-record operation lives on the safe service.
func (s *historyService) RecordReset(ctx context.Context, history domain.ResetHistory) (string, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if history.SafeID == "" {
		return "", fmt.Errorf("%w: safe reference is required", apperrors.ErrValidation)
	}
	switch history.ResetType {
	case domain.ResetUSD, domain.ResetIQD, domain.ResetBoth:
	default:
		return "", fmt.Errorf("%w: unknown reset type %q", apperrors.ErrValidation, history.ResetType)
	}

	if history.ResetID == "" {
		history.ResetID = uuid.NewString()
	}
	if history.CreatedAt.IsZero() {
		history.CreatedAt = time.Now().UTC()
	}

	if err := s.resetRepo.SaveResetHistory(ctx, history); err != nil {
		logger.Error("Failed to save reset history", slog.String("safe_id", history.SafeID), slog.String("error", err.Error()))
		return "", fmt.Errorf("failed to save reset history: %w", err)
	}

	logger.Info("Reset history appended", slog.String("reset_id", history.ResetID), slog.String("safe_id", history.SafeID))
	return history.ResetID, nil
}

// ListResetHistory lists reset ledger entries for one safe, newest first.
func (s *historyService) ListResetHistory(ctx context.Context, safeID string) ([]domain.ResetHistory, error) {
	return s.resetRepo.ListResetHistoryBySafeID(ctx, safeID)
}
