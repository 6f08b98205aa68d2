package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/alnoor-soft/safebox_backend/internal/apperrors"
	"github.com/alnoor-soft/safebox_backend/internal/core/domain"
	portsrepo "github.com/alnoor-soft/safebox_backend/internal/core/ports/repositories"
	portssvc "github.com/alnoor-soft/safebox_backend/internal/core/ports/services"
	"github.com/alnoor-soft/safebox_backend/internal/dto"
	"github.com/alnoor-soft/safebox_backend/internal/middleware"
	"github.com/alnoor-soft/safebox_backend/internal/utils/accounting"
)

var (
	// ErrNegativeAmount is returned when a voucher is created with a
	// negative amount.
	ErrNegativeAmount = errors.New("voucher amount must be non-negative")
	// ErrUnknownVoucherType is returned for an unrecognized voucher type.
	ErrUnknownVoucherType = errors.New("unknown voucher type")
	// ErrUnknownCurrency is returned for an unrecognized currency.
	ErrUnknownCurrency = errors.New("unknown currency")
)

// voucherService provides voucher creation, import, listing and soft deletion.
type voucherService struct {
	safeRepo    portsrepo.SafeRepositoryFacade
	voucherRepo portsrepo.VoucherRepositoryFacade
}

// NewVoucherService creates a new VoucherService.
func NewVoucherService(safeRepo portsrepo.SafeRepositoryFacade, voucherRepo portsrepo.VoucherRepositoryFacade) portssvc.VoucherSvcFacade {
	return &voucherService{
		safeRepo:    safeRepo,
		voucherRepo: voucherRepo,
	}
}

var _ portssvc.VoucherSvcFacade = (*voucherService)(nil)

// CreateVoucher creates a new unconfirmed voucher on an existing safe.
func (s *voucherService) CreateVoucher(ctx context.Context, req dto.CreateVoucherRequest, creatorID string) (*domain.Voucher, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Amount.IsNegative() {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrNegativeAmount)
	}
	if _, err := s.safeRepo.FindSafeByID(ctx, req.SafeID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	voucher := domain.Voucher{
		VoucherID:  uuid.NewString(),
		SafeID:     req.SafeID,
		Type:       req.Type,
		Currency:   req.Currency,
		Amount:     req.Amount,
		IsTransfer: req.IsTransfer,
		Company:    req.Company,
		Section:    req.Section,
		Notes:      req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorID,
		},
	}

	if err := s.voucherRepo.SaveVoucher(ctx, voucher); err != nil {
		logger.Error("Failed to save voucher", slog.String("safe_id", req.SafeID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save voucher: %w", err)
	}

	logger.Info("Voucher created",
		slog.String("voucher_id", voucher.VoucherID),
		slog.String("safe_id", voucher.SafeID),
		slog.String("type", string(voucher.Type)),
	)
	return &voucher, nil
}

// ImportVouchers ingests spreadsheet-shaped rows. Amounts are parsed
// defensively (missing or malformed values become zero); types, currencies
// and safe references must still be valid for the import to proceed.
func (s *voucherService) ImportVouchers(ctx context.Context, req dto.ImportVouchersRequest, creatorID string) ([]domain.Voucher, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	vouchers := make([]domain.Voucher, 0, len(req.Vouchers))
	seenSafes := make(map[string]struct{})

	for i, row := range req.Vouchers {
		vType, err := parseVoucherType(row.Type)
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %s", apperrors.ErrValidation, i, err)
		}
		currency, err := parseCurrency(row.Currency)
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %s", apperrors.ErrValidation, i, err)
		}
		if _, seen := seenSafes[row.SafeID]; !seen {
			if _, err := s.safeRepo.FindSafeByID(ctx, row.SafeID); err != nil {
				if errors.Is(err, apperrors.ErrNotFound) {
					return nil, fmt.Errorf("%w: row %d references unknown safe %s", apperrors.ErrValidation, i, row.SafeID)
				}
				return nil, err
			}
			seenSafes[row.SafeID] = struct{}{}
		}

		vouchers = append(vouchers, domain.Voucher{
			VoucherID:  uuid.NewString(),
			SafeID:     row.SafeID,
			Type:       vType,
			Currency:   currency,
			Amount:     accounting.ParseAmount(row.Amount),
			IsTransfer: row.IsTransfer,
			Company:    row.Company,
			Section:    row.Section,
			Notes:      row.Notes,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     creatorID,
				LastUpdatedAt: now,
				LastUpdatedBy: creatorID,
			},
		})
	}

	if err := s.voucherRepo.SaveVouchers(ctx, vouchers); err != nil {
		logger.Error("Failed to save imported vouchers", slog.Int("count", len(vouchers)), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save imported vouchers: %w", err)
	}

	logger.Info("Vouchers imported", slog.Int("count", len(vouchers)))
	return vouchers, nil
}

// GetVoucherByID retrieves a voucher by its ID.
func (s *voucherService) GetVoucherByID(ctx context.Context, voucherID string) (*domain.Voucher, error) {
	return s.voucherRepo.FindVoucherByID(ctx, voucherID)
}

// ListVouchers lists vouchers, optionally scoped to one safe and optionally
// unconfirmed-only (the set the confirmation screen works from).
func (s *voucherService) ListVouchers(ctx context.Context, safeID *string, unconfirmedOnly bool) ([]domain.Voucher, error) {
	if safeID != nil {
		return s.voucherRepo.FindVouchersBySafeID(ctx, *safeID, unconfirmedOnly)
	}
	return s.voucherRepo.ListVouchers(ctx, unconfirmedOnly)
}

// DeleteVoucher moves a voucher into the deleted_vouchers archive.
// Confirmed vouchers stay where they are; only unconfirmed vouchers can be
// removed from the working set.
func (s *voucherService) DeleteVoucher(ctx context.Context, voucherID string, deletedBy string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	voucher, err := s.voucherRepo.FindVoucherByID(ctx, voucherID)
	if err != nil {
		return err
	}
	if voucher.Confirmation {
		return fmt.Errorf("%w: confirmed vouchers cannot be deleted", apperrors.ErrValidation)
	}

	if err := s.voucherRepo.SoftDeleteVoucher(ctx, voucherID, deletedBy, time.Now().UTC()); err != nil {
		logger.Error("Failed to soft-delete voucher", slog.String("voucher_id", voucherID), slog.String("error", err.Error()))
		return fmt.Errorf("failed to delete voucher: %w", err)
	}

	logger.Info("Voucher soft-deleted", slog.String("voucher_id", voucherID))
	return nil
}

func parseVoucherType(raw string) (domain.VoucherType, error) {
	switch domain.VoucherType(strings.ToUpper(strings.TrimSpace(raw))) {
	case domain.Receipt:
		return domain.Receipt, nil
	case domain.Payment:
		return domain.Payment, nil
	case domain.Transfer:
		return domain.Transfer, nil
	default:
		return "", fmt.Errorf("%s %q", ErrUnknownVoucherType, raw)
	}
}

func parseCurrency(raw string) (domain.Currency, error) {
	switch domain.Currency(strings.ToUpper(strings.TrimSpace(raw))) {
	case domain.USD:
		return domain.USD, nil
	case domain.IQD:
		return domain.IQD, nil
	default:
		return "", fmt.Errorf("%s %q", ErrUnknownCurrency, raw)
	}
}
