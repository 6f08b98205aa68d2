package repositories

import (
	"context"
	"time"

	"github.com/alnoor-soft/safebox_backend/internal/core/domain"
)

// VoucherRepositoryFacade defines persistence operations for vouchers.
type VoucherRepositoryFacade interface {
	SaveVoucher(ctx context.Context, voucher domain.Voucher) error
	SaveVouchers(ctx context.Context, vouchers []domain.Voucher) error
	FindVoucherByID(ctx context.Context, voucherID string) (*domain.Voucher, error)
	FindVouchersBySafeID(ctx context.Context, safeID string, unconfirmedOnly bool) ([]domain.Voucher, error)
	ListVouchers(ctx context.Context, unconfirmedOnly bool) ([]domain.Voucher, error)

	// SoftDeleteVoucher moves a voucher into the deleted_vouchers archive.
	SoftDeleteVoucher(ctx context.Context, voucherID string, deletedBy string, now time.Time) error

	// ConfirmVouchers flips the batch's vouchers to confirmed, applies the
	// net balance effect to the owning safe and inserts the audit record,
	// all within one transaction. Vouchers in the batch that are missing or
	// already confirmed are skipped; a missing safe aborts the whole batch
	// with ErrNotFound.
	ConfirmVouchers(ctx context.Context, batch domain.ConfirmationBatch, record domain.ConfirmationRecord) (*domain.ConfirmationResult, error)
}
