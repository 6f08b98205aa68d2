package services

import (
	"context"

	"github.com/alnoor-soft/safebox_backend/internal/core/domain"
	"github.com/alnoor-soft/safebox_backend/internal/dto"
)

// VoucherSvcFacade exposes voucher creation, listing and soft deletion.
type VoucherSvcFacade interface {
	CreateVoucher(ctx context.Context, req dto.CreateVoucherRequest, creatorID string) (*domain.Voucher, error)

	// ImportVouchers ingests spreadsheet-shaped rows with stringly-typed
	// amounts, parsing them defensively.
	ImportVouchers(ctx context.Context, req dto.ImportVouchersRequest, creatorID string) ([]domain.Voucher, error)

	GetVoucherByID(ctx context.Context, voucherID string) (*domain.Voucher, error)
	ListVouchers(ctx context.Context, safeID *string, unconfirmedOnly bool) ([]domain.Voucher, error)
	DeleteVoucher(ctx context.Context, voucherID string, deletedBy string) error
}
