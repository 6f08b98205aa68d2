package services

import (
	"context"

	"github.com/alnoor-soft/safebox_backend/internal/core/domain"
)

// ConfirmationSvcFacade exposes the voucher confirmation workflow.
type ConfirmationSvcFacade interface {
	// ConfirmVouchers confirms a batch of vouchers on one safe and applies
	// their net effect to the safe's balances atomically. Missing or
	// already-confirmed vouchers in the batch are skipped.
	ConfirmVouchers(ctx context.Context, safeID string, voucherIDs []string, operator domain.OperatorIdentity) (*domain.ConfirmationResult, error)

	// ConfirmVoucher confirms a single voucher, deriving the owning safe
	// from the voucher itself. A missing voucher is an error here.
	ConfirmVoucher(ctx context.Context, voucherID string, operator domain.OperatorIdentity) (*domain.ConfirmationResult, error)
}
