package dto

import (
	"time"

	"github.com/alnoor-soft/safebox_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateVoucherRequest defines the data needed to create a new voucher.
type CreateVoucherRequest struct {
	SafeID     string             `json:"safeID" binding:"required"`
	Type       domain.VoucherType `json:"type" binding:"required,oneof=RECEIPT PAYMENT TRANSFER"`
	Currency   domain.Currency    `json:"currency" binding:"required,oneof=USD IQD"`
	Amount     decimal.Decimal    `json:"amount" binding:"required"`
	IsTransfer bool               `json:"isTransfer"`
	Company    string             `json:"company"`
	Section    string             `json:"section"`
	Notes      string             `json:"notes"`
}

// ImportVoucherRow is one row of a bulk voucher import. Amounts arrive as
// strings from spreadsheet-shaped sources and are parsed defensively.
type ImportVoucherRow struct {
	SafeID     string `json:"safeID" binding:"required"`
	Type       string `json:"type" binding:"required"`
	Currency   string `json:"currency" binding:"required"`
	Amount     string `json:"amount"` // May be empty or malformed; treated as 0
	IsTransfer bool   `json:"isTransfer"`
	Company    string `json:"company"`
	Section    string `json:"section"`
	Notes      string `json:"notes"`
}

// ImportVouchersRequest defines a bulk voucher import.
type ImportVouchersRequest struct {
	Vouchers []ImportVoucherRow `json:"vouchers" binding:"required,min=1,dive"`
}

// ConfirmVouchersRequest identifies the batch of vouchers to confirm on a safe.
type ConfirmVouchersRequest struct {
	VoucherIDs []string `json:"voucherIDs" binding:"required,min=1"`
}

// VoucherResponse defines the data returned for a voucher.
type VoucherResponse struct {
	VoucherID       string             `json:"voucherID"`
	SafeID          string             `json:"safeID"`
	Type            domain.VoucherType `json:"type"`
	Currency        domain.Currency    `json:"currency"`
	Amount          decimal.Decimal    `json:"amount"`
	Confirmation    bool               `json:"confirmation"`
	IsTransfer      bool               `json:"isTransfer"`
	Company         string             `json:"company"`
	Section         string             `json:"section"`
	Notes           string             `json:"notes"`
	ConfirmedAt     *time.Time         `json:"confirmedAt,omitempty"`
	ConfirmedBy     string             `json:"confirmedBy,omitempty"`
	ConfirmedByName string             `json:"confirmedByName,omitempty"`
	CreatedAt       time.Time          `json:"createdAt"`
	CreatedBy       string             `json:"createdBy"`
}

// ConfirmationResultResponse summarizes an applied confirmation batch.
type ConfirmationResultResponse struct {
	Success        bool            `json:"success"`
	SafeID         string          `json:"safeID"`
	ConfirmedCount int             `json:"confirmedCount"`
	SkippedIDs     []string        `json:"skippedIDs,omitempty"`
	TotalUSD       decimal.Decimal `json:"totalUSD"`
	TotalIQD       decimal.Decimal `json:"totalIQD"`
	RecordID       string          `json:"recordID"`
}

// ToVoucherResponse converts a domain.Voucher to VoucherResponse DTO.
func ToVoucherResponse(v *domain.Voucher) VoucherResponse {
	return VoucherResponse{
		VoucherID:       v.VoucherID,
		SafeID:          v.SafeID,
		Type:            v.Type,
		Currency:        v.Currency,
		Amount:          v.Amount,
		Confirmation:    v.Confirmation,
		IsTransfer:      v.IsTransfer,
		Company:         v.Company,
		Section:         v.Section,
		Notes:           v.Notes,
		ConfirmedAt:     v.ConfirmedAt,
		ConfirmedBy:     v.ConfirmedBy,
		ConfirmedByName: v.ConfirmedByName,
		CreatedAt:       v.CreatedAt,
		CreatedBy:       v.CreatedBy,
	}
}

// ToVoucherResponses converts a slice of domain vouchers to response DTOs.
func ToVoucherResponses(vouchers []domain.Voucher) []VoucherResponse {
	out := make([]VoucherResponse, len(vouchers))
	for i := range vouchers {
		out[i] = ToVoucherResponse(&vouchers[i])
	}
	return out
}

// ToConfirmationResultResponse converts a domain result to its response DTO.
func ToConfirmationResultResponse(r *domain.ConfirmationResult) ConfirmationResultResponse {
	return ConfirmationResultResponse{
		Success:        true,
		SafeID:         r.SafeID,
		ConfirmedCount: r.ConfirmedCount,
		SkippedIDs:     r.SkippedIDs,
		TotalUSD:       r.TotalUSD,
		TotalIQD:       r.TotalIQD,
		RecordID:       r.RecordID,
	}
}
