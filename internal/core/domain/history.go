package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ConfirmationRecord is the immutable audit entry written with every
// confirmation batch. Balances and voucher details are denormalized
// snapshots as observed at confirmation time, not live references.
type ConfirmationRecord struct {
	RecordID         string                   `json:"recordID"`
	SafeID           string                   `json:"safeID"`
	SafeName         string                   `json:"safeName"`
	UnconfirmedUSD   decimal.Decimal          `json:"unconfirmedUSD"` // Observed before the batch
	UnconfirmedIQD   decimal.Decimal          `json:"unconfirmedIQD"` // Observed before the batch
	VoucherCount     int                      `json:"voucherCount"`
	VoucherIDs       []string                 `json:"voucherIDs"`
	Details          []ConfirmedVoucherDetail `json:"details,omitempty"`
	ConfirmedBy      string                   `json:"confirmedBy"`
	ConfirmedByEmail string                   `json:"confirmedByEmail"`
	ConfirmedAt      time.Time                `json:"confirmedAt"`
}

// ConfirmedVoucherDetail is a per-voucher snapshot kept for human review
// after the source vouchers may have changed.
type ConfirmedVoucherDetail struct {
	VoucherID string          `json:"voucherID"`
	Company   string          `json:"company"`
	Section   string          `json:"section"`
	Amount    decimal.Decimal `json:"amount"`
	Currency  Currency        `json:"currency"`
	Type      VoucherType     `json:"type"`
}

// ResetType names which currency balances a reset superseded.
type ResetType string

const (
	ResetUSD  ResetType = "usd"
	ResetIQD  ResetType = "iqd"
	ResetBoth ResetType = "both"
)

// ResetHistory is the immutable record of a safe balance zeroing or
// transfer. Previous balances are nil for currencies the reset did not touch.
type ResetHistory struct {
	ResetID            string           `json:"resetID"`
	SafeID             string           `json:"safeID"`
	SafeName           string           `json:"safeName"`
	ResetType          ResetType        `json:"resetType"`
	PreviousBalanceUSD *decimal.Decimal `json:"previousBalanceUSD,omitempty"`
	PreviousBalanceIQD *decimal.Decimal `json:"previousBalanceIQD,omitempty"`
	TargetSafeID       *string          `json:"targetSafeID,omitempty"` // Set when the reset is a transfer-to-safe
	TargetSafeName     *string          `json:"targetSafeName,omitempty"`
	ResetBy            string           `json:"resetBy"`
	CreatedAt          time.Time        `json:"createdAt"`
}
