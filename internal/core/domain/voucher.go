package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// VoucherType indicates the direction of a voucher's effect on its safe.
type VoucherType string

const (
	Receipt  VoucherType = "RECEIPT"
	Payment  VoucherType = "PAYMENT"
	Transfer VoucherType = "TRANSFER"
)

// Currency is one of the two currencies a safe holds.
type Currency string

const (
	USD Currency = "USD"
	IQD Currency = "IQD"
)

// Voucher represents a single financial transaction record targeting one safe.
type Voucher struct {
	VoucherID       string          `json:"voucherID"`    // Primary Key (UUID)
	SafeID          string          `json:"safeID"`       // FK -> Safe.safeID (Not Null)
	Type            VoucherType     `json:"type"`         // RECEIPT, PAYMENT or TRANSFER
	Currency        Currency        `json:"currency"`     // USD or IQD
	Amount          decimal.Decimal `json:"amount"`       // Non-negative; exact decimal
	Confirmation    bool            `json:"confirmation"` // False until the confirmation workflow flips it
	IsTransfer      bool            `json:"isTransfer"`   // Transfer legs never move the balance at confirmation
	Company         string          `json:"company"`      // Nullable label, kept for audit snapshots
	Section         string          `json:"section"`      // Nullable label, kept for audit snapshots
	Notes           string          `json:"notes"`
	ConfirmedAt     *time.Time      `json:"confirmedAt"` // Set exactly once, on confirmation
	ConfirmedBy     string          `json:"confirmedBy"`
	ConfirmedByName string          `json:"confirmedByName"`
	AuditFields
}

// ConfirmationBatch identifies a set of unconfirmed vouchers on one safe to
// be confirmed as a single atomic operation.
type ConfirmationBatch struct {
	SafeID      string
	VoucherIDs  []string
	Operator    OperatorIdentity
	ConfirmedAt time.Time
}

// ConfirmationResult summarizes what a confirmation batch actually applied.
type ConfirmationResult struct {
	SafeID         string          `json:"safeID"`
	ConfirmedCount int             `json:"confirmedCount"`
	SkippedIDs     []string        `json:"skippedIDs,omitempty"` // Vouchers missing or already confirmed
	TotalUSD       decimal.Decimal `json:"totalUSD"`             // Net balance effect applied, USD
	TotalIQD       decimal.Decimal `json:"totalIQD"`             // Net balance effect applied, IQD
	RecordID       string          `json:"recordID"`             // ConfirmationRecord written with this batch
}
