package domain

import (
	"github.com/shopspring/decimal"
)

// Safe represents a named cash-box holding USD and IQD balances.
// The persisted balances are a cache of the confirmed-voucher fold; they are
// always re-derivable from the vouchers referencing this safe.
type Safe struct {
	SafeID            string          `json:"safeID"` // Primary Key (UUID)
	Name              string          `json:"name"`
	BalanceUSD        decimal.Decimal `json:"balanceUSD"`
	BalanceIQD        decimal.Decimal `json:"balanceIQD"`
	IsMain            bool            `json:"isMain"` // Main safes are eligible transfer targets
	CustodianName     string          `json:"custodianName"`
	CustodianImageURL string          `json:"custodianImageURL"`
	AuditFields
}

// SafeTotals holds the four derived balance totals for one safe.
type SafeTotals struct {
	ConfirmedUSD   decimal.Decimal `json:"confirmedUSD"`
	ConfirmedIQD   decimal.Decimal `json:"confirmedIQD"`
	UnconfirmedUSD decimal.Decimal `json:"unconfirmedUSD"`
	UnconfirmedIQD decimal.Decimal `json:"unconfirmedIQD"`
}
