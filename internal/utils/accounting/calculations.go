package accounting

import (
	"strings"

	"github.com/alnoor-soft/safebox_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SignedAmount applies the correct sign to a voucher amount.
// RECEIPT -> positive, PAYMENT -> negative. TRANSFER legs carry the receipt
// sign: when a transfer leg is allowed to move a balance at all (at transfer
// creation, outside this core) it credits the target safe.
// This is used in both services and repositories to keep the sign convention
// in one place.
func SignedAmount(v domain.Voucher) decimal.Decimal {
	if v.Type == domain.Payment {
		return v.Amount.Neg()
	}
	return v.Amount
}

// MovesBalanceOnConfirmation reports whether confirming this voucher changes
// the owning safe's persisted balance. Transfer-leg vouchers had their
// balance effect applied when the transfer was created; confirming them only
// acknowledges them. Every call site that folds vouchers into a balance must
// go through this predicate.
func MovesBalanceOnConfirmation(v domain.Voucher) bool {
	return !v.IsTransfer
}

// ParseAmount defensively parses a stored amount that may arrive as a
// string. Missing, un-parseable or negative values become zero; it never
// returns an error.
func ParseAmount(raw string) decimal.Decimal {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(raw)
	if err != nil || d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// Accumulate routes one voucher into the matching bucket of totals.
// Confirmed vouchers land in the confirmed totals (transfer legs excluded);
// unconfirmed vouchers land in the unconfirmed totals only when they are
// receipts. Unconfirmed payments are deliberately excluded: money not yet
// confirmed as paid is not treated as a pending liability reduction.
func Accumulate(totals domain.SafeTotals, v domain.Voucher) domain.SafeTotals {
	signed := SignedAmount(v)
	if v.Confirmation {
		if !MovesBalanceOnConfirmation(v) {
			return totals
		}
		switch v.Currency {
		case domain.USD:
			totals.ConfirmedUSD = totals.ConfirmedUSD.Add(signed)
		case domain.IQD:
			totals.ConfirmedIQD = totals.ConfirmedIQD.Add(signed)
		}
		return totals
	}
	if v.Type != domain.Receipt {
		return totals
	}
	switch v.Currency {
	case domain.USD:
		totals.UnconfirmedUSD = totals.UnconfirmedUSD.Add(signed)
	case domain.IQD:
		totals.UnconfirmedIQD = totals.UnconfirmedIQD.Add(signed)
	}
	return totals
}

// AggregateBalances folds a set of vouchers into per-safe totals. The fold
// is commutative and associative; input ordering does not matter. Safes
// listed in knownSafeIDs are present in the result even with no matching
// vouchers.
func AggregateBalances(vouchers []domain.Voucher, knownSafeIDs []string) map[string]domain.SafeTotals {
	result := make(map[string]domain.SafeTotals, len(knownSafeIDs))
	for _, id := range knownSafeIDs {
		result[id] = domain.SafeTotals{}
	}
	for _, v := range vouchers {
		result[v.SafeID] = Accumulate(result[v.SafeID], v)
	}
	return result
}

// ResetPlan describes how a safe reset rewrites the source balances and what
// the reset ledger entry must preserve. Previous balances stay nil for
// currencies the reset does not touch; the transfer amounts are what a target
// safe is credited with when the reset is a transfer rather than a zero-out.
type ResetPlan struct {
	PreviousUSD *decimal.Decimal
	PreviousIQD *decimal.Decimal
	NewUSD      decimal.Decimal
	NewIQD      decimal.Decimal
	TransferUSD decimal.Decimal
	TransferIQD decimal.Decimal
}

// PlanReset computes the effect of resetting the given balances per
// resetType. Pure: callers apply the plan under their own row locks.
func PlanReset(balanceUSD, balanceIQD decimal.Decimal, resetType domain.ResetType) ResetPlan {
	plan := ResetPlan{
		NewUSD:      balanceUSD,
		NewIQD:      balanceIQD,
		TransferUSD: decimal.Zero,
		TransferIQD: decimal.Zero,
	}
	if resetType == domain.ResetUSD || resetType == domain.ResetBoth {
		prev := balanceUSD
		plan.PreviousUSD = &prev
		plan.TransferUSD = balanceUSD
		plan.NewUSD = decimal.Zero
	}
	if resetType == domain.ResetIQD || resetType == domain.ResetBoth {
		prev := balanceIQD
		plan.PreviousIQD = &prev
		plan.TransferIQD = balanceIQD
		plan.NewIQD = decimal.Zero
	}
	return plan
}

// NetEffect computes the net USD/IQD balance deltas a batch of vouchers
// applies on confirmation, excluding transfer legs.
func NetEffect(vouchers []domain.Voucher) (netUSD, netIQD decimal.Decimal) {
	for _, v := range vouchers {
		if !MovesBalanceOnConfirmation(v) {
			continue
		}
		signed := SignedAmount(v)
		switch v.Currency {
		case domain.USD:
			netUSD = netUSD.Add(signed)
		case domain.IQD:
			netIQD = netIQD.Add(signed)
		}
	}
	return netUSD, netIQD
}
