package dto

import (
	"time"

	"github.com/alnoor-soft/safebox_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ConfirmationRecordResponse defines the data returned for one audit record.
type ConfirmationRecordResponse struct {
	RecordID         string                          `json:"recordID"`
	SafeID           string                          `json:"safeID"`
	SafeName         string                          `json:"safeName"`
	UnconfirmedUSD   decimal.Decimal                 `json:"unconfirmedUSD"`
	UnconfirmedIQD   decimal.Decimal                 `json:"unconfirmedIQD"`
	VoucherCount     int                             `json:"voucherCount"`
	VoucherIDs       []string                        `json:"voucherIDs"`
	Details          []domain.ConfirmedVoucherDetail `json:"details,omitempty"`
	ConfirmedBy      string                          `json:"confirmedBy"`
	ConfirmedByEmail string                          `json:"confirmedByEmail"`
	ConfirmedAt      time.Time                       `json:"confirmedAt"`
}

// ResetHistoryResponse defines the data returned for one reset ledger entry.
type ResetHistoryResponse struct {
	ResetID            string           `json:"resetID"`
	SafeID             string           `json:"safeID"`
	SafeName           string           `json:"safeName"`
	ResetType          domain.ResetType `json:"resetType"`
	PreviousBalanceUSD *decimal.Decimal `json:"previousBalanceUSD,omitempty"`
	PreviousBalanceIQD *decimal.Decimal `json:"previousBalanceIQD,omitempty"`
	TargetSafeID       *string          `json:"targetSafeID,omitempty"`
	TargetSafeName     *string          `json:"targetSafeName,omitempty"`
	ResetBy            string           `json:"resetBy"`
	CreatedAt          time.Time        `json:"createdAt"`
}

// ToConfirmationRecordResponse converts a domain record to its response DTO.
func ToConfirmationRecordResponse(r *domain.ConfirmationRecord) ConfirmationRecordResponse {
	return ConfirmationRecordResponse{
		RecordID:         r.RecordID,
		SafeID:           r.SafeID,
		SafeName:         r.SafeName,
		UnconfirmedUSD:   r.UnconfirmedUSD,
		UnconfirmedIQD:   r.UnconfirmedIQD,
		VoucherCount:     r.VoucherCount,
		VoucherIDs:       r.VoucherIDs,
		Details:          r.Details,
		ConfirmedBy:      r.ConfirmedBy,
		ConfirmedByEmail: r.ConfirmedByEmail,
		ConfirmedAt:      r.ConfirmedAt,
	}
}

// ToConfirmationRecordResponses converts a slice of records to response DTOs.
func ToConfirmationRecordResponses(records []domain.ConfirmationRecord) []ConfirmationRecordResponse {
	out := make([]ConfirmationRecordResponse, len(records))
	for i := range records {
		out[i] = ToConfirmationRecordResponse(&records[i])
	}
	return out
}

// ToResetHistoryResponse converts a domain reset entry to its response DTO.
func ToResetHistoryResponse(h *domain.ResetHistory) ResetHistoryResponse {
	return ResetHistoryResponse{
		ResetID:            h.ResetID,
		SafeID:             h.SafeID,
		SafeName:           h.SafeName,
		ResetType:          h.ResetType,
		PreviousBalanceUSD: h.PreviousBalanceUSD,
		PreviousBalanceIQD: h.PreviousBalanceIQD,
		TargetSafeID:       h.TargetSafeID,
		TargetSafeName:     h.TargetSafeName,
		ResetBy:            h.ResetBy,
		CreatedAt:          h.CreatedAt,
	}
}

// ToResetHistoryResponses converts a slice of reset entries to response DTOs.
func ToResetHistoryResponses(history []domain.ResetHistory) []ResetHistoryResponse {
	out := make([]ResetHistoryResponse, len(history))
	for i := range history {
		out[i] = ToResetHistoryResponse(&history[i])
	}
	return out
}
