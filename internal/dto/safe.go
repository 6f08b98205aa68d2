package dto

import (
	"time"

	"github.com/alnoor-soft/safebox_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateSafeRequest defines the data needed to create a new safe.
type CreateSafeRequest struct {
	Name              string          `json:"name" binding:"required"`
	BalanceUSD        decimal.Decimal `json:"balanceUSD"` // Opening balance, defaults to 0
	BalanceIQD        decimal.Decimal `json:"balanceIQD"` // Opening balance, defaults to 0
	IsMain            bool            `json:"isMain"`
	CustodianName     string          `json:"custodianName"`
	CustodianImageURL string          `json:"custodianImageURL"`
}

// UpdateSafeRequest defines the data allowed for updating a safe.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateSafeRequest struct {
	Name              *string `json:"name"`
	IsMain            *bool   `json:"isMain"`
	CustodianName     *string `json:"custodianName"`
	CustodianImageURL *string `json:"custodianImageURL"`
}

// ResetSafeRequest defines a balance reset or transfer-to-safe operation.
type ResetSafeRequest struct {
	ResetType    domain.ResetType `json:"resetType" binding:"required,oneof=usd iqd both"`
	TargetSafeID *string          `json:"targetSafeID"` // Optional: transfer target instead of zero-out
}

// SafeResponse defines the data returned for a safe.
type SafeResponse struct {
	SafeID            string          `json:"safeID"`
	Name              string          `json:"name"`
	BalanceUSD        decimal.Decimal `json:"balanceUSD"`
	BalanceIQD        decimal.Decimal `json:"balanceIQD"`
	IsMain            bool            `json:"isMain"`
	CustodianName     string          `json:"custodianName"`
	CustodianImageURL string          `json:"custodianImageURL"`
	CreatedAt         time.Time       `json:"createdAt"`
	CreatedBy         string          `json:"createdBy"`
	LastUpdatedAt     time.Time       `json:"lastUpdatedAt"`
	LastUpdatedBy     string          `json:"lastUpdatedBy"`
}

// SafeBalancesResponse pairs a safe with its derived balance totals.
type SafeBalancesResponse struct {
	SafeID string            `json:"safeID"`
	Totals domain.SafeTotals `json:"totals"`
}

// ToSafeResponse converts a domain.Safe to SafeResponse DTO.
func ToSafeResponse(s *domain.Safe) SafeResponse {
	return SafeResponse{
		SafeID:            s.SafeID,
		Name:              s.Name,
		BalanceUSD:        s.BalanceUSD,
		BalanceIQD:        s.BalanceIQD,
		IsMain:            s.IsMain,
		CustodianName:     s.CustodianName,
		CustodianImageURL: s.CustodianImageURL,
		CreatedAt:         s.CreatedAt,
		CreatedBy:         s.CreatedBy,
		LastUpdatedAt:     s.LastUpdatedAt,
		LastUpdatedBy:     s.LastUpdatedBy,
	}
}

// ToSafeResponses converts a slice of domain safes to response DTOs.
func ToSafeResponses(safes []domain.Safe) []SafeResponse {
	out := make([]SafeResponse, len(safes))
	for i := range safes {
		out[i] = ToSafeResponse(&safes[i])
	}
	return out
}
