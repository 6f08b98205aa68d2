package dto

import (
	"time"

	"github.com/alnoor-soft/safebox_backend/internal/core/domain"
)

// CreateOperatorRequest defines the data needed to create a new operator.
type CreateOperatorRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest defines operator login credentials.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued token and the authenticated operator.
type LoginResponse struct {
	Token     string           `json:"token"`
	ExpiresAt time.Time        `json:"expiresAt"`
	Operator  OperatorResponse `json:"operator"`
}

// OperatorResponse defines the data returned for an operator.
type OperatorResponse struct {
	OperatorID string    `json:"operatorID"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	IsActive   bool      `json:"isActive"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ToOperatorResponse converts a domain.Operator to OperatorResponse DTO.
func ToOperatorResponse(o *domain.Operator) OperatorResponse {
	return OperatorResponse{
		OperatorID: o.OperatorID,
		Name:       o.Name,
		Email:      o.Email,
		IsActive:   o.IsActive,
		CreatedAt:  o.CreatedAt,
	}
}
