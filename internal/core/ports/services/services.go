package services

import (
	"context"
	"time"

	"github.com/alnoor-soft/safebox_backend/internal/core/domain"
)

// TokenSvcFacade issues the signed tokens the API authenticates with.
type TokenSvcFacade interface {
	// GenerateToken signs a token for the operator and returns it with its
	// expiry instant.
	GenerateToken(ctx context.Context, operator domain.Operator) (string, time.Time, error)
}

// ServiceContainer holds all service facades, wired once at startup and
// handed to the handlers.
type ServiceContainer struct {
	Balance      BalanceSvcFacade
	Confirmation ConfirmationSvcFacade
	Safe         SafeSvcFacade
	Voucher      VoucherSvcFacade
	History      HistorySvcFacade
	Operator     OperatorSvcFacade
	Token        TokenSvcFacade
}
