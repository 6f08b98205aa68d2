package services

import (
	portsrepo "github.com/alnoor-soft/safebox_backend/internal/core/ports/repositories"
	portssvc "github.com/alnoor-soft/safebox_backend/internal/core/ports/services"
	"github.com/alnoor-soft/safebox_backend/pkg/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Balance = NewBalanceService(repos.SafeRepo, repos.VoucherRepo)
	container.Confirmation = NewConfirmationService(repos.SafeRepo, repos.VoucherRepo)
	container.Safe = NewSafeService(repos.SafeRepo)
	container.Voucher = NewVoucherService(repos.SafeRepo, repos.VoucherRepo)
	container.History = NewHistoryService(repos.ConfirmationRecordRepo, repos.ResetHistoryRepo)
	container.Operator = NewOperatorService(repos.OperatorRepo)
	container.Token = NewTokenService(cfg.JWTSecret, cfg.JWTExpiryDuration)

	return container
}
