package pgsql

import (
	portsrepo "github.com/alnoor-soft/safebox_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	recordRepo := newPgxConfirmationRecordRepository(dbPool)
	resetHistoryRepo := newPgxResetHistoryRepository(dbPool)
	safeRepo := newPgxSafeRepository(dbPool, resetHistoryRepo)
	voucherRepo := newPgxVoucherRepository(dbPool, safeRepo, recordRepo)
	operatorRepo := newPgxOperatorRepository(dbPool)

	return portsrepo.RepositoryProvider{
		SafeRepo:               safeRepo,
		VoucherRepo:            voucherRepo,
		ConfirmationRecordRepo: recordRepo,
		ResetHistoryRepo:       resetHistoryRepo,
		OperatorRepo:           operatorRepo,
	}
}
