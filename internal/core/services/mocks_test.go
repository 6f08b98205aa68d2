package services_test

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/alnoor-soft/safebox_backend/internal/core/domain"
)

// MockSafeRepository is a mock type for the SafeRepositoryFacade interface
type MockSafeRepository struct {
	mock.Mock
}

func (m *MockSafeRepository) SaveSafe(ctx context.Context, safe domain.Safe) error {
	args := m.Called(ctx, safe)
	return args.Error(0)
}

func (m *MockSafeRepository) FindSafeByID(ctx context.Context, safeID string) (*domain.Safe, error) {
	args := m.Called(ctx, safeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Safe), args.Error(1)
}

func (m *MockSafeRepository) ListSafes(ctx context.Context, mainOnly bool) ([]domain.Safe, error) {
	args := m.Called(ctx, mainOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Safe), args.Error(1)
}

func (m *MockSafeRepository) UpdateSafe(ctx context.Context, safe domain.Safe) error {
	args := m.Called(ctx, safe)
	return args.Error(0)
}

func (m *MockSafeRepository) SetSafeBalances(ctx context.Context, safeID string, balanceUSD, balanceIQD decimal.Decimal, updatedBy string, now time.Time) error {
	args := m.Called(ctx, safeID, balanceUSD, balanceIQD, updatedBy, now)
	return args.Error(0)
}

func (m *MockSafeRepository) FindSafeByIDForUpdate(ctx context.Context, tx pgx.Tx, safeID string) (*domain.Safe, error) {
	args := m.Called(ctx, tx, safeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Safe), args.Error(1)
}

func (m *MockSafeRepository) ApplySafeBalanceDeltaInTx(ctx context.Context, tx pgx.Tx, safeID string, deltaUSD, deltaIQD decimal.Decimal, updatedBy string, now time.Time) error {
	args := m.Called(ctx, tx, safeID, deltaUSD, deltaIQD, updatedBy, now)
	return args.Error(0)
}

func (m *MockSafeRepository) ResetSafe(ctx context.Context, safeID string, resetType domain.ResetType, targetSafeID *string, operator domain.OperatorIdentity, now time.Time) (*domain.ResetHistory, error) {
	args := m.Called(ctx, safeID, resetType, targetSafeID, operator, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ResetHistory), args.Error(1)
}

// MockVoucherRepository is a mock type for the VoucherRepositoryFacade interface
type MockVoucherRepository struct {
	mock.Mock
}

func (m *MockVoucherRepository) SaveVoucher(ctx context.Context, voucher domain.Voucher) error {
	args := m.Called(ctx, voucher)
	return args.Error(0)
}

func (m *MockVoucherRepository) SaveVouchers(ctx context.Context, vouchers []domain.Voucher) error {
	args := m.Called(ctx, vouchers)
	return args.Error(0)
}

func (m *MockVoucherRepository) FindVoucherByID(ctx context.Context, voucherID string) (*domain.Voucher, error) {
	args := m.Called(ctx, voucherID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Voucher), args.Error(1)
}

func (m *MockVoucherRepository) FindVouchersBySafeID(ctx context.Context, safeID string, unconfirmedOnly bool) ([]domain.Voucher, error) {
	args := m.Called(ctx, safeID, unconfirmedOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Voucher), args.Error(1)
}

func (m *MockVoucherRepository) ListVouchers(ctx context.Context, unconfirmedOnly bool) ([]domain.Voucher, error) {
	args := m.Called(ctx, unconfirmedOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Voucher), args.Error(1)
}

func (m *MockVoucherRepository) SoftDeleteVoucher(ctx context.Context, voucherID string, deletedBy string, now time.Time) error {
	args := m.Called(ctx, voucherID, deletedBy, now)
	return args.Error(0)
}

func (m *MockVoucherRepository) ConfirmVouchers(ctx context.Context, batch domain.ConfirmationBatch, record domain.ConfirmationRecord) (*domain.ConfirmationResult, error) {
	args := m.Called(ctx, batch, record)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ConfirmationResult), args.Error(1)
}

// MockConfirmationRecordRepository is a mock type for the ConfirmationRecordRepositoryFacade interface
type MockConfirmationRecordRepository struct {
	mock.Mock
}

func (m *MockConfirmationRecordRepository) SaveConfirmationRecord(ctx context.Context, record domain.ConfirmationRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockConfirmationRecordRepository) InsertConfirmationRecordInTx(ctx context.Context, tx pgx.Tx, record domain.ConfirmationRecord) error {
	args := m.Called(ctx, tx, record)
	return args.Error(0)
}

func (m *MockConfirmationRecordRepository) ListConfirmationRecords(ctx context.Context, safeID *string) ([]domain.ConfirmationRecord, error) {
	args := m.Called(ctx, safeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ConfirmationRecord), args.Error(1)
}

func (m *MockConfirmationRecordRepository) DeleteConfirmationRecords(ctx context.Context, safeID *string) (int64, error) {
	args := m.Called(ctx, safeID)
	return args.Get(0).(int64), args.Error(1)
}

// MockResetHistoryRepository is a mock type for the ResetHistoryRepositoryFacade interface
type MockResetHistoryRepository struct {
	mock.Mock
}

func (m *MockResetHistoryRepository) SaveResetHistory(ctx context.Context, history domain.ResetHistory) error {
	args := m.Called(ctx, history)
	return args.Error(0)
}

func (m *MockResetHistoryRepository) InsertResetHistoryInTx(ctx context.Context, tx pgx.Tx, history domain.ResetHistory) error {
	args := m.Called(ctx, tx, history)
	return args.Error(0)
}

func (m *MockResetHistoryRepository) ListResetHistoryBySafeID(ctx context.Context, safeID string) ([]domain.ResetHistory, error) {
	args := m.Called(ctx, safeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ResetHistory), args.Error(1)
}

// MockOperatorRepository is a mock type for the OperatorRepositoryFacade interface
type MockOperatorRepository struct {
	mock.Mock
}

func (m *MockOperatorRepository) SaveOperator(ctx context.Context, operator domain.Operator) error {
	args := m.Called(ctx, operator)
	return args.Error(0)
}

func (m *MockOperatorRepository) CountOperators(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOperatorRepository) FindOperatorByID(ctx context.Context, operatorID string) (*domain.Operator, error) {
	args := m.Called(ctx, operatorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Operator), args.Error(1)
}

func (m *MockOperatorRepository) FindOperatorByEmail(ctx context.Context, email string) (*domain.Operator, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Operator), args.Error(1)
}
