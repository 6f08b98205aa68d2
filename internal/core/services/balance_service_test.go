package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/alnoor-soft/safebox_backend/internal/apperrors"
	"github.com/alnoor-soft/safebox_backend/internal/core/domain"
	portssvc "github.com/alnoor-soft/safebox_backend/internal/core/ports/services"
	"github.com/alnoor-soft/safebox_backend/internal/core/services"
)

type BalanceServiceTestSuite struct {
	suite.Suite
	mockSafeRepo    *MockSafeRepository
	mockVoucherRepo *MockVoucherRepository
	service         portssvc.BalanceSvcFacade
}

func (suite *BalanceServiceTestSuite) SetupTest() {
	suite.mockSafeRepo = new(MockSafeRepository)
	suite.mockVoucherRepo = new(MockVoucherRepository)
	suite.service = services.NewBalanceService(suite.mockSafeRepo, suite.mockVoucherRepo)
}

func (suite *BalanceServiceTestSuite) TestAggregateAll() {
	ctx := context.Background()
	safeA := domain.Safe{SafeID: uuid.NewString(), Name: "A"}
	safeB := domain.Safe{SafeID: uuid.NewString(), Name: "B"}

	vouchers := []domain.Voucher{
		{SafeID: safeA.SafeID, Type: domain.Receipt, Currency: domain.USD, Amount: decimal.NewFromInt(100), Confirmation: true},
		{SafeID: safeA.SafeID, Type: domain.Payment, Currency: domain.USD, Amount: decimal.NewFromInt(30), Confirmation: true},
		{SafeID: safeA.SafeID, Type: domain.Receipt, Currency: domain.USD, Amount: decimal.NewFromInt(50)},
		// Unconfirmed payment: must not appear anywhere in the totals.
		{SafeID: safeA.SafeID, Type: domain.Payment, Currency: domain.USD, Amount: decimal.NewFromInt(500)},
	}

	suite.mockSafeRepo.On("ListSafes", ctx, false).Return([]domain.Safe{safeA, safeB}, nil).Once()
	suite.mockVoucherRepo.On("ListVouchers", ctx, false).Return(vouchers, nil).Once()

	totals, err := suite.service.AggregateAll(ctx)

	suite.Require().NoError(err)
	suite.Require().Len(totals, 2)
	suite.True(totals[safeA.SafeID].ConfirmedUSD.Equal(decimal.NewFromInt(70)))
	suite.True(totals[safeA.SafeID].UnconfirmedUSD.Equal(decimal.NewFromInt(50)))
	// A safe without vouchers still appears, with zero totals.
	suite.True(totals[safeB.SafeID].ConfirmedUSD.IsZero())
	suite.True(totals[safeB.SafeID].UnconfirmedUSD.IsZero())
}

func (suite *BalanceServiceTestSuite) TestAggregateSafe_SafeNotFound() {
	ctx := context.Background()
	safeID := uuid.NewString()

	suite.mockSafeRepo.On("FindSafeByID", ctx, safeID).Return(nil, apperrors.ErrNotFound).Once()

	totals, err := suite.service.AggregateSafe(ctx, safeID)

	suite.Require().Error(err)
	suite.Nil(totals)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockVoucherRepo.AssertNotCalled(suite.T(), "FindVouchersBySafeID", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *BalanceServiceTestSuite) TestRecomputeAndPersist() {
	ctx := context.Background()
	safe := &domain.Safe{SafeID: uuid.NewString(), Name: "Recompute"}
	updatedBy := uuid.NewString()

	vouchers := []domain.Voucher{
		{SafeID: safe.SafeID, Type: domain.Receipt, Currency: domain.USD, Amount: decimal.NewFromInt(200), Confirmation: true},
		{SafeID: safe.SafeID, Type: domain.Payment, Currency: domain.USD, Amount: decimal.NewFromInt(80), Confirmation: true},
		{SafeID: safe.SafeID, Type: domain.Receipt, Currency: domain.IQD, Amount: decimal.NewFromInt(40000), Confirmation: true},
		// Unconfirmed vouchers must not land in the persisted balances.
		{SafeID: safe.SafeID, Type: domain.Receipt, Currency: domain.USD, Amount: decimal.NewFromInt(999)},
	}

	suite.mockSafeRepo.On("FindSafeByID", ctx, safe.SafeID).Return(safe, nil).Once()
	suite.mockVoucherRepo.On("FindVouchersBySafeID", ctx, safe.SafeID, false).Return(vouchers, nil).Once()
	suite.mockSafeRepo.On("SetSafeBalances", ctx, safe.SafeID,
		mock.MatchedBy(func(usd decimal.Decimal) bool { return usd.Equal(decimal.NewFromInt(120)) }),
		mock.MatchedBy(func(iqd decimal.Decimal) bool { return iqd.Equal(decimal.NewFromInt(40000)) }),
		updatedBy, mock.AnythingOfType("time.Time"),
	).Return(nil).Once()

	totals, err := suite.service.RecomputeAndPersist(ctx, safe.SafeID, updatedBy)

	suite.Require().NoError(err)
	suite.True(totals.ConfirmedUSD.Equal(decimal.NewFromInt(120)))
	suite.True(totals.ConfirmedIQD.Equal(decimal.NewFromInt(40000)))
	suite.True(totals.UnconfirmedUSD.Equal(decimal.NewFromInt(999)))
	suite.mockSafeRepo.AssertExpectations(suite.T())
}

func TestBalanceServiceTestSuite(t *testing.T) {
	suite.Run(t, new(BalanceServiceTestSuite))
}
