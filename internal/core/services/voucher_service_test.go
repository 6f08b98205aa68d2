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
	"github.com/alnoor-soft/safebox_backend/internal/dto"
)

type VoucherServiceTestSuite struct {
	suite.Suite
	mockSafeRepo    *MockSafeRepository
	mockVoucherRepo *MockVoucherRepository
	service         portssvc.VoucherSvcFacade
}

func (suite *VoucherServiceTestSuite) SetupTest() {
	suite.mockSafeRepo = new(MockSafeRepository)
	suite.mockVoucherRepo = new(MockVoucherRepository)
	suite.service = services.NewVoucherService(suite.mockSafeRepo, suite.mockVoucherRepo)
}

func (suite *VoucherServiceTestSuite) TestCreateVoucher_Success() {
	ctx := context.Background()
	safe := &domain.Safe{SafeID: uuid.NewString(), Name: "Front Desk"}
	creatorID := uuid.NewString()
	req := dto.CreateVoucherRequest{
		SafeID:   safe.SafeID,
		Type:     domain.Receipt,
		Currency: domain.USD,
		Amount:   decimal.NewFromInt(75),
		Company:  "Al-Rafidain Travel",
	}

	suite.mockSafeRepo.On("FindSafeByID", ctx, safe.SafeID).Return(safe, nil).Once()
	suite.mockVoucherRepo.On("SaveVoucher", ctx, mock.AnythingOfType("domain.Voucher")).Return(nil).Once()

	voucher, err := suite.service.CreateVoucher(ctx, req, creatorID)

	suite.Require().NoError(err)
	suite.NotEmpty(voucher.VoucherID)
	suite.False(voucher.Confirmation, "new vouchers start unconfirmed")
	suite.Nil(voucher.ConfirmedAt)
	suite.Equal(creatorID, voucher.CreatedBy)
	suite.mockVoucherRepo.AssertExpectations(suite.T())
}

func (suite *VoucherServiceTestSuite) TestCreateVoucher_NegativeAmount() {
	req := dto.CreateVoucherRequest{
		SafeID:   uuid.NewString(),
		Type:     domain.Receipt,
		Currency: domain.USD,
		Amount:   decimal.NewFromInt(-10),
	}

	voucher, err := suite.service.CreateVoucher(context.Background(), req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(voucher)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockVoucherRepo.AssertNotCalled(suite.T(), "SaveVoucher", mock.Anything, mock.Anything)
}

func (suite *VoucherServiceTestSuite) TestCreateVoucher_SafeNotFound() {
	ctx := context.Background()
	req := dto.CreateVoucherRequest{
		SafeID:   uuid.NewString(),
		Type:     domain.Receipt,
		Currency: domain.USD,
		Amount:   decimal.NewFromInt(10),
	}

	suite.mockSafeRepo.On("FindSafeByID", ctx, req.SafeID).Return(nil, apperrors.ErrNotFound).Once()

	voucher, err := suite.service.CreateVoucher(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(voucher)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *VoucherServiceTestSuite) TestImportVouchers_DefensiveAmounts() {
	ctx := context.Background()
	safe := &domain.Safe{SafeID: uuid.NewString(), Name: "Import Target"}
	req := dto.ImportVouchersRequest{
		Vouchers: []dto.ImportVoucherRow{
			{SafeID: safe.SafeID, Type: "receipt", Currency: "usd", Amount: "120.50"},
			{SafeID: safe.SafeID, Type: "PAYMENT", Currency: "IQD", Amount: ""},
			{SafeID: safe.SafeID, Type: " transfer ", Currency: "USD", Amount: "not-a-number"},
		},
	}

	suite.mockSafeRepo.On("FindSafeByID", ctx, safe.SafeID).Return(safe, nil).Once()
	suite.mockVoucherRepo.On("SaveVouchers", ctx, mock.AnythingOfType("[]domain.Voucher")).Return(nil).Once()

	vouchers, err := suite.service.ImportVouchers(ctx, req, uuid.NewString())

	suite.Require().NoError(err)
	suite.Require().Len(vouchers, 3)
	suite.Equal(domain.Receipt, vouchers[0].Type)
	suite.True(vouchers[0].Amount.Equal(decimal.NewFromFloat(120.50)))
	// Missing and malformed amounts become zero instead of failing the import.
	suite.True(vouchers[1].Amount.IsZero())
	suite.True(vouchers[2].Amount.IsZero())
	suite.Equal(domain.Transfer, vouchers[2].Type)
	// The safe is looked up once and cached for the remaining rows.
	suite.mockSafeRepo.AssertNumberOfCalls(suite.T(), "FindSafeByID", 1)
}

func (suite *VoucherServiceTestSuite) TestImportVouchers_UnknownTypeRejected() {
	req := dto.ImportVouchersRequest{
		Vouchers: []dto.ImportVoucherRow{
			{SafeID: uuid.NewString(), Type: "WITHDRAWAL", Currency: "USD", Amount: "10"},
		},
	}

	vouchers, err := suite.service.ImportVouchers(context.Background(), req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(vouchers)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockVoucherRepo.AssertNotCalled(suite.T(), "SaveVouchers", mock.Anything, mock.Anything)
}

func (suite *VoucherServiceTestSuite) TestImportVouchers_UnknownCurrencyRejected() {
	req := dto.ImportVouchersRequest{
		Vouchers: []dto.ImportVoucherRow{
			{SafeID: uuid.NewString(), Type: "RECEIPT", Currency: "EUR", Amount: "10"},
		},
	}

	vouchers, err := suite.service.ImportVouchers(context.Background(), req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(vouchers)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *VoucherServiceTestSuite) TestDeleteVoucher_ConfirmedRejected() {
	ctx := context.Background()
	v := &domain.Voucher{
		VoucherID:    uuid.NewString(),
		SafeID:       uuid.NewString(),
		Type:         domain.Receipt,
		Currency:     domain.USD,
		Amount:       decimal.NewFromInt(10),
		Confirmation: true,
	}

	suite.mockVoucherRepo.On("FindVoucherByID", ctx, v.VoucherID).Return(v, nil).Once()

	err := suite.service.DeleteVoucher(ctx, v.VoucherID, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockVoucherRepo.AssertNotCalled(suite.T(), "SoftDeleteVoucher", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *VoucherServiceTestSuite) TestDeleteVoucher_Success() {
	ctx := context.Background()
	v := &domain.Voucher{
		VoucherID: uuid.NewString(),
		SafeID:    uuid.NewString(),
		Type:      domain.Receipt,
		Currency:  domain.USD,
		Amount:    decimal.NewFromInt(10),
	}
	deletedBy := uuid.NewString()

	suite.mockVoucherRepo.On("FindVoucherByID", ctx, v.VoucherID).Return(v, nil).Once()
	suite.mockVoucherRepo.On("SoftDeleteVoucher", ctx, v.VoucherID, deletedBy, mock.AnythingOfType("time.Time")).Return(nil).Once()

	err := suite.service.DeleteVoucher(ctx, v.VoucherID, deletedBy)

	suite.Require().NoError(err)
	suite.mockVoucherRepo.AssertExpectations(suite.T())
}

func TestVoucherServiceTestSuite(t *testing.T) {
	suite.Run(t, new(VoucherServiceTestSuite))
}
