package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/alnoor-soft/safebox_backend/internal/apperrors"
	"github.com/alnoor-soft/safebox_backend/internal/core/domain"
	portssvc "github.com/alnoor-soft/safebox_backend/internal/core/ports/services"
	"github.com/alnoor-soft/safebox_backend/internal/core/services"
)

type HistoryServiceTestSuite struct {
	suite.Suite
	mockRecordRepo *MockConfirmationRecordRepository
	mockResetRepo  *MockResetHistoryRepository
	service        portssvc.HistorySvcFacade
}

func (suite *HistoryServiceTestSuite) SetupTest() {
	suite.mockRecordRepo = new(MockConfirmationRecordRepository)
	suite.mockResetRepo = new(MockResetHistoryRepository)
	suite.service = services.NewHistoryService(suite.mockRecordRepo, suite.mockResetRepo)
}

func (suite *HistoryServiceTestSuite) TestRecordConfirmationBatch_FillsDefaults() {
	ctx := context.Background()
	record := domain.ConfirmationRecord{
		SafeID:         uuid.NewString(),
		SafeName:       "Standalone",
		UnconfirmedUSD: decimal.NewFromInt(40),
		VoucherIDs:     []string{uuid.NewString(), uuid.NewString()},
		ConfirmedBy:    "Importer",
	}

	var saved domain.ConfirmationRecord
	suite.mockRecordRepo.On("SaveConfirmationRecord", ctx, mock.AnythingOfType("domain.ConfirmationRecord")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(domain.ConfirmationRecord) }).
		Return(nil).Once()

	recordID, err := suite.service.RecordConfirmationBatch(ctx, record)

	suite.Require().NoError(err)
	suite.NotEmpty(recordID)
	suite.Equal(recordID, saved.RecordID)
	suite.Equal(2, saved.VoucherCount)
	suite.WithinDuration(time.Now(), saved.ConfirmedAt, time.Second)
}

func (suite *HistoryServiceTestSuite) TestRecordConfirmationBatch_EmptyRejected() {
	record := domain.ConfirmationRecord{SafeID: uuid.NewString()}

	recordID, err := suite.service.RecordConfirmationBatch(context.Background(), record)

	suite.Require().Error(err)
	suite.Empty(recordID)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRecordRepo.AssertNotCalled(suite.T(), "SaveConfirmationRecord", mock.Anything, mock.Anything)
}

func (suite *HistoryServiceTestSuite) TestPurgeConfirmationHistory() {
	ctx := context.Background()
	safeID := uuid.NewString()

	suite.mockRecordRepo.On("DeleteConfirmationRecords", ctx, &safeID).Return(int64(7), nil).Once()

	deleted, err := suite.service.PurgeConfirmationHistory(ctx, &safeID)

	suite.Require().NoError(err)
	suite.Equal(int64(7), deleted)
}

func (suite *HistoryServiceTestSuite) TestRecordReset_UnknownTypeRejected() {
	history := domain.ResetHistory{
		SafeID:    uuid.NewString(),
		ResetType: domain.ResetType("eur"),
	}

	resetID, err := suite.service.RecordReset(context.Background(), history)

	suite.Require().Error(err)
	suite.Empty(resetID)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockResetRepo.AssertNotCalled(suite.T(), "SaveResetHistory", mock.Anything, mock.Anything)
}

func (suite *HistoryServiceTestSuite) TestListResetHistory() {
	ctx := context.Background()
	safeID := uuid.NewString()
	entries := []domain.ResetHistory{{ResetID: uuid.NewString(), SafeID: safeID, ResetType: domain.ResetBoth}}

	suite.mockResetRepo.On("ListResetHistoryBySafeID", ctx, safeID).Return(entries, nil).Once()

	got, err := suite.service.ListResetHistory(ctx, safeID)

	suite.Require().NoError(err)
	suite.Equal(entries, got)
}

func TestHistoryServiceTestSuite(t *testing.T) {
	suite.Run(t, new(HistoryServiceTestSuite))
}
