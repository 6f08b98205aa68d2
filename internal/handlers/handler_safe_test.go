package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/alnoor-soft/safebox_backend/internal/apperrors"
	"github.com/alnoor-soft/safebox_backend/internal/core/domain"
	portssvc "github.com/alnoor-soft/safebox_backend/internal/core/ports/services"
	"github.com/alnoor-soft/safebox_backend/internal/dto"
	"github.com/alnoor-soft/safebox_backend/internal/handlers"
	"github.com/alnoor-soft/safebox_backend/pkg/config"
)

// --- Mock SafeService ---
type MockSafeService struct {
	mock.Mock
}

func (m *MockSafeService) CreateSafe(ctx context.Context, req dto.CreateSafeRequest, creatorID string) (*domain.Safe, error) {
	args := m.Called(ctx, req, creatorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Safe), args.Error(1)
}
func (m *MockSafeService) GetSafeByID(ctx context.Context, safeID string) (*domain.Safe, error) {
	args := m.Called(ctx, safeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Safe), args.Error(1)
}
func (m *MockSafeService) ListSafes(ctx context.Context, mainOnly bool) ([]domain.Safe, error) {
	args := m.Called(ctx, mainOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Safe), args.Error(1)
}
func (m *MockSafeService) UpdateSafe(ctx context.Context, safeID string, req dto.UpdateSafeRequest, updatedBy string) (*domain.Safe, error) {
	args := m.Called(ctx, safeID, req, updatedBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Safe), args.Error(1)
}
func (m *MockSafeService) ResetSafe(ctx context.Context, safeID string, req dto.ResetSafeRequest, operator domain.OperatorIdentity) (*domain.ResetHistory, error) {
	args := m.Called(ctx, safeID, req, operator)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ResetHistory), args.Error(1)
}

var _ portssvc.SafeSvcFacade = (*MockSafeService)(nil)

// --- Mock BalanceService ---
type MockBalanceService struct {
	mock.Mock
}

func (m *MockBalanceService) AggregateAll(ctx context.Context) (map[string]domain.SafeTotals, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.SafeTotals), args.Error(1)
}
func (m *MockBalanceService) AggregateSafe(ctx context.Context, safeID string) (*domain.SafeTotals, error) {
	args := m.Called(ctx, safeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SafeTotals), args.Error(1)
}
func (m *MockBalanceService) RecomputeAndPersist(ctx context.Context, safeID string, updatedBy string) (*domain.SafeTotals, error) {
	args := m.Called(ctx, safeID, updatedBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SafeTotals), args.Error(1)
}

var _ portssvc.BalanceSvcFacade = (*MockBalanceService)(nil)

// --- Mock ConfirmationService ---
type MockConfirmationService struct {
	mock.Mock
}

func (m *MockConfirmationService) ConfirmVouchers(ctx context.Context, safeID string, voucherIDs []string, operator domain.OperatorIdentity) (*domain.ConfirmationResult, error) {
	args := m.Called(ctx, safeID, voucherIDs, operator)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ConfirmationResult), args.Error(1)
}
func (m *MockConfirmationService) ConfirmVoucher(ctx context.Context, voucherID string, operator domain.OperatorIdentity) (*domain.ConfirmationResult, error) {
	args := m.Called(ctx, voucherID, operator)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ConfirmationResult), args.Error(1)
}

var _ portssvc.ConfirmationSvcFacade = (*MockConfirmationService)(nil)

// --- Mock HistoryService ---
type MockHistoryService struct {
	mock.Mock
}

func (m *MockHistoryService) RecordConfirmationBatch(ctx context.Context, record domain.ConfirmationRecord) (string, error) {
	args := m.Called(ctx, record)
	return args.String(0), args.Error(1)
}
func (m *MockHistoryService) ListConfirmationHistory(ctx context.Context, safeID *string) ([]domain.ConfirmationRecord, error) {
	args := m.Called(ctx, safeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ConfirmationRecord), args.Error(1)
}
func (m *MockHistoryService) PurgeConfirmationHistory(ctx context.Context, safeID *string) (int64, error) {
	args := m.Called(ctx, safeID)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockHistoryService) RecordReset(ctx context.Context, history domain.ResetHistory) (string, error) {
	args := m.Called(ctx, history)
	return args.String(0), args.Error(1)
}
func (m *MockHistoryService) ListResetHistory(ctx context.Context, safeID string) ([]domain.ResetHistory, error) {
	args := m.Called(ctx, safeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ResetHistory), args.Error(1)
}

var _ portssvc.HistorySvcFacade = (*MockHistoryService)(nil)

// --- Mock OperatorService ---
type MockOperatorService struct {
	mock.Mock
}

func (m *MockOperatorService) CreateOperator(ctx context.Context, req dto.CreateOperatorRequest, creatorID string) (*domain.Operator, error) {
	args := m.Called(ctx, req, creatorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Operator), args.Error(1)
}
func (m *MockOperatorService) GetOperatorByID(ctx context.Context, operatorID string) (*domain.Operator, error) {
	args := m.Called(ctx, operatorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Operator), args.Error(1)
}
func (m *MockOperatorService) EnsureBootstrapOperator(ctx context.Context, name, email, password string) (*domain.Operator, error) {
	args := m.Called(ctx, name, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Operator), args.Error(1)
}
func (m *MockOperatorService) Authenticate(ctx context.Context, email, password string) (*domain.Operator, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Operator), args.Error(1)
}

var _ portssvc.OperatorSvcFacade = (*MockOperatorService)(nil)

// --- Test Suite ---
type SafeHandlerTestSuite struct {
	suite.Suite
	router                  *gin.Engine
	mockSafeService         *MockSafeService
	mockBalanceService      *MockBalanceService
	mockConfirmationService *MockConfirmationService
	mockHistoryService      *MockHistoryService
	mockOperatorService     *MockOperatorService
	jwtSecret               string
	operator                *domain.Operator
}

// generateTestToken creates a signed JWT for the suite operator.
func (suite *SafeHandlerTestSuite) generateTestToken(operatorID string) string {
	claims := jwt.RegisteredClaims{
		Subject:   operatorID,
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *SafeHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.operator = &domain.Operator{
		OperatorID: uuid.NewString(),
		Name:       "Layla Hassan",
		Email:      "layla@example.com",
		IsActive:   true,
	}

	suite.mockSafeService = new(MockSafeService)
	suite.mockBalanceService = new(MockBalanceService)
	suite.mockConfirmationService = new(MockConfirmationService)
	suite.mockHistoryService = new(MockHistoryService)
	suite.mockOperatorService = new(MockOperatorService)

	cfg := &config.Config{
		JWTSecret:      suite.jwtSecret,
		IsProduction:   true, // No swagger routes in tests
		LoginRateLimit: "5-M",
	}
	services := &portssvc.ServiceContainer{
		Safe:         suite.mockSafeService,
		Balance:      suite.mockBalanceService,
		Confirmation: suite.mockConfirmationService,
		History:      suite.mockHistoryService,
		Operator:     suite.mockOperatorService,
	}
	handlers.RegisterRoutes(suite.router, cfg, services)
}

func (suite *SafeHandlerTestSuite) doRequest(method, url string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, _ := http.NewRequest(method, url, reader)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(suite.operator.OperatorID))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *SafeHandlerTestSuite) TestConfirmVouchers_Success() {
	safeID := uuid.NewString()
	voucherIDs := []string{uuid.NewString(), uuid.NewString()}
	expected := &domain.ConfirmationResult{
		SafeID:         safeID,
		ConfirmedCount: 2,
		TotalUSD:       decimal.NewFromInt(80),
		RecordID:       uuid.NewString(),
	}

	suite.mockOperatorService.On("GetOperatorByID", mock.Anything, suite.operator.OperatorID).Return(suite.operator, nil).Once()
	suite.mockConfirmationService.On("ConfirmVouchers", mock.Anything, safeID, voucherIDs,
		mock.MatchedBy(func(op domain.OperatorIdentity) bool {
			return op.ID == suite.operator.OperatorID && op.Name == suite.operator.Name
		}),
	).Return(expected, nil).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/safes/"+safeID+"/confirmations", dto.ConfirmVouchersRequest{VoucherIDs: voucherIDs})

	suite.Equal(http.StatusOK, w.Code)
	var body dto.ConfirmationResultResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.True(body.Success)
	suite.Equal(2, body.ConfirmedCount)
	suite.True(body.TotalUSD.Equal(decimal.NewFromInt(80)))
	suite.mockConfirmationService.AssertExpectations(suite.T())
}

func (suite *SafeHandlerTestSuite) TestConfirmVouchers_SafeNotFound() {
	safeID := uuid.NewString()

	suite.mockOperatorService.On("GetOperatorByID", mock.Anything, suite.operator.OperatorID).Return(suite.operator, nil).Once()
	suite.mockConfirmationService.On("ConfirmVouchers", mock.Anything, safeID, mock.Anything, mock.Anything).
		Return(nil, apperrors.ErrNotFound).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/safes/"+safeID+"/confirmations", dto.ConfirmVouchersRequest{VoucherIDs: []string{uuid.NewString()}})

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *SafeHandlerTestSuite) TestConfirmVouchers_EmptyBatchRejectedByBinding() {
	safeID := uuid.NewString()

	w := suite.doRequest(http.MethodPost, "/api/v1/safes/"+safeID+"/confirmations", dto.ConfirmVouchersRequest{})

	// The min=1 binding tag stops an empty batch before the service is reached.
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockConfirmationService.AssertNotCalled(suite.T(), "ConfirmVouchers", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *SafeHandlerTestSuite) TestConfirmVouchers_Unauthenticated() {
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/safes/"+uuid.NewString()+"/confirmations", bytes.NewReader(nil))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *SafeHandlerTestSuite) TestGetSafeBalances() {
	safeID := uuid.NewString()
	totals := &domain.SafeTotals{
		ConfirmedUSD:   decimal.NewFromInt(120),
		UnconfirmedUSD: decimal.NewFromInt(50),
	}

	suite.mockBalanceService.On("AggregateSafe", mock.Anything, safeID).Return(totals, nil).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/safes/"+safeID+"/balances", nil)

	suite.Equal(http.StatusOK, w.Code)
	var body dto.SafeBalancesResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal(safeID, body.SafeID)
	suite.True(body.Totals.ConfirmedUSD.Equal(decimal.NewFromInt(120)))
	suite.True(body.Totals.UnconfirmedUSD.Equal(decimal.NewFromInt(50)))
}

func (suite *SafeHandlerTestSuite) TestResetSafe_Success() {
	safeID := uuid.NewString()
	prevUSD := decimal.NewFromInt(180)
	expected := &domain.ResetHistory{
		ResetID:            uuid.NewString(),
		SafeID:             safeID,
		SafeName:           "Main",
		ResetType:          domain.ResetUSD,
		PreviousBalanceUSD: &prevUSD,
		ResetBy:            suite.operator.Name,
		CreatedAt:          time.Now().UTC(),
	}

	suite.mockOperatorService.On("GetOperatorByID", mock.Anything, suite.operator.OperatorID).Return(suite.operator, nil).Once()
	suite.mockSafeService.On("ResetSafe", mock.Anything, safeID,
		mock.MatchedBy(func(req dto.ResetSafeRequest) bool { return req.ResetType == domain.ResetUSD }),
		mock.MatchedBy(func(op domain.OperatorIdentity) bool { return op.ID == suite.operator.OperatorID }),
	).Return(expected, nil).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/safes/"+safeID+"/resets", dto.ResetSafeRequest{ResetType: domain.ResetUSD})

	suite.Equal(http.StatusOK, w.Code)
	var body dto.ResetHistoryResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal(domain.ResetUSD, body.ResetType)
	suite.Require().NotNil(body.PreviousBalanceUSD)
	suite.True(body.PreviousBalanceUSD.Equal(prevUSD))
	suite.Nil(body.PreviousBalanceIQD)
	suite.mockSafeService.AssertExpectations(suite.T())
}

func (suite *SafeHandlerTestSuite) TestResetSafe_InvalidResetType() {
	safeID := uuid.NewString()

	w := suite.doRequest(http.MethodPost, "/api/v1/safes/"+safeID+"/resets", gin.H{"resetType": "eur"})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockSafeService.AssertNotCalled(suite.T(), "ResetSafe", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSafeHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(SafeHandlerTestSuite))
}
