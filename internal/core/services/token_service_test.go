package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alnoor-soft/safebox_backend/internal/core/domain"
	"github.com/alnoor-soft/safebox_backend/internal/core/services"
)

func TestGenerateToken(t *testing.T) {
	secret := "test-secret"
	svc := services.NewTokenService(secret, time.Hour)
	operator := domain.Operator{OperatorID: uuid.NewString()}

	token, expiresAt, err := svc.GenerateToken(context.Background(), operator)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(*jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	require.NoError(t, err)
	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	require.True(t, ok)
	assert.Equal(t, operator.OperatorID, claims.Subject)
}

func TestGenerateToken_RejectedByWrongSecret(t *testing.T) {
	svc := services.NewTokenService("right-secret", time.Hour)
	token, _, err := svc.GenerateToken(context.Background(), domain.Operator{OperatorID: uuid.NewString()})
	require.NoError(t, err)

	_, err = jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(*jwt.Token) (interface{}, error) {
		return []byte("wrong-secret"), nil
	})
	assert.Error(t, err)
}
