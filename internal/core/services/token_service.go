package services

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/alnoor-soft/safebox_backend/internal/core/domain"
	portssvc "github.com/alnoor-soft/safebox_backend/internal/core/ports/services"
)

// tokenService signs HS256 JWTs for authenticated operators.
type tokenService struct {
	secret []byte
	expiry time.Duration
}

// NewTokenService creates a new TokenService.
func NewTokenService(secret string, expiry time.Duration) portssvc.TokenSvcFacade {
	return &tokenService{
		secret: []byte(secret),
		expiry: expiry,
	}
}

var _ portssvc.TokenSvcFacade = (*tokenService)(nil)

// GenerateToken signs a token carrying the operator ID as its subject.
func (s *tokenService) GenerateToken(_ context.Context, operator domain.Operator) (string, time.Time, error) {
	now := time.Now().UTC()
	expiresAt := now.Add(s.expiry)

	claims := jwt.RegisteredClaims{
		Subject:   operator.OperatorID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expiresAt, nil
}
