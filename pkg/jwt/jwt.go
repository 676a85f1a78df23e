// Package jwt issues and checks the HS256 tokens that guard the scoring write routes.
package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type Service interface {
	GenerateToken(subject, lane string, role Role, ttl time.Duration) (string, error)
	ValidateToken(tokenString string) (*LaneClaims, error)
	DefaultTTL() time.Duration
}

type service struct {
	secret     []byte
	issuer     string
	defaultTTL time.Duration
	now        func() time.Time
}

func NewService(secret, issuer string, defaultTTL time.Duration) Service {
	if defaultTTL <= 0 {
		defaultTTL = 12 * time.Hour
	}
	return &service{
		secret:     []byte(secret),
		issuer:     issuer,
		defaultTTL: defaultTTL,
		now:        time.Now,
	}
}

func (s *service) DefaultTTL() time.Duration { return s.defaultTTL }

func (s *service) GenerateToken(subject, lane string, role Role, ttl time.Duration) (string, error) {
	if !role.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownRole, role)
	}
	if ttl <= 0 {
		ttl = s.defaultTTL
	}

	now := s.now()
	claims := &LaneClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Issuer:    s.issuer,
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Lane: lane,
		Role: string(role),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signedToken, nil
}

func (s *service) ValidateToken(tokenString string) (*LaneClaims, error) {
	opts := []jwt.ParserOption{jwt.WithTimeFunc(s.now)}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, &LaneClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidSignature
		}
		return s.secret, nil
	}, opts...)

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		if errors.Is(err, jwt.ErrTokenSignatureInvalid) {
			return nil, ErrInvalidSignature
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*LaneClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if !Role(claims.Role).Valid() {
		return nil, ErrUnknownRole
	}

	return claims, nil
}
