// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"time"

	"notekeeper/config"
	domainerrors "notekeeper/internal/domain/errors"
	"notekeeper/internal/domain/service"
	"notekeeper/internal/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// tokenTTL is fixed; sessions always last seven days.
const tokenTTL = 7 * 24 * time.Hour

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
type jwtService struct {
	secret []byte           // Process-wide HMAC key.
	ttl    time.Duration    // Time-to-live for session tokens.
	now    func() time.Time // Clock, replaced in tests.
}

// NewJWTService is the constructor for jwtService.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.SecretKey.Session == "" {
		return nil, errors.New("jwt secret must be provided")
	}

	return newJWTService([]byte(cfg.SecretKey.Session), tokenTTL, time.Now), nil
}

func newJWTService(secret []byte, ttl time.Duration, now func() time.Time) *jwtService {
	return &jwtService{secret: secret, ttl: ttl, now: now}
}

// IssueToken signs an HS256 token carrying the user id as subject and the email.
func (s *jwtService) IssueToken(userID uuid.UUID, email string) (string, error) {
	issuedAt := s.now()
	claims := service.Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", errors.Wrap(domainerrors.ErrTokenIssueFailed.WithDetails(err.Error()), "sign token")
	}

	return signed, nil
}

// ValidateToken checks the signature, algorithm and expiry, then resolves the subject.
func (s *jwtService) ValidateToken(tokenString string) (*service.Claims, error) {
	if tokenString == "" {
		return nil, domainerrors.ErrInvalidToken
	}

	claims := &service.Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		// Ensure the signing method is what we expect.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return s.secret, nil
	},
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil || !token.Valid {
		return nil, domainerrors.ErrInvalidToken.WithDetails(errorDetail(err))
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, domainerrors.ErrInvalidToken.WithDetails("invalid subject")
	}
	claims.UserID = userID

	return claims, nil
}

// TTL returns the fixed token lifetime.
func (s *jwtService) TTL() time.Duration {
	return s.ttl
}

func errorDetail(err error) string {
	if err == nil {
		return "token not valid"
	}

	return err.Error()
}
