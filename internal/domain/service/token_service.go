package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims is the verified content of a session token.
type Claims struct {
	UserID uuid.UUID `json:"-"`
	Email  string    `json:"email"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies stateless session tokens.
type TokenService interface {
	// IssueToken signs a token for the user that expires after TTL.
	IssueToken(userID uuid.UUID, email string) (string, error)

	// ValidateToken returns the claims of a well-formed, correctly signed,
	// unexpired token, or domainerrors.ErrInvalidToken.
	ValidateToken(tokenString string) (*Claims, error)

	// TTL returns the fixed token lifetime.
	TTL() time.Duration
}
