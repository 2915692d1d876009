package token

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/dtroode/idwallet-server/internal/model"
)

// Claims represents JWT claims carrying the account identity.
type Claims struct {
	jwt.RegisteredClaims
	AccountID  int64      `json:"account_id"`
	Email      string     `json:"email"`
	Identifier string     `json:"identifier,omitempty"`
	Role       model.Role `json:"role"`
	TokenType  string     `json:"typ"`
}

// JWT implements TokenManager backed by symmetric HMAC.
type JWT struct {
	secretKey string
	ttl       time.Duration
	now       func() time.Time
}

// NewJWT creates a new JWT token manager with the provided secret key and token lifetime.
func NewJWT(secretKey string, ttl time.Duration) *JWT {
	return &JWT{secretKey: secretKey, ttl: ttl, now: time.Now}
}

const typeAccess = "access"

// GenerateAccessToken creates an access token valid for the configured TTL.
func (j *JWT) GenerateAccessToken(claims model.Claims) (string, error) {
	now := j.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   strconv.FormatInt(claims.AccountID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.ttl)),
		},
		AccountID:  claims.AccountID,
		Email:      claims.Email,
		Identifier: claims.Identifier,
		Role:       claims.Role,
		TokenType:  typeAccess,
	})

	tokenString, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}

	return tokenString, nil
}

// ParseAccessToken validates an access token and returns its claims.
func (j *JWT) ParseAccessToken(tokenString string) (model.Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return []byte(j.secretKey), nil
	}, jwt.WithTimeFunc(j.now))
	if err != nil {
		return model.Claims{}, fmt.Errorf("failed to parse access token: %w", err)
	}
	if !token.Valid {
		return model.Claims{}, fmt.Errorf("access token is invalid")
	}
	if claims.TokenType != typeAccess {
		return model.Claims{}, fmt.Errorf("token type mismatch: %s", claims.TokenType)
	}

	return model.Claims{
		AccountID:  claims.AccountID,
		Email:      claims.Email,
		Identifier: claims.Identifier,
		Role:       claims.Role,
	}, nil
}
