package service

import (
	"context"
	"fmt"

	"github.com/dtroode/idwallet-server/internal/logger"
	"github.com/dtroode/idwallet-server/internal/model"
)

// TokenService issues and resolves access tokens. It composes the TokenManager.
type TokenService struct {
	manager model.TokenManager
	logger  *logger.Logger
}

func NewTokenService(manager model.TokenManager, logger *logger.Logger) *TokenService {
	return &TokenService{manager: manager, logger: logger}
}

// Issue signs an access token for the account.
func (s *TokenService) Issue(ctx context.Context, account model.Account) (string, error) {
	access, err := s.manager.GenerateAccessToken(model.ClaimsFor(account))
	if err != nil {
		s.logger.Error("Token service: failed to sign access token",
			"account_id", account.ID,
			"error", err.Error())
		return "", fmt.Errorf("issue access: %w", err)
	}
	return access, nil
}

// GetClaims validates the token and returns its claims.
func (s *TokenService) GetClaims(ctx context.Context, token string) (model.Claims, error) {
	claims, err := s.manager.ParseAccessToken(token)
	if err != nil {
		return model.Claims{}, err
	}
	if claims.AccountID == 0 {
		return model.Claims{}, fmt.Errorf("token carries no account id")
	}
	return claims, nil
}
