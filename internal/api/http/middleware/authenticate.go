package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/dtroode/idwallet-server/internal/api/http/handler"
	"github.com/dtroode/idwallet-server/internal/apierror"
	"github.com/dtroode/idwallet-server/internal/logger"
	"github.com/dtroode/idwallet-server/internal/model"
)

// TokenService resolves claims from bearer tokens.
type TokenService interface {
	GetClaims(ctx context.Context, token string) (model.Claims, error)
}

// Authenticate validates bearer tokens and injects the claims into the request context.
type Authenticate struct {
	tokenService   TokenService
	contextManager model.ContextManager
	logger         *logger.Logger
}

func NewAuthenticate(tokenService TokenService, contextManager model.ContextManager, logger *logger.Logger) *Authenticate {
	return &Authenticate{tokenService: tokenService, contextManager: contextManager, logger: logger}
}

// Handle rejects requests without a valid "Authorization: Bearer" header.
func (m *Authenticate) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := m.authenticate(r.Context(), bearerToken(r))
		if err != nil {
			handler.WriteError(w, m.logger, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(m.contextManager.SetClaimsToContext(r.Context(), claims)))
	})
}

func (m *Authenticate) authenticate(ctx context.Context, token string) (model.Claims, error) {
	if token == "" {
		return model.Claims{}, apierror.NewErrMissingAuthorizationToken()
	}

	claims, err := m.tokenService.GetClaims(ctx, token)
	if err != nil {
		m.logger.Debug("Authenticate middleware: token rejected",
			"error", err.Error())
		return model.Claims{}, apierror.NewErrInvalidAuthorizationToken()
	}

	return claims, nil
}

func bearerToken(r *http.Request) string {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
