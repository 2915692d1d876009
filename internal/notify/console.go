package notify

import (
	"context"

	"github.com/dtroode/idwallet-server/internal/logger"
	"github.com/dtroode/idwallet-server/internal/model"
)

var _ model.Notifier = (*Console)(nil)

// Console writes codes to the log instead of sending mail.
type Console struct {
	logger *logger.Logger
}

func NewConsole(logger *logger.Logger) *Console {
	return &Console{logger: logger}
}

func (c *Console) SendCode(ctx context.Context, email string, code string, purpose model.CodePurpose) error {
	c.logger.InfoContext(ctx, "Notifier: verification code", "to", email, "subject", subject, "purpose", purpose, "code", code)
	return nil
}
