package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/wneessen/go-mail"

	"github.com/dtroode/idwallet-server/internal/model"
)

var _ model.Notifier = (*SMTP)(nil)

type sender interface {
	DialAndSendWithContext(ctx context.Context, messages ...*mail.Msg) error
}

// SMTPConfig holds relay settings.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	UseSSL   bool
}

// SMTP sends codes through an SMTP relay.
type SMTP struct {
	client sender
	from   string
	ttl    time.Duration
}

// NewSMTP builds an SMTP notifier. ttl is printed in the message body.
func NewSMTP(cfg SMTPConfig, from string, ttl time.Duration) (*SMTP, error) {
	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithTimeout(15 * time.Second),
	}
	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}
	if cfg.UseSSL {
		opts = append(opts, mail.WithSSL())
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSOpportunistic))
	}

	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create smtp client: %w", err)
	}

	return newSMTPWithSender(client, from, ttl), nil
}

func newSMTPWithSender(client sender, from string, ttl time.Duration) *SMTP {
	return &SMTP{client: client, from: from, ttl: ttl}
}

func (s *SMTP) SendCode(ctx context.Context, email string, code string, purpose model.CodePurpose) error {
	body, err := renderBody(code, purpose, s.ttl)
	if err != nil {
		return err
	}

	msg := mail.NewMsg()
	if err := msg.From(s.from); err != nil {
		return fmt.Errorf("invalid sender address: %w", err)
	}
	if err := msg.To(email); err != nil {
		return fmt.Errorf("invalid recipient address: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, body)

	if err := s.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("failed to send verification email: %w", err)
	}

	return nil
}
