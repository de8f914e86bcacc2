package notification

import (
	"context"
	"fmt"
	"log/slog"

	"rentdesk/internal/pkg/config"
	"rentdesk/internal/pkg/errs"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Sender delivers a single transactional email.
type Sender interface {
	Send(ctx context.Context, toName, toAddress, subject, body string) error
}

type SendGridSender struct {
	client *sendgrid.Client
	from   *mail.Email
}

func NewSendGridSender(cfg config.MailConfig) *SendGridSender {
	return &SendGridSender{
		client: sendgrid.NewSendClient(cfg.SendGridAPIKey),
		from:   mail.NewEmail(cfg.FromName, cfg.FromAddress),
	}
}

func (s *SendGridSender) Send(ctx context.Context, toName, toAddress, subject, body string) error {
	to := mail.NewEmail(toName, toAddress)
	message := mail.NewSingleEmail(s.from, subject, to, body, body)

	resp, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		return errs.Wrap(err, "failed to send email")
	}
	if resp.StatusCode >= 400 {
		return errs.New(fmt.Sprintf("sendgrid rejected email: status %d", resp.StatusCode))
	}
	return nil
}

// NoopSender is used when no SendGrid key is configured, e.g. local dev.
type NoopSender struct{}

func (NoopSender) Send(_ context.Context, toName, toAddress, subject, _ string) error {
	slog.Info("email suppressed (no mail provider configured)",
		"to_name", toName, "to_address", toAddress, "subject", subject)
	return nil
}

// NewSender picks the SendGrid sender when a key is present.
func NewSender(cfg config.MailConfig) Sender {
	if cfg.SendGridAPIKey == "" {
		return NoopSender{}
	}
	return NewSendGridSender(cfg)
}
