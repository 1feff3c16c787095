// Package email sends transactional mail over SMTP.
package email

import (
	"context"
	"fmt"

	"pago_backend/platform/config"
	"pago_backend/platform/logger"

	"github.com/wneessen/go-mail"
	"golang.org/x/time/rate"
)

// Message is one outgoing email.
type Message struct {
	To       string
	Subject  string
	HTMLBody string
	TextBody string
}

// Sender delivers messages. Implementations must be safe for
// concurrent use.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// NoopSender is used when SMTP is not configured. It logs instead of
// sending so development environments still show what would go out.
type NoopSender struct {
	log *logger.Logger
}

// NewNoopSender creates a NoopSender.
func NewNoopSender(log *logger.Logger) *NoopSender {
	return &NoopSender{log: log}
}

// Send implements Sender.
func (s *NoopSender) Send(_ context.Context, msg Message) error {
	s.log.Info("email suppressed, smtp not configured", "to", msg.To, "subject", msg.Subject)
	return nil
}

// SMTPSender delivers through the configured SMTP relay, throttled so
// a submission burst cannot trip the provider's sending limits.
type SMTPSender struct {
	client   *mail.Client
	fromName string
	fromAddr string
	limiter  *rate.Limiter
	log      *logger.Logger
}

// NewSMTPSender creates an SMTPSender.
func NewSMTPSender(cfg config.EmailConfig, log *logger.Logger) (*SMTPSender, error) {
	opts := []mail.Option{
		mail.WithPort(cfg.GetSMTPPort()),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if cfg.GetSMTPUsername() != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.GetSMTPUsername()),
			mail.WithPassword(cfg.GetSMTPPassword()),
		)
	}

	client, err := mail.NewClient(cfg.GetSMTPHost(), opts...)
	if err != nil {
		return nil, fmt.Errorf("create smtp client: %w", err)
	}

	return &SMTPSender{
		client:   client,
		fromName: cfg.GetEmailFromName(),
		fromAddr: cfg.GetEmailFromAddress(),
		// One message per second with a small burst allowance.
		limiter: rate.NewLimiter(rate.Limit(1), 5),
		log:     log,
	}, nil
}

// Send implements Sender.
func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("throttle wait: %w", err)
	}

	m := mail.NewMsg()
	if err := m.FromFormat(s.fromName, s.fromAddr); err != nil {
		return fmt.Errorf("set sender: %w", err)
	}
	if err := m.To(msg.To); err != nil {
		return fmt.Errorf("set recipient: %w", err)
	}
	m.Subject(msg.Subject)

	if msg.TextBody != "" {
		m.SetBodyString(mail.TypeTextPlain, msg.TextBody)
	}
	if msg.HTMLBody != "" {
		if msg.TextBody != "" {
			m.AddAlternativeString(mail.TypeTextHTML, msg.HTMLBody)
		} else {
			m.SetBodyString(mail.TypeTextHTML, msg.HTMLBody)
		}
	}

	if err := s.client.DialAndSendWithContext(ctx, m); err != nil {
		s.log.EmailError("smtp", msg.To, err)
		return fmt.Errorf("send email: %w", err)
	}
	return nil
}
