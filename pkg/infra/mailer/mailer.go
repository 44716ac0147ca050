package mailer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/NeuralTrust/SafeChat/pkg/config"
	"github.com/sirupsen/logrus"
	"github.com/wneessen/go-mail"
)

var ErrNoRecipients = errors.New("no recipients")

//go:generate mockery --name=Mailer --dir=. --output=./mocks --filename=mailer_mock.go --case=underscore --with-expecter
type Mailer interface {
	Send(ctx context.Context, to []string, subject, body string) error
}

type deliverer interface {
	DialAndSendWithContext(ctx context.Context, messages ...*mail.Msg) error
}

type smtpMailer struct {
	from   string
	logger *logrus.Logger
	client deliverer
}

// NewSMTPMailer returns a mailer that drops every message when no host is configured.
func NewSMTPMailer(cfg config.SMTPConfig, logger *logrus.Logger) (Mailer, error) {
	m := &smtpMailer{from: cfg.From, logger: logger}
	if cfg.Host == "" {
		return m, nil
	}

	opts := []mail.Option{mail.WithTLSPolicy(mail.TLSOpportunistic)}
	if cfg.Port > 0 {
		opts = append(opts, mail.WithPort(cfg.Port))
	}
	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}
	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create smtp client: %w", err)
	}
	m.client = client
	return m, nil
}

func (m *smtpMailer) Send(ctx context.Context, to []string, subject, body string) error {
	if m.client == nil {
		m.logger.WithField("subject", subject).Debug("smtp host not configured, email skipped")
		return nil
	}
	if len(to) == 0 {
		return ErrNoRecipients
	}

	msg, err := m.message(to, subject, body)
	if err != nil {
		return err
	}
	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func (m *smtpMailer) message(to []string, subject, body string) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return nil, fmt.Errorf("invalid sender address: %w", err)
	}
	if err := msg.To(to...); err != nil {
		return nil, fmt.Errorf("invalid recipient address: %w", err)
	}
	msg.Subject(sanitizeHeader(subject))
	msg.SetDate()
	msg.SetBodyString(mail.TypeTextPlain, body)
	return msg, nil
}

func sanitizeHeader(v string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(v)
}
