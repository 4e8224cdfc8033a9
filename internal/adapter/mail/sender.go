package mail

import (
	"context"
	"fmt"
	"log/slog"

	gomail "github.com/wneessen/go-mail"

	"github.com/polkiloo/storefront/internal/domain/model"
)

// Sender delivers a single notification.
type Sender interface {
	Send(ctx context.Context, msg model.Notification) error
}

// SMTPSender sends plain text mail through an SMTP relay.
type SMTPSender struct {
	client *gomail.Client
	from   string
}

// SMTPOptions configures SMTPSender.
type SMTPOptions struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// NewSMTPSender builds an SMTP client. Credentials switch on LOGIN auth and mandatory TLS.
func NewSMTPSender(opts SMTPOptions) (*SMTPSender, error) {
	clientOpts := []gomail.Option{gomail.WithPort(opts.Port)}
	if opts.Username != "" {
		clientOpts = append(clientOpts,
			gomail.WithSMTPAuth(gomail.SMTPAuthLogin),
			gomail.WithUsername(opts.Username),
			gomail.WithPassword(opts.Password),
			gomail.WithTLSPolicy(gomail.TLSMandatory),
		)
	} else {
		clientOpts = append(clientOpts, gomail.WithTLSPolicy(gomail.TLSOpportunistic))
	}

	client, err := gomail.NewClient(opts.Host, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("create smtp client: %w", err)
	}
	return &SMTPSender{client: client, from: opts.From}, nil
}

// Send dials the relay and delivers msg.
func (s *SMTPSender) Send(ctx context.Context, msg model.Notification) error {
	m, err := buildMessage(s.from, msg)
	if err != nil {
		return err
	}
	if err := s.client.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("send mail to %s: %w", msg.To, err)
	}
	return nil
}

func buildMessage(from string, msg model.Notification) (*gomail.Msg, error) {
	m := gomail.NewMsg()
	if err := m.From(from); err != nil {
		return nil, fmt.Errorf("invalid sender: %w", err)
	}
	if err := m.To(msg.To); err != nil {
		return nil, fmt.Errorf("invalid recipient: %w", err)
	}
	m.Subject(msg.Subject)
	m.SetBodyString(gomail.TypeTextPlain, msg.Body)
	return m, nil
}

// LogSender writes notifications to the log when no SMTP relay is configured.
type LogSender struct {
	logger *slog.Logger
}

// NewLogSender constructs LogSender.
func NewLogSender(logger *slog.Logger) *LogSender {
	return &LogSender{logger: logger}
}

func (s *LogSender) Send(_ context.Context, msg model.Notification) error {
	s.logger.Info("mail not sent, smtp disabled",
		slog.String("to", msg.To),
		slog.String("subject", msg.Subject),
		slog.String("body", msg.Body),
	)
	return nil
}
