package notify

import (
	"context"
	"fmt"

	"github.com/wneessen/go-mail"
)

const emailSubject = "Résultat API conditionnelle ultime PRO 2025"

// EmailConfig carries the SMTP settings for the email sink.
type EmailConfig struct {
	From     string
	To       string
	Server   string
	Port     int
	User     string
	Password string
}

// EmailSink sends the extracted value by email over SMTP with STARTTLS.
type EmailSink struct {
	cfg EmailConfig
}

// NewEmailSink creates an EmailSink.
func NewEmailSink(cfg EmailConfig) *EmailSink {
	return &EmailSink{cfg: cfg}
}

func (s *EmailSink) Name() string { return "email" }

// Notify composes and sends one message. The connection is dialed per call so
// a dead SMTP server only costs the iteration that hits it.
func (s *EmailSink) Notify(ctx context.Context, value float64) error {
	msg := mail.NewMsg()
	if err := msg.From(s.cfg.From); err != nil {
		return fmt.Errorf("invalid sender %q: %w", s.cfg.From, err)
	}
	if err := msg.To(s.cfg.To); err != nil {
		return fmt.Errorf("invalid recipient %q: %w", s.cfg.To, err)
	}
	msg.Subject(emailSubject)
	msg.SetBodyString(mail.TypeTextPlain, fmt.Sprintf("Valeur extraite : %v", value))

	client, err := mail.NewClient(s.cfg.Server,
		mail.WithPort(s.cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(s.cfg.User),
		mail.WithPassword(s.cfg.Password),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return fmt.Errorf("creating SMTP client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("sending mail via %s:%d: %w", s.cfg.Server, s.cfg.Port, err)
	}
	return nil
}
