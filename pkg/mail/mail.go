package mail

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"html/template"

	"fullmoon/pkg/logger"

	gomail "gopkg.in/gomail.v2"
)

type Message struct {
	To      string
	ReplyTo string
	Subject string
	HTML    string
}

type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

type SMTPMailer struct {
	dialer dialer
	from   string
	log    *logger.Logger
}

func NewSMTPMailer(cfg SMTPConfig, log *logger.Logger) *SMTPMailer {
	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	d.TLSConfig = &tls.Config{
		ServerName: cfg.Host,
	}
	return &SMTPMailer{
		dialer: d,
		from:   cfg.From,
		log:    log,
	}
}

func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	gm := gomail.NewMessage()
	gm.SetHeader("From", m.from)
	gm.SetHeader("To", msg.To)
	if msg.ReplyTo != "" {
		gm.SetHeader("Reply-To", msg.ReplyTo)
	}
	gm.SetHeader("Subject", msg.Subject)
	gm.SetBody("text/html", msg.HTML)

	if err := m.dialer.DialAndSend(gm); err != nil {
		m.log.Error("Failed to send email", "to", msg.To, "subject", msg.Subject, "error", err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	m.log.Info("Email sent", "to", msg.To, "subject", msg.Subject)
	return nil
}

// LogMailer stands in when SMTP is not configured.
type LogMailer struct {
	log *logger.Logger
}

func NewLogMailer(log *logger.Logger) *LogMailer {
	return &LogMailer{log: log}
}

func (m *LogMailer) Send(_ context.Context, msg Message) error {
	m.log.Info("SMTP not configured, email not sent",
		"to", msg.To,
		"subject", msg.Subject,
	)
	return nil
}

func render(t *template.Template, data any) (string, error) {
	var body bytes.Buffer
	if err := t.Execute(&body, data); err != nil {
		return "", fmt.Errorf("failed to execute email template %s: %w", t.Name(), err)
	}
	return body.String(), nil
}
