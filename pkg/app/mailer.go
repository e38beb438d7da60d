package app

import (
	"fullmoon/pkg/config"
	"fullmoon/pkg/mail"
)

// NewMailer sends through SMTP when a host is configured and otherwise
// only logs outgoing mail.
func NewMailer(cfg *config.Config) mail.Mailer {
	if !cfg.MailEnabled() {
		cfg.Log.Warn("SMTP not configured, outgoing mail will only be logged")
		return mail.NewLogMailer(cfg.Log)
	}
	cfg.Log.Info("SMTP mailer configured", "host", cfg.SMTPHost, "port", cfg.SMTPPort)
	return mail.NewSMTPMailer(mail.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.MailFrom,
	}, cfg.Log)
}
