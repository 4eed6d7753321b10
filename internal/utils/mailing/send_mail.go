package mailing

import (
	"Hostel-Food-Ordering/internal/utils"

	"gopkg.in/gomail.v2"
)

type (
	Mailer interface {
		Send(toEmail string, subject string, body string) error
	}

	// MailerFunc adapts a plain function to Mailer.
	MailerFunc func(toEmail string, subject string, body string) error

	SMTPConfig struct {
		Host       string
		Port       int
		SenderName string
		Email      string
		Password   string
	}

	smtpMailer struct {
		dialer *gomail.Dialer
		from   string
		sender string
	}
)

func (f MailerFunc) Send(toEmail string, subject string, body string) error {
	return f(toEmail, subject, body)
}

// LoadSMTPConfig reads the SMTP_* keys. ok is false when no host is configured.
func LoadSMTPConfig() (cfg SMTPConfig, ok bool) {
	cfg = SMTPConfig{
		Host:       utils.GetConfig("SMTP_HOST"),
		Port:       utils.GetConfigInt("SMTP_PORT", 587),
		SenderName: utils.GetConfig("SMTP_SENDER_NAME"),
		Email:      utils.GetConfig("SMTP_AUTH_EMAIL"),
		Password:   utils.GetConfig("SMTP_AUTH_PASSWORD"),
	}
	return cfg, cfg.Host != ""
}

func NewSMTPMailer(cfg SMTPConfig) Mailer {
	return &smtpMailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Email, cfg.Password),
		from:   cfg.Email,
		sender: cfg.SenderName,
	}
}

func (m *smtpMailer) Send(toEmail string, subject string, body string) error {
	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.from, m.sender)
	msg.SetHeader("To", toEmail)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)

	return m.dialer.DialAndSend(msg)
}
