// Package mailer отправляет письма с результатами тестов через SMTP.
package mailer

import (
	"crypto/tls"
	"fmt"
	"mime"
	"net"
	"net/smtp"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"daily-practice-bot/internal/config"
)

// Mailer доставляет HTML-письмо получателю.
type Mailer interface {
	Send(recipient, subject, htmlBody string) error
}

// SMTP is the production Mailer: dial, STARTTLS, PLAIN auth, one message per
// connection. Failures are returned to the caller, never retried here.
type SMTP struct {
	cfg config.SMTPConfig
	log zerolog.Logger
}

func NewSMTP(cfg config.SMTPConfig, log zerolog.Logger) *SMTP {
	return &SMTP{cfg: cfg, log: log.With().Str("component", "mailer").Logger()}
}

func (m *SMTP) Send(recipient, subject, htmlBody string) error {
	addr := m.cfg.Host + ":" + m.cfg.Port

	conn, err := net.DialTimeout("tcp", addr, 15*time.Second)
	if err != nil {
		return fmt.Errorf("dial smtp server: %w", err)
	}
	client, err := smtp.NewClient(conn, m.cfg.Host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("create smtp client: %w", err)
	}
	defer client.Close()

	if ok, _ := client.Extension("STARTTLS"); !ok {
		return fmt.Errorf("smtp server does not support STARTTLS")
	}
	tlsConfig := &tls.Config{
		ServerName: m.cfg.Host,
		MinVersion: tls.VersionTLS12,
	}
	if err = client.StartTLS(tlsConfig); err != nil {
		return fmt.Errorf("start tls: %w", err)
	}

	auth := smtp.PlainAuth("", m.cfg.User, m.cfg.Password, m.cfg.Host)
	if err = client.Auth(auth); err != nil {
		return fmt.Errorf("smtp auth: %w", err)
	}

	if err = client.Mail(m.cfg.User); err != nil {
		return fmt.Errorf("smtp mail from: %w", err)
	}
	if err = client.Rcpt(recipient); err != nil {
		return fmt.Errorf("smtp rcpt to: %w", err)
	}
	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("smtp data: %w", err)
	}
	if _, err = w.Write(buildMessage(m.cfg, recipient, subject, htmlBody)); err != nil {
		w.Close()
		return fmt.Errorf("write message: %w", err)
	}
	if err = w.Close(); err != nil {
		return fmt.Errorf("close message: %w", err)
	}
	if err = client.Quit(); err != nil {
		m.log.Warn().Err(err).Msg("smtp quit failed after successful send")
	}
	m.log.Info().Str("to", recipient).Str("subject", subject).Msg("email sent")
	return nil
}

func buildMessage(cfg config.SMTPConfig, recipient, subject, htmlBody string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s <%s>\r\n", mime.QEncoding.Encode("utf-8", cfg.SenderName), cfg.User)
	fmt.Fprintf(&b, "To: %s\r\n", recipient)
	fmt.Fprintf(&b, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", subject))
	fmt.Fprintf(&b, "Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"utf-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(htmlBody)
	b.WriteString("\r\n")
	return []byte(b.String())
}
