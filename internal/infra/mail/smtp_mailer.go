// Package mail implements the verification-code notifier over SMTP.
package mail

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/ahmedhalac/brainstack-backend/config"
	"github.com/ahmedhalac/brainstack-backend/internal/domain/service"
)

const dialTimeout = 8 * time.Second

// smtpMailer delivers verification codes over SMTP with STARTTLS.
// Every connection carries a deadline so a stalled server cannot hang the
// calling request beyond the configured timeout.
type smtpMailer struct {
	cfg    *config.MailConfig
	logger *slog.Logger
}

// NewSMTPMailer returns the implementation as a service.Notifier interface.
func NewSMTPMailer(cfg *config.Config, logger *slog.Logger) (service.Notifier, error) {
	if cfg.Mail == nil || cfg.Mail.Host == "" {
		return nil, errors.New("mail configuration must be provided")
	}

	return &smtpMailer{cfg: cfg.Mail, logger: logger}, nil
}

// SendVerificationCode emails the plaintext code to the given address.
func (m *smtpMailer) SendVerificationCode(ctx context.Context, email, code string) error {
	fromHeader := m.cfg.From
	if m.cfg.FromName != "" {
		fromHeader = fmt.Sprintf("%s <%s>", m.cfg.FromName, m.cfg.From)
	}

	subject := m.cfg.Subject
	if subject == "" {
		subject = "Your Verification Code"
	}

	msg := strings.Join([]string{
		fmt.Sprintf("From: %s", fromHeader),
		fmt.Sprintf("To: %s", email),
		fmt.Sprintf("Subject: %s", subject),
		"MIME-Version: 1.0",
		`Content-Type: text/html; charset="UTF-8"`,
		"",
		fmt.Sprintf("<p>Your verification code is <strong>%s</strong></p>", code),
	}, "\r\n")

	m.logger.Debug("Sending verification email", "to", email, "host", m.cfg.Host)

	if err := m.send(ctx, email, []byte(msg)); err != nil {
		return errors.Wrap(err, "failed to send verification email")
	}

	return nil
}

func (m *smtpMailer) send(ctx context.Context, to string, msg []byte) error {
	addr := net.JoinHostPort(m.cfg.Host, strconv.Itoa(m.cfg.Port))

	dialer := &net.Dialer{Timeout: dialTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return err
	}
	// Deadline covers the whole SMTP conversation, not just the dial.
	deadline := time.Now().Add(m.cfg.Timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}
	_ = conn.SetDeadline(deadline)

	c, err := smtp.NewClient(conn, m.cfg.Host)
	if err != nil {
		return err
	}
	defer func() { _ = c.Quit() }()

	if ok, _ := c.Extension("STARTTLS"); ok {
		if err := c.StartTLS(&tls.Config{ServerName: m.cfg.Host}); err != nil {
			return err
		}
	}

	if m.cfg.Username != "" {
		auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
		if err := c.Auth(auth); err != nil {
			return err
		}
	}

	if err := c.Mail(m.cfg.From); err != nil {
		return err
	}
	if err := c.Rcpt(to); err != nil {
		return err
	}

	w, err := c.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		_ = w.Close()

		return err
	}

	return w.Close()
}
