package mailer

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"
)

// SMTPMailer delivers mail through a plain SMTP relay with AUTH PLAIN over
// STARTTLS (the default for port 587 relays).
type SMTPMailer struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
	BaseURL  string
}

func (m *SMTPMailer) addr() string {
	return fmt.Sprintf("%s:%s", m.Host, m.Port)
}

func (m *SMTPMailer) auth() smtp.Auth {
	if m.Username == "" {
		return nil
	}
	return smtp.PlainAuth("", m.Username, m.Password, m.Host)
}

// fromAddress extracts the bare address from a "Name <addr>" header value.
func (m *SMTPMailer) fromAddress() string {
	from := strings.TrimSpace(m.From)
	if open := strings.LastIndex(from, "<"); open >= 0 {
		if close := strings.LastIndex(from, ">"); close > open {
			return from[open+1 : close]
		}
	}
	return from
}

func (m *SMTPMailer) send(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := strings.Join([]string{
		"From: " + m.From,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=utf-8",
		"",
		body,
	}, "\r\n")

	if err := smtp.SendMail(m.addr(), m.auth(), m.fromAddress(), []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("send mail to %s: %w", to, err)
	}
	return nil
}

func (m *SMTPMailer) SendVerification(ctx context.Context, email, token string) error {
	body := fmt.Sprintf(
		"Welcome to AquaLeaf!\n\nPlease verify by visiting: %s\n",
		verifyURL(m.BaseURL, token),
	)
	return m.send(ctx, email, "Verify your AquaLeaf account", body)
}

func (m *SMTPMailer) SendPasswordReset(ctx context.Context, email, token string) error {
	body := fmt.Sprintf(
		"You requested a password reset for your AquaLeaf account. Click the link below to reset your password:\n\n%s\n\nIf you did not request this, you can safely ignore this email.\n",
		resetURL(m.BaseURL, token),
	)
	return m.send(ctx, email, "AquaLeaf Password Reset", body)
}
