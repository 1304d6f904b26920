// Package mailer delivers account-lifecycle emails. Delivery is a collaborator
// of the account service, never part of its atomic state transitions: a
// persisted token whose email never arrives is useless and ages out on its
// own.
package mailer

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
)

// Mailer sends account-lifecycle notifications.
type Mailer interface {
	SendVerification(ctx context.Context, email, token string) error
	SendPasswordReset(ctx context.Context, email, token string) error
}

func verifyURL(baseURL, token string) string {
	return fmt.Sprintf("%s/verify?token=%s", baseURL, token)
}

func resetURL(baseURL, token string) string {
	return fmt.Sprintf("%s/reset-password?token=%s", baseURL, token)
}

// LogMailer is the development fallback used when SMTP is not configured. It
// logs the links instead of delivering them.
type LogMailer struct {
	BaseURL string
}

func (m *LogMailer) SendVerification(_ context.Context, email, token string) error {
	logrus.WithFields(logrus.Fields{
		"to":   email,
		"link": verifyURL(m.BaseURL, token),
	}).Info("verification_email_logged")
	return nil
}

func (m *LogMailer) SendPasswordReset(_ context.Context, email, token string) error {
	logrus.WithFields(logrus.Fields{
		"to":   email,
		"link": resetURL(m.BaseURL, token),
	}).Info("password_reset_email_logged")
	return nil
}
