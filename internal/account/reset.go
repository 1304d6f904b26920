package account

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"aqualeaf/internal/auth"
	"aqualeaf/internal/model"

	"github.com/sirupsen/logrus"
)

// RequestPasswordReset starts the two-phase recovery protocol. The outcome is
// identical whether or not the email maps to an account, so callers cannot
// probe for registered identities. When the account exists, a fresh token
// with an absolute expiry replaces any earlier one, and email delivery
// failure is swallowed.
func (s *Service) RequestPasswordReset(ctx context.Context, email string) error {
	farm, err := s.repo.FindFarmByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("lookup account: %w", err)
	}

	token, err := auth.NewOpaqueToken()
	if err != nil {
		return err
	}
	expires := time.Now().UTC().Add(s.resetTTL)

	if err := s.repo.SetResetToken(ctx, farm.FarmID, token, expires); err != nil {
		return fmt.Errorf("store reset token: %w", err)
	}

	// A persisted token whose email never arrives is unusable and ages out
	// within the reset window.
	if err := s.mail.SendPasswordReset(ctx, farm.Email, token); err != nil {
		logrus.WithError(err).WithField("email", farm.Email).Error("password reset email failed")
	}
	return nil
}

// ResetPassword redeems a reset token and replaces the credential. Token and
// expiry are cleared in the same atomic update as the credential write, so a
// consumed token can never be redeemed twice.
func (s *Service) ResetPassword(ctx context.Context, token, newPassword string) error {
	if strings.TrimSpace(token) == "" {
		return ErrInvalidToken
	}

	farm, err := s.repo.FindFarmByResetToken(ctx, token)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return ErrInvalidToken
		}
		return fmt.Errorf("lookup reset token: %w", err)
	}
	if farm.ResetExpires == nil || farm.ResetExpires.Before(time.Now()) {
		return ErrExpired
	}

	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	ok, err := s.repo.ResetFarmPassword(ctx, token, hash)
	if err != nil {
		return fmt.Errorf("reset password: %w", err)
	}
	if !ok {
		// Consumed or rotated between lookup and update.
		return ErrInvalidToken
	}
	return nil
}
