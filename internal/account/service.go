// Package account implements the account lifecycle state machine: farm
// registration, email verification, login, password recovery, and
// administrator-driven status transitions. This service is the sole writer of
// the account status field; every security-relevant transition attempt is
// mirrored into the audit trail.
package account

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"aqualeaf/internal/audit"
	"aqualeaf/internal/auth"
	"aqualeaf/internal/entity"
	"aqualeaf/internal/mailer"
	"aqualeaf/internal/model"

	"github.com/sirupsen/logrus"
)

// Service orchestrates the account lifecycle.
type Service struct {
	repo     model.Repository
	audit    *audit.Recorder
	mail     mailer.Mailer
	sessions *auth.Manager

	bcryptCost      int
	verificationTTL time.Duration // 0 disables verification-token expiry
	resetTTL        time.Duration
}

// Options tunes token lifetimes and hashing cost.
type Options struct {
	BcryptCost      int
	VerificationTTL time.Duration
	ResetTTL        time.Duration
}

// NewService wires the account state machine.
func NewService(repo model.Repository, recorder *audit.Recorder, mail mailer.Mailer, sessions *auth.Manager, opts Options) *Service {
	if opts.BcryptCost <= 0 {
		opts.BcryptCost = auth.DefaultBcryptCost
	}
	if opts.ResetTTL <= 0 {
		opts.ResetTTL = time.Hour
	}
	return &Service{
		repo:            repo,
		audit:           recorder,
		mail:            mail,
		sessions:        sessions,
		bcryptCost:      opts.BcryptCost,
		verificationTTL: opts.VerificationTTL,
		resetTTL:        opts.ResetTTL,
	}
}

// RegisterResult reports the outcome of a successful registration. EmailSent
// is false when the account was created but the verification email could not
// be delivered; the client is expected to offer a resend.
type RegisterResult struct {
	FarmID    uint
	EmailSent bool
}

// Register creates a farm account in the unverified state and dispatches the
// verification email. Delivery failure is not an error. The duplicate check
// runs immediately before the insert; the narrow race left open is absorbed
// by the unique constraints, which surface as ErrConflict.
func (s *Service) Register(ctx context.Context, req entity.RegisterRequest) (RegisterResult, error) {
	farmName := strings.TrimSpace(req.FarmName)
	email := strings.TrimSpace(req.Email)

	if _, err := s.repo.FindFarmByIdentifier(ctx, email); err == nil {
		return RegisterResult{}, ErrConflict
	} else if !errors.Is(err, model.ErrNotFound) {
		return RegisterResult{}, fmt.Errorf("check existing account: %w", err)
	}
	if _, err := s.repo.FindFarmByIdentifier(ctx, farmName); err == nil {
		return RegisterResult{}, ErrConflict
	} else if !errors.Is(err, model.ErrNotFound) {
		return RegisterResult{}, fmt.Errorf("check existing account: %w", err)
	}

	hash, err := auth.HashPassword(req.Password, s.bcryptCost)
	if err != nil {
		return RegisterResult{}, fmt.Errorf("hash password: %w", err)
	}

	token, err := auth.NewOpaqueToken()
	if err != nil {
		return RegisterResult{}, err
	}

	farm := &entity.FarmAccount{
		FarmName:          farmName,
		Location:          strings.TrimSpace(req.Location),
		Email:             email,
		PasswordHash:      hash,
		Status:            entity.StatusUnverified,
		VerificationToken: &token,
	}
	if s.verificationTTL > 0 {
		expires := time.Now().UTC().Add(s.verificationTTL)
		farm.VerificationExpires = &expires
	}

	if err := s.repo.CreateFarm(ctx, farm); err != nil {
		if errors.Is(err, model.ErrDuplicate) {
			return RegisterResult{}, ErrConflict
		}
		return RegisterResult{}, fmt.Errorf("create account: %w", err)
	}

	result := RegisterResult{FarmID: farm.FarmID, EmailSent: true}
	if err := s.mail.SendVerification(ctx, email, token); err != nil {
		logrus.WithError(err).WithField("email", email).Error("verification email failed")
		result.EmailSent = false
	}
	return result, nil
}

// Verify consumes a verification token, moving the account from unverified to
// active. Consumption is atomic with the transition and fails closed: any
// non-matching condition collapses into ErrInvalidToken.
func (s *Service) Verify(ctx context.Context, token string) error {
	if strings.TrimSpace(token) == "" {
		return ErrInvalidToken
	}
	ok, err := s.repo.MarkFarmVerified(ctx, token, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("consume verification token: %w", err)
	}
	if !ok {
		return ErrInvalidToken
	}
	return nil
}

// ResendVerification rotates the verification token and re-sends the email.
// Each call invalidates the previously issued token, which makes the
// operation safe to retry. Unlike registration, delivery failure is surfaced
// here so the client knows the resend did not go out.
func (s *Service) ResendVerification(ctx context.Context, email string) error {
	farm, err := s.repo.FindFarmByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("lookup account: %w", err)
	}
	if farm.Status != entity.StatusUnverified {
		return ErrAlreadyVerified
	}

	token, err := auth.NewOpaqueToken()
	if err != nil {
		return err
	}
	var expires *time.Time
	if s.verificationTTL > 0 {
		e := time.Now().UTC().Add(s.verificationTTL)
		expires = &e
	}
	if err := s.repo.SetVerificationToken(ctx, farm.FarmID, token, expires); err != nil {
		return fmt.Errorf("store verification token: %w", err)
	}

	if err := s.mail.SendVerification(ctx, farm.Email, token); err != nil {
		logrus.WithError(err).WithField("email", farm.Email).Error("resend verification failed")
		return ErrMailDelivery
	}
	return nil
}
