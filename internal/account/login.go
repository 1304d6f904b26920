package account

import (
	"context"
	"errors"
	"fmt"
	"time"

	"aqualeaf/internal/auth"
	"aqualeaf/internal/entity"
	"aqualeaf/internal/model"
)

// LoginResult carries a freshly issued session.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
}

// Login authenticates a farm operator by email or farm name. Checks run in a
// fixed order, each short-circuiting: unknown identity, wrong password,
// suspended, deactivated, unverified, success. Password validity is
// deliberately checked before the status gate so the observable error
// precedence matches the platform's historical behaviour.
//
// Audit trail: unknown identity logs LOGIN_FARM_FAILED with the submitted
// identifier as actor; wrong password logs it with the resolved email;
// suspended/deactivated log LOGIN_FARM_BLOCKED; the unverified outcome is not
// audited; success logs LOGIN_FARM.
func (s *Service) Login(ctx context.Context, identifier, password string) (LoginResult, error) {
	farm, err := s.repo.FindFarmByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			s.audit.Record(ctx, entity.EventLoginFarmFailed, identifier, "")
			return LoginResult{}, ErrInvalidCredential
		}
		return LoginResult{}, fmt.Errorf("lookup account: %w", err)
	}

	if err := auth.VerifyPassword(farm.PasswordHash, password); err != nil {
		s.audit.Record(ctx, entity.EventLoginFarmFailed, farm.Email, farm.FarmName)
		return LoginResult{}, ErrInvalidCredential
	}

	switch farm.Status {
	case entity.StatusSuspended:
		s.audit.Record(ctx, entity.EventLoginFarmBlocked, farm.Email, farm.FarmName)
		return LoginResult{}, ErrSuspended
	case entity.StatusDeactivated:
		s.audit.Record(ctx, entity.EventLoginFarmBlocked, farm.Email, farm.FarmName)
		return LoginResult{}, ErrDeactivated
	case entity.StatusUnverified:
		return LoginResult{}, &NotVerifiedError{Email: farm.Email}
	}

	token, expiresAt, err := s.sessions.GenerateFarmToken(farm)
	if err != nil {
		return LoginResult{}, fmt.Errorf("issue session: %w", err)
	}

	s.audit.Record(ctx, entity.EventLoginFarm, farm.Email, farm.FarmName)
	return LoginResult{Token: token, ExpiresAt: expiresAt}, nil
}

// AdminLogin authenticates an administrator. Unknown email and wrong password
// collapse into the same failure class; both are audited as
// LOGIN_ADMIN_FAILED with the submitted email as actor.
func (s *Service) AdminLogin(ctx context.Context, email, password string) (LoginResult, error) {
	admin, err := s.repo.FindAdminByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			s.audit.Record(ctx, entity.EventLoginAdminFailed, email, "")
			return LoginResult{}, ErrInvalidCredential
		}
		return LoginResult{}, fmt.Errorf("lookup administrator: %w", err)
	}

	if err := auth.VerifyPassword(admin.PasswordHash, password); err != nil {
		s.audit.Record(ctx, entity.EventLoginAdminFailed, email, "")
		return LoginResult{}, ErrInvalidCredential
	}

	token, expiresAt, err := s.sessions.GenerateAdminToken(admin)
	if err != nil {
		return LoginResult{}, fmt.Errorf("issue session: %w", err)
	}

	s.audit.Record(ctx, entity.EventLoginAdmin, admin.Email, "")
	return LoginResult{Token: token, ExpiresAt: expiresAt}, nil
}
