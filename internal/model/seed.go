package model

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"aqualeaf/internal/auth"
	"aqualeaf/internal/config"
	"aqualeaf/internal/entity"
)

// SeedAdministrator ensures the configured administrator account exists.
// Administrators have no registration flow, so the only way to provision one
// is at startup. Existing accounts are left untouched.
func SeedAdministrator(ctx context.Context, repo Repository, cfg config.Config) error {
	if repo == nil {
		return nil
	}

	email := strings.TrimSpace(cfg.AdminEmail)
	password := strings.TrimSpace(cfg.AdminPassword)
	if email == "" || password == "" {
		return nil
	}

	_, err := repo.FindAdminByEmail(ctx, email)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrNotFound):
		// fall through and create
	default:
		return fmt.Errorf("lookup administrator: %w", err)
	}

	hash, err := auth.HashPassword(password, cfg.BcryptCost)
	if err != nil {
		return fmt.Errorf("hash administrator password: %w", err)
	}

	admin := &entity.Administrator{
		Username:     strings.TrimSpace(cfg.AdminUsername),
		Email:        email,
		PasswordHash: hash,
	}
	if err := repo.CreateAdmin(ctx, admin); err != nil {
		// A concurrent boot may have created it; treat duplicates as done.
		if errors.Is(err, ErrDuplicate) {
			return nil
		}
		return fmt.Errorf("create administrator: %w", err)
	}
	return nil
}
