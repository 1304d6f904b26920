package sql

import (
	"context"
	"fmt"
	"strings"

	"aqualeaf/internal/entity"
)

// FindAdminByEmail loads an administrator by email.
func (r *GormRepository) FindAdminByEmail(ctx context.Context, email string) (*entity.Administrator, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	trimmed := strings.TrimSpace(email)
	if trimmed == "" {
		return nil, fmt.Errorf("email is empty")
	}

	var admin entity.Administrator
	err := r.db.WithContext(ctx).
		Where("LOWER(email) = ?", strings.ToLower(trimmed)).
		First(&admin).Error
	if err != nil {
		return nil, translate(err)
	}
	return &admin, nil
}

// CreateAdmin persists a new administrator.
func (r *GormRepository) CreateAdmin(ctx context.Context, admin *entity.Administrator) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if admin == nil {
		return fmt.Errorf("admin is nil")
	}
	return translate(r.db.WithContext(ctx).Create(admin).Error)
}

// CountAdmins returns the number of provisioned administrators.
func (r *GormRepository) CountAdmins(ctx context.Context) (int64, error) {
	if r == nil || r.db == nil {
		return 0, fmt.Errorf("repository not initialised")
	}
	var count int64
	if err := r.db.WithContext(ctx).Model(&entity.Administrator{}).Count(&count).Error; err != nil {
		return 0, translate(err)
	}
	return count, nil
}
