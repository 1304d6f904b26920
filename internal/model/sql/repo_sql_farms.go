package sql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"aqualeaf/internal/entity"
)

// FindFarmByIdentifier loads a farm account by email or farm name. Email
// comparison is case-insensitive, farm name is matched as stored.
func (r *GormRepository) FindFarmByIdentifier(ctx context.Context, identifier string) (*entity.FarmAccount, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	trimmed := strings.TrimSpace(identifier)
	if trimmed == "" {
		return nil, fmt.Errorf("identifier is empty")
	}

	var farm entity.FarmAccount
	err := r.db.WithContext(ctx).
		Where("LOWER(email) = ? OR farm_name = ?", strings.ToLower(trimmed), trimmed).
		First(&farm).Error
	if err != nil {
		return nil, translate(err)
	}
	return &farm, nil
}

// FindFarmByEmail loads a farm account by email.
func (r *GormRepository) FindFarmByEmail(ctx context.Context, email string) (*entity.FarmAccount, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	trimmed := strings.TrimSpace(email)
	if trimmed == "" {
		return nil, fmt.Errorf("email is empty")
	}

	var farm entity.FarmAccount
	err := r.db.WithContext(ctx).
		Where("LOWER(email) = ?", strings.ToLower(trimmed)).
		First(&farm).Error
	if err != nil {
		return nil, translate(err)
	}
	return &farm, nil
}

// FindFarmByID loads a farm account by primary key.
func (r *GormRepository) FindFarmByID(ctx context.Context, id uint) (*entity.FarmAccount, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return nil, fmt.Errorf("invalid farm id")
	}
	var farm entity.FarmAccount
	if err := r.db.WithContext(ctx).First(&farm, id).Error; err != nil {
		return nil, translate(err)
	}
	return &farm, nil
}

// ListFarms returns all farm accounts, newest first.
func (r *GormRepository) ListFarms(ctx context.Context) ([]entity.FarmAccount, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	var farms []entity.FarmAccount
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&farms).Error; err != nil {
		return nil, translate(err)
	}
	return farms, nil
}

// CreateFarm persists a new farm account.
func (r *GormRepository) CreateFarm(ctx context.Context, farm *entity.FarmAccount) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if farm == nil {
		return fmt.Errorf("farm is nil")
	}
	return translate(r.db.WithContext(ctx).Create(farm).Error)
}

// CountFarms returns the total number of farm accounts.
func (r *GormRepository) CountFarms(ctx context.Context) (int64, error) {
	if r == nil || r.db == nil {
		return 0, fmt.Errorf("repository not initialised")
	}
	var count int64
	if err := r.db.WithContext(ctx).Model(&entity.FarmAccount{}).Count(&count).Error; err != nil {
		return 0, translate(err)
	}
	return count, nil
}

// MarkFarmVerified consumes a verification token and activates the matching
// unverified account in a single statement. A token with a stored expiry in
// the past no longer matches.
func (r *GormRepository) MarkFarmVerified(ctx context.Context, token string, now time.Time) (bool, error) {
	if r == nil || r.db == nil {
		return false, fmt.Errorf("repository not initialised")
	}
	if strings.TrimSpace(token) == "" {
		return false, nil
	}

	result := r.db.WithContext(ctx).Model(&entity.FarmAccount{}).
		Where("verification_token = ? AND account_status = ?", token, entity.StatusUnverified).
		Where("verification_expires IS NULL OR verification_expires > ?", now).
		Updates(map[string]interface{}{
			"account_status":       entity.StatusActive,
			"verification_token":   nil,
			"verification_expires": nil,
			"last_updated":         now,
		})
	if result.Error != nil {
		return false, translate(result.Error)
	}
	return result.RowsAffected > 0, nil
}

// SetVerificationToken stores a fresh verification token, invalidating any
// previously issued one.
func (r *GormRepository) SetVerificationToken(ctx context.Context, farmID uint, token string, expires *time.Time) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if farmID == 0 {
		return fmt.Errorf("invalid farm id")
	}
	return translate(r.db.WithContext(ctx).Model(&entity.FarmAccount{}).
		Where("farm_id = ?", farmID).
		Updates(map[string]interface{}{
			"verification_token":   token,
			"verification_expires": expires,
		}).Error)
}

// UpdateFarmStatus applies an administrator-driven status transition. The
// caller reports false as not found.
func (r *GormRepository) UpdateFarmStatus(ctx context.Context, farmID uint, status string) (bool, error) {
	if r == nil || r.db == nil {
		return false, fmt.Errorf("repository not initialised")
	}
	if farmID == 0 {
		return false, fmt.Errorf("invalid farm id")
	}
	if !entity.ValidStatus(status) {
		return false, fmt.Errorf("invalid account status %q", status)
	}

	result := r.db.WithContext(ctx).Model(&entity.FarmAccount{}).
		Where("farm_id = ?", farmID).
		Updates(map[string]interface{}{
			"account_status": status,
			"last_updated":   time.Now().UTC(),
		})
	if result.Error != nil {
		return false, translate(result.Error)
	}
	return result.RowsAffected > 0, nil
}

// DeleteDeactivatedFarm permanently erases a farm account, guarded to the
// deactivated status.
func (r *GormRepository) DeleteDeactivatedFarm(ctx context.Context, farmID uint) (bool, error) {
	if r == nil || r.db == nil {
		return false, fmt.Errorf("repository not initialised")
	}
	if farmID == 0 {
		return false, fmt.Errorf("invalid farm id")
	}

	result := r.db.WithContext(ctx).
		Where("farm_id = ? AND account_status = ?", farmID, entity.StatusDeactivated).
		Delete(&entity.FarmAccount{})
	if result.Error != nil {
		return false, translate(result.Error)
	}
	return result.RowsAffected > 0, nil
}

// SetResetToken stores a reset token plus absolute expiry, replacing any
// earlier token for the account.
func (r *GormRepository) SetResetToken(ctx context.Context, farmID uint, token string, expires time.Time) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if farmID == 0 {
		return fmt.Errorf("invalid farm id")
	}
	return translate(r.db.WithContext(ctx).Model(&entity.FarmAccount{}).
		Where("farm_id = ?", farmID).
		Updates(map[string]interface{}{
			"reset_token":   token,
			"reset_expires": expires,
		}).Error)
}

// FindFarmByResetToken loads the account currently holding a reset token.
func (r *GormRepository) FindFarmByResetToken(ctx context.Context, token string) (*entity.FarmAccount, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	if strings.TrimSpace(token) == "" {
		return nil, fmt.Errorf("token is empty")
	}
	var farm entity.FarmAccount
	if err := r.db.WithContext(ctx).Where("reset_token = ?", token).First(&farm).Error; err != nil {
		return nil, translate(err)
	}
	return &farm, nil
}

// ResetFarmPassword replaces the credential and clears token and expiry in a
// single statement guarded by the token, so a consumed token can never be
// redeemed again.
func (r *GormRepository) ResetFarmPassword(ctx context.Context, token, passwordHash string) (bool, error) {
	if r == nil || r.db == nil {
		return false, fmt.Errorf("repository not initialised")
	}
	if strings.TrimSpace(token) == "" || passwordHash == "" {
		return false, nil
	}

	result := r.db.WithContext(ctx).Model(&entity.FarmAccount{}).
		Where("reset_token = ?", token).
		Updates(map[string]interface{}{
			"password":      passwordHash,
			"reset_token":   nil,
			"reset_expires": nil,
		})
	if result.Error != nil {
		return false, translate(result.Error)
	}
	return result.RowsAffected > 0, nil
}
