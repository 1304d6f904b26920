package sql

import (
	"errors"

	"aqualeaf/internal/model"

	"gorm.io/gorm"
)

// GormRepository implements model.Repository using GORM.
type GormRepository struct {
	db *gorm.DB
}

// NewGormRepository creates a new repository instance.
func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

// translate maps gorm failures onto the storage-agnostic repository errors so
// no driver detail crosses the model boundary.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return model.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return model.ErrDuplicate
	default:
		return err
	}
}
