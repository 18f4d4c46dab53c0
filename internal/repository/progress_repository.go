package repository

import (
	"errors"

	"cyberkids_backend/internal/model"

	"gorm.io/gorm"
)

// ProgressRepository persists the per-user progression record with key-value
// semantics: one row per user, whole-record load and save, no versioning.
type ProgressRepository struct {
	DB *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: db}
}

func (r *ProgressRepository) FindByUserID(userID uint) (*model.UserProgress, error) {
	var p model.UserProgress
	err := r.DB.Where("user_id = ?", userID).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProgressRepository) Exists(userID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.UserProgress{}).Where("user_id = ?", userID).Count(&count).Error
	return count > 0, err
}

// Save upserts the whole record.
func (r *ProgressRepository) Save(p *model.UserProgress) error {
	if p.ID != 0 {
		return r.DB.Save(p).Error
	}
	var existing model.UserProgress
	err := r.DB.Where("user_id = ?", p.UserID).First(&existing).Error
	switch {
	case err == nil:
		p.ID = existing.ID
		p.CreatedAt = existing.CreatedAt
		return r.DB.Save(p).Error
	case errors.Is(err, gorm.ErrRecordNotFound):
		return r.DB.Create(p).Error
	default:
		return err
	}
}
