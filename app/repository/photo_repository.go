package repository

import (
	"errors"

	"github.com/janmeyer/memora/app/models"
	"gorm.io/gorm"
)

// photoRepository implements the PhotoRepository interface
type photoRepository struct {
	db *gorm.DB
}

// NewPhotoRepository creates a new photo repository instance
func NewPhotoRepository(db *gorm.DB) PhotoRepository {
	return &photoRepository{db: db}
}

// Create creates a single photo row
func (r *photoRepository) Create(photo *models.Photo) error {
	return r.db.Create(photo).Error
}

// CreateBatch inserts all photos in one transaction. A failure on any row
// rolls back the whole batch so a partially synced page is never committed.
func (r *photoRepository) CreateBatch(photos []models.Photo) error {
	if len(photos) == 0 {
		return nil
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		for i := range photos {
			if err := tx.Create(&photos[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// GetByUserID returns up to limit photos owned by the given user. Rows come
// back in insertion order, which follows provider page order, not capture
// time.
func (r *photoRepository) GetByUserID(userID uint, limit int) ([]models.Photo, error) {
	var photos []models.Photo
	err := r.db.Where("user_id = ?", userID).Limit(limit).Find(&photos).Error
	if err != nil {
		return nil, err
	}
	return photos, nil
}

// ExistsByGoogleMediaID reports whether any user already synced this media id
func (r *photoRepository) ExistsByGoogleMediaID(mediaID string) (bool, error) {
	var photo models.Photo
	err := r.db.Select("id").Where("google_media_id = ?", mediaID).First(&photo).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// CountByUserID returns the number of photos owned by the given user
func (r *photoRepository) CountByUserID(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Photo{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

// Count returns the total number of photos
func (r *photoRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Photo{}).Count(&count).Error
	return count, err
}
