package repository

import (
	"github.com/janmeyer/memora/app/models"
	"gorm.io/gorm"
)

// UserRepository defines the interface for user-related database operations
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByGoogleID(googleID string) (*models.User, error)
	Update(user *models.User) error
	Count() (int64, error)
}

// PhotoRepository defines the interface for photo-related database operations
type PhotoRepository interface {
	Create(photo *models.Photo) error
	// CreateBatch inserts all photos inside a single transaction; either
	// every row is committed or none is.
	CreateBatch(photos []models.Photo) error
	GetByUserID(userID uint, limit int) ([]models.Photo, error)
	ExistsByGoogleMediaID(mediaID string) (bool, error)
	CountByUserID(userID uint) (int64, error)
	Count() (int64, error)
}

// Repositories struct holds all repository instances
type Repositories struct {
	User  UserRepository
	Photo PhotoRepository
}

// NewRepositories creates a new instance of all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:  NewUserRepository(db),
		Photo: NewPhotoRepository(db),
	}
}
