package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// User is an account created on first successful Google login. The refresh
// token stays empty until Google grants one and must never be cleared by a
// later token response that omits it.
type User struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	GoogleID           string    `gorm:"uniqueIndex;type:varchar(191);not null" json:"google_id" validate:"required"`
	Email              string    `gorm:"uniqueIndex;type:varchar(200)" json:"email" validate:"required,email,min=5,max=200"`
	Name               string    `gorm:"type:varchar(150)" json:"name" validate:"max=150"`
	GoogleRefreshToken string    `gorm:"type:text" json:"-"`
	CreatedAt          time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (u *User) Validate() error {
	v := validator.New()

	return v.Struct(u)
}

// HasRefreshToken reports whether a Google refresh token is on file.
func (u *User) HasRefreshToken() bool {
	return u.GoogleRefreshToken != ""
}
