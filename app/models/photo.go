package models

import "time"

// Photo references a single still photo in the owner's Google Photos
// library. GoogleMediaID is the system-wide dedup key: sync inserts a row at
// most once per media id and never updates or deletes existing rows.
//
// CreationTime, Latitude/Longitude and Embedding are reserved for a later
// enrichment pass; the sync engine leaves them unset.
type Photo struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	UserID        uint       `gorm:"index;not null" json:"user_id"`
	GoogleMediaID string     `gorm:"uniqueIndex;type:varchar(191);not null" json:"google_media_id"`
	ThumbnailURL  string     `gorm:"type:varchar(2048)" json:"thumbnail_url"`
	CreationTime  *time.Time `gorm:"type:timestamp;default:null" json:"creation_time,omitempty"`
	Latitude      *float64   `json:"lat,omitempty"`
	Longitude     *float64   `json:"lon,omitempty"`
	Embedding     Vector     `gorm:"type:vector(1408)" json:"-"`
	CreatedAt     time.Time  `gorm:"autoCreateTime" json:"created_at"`
}
