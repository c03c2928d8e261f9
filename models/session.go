package models

import "time"

// Session is the root aggregate of one saved plant. Every other row belongs to
// exactly one Session and is removed with it.
type Session struct {
	ID            uint      `gorm:"primaryKey"`
	PublicID      string    `gorm:"size:100;uniqueIndex"`
	OriginalQuery string    `gorm:"not null"`
	CameraOffsetX float64   `gorm:"default:0"`
	CameraOffsetY float64   `gorm:"default:0"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime;index"`
}
