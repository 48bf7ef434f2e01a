package models

import "time"

type Subtask struct {
	ID          uint   `gorm:"primaryKey"`
	Title       string `gorm:"not null"`
	Description string
	DueDate     *time.Time
	Completed   bool `gorm:"not null;default:false"`
	UserID      uint `gorm:"not null;index"`
	TodoID      uint `gorm:"not null;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
