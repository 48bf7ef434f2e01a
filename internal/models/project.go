package models

import "time"

type Project struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"not null"`
	Description string
	UserID      uint `gorm:"not null;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Relationships
	Todos []Todo `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
