package models

import "time"

type Todo struct {
	ID          uint   `gorm:"primaryKey"`
	Title       string `gorm:"not null"`
	Description string
	DueDate     *time.Time
	Note        string
	Completed   bool  `gorm:"not null;default:false"`
	UserID      uint  `gorm:"not null;index"`
	ProjectID   *uint `gorm:"index"` // a todo may live outside any project
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Relationships
	Project  *Project  `gorm:"foreignKey:ProjectID"`
	Subtasks []Subtask `gorm:"foreignKey:TodoID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
