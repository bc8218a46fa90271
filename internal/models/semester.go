package models

import (
	"time"

	"gorm.io/gorm"
)

// Semester is a named, inclusive date window that subjects are scheduled against
type Semester struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Name      string    `gorm:"not null" json:"name"`
	Owner     string    `gorm:"index" json:"owner"`
	StartDate time.Time `gorm:"not null" json:"start_date"`
	EndDate   time.Time `gorm:"not null" json:"end_date"`

	// Relationships
	Subjects []Subject `gorm:"foreignKey:SemesterID" json:"subjects,omitempty"`
}
