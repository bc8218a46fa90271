package models

import (
	"time"

	"gorm.io/gorm"
)

// Status is the attendance state of a single class session
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusAttended  Status = "ATTENDED"
	StatusSkipped   Status = "SKIPPED"
	StatusCancelled Status = "CANCELLED"
)

// Statuses lists every valid status
var Statuses = []Status{StatusPending, StatusAttended, StatusSkipped, StatusCancelled}

// Valid reports whether s is one of the four defined statuses
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusAttended, StatusSkipped, StatusCancelled:
		return true
	}
	return false
}

// Held reports whether the outcome of the session is decided
func (s Status) Held() bool {
	return s == StatusAttended || s == StatusSkipped
}

// ClassSession is one concrete, dated occurrence of a subject's class
type ClassSession struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	SubjectID uint      `gorm:"not null;index" json:"subject_id"`
	Date      time.Time `gorm:"not null;index" json:"date"`
	StartTime time.Time `gorm:"not null;index" json:"start_time"`
	EndTime   time.Time `gorm:"not null" json:"end_time"`
	Status    Status    `gorm:"not null;default:PENDING;index" json:"status"`

	// Relationships
	Subject Subject `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}
