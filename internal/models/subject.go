package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// DefaultTargetPercentage is used when a subject is created without a target
const DefaultTargetPercentage = 75.0

// ScheduleEntry is one weekly recurrence of a class, e.g. Monday 10:00-11:00
type ScheduleEntry struct {
	Day       string `json:"day"`
	StartTime string `json:"startTime"` // HH:MM
	EndTime   string `json:"endTime"`   // HH:MM
}

// String renders the entry the way it is typed on the command line
func (e ScheduleEntry) String() string {
	return e.Day + " " + e.StartTime + "-" + e.EndTime
}

// Subject is a course within a semester. Its schedule only ever grows.
type Subject struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	SemesterID       uint    `gorm:"not null;uniqueIndex:idx_subject_semester_code" json:"semester_id"`
	Name             string  `gorm:"not null" json:"name"`
	Code             *string `gorm:"uniqueIndex:idx_subject_semester_code" json:"code"` // NULL codes never collide
	Color            string  `json:"color"`
	TargetPercentage float64 `gorm:"not null;default:75" json:"target_percentage"`

	// Schedule of record: every entry ever added, in insertion order
	Schedule datatypes.JSONSlice[ScheduleEntry] `json:"schedule"`

	// Relationships
	Semester Semester       `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Sessions []ClassSession `gorm:"foreignKey:SubjectID" json:"sessions,omitempty"`
}

// DisplayName returns "CODE Name" when a code is set
func (s Subject) DisplayName() string {
	if s.Code != nil && *s.Code != "" {
		return *s.Code + " " + s.Name
	}
	return s.Name
}
