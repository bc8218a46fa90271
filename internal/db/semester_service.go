package db

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/balkashynov/skipsmart/internal/calendar"
	"github.com/balkashynov/skipsmart/internal/models"
)

// CreateSemesterRequest holds the data needed to create a new semester
type CreateSemesterRequest struct {
	Name      string
	Owner     string
	StartDate time.Time
	EndDate   time.Time
}

// CreateSemester creates a new semester spanning [StartDate, EndDate]
func CreateSemester(req CreateSemesterRequest) (*models.Semester, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("semester name is required")
	}

	start := calendar.DateOf(req.StartDate.In(Location))
	end := calendar.DateOf(req.EndDate.In(Location))
	if end.Before(start) {
		return nil, fmt.Errorf("semester ends (%s) before it starts (%s)", end.Format("02/01/2006"), start.Format("02/01/2006"))
	}

	semester := models.Semester{
		Name:      name,
		Owner:     req.Owner,
		StartDate: start.UTC(),
		EndDate:   end.UTC(),
	}
	if err := DB.Create(&semester).Error; err != nil {
		return nil, err
	}

	localizeSemester(&semester)
	return &semester, nil
}

// GetSemesters returns all semesters, newest first, with their subjects
func GetSemesters() ([]models.Semester, error) {
	var semesters []models.Semester

	err := DB.Preload("Subjects").
		Order("start_date DESC").
		Find(&semesters).Error
	if err != nil {
		return nil, err
	}

	for i := range semesters {
		localizeSemester(&semesters[i])
	}
	return semesters, nil
}

// GetSemesterByID retrieves a semester by ID
func GetSemesterByID(id uint) (*models.Semester, error) {
	var semester models.Semester

	if err := DB.Preload("Subjects").First(&semester, id).Error; err != nil {
		return nil, fmt.Errorf("semester #%d not found", id)
	}

	localizeSemester(&semester)
	return &semester, nil
}

// GetCurrentSemester returns the semester containing now, or the most recent one
func GetCurrentSemester(now time.Time) (*models.Semester, error) {
	semesters, err := GetSemesters()
	if err != nil {
		return nil, err
	}
	if len(semesters) == 0 {
		return nil, fmt.Errorf("no semesters yet. Create one with 'skipsmart semester add'")
	}

	today := calendar.DateOf(now.In(Location))
	for i := range semesters {
		if !today.Before(semesters[i].StartDate) && !today.After(semesters[i].EndDate) {
			return &semesters[i], nil
		}
	}
	return &semesters[0], nil
}

// DeleteSemester removes a semester with all of its subjects and sessions
func DeleteSemester(id uint) (*models.Semester, error) {
	semester, err := GetSemesterByID(id)
	if err != nil {
		return nil, err
	}

	err = DB.Transaction(func(tx *gorm.DB) error {
		subjectIDs := tx.Unscoped().Model(&models.Subject{}).Select("id").Where("semester_id = ?", id)
		if err := tx.Unscoped().Where("subject_id IN (?)", subjectIDs).Delete(&models.ClassSession{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("semester_id = ?", id).Delete(&models.Subject{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&models.Semester{}, id).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to delete semester #%d: %w", id, err)
	}

	return semester, nil
}

// localizeSemester moves the stored window into the configured timezone
func localizeSemester(s *models.Semester) {
	s.StartDate = calendar.DateOf(s.StartDate.In(Location))
	s.EndDate = calendar.DateOf(s.EndDate.In(Location))
}
