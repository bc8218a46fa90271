package db

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/balkashynov/skipsmart/internal/models"
	"github.com/balkashynov/skipsmart/internal/parser"
	"github.com/balkashynov/skipsmart/internal/schedule"
)

// ErrInvalidTarget is returned for a target percentage outside (0, 100]
var ErrInvalidTarget = errors.New("target percentage must be greater than 0 and at most 100")

// CreateSubjectRequest holds the data needed to create a new subject
type CreateSubjectRequest struct {
	SemesterID       uint
	Name             string
	Code             string
	Color            string
	TargetPercentage float64 // 0 means models.DefaultTargetPercentage
	Schedule         []models.ScheduleEntry
}

// CreateSubjectResult describes what CreateSubject did
type CreateSubjectResult struct {
	Subject  *models.Subject
	Merged   bool // schedule was appended to an existing subject with the same code
	Sessions int  // sessions generated for the new entries
}

// CreateSubject creates a subject and generates its class sessions.
//
// When a subject with the same code already exists in the semester, the new
// schedule entries are appended to it instead and only those entries are
// expanded, so previously generated sessions are left untouched.
func CreateSubject(req CreateSubjectRequest) (*CreateSubjectResult, error) {
	target := req.TargetPercentage
	if target == 0 {
		target = models.DefaultTargetPercentage
	}
	if target <= 0 || target > 100 {
		return nil, fmt.Errorf("%w: got %g", ErrInvalidTarget, target)
	}

	// Validate every entry before touching the database
	for _, e := range req.Schedule {
		if err := schedule.ValidateEntry(e); err != nil {
			return nil, err
		}
	}

	semester, err := GetSemesterByID(req.SemesterID)
	if err != nil {
		return nil, err
	}

	code := parser.NormalizeCode(req.Code)
	result := &CreateSubjectResult{}

	err = DB.Transaction(func(tx *gorm.DB) error {
		var subject models.Subject

		existing := false
		if code != "" {
			err := tx.Where("semester_id = ? AND code = ?", semester.ID, code).First(&subject).Error
			switch {
			case err == nil:
				existing = true
			case !errors.Is(err, gorm.ErrRecordNotFound):
				return err
			}
		}

		if existing {
			// Merge schedule
			merged := schedule.MergeEntries(subject.Schedule, req.Schedule)
			subject.Schedule = datatypes.JSONSlice[models.ScheduleEntry](merged)
			if err := tx.Model(&subject).Update("schedule", subject.Schedule).Error; err != nil {
				return err
			}
		} else {
			name := strings.TrimSpace(req.Name)
			if name == "" {
				return fmt.Errorf("subject name is required")
			}
			subject = models.Subject{
				SemesterID:       semester.ID,
				Name:             name,
				Color:            req.Color,
				TargetPercentage: target,
				Schedule:         datatypes.JSONSlice[models.ScheduleEntry](schedule.MergeEntries(nil, req.Schedule)),
			}
			if code != "" {
				subject.Code = &code
			}
			if err := tx.Omit(clause.Associations).Create(&subject).Error; err != nil {
				return err
			}
		}

		// Generate ClassSessions for the new entries only
		sessions, err := schedule.Expand(*semester, req.Schedule, subject.ID)
		if err != nil {
			return err
		}
		if len(sessions) > 0 {
			toStorage(sessions)
			if err := tx.Omit(clause.Associations).CreateInBatches(sessions, 200).Error; err != nil {
				return err
			}
		}

		result.Subject = &subject
		result.Merged = existing
		result.Sessions = len(sessions)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// GetSubjects returns the subjects of a semester
func GetSubjects(semesterID uint) ([]models.Subject, error) {
	var subjects []models.Subject

	if err := DB.Where("semester_id = ?", semesterID).Order("id ASC").Find(&subjects).Error; err != nil {
		return nil, err
	}
	return subjects, nil
}

// GetSubjectByID retrieves a subject by ID
func GetSubjectByID(id uint) (*models.Subject, error) {
	var subject models.Subject

	if err := DB.Preload("Semester").First(&subject, id).Error; err != nil {
		return nil, fmt.Errorf("subject #%d not found", id)
	}

	localizeSemester(&subject.Semester)
	return &subject, nil
}

// UpdateSubjectRequest holds optional subject changes; nil fields are left as is
type UpdateSubjectRequest struct {
	Name             *string
	Color            *string
	TargetPercentage *float64
}

// UpdateSubject edits a subject's display fields and target
func UpdateSubject(id uint, req UpdateSubjectRequest) (*models.Subject, error) {
	subject, err := GetSubjectByID(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("subject name cannot be empty")
		}
		updates["name"] = name
	}
	if req.Color != nil {
		updates["color"] = *req.Color
	}
	if req.TargetPercentage != nil {
		if *req.TargetPercentage <= 0 || *req.TargetPercentage > 100 {
			return nil, fmt.Errorf("%w: got %g", ErrInvalidTarget, *req.TargetPercentage)
		}
		updates["target_percentage"] = *req.TargetPercentage
	}
	if len(updates) == 0 {
		return subject, nil
	}

	if err := DB.Model(&models.Subject{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return nil, err
	}
	return GetSubjectByID(id)
}

// DeleteSubject removes a subject and its sessions
func DeleteSubject(id uint) (*models.Subject, error) {
	subject, err := GetSubjectByID(id)
	if err != nil {
		return nil, err
	}

	err = DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("subject_id = ?", id).Delete(&models.ClassSession{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&models.Subject{}, id).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to delete subject #%d: %w", id, err)
	}

	return subject, nil
}
