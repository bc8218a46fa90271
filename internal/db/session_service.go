package db

import (
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/balkashynov/skipsmart/internal/attendance"
	"github.com/balkashynov/skipsmart/internal/calendar"
	"github.com/balkashynov/skipsmart/internal/models"
)

// GetSessionsForSubject returns all sessions of a subject ordered by start time
func GetSessionsForSubject(subjectID uint) ([]models.ClassSession, error) {
	var sessions []models.ClassSession

	err := DB.Where("subject_id = ?", subjectID).
		Order("start_time ASC").
		Order("id ASC").
		Find(&sessions).Error
	if err != nil {
		return nil, err
	}

	fromStorage(sessions)
	return sessions, nil
}

// GetSessionsForSemester returns all sessions of a semester ordered by start time
func GetSessionsForSemester(semesterID uint) ([]models.ClassSession, error) {
	var sessions []models.ClassSession

	err := DB.Joins("Subject").
		Where("Subject.semester_id = ?", semesterID).
		Order("class_sessions.start_time ASC").
		Order("class_sessions.id ASC").
		Find(&sessions).Error
	if err != nil {
		return nil, err
	}

	fromStorage(sessions)
	return sessions, nil
}

// GetSessionByID retrieves a session with its subject
func GetSessionByID(id uint) (*models.ClassSession, error) {
	var session models.ClassSession

	if err := DB.Preload("Subject").First(&session, id).Error; err != nil {
		return nil, fmt.Errorf("session #%d not found", id)
	}

	localizeSession(&session)
	return &session, nil
}

// MarkSession sets a session's attendance status
func MarkSession(id uint, status models.Status) (*models.ClassSession, error) {
	session, err := GetSessionByID(id)
	if err != nil {
		return nil, err
	}

	if err := attendance.Mark(session, status); err != nil {
		return nil, err
	}

	if err := DB.Model(&models.ClassSession{}).Where("id = ?", id).Update("status", session.Status).Error; err != nil {
		return nil, fmt.Errorf("failed to mark session #%d: %w", id, err)
	}

	return session, nil
}

// CreateSessionRequest describes a one-off class outside the weekly schedule
type CreateSessionRequest struct {
	SubjectID uint
	Date      time.Time
	Start     calendar.Clock
	End       calendar.Clock
}

// CreateSession adds a single extra PENDING session to a subject
func CreateSession(req CreateSessionRequest) (*models.ClassSession, error) {
	if _, err := GetSubjectByID(req.SubjectID); err != nil {
		return nil, err
	}

	date := calendar.DateOf(req.Date.In(Location))
	start, err := calendar.Combine(date, req.Start)
	if err != nil {
		return nil, err
	}
	end, err := calendar.Combine(date, req.End)
	if err != nil {
		return nil, err
	}
	if !start.Before(end) {
		return nil, fmt.Errorf("session must end after it starts (%s-%s)", req.Start, req.End)
	}

	session := models.ClassSession{
		SubjectID: req.SubjectID,
		Date:      date,
		StartTime: start,
		EndTime:   end,
		Status:    models.StatusPending,
	}

	stored := []models.ClassSession{session}
	toStorage(stored)
	if err := DB.Omit(clause.Associations).Create(&stored[0]).Error; err != nil {
		return nil, err
	}

	session.ID = stored[0].ID
	session.CreatedAt = stored[0].CreatedAt
	session.UpdatedAt = stored[0].UpdatedAt
	return &session, nil
}

// DeleteSession removes a single session regardless of its status
func DeleteSession(id uint) (*models.ClassSession, error) {
	session, err := GetSessionByID(id)
	if err != nil {
		return nil, err
	}

	if err := DB.Unscoped().Delete(&models.ClassSession{}, id).Error; err != nil {
		return nil, fmt.Errorf("failed to delete session #%d: %w", id, err)
	}

	return session, nil
}

// GetUpcomingSessions returns pending sessions of a semester from today on
func GetUpcomingSessions(semesterID uint, now time.Time, limit int) ([]models.ClassSession, error) {
	var sessions []models.ClassSession
	if limit <= 0 {
		limit = 10
	}

	today := calendar.DateOf(now.In(Location)).UTC()

	err := DB.Joins("Subject").
		Where("Subject.semester_id = ?", semesterID).
		Where("class_sessions.status = ? AND class_sessions.date >= ?", models.StatusPending, today).
		Order("class_sessions.start_time ASC").
		Limit(limit).
		Find(&sessions).Error
	if err != nil {
		return nil, err
	}

	fromStorage(sessions)
	return sessions, nil
}

// setStatus persists a status for many sessions at once. Only sessions still in
// fromStatus are changed so a concurrent mark is never overwritten.
func setStatus(tx *gorm.DB, ids []uint, fromStatus, toStatus models.Status) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := tx.Model(&models.ClassSession{}).
		Where("id IN ? AND status = ?", ids, fromStatus).
		Update("status", toStatus)
	return res.RowsAffected, res.Error
}

// toStorage converts session times to UTC so sqlite compares them consistently
func toStorage(sessions []models.ClassSession) {
	for i := range sessions {
		sessions[i].Date = sessions[i].Date.UTC()
		sessions[i].StartTime = sessions[i].StartTime.UTC()
		sessions[i].EndTime = sessions[i].EndTime.UTC()
	}
}

// fromStorage converts stored session times back into the configured timezone
func fromStorage(sessions []models.ClassSession) {
	for i := range sessions {
		localizeSession(&sessions[i])
	}
}

func localizeSession(s *models.ClassSession) {
	s.Date = s.Date.In(Location)
	s.StartTime = s.StartTime.In(Location)
	s.EndTime = s.EndTime.In(Location)
}
