package db

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/balkashynov/skipsmart/internal/attendance"
	applog "github.com/balkashynov/skipsmart/internal/log"
	"github.com/balkashynov/skipsmart/internal/models"
)

// ReconcileResult summarizes a reconciliation sweep
type ReconcileResult struct {
	Subjects int // subjects inspected
	Skipped  int // sessions closed out as SKIPPED
}

// ReconcileSubject marks the subject's elapsed, unmarked sessions as SKIPPED
func ReconcileSubject(subjectID uint, now time.Time) (int, error) {
	var changed int64

	err := DB.Transaction(func(tx *gorm.DB) error {
		var sessions []models.ClassSession
		err := tx.Where("subject_id = ? AND status = ?", subjectID, models.StatusPending).
			Order("start_time ASC").
			Find(&sessions).Error
		if err != nil {
			return err
		}

		n := attendance.Reconcile(sessions, now)
		if n == 0 {
			return nil
		}

		// Only PENDING rows were loaded, so every SKIPPED one was changed by Reconcile
		ids := make([]uint, 0, n)
		for _, s := range sessions {
			if s.Status == models.StatusSkipped {
				ids = append(ids, s.ID)
			}
		}

		changed, err = setStatus(tx, ids, models.StatusPending, models.StatusSkipped)
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("failed to reconcile subject #%d: %w", subjectID, err)
	}

	if changed > 0 {
		applog.Debug("reconciled subject", "subject", subjectID, "skipped", changed)
	}
	return int(changed), nil
}

// ReconcileSemester reconciles every subject of a semester
func ReconcileSemester(semesterID uint, now time.Time) (ReconcileResult, error) {
	var result ReconcileResult

	subjects, err := GetSubjects(semesterID)
	if err != nil {
		return result, err
	}

	for _, subject := range subjects {
		n, err := ReconcileSubject(subject.ID, now)
		if err != nil {
			return result, err
		}
		result.Subjects++
		result.Skipped += n
	}

	return result, nil
}

// ReconcileAll reconciles every semester
func ReconcileAll(now time.Time) (ReconcileResult, error) {
	var total ReconcileResult

	semesters, err := GetSemesters()
	if err != nil {
		return total, err
	}

	for _, semester := range semesters {
		res, err := ReconcileSemester(semester.ID, now)
		if err != nil {
			return total, err
		}
		total.Subjects += res.Subjects
		total.Skipped += res.Skipped
	}

	applog.Info("reconcile sweep finished", "semesters", len(semesters), "subjects", total.Subjects, "skipped", total.Skipped)
	return total, nil
}
