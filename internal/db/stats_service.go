package db

import (
	"time"

	"github.com/balkashynov/skipsmart/internal/budget"
	"github.com/balkashynov/skipsmart/internal/models"
)

// SubjectReport pairs a subject with its attendance report
type SubjectReport struct {
	Subject models.Subject `json:"subject"`
	Report  budget.Report  `json:"report"`
}

// SubjectStats computes the report for one subject. It never writes;
// run a reconciliation first to close out elapsed sessions.
func SubjectStats(subjectID uint, now time.Time) (*SubjectReport, error) {
	subject, err := GetSubjectByID(subjectID)
	if err != nil {
		return nil, err
	}

	sessions, err := GetSessionsForSubject(subjectID)
	if err != nil {
		return nil, err
	}

	return &SubjectReport{
		Subject: *subject,
		Report:  budget.Calculate(sessions, subject.TargetPercentage, now),
	}, nil
}

// SemesterStats computes reports for every subject of a semester
func SemesterStats(semesterID uint, now time.Time) ([]SubjectReport, error) {
	subjects, err := GetSubjects(semesterID)
	if err != nil {
		return nil, err
	}

	reports := make([]SubjectReport, 0, len(subjects))
	for _, subject := range subjects {
		sessions, err := GetSessionsForSubject(subject.ID)
		if err != nil {
			return nil, err
		}
		reports = append(reports, SubjectReport{
			Subject: subject,
			Report:  budget.Calculate(sessions, subject.TargetPercentage, now),
		})
	}

	return reports, nil
}
