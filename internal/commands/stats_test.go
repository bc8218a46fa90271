package commands

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/balkashynov/skipsmart/internal/config"
	"github.com/balkashynov/skipsmart/internal/db"
	"github.com/balkashynov/skipsmart/internal/models"
)

// setupCommandDB points the commands at a fresh database, config and clock
func setupCommandDB(t *testing.T, at time.Time) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "skipsmart.db")
	if err := db.Initialize(db.Options{Path: path, Location: time.UTC}); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	prevCfg, prevNow := cfg, now
	cfg = config.DefaultConfig()
	now = func() time.Time { return at }
	t.Cleanup(func() {
		cfg, now = prevCfg, prevNow
		_ = db.Close()
	})
}

func addSemester(t *testing.T, name, start, end string) *models.Semester {
	t.Helper()
	sem, err := db.CreateSemester(db.CreateSemesterRequest{
		Name:      name,
		StartDate: mustDate(t, start),
		EndDate:   mustDate(t, end),
	})
	if err != nil {
		t.Fatalf("CreateSemester: %v", err)
	}
	return sem
}

func addMondaySubject(t *testing.T, semesterID uint, name string) *models.Subject {
	t.Helper()
	res, err := db.CreateSubject(db.CreateSubjectRequest{
		SemesterID: semesterID,
		Name:       name,
		Schedule:   []models.ScheduleEntry{{Day: "Monday", StartTime: "10:00", EndTime: "11:00"}},
	})
	if err != nil {
		t.Fatalf("CreateSubject: %v", err)
	}
	return res.Subject
}

func TestLoadStats_SubjectOutsideCurrentSemester(t *testing.T) {
	setupCommandDB(t, time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC))

	// One Monday class on 3 Feb 2025, never marked
	spring := addSemester(t, "Spring 2025", "2025-02-03", "2025-02-09")
	fall := addSemester(t, "Fall 2025", "2025-09-01", "2025-12-19")
	old := addMondaySubject(t, spring.ID, "History")
	addMondaySubject(t, fall.ID, "Physics")

	title, reports, err := loadStats(0, old.ID)
	if err != nil {
		t.Fatalf("loadStats: %v", err)
	}
	if title != "Spring 2025" {
		t.Fatalf("title = %q, want Spring 2025", title)
	}
	if len(reports) != 1 {
		t.Fatalf("reports = %d, want 1", len(reports))
	}

	r := reports[0].Report
	if r.Overdue != 0 || r.Future != 0 {
		t.Fatalf("overdue %d future %d, want 0 0 after reconcile on read", r.Overdue, r.Future)
	}
	if r.Held != 1 || r.Skipped != 1 {
		t.Fatalf("held %d skipped %d, want 1 1", r.Held, r.Skipped)
	}
}

func TestLoadStats_OnReadDisabled(t *testing.T) {
	setupCommandDB(t, time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC))
	cfg.Reconcile.OnRead = false

	spring := addSemester(t, "Spring 2025", "2025-02-03", "2025-02-09")
	old := addMondaySubject(t, spring.ID, "History")

	_, reports, err := loadStats(0, old.ID)
	if err != nil {
		t.Fatalf("loadStats: %v", err)
	}
	if r := reports[0].Report; r.Overdue != 1 || r.Held != 0 {
		t.Fatalf("overdue %d held %d, want 1 0 without reconcile on read", r.Overdue, r.Held)
	}
}

func TestLoadStats_CurrentSemester(t *testing.T) {
	// Mondays 1st, 8th and 15th have ended
	setupCommandDB(t, time.Date(2025, 9, 16, 12, 0, 0, 0, time.UTC))

	addSemester(t, "Spring 2025", "2025-02-03", "2025-02-09")
	fall := addSemester(t, "Fall 2025", "2025-09-01", "2025-09-30")
	addMondaySubject(t, fall.ID, "Physics")
	addMondaySubject(t, fall.ID, "Chemistry")

	title, reports, err := loadStats(0, 0)
	if err != nil {
		t.Fatalf("loadStats: %v", err)
	}
	if title != "Fall 2025" || len(reports) != 2 {
		t.Fatalf("title %q with %d reports, want Fall 2025 with 2", title, len(reports))
	}
	for _, r := range reports {
		if r.Report.Skipped != 3 || r.Report.Future != 2 {
			t.Fatalf("%s: skipped %d future %d, want 3 2", r.Subject.Name, r.Report.Skipped, r.Report.Future)
		}
	}
}
