package attendance

import (
	"errors"
	"testing"
	"time"

	"github.com/balkashynov/skipsmart/internal/models"
)

var now = time.Date(2025, 10, 6, 12, 0, 0, 0, time.UTC)

func session(id uint, end time.Time, status models.Status) models.ClassSession {
	return models.ClassSession{
		ID:        id,
		StartTime: end.Add(-time.Hour),
		EndTime:   end,
		Status:    status,
	}
}

func TestMark(t *testing.T) {
	s := session(1, now, models.StatusPending)

	for _, status := range models.Statuses {
		if err := Mark(&s, status); err != nil {
			t.Fatalf("Mark(%s) error: %v", status, err)
		}
		if s.Status != status {
			t.Fatalf("Status = %s, want %s", s.Status, status)
		}
	}

	// Re-marking a terminal state is an unconditional overwrite
	s.Status = models.StatusCancelled
	if err := Mark(&s, models.StatusAttended); err != nil {
		t.Fatalf("Mark after cancel error: %v", err)
	}
	if s.Status != models.StatusAttended {
		t.Fatalf("Status = %s, want ATTENDED", s.Status)
	}
}

func TestMark_InvalidStatus(t *testing.T) {
	s := session(1, now, models.StatusAttended)

	err := Mark(&s, models.Status("LATE"))
	if !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("err = %v, want ErrInvalidStatus", err)
	}
	if s.Status != models.StatusAttended {
		t.Fatalf("Status = %s after failed mark, want ATTENDED", s.Status)
	}
}

func TestParseStatus(t *testing.T) {
	tests := map[string]models.Status{
		"ATTENDED":  models.StatusAttended,
		"attend":    models.StatusAttended,
		"a":         models.StatusAttended,
		"Skipped":   models.StatusSkipped,
		"skip":      models.StatusSkipped,
		"cancelled": models.StatusCancelled,
		"canceled":  models.StatusCancelled,
		"pending":   models.StatusPending,
	}
	for in, want := range tests {
		got, err := ParseStatus(in)
		if err != nil {
			t.Fatalf("ParseStatus(%q) error: %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseStatus(%q) = %s, want %s", in, got, want)
		}
	}

	if _, err := ParseStatus("late"); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("ParseStatus(late) err = %v, want ErrInvalidStatus", err)
	}
}

func TestReconcile_ElapsedPendingBecomesSkipped(t *testing.T) {
	sessions := []models.ClassSession{
		session(1, now.Add(-time.Hour), models.StatusPending),
		session(2, now.Add(-time.Hour), models.StatusAttended),
	}

	if n := Reconcile(sessions, now); n != 1 {
		t.Fatalf("Reconcile = %d, want 1", n)
	}
	if sessions[0].Status != models.StatusSkipped {
		t.Fatalf("pending session = %s, want SKIPPED", sessions[0].Status)
	}
	if sessions[1].Status != models.StatusAttended {
		t.Fatalf("attended session = %s, want ATTENDED", sessions[1].Status)
	}
}

func TestReconcile_LeavesMarkedAndFutureSessions(t *testing.T) {
	sessions := []models.ClassSession{
		session(1, now.Add(-48*time.Hour), models.StatusCancelled),
		session(2, now.Add(-24*time.Hour), models.StatusSkipped),
		session(3, now, models.StatusPending),                     // ends exactly now: not elapsed
		session(4, now.Add(30*time.Minute), models.StatusPending), // in progress
		session(5, now.Add(24*time.Hour), models.StatusPending),
	}

	if n := Reconcile(sessions, now); n != 0 {
		t.Fatalf("Reconcile = %d, want 0", n)
	}
	want := []models.Status{models.StatusCancelled, models.StatusSkipped, models.StatusPending, models.StatusPending, models.StatusPending}
	for i, s := range sessions {
		if s.Status != want[i] {
			t.Fatalf("session %d = %s, want %s", s.ID, s.Status, want[i])
		}
	}
}

func TestReconcile_Idempotent(t *testing.T) {
	sessions := []models.ClassSession{
		session(1, now.Add(-2*time.Hour), models.StatusPending),
		session(2, now.Add(-time.Hour), models.StatusPending),
		session(3, now.Add(time.Hour), models.StatusPending),
		session(4, now.Add(-time.Hour), models.StatusAttended),
	}

	if n := Reconcile(sessions, now); n != 2 {
		t.Fatalf("first Reconcile = %d, want 2", n)
	}
	if n := Reconcile(sessions, now); n != 0 {
		t.Fatalf("second Reconcile at same time = %d, want 0", n)
	}

	// Later sweep only picks up the newly elapsed session
	if n := Reconcile(sessions, now.Add(2*time.Hour)); n != 1 {
		t.Fatalf("later Reconcile = %d, want 1", n)
	}
	if sessions[3].Status != models.StatusAttended {
		t.Fatalf("attended session = %s, want ATTENDED", sessions[3].Status)
	}
}
