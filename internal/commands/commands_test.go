package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	ics "github.com/arran4/golang-ical"

	"github.com/balkashynov/skipsmart/internal/models"
)

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("parse date %q: %v", s, err)
	}
	return d
}

func class(id uint, subject models.Subject, start time.Time, status models.Status) models.ClassSession {
	return models.ClassSession{
		ID:        id,
		SubjectID: subject.ID,
		Subject:   subject,
		Date:      time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location()),
		StartTime: start,
		EndTime:   start.Add(90 * time.Minute),
		Status:    status,
	}
}

func TestGetWeekStart(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2025-09-15", "2025-09-15"}, // Monday
		{"2025-09-17", "2025-09-15"}, // Wednesday
		{"2025-09-21", "2025-09-15"}, // Sunday
		{"2025-09-22", "2025-09-22"},
		{"2025-10-01", "2025-09-29"}, // across a month boundary
	}

	for _, tt := range tests {
		got := getWeekStart(mustDate(t, tt.in).Add(15 * time.Hour))
		if !got.Equal(mustDate(t, tt.want)) {
			t.Errorf("getWeekStart(%s) = %s, want %s", tt.in, got.Format("2006-01-02"), tt.want)
		}
	}
}

func TestBuildWeekGrid(t *testing.T) {
	code := "MATH201"
	math := models.Subject{ID: 1, Name: "Linear Algebra", Code: &code}
	phys := models.Subject{ID: 2, Name: "Physics"}

	monday := mustDate(t, "2025-09-15")
	at := func(days, hour int) time.Time {
		return monday.AddDate(0, 0, days).Add(time.Duration(hour) * time.Hour)
	}

	sessions := []models.ClassSession{
		class(1, math, at(-7, 10), models.StatusAttended), // previous week
		class(2, math, at(0, 10), models.StatusAttended),
		class(3, math, at(0, 14), models.StatusSkipped),
		class(4, phys, at(2, 9), models.StatusCancelled),
		class(5, phys, at(5, 9), models.StatusPending),  // Saturday
		class(6, math, at(7, 10), models.StatusPending), // next week
	}

	grid := buildWeekGrid(sessions, monday)

	if len(grid.rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(grid.rows))
	}
	if grid.rows[0].subject != "MATH201 Linear Algebra" {
		t.Fatalf("first row = %q, want MATH201 Linear Algebra", grid.rows[0].subject)
	}
	if got := grid.rows[0].cells[time.Monday]; got != "AS" {
		t.Fatalf("Monday cell = %q, want AS", got)
	}
	if grid.rows[0].attended != 1 || grid.rows[0].held != 2 {
		t.Fatalf("math attended/held = %d/%d, want 1/2", grid.rows[0].attended, grid.rows[0].held)
	}
	if grid.rows[1].held != 0 {
		t.Fatalf("physics held = %d, want 0 (cancelled and pending)", grid.rows[1].held)
	}

	// Mon-Fri plus Saturday, no Sunday
	if len(grid.days) != 6 || grid.days[5] != time.Saturday {
		t.Fatalf("days = %v, want Mon-Sat", grid.days)
	}
}

func TestFilterSessions(t *testing.T) {
	a := models.Subject{ID: 1, Name: "A"}
	b := models.Subject{ID: 2, Name: "B"}
	start := mustDate(t, "2025-09-15")
	sessions := []models.ClassSession{
		class(1, a, start, models.StatusAttended),
		class(2, b, start, models.StatusPending),
		class(3, a, start.AddDate(0, 0, 7), models.StatusPending),
	}

	tests := []struct {
		name    string
		subject uint
		status  models.Status
		want    []uint
	}{
		{"no filter", 0, "", []uint{1, 2, 3}},
		{"subject", 1, "", []uint{1, 3}},
		{"status", 0, models.StatusPending, []uint{2, 3}},
		{"both", 1, models.StatusPending, []uint{3}},
		{"nothing", 2, models.StatusAttended, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := filterSessions(sessions, tt.subject, tt.status)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d sessions, want %d", len(got), len(tt.want))
			}
			for i, s := range got {
				if s.ID != tt.want[i] {
					t.Fatalf("session[%d] = %d, want %d", i, s.ID, tt.want[i])
				}
			}
		})
	}
}

func TestBuildCalendar(t *testing.T) {
	subject := models.Subject{ID: 1, Name: "Physics"}
	start := time.Date(2025, 9, 15, 10, 0, 0, 0, time.UTC)
	sessions := []models.ClassSession{
		class(1, subject, start, models.StatusAttended),
		class(2, subject, start.AddDate(0, 0, 7), models.StatusCancelled),
	}

	var buf bytes.Buffer
	if err := buildCalendar("Fall 2025", sessions).SerializeTo(&buf); err != nil {
		t.Fatalf("SerializeTo: %v", err)
	}

	cal, err := ics.ParseCalendar(strings.NewReader(buf.String()))
	if err != nil {
		t.Fatalf("ParseCalendar: %v", err)
	}

	events := cal.Events()
	if len(events) != 2 {
		t.Fatalf("events = %d, want 2", len(events))
	}
	if got := events[0].Id(); got != "session-1@skipsmart" {
		t.Fatalf("UID = %q, want session-1@skipsmart", got)
	}

	gotStart, err := events[0].GetStartAt()
	if err != nil {
		t.Fatalf("GetStartAt: %v", err)
	}
	if !gotStart.Equal(start) {
		t.Fatalf("DTSTART = %s, want %s", gotStart, start)
	}

	if p := events[0].GetProperty(ics.ComponentPropertyStatus); p != nil {
		t.Fatalf("attended session has STATUS %q", p.Value)
	}
	if p := events[1].GetProperty(ics.ComponentPropertyStatus); p == nil || p.Value != "CANCELLED" {
		t.Fatalf("cancelled session STATUS = %v, want CANCELLED", p)
	}
}

func TestRunDaemon_InvalidSchedule(t *testing.T) {
	err := runDaemon(context.Background(), "every tuesday")
	if err == nil {
		t.Fatal("expected an error for an invalid cron schedule")
	}
	if !strings.Contains(err.Error(), "invalid cron schedule") {
		t.Fatalf("error = %v", err)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"Physics", 10, "Physics"},
		{"Linear Algebra", 10, "Linear ..."},
		{"Análisis Matemático", 8, "Análi..."},
		{"abc", 2, "ab"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.width); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}

func TestWriteCalendar(t *testing.T) {
	subject := models.Subject{ID: 1, Name: "Physics"}
	start := time.Date(2025, 9, 15, 10, 0, 0, 0, time.UTC)
	cal := buildCalendar("Fall 2025", []models.ClassSession{class(1, subject, start, models.StatusPending)})

	path := filepath.Join(t.TempDir(), "fall.ics")
	if err := writeCalendar(path, cal); err != nil {
		t.Fatalf("writeCalendar: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	parsed, err := ics.ParseCalendar(f)
	if err != nil {
		t.Fatalf("ParseCalendar: %v", err)
	}
	if n := len(parsed.Events()); n != 1 {
		t.Fatalf("events = %d, want 1", n)
	}

	missing := filepath.Join(t.TempDir(), "no-such-dir", "fall.ics")
	if err := writeCalendar(missing, cal); err == nil {
		t.Fatal("expected an error for a missing directory")
	}
}

func TestFormatPercent(t *testing.T) {
	if got := formatPercent(nil); got != "-" {
		t.Fatalf("formatPercent(nil) = %q, want -", got)
	}
	p := 62.5
	if got := formatPercent(&p); got != "62.5%" {
		t.Fatalf("formatPercent(62.5) = %q, want 62.5%%", got)
	}
}
