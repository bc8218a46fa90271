package schedule

import (
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/balkashynov/skipsmart/internal/calendar"
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

func semester(t *testing.T, start, end string) models.Semester {
	t.Helper()
	return models.Semester{ID: 1, Name: "Fall", StartDate: mustDate(t, start), EndDate: mustDate(t, end)}
}

func TestExpand_SingleWeek(t *testing.T) {
	// Monday 2025-09-01 .. Friday 2025-09-05
	sem := semester(t, "2025-09-01", "2025-09-05")
	entries := []models.ScheduleEntry{{Day: "Monday", StartTime: "10:00", EndTime: "11:00"}}

	sessions, err := Expand(sem, entries, 7)
	if err != nil {
		t.Fatalf("Expand error: %v", err)
	}
	if len(sessions) != 1 {
		t.Fatalf("len(sessions) = %d, want 1", len(sessions))
	}

	s := sessions[0]
	if !s.Date.Equal(mustDate(t, "2025-09-01")) {
		t.Fatalf("Date = %v, want 2025-09-01", s.Date)
	}
	if want := time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC); !s.StartTime.Equal(want) {
		t.Fatalf("StartTime = %v, want %v", s.StartTime, want)
	}
	if want := time.Date(2025, 9, 1, 11, 0, 0, 0, time.UTC); !s.EndTime.Equal(want) {
		t.Fatalf("EndTime = %v, want %v", s.EndTime, want)
	}
	if s.SubjectID != 7 {
		t.Fatalf("SubjectID = %d, want 7", s.SubjectID)
	}
	if s.Status != models.StatusPending {
		t.Fatalf("Status = %s, want PENDING", s.Status)
	}
}

func TestExpand_CountsAndWeekdays(t *testing.T) {
	sem := semester(t, "2025-08-18", "2025-12-12")
	entries := []models.ScheduleEntry{
		{Day: "Monday", StartTime: "09:00", EndTime: "10:30"},
		{Day: "Wednesday", StartTime: "13:00", EndTime: "14:00"},
		{Day: "Saturday", StartTime: "08:00", EndTime: "09:00"},
	}

	for _, e := range entries {
		sessions, err := Expand(sem, []models.ScheduleEntry{e}, 1)
		if err != nil {
			t.Fatalf("Expand(%s) error: %v", e, err)
		}

		idx, _ := calendar.WeekdayIndex(e.Day)
		want := 0
		for d := range calendar.EachDate(sem.StartDate, sem.EndDate) {
			if int(d.Weekday()) == idx {
				want++
			}
		}
		if len(sessions) != want {
			t.Fatalf("%s: len(sessions) = %d, want %d", e, len(sessions), want)
		}
		for _, s := range sessions {
			if int(s.Date.Weekday()) != idx {
				t.Fatalf("%s: session on %s", e, s.Date.Weekday())
			}
			if !s.StartTime.Before(s.EndTime) {
				t.Fatalf("%s: start %v not before end %v", e, s.StartTime, s.EndTime)
			}
		}
	}
}

// rrule-go expands the same weekly rule independently
func TestExpand_MatchesWeeklyRRule(t *testing.T) {
	sem := semester(t, "2025-01-13", "2025-05-02")
	byDay := []rrule.Weekday{rrule.SU, rrule.MO, rrule.TU, rrule.WE, rrule.TH, rrule.FR, rrule.SA}

	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		entry := models.ScheduleEntry{Day: wd.String(), StartTime: "15:00", EndTime: "16:15"}
		sessions, err := Expand(sem, []models.ScheduleEntry{entry}, 1)
		if err != nil {
			t.Fatalf("Expand(%s) error: %v", entry, err)
		}

		r, err := rrule.NewRRule(rrule.ROption{
			Freq:      rrule.WEEKLY,
			Byweekday: []rrule.Weekday{byDay[wd]},
			Dtstart:   time.Date(2025, 1, 13, 15, 0, 0, 0, time.UTC),
			Until:     time.Date(2025, 5, 2, 23, 59, 59, 0, time.UTC),
		})
		if err != nil {
			t.Fatalf("NewRRule: %v", err)
		}
		want := r.All()

		if len(sessions) != len(want) {
			t.Fatalf("%s: len(sessions) = %d, rrule = %d", wd, len(sessions), len(want))
		}
		for i := range want {
			if !sessions[i].StartTime.Equal(want[i]) {
				t.Fatalf("%s: session[%d] = %v, rrule = %v", wd, i, sessions[i].StartTime, want[i])
			}
		}
	}
}

func TestExpand_IncrementalEqualsCombined(t *testing.T) {
	sem := semester(t, "2025-09-01", "2025-10-31")
	a := []models.ScheduleEntry{
		{Day: "Monday", StartTime: "10:00", EndTime: "11:00"},
		{Day: "Thursday", StartTime: "14:00", EndTime: "15:30"},
	}
	b := []models.ScheduleEntry{
		{Day: "Monday", StartTime: "08:00", EndTime: "09:00"},
		{Day: "Friday", StartTime: "10:00", EndTime: "12:00"},
	}

	first, err := Expand(sem, a, 1)
	if err != nil {
		t.Fatalf("Expand(a) error: %v", err)
	}
	second, err := Expand(sem, b, 1)
	if err != nil {
		t.Fatalf("Expand(b) error: %v", err)
	}
	combined, err := Expand(sem, append(append([]models.ScheduleEntry{}, a...), b...), 1)
	if err != nil {
		t.Fatalf("Expand(a++b) error: %v", err)
	}

	keys := func(sessions []models.ClassSession) []string {
		out := make([]string, 0, len(sessions))
		for _, s := range sessions {
			out = append(out, s.StartTime.Format(time.RFC3339)+"/"+s.EndTime.Format(time.RFC3339))
		}
		sort.Strings(out)
		return out
	}

	incremental := keys(append(first, second...))
	all := keys(combined)
	if len(incremental) != len(all) {
		t.Fatalf("incremental = %d sessions, combined = %d", len(incremental), len(all))
	}
	for i := range all {
		if incremental[i] != all[i] {
			t.Fatalf("session %d: incremental %s, combined %s", i, incremental[i], all[i])
		}
	}
}

func TestExpand_OrderedByStartTime(t *testing.T) {
	sem := semester(t, "2025-09-01", "2025-09-14")
	entries := []models.ScheduleEntry{
		{Day: "Monday", StartTime: "15:00", EndTime: "16:00"},
		{Day: "Monday", StartTime: "09:00", EndTime: "10:00"},
		{Day: "Tuesday", StartTime: "11:00", EndTime: "12:00"},
	}

	sessions, err := Expand(sem, entries, 1)
	if err != nil {
		t.Fatalf("Expand error: %v", err)
	}
	if len(sessions) != 6 {
		t.Fatalf("len(sessions) = %d, want 6", len(sessions))
	}
	for i := 1; i < len(sessions); i++ {
		if sessions[i].StartTime.Before(sessions[i-1].StartTime) {
			t.Fatalf("session %d (%v) before session %d (%v)", i, sessions[i].StartTime, i-1, sessions[i-1].StartTime)
		}
	}
}

func TestExpand_Empty(t *testing.T) {
	sem := semester(t, "2025-09-01", "2025-09-05")

	sessions, err := Expand(sem, nil, 1)
	if err != nil || len(sessions) != 0 {
		t.Fatalf("Expand(nil) = %d sessions, err %v; want 0, nil", len(sessions), err)
	}

	// Mon..Fri window never contains a Sunday
	sessions, err = Expand(sem, []models.ScheduleEntry{{Day: "Sunday", StartTime: "10:00", EndTime: "11:00"}}, 1)
	if err != nil || len(sessions) != 0 {
		t.Fatalf("Expand(Sunday) = %d sessions, err %v; want 0, nil", len(sessions), err)
	}
}

func TestExpand_InvalidEntryFailsWholeCall(t *testing.T) {
	sem := semester(t, "2025-09-01", "2025-09-30")
	valid := models.ScheduleEntry{Day: "Monday", StartTime: "10:00", EndTime: "11:00"}

	tests := []struct {
		name    string
		entry   models.ScheduleEntry
		wrapped error
	}{
		{"bad weekday", models.ScheduleEntry{Day: "Moonday", StartTime: "10:00", EndTime: "11:00"}, calendar.ErrInvalidWeekday},
		{"bad start", models.ScheduleEntry{Day: "Monday", StartTime: "25:00", EndTime: "11:00"}, calendar.ErrInvalidTimeOfDay},
		{"bad end", models.ScheduleEntry{Day: "Monday", StartTime: "10:00", EndTime: "10:75"}, calendar.ErrInvalidTimeOfDay},
		{"end equals start", models.ScheduleEntry{Day: "Monday", StartTime: "10:00", EndTime: "10:00"}, nil},
		{"crosses midnight", models.ScheduleEntry{Day: "Friday", StartTime: "23:00", EndTime: "01:00"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sessions, err := Expand(sem, []models.ScheduleEntry{valid, tt.entry}, 1)
			if !errors.Is(err, ErrInvalidScheduleEntry) {
				t.Fatalf("err = %v, want ErrInvalidScheduleEntry", err)
			}
			if tt.wrapped != nil && !errors.Is(err, tt.wrapped) {
				t.Fatalf("err = %v, want it to wrap %v", err, tt.wrapped)
			}
			if sessions != nil {
				t.Fatalf("got %d sessions on error, want none", len(sessions))
			}
		})
	}
}

func TestMergeEntries(t *testing.T) {
	existing := []models.ScheduleEntry{{Day: "Monday", StartTime: "10:00", EndTime: "11:00"}}
	added := []models.ScheduleEntry{{Day: "wed", StartTime: "12:00", EndTime: "13:00"}}

	merged := MergeEntries(existing, added)
	if len(merged) != 2 {
		t.Fatalf("len(merged) = %d, want 2", len(merged))
	}
	if merged[0] != existing[0] {
		t.Fatalf("merged[0] = %v, want %v", merged[0], existing[0])
	}
	if merged[1].Day != "Wednesday" {
		t.Fatalf("merged[1].Day = %q, want Wednesday", merged[1].Day)
	}
	if added[0].Day != "wed" {
		t.Fatal("MergeEntries mutated its input")
	}
}
